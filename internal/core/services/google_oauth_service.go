package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
)

// googleOAuthService exchanges an authorization code from the frontend for a
// verified Google identity. The ID token is validated against our client ID,
// never trusted as-is.
type googleOAuthService struct {
	oauthConfig *oauth2.Config
}

// NewGoogleOAuthService creates a new GoogleOAuthService.
func NewGoogleOAuthService(clientID, clientSecret, redirectURL string) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleUserInfo, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange authorization code", apperrors.ErrValidation)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: no id_token in Google token response", apperrors.ErrValidation)
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, s.oauthConfig.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid Google ID token", apperrors.ErrValidation)
	}

	info := &portssvc.GoogleUserInfo{GoogleID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}

	if info.Email == "" {
		return nil, fmt.Errorf("%w: Google ID token carries no email", apperrors.ErrValidation)
	}

	return info, nil
}
