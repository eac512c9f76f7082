package services

import (
	"context"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
)

// UserSvcFacade defines operator-account operations used by the auth handlers.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpsertGoogleUser finds or creates the account matching a verified
	// Google identity.
	UpsertGoogleUser(ctx context.Context, googleID, email, name string) (*domain.User, error)

	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// GoogleUserInfo is the verified identity extracted from a Google ID token.
type GoogleUserInfo struct {
	GoogleID string
	Email    string
	Name     string
}

// GoogleOAuthSvcFacade exchanges an authorization code for a verified
// Google identity.
type GoogleOAuthSvcFacade interface {
	ExchangeCode(ctx context.Context, code string) (*GoogleUserInfo, error)
}
