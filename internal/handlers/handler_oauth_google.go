package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/middleware"
	"github.com/dongbu-chunggwa/invoice_ledger_app/pkg/config"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler exchanges a Google authorization code for our own tokens.
type googleOAuthHandler struct {
	authHandler  *AuthHandler
	userService  portssvc.UserSvcFacade
	oauthService portssvc.GoogleOAuthSvcFacade
}

// registerGoogleOAuthRoutes sets up the Google sign-in route.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, userService portssvc.UserSvcFacade, oauthService portssvc.GoogleOAuthSvcFacade) {
	h := &googleOAuthHandler{
		authHandler:  NewAuthHandler(userService, cfg),
		userService:  userService,
		oauthService: oauthService,
	}

	rg.POST("/api/v1/auth/google/exchange", h.ExchangeCodeGoogle)
}

// ExchangeCodeGoogle godoc
// @Summary Google sign-in
// @Description Exchanges a Google authorization code for a JWT access token, creating the account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param exchange body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange [post]
func (h *googleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	info, err := h.oauthService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to exchange Google code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to exchange authorization code"})
		}
		return
	}

	user, err := h.userService.UpsertGoogleUser(c.Request.Context(), info.GoogleID, info.Email, info.Name)
	if err != nil {
		logger.Error("Failed to upsert Google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in with Google"})
		return
	}

	signed, err := h.authHandler.issueTokens(c, user.UserID)
	if err != nil {
		logger.Error("Failed to issue tokens after Google sign-in", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: signed, User: dto.ToUserResponse(user)})
}
