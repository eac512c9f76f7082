package repositories

import (
	"context"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for operator accounts.
type UserRepositoryFacade interface {
	CreateUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	FindUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
