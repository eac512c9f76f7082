package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/middleware"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/utils"
)

// userService manages operator accounts.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username %q", apperrors.ErrDuplicate, username)
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Name:         req.Name,
		PasswordHash: hash,
		CreateDate:   now,
		UpdateDate:   now,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		logger.Error("Failed to create user", slog.String("username", username), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// UpsertGoogleUser links a verified Google identity to an account, creating
// one on first sign-in. The Google email doubles as the username.
func (s *userService) UpsertGoogleUser(ctx context.Context, googleID, email, name string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByGoogleID(ctx, googleID)
	if err == nil {
		return user, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:     uuid.NewString(),
		Username:   email,
		Name:       name,
		GoogleID:   googleID,
		CreateDate: now,
		UpdateDate: now,
	}

	if err := s.userRepo.CreateUser(ctx, newUser); err != nil {
		logger.Error("Failed to create user from Google sign-in", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created from Google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, expiresAt)
}

func (s *userService) GetUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return s.userRepo.FindUserByRefreshTokenHash(ctx, tokenHash)
}

func (s *userService) RevokeRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}
