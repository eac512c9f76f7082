package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// clientService provides the client directory operations. It never touches
// Client.Balance; that column belongs to the invoice ledger.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	client := domain.Client{
		Name:       name,
		Phone:      strings.TrimSpace(req.Phone),
		Note:       req.Note,
		Balance:    decimal.Zero,
		IsFavorite: false,
		IsVisible:  true,
		CreateDate: now,
		UpdateDate: now,
	}

	created, err := s.clientRepo.CreateClient(ctx, client)
	if err != nil {
		logger.Error("Failed to create client", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Client created", slog.Int64("client_id", created.ClientID))
	return created, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context, includeHidden bool) ([]domain.Client, error) {
	return s.clientRepo.ListClients(ctx, includeHidden)
}

func (s *clientService) UpdateClient(ctx context.Context, clientID int64, req dto.UpdateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: client name cannot be empty", apperrors.ErrValidation)
		}
		client.Name = name
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Note != nil {
		client.Note = *req.Note
	}
	client.UpdateDate = time.Now().UTC()

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client", slog.Int64("client_id", clientID), slog.String("error", err.Error()))
		return nil, err
	}

	return client, nil
}

func (s *clientService) SetFavorite(ctx context.Context, clientID int64, favorite bool) error {
	return s.clientRepo.SetFavorite(ctx, clientID, favorite, time.Now().UTC())
}

func (s *clientService) SetVisibility(ctx context.Context, clientID int64, visible bool) error {
	return s.clientRepo.SetVisibility(ctx, clientID, visible, time.Now().UTC())
}
