package services

import (
	"context"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
)

// ClientSvcFacade defines the client directory operations.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error)
	ListClients(ctx context.Context, includeHidden bool) ([]domain.Client, error)
	UpdateClient(ctx context.Context, clientID int64, req dto.UpdateClientRequest) (*domain.Client, error)
	SetFavorite(ctx context.Context, clientID int64, favorite bool) error
	SetVisibility(ctx context.Context, clientID int64, visible bool) error
}
