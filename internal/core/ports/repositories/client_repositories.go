package repositories

import (
	"context"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
)

// ClientRepositoryFacade defines persistence operations for clients.
// Client.Balance is never written through this facade; only the invoice
// repository mutates it, inside the invoice write transaction.
type ClientRepositoryFacade interface {
	CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error)
	FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error)
	ListClients(ctx context.Context, includeHidden bool) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
	SetFavorite(ctx context.Context, clientID int64, favorite bool, updatedAt time.Time) error
	SetVisibility(ctx context.Context, clientID int64, visible bool, updatedAt time.Time) error
}
