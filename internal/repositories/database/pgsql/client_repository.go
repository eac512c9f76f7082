package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/repositories"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/models"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	BaseRepository
}

// NewPgxClientRepository creates a new repository for client data.
func NewPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func (r *PgxClientRepository) CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	modelClient := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (name, phone, note, balance, is_favorite, is_visible, create_date, update_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING client_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		modelClient.Name,
		modelClient.Phone,
		modelClient.Note,
		modelClient.Balance,
		modelClient.IsFavorite,
		modelClient.IsVisible,
		modelClient.CreateDate,
		modelClient.UpdateDate,
	).Scan(&modelClient.ClientID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, "failed to insert client", err)
	}

	created := mapping.ToDomainClient(modelClient)
	return &created, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	query := `
		SELECT client_id, name, phone, note, balance, is_favorite, is_visible, create_date, update_date
		FROM clients
		WHERE client_id = $1;
	`
	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(
		&m.ClientID,
		&m.Name,
		&m.Phone,
		&m.Note,
		&m.Balance,
		&m.IsFavorite,
		&m.IsVisible,
		&m.CreateDate,
		&m.UpdateDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find client by ID", err)
	}

	client := mapping.ToDomainClient(m)
	return &client, nil
}

// ListClients returns clients ordered favorites-first, then by name.
// Hidden clients are excluded unless includeHidden is set.
func (r *PgxClientRepository) ListClients(ctx context.Context, includeHidden bool) ([]domain.Client, error) {
	query := `
		SELECT client_id, name, phone, note, balance, is_favorite, is_visible, create_date, update_date
		FROM clients
	`
	if !includeHidden {
		query += ` WHERE is_visible`
	}
	query += ` ORDER BY is_favorite DESC, name ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query clients", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var m models.Client
		if err := rows.Scan(
			&m.ClientID,
			&m.Name,
			&m.Phone,
			&m.Note,
			&m.Balance,
			&m.IsFavorite,
			&m.IsVisible,
			&m.CreateDate,
			&m.UpdateDate,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan client row", err)
		}
		clients = append(clients, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating client rows", err)
	}

	return mapping.ToDomainClientSlice(clients), nil
}

// UpdateClient updates the editable client fields. Balance is deliberately
// not touched here; only the invoice write transaction moves it.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	modelClient := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $2,
		    phone = $3,
		    note = $4,
		    update_date = $5
		WHERE client_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.Name,
		modelClient.Phone,
		modelClient.Note,
		modelClient.UpdateDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update client", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client not found for update")
	}
	return nil
}

func (r *PgxClientRepository) SetFavorite(ctx context.Context, clientID int64, favorite bool, updatedAt time.Time) error {
	return r.setFlag(ctx, `UPDATE clients SET is_favorite = $2, update_date = $3 WHERE client_id = $1;`, clientID, favorite, updatedAt)
}

func (r *PgxClientRepository) SetVisibility(ctx context.Context, clientID int64, visible bool, updatedAt time.Time) error {
	return r.setFlag(ctx, `UPDATE clients SET is_visible = $2, update_date = $3 WHERE client_id = $1;`, clientID, visible, updatedAt)
}

func (r *PgxClientRepository) setFlag(ctx context.Context, query string, clientID int64, value bool, updatedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, query, clientID, value, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update client flag", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client not found for update")
	}
	return nil
}
