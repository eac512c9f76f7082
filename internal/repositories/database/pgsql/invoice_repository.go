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
	"github.com/shopspring/decimal"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// NewPgxInvoiceRepository creates a new repository for invoice and detail data.
func NewPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// CreateInvoiceWithDetails inserts the invoice, batch-inserts its details,
// and updates the owning client's balance mirror within one DB transaction.
// Concurrent readers never observe the invoice without the client update.
func (r *PgxInvoiceRepository) CreateInvoiceWithDetails(ctx context.Context, invoice domain.Invoice, details []domain.InvoiceDetail) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed.

	modelInvoice := mapping.ToModelInvoice(invoice)
	invoiceQuery := `
		INSERT INTO invoices (client_id, no, balance, payment, note, create_date, update_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING invoice_id;
	`
	err = tx.QueryRow(ctx, invoiceQuery,
		modelInvoice.ClientID,
		modelInvoice.No,
		modelInvoice.Balance,
		modelInvoice.Payment,
		modelInvoice.Note,
		modelInvoice.CreateDate,
		modelInvoice.UpdateDate,
	).Scan(&modelInvoice.InvoiceID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, "failed to insert invoice", err)
	}

	if err := insertDetails(ctx, tx, modelInvoice.InvoiceID, details); err != nil {
		return nil, err
	}

	if err := updateClientBalance(ctx, tx, modelInvoice.ClientID, modelInvoice.Balance, modelInvoice.UpdateDate); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	created := mapping.ToDomainInvoice(modelInvoice)
	return &created, nil
}

// UpdateInvoiceWithDetails rewrites the invoice row, replaces the detail set
// wholesale (delete then batch insert), and updates the client mirror, all
// within one DB transaction.
func (r *PgxInvoiceRepository) UpdateInvoiceWithDetails(ctx context.Context, invoice domain.Invoice, details []domain.InvoiceDetail) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelInvoice := mapping.ToModelInvoice(invoice)
	updateQuery := `
		UPDATE invoices
		SET note = $2,
		    balance = $3,
		    payment = $4,
		    update_date = $5
		WHERE invoice_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		modelInvoice.InvoiceID,
		modelInvoice.Note,
		modelInvoice.Balance,
		modelInvoice.Payment,
		modelInvoice.UpdateDate,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice not found for update")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_details WHERE invoice_id = $1;`, modelInvoice.InvoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice details", err)
	}

	if err := insertDetails(ctx, tx, modelInvoice.InvoiceID, details); err != nil {
		return err
	}

	if err := updateClientBalance(ctx, tx, modelInvoice.ClientID, modelInvoice.Balance, modelInvoice.UpdateDate); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// insertDetails batch-inserts the detail rows for an invoice.
func insertDetails(ctx context.Context, tx pgx.Tx, invoiceID int64, details []domain.InvoiceDetail) error {
	if len(details) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	detailQuery := `
		INSERT INTO invoice_details (invoice_id, name, spec, quantity, price)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, d := range details {
		modelDetail := mapping.ToModelInvoiceDetail(d)
		batch.Queue(detailQuery,
			invoiceID,
			modelDetail.Name,
			modelDetail.Spec,
			modelDetail.Quantity,
			modelDetail.Price,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute detail insert batch", err)
	}
	return nil
}

// updateClientBalance keeps Client.balance mirroring its latest invoice.
func updateClientBalance(ctx context.Context, tx pgx.Tx, clientID int64, balance decimal.Decimal, updatedAt time.Time) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE clients SET balance = $2, update_date = $3 WHERE client_id = $1;`,
		clientID, balance, updatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update client balance", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client not found for balance update")
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	query := `
		SELECT invoice_id, client_id, no, balance, payment, note, create_date, update_date
		FROM invoices
		WHERE invoice_id = $1;
	`
	var m models.Invoice
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&m.InvoiceID,
		&m.ClientID,
		&m.No,
		&m.Balance,
		&m.Payment,
		&m.Note,
		&m.CreateDate,
		&m.UpdateDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID", err)
	}

	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

func (r *PgxInvoiceRepository) FindDetailsByInvoiceID(ctx context.Context, invoiceID int64) ([]domain.InvoiceDetail, error) {
	query := `
		SELECT detail_id, invoice_id, name, spec, quantity, price
		FROM invoice_details
		WHERE invoice_id = $1
		ORDER BY detail_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice details", err)
	}
	defer rows.Close()

	details := []models.InvoiceDetail{}
	for rows.Next() {
		var m models.InvoiceDetail
		if err := rows.Scan(&m.DetailID, &m.InvoiceID, &m.Name, &m.Spec, &m.Quantity, &m.Price); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice detail row", err)
		}
		details = append(details, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice detail rows", err)
	}

	return mapping.ToDomainInvoiceDetailSlice(details), nil
}

func (r *PgxInvoiceRepository) FindLatestInvoice(ctx context.Context, clientID int64) (*domain.Invoice, error) {
	query := `
		SELECT invoice_id, client_id, no, balance, payment, note, create_date, update_date
		FROM invoices
		WHERE client_id = $1
		ORDER BY create_date DESC
		LIMIT 1;
	`
	var m models.Invoice
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(
		&m.InvoiceID,
		&m.ClientID,
		&m.No,
		&m.Balance,
		&m.Payment,
		&m.Note,
		&m.CreateDate,
		&m.UpdateDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest invoice", err)
	}

	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// FindPreviousBalance returns the balance of the client's most recent invoice
// strictly before the given instant, or zero for the first invoice.
func (r *PgxInvoiceRepository) FindPreviousBalance(ctx context.Context, clientID int64, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT balance
		FROM invoices
		WHERE client_id = $1 AND create_date < $2
		ORDER BY create_date DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, clientID, before).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to find previous balance", err)
	}
	return balance, nil
}

// ListInvoiceRowsByClient derives each row's previousBalance with LAG() over
// the chronological chain, then returns rows newest first.
func (r *PgxInvoiceRepository) ListInvoiceRowsByClient(ctx context.Context, clientID int64) ([]domain.InvoiceListRow, error) {
	query := `
		SELECT invoice_id,
		       no,
		       create_date,
		       balance,
		       COALESCE(LAG(balance) OVER (PARTITION BY client_id ORDER BY create_date), 0) AS previous_balance
		FROM invoices
		WHERE client_id = $1
		ORDER BY create_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice rows", err)
	}
	defer rows.Close()

	result := []domain.InvoiceListRow{}
	for rows.Next() {
		var row domain.InvoiceListRow
		if err := rows.Scan(&row.InvoiceID, &row.No, &row.CreateDate, &row.Balance, &row.PreviousBalance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		row.Total = decimal.Zero
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	return result, nil
}

// FindInvoiceTotals returns SUM(quantity*price) per invoice id.
func (r *PgxInvoiceRepository) FindInvoiceTotals(ctx context.Context, invoiceIDs []int64) (map[int64]decimal.Decimal, error) {
	if len(invoiceIDs) == 0 {
		return map[int64]decimal.Decimal{}, nil
	}

	query := `
		SELECT invoice_id, SUM(quantity * price) AS total
		FROM invoice_details
		WHERE invoice_id = ANY($1)
		GROUP BY invoice_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice totals", err)
	}
	defer rows.Close()

	totals := make(map[int64]decimal.Decimal, len(invoiceIDs))
	for rows.Next() {
		var invoiceID int64
		var total decimal.Decimal
		if err := rows.Scan(&invoiceID, &total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice total row", err)
		}
		totals[invoiceID] = total
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice total rows", err)
	}

	return totals, nil
}
