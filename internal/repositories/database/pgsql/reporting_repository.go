package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// monthlyClientSalesQuery aggregates revenue per client within a UTC range.
// Carry-over lines (전잔금) are not revenue and are filtered out by name.
const monthlyClientSalesQuery = `
	SELECT c.client_id,
	       c.name,
	       c.phone,
	       MAX(i.create_date)           AS latest_date,
	       SUM(d.quantity * d.price)    AS total_sales
	FROM invoice_details d
	         JOIN invoices i ON d.invoice_id = i.invoice_id
	         JOIN clients c ON i.client_id = c.client_id
	WHERE i.create_date >= $1
	  AND i.create_date < $2
	  AND d.name <> $3
	GROUP BY c.client_id, c.name, c.phone
	ORDER BY latest_date DESC;
`

// monthlyProductSalesQuery aggregates quantity and revenue per product within
// a UTC range, grouping by trimmed name/spec so incidental padding does not
// split groups.
const monthlyProductSalesQuery = `
	SELECT TRIM(d.name)                 AS name,
	       TRIM(COALESCE(d.spec, ''))  AS spec,
	       SUM(d.quantity)              AS quantity,
	       SUM(d.quantity * d.price)    AS amount
	FROM invoice_details d
	         JOIN invoices i ON d.invoice_id = i.invoice_id
	WHERE i.create_date >= $1
	  AND i.create_date < $2
	  AND d.name <> $3
	GROUP BY TRIM(d.name), TRIM(COALESCE(d.spec, ''))
	ORDER BY amount DESC;
`

type PgxReportingRepository struct {
	BaseRepository
}

// NewPgxReportingRepository creates a new repository for the derived reports.
func NewPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetClientBalanceSummary returns one row per client with its current stored
// balance and the createDate of its latest invoice (null when none exist).
func (r *PgxReportingRepository) GetClientBalanceSummary(ctx context.Context, positiveOnly bool) ([]domain.ClientBalanceRow, error) {
	query := `
		SELECT c.client_id,
		       c.name,
		       c.phone,
		       c.balance,
		       MAX(i.create_date) AS latest_invoice_date
		FROM clients c
		         LEFT JOIN invoices i ON i.client_id = c.client_id
	`
	if positiveOnly {
		query += ` WHERE c.balance > 0`
	}
	query += `
		GROUP BY c.client_id, c.name, c.phone, c.balance
		ORDER BY c.balance DESC;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query client balance summary", err)
	}
	defer rows.Close()

	result := []domain.ClientBalanceRow{}
	for rows.Next() {
		var row domain.ClientBalanceRow
		if err := rows.Scan(&row.ClientID, &row.Name, &row.Phone, &row.Balance, &row.LatestInvoiceDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance summary row", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance summary rows", err)
	}

	return result, nil
}

func (r *PgxReportingRepository) GetMonthlyClientSales(ctx context.Context, from, to time.Time) ([]domain.ClientSalesRow, error) {
	rows, err := r.Pool.Query(ctx, monthlyClientSalesQuery, from, to, domain.CarryOverLineName)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly client sales", err)
	}
	defer rows.Close()

	result := []domain.ClientSalesRow{}
	for rows.Next() {
		var row domain.ClientSalesRow
		if err := rows.Scan(&row.ClientID, &row.Name, &row.Phone, &row.LatestDate, &row.TotalSales); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan client sales row", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating client sales rows", err)
	}

	return result, nil
}

func (r *PgxReportingRepository) GetMonthlyProductSales(ctx context.Context, from, to time.Time) ([]domain.ProductSalesRow, error) {
	rows, err := r.Pool.Query(ctx, monthlyProductSalesQuery, from, to, domain.CarryOverLineName)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly product sales", err)
	}
	defer rows.Close()

	result := []domain.ProductSalesRow{}
	for rows.Next() {
		var row domain.ProductSalesRow
		if err := rows.Scan(&row.Name, &row.Spec, &row.Quantity, &row.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product sales row", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product sales rows", err)
	}

	return result, nil
}

func (r *PgxReportingRepository) FindFirstInvoiceDate(ctx context.Context) (time.Time, error) {
	var first *time.Time
	err := r.Pool.QueryRow(ctx, `SELECT MIN(create_date) FROM invoices;`).Scan(&first)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, apperrors.ErrNotFound
		}
		return time.Time{}, apperrors.NewAppError(500, "failed to query first invoice date", err)
	}
	if first == nil {
		// MIN over an empty table yields NULL, not zero rows.
		return time.Time{}, apperrors.ErrNotFound
	}
	return *first, nil
}
