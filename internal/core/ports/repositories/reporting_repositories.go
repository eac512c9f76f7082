package repositories

import (
	"context"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
)

// ReportingRepositoryFacade defines the read-only aggregate queries.
// Monthly queries take a half-open UTC range computed by the service from
// the business-timezone month; carry-over lines (전잔금) are excluded in SQL.
type ReportingRepositoryFacade interface {
	GetClientBalanceSummary(ctx context.Context, positiveOnly bool) ([]domain.ClientBalanceRow, error)
	GetMonthlyClientSales(ctx context.Context, from, to time.Time) ([]domain.ClientSalesRow, error)
	GetMonthlyProductSales(ctx context.Context, from, to time.Time) ([]domain.ProductSalesRow, error)

	// FindFirstInvoiceDate returns the createDate of the earliest invoice,
	// or ErrNotFound when the ledger is empty.
	FindFirstInvoiceDate(ctx context.Context) (time.Time, error)
}
