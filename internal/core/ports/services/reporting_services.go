package services

import (
	"context"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines the derived reporting reads. Month parameters
// are strict "YYYY-MM" strings, validated before any query runs.
type ReportingSvcFacade interface {
	GetClientBalanceSummary(ctx context.Context, positiveOnly bool) ([]domain.ClientBalanceRow, error)
	GetMonthlyClientSales(ctx context.Context, month string) ([]domain.ClientSalesRow, error)
	GetMonthlyProductSales(ctx context.Context, month string) ([]domain.ProductSalesRow, error)

	// ListInvoiceMonths returns every month from the first invoice up to the
	// current month in the business timezone, newest first. Empty ledger
	// yields an empty list.
	ListInvoiceMonths(ctx context.Context) ([]string, error)
}
