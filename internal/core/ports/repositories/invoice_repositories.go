package repositories

import (
	"context"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceRepositoryFacade defines persistence operations for invoices and
// their line items. The two write operations are transactional: the invoice
// row, the detail rows, and the owning client's balance mirror are applied
// as a single atomic unit or not at all.
type InvoiceRepositoryFacade interface {
	// CreateInvoiceWithDetails inserts the invoice and its details and
	// updates the client's balance/updateDate in one transaction. The
	// returned invoice carries the generated id.
	CreateInvoiceWithDetails(ctx context.Context, invoice domain.Invoice, details []domain.InvoiceDetail) (*domain.Invoice, error)

	// UpdateInvoiceWithDetails updates the invoice row, replaces its detail
	// set wholesale, and updates the client's balance mirror in one
	// transaction.
	UpdateInvoiceWithDetails(ctx context.Context, invoice domain.Invoice, details []domain.InvoiceDetail) error

	FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	FindDetailsByInvoiceID(ctx context.Context, invoiceID int64) ([]domain.InvoiceDetail, error)

	// FindLatestInvoice returns the client's most recent invoice by
	// createDate, or ErrNotFound if the client has none.
	FindLatestInvoice(ctx context.Context, clientID int64) (*domain.Invoice, error)

	// FindPreviousBalance returns the balance of the client's most recent
	// invoice strictly before the given instant, or zero if none exists.
	FindPreviousBalance(ctx context.Context, clientID int64, before time.Time) (decimal.Decimal, error)

	// ListInvoiceRowsByClient returns the client's invoices newest first,
	// each with its previousBalance derived by a window function over the
	// chronological chain. Totals are not populated here.
	ListInvoiceRowsByClient(ctx context.Context, clientID int64) ([]domain.InvoiceListRow, error)

	// FindInvoiceTotals returns SUM(quantity*price) per invoice id.
	// Invoices with no details are absent from the map.
	FindInvoiceTotals(ctx context.Context, invoiceIDs []int64) (map[int64]decimal.Decimal, error)
}
