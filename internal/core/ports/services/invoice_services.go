package services

import (
	"context"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// InvoiceSvcFacade defines the invoice ledger operations. Balance figures are
// always computed inside the service; callers never supply them.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID int64, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)

	// GetInvoiceWithDetails returns the invoice, its owning client, its line
	// items, and the balance carried in from the previous invoice (zero for
	// the first invoice of a client).
	GetInvoiceWithDetails(ctx context.Context, invoiceID int64) (*domain.Invoice, *domain.Client, []domain.InvoiceDetail, decimal.Decimal, error)

	ListInvoicesByClient(ctx context.Context, clientID int64) ([]domain.InvoiceListRow, error)

	// GetLatestInvoice returns (nil, nil) when the client has no invoices.
	GetLatestInvoice(ctx context.Context, clientID int64) (*domain.Invoice, error)
}
