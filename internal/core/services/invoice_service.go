package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// clientLocks serializes ledger writes per client. The previous-balance read
// and the invoice insert must not interleave with another write for the same
// client, and the DB transaction alone does not order the two reads.
type clientLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newClientLocks() *clientLocks {
	return &clientLocks{locks: make(map[int64]*sync.Mutex)}
}

func (c *clientLocks) lock(clientID int64) func() {
	c.mu.Lock()
	l, ok := c.locks[clientID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[clientID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// invoiceService owns the balance rule across create, edit, and read paths.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	locks       *clientLocks
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		locks:       newClientLocks(),
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice computes the resulting balance server-side and persists the
// invoice, its details, and the client's balance mirror atomically.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Details) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one detail line", apperrors.ErrValidation)
	}

	// The client must exist before anything is written.
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(req.ClientID)
	defer unlock()

	now := time.Now().UTC()

	previousBalance := decimal.Zero
	latest, err := s.invoiceRepo.FindLatestInvoice(ctx, req.ClientID)
	if err == nil {
		previousBalance = latest.Balance
	} else if !isNotFound(err) {
		return nil, err
	}

	details := dto.ToDomainDetails(req.Details)
	subtotal := domain.Subtotal(details)
	balance := domain.ComputeBalance(subtotal, previousBalance, req.Payment)

	invoice := domain.Invoice{
		ClientID:   req.ClientID,
		No:         req.No,
		Balance:    balance,
		Payment:    req.Payment,
		Note:       req.Note,
		CreateDate: now,
		UpdateDate: now,
	}

	created, err := s.invoiceRepo.CreateInvoiceWithDetails(ctx, invoice, details)
	if err != nil {
		logger.Error("Failed to persist invoice",
			slog.Int64("client_id", req.ClientID),
			slog.Int64("no", req.No),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice created",
		slog.Int64("invoice_id", created.InvoiceID),
		slog.String("display_no", created.DisplayNumber()),
		slog.String("balance", created.Balance.String()))
	return created, nil
}

// UpdateInvoice replaces the detail set wholesale and recomputes the balance
// with the same rule as create, anchored at the invoice's own position in the
// chain. Later invoices of the same client are not recomputed.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID int64, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Details) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one detail line", apperrors.ErrValidation)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(invoice.ClientID)
	defer unlock()

	// Previous balance in the invoice's own chronological context, not "now".
	previousBalance, err := s.invoiceRepo.FindPreviousBalance(ctx, invoice.ClientID, invoice.CreateDate)
	if err != nil {
		return nil, err
	}

	details := dto.ToDomainDetails(req.Details)
	subtotal := domain.Subtotal(details)

	invoice.Payment = req.Payment
	invoice.Balance = domain.ComputeBalance(subtotal, previousBalance, req.Payment)
	if req.Note != nil {
		invoice.Note = *req.Note
	}
	invoice.UpdateDate = time.Now().UTC()

	if err := s.invoiceRepo.UpdateInvoiceWithDetails(ctx, *invoice, details); err != nil {
		logger.Error("Failed to update invoice",
			slog.Int64("invoice_id", invoiceID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Invoice updated",
		slog.Int64("invoice_id", invoiceID),
		slog.String("balance", invoice.Balance.String()))
	return invoice, nil
}

// GetInvoiceWithDetails serves the invoice view/print screen.
func (s *invoiceService) GetInvoiceWithDetails(ctx context.Context, invoiceID int64) (*domain.Invoice, *domain.Client, []domain.InvoiceDetail, decimal.Decimal, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, decimal.Zero, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, invoice.ClientID)
	if err != nil {
		return nil, nil, nil, decimal.Zero, err
	}

	details, err := s.invoiceRepo.FindDetailsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, decimal.Zero, err
	}

	previousBalance, err := s.invoiceRepo.FindPreviousBalance(ctx, invoice.ClientID, invoice.CreateDate)
	if err != nil {
		return nil, nil, nil, decimal.Zero, err
	}

	return invoice, client, details, previousBalance, nil
}

// ListInvoicesByClient merges the window-function rows with the per-invoice
// detail totals, row by row; rows with no details total zero.
func (s *invoiceService) ListInvoicesByClient(ctx context.Context, clientID int64) ([]domain.InvoiceListRow, error) {
	rows, err := s.invoiceRepo.ListInvoiceRowsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.InvoiceListRow{}, nil
	}

	invoiceIDs := make([]int64, len(rows))
	for i, row := range rows {
		invoiceIDs[i] = row.InvoiceID
	}

	totals, err := s.invoiceRepo.FindInvoiceTotals(ctx, invoiceIDs)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if total, ok := totals[rows[i].InvoiceID]; ok {
			rows[i].Total = total
		} else {
			rows[i].Total = decimal.Zero
		}
	}

	return rows, nil
}

// GetLatestInvoice returns (nil, nil) when the client has no invoices yet;
// the handler renders that as a null latestInvoice.
func (s *invoiceService) GetLatestInvoice(ctx context.Context, clientID int64) (*domain.Invoice, error) {
	latest, err := s.invoiceRepo.FindLatestInvoice(ctx, clientID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return latest, nil
}
