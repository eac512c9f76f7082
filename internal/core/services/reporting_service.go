package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portsrepo "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/middleware"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/utils/period"
)

// reportingService serves the derived monthly and balance reports. All
// month arithmetic happens in the configured business timezone.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	loc           *time.Location
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, loc *time.Location) portssvc.ReportingSvcFacade {
	if loc == nil {
		loc = time.UTC
	}
	return &reportingService{reportingRepo: reportingRepo, loc: loc}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetClientBalanceSummary(ctx context.Context, positiveOnly bool) ([]domain.ClientBalanceRow, error) {
	return s.reportingRepo.GetClientBalanceSummary(ctx, positiveOnly)
}

func (s *reportingService) GetMonthlyClientSales(ctx context.Context, month string) ([]domain.ClientSalesRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to, err := period.MonthRange(month, s.loc)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetMonthlyClientSales(ctx, from, to)
	if err != nil {
		logger.Error("Failed to load monthly client sales", slog.String("month", month), slog.String("error", err.Error()))
		return nil, err
	}
	return rows, nil
}

func (s *reportingService) GetMonthlyProductSales(ctx context.Context, month string) ([]domain.ProductSalesRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to, err := period.MonthRange(month, s.loc)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetMonthlyProductSales(ctx, from, to)
	if err != nil {
		logger.Error("Failed to load monthly product sales", slog.String("month", month), slog.String("error", err.Error()))
		return nil, err
	}
	return rows, nil
}

// ListInvoiceMonths walks from the first invoice's month up to the current
// month, newest first, so the report pickers never offer an empty month
// before the ledger started.
func (s *reportingService) ListInvoiceMonths(ctx context.Context) ([]string, error) {
	first, err := s.reportingRepo.FindFirstInvoiceDate(ctx)
	if err != nil {
		if isNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	firstLocal := first.In(s.loc)
	cursor := time.Date(firstLocal.Year(), firstLocal.Month(), 1, 0, 0, 0, 0, s.loc)

	nowLocal := time.Now().In(s.loc)
	current := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, s.loc)

	months := []string{}
	for !cursor.After(current) {
		months = append(months, period.Format(cursor, s.loc))
		cursor = cursor.AddDate(0, 1, 0)
	}

	// Newest first for the UI.
	for i, j := 0, len(months)-1; i < j; i, j = i+1, j-1 {
		months[i], months[j] = months[j], months[i]
	}
	return months, nil
}
