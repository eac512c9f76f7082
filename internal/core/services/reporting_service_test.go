package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockReportingRepository is a mock type for the ReportingRepositoryFacade interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetClientBalanceSummary(ctx context.Context, positiveOnly bool) ([]domain.ClientBalanceRow, error) {
	args := m.Called(ctx, positiveOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyClientSales(ctx context.Context, from, to time.Time) ([]domain.ClientSalesRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientSalesRow), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyProductSales(ctx context.Context, from, to time.Time) ([]domain.ProductSalesRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSalesRow), args.Error(1)
}

func (m *MockReportingRepository) FindFirstInvoiceDate(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	seoul    *time.Location
	service  portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	loc, err := time.LoadLocation("Asia/Seoul")
	suite.Require().NoError(err)
	suite.seoul = loc
	suite.service = services.NewReportingService(suite.mockRepo, loc)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestGetMonthlyClientSales_SeoulRange() {
	ctx := context.Background()

	// March 2025 in Seoul is [2025-02-28T15:00Z, 2025-03-31T15:00Z).
	wantFrom := time.Date(2025, 2, 28, 15, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)

	rows := []domain.ClientSalesRow{
		{ClientID: 7, Name: "동네마트", TotalSales: decimal.RequireFromString("180000")},
	}

	suite.mockRepo.On("GetMonthlyClientSales", ctx, wantFrom, wantTo).Return(rows, nil).Once()

	got, err := suite.service.GetMonthlyClientSales(ctx, "2025-03")

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(int64(7), got[0].ClientID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetMonthlyClientSales_BadMonth() {
	ctx := context.Background()

	for _, month := range []string{"2025-5", "2025/05", "202505", "2025-13", ""} {
		_, err := suite.service.GetMonthlyClientSales(ctx, month)
		suite.Require().Error(err, "month %q must be rejected", month)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}

	suite.mockRepo.AssertNotCalled(suite.T(), "GetMonthlyClientSales", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetMonthlyProductSales_EmptyMonth() {
	ctx := context.Background()

	suite.mockRepo.On("GetMonthlyProductSales", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.ProductSalesRow{}, nil).Once()

	got, err := suite.service.GetMonthlyProductSales(ctx, "2024-01")

	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *ReportingServiceTestSuite) TestGetClientBalanceSummary_PassesFilter() {
	ctx := context.Background()

	rows := []domain.ClientBalanceRow{
		{ClientID: 1, Name: "동네마트", Balance: decimal.RequireFromString("70000")},
	}

	suite.mockRepo.On("GetClientBalanceSummary", ctx, true).Return(rows, nil).Once()

	got, err := suite.service.GetClientBalanceSummary(ctx, true)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestListInvoiceMonths_EmptyLedger() {
	ctx := context.Background()

	suite.mockRepo.On("FindFirstInvoiceDate", ctx).Return(time.Time{}, apperrors.ErrNotFound).Once()

	months, err := suite.service.ListInvoiceMonths(ctx)

	suite.Require().NoError(err)
	suite.NotNil(months)
	suite.Empty(months)
}

func (suite *ReportingServiceTestSuite) TestListInvoiceMonths_WalksToCurrentMonth() {
	ctx := context.Background()

	// Three months back from now, so the walk spans four entries.
	nowLocal := time.Now().In(suite.seoul)
	first := time.Date(nowLocal.Year(), nowLocal.Month(), 15, 10, 0, 0, 0, suite.seoul).AddDate(0, -3, 0)

	suite.mockRepo.On("FindFirstInvoiceDate", ctx).Return(first.UTC(), nil).Once()

	months, err := suite.service.ListInvoiceMonths(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(months, 4)
	suite.Equal(nowLocal.Format("2006-01"), months[0], "newest month first")
	suite.Equal(first.Format("2006-01"), months[3], "oldest month last")
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
