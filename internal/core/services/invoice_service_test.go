package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) CreateInvoiceWithDetails(ctx context.Context, invoice domain.Invoice, details []domain.InvoiceDetail) (*domain.Invoice, error) {
	args := m.Called(ctx, invoice, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceWithDetails(ctx context.Context, invoice domain.Invoice, details []domain.InvoiceDetail) error {
	args := m.Called(ctx, invoice, details)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindDetailsByInvoiceID(ctx context.Context, invoiceID int64) ([]domain.InvoiceDetail, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceDetail), args.Error(1)
}

func (m *MockInvoiceRepository) FindLatestInvoice(ctx context.Context, clientID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindPreviousBalance(ctx context.Context, clientID int64, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, clientID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoiceRowsByClient(ctx context.Context, clientID int64) ([]domain.InvoiceListRow, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceListRow), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceTotals(ctx context.Context, invoiceIDs []int64) (map[int64]decimal.Decimal, error) {
	args := m.Called(ctx, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]decimal.Decimal), args.Error(1)
}

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, includeHidden bool) ([]domain.Client, error) {
	args := m.Called(ctx, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) SetFavorite(ctx context.Context, clientID int64, favorite bool, updatedAt time.Time) error {
	args := m.Called(ctx, clientID, favorite, updatedAt)
	return args.Error(0)
}

func (m *MockClientRepository) SetVisibility(ctx context.Context, clientID int64, visible bool, updatedAt time.Time) error {
	args := m.Called(ctx, clientID, visible, updatedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockClientRepo  *MockClientRepository
	service         portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockClientRepo)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testClient(id int64) *domain.Client {
	now := time.Now().UTC()
	return &domain.Client{
		ClientID:   id,
		Name:       "동네마트",
		Balance:    decimal.Zero,
		IsVisible:  true,
		CreateDate: now,
		UpdateDate: now,
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_FirstInvoice() {
	ctx := context.Background()
	clientID := int64(7)
	req := dto.CreateInvoiceRequest{
		ClientID: clientID,
		No:       1,
		Payment:  dec("30000"),
		Details: []dto.InvoiceDetailRequest{
			{Name: "사과", Spec: "10kg", Quantity: 10, Price: dec("5000")},
			{Name: "배", Spec: "7.5kg", Quantity: 10, Price: dec("5000")},
		},
	}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(testClient(clientID), nil).Once()
	suite.mockInvoiceRepo.On("FindLatestInvoice", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockInvoiceRepo.On("CreateInvoiceWithDetails", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceDetail")).
		Run(func(args mock.Arguments) {
			inv := args.Get(1).(domain.Invoice)
			// subtotal 100000 + previous 0 - payment 30000
			suite.True(inv.Balance.Equal(dec("70000")), "balance was %s", inv.Balance)
			suite.Equal(clientID, inv.ClientID)
			suite.Equal(int64(1), inv.No)
		}).
		Return(&domain.Invoice{InvoiceID: 42, ClientID: clientID, No: 1, Balance: dec("70000")}, nil).Once()

	created, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(42), created.InvoiceID)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ChainsFromLatestBalance() {
	ctx := context.Background()
	clientID := int64(7)
	req := dto.CreateInvoiceRequest{
		ClientID: clientID,
		No:       2,
		Payment:  dec("100000"),
		Details: []dto.InvoiceDetailRequest{
			{Name: "양파", Spec: "20kg", Quantity: 4, Price: dec("20000")},
		},
	}

	latest := &domain.Invoice{InvoiceID: 42, ClientID: clientID, No: 1, Balance: dec("70000")}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(testClient(clientID), nil).Once()
	suite.mockInvoiceRepo.On("FindLatestInvoice", ctx, clientID).Return(latest, nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoiceWithDetails", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceDetail")).
		Run(func(args mock.Arguments) {
			inv := args.Get(1).(domain.Invoice)
			// 80000 + 70000 - 100000
			suite.True(inv.Balance.Equal(dec("50000")), "balance was %s", inv.Balance)
		}).
		Return(&domain.Invoice{InvoiceID: 43, ClientID: clientID, No: 2, Balance: dec("50000")}, nil).Once()

	created, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.True(created.Balance.Equal(dec("50000")))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_OverpaymentGoesNegative() {
	ctx := context.Background()
	clientID := int64(3)
	req := dto.CreateInvoiceRequest{
		ClientID: clientID,
		No:       5,
		Payment:  dec("90000"),
		Details: []dto.InvoiceDetailRequest{
			{Name: "감자", Quantity: 5, Price: dec("10000")},
		},
	}

	latest := &domain.Invoice{InvoiceID: 9, ClientID: clientID, No: 4, Balance: dec("20000")}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(testClient(clientID), nil).Once()
	suite.mockInvoiceRepo.On("FindLatestInvoice", ctx, clientID).Return(latest, nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoiceWithDetails", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceDetail")).
		Run(func(args mock.Arguments) {
			inv := args.Get(1).(domain.Invoice)
			// 50000 + 20000 - 90000 = -20000, a credit carried forward
			suite.True(inv.Balance.Equal(dec("-20000")), "balance was %s", inv.Balance)
		}).
		Return(&domain.Invoice{InvoiceID: 10, ClientID: clientID, No: 5, Balance: dec("-20000")}, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NoDetails() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{ClientID: 1, No: 1}

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "FindClientByID", mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoiceWithDetails", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ClientNotFound() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		ClientID: 99,
		No:       1,
		Details:  []dto.InvoiceDetailRequest{{Name: "사과", Quantity: 1, Price: dec("1000")}},
	}

	suite.mockClientRepo.On("FindClientByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoiceWithDetails", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateNo() {
	ctx := context.Background()
	clientID := int64(7)
	req := dto.CreateInvoiceRequest{
		ClientID: clientID,
		No:       1,
		Details:  []dto.InvoiceDetailRequest{{Name: "사과", Quantity: 1, Price: dec("1000")}},
	}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(testClient(clientID), nil).Once()
	suite.mockInvoiceRepo.On("FindLatestInvoice", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockInvoiceRepo.On("CreateInvoiceWithDetails", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceDetail")).
		Return(nil, apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RecomputesFromOwnPosition() {
	ctx := context.Background()
	invoiceID := int64(43)
	clientID := int64(7)
	createDate := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)

	stored := &domain.Invoice{
		InvoiceID:  invoiceID,
		ClientID:   clientID,
		No:         2,
		Balance:    dec("50000"),
		Payment:    dec("100000"),
		CreateDate: createDate,
	}

	note := "수정됨"
	req := dto.UpdateInvoiceRequest{
		Note:    &note,
		Payment: dec("60000"),
		Details: []dto.InvoiceDetailRequest{
			{Name: "양파", Spec: "20kg", Quantity: 3, Price: dec("20000")},
		},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(stored, nil).Once()
	// The anchor is the invoice's own createDate, not time.Now().
	suite.mockInvoiceRepo.On("FindPreviousBalance", ctx, clientID, createDate).Return(dec("70000"), nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceWithDetails", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceDetail")).
		Run(func(args mock.Arguments) {
			inv := args.Get(1).(domain.Invoice)
			// 60000 + 70000 - 60000
			suite.True(inv.Balance.Equal(dec("70000")), "balance was %s", inv.Balance)
			suite.Equal("수정됨", inv.Note)
			details := args.Get(2).([]domain.InvoiceDetail)
			suite.Len(details, 1)
			suite.Equal("양파", details[0].Name)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, invoiceID, req)

	suite.Require().NoError(err)
	suite.True(updated.Balance.Equal(dec("70000")))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_NotFound() {
	ctx := context.Background()
	req := dto.UpdateInvoiceRequest{
		Details: []dto.InvoiceDetailRequest{{Name: "사과", Quantity: 1, Price: dec("1000")}},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateInvoice(ctx, int64(404), req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceWithDetails", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_NoDetails() {
	ctx := context.Background()

	_, err := suite.service.UpdateInvoice(ctx, int64(1), dto.UpdateInvoiceRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceWithDetails() {
	ctx := context.Background()
	invoiceID := int64(42)
	clientID := int64(7)
	createDate := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)

	stored := &domain.Invoice{InvoiceID: invoiceID, ClientID: clientID, No: 1, Balance: dec("70000"), CreateDate: createDate}
	details := []domain.InvoiceDetail{
		{DetailID: 1, InvoiceID: invoiceID, Name: "사과", Quantity: 10, Price: dec("5000")},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(stored, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(testClient(clientID), nil).Once()
	suite.mockInvoiceRepo.On("FindDetailsByInvoiceID", ctx, invoiceID).Return(details, nil).Once()
	suite.mockInvoiceRepo.On("FindPreviousBalance", ctx, clientID, createDate).Return(decimal.Zero, nil).Once()

	invoice, client, gotDetails, previousBalance, err := suite.service.GetInvoiceWithDetails(ctx, invoiceID)

	suite.Require().NoError(err)
	suite.Equal(invoiceID, invoice.InvoiceID)
	suite.Equal("동네마트", client.Name)
	suite.Len(gotDetails, 1)
	suite.True(previousBalance.IsZero())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListInvoicesByClient_MergesTotals() {
	ctx := context.Background()
	clientID := int64(7)

	rows := []domain.InvoiceListRow{
		{InvoiceID: 43, No: 2, Balance: dec("50000"), PreviousBalance: dec("70000")},
		{InvoiceID: 42, No: 1, Balance: dec("70000"), PreviousBalance: decimal.Zero},
	}
	totals := map[int64]decimal.Decimal{
		43: dec("80000"),
		// 42 has no details; its total must default to zero
	}

	suite.mockInvoiceRepo.On("ListInvoiceRowsByClient", ctx, clientID).Return(rows, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceTotals", ctx, []int64{43, 42}).Return(totals, nil).Once()

	got, err := suite.service.ListInvoicesByClient(ctx, clientID)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].Total.Equal(dec("80000")))
	suite.True(got[1].Total.IsZero())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListInvoicesByClient_Empty() {
	ctx := context.Background()

	suite.mockInvoiceRepo.On("ListInvoiceRowsByClient", ctx, int64(7)).Return([]domain.InvoiceListRow{}, nil).Once()

	got, err := suite.service.ListInvoicesByClient(ctx, int64(7))

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceTotals", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetLatestInvoice_NoneYet() {
	ctx := context.Background()

	suite.mockInvoiceRepo.On("FindLatestInvoice", ctx, int64(7)).Return(nil, apperrors.ErrNotFound).Once()

	latest, err := suite.service.GetLatestInvoice(ctx, int64(7))

	suite.Require().NoError(err)
	suite.Nil(latest)
}

func (suite *InvoiceServiceTestSuite) TestGetLatestInvoice_Found() {
	ctx := context.Background()
	stored := &domain.Invoice{InvoiceID: 43, ClientID: 7, No: 2, Balance: dec("50000")}

	suite.mockInvoiceRepo.On("FindLatestInvoice", ctx, int64(7)).Return(stored, nil).Once()

	latest, err := suite.service.GetLatestInvoice(ctx, int64(7))

	suite.Require().NoError(err)
	suite.Require().NotNil(latest)
	suite.Equal(int64(2), latest.No)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
