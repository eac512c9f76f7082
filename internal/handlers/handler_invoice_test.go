package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	portssvc "github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/ports/services"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/dto"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/handlers"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, invoiceID int64, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoiceWithDetails(ctx context.Context, invoiceID int64) (*domain.Invoice, *domain.Client, []domain.InvoiceDetail, decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, nil, nil, decimal.Zero, args.Error(4)
	}
	return args.Get(0).(*domain.Invoice), args.Get(1).(*domain.Client), args.Get(2).([]domain.InvoiceDetail), args.Get(3).(decimal.Decimal), args.Error(4)
}

func (m *MockInvoiceService) ListInvoicesByClient(ctx context.Context, clientID int64) ([]domain.InvoiceListRow, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceListRow), args.Error(1)
}

func (m *MockInvoiceService) GetLatestInvoice(ctx context.Context, clientID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Test Suite Setup ---

type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
	jwtSecret          string
	testUserID         string
}

func (suite *InvoiceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.testUserID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockInvoiceService = new(MockInvoiceService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterInvoiceRoutes(v1, suite.mockInvoiceService)
}

func (suite *InvoiceHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.testUserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	req := dto.CreateInvoiceRequest{
		ClientID: 7,
		No:       1,
		Payment:  decimal.RequireFromString("30000"),
		Details: []dto.InvoiceDetailRequest{
			{Name: "사과", Spec: "10kg", Quantity: 10, Price: decimal.RequireFromString("5000")},
		},
	}

	created := &domain.Invoice{InvoiceID: 42, ClientID: 7, No: 1, Balance: decimal.RequireFromString("20000")}
	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest")).
		Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/invoices", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreateInvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(42), resp.InvoiceID)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_MissingDetailsRejectedByBinding() {
	body := map[string]any{"clientId": 7, "no": 1}

	w := suite.doRequest(http.MethodPost, "/api/v1/invoices", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_DuplicateNoConflict() {
	req := dto.CreateInvoiceRequest{
		ClientID: 7,
		No:       1,
		Details:  []dto.InvoiceDetailRequest{{Name: "사과", Quantity: 1, Price: decimal.RequireFromString("1000")}},
	}

	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/invoices", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Unauthorized() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_Success() {
	invoice := &domain.Invoice{InvoiceID: 42, ClientID: 7, No: 1, Balance: decimal.RequireFromString("70000")}
	client := &domain.Client{ClientID: 7, Name: "동네마트", Phone: "010-1234-5678"}
	details := []domain.InvoiceDetail{
		{DetailID: 1, InvoiceID: 42, Name: "사과", Spec: "10kg", Quantity: 10, Price: decimal.RequireFromString("5000")},
	}

	suite.mockInvoiceService.On("GetInvoiceWithDetails", mock.Anything, int64(42)).
		Return(invoice, client, details, decimal.Zero, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/invoices/42", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FindInvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INVOICE-7-1", resp.Invoice.DisplayNo)
	suite.Equal("동네마트", resp.Client.Name)
	suite.Require().Len(resp.Details, 1)
	suite.True(resp.Details[0].Total.Equal(decimal.RequireFromString("50000")), "per-line total is quantity*price")
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	suite.mockInvoiceService.On("GetInvoiceWithDetails", mock.Anything, int64(404)).
		Return(nil, nil, nil, decimal.Zero, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/invoices/404", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_InvalidID() {
	w := suite.doRequest(http.MethodGet, "/api/v1/invoices/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "GetInvoiceWithDetails", mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoice_Success() {
	note := "수정"
	req := dto.UpdateInvoiceRequest{
		Note:    &note,
		Payment: decimal.RequireFromString("60000"),
		Details: []dto.InvoiceDetailRequest{{Name: "양파", Quantity: 3, Price: decimal.RequireFromString("20000")}},
	}

	updated := &domain.Invoice{InvoiceID: 43, ClientID: 7, No: 2, Balance: decimal.RequireFromString("70000"), Note: note}
	suite.mockInvoiceService.On("UpdateInvoice", mock.Anything, int64(43), mock.AnythingOfType("dto.UpdateInvoiceRequest")).
		Return(updated, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/invoices/43", req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.RequireFromString("70000")))
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoicesByClient_Success() {
	rows := []domain.InvoiceListRow{
		{InvoiceID: 43, No: 2, Balance: decimal.RequireFromString("50000"), PreviousBalance: decimal.RequireFromString("70000"), Total: decimal.RequireFromString("80000")},
		{InvoiceID: 42, No: 1, Balance: decimal.RequireFromString("70000"), PreviousBalance: decimal.Zero, Total: decimal.RequireFromString("100000")},
	}

	suite.mockInvoiceService.On("ListInvoicesByClient", mock.Anything, int64(7)).Return(rows, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/clients/7/invoices", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListInvoicesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Invoices, 2)
	suite.Equal(int64(43), resp.Invoices[0].InvoiceID, "newest first")
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestGetLatestInvoice_NullWhenNone() {
	suite.mockInvoiceService.On("GetLatestInvoice", mock.Anything, int64(7)).Return(nil, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/clients/7/invoices/latest", nil)

	suite.Equal(http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &raw))
	suite.Equal("null", string(raw["latestInvoice"]))
}

func (suite *InvoiceHandlerTestSuite) TestGetLatestInvoice_Found() {
	latest := &domain.Invoice{InvoiceID: 43, ClientID: 7, No: 2, Balance: decimal.RequireFromString("50000")}
	suite.mockInvoiceService.On("GetLatestInvoice", mock.Anything, int64(7)).Return(latest, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/clients/7/invoices/latest", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LatestInvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.LatestInvoice)
	suite.Equal(int64(2), resp.LatestInvoice.No)
}

func TestInvoiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
