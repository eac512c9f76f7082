package dto

import (
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthQuery binds the month parameter of the monthly reports. The yearmonth
// validation rejects anything not shaped like "YYYY-MM" before the service
// runs.
type MonthQuery struct {
	Month string `form:"month" binding:"required,yearmonth"`
}

// ClientBalanceResponse is one row of the outstanding-balance report.
type ClientBalanceResponse struct {
	ClientID          int64           `json:"clientId"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	Balance           decimal.Decimal `json:"balance"`
	LatestInvoiceDate *time.Time      `json:"latestInvoiceDate"`
}

// BalanceSummaryResponse wraps the outstanding-balance report.
type BalanceSummaryResponse struct {
	Clients []ClientBalanceResponse `json:"clients"`
}

// ClientSalesResponse is one row of the per-client monthly sales report.
type ClientSalesResponse struct {
	ClientID   int64           `json:"clientId"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	LatestDate time.Time       `json:"latestDate"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// MonthlyClientSalesResponse wraps the per-client monthly sales report.
type MonthlyClientSalesResponse struct {
	Clients []ClientSalesResponse `json:"clients"`
}

// ProductSalesResponse is one row of the per-product monthly sales report.
type ProductSalesResponse struct {
	Name     string          `json:"name"`
	Spec     string          `json:"spec"`
	Quantity int64           `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlyProductSalesResponse wraps the per-product monthly sales report.
type MonthlyProductSalesResponse struct {
	Products []ProductSalesResponse `json:"products"`
}

// InvoiceMonthsResponse lists the months available to the report pickers,
// newest first.
type InvoiceMonthsResponse struct {
	Months []string `json:"months"`
}

// ToClientBalanceResponses converts domain balance rows to response rows.
func ToClientBalanceResponses(rows []domain.ClientBalanceRow) []ClientBalanceResponse {
	responses := make([]ClientBalanceResponse, len(rows))
	for i, r := range rows {
		responses[i] = ClientBalanceResponse{
			ClientID:          r.ClientID,
			Name:              r.Name,
			Phone:             r.Phone,
			Balance:           r.Balance,
			LatestInvoiceDate: r.LatestInvoiceDate,
		}
	}
	return responses
}

// ToClientSalesResponses converts domain sales rows to response rows.
func ToClientSalesResponses(rows []domain.ClientSalesRow) []ClientSalesResponse {
	responses := make([]ClientSalesResponse, len(rows))
	for i, r := range rows {
		responses[i] = ClientSalesResponse{
			ClientID:   r.ClientID,
			Name:       r.Name,
			Phone:      r.Phone,
			LatestDate: r.LatestDate,
			TotalSales: r.TotalSales,
		}
	}
	return responses
}

// ToProductSalesResponses converts domain product rows to response rows.
func ToProductSalesResponses(rows []domain.ProductSalesRow) []ProductSalesResponse {
	responses := make([]ProductSalesResponse, len(rows))
	for i, r := range rows {
		responses[i] = ProductSalesResponse{
			Name:     r.Name,
			Spec:     r.Spec,
			Quantity: r.Quantity,
			Amount:   r.Amount,
		}
	}
	return responses
}
