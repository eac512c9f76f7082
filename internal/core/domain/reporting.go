package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceListRow is one row of a client's invoice history: the stored balance
// plus the two derived figures (previous balance via window function, line
// total via aggregation) merged by invoice id.
type InvoiceListRow struct {
	InvoiceID       int64           `json:"invoiceID"`
	No              int64           `json:"no"`
	CreateDate      time.Time       `json:"createDate"`
	Balance         decimal.Decimal `json:"balance"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	Total           decimal.Decimal `json:"total"`
}

// ClientBalanceRow is one row of the outstanding-balance report.
type ClientBalanceRow struct {
	ClientID          int64           `json:"clientID"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	Balance           decimal.Decimal `json:"balance"`
	LatestInvoiceDate *time.Time      `json:"latestInvoiceDate"`
}

// ClientSalesRow is one row of the per-client monthly sales report.
type ClientSalesRow struct {
	ClientID   int64           `json:"clientID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	LatestDate time.Time       `json:"latestDate"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// ProductSalesRow is one row of the per-product monthly sales report,
// grouped by trimmed (name, spec).
type ProductSalesRow struct {
	Name     string          `json:"name"`
	Spec     string          `json:"spec"`
	Quantity int64           `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}
