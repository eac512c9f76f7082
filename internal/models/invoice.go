package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice mirrors the invoices table. (client_id, no) is unique.
type Invoice struct {
	InvoiceID  int64           `json:"invoiceID"`
	ClientID   int64           `json:"clientID"`
	No         int64           `json:"no"`
	Balance    decimal.Decimal `json:"balance"`
	Payment    decimal.Decimal `json:"payment"`
	Note       string          `json:"note"`
	CreateDate time.Time       `json:"createDate"`
	UpdateDate time.Time       `json:"updateDate"`
}

// InvoiceDetail mirrors the invoice_details table. Rows are replaced
// wholesale when the parent invoice is edited, never patched.
type InvoiceDetail struct {
	DetailID  int64           `json:"detailID"`
	InvoiceID int64           `json:"invoiceID"`
	Name      string          `json:"name"`
	Spec      string          `json:"spec"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
