package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CarryOverLineName is the reserved detail-line name (전잔금) used on printed
// invoices to show the balance carried in from the previous invoice. It is
// not a real product and must be excluded from all revenue aggregations.
const CarryOverLineName = "전잔금"

// Invoice is a single billed transaction for a client. Balance is the amount
// the client still owes after this invoice, carried forward invoice-to-invoice.
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

// InvoiceDetail is a single line item owned by exactly one invoice.
// Line totals are derived, never stored.
type InvoiceDetail struct {
	DetailID  int64           `json:"detailID"`
	InvoiceID int64           `json:"invoiceID"`
	Name      string          `json:"name"`
	Spec      string          `json:"spec"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Total returns quantity * price for this line.
func (d InvoiceDetail) Total() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(d.Quantity))
}

// Subtotal sums quantity * price over all detail lines.
func Subtotal(details []InvoiceDetail) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range details {
		sum = sum.Add(d.Total())
	}
	return sum
}

// ComputeBalance is the single balance rule shared by the create and update
// paths: what the client owes after an invoice is the new charges plus the
// balance carried in from the previous invoice, minus what was paid now.
func ComputeBalance(subtotal, previousBalance, payment decimal.Decimal) decimal.Decimal {
	return subtotal.Add(previousBalance).Sub(payment)
}

// DisplayNumber renders the human-facing invoice number, e.g. INVOICE-3-17.
func (i Invoice) DisplayNumber() string {
	return fmt.Sprintf("INVOICE-%d-%d", i.ClientID, i.No)
}
