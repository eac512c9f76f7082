package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	details := []InvoiceDetail{
		{Name: "사과", Spec: "10kg", Quantity: 10, Price: decimal.NewFromInt(1000)},
		{Name: "배", Spec: "7.5kg", Quantity: 3, Price: decimal.NewFromInt(25000)},
	}

	assert.True(t, Subtotal(details).Equal(decimal.NewFromInt(85000)))
	assert.True(t, Subtotal(nil).Equal(decimal.Zero))
}

func TestComputeBalance_FirstInvoice(t *testing.T) {
	// First invoice for a client: no carried-in balance.
	subtotal := decimal.NewFromInt(10000)
	payment := decimal.NewFromInt(5000)

	balance := ComputeBalance(subtotal, decimal.Zero, payment)

	assert.True(t, balance.Equal(decimal.NewFromInt(5000)))
}

func TestComputeBalance_ChainedInvoice(t *testing.T) {
	// Second invoice carries the previous invoice's balance forward.
	previous := decimal.NewFromInt(5000)
	subtotal := decimal.NewFromInt(3000)
	payment := decimal.NewFromInt(2000)

	balance := ComputeBalance(subtotal, previous, payment)

	assert.True(t, balance.Equal(decimal.NewFromInt(6000)))
}

func TestComputeBalance_CanGoNegative(t *testing.T) {
	// Overpayment leaves a credit; the ledger keeps the signed value as-is.
	balance := ComputeBalance(decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(3000))

	assert.True(t, balance.Equal(decimal.NewFromInt(-2000)))
}

func TestInvoiceDisplayNumber(t *testing.T) {
	inv := Invoice{InvoiceID: 99, ClientID: 3, No: 17}
	assert.Equal(t, "INVOICE-3-17", inv.DisplayNumber())
}

func TestCarryOverLineIsNotRevenue(t *testing.T) {
	// The carried-over balance line appears on printed invoices but is not a
	// product; aggregation queries must filter on this exact name.
	assert.Equal(t, "전잔금", CarryOverLineName)
}
