package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a wholesale buyer (거래처) that invoices are issued against.
// Balance always mirrors the balance of the client's latest invoice and is
// only ever written by the invoice ledger, never by presentation code.
type Client struct {
	ClientID   int64           `json:"clientID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Note       string          `json:"note"`
	Balance    decimal.Decimal `json:"balance"`
	IsFavorite bool            `json:"isFavorite"`
	IsVisible  bool            `json:"isVisible"`
	CreateDate time.Time       `json:"createDate"`
	UpdateDate time.Time       `json:"updateDate"`
}
