package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client mirrors the clients table.
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
