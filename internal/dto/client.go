package dto

import (
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest defines the data needed to register a new client (거래처).
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

// UpdateClientRequest defines the data allowed for editing a client.
// Pointers distinguish "not provided" from zero values.
type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Note  *string `json:"note"`
}

// SetFavoriteRequest toggles the display-ordering flag.
type SetFavoriteRequest struct {
	IsFavorite *bool `json:"isFavorite" binding:"required"`
}

// SetVisibilityRequest hides or shows a client in the default listing.
type SetVisibilityRequest struct {
	IsVisible *bool `json:"isVisible" binding:"required"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
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

// ListClientsResponse wraps the client listing.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:   c.ClientID,
		Name:       c.Name,
		Phone:      c.Phone,
		Note:       c.Note,
		Balance:    c.Balance,
		IsFavorite: c.IsFavorite,
		IsVisible:  c.IsVisible,
		CreateDate: c.CreateDate,
		UpdateDate: c.UpdateDate,
	}
}

// ToClientResponses converts a slice of domain.Client to []ClientResponse.
func ToClientResponses(cs []domain.Client) []ClientResponse {
	responses := make([]ClientResponse, len(cs))
	for i, c := range cs {
		responses[i] = ToClientResponse(&c)
	}
	return responses
}
