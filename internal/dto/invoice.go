package dto

import (
	"time"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceDetailRequest is one line item in a create/update request.
type InvoiceDetailRequest struct {
	Name     string          `json:"name" binding:"required"`
	Spec     string          `json:"spec"`
	Quantity int64           `json:"quantity" binding:"required,gt=0"`
	Price    decimal.Decimal `json:"price"`
}

// CreateInvoiceRequest defines the data needed to create an invoice.
// The resulting balance is computed server-side; callers only send the
// charges and the payment.
type CreateInvoiceRequest struct {
	ClientID int64                  `json:"clientId" binding:"required"`
	No       int64                  `json:"no" binding:"required,gt=0"`
	Payment  decimal.Decimal        `json:"payment"`
	Note     string                 `json:"note"`
	Details  []InvoiceDetailRequest `json:"details" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest defines the data allowed when editing an invoice.
// The detail set replaces the stored one wholesale, and the balance is
// recomputed server-side from the invoice's own previous-balance context.
type UpdateInvoiceRequest struct {
	Note    *string                `json:"note"`
	Payment decimal.Decimal        `json:"payment"`
	Details []InvoiceDetailRequest `json:"details" binding:"required,min=1,dive"`
}

// ToDomainDetails converts request line items to domain details.
func ToDomainDetails(reqs []InvoiceDetailRequest) []domain.InvoiceDetail {
	details := make([]domain.InvoiceDetail, len(reqs))
	for i, r := range reqs {
		details[i] = domain.InvoiceDetail{
			Name:     r.Name,
			Spec:     r.Spec,
			Quantity: r.Quantity,
			Price:    r.Price,
		}
	}
	return details
}

// InvoiceDetailResponse is one line item in a fetched invoice.
type InvoiceDetailResponse struct {
	Name     string          `json:"name"`
	Spec     string          `json:"spec"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// InvoiceClientResponse is the owning client summary embedded in an invoice fetch.
type InvoiceClientResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// InvoiceResponse defines the data returned for a single invoice.
type InvoiceResponse struct {
	InvoiceID  int64           `json:"invoiceID"`
	ClientID   int64           `json:"clientId"`
	No         int64           `json:"no"`
	DisplayNo  string          `json:"displayNo"`
	Balance    decimal.Decimal `json:"balance"`
	Payment    decimal.Decimal `json:"payment"`
	Note       string          `json:"note"`
	CreateDate time.Time       `json:"createDate"`
	UpdateDate time.Time       `json:"updateDate"`
}

// FindInvoiceResponse is the combined payload for the invoice view/print
// screen: the invoice, its client, its lines, and the carried-in balance.
type FindInvoiceResponse struct {
	Invoice         InvoiceResponse         `json:"invoice"`
	Client          InvoiceClientResponse   `json:"client"`
	Details         []InvoiceDetailResponse `json:"details"`
	PreviousBalance decimal.Decimal         `json:"previousBalance"`
}

// InvoiceListRowResponse is one row of a client's invoice history.
type InvoiceListRowResponse struct {
	InvoiceID       int64           `json:"id"`
	No              int64           `json:"no"`
	CreateDate      time.Time       `json:"createDate"`
	Balance         decimal.Decimal `json:"balance"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	Total           decimal.Decimal `json:"total"`
}

// ListInvoicesResponse wraps a client's invoice history.
type ListInvoicesResponse struct {
	Invoices []InvoiceListRowResponse `json:"invoices"`
}

// LatestInvoiceInfo carries the fields the UI needs to number the next invoice.
type LatestInvoiceInfo struct {
	No      int64           `json:"no"`
	Balance decimal.Decimal `json:"balance"`
}

// LatestInvoiceResponse is null-bodied when the client has no invoices yet.
type LatestInvoiceResponse struct {
	LatestInvoice *LatestInvoiceInfo `json:"latestInvoice"`
}

// CreateInvoiceResponse returns the generated invoice id.
type CreateInvoiceResponse struct {
	InvoiceID int64 `json:"invoiceId"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:  inv.InvoiceID,
		ClientID:   inv.ClientID,
		No:         inv.No,
		DisplayNo:  inv.DisplayNumber(),
		Balance:    inv.Balance,
		Payment:    inv.Payment,
		Note:       inv.Note,
		CreateDate: inv.CreateDate,
		UpdateDate: inv.UpdateDate,
	}
}

// ToInvoiceDetailResponses converts domain details to response lines,
// filling in the derived per-line totals.
func ToInvoiceDetailResponses(details []domain.InvoiceDetail) []InvoiceDetailResponse {
	responses := make([]InvoiceDetailResponse, len(details))
	for i, d := range details {
		responses[i] = InvoiceDetailResponse{
			Name:     d.Name,
			Spec:     d.Spec,
			Quantity: d.Quantity,
			Price:    d.Price,
			Total:    d.Total(),
		}
	}
	return responses
}

// ToInvoiceListRowResponses converts derived list rows to response rows.
func ToInvoiceListRowResponses(rows []domain.InvoiceListRow) []InvoiceListRowResponse {
	responses := make([]InvoiceListRowResponse, len(rows))
	for i, r := range rows {
		responses[i] = InvoiceListRowResponse{
			InvoiceID:       r.InvoiceID,
			No:              r.No,
			CreateDate:      r.CreateDate,
			Balance:         r.Balance,
			PreviousBalance: r.PreviousBalance,
			Total:           r.Total,
		}
	}
	return responses
}
