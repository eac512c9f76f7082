package mapping

import (
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:   d.ClientID,
		Name:       d.Name,
		Phone:      d.Phone,
		Note:       d.Note,
		Balance:    d.Balance,
		IsFavorite: d.IsFavorite,
		IsVisible:  d.IsVisible,
		CreateDate: d.CreateDate,
		UpdateDate: d.UpdateDate,
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:   m.ClientID,
		Name:       m.Name,
		Phone:      m.Phone,
		Note:       m.Note,
		Balance:    m.Balance,
		IsFavorite: m.IsFavorite,
		IsVisible:  m.IsVisible,
		CreateDate: m.CreateDate,
		UpdateDate: m.UpdateDate,
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
