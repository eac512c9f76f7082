package mapping

import (
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:  d.InvoiceID,
		ClientID:   d.ClientID,
		No:         d.No,
		Balance:    d.Balance,
		Payment:    d.Payment,
		Note:       d.Note,
		CreateDate: d.CreateDate,
		UpdateDate: d.UpdateDate,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:  m.InvoiceID,
		ClientID:   m.ClientID,
		No:         m.No,
		Balance:    m.Balance,
		Payment:    m.Payment,
		Note:       m.Note,
		CreateDate: m.CreateDate,
		UpdateDate: m.UpdateDate,
	}
}

// ToModelInvoiceDetail converts a domain InvoiceDetail to a model InvoiceDetail
func ToModelInvoiceDetail(d domain.InvoiceDetail) models.InvoiceDetail {
	return models.InvoiceDetail{
		DetailID:  d.DetailID,
		InvoiceID: d.InvoiceID,
		Name:      d.Name,
		Spec:      d.Spec,
		Quantity:  d.Quantity,
		Price:     d.Price,
	}
}

// ToDomainInvoiceDetail converts a model InvoiceDetail to a domain InvoiceDetail
func ToDomainInvoiceDetail(m models.InvoiceDetail) domain.InvoiceDetail {
	return domain.InvoiceDetail{
		DetailID:  m.DetailID,
		InvoiceID: m.InvoiceID,
		Name:      m.Name,
		Spec:      m.Spec,
		Quantity:  m.Quantity,
		Price:     m.Price,
	}
}

// ToDomainInvoiceDetailSlice converts model details to domain details
func ToDomainInvoiceDetailSlice(ms []models.InvoiceDetail) []domain.InvoiceDetail {
	ds := make([]domain.InvoiceDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceDetail(m)
	}
	return ds
}
