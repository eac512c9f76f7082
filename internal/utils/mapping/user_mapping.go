package mapping

import (
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/core/domain"
	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                d.UserID,
		Username:              d.Username,
		Name:                  d.Name,
		PasswordHash:          d.PasswordHash,
		GoogleID:              d.GoogleID,
		RefreshTokenHash:      d.RefreshTokenHash,
		RefreshTokenExpiresAt: d.RefreshTokenExpiresAt,
		CreateDate:            d.CreateDate,
		UpdateDate:            d.UpdateDate,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                m.UserID,
		Username:              m.Username,
		Name:                  m.Name,
		PasswordHash:          m.PasswordHash,
		GoogleID:              m.GoogleID,
		RefreshTokenHash:      m.RefreshTokenHash,
		RefreshTokenExpiresAt: m.RefreshTokenExpiresAt,
		CreateDate:            m.CreateDate,
		UpdateDate:            m.UpdateDate,
	}
}
