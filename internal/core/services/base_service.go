package services

import (
	"errors"

	"github.com/dongbu-chunggwa/invoice_ledger_app/internal/apperrors"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
