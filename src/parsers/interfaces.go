package parsers

import (
	"io"

	"github.com/zwennpay/statements/src/models"
)

// MasterParser reads the merchant master dataset into typed records.
type MasterParser interface {
	Parse(file io.Reader) ([]models.MasterRecord, error)
}

// SummaryParser reads the periodic transaction-summary dataset into typed records.
type SummaryParser interface {
	Parse(file io.Reader) ([]models.SummaryRecord, error)
}
