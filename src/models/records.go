package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MissingField is the literal rendered wherever a source cell carried no value.
const MissingField = "N/A"

// OptionalString is a cell value that may be absent from the source dataset.
// A cell containing only whitespace counts as absent.
type OptionalString struct {
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// OptionalFromCell builds an OptionalString from a raw spreadsheet cell.
func OptionalFromCell(cell string) OptionalString {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return OptionalString{}
	}
	return OptionalString{Value: trimmed, Present: true}
}

// Display returns the value, or the N/A sentinel when the field is absent.
func (o OptionalString) Display() string {
	if !o.Present {
		return MissingField
	}
	return o.Value
}

// MasterRecord is one row of merchant reference data from the master dataset.
// Immutable once loaded; one record may be looked up by many summary rows.
type MasterRecord struct {
	TradeName     string         `json:"trade_name"`
	MerchantName  string         `json:"merchant_name"`
	Address       OptionalString `json:"address"`
	Contact       OptionalString `json:"contact"`
	Email         OptionalString `json:"email"`
	BankAccountNo OptionalString `json:"bank_account_no"`
}

// DisplayName returns the name shown in the customer-details block.
func (m MasterRecord) DisplayName() string {
	if m.MerchantName != "" {
		return m.MerchantName
	}
	return m.TradeName
}

// Identity returns the field the statement filename is derived from.
func (m MasterRecord) Identity() string {
	if m.TradeName != "" {
		return m.TradeName
	}
	return m.MerchantName
}

// SummaryRecord is one row of periodic financial activity for a merchant.
type SummaryRecord struct {
	TradeName          string          `json:"trade_name"`
	MerchantName       string          `json:"merchant_name"`
	BankAccountNo      OptionalString  `json:"bank_account_no"`
	TransactionAmount  decimal.Decimal `json:"transaction_amount"`
	TransactionCharges decimal.Decimal `json:"transaction_charges"`
	TransactionTax     decimal.Decimal `json:"transaction_tax"`
	SettledAmount      decimal.Decimal `json:"settled_amount"`
}

// MatchKey is the normalized composite of identity fields used to join a
// SummaryRecord to a MasterRecord. Comparison is exact after normalization.
type MatchKey string
