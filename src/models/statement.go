package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodDateLayout is the display format for period boundaries, matching the
// format operators type into the front-end (e.g. "01 November 2025").
const PeriodDateLayout = "02 January 2006"

// PeriodWindow is the pair of calendar-date boundaries for one batch run.
// It is used for display and filenames only; the summary dataset is assumed
// pre-filtered to the period by the caller.
type PeriodWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p PeriodWindow) StartLabel() string {
	return p.Start.Format(PeriodDateLayout)
}

func (p PeriodWindow) EndLabel() string {
	return p.End.Format(PeriodDateLayout)
}

// IsZero reports whether either boundary is missing.
func (p PeriodWindow) IsZero() bool {
	return p.Start.IsZero() || p.End.IsZero()
}

// AggregatedTotals holds the four monetary sums for one merchant and period.
// Computed fresh per run, never persisted.
type AggregatedTotals struct {
	TransactionAmount  decimal.Decimal `json:"transaction_amount"`
	TransactionCharges decimal.Decimal `json:"transaction_charges"`
	TransactionTax     decimal.Decimal `json:"transaction_tax"`
	SettledAmount      decimal.Decimal `json:"settled_amount"`
}

// StatementDocument is the rendered statement for one matched merchant.
// Never mutated after the renderer returns it.
type StatementDocument struct {
	Filename string `json:"filename"`
	Content  []byte `json:"-"`
}

// OutcomeKind tags the result of processing one summary row.
type OutcomeKind string

const (
	OutcomeProduced     OutcomeKind = "produced"
	OutcomeUnmatched    OutcomeKind = "unmatched"
	OutcomeRenderFailed OutcomeKind = "render_failed"
)

// ProcessingOutcome is the tagged result for one summary row. Exactly one is
// recorded per SummaryRecord in processing order.
type ProcessingOutcome struct {
	Kind     OutcomeKind        `json:"kind"`
	Key      MatchKey           `json:"key"`
	Document *StatementDocument `json:"document,omitempty"` // set only for OutcomeProduced
	Error    string             `json:"error,omitempty"`    // set only for OutcomeRenderFailed
}

// DeliveryOutcome records one notification attempt for a produced statement.
type DeliveryOutcome struct {
	Recipient string `json:"recipient"`
	Filename  string `json:"filename"`
	Delivered bool   `json:"delivered"`
	Reason    string `json:"reason,omitempty"`
}

// BatchResult is the full outcome of one batch run.
type BatchResult struct {
	BatchID      string              `json:"batch_id"`
	Period       PeriodWindow        `json:"period"`
	Outcomes     []ProcessingOutcome `json:"outcomes"`
	Errors       []string            `json:"errors"`
	Deliveries   []DeliveryOutcome   `json:"deliveries,omitempty"`
	SuccessCount int                 `json:"success_count"`
}
