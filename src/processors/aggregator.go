package processors

import (
	"github.com/zwennpay/statements/src/models"
)

// totalsAggregatorImpl implements the TotalsAggregator interface.
type totalsAggregatorImpl struct{}

// NewTotalsAggregator creates a new instance of TotalsAggregator.
func NewTotalsAggregator() TotalsAggregator {
	return &totalsAggregatorImpl{}
}

// Aggregate sums the four monetary fields across the rows given. The caller
// decides which rows to pass: a single pre-aggregated row per merchant or all
// rows sharing one match key both work. Values are plain decimal magnitudes
// in the statement's base currency; no conversion is performed.
func (a *totalsAggregatorImpl) Aggregate(summaries []models.SummaryRecord) models.AggregatedTotals {
	var totals models.AggregatedTotals
	for _, s := range summaries {
		totals.TransactionAmount = totals.TransactionAmount.Add(s.TransactionAmount)
		totals.TransactionCharges = totals.TransactionCharges.Add(s.TransactionCharges)
		totals.TransactionTax = totals.TransactionTax.Add(s.TransactionTax)
		totals.SettledAmount = totals.SettledAmount.Add(s.SettledAmount)
	}
	return totals
}
