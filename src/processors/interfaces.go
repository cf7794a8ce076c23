package processors

import (
	"github.com/zwennpay/statements/src/models"
)

// MerchantMatcher resolves a summary row to its master record via the
// configured match-key fields.
type MerchantMatcher interface {
	// Key builds the normalized match key for a summary row.
	Key(summary models.SummaryRecord) models.MatchKey
	// Match returns the first master record whose key equals the summary
	// row's key, or models.ErrMasterNotFound.
	Match(summary models.SummaryRecord, masters []models.MasterRecord) (*models.MasterRecord, error)
}

// TotalsAggregator computes the four monetary totals over the rows given.
type TotalsAggregator interface {
	Aggregate(summaries []models.SummaryRecord) models.AggregatedTotals
}
