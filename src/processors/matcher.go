package processors

import (
	"fmt"
	"strings"

	"github.com/zwennpay/statements/src/config"
	"github.com/zwennpay/statements/src/models"
)

// merchantMatcherImpl implements the MerchantMatcher interface. The key mode
// selects which identity fields participate in the match: the surrounding
// system has historically keyed on the trade name alone and on the trade name
// plus merchant name, so both modes are supported.
type merchantMatcherImpl struct {
	keyMode string
}

// NewMerchantMatcher creates a matcher for the given key mode
// (config.MatchKeyModeTradeName or config.MatchKeyModeComposite).
func NewMerchantMatcher(keyMode string) MerchantMatcher {
	return &merchantMatcherImpl{keyMode: keyMode}
}

// normalizeKeyField trims and case-folds one identity field. Matching is
// exact after normalization; there is no fuzzy matching.
func normalizeKeyField(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (m *merchantMatcherImpl) composeKey(tradeName, merchantName string) models.MatchKey {
	if m.keyMode == config.MatchKeyModeComposite {
		return models.MatchKey(normalizeKeyField(tradeName) + "|" + normalizeKeyField(merchantName))
	}
	return models.MatchKey(normalizeKeyField(tradeName))
}

func (m *merchantMatcherImpl) Key(summary models.SummaryRecord) models.MatchKey {
	return m.composeKey(summary.TradeName, summary.MerchantName)
}

func (m *merchantMatcherImpl) masterKey(master models.MasterRecord) models.MatchKey {
	// Master workbooks carry the merchant name column; in single-field mode it
	// doubles as the trade name when the trade name column is absent.
	tradeName := master.TradeName
	if tradeName == "" {
		tradeName = master.MerchantName
	}
	return m.composeKey(tradeName, master.MerchantName)
}

// Match scans masters in dataset order and returns the first record whose key
// matches. Taking the first on duplicates is a deliberate tie-break, not an
// error.
func (m *merchantMatcherImpl) Match(summary models.SummaryRecord, masters []models.MasterRecord) (*models.MasterRecord, error) {
	key := m.Key(summary)
	for i := range masters {
		if m.masterKey(masters[i]) == key {
			return &masters[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", models.ErrMasterNotFound, key)
}
