package processors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zwennpay/statements/src/config"
	"github.com/zwennpay/statements/src/models"
)

func TestMatchIsCaseAndWhitespaceInsensitive(t *testing.T) {
	matcher := NewMerchantMatcher(config.MatchKeyModeTradeName)
	masters := []models.MasterRecord{
		{TradeName: "acme", MerchantName: "Acme Trading Ltd"},
	}

	master, err := matcher.Match(models.SummaryRecord{TradeName: " Acme "}, masters)
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading Ltd", master.MerchantName)
}

func TestMatchReturnsNotFound(t *testing.T) {
	matcher := NewMerchantMatcher(config.MatchKeyModeTradeName)
	masters := []models.MasterRecord{
		{TradeName: "Acme"},
	}

	_, err := matcher.Match(models.SummaryRecord{TradeName: "Beta"}, masters)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMasterNotFound))
}

func TestMatchFirstMasterWinsOnDuplicates(t *testing.T) {
	matcher := NewMerchantMatcher(config.MatchKeyModeTradeName)
	masters := []models.MasterRecord{
		{TradeName: "Acme", Address: models.OptionalFromCell("First Street")},
		{TradeName: "ACME", Address: models.OptionalFromCell("Second Street")},
	}

	master, err := matcher.Match(models.SummaryRecord{TradeName: "acme"}, masters)
	require.NoError(t, err)
	assert.Equal(t, "First Street", master.Address.Value)
}

func TestMatchCompositeMode(t *testing.T) {
	matcher := NewMerchantMatcher(config.MatchKeyModeComposite)
	masters := []models.MasterRecord{
		{TradeName: "Acme", MerchantName: "Acme North"},
		{TradeName: "Acme", MerchantName: "Acme South"},
	}

	master, err := matcher.Match(models.SummaryRecord{TradeName: "acme", MerchantName: "ACME SOUTH"}, masters)
	require.NoError(t, err)
	assert.Equal(t, "Acme South", master.MerchantName)

	// trade name alone is not enough in composite mode
	_, err = matcher.Match(models.SummaryRecord{TradeName: "acme", MerchantName: "Acme East"}, masters)
	assert.True(t, errors.Is(err, models.ErrMasterNotFound))
}

func TestMatchMasterMerchantNameDoublesAsTradeName(t *testing.T) {
	// master workbooks without a TradeName column still match in
	// single-field mode through the merchant name
	matcher := NewMerchantMatcher(config.MatchKeyModeTradeName)
	masters := []models.MasterRecord{
		{MerchantName: "Acme"},
	}

	master, err := matcher.Match(models.SummaryRecord{TradeName: "acme"}, masters)
	require.NoError(t, err)
	assert.Equal(t, "Acme", master.MerchantName)
}

func TestKeyIsNormalized(t *testing.T) {
	matcher := NewMerchantMatcher(config.MatchKeyModeTradeName)
	a := matcher.Key(models.SummaryRecord{TradeName: " Acme "})
	b := matcher.Key(models.SummaryRecord{TradeName: "acme"})
	assert.Equal(t, a, b)
}
