package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodDate(t *testing.T) {
	parsed, err := ParsePeriodDate("01 November 2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), parsed)

	// surrounding whitespace from form input is tolerated
	parsed, err = ParsePeriodDate("  30 November 2025 ")
	require.NoError(t, err)
	assert.Equal(t, 30, parsed.Day())
}

func TestParsePeriodDateRejectsOtherFormats(t *testing.T) {
	for _, input := range []string{"2025-11-01", "01/11/2025", "", "November 2025"} {
		_, err := ParsePeriodDate(input)
		assert.Error(t, err, "input %q", input)
	}
}
