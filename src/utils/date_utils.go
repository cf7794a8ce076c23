package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/zwennpay/statements/src/models"
)

// ParsePeriodDate parses a period boundary typed by the operator,
// e.g. "01 November 2025".
func ParsePeriodDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(models.PeriodDateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period date %q (expected format %q): %w", dateStr, models.PeriodDateLayout, err)
	}
	return t, nil
}
