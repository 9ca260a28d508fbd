package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Column encodings. Timestamps are RFC 3339; shipment dates are stored at
// day granularity only, which makes the restock comparison a plain string
// compare away from being exact.
const (
	dayFormat       = "2006-01-02"
	timestampFormat = time.RFC3339
)

func formatDay(t time.Time) string {
	return t.Format(dayFormat)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse shipment date %q: %w", s, err)
	}
	return t, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// Prices are stored as exact decimal strings, never floats.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", s, err)
	}
	return d, nil
}
