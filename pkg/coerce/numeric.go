package coerce

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ParseDecimal reads a comma separated amount ("1234,56", "1234,", "1234").
// Thousands separators, dots and signs are rejected.
func ParseDecimal(raw string) (*apd.Decimal, bool) {
	if raw == "" || strings.Count(raw, ",") > 1 {
		return nil, false
	}
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if (ch < '0' || ch > '9') && ch != ',' {
			return nil, false
		}
	}
	whole, frac, _ := strings.Cut(raw, ",")
	if whole == "" && frac == "" {
		return nil, false
	}
	if whole == "" {
		whole = "0"
	}
	text := whole
	if frac != "" {
		text += "." + frac
	}
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return nil, false
	}
	return d, true
}

// FormatDecimal writes d with a comma separator that is always present.
// Trailing fraction zeros are dropped: 1234.00 becomes "1234," and 1234.50
// becomes "1234,5". Negative values have no wire form.
func FormatDecimal(d *apd.Decimal) (string, bool) {
	if d == nil || d.Form != apd.Finite {
		return "", false
	}
	if d.Negative && !d.IsZero() {
		return "", false
	}
	text := strings.TrimPrefix(d.Text('f'), "-")
	whole, frac, _ := strings.Cut(text, ".")
	frac = strings.TrimRight(frac, "0")
	if whole == "" {
		whole = "0"
	}
	return whole + "," + frac, true
}

// ParseNumber reads an unsigned digit string.
func ParseNumber(raw string) (int64, bool) {
	if !digits(raw) {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatNumber writes n in base 10. Negative values have no wire form.
func FormatNumber(n int64) (string, bool) {
	if n < 0 {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}
