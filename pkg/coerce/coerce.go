package coerce

import (
	"time"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/currency"

	"github.com/goliatone/go-mtfield/pkg/pattern"
)

// Parse converts raw to the Go value for type tag t:
//
//	string      string
//	number      int64
//	decimal     *apd.Decimal
//	date2/date4 Date
//	time2/time3 Clock
//	currency    currency.Unit
//	bic         BIC
//	lt-address  LTAddress
//	mir         MIR
func Parse(t pattern.Type, raw string) (any, bool) {
	switch t {
	case pattern.TypeString:
		return raw, raw != ""
	case pattern.TypeNumber:
		return wrap(ParseNumber(raw))
	case pattern.TypeDecimal:
		return wrap(ParseDecimal(raw))
	case pattern.TypeDate2:
		return wrap(ParseDate2(raw))
	case pattern.TypeDate4:
		return wrap(ParseDate4(raw))
	case pattern.TypeTime2:
		return wrap(ParseTime2(raw))
	case pattern.TypeTime3:
		return wrap(ParseTime3(raw))
	case pattern.TypeCurrency:
		return wrap(ParseCurrency(raw))
	case pattern.TypeBIC:
		return wrap(ParseBIC(raw))
	case pattern.TypeLTAddress:
		return wrap(ParseLTAddress(raw))
	case pattern.TypeMIR:
		return wrap(ParseMIR(raw))
	}
	return nil, false
}

// Format converts v back to its wire form for type tag t. Besides the types
// returned by Parse it accepts a few conveniences: int and apd.Decimal
// values, time.Time for dates and times, and plain strings for currencies
// and identifiers.
func Format(t pattern.Type, v any) (string, bool) {
	if v == nil {
		return "", false
	}
	switch t {
	case pattern.TypeString:
		s, ok := v.(string)
		return s, ok && s != ""
	case pattern.TypeNumber:
		switch n := v.(type) {
		case int64:
			return FormatNumber(n)
		case int:
			return FormatNumber(int64(n))
		case string:
			if _, ok := ParseNumber(n); ok {
				return n, true
			}
		}
	case pattern.TypeDecimal:
		switch d := v.(type) {
		case *apd.Decimal:
			return FormatDecimal(d)
		case apd.Decimal:
			return FormatDecimal(&d)
		case int64:
			return FormatDecimal(apd.New(d, 0))
		case int:
			return FormatDecimal(apd.New(int64(d), 0))
		case string:
			if parsed, ok := ParseDecimal(d); ok {
				return FormatDecimal(parsed)
			}
		}
	case pattern.TypeDate2, pattern.TypeDate4:
		var d Date
		switch value := v.(type) {
		case Date:
			d = value
		case time.Time:
			d = DateOf(value)
			if t == pattern.TypeDate2 {
				d.Year %= 100
			}
		default:
			return "", false
		}
		if t == pattern.TypeDate2 {
			return FormatDate2(d)
		}
		return FormatDate4(d)
	case pattern.TypeTime2, pattern.TypeTime3:
		var c Clock
		switch value := v.(type) {
		case Clock:
			c = value
		case time.Time:
			c = ClockOf(value)
		default:
			return "", false
		}
		if t == pattern.TypeTime2 {
			return FormatTime2(c)
		}
		return FormatTime3(c)
	case pattern.TypeCurrency:
		switch unit := v.(type) {
		case currency.Unit:
			return FormatCurrency(unit)
		case string:
			if parsed, ok := ParseCurrency(unit); ok {
				return FormatCurrency(parsed)
			}
		}
	case pattern.TypeBIC:
		switch b := v.(type) {
		case BIC:
			return FormatBIC(b)
		case string:
			if _, ok := ParseBIC(b); ok {
				return b, true
			}
		}
	case pattern.TypeLTAddress:
		switch a := v.(type) {
		case LTAddress:
			return FormatLTAddress(a)
		case string:
			if _, ok := ParseLTAddress(a); ok {
				return a, true
			}
		}
	case pattern.TypeMIR:
		switch m := v.(type) {
		case MIR:
			return FormatMIR(m)
		case string:
			if _, ok := ParseMIR(m); ok {
				return m, true
			}
		}
	}
	return "", false
}

func wrap[T any](v T, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}
