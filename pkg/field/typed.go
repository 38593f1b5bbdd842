package field

import (
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/currency"

	"github.com/goliatone/go-mtfield/pkg/coerce"
	"github.com/goliatone/go-mtfield/pkg/pattern"
)

// ComponentAs converts component n according to its type tag. See
// coerce.Parse for the Go type returned per tag.
func (f *Field) ComponentAs(n int) (any, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return nil, false
	}
	return coerce.Parse(f.typeOf(n), raw)
}

// SetComponentAs formats v according to the type tag of component n and
// stores it. A nil v clears the component. When v cannot be formatted the
// component is left unchanged and false is returned.
func (f *Field) SetComponentAs(n int, v any) bool {
	f.check(n)
	if v == nil {
		f.ClearComponent(n)
		return true
	}
	raw, ok := coerce.Format(f.typeOf(n), v)
	if !ok {
		return false
	}
	f.SetComponent(n, raw)
	return true
}

// AsDecimal reads component n as an amount.
func (f *Field) AsDecimal(n int) (*apd.Decimal, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return nil, false
	}
	return coerce.ParseDecimal(raw)
}

// AsNumber reads component n as an integer.
func (f *Field) AsNumber(n int) (int64, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return 0, false
	}
	return coerce.ParseNumber(raw)
}

// AsDate reads component n as YYMMDD or YYYYMMDD, following its type tag
// and falling back to the value length for untyped components.
func (f *Field) AsDate(n int) (coerce.Date, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return coerce.Date{}, false
	}
	switch f.typeOf(n) {
	case pattern.TypeDate4:
		return coerce.ParseDate4(raw)
	case pattern.TypeDate2:
		return coerce.ParseDate2(raw)
	}
	if len(raw) == 8 {
		return coerce.ParseDate4(raw)
	}
	return coerce.ParseDate2(raw)
}

// AsClock reads component n as HHMM or HHMMSS.
func (f *Field) AsClock(n int) (coerce.Clock, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return coerce.Clock{}, false
	}
	if f.typeOf(n) == pattern.TypeTime3 || len(raw) == 6 {
		return coerce.ParseTime3(raw)
	}
	return coerce.ParseTime2(raw)
}

// AsCurrency reads component n as an ISO 4217 currency.
func (f *Field) AsCurrency(n int) (currency.Unit, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return currency.Unit{}, false
	}
	return coerce.ParseCurrency(raw)
}

// AsBIC reads component n as a bank identifier code.
func (f *Field) AsBIC(n int) (coerce.BIC, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return coerce.BIC{}, false
	}
	return coerce.ParseBIC(raw)
}

// AsLTAddress reads component n as a logical terminal address.
func (f *Field) AsLTAddress(n int) (coerce.LTAddress, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return coerce.LTAddress{}, false
	}
	return coerce.ParseLTAddress(raw)
}

// AsMIR reads component n as a message input reference.
func (f *Field) AsMIR(n int) (coerce.MIR, bool) {
	raw, ok := f.Component(n)
	if !ok {
		return coerce.MIR{}, false
	}
	return coerce.ParseMIR(raw)
}

func (f *Field) typeOf(n int) pattern.Type {
	c, _ := f.def.Component(n)
	return c.Type
}
