package coerce

import (
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/goliatone/go-mtfield/pkg/pattern"
)

func TestDecimalFormatLaw(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1234,56": "1234,56",
		"1234,":   "1234,",
		"1234":    "1234,",
		"1234,00": "1234,",
		"1234,50": "1234,5",
		",5":      "0,5",
		"0,":      "0,",
		"000100,": "100,",
	}
	for raw, want := range cases {
		d, ok := ParseDecimal(raw)
		require.True(t, ok, "ParseDecimal(%q)", raw)
		got, ok := FormatDecimal(d)
		require.True(t, ok, "FormatDecimal(%s)", d)
		assert.Equal(t, want, got, "format(parse(%q))", raw)
	}

	for _, raw := range []string{"", ",", "1.234,56", "1,2,3", "-5", "12a", " 1"} {
		_, ok := ParseDecimal(raw)
		assert.False(t, ok, "ParseDecimal(%q) should fail", raw)
	}
}

func TestFormatDecimalFromValues(t *testing.T) {
	t.Parallel()

	got, ok := FormatDecimal(apd.New(123400, -2))
	require.True(t, ok)
	assert.Equal(t, "1234,", got)

	got, ok = FormatDecimal(apd.New(5, 3))
	require.True(t, ok)
	assert.Equal(t, "5000,", got)

	_, ok = FormatDecimal(nil)
	assert.False(t, ok)
	_, ok = FormatDecimal(&apd.Decimal{Form: apd.NaN})
	assert.False(t, ok)

	_, ok = FormatDecimal(apd.New(-1234, -2))
	assert.False(t, ok, "negative amounts have no wire form")
	_, ok = Format(pattern.TypeDecimal, int64(-5))
	assert.False(t, ok)

	zero := apd.New(0, -2)
	zero.Negative = true
	got, ok = FormatDecimal(zero)
	require.True(t, ok)
	assert.Equal(t, "0,", got)
}

func TestDate2KeepsTwoDigitYear(t *testing.T) {
	t.Parallel()

	d, ok := ParseDate2("240101")
	require.True(t, ok)
	assert.Equal(t, Date{Year: 24, Month: 1, Day: 1}, d)

	out, ok := FormatDate2(d)
	require.True(t, ok)
	assert.Equal(t, "240101", out)

	_, ok = ParseDate2("000229")
	assert.True(t, ok, "year 00 is a leap year")
	_, ok = ParseDate2("010229")
	assert.False(t, ok)
	_, ok = ParseDate2("241301")
	assert.False(t, ok)
	_, ok = ParseDate2("2401")
	assert.False(t, ok)

	_, ok = FormatDate2(Date{Year: 2024, Month: 1, Day: 1})
	assert.False(t, ok, "four digit years do not fit YYMMDD")
}

func TestDate4(t *testing.T) {
	t.Parallel()

	d, ok := ParseDate4("20240229")
	require.True(t, ok)
	assert.Equal(t, Date{Year: 2024, Month: 2, Day: 29}, d)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d.Time(nil))

	_, ok = ParseDate4("19000229")
	assert.False(t, ok)
	_, ok = ParseDate4("20000229")
	assert.True(t, ok)
	_, ok = ParseDate4("20240431")
	assert.False(t, ok)
}

func TestTimes(t *testing.T) {
	t.Parallel()

	c, ok := ParseTime2("1030")
	require.True(t, ok)
	assert.Equal(t, Clock{Hour: 10, Minute: 30}, c)

	c, ok = ParseTime3("235959")
	require.True(t, ok)
	out, ok := FormatTime3(c)
	require.True(t, ok)
	assert.Equal(t, "235959", out)

	_, ok = ParseTime2("2460")
	assert.False(t, ok)
	_, ok = ParseTime3("12345")
	assert.False(t, ok)
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	b, ok := ParseBIC("DEUTDEFFXXX")
	require.True(t, ok)
	assert.Equal(t, BIC{Institution: "DEUT", Country: "DE", Location: "FF", Branch: "XXX"}, b)
	assert.True(t, b.HasBranch())

	b, ok = ParseBIC("DEUTDEFF")
	require.True(t, ok)
	assert.False(t, b.HasBranch())

	for _, raw := range []string{"DEUTDEF", "DEUT12FF", "deutdeff", "DEUTDEFFXX"} {
		_, ok := ParseBIC(raw)
		assert.False(t, ok, "ParseBIC(%q)", raw)
	}

	lt, ok := ParseLTAddress("DEUTDEFFAXXX")
	require.True(t, ok)
	assert.Equal(t, "A", lt.Terminal)
	assert.Equal(t, "DEUTDEFFXXX", lt.BIC.String())
	out, ok := FormatLTAddress(lt)
	require.True(t, ok)
	assert.Equal(t, "DEUTDEFFAXXX", out)

	short := LTAddress{BIC: BIC{Institution: "DEUT", Country: "DE", Location: "FF"}, Terminal: "B"}
	out, ok = FormatLTAddress(short)
	require.True(t, ok)
	assert.Equal(t, "DEUTDEFFBXXX", out)

	mir, ok := ParseMIR("240101DEUTDEFFAXXX1234123456")
	require.True(t, ok)
	assert.Equal(t, Date{Year: 24, Month: 1, Day: 1}, mir.Date)
	assert.Equal(t, "1234", mir.Session)
	assert.Equal(t, "123456", mir.Sequence)
	out, ok = FormatMIR(mir)
	require.True(t, ok)
	assert.Equal(t, "240101DEUTDEFFAXXX1234123456", out)

	_, ok = ParseMIR("240101DEUTDEFFAXXX12341234")
	assert.False(t, ok)
}

func TestCurrency(t *testing.T) {
	t.Parallel()

	unit, ok := ParseCurrency("EUR")
	require.True(t, ok)
	assert.Equal(t, currency.EUR, unit)

	code, ok := FormatCurrency(currency.USD)
	require.True(t, ok)
	assert.Equal(t, "USD", code)

	for _, raw := range []string{"eur", "EU", "EURO", "ZZZ"} {
		_, ok := ParseCurrency(raw)
		assert.False(t, ok, "ParseCurrency(%q)", raw)
	}

	_, ok = FormatCurrency(currency.Unit{})
	assert.False(t, ok, "zero unit")
	_, ok = Format(pattern.TypeCurrency, currency.Unit{})
	assert.False(t, ok)
}

func TestParseFormatDispatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		typ pattern.Type
		raw string
	}{
		{pattern.TypeString, "ANY TEXT"},
		{pattern.TypeNumber, "00042"},
		{pattern.TypeDecimal, "1234,56"},
		{pattern.TypeDate2, "240101"},
		{pattern.TypeDate4, "20240101"},
		{pattern.TypeTime2, "1030"},
		{pattern.TypeTime3, "103000"},
		{pattern.TypeCurrency, "GBP"},
		{pattern.TypeBIC, "DEUTDEFF"},
		{pattern.TypeLTAddress, "DEUTDEFFAXXX"},
		{pattern.TypeMIR, "240101DEUTDEFFAXXX1234123456"},
	}
	for _, tc := range cases {
		v, ok := Parse(tc.typ, tc.raw)
		require.True(t, ok, "Parse(%s, %q)", tc.typ, tc.raw)
		out, ok := Format(tc.typ, v)
		require.True(t, ok, "Format(%s, %v)", tc.typ, v)
		if tc.typ == pattern.TypeNumber {
			assert.Equal(t, "42", out)
			continue
		}
		assert.Equal(t, tc.raw, out, "type %s", tc.typ)
	}

	_, ok := Parse(pattern.TypeDate2, "garbage")
	assert.False(t, ok)
	_, ok = Parse(pattern.TypeString, "")
	assert.False(t, ok)
	_, ok = Format(pattern.TypeDecimal, "abc")
	assert.False(t, ok)
	_, ok = Format(pattern.TypeBIC, 42)
	assert.False(t, ok)
}

func TestFormatConveniences(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 9, 45, 30, 0, time.UTC)

	out, ok := Format(pattern.TypeDate2, ts)
	require.True(t, ok)
	assert.Equal(t, "240315", out)

	out, ok = Format(pattern.TypeDate4, ts)
	require.True(t, ok)
	assert.Equal(t, "20240315", out)

	out, ok = Format(pattern.TypeTime2, ts)
	require.True(t, ok)
	assert.Equal(t, "0945", out)

	out, ok = Format(pattern.TypeDecimal, 100)
	require.True(t, ok)
	assert.Equal(t, "100,", out)

	out, ok = Format(pattern.TypeCurrency, "CHF")
	require.True(t, ok)
	assert.Equal(t, "CHF", out)
}
