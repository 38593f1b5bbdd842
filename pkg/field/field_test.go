package field

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/currency"

	"github.com/goliatone/go-mtfield/pkg/coerce"
	"github.com/goliatone/go-mtfield/pkg/registry"
	"github.com/goliatone/go-mtfield/pkg/testsupport"
)

var sp = testsupport.Ptr

func lookup(t *testing.T, name string) *registry.Definition {
	t.Helper()
	def, err := registry.Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return def
}

func TestParseAndSerialize(t *testing.T) {
	t.Parallel()

	f := Parse(lookup(t, "13D"), "2401011030+0100")
	want := []*string{sp("240101"), sp("1030"), sp("+"), sp("0100")}
	if diff := cmp.Diff(want, f.Components()); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
	if got := f.Value(); got != "2401011030+0100" {
		t.Fatalf("Value() = %q", got)
	}
	if f.ComponentsSize() != 4 {
		t.Fatalf("ComponentsSize() = %d", f.ComponentsSize())
	}
	if got := f.String(); got != ":13D:2401011030+0100" {
		t.Fatalf("String() = %q", got)
	}
}

func TestMultiLineField(t *testing.T) {
	t.Parallel()

	f := Parse(lookup(t, "59"), "/123456\nJohn Doe\nMain St")
	if v, ok := f.Component(1); !ok || v != "123456" {
		t.Fatalf("account = %q, %v", v, ok)
	}
	if _, ok := f.Component(4); ok {
		t.Fatalf("component 4 should be absent")
	}
	if got := f.Value(); got != "/123456\r\nJohn Doe\r\nMain St" {
		t.Fatalf("Value() = %q", got)
	}
	if !f.IsOptional(1) || f.IsOptional(2) {
		t.Fatalf("unexpected optional flags")
	}
}

func TestSettersBuildValue(t *testing.T) {
	t.Parallel()

	f := New(lookup(t, "32A"))
	if !f.IsEmpty() || f.Value() != "" {
		t.Fatalf("new field should be empty")
	}
	f.SetComponent(1, "240101").SetComponent(2, "EUR").SetComponent(3, "1234,56")
	if got := f.Value(); got != "240101EUR1234,56" {
		t.Fatalf("Value() = %q", got)
	}

	f.SetComponent(3, "")
	if _, ok := f.Component(3); ok {
		t.Fatalf("empty string should clear the component")
	}
	f.ClearComponent(2)
	if got := f.Value(); got != "240101" {
		t.Fatalf("Value() after clearing = %q", got)
	}
}

func TestOutOfRangeIndexPanics(t *testing.T) {
	t.Parallel()

	f := New(lookup(t, "20"))
	for _, n := range []int{0, 2, -1} {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("index %d: expected ErrInvalidArgument panic, got %v", n, r)
				}
			}()
			f.Component(n)
		}()
	}
}

func TestFromComponentsCopies(t *testing.T) {
	t.Parallel()

	def := lookup(t, "28C")
	comps := []*string{sp("5"), sp("1")}
	f, err := FromComponents(def, comps)
	if err != nil {
		t.Fatalf("FromComponents returned error: %v", err)
	}
	*comps[0] = "9"
	if v, _ := f.Component(1); v != "5" {
		t.Fatalf("field shares storage with caller: %q", v)
	}

	copied := f.Copy()
	copied.SetComponent(1, "7")
	if v, _ := f.Component(1); v != "5" {
		t.Fatalf("Copy shares storage: %q", v)
	}

	if _, err := FromComponents(def, []*string{sp("5")}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFromTag(t *testing.T) {
	t.Parallel()

	def := lookup(t, "20")
	f, err := FromTag(def, Tag{Name: "20", Value: "REF123"})
	if err != nil {
		t.Fatalf("FromTag returned error: %v", err)
	}
	if diff := cmp.Diff(Tag{Name: "20", Value: "REF123"}, f.Tag()); diff != "" {
		t.Fatalf("tag mismatch (-want +got):\n%s", diff)
	}
	if _, err := FromTag(def, Tag{Name: "21", Value: "X"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTypedAccessors(t *testing.T) {
	t.Parallel()

	f := Parse(lookup(t, "32A"), "240101EUR1234,")
	date, ok := f.AsDate(1)
	if !ok || date != (coerce.Date{Year: 24, Month: 1, Day: 1}) {
		t.Fatalf("AsDate = %+v, %v", date, ok)
	}
	unit, ok := f.AsCurrency(2)
	if !ok || unit != currency.EUR {
		t.Fatalf("AsCurrency = %v, %v", unit, ok)
	}
	amount, ok := f.AsDecimal(3)
	if !ok {
		t.Fatalf("AsDecimal failed")
	}
	if out, _ := coerce.FormatDecimal(amount); out != "1234," {
		t.Fatalf("amount formats as %q", out)
	}
	if v, ok := f.ComponentAs(3); !ok || v == nil {
		t.Fatalf("ComponentAs(3) = %v, %v", v, ok)
	}

	if _, ok := f.AsBIC(2); ok {
		t.Fatalf("currency should not read as BIC")
	}

	header := Parse(lookup(t, "106"), "240101DEUTDEFFAXXX1234123456")
	mir, ok := header.AsMIR(1)
	if !ok || mir.Session != "1234" {
		t.Fatalf("AsMIR = %+v, %v", mir, ok)
	}

	party := Parse(lookup(t, "52A"), "DEUTDEFF")
	bic, ok := party.AsBIC(3)
	if !ok || bic.Country != "DE" {
		t.Fatalf("AsBIC = %+v, %v", bic, ok)
	}

	clock := Parse(lookup(t, "98C"), ":PREP//20240101103000")
	c, ok := clock.AsClock(3)
	if !ok || c != (coerce.Clock{Hour: 10, Minute: 30}) {
		t.Fatalf("AsClock = %+v, %v", c, ok)
	}
	if d, ok := clock.AsDate(2); !ok || d.Year != 2024 {
		t.Fatalf("AsDate = %+v, %v", d, ok)
	}
}

func TestSetComponentAs(t *testing.T) {
	t.Parallel()

	f := New(lookup(t, "32A"))
	if !f.SetComponentAs(1, coerce.Date{Year: 24, Month: 12, Day: 31}) {
		t.Fatalf("SetComponentAs date failed")
	}
	if !f.SetComponentAs(2, currency.USD) {
		t.Fatalf("SetComponentAs currency failed")
	}
	if !f.SetComponentAs(3, 100) {
		t.Fatalf("SetComponentAs amount failed")
	}
	if got := f.Value(); got != "241231USD100," {
		t.Fatalf("Value() = %q", got)
	}
	if f.SetComponentAs(2, 42) {
		t.Fatalf("expected failure for a non currency value")
	}
	if v, _ := f.Component(2); v != "USD" {
		t.Fatalf("failed set changed the component: %q", v)
	}
	f.SetComponentAs(3, nil)
	if _, ok := f.Component(3); ok {
		t.Fatalf("nil should clear the component")
	}
}

func TestGenericHelpers(t *testing.T) {
	t.Parallel()

	f := Parse(lookup(t, "22F"), ":CLAS/ISIT/DVCA")
	if q, ok := f.Qualifier(); !ok || q != "CLAS" {
		t.Fatalf("Qualifier = %q, %v", q, ok)
	}
	if dss, ok := f.DSS(); !ok || dss != "ISIT" {
		t.Fatalf("DSS = %q, %v", dss, ok)
	}
	if cq, ok := f.ConditionalQualifier(); !ok || cq != "DVCA" {
		t.Fatalf("ConditionalQualifier = %q, %v", cq, ok)
	}

	noDSS := Parse(lookup(t, "22F"), ":CLAS//DVCA")
	if noDSS.IsDSSPresent() {
		t.Fatalf("DSS should be absent")
	}

	plain := Parse(lookup(t, "20"), "REF")
	if plain.IsGeneric() {
		t.Fatalf("20 is not generic")
	}
	if _, ok := plain.Qualifier(); ok {
		t.Fatalf("non generic field has no qualifier")
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	f := Parse(lookup(t, "61"), "2401010102CR100,NTRFREF123//BANKREF")
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	want := `{"valueDate":"240101","entryDate":"0102","dCMark":"C","fundsCode":"R","amount":"100,",` +
		`"transactionType":"N","identificationCode":"TRF","referenceForTheAccountOwner":"REF123",` +
		`"referenceOfTheAccountServicingInstitution":"BANKREF"}`
	if string(data) != want {
		t.Fatalf("Marshal = %s\nwant      %s", data, want)
	}

	empty, _ := json.Marshal(New(lookup(t, "20")))
	if string(empty) != "{}" {
		t.Fatalf("empty field = %s", empty)
	}
}

func TestUnmarshalJSONAliasOrder(t *testing.T) {
	t.Parallel()

	def := lookup(t, "32A")

	f, err := Decode(def, []byte(`{"currencyCode":"USD","date":"240101","amount":"5,","unknown":"x"}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got := f.Value(); got != "240101USD5," {
		t.Fatalf("alias only: Value() = %q", got)
	}

	f, err = Decode(def, []byte(`{"currency":"EUR","currencyCode":"USD"}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if v, _ := f.Component(2); v != "EUR" {
		t.Fatalf("canonical key should win, got %q", v)
	}

	numeric, err := Decode(lookup(t, "28C"), []byte(`{"statementNumber":5,"sequenceNumber":null}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got := numeric.Value(); got != "5" {
		t.Fatalf("numeric: Value() = %q", got)
	}

	if _, err := Decode(def, []byte(`{"date":true}`)); err == nil {
		t.Fatalf("expected error for a boolean value")
	}
	var unbound Field
	if err := json.Unmarshal([]byte(`{}`), &unbound); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"50K", "19A", "93B", "13C", "11S"} {
		def := lookup(t, name)
		var raw string
		switch name {
		case "50K":
			raw = "/DE89\r\nACME\r\nSTREET 1"
		case "19A":
			raw = ":SETT//NEUR123,45"
		case "93B":
			raw = ":FIAN//UNIT/N1000,"
		case "13C":
			raw = "/CLSTIME/0915+0100"
		case "11S":
			raw = "103\r\n240101\r\n1234123456"
		}
		f := Parse(def, raw)
		data, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("%s: Marshal returned error: %v", name, err)
		}
		back, err := Decode(def, data)
		if err != nil {
			t.Fatalf("%s: Decode returned error: %v", name, err)
		}
		if diff := cmp.Diff(f.Components(), back.Components()); diff != "" {
			t.Fatalf("%s: JSON round trip mismatch (-want +got):\n%s", name, diff)
		}
		if back.Value() != raw {
			t.Fatalf("%s: Value() = %q, want %q", name, back.Value(), raw)
		}
	}
}
