package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompileTokenTreeReproducesSources(t *testing.T) {
	t.Parallel()

	cases := []struct {
		validator string
		parser    string
	}{
		{"16x/16x", "S/S"},
		{":4!c//4!c/15d", ":S//S/N"},
		{"[/34x$]4*35x", "[/S$]S[$S]0-3"},
		{"6!n4!n1!x4!n", "<DATE2><HHMM><SIGN><OFFSET>"},
		{"<DC><DATE2><3!a><AMOUNT>15", "<DC><DATE2><CUR><AMOUNT>"},
		{"3!n$6!n[$4!n6!n]", "<MT>$<DATE2>[$4!n6!n]"},
	}
	for _, tc := range cases {
		p, err := Compile(tc.validator, tc.parser)
		if err != nil {
			t.Fatalf("Compile(%q, %q) returned error: %v", tc.validator, tc.parser, err)
		}
		if got := joinTokens(p.Tokens()); got != tc.parser {
			t.Fatalf("parser tokens reproduce %q, want %q", got, tc.parser)
		}
		if got := joinTokens(p.ValidatorTokens()); got != tc.validator {
			t.Fatalf("validator tokens reproduce %q, want %q", got, tc.validator)
		}
	}
}

func TestCompileMultiLineComponents(t *testing.T) {
	t.Parallel()

	p, err := Compile("[/34x$]4*35x", "[/S$]S[$S]0-3")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if p.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", p.Size())
	}
	wantMask := []bool{true, false, true, true, true}
	if diff := cmp.Diff(wantMask, p.OptionalMask()); diff != "" {
		t.Fatalf("optional mask mismatch (-want +got):\n%s", diff)
	}

	account, _ := p.Component(1)
	if !account.Free || account.Max != 34 || account.Class != ClassX {
		t.Fatalf("account component = %+v", account)
	}
	line, _ := p.Component(4)
	if line.Max != 35 || line.Type != TypeString {
		t.Fatalf("line component = %+v", line)
	}

	tokens := p.Tokens()
	if len(tokens) != 3 {
		t.Fatalf("expected 3 top level tokens, got %d", len(tokens))
	}
	if diff := cmp.Diff([]int{3, 4, 5}, tokens[2].Components); diff != "" {
		t.Fatalf("repeat group components mismatch (-want +got):\n%s", diff)
	}
	if tokens[2].Repeat != 3 {
		t.Fatalf("repeat = %d, want 3", tokens[2].Repeat)
	}
}

func TestCompileTypesFromMacros(t *testing.T) {
	t.Parallel()

	p := MustCompile("<DC><DATE2><3!a><AMOUNT>15", "<DC><DATE2><CUR><AMOUNT>")
	want := []Type{TypeString, TypeDate2, TypeCurrency, TypeDecimal}
	if diff := cmp.Diff(want, p.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	mir := MustCompile("<MIR>", "<MIR>")
	if c, _ := mir.Component(1); c.Type != TypeMIR || c.Min != 28 || !c.Fixed {
		t.Fatalf("MIR component = %+v", c)
	}

	header := MustCompile("3!n$6!n[$4!n6!n]", "<MT>$<DATE2>[$4!n6!n]")
	want = []Type{TypeNumber, TypeDate2, TypeNumber, TypeNumber}
	if diff := cmp.Diff(want, header.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileFreeTokensTakeValidatorConstraints(t *testing.T) {
	t.Parallel()

	p := MustCompile(":4!c//[1!a]3!a15d", ":S//[c]<CUR>N")
	qualifier, _ := p.Component(1)
	if !qualifier.Free || qualifier.Min != 4 || qualifier.Max != 4 || qualifier.Class != ClassAlnum {
		t.Fatalf("qualifier = %+v", qualifier)
	}
	sign, _ := p.Component(2)
	if !sign.Optional || sign.Class != ClassAlpha {
		t.Fatalf("sign = %+v", sign)
	}
	amount, _ := p.Component(4)
	if amount.Type != TypeDecimal || amount.Max != 15 {
		t.Fatalf("amount = %+v", amount)
	}
}

func TestCompileTerminators(t *testing.T) {
	t.Parallel()

	p := MustCompile("[/34x$]4*35x", "[/S$]S[$S]0-3")
	var terminators []string
	walkSlots(p.Steps(), func(step *Step) {
		terminators = append(terminators, step.Terminator)
	})
	want := []string{"$", "$", "$", "$", ""}
	if diff := cmp.Diff(want, terminators); diff != "" {
		t.Fatalf("terminators mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileRejectsDisagreement(t *testing.T) {
	t.Parallel()

	cases := map[string][2]string{
		"component count": {"16x/16x/16x", "S/S"},
		"ordering":        {"16x//16x", "S/S"},
		"optionality":     {"16x[/16x]", "S/S"},
		"malformed":       {"16x", "S/["},
		"empty parser":    {"16x", ""},
		"no components":   {"/", "/"},
	}
	for name, tc := range cases {
		_, err := Compile(tc[0], tc[1])
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !errors.Is(err, ErrInvalidPattern) {
			t.Fatalf("%s: expected ErrInvalidPattern, got %v", name, err)
		}
		var patternErr *InvalidPatternError
		if !errors.As(err, &patternErr) {
			t.Fatalf("%s: expected *InvalidPatternError, got %T", name, err)
		}
	}
}

func TestCompileCachesPatterns(t *testing.T) {
	t.Parallel()

	first := MustCompile("16x", "S")
	second := MustCompile("16x", "S")
	if first != second {
		t.Fatalf("expected cached pattern to be reused")
	}
	sameAsParser := MustCompile("", "S")
	if sameAsParser.Validator() != "S" {
		t.Fatalf("empty validator should reuse parser, got %q", sameAsParser.Validator())
	}
}

func TestWithTypesLeavesCachedPatternUntouched(t *testing.T) {
	t.Parallel()

	base := MustCompile("3!a", "S")
	typed, err := base.WithTypes([]Type{TypeCurrency})
	if err != nil {
		t.Fatalf("WithTypes returned error: %v", err)
	}
	if c, _ := typed.Component(1); c.Type != TypeCurrency {
		t.Fatalf("typed component = %+v", c)
	}
	if c, _ := base.Component(1); c.Type != TypeString {
		t.Fatalf("base component mutated: %+v", c)
	}
	if _, err := base.WithTypes(nil); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern for short type list, got %v", err)
	}
}

func TestComponentAccept(t *testing.T) {
	t.Parallel()

	p := MustCompile("<DC><DATE2><3!a><AMOUNT>15", "<DC><DATE2><CUR><AMOUNT>")
	dc, _ := p.Component(1)
	amount, _ := p.Component(4)

	checks := []struct {
		c    Component
		raw  string
		want bool
	}{
		{dc, "C", true},
		{dc, "RD", true},
		{dc, "X", false},
		{amount, "1234,56", true},
		{amount, "1234", false},
		{amount, "1234,5,6", false},
		{amount, "", false},
	}
	for _, check := range checks {
		if got := check.c.Accept(check.raw); got != check.want {
			t.Fatalf("Accept(%q) on %s = %v, want %v", check.raw, check.c.Macro, got, check.want)
		}
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"string", "Decimal", "lt-address", "Long", "BIC"} {
		if _, err := ParseType(name); err != nil {
			t.Fatalf("ParseType(%q) returned error: %v", name, err)
		}
	}
	if _, err := ParseType("money"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
