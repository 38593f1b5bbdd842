package grammar

import (
	"errors"
	"testing"
)

func TestParseRoundTripsSource(t *testing.T) {
	t.Parallel()

	patterns := []string{
		"S/S",
		":S//S/N",
		"[/S$]S[$S]0-3",
		"<DATE2><HHMM><SIGN><OFFSET>",
		"<LT>4!n<MT><DATE2>[<HHMM><HHMM>]",
		"<DC><DATE2><3!a><AMOUNT>15",
		"6!n[4!n]2a[1!a]15d1!a3!c16x[//16x][$34x]",
		"[/34x$]4*35x",
		"[[/1!a][/34x]$]<BIC>",
		"S/[c]<CUR>N",
		":4!c/[8c]/4!c",
		"5-8n",
	}
	for _, src := range patterns {
		nodes, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", src, err)
		}
		if got := Join(nodes); got != src {
			t.Fatalf("Join(Parse(%q)) = %q", src, got)
		}
	}
}

func TestParseSlotAttributes(t *testing.T) {
	t.Parallel()

	nodes, err := Parse("4*35x<AMOUNT>17[c]<3!a>")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(nodes))
	}

	lines := nodes[0]
	if lines.Lines != 4 || lines.Max != 35 || lines.Class != 'x' {
		t.Fatalf("unexpected multi-line slot: %+v", lines)
	}

	amount := nodes[1]
	if amount.Macro != "AMOUNT" || amount.Max != 17 || amount.Fixed {
		t.Fatalf("unexpected amount slot: %+v", amount)
	}

	group := nodes[2]
	if group.Kind != NodeGroup || len(group.Children) != 1 {
		t.Fatalf("unexpected group: %+v", group)
	}
	if child := group.Children[0]; child.Class != 'c' || !child.Fixed || child.Max != 1 {
		t.Fatalf("unexpected bare class slot: %+v", child)
	}

	cur := nodes[3]
	if !cur.Bracketed || !cur.Fixed || cur.Max != 3 || cur.Class != 'a' {
		t.Fatalf("unexpected bracketed width: %+v", cur)
	}
}

func TestParseRepeatMarkerVersusWidth(t *testing.T) {
	t.Parallel()

	nodes, err := Parse("[$S]0-5")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Repeat != 5 {
		t.Fatalf("expected a single group repeated 5 times, got %+v", nodes)
	}

	nodes, err = Parse("[$S]0-3n")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(nodes) != 2 || nodes[0].Repeat != 0 {
		t.Fatalf("expected group followed by a width slot, got %+v", nodes)
	}
	if nodes[1].Min != 1 || nodes[1].Max != 3 {
		t.Fatalf("expected 0-3n range slot, got %+v", nodes[1])
	}
}

func TestParseLiterals(t *testing.T) {
	t.Parallel()

	nodes, err := Parse(":S//S/N$S,S")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	var literals []string
	for _, node := range nodes {
		if node.Kind == NodeLiteral {
			literals = append(literals, node.Literal)
		}
	}
	want := []string{":", "//", "/", "$", ","}
	if len(literals) != len(want) {
		t.Fatalf("literals = %v, want %v", literals, want)
	}
	for i := range want {
		if literals[i] != want[i] {
			t.Fatalf("literals = %v, want %v", literals, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unbalanced close": "S]",
		"missing close":    "[S",
		"empty group":      "[]S",
		"unknown macro":    "<FOO>",
		"missing gt":       "<DATE2",
		"missing class":    "4!",
		"inverted range":   "8-5n",
		"stray bang":       "!n",
	}
	for name, src := range cases {
		_, err := Parse(src)
		if err == nil {
			t.Fatalf("%s: expected error for %q", name, src)
		}
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("%s: expected SyntaxError, got %T", name, err)
		}
	}
}
