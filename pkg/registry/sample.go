package registry

import (
	"strings"

	"github.com/goliatone/go-mtfield/pkg/pattern"
)

var macroSamples = map[string]string{
	"DATE2":  "240101",
	"DATE4":  "20240101",
	"HHMM":   "1030",
	"HHMMSS": "103000",
	"OFFSET": "0100",
	"SIGN":   "+",
	"DC":     "C",
	"CUR":    "EUR",
	"AMOUNT": "1,5",
	"BIC":    "DEUTDEFF",
	"LT":     "DEUTDEFFAXXX",
	"MIR":    "240101DEUTDEFFAXXX1234123456",
	"MT":     "103",
	"ISIN":   "US0378331005",
}

var classSamples = map[pattern.Class]string{
	pattern.ClassAny:     "X",
	pattern.ClassNumeric: "1",
	pattern.ClassAlpha:   "A",
	pattern.ClassAlnum:   "C",
	pattern.ClassDecimal: "1",
	pattern.ClassHex:     "F",
	pattern.ClassSpace:   " ",
	pattern.ClassX:       "X",
	pattern.ClassY:       "Y",
	pattern.ClassZ:       "Z",
}

// SampleValue returns the shortest value component c accepts.
func SampleValue(c pattern.Component) string {
	if s, ok := macroSamples[c.Macro]; ok {
		return s
	}
	n := c.Min
	if n < 1 {
		n = 1
	}
	return strings.Repeat(classSamples[c.Class], n)
}

// Sample returns a component vector made of sample values. Optional
// components are left nil unless withOptional is set.
func (d *Definition) Sample(withOptional bool) []*string {
	comps := d.pattern.Components()
	out := make([]*string, len(comps))
	for i, c := range comps {
		if c.Optional && !withOptional {
			continue
		}
		v := SampleValue(c)
		out[i] = &v
	}
	return out
}
