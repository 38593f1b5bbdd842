package grammar

// MacroDef describes a composite macro such as <DATE2> or <AMOUNT>.
type MacroDef struct {
	Name  string
	Class byte
	Min   int
	Max   int
	// Sized macros accept a trailing length override (<AMOUNT>15).
	Sized bool
}

var macros = map[string]MacroDef{
	"DATE2":  {Name: "DATE2", Class: 'n', Min: 6, Max: 6},
	"DATE4":  {Name: "DATE4", Class: 'n', Min: 8, Max: 8},
	"HHMM":   {Name: "HHMM", Class: 'n', Min: 4, Max: 4},
	"HHMMSS": {Name: "HHMMSS", Class: 'n', Min: 6, Max: 6},
	"OFFSET": {Name: "OFFSET", Class: 'n', Min: 4, Max: 4},
	"SIGN":   {Name: "SIGN", Class: 'x', Min: 1, Max: 1},
	"DC":     {Name: "DC", Class: 'a', Min: 1, Max: 2},
	"CUR":    {Name: "CUR", Class: 'a', Min: 3, Max: 3},
	"AMOUNT": {Name: "AMOUNT", Class: 'd', Min: 1, Max: 15, Sized: true},
	"BIC":    {Name: "BIC", Class: 'c', Min: 8, Max: 11},
	"LT":     {Name: "LT", Class: 'c', Min: 12, Max: 12},
	"MIR":    {Name: "MIR", Class: 'c', Min: 28, Max: 28},
	"MT":     {Name: "MT", Class: 'n', Min: 3, Max: 3},
	"ISIN":   {Name: "ISIN", Class: 'c', Min: 12, Max: 12},
}

// LookupMacro returns the definition of a macro by its bare name.
func LookupMacro(name string) (MacroDef, bool) {
	def, ok := macros[name]
	return def, ok
}

// IsClass reports whether ch is a SWIFT character class letter.
func IsClass(ch byte) bool {
	switch ch {
	case 'n', 'a', 'c', 'd', 'h', 'e', 'x', 'y', 'z':
		return true
	}
	return false
}
