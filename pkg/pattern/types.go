package pattern

import (
	"fmt"
	"strings"
)

// Type is the semantic type tag of a component.
type Type int

const (
	TypeString Type = iota
	TypeNumber
	TypeDecimal
	TypeDate2
	TypeDate4
	TypeTime2
	TypeTime3
	TypeCurrency
	TypeBIC
	TypeMIR
	TypeLTAddress
)

var typeNames = map[Type]string{
	TypeString:    "string",
	TypeNumber:    "number",
	TypeDecimal:   "decimal",
	TypeDate2:     "date2",
	TypeDate4:     "date4",
	TypeTime2:     "time2",
	TypeTime3:     "time3",
	TypeCurrency:  "currency",
	TypeBIC:       "bic",
	TypeMIR:       "mir",
	TypeLTAddress: "lt-address",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseType resolves a type tag from its registry name. Matching is case
// insensitive and accepts a few long-hand spellings.
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "long", "integer":
		return TypeNumber, nil
	case "amount", "bigdecimal":
		return TypeDecimal, nil
	case "logicalterminaladdress", "lt", "ltaddress":
		return TypeLTAddress, nil
	}
	for t, typeName := range typeNames {
		if typeName == key {
			return t, nil
		}
	}
	return TypeString, fmt.Errorf("pattern: unknown component type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so registry files can name
// component types directly.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Class is a SWIFT character set identifier. ClassAny accepts every character
// except line breaks and backs free S tokens.
type Class byte

const (
	ClassAny     Class = 0
	ClassNumeric Class = 'n'
	ClassAlpha   Class = 'a'
	ClassAlnum   Class = 'c'
	ClassDecimal Class = 'd'
	ClassHex     Class = 'h'
	ClassSpace   Class = 'e'
	ClassX       Class = 'x'
	ClassY       Class = 'y'
	ClassZ       Class = 'z'
)

// Allows reports whether ch belongs to the class.
func (c Class) Allows(ch byte) bool {
	switch c {
	case ClassNumeric:
		return ch >= '0' && ch <= '9'
	case ClassAlpha:
		return ch >= 'A' && ch <= 'Z'
	case ClassAlnum:
		return (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
	case ClassDecimal:
		return (ch >= '0' && ch <= '9') || ch == ','
	case ClassHex:
		return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F')
	case ClassSpace:
		return ch == ' '
	case ClassX:
		return isAlnum(ch) || strings.IndexByte("/-?:().,'+ ", ch) >= 0
	case ClassY:
		return (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || strings.IndexByte(" .,-()/='+:?!\"%&*<>;", ch) >= 0
	case ClassZ:
		return isAlnum(ch) || strings.IndexByte("/-?:().,'+ =!\"%&*<>;{@#_", ch) >= 0
	default:
		return ch != '\r' && ch != '\n'
	}
}

// AllowsAll reports whether every byte of s belongs to the class.
func (c Class) AllowsAll(s string) bool {
	for i := 0; i < len(s); i++ {
		if !c.Allows(s[i]) {
			return false
		}
	}
	return true
}

func (c Class) String() string {
	if c == ClassAny {
		return "any"
	}
	return string(byte(c))
}

func isAlnum(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}
