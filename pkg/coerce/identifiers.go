package coerce

import (
	"golang.org/x/text/currency"
)

// BIC is a bank identifier code split into its fixed offsets: institution
// (0-4), country (4-6), location (6-8) and optional branch (8-11).
type BIC struct {
	Institution string
	Country     string
	Location    string
	Branch      string
}

func (b BIC) String() string {
	return b.Institution + b.Country + b.Location + b.Branch
}

// HasBranch reports whether the code carries the three character branch.
func (b BIC) HasBranch() bool { return b.Branch != "" }

// ParseBIC reads an 8 or 11 character code.
func ParseBIC(raw string) (BIC, bool) {
	if len(raw) != 8 && len(raw) != 11 {
		return BIC{}, false
	}
	if !upperAlnum(raw) || !upperAlpha(raw[4:6]) {
		return BIC{}, false
	}
	b := BIC{Institution: raw[0:4], Country: raw[4:6], Location: raw[6:8]}
	if len(raw) == 11 {
		b.Branch = raw[8:11]
	}
	return b, true
}

// FormatBIC re-validates b and returns its wire form.
func FormatBIC(b BIC) (string, bool) {
	raw := b.String()
	if _, ok := ParseBIC(raw); !ok {
		return "", false
	}
	return raw, true
}

// LTAddress is a 12 character logical terminal address: the BIC8, a one
// character terminal code and the three character branch.
type LTAddress struct {
	BIC      BIC
	Terminal string
}

func (a LTAddress) String() string {
	return a.BIC.Institution + a.BIC.Country + a.BIC.Location + a.Terminal + a.branch()
}

func (a LTAddress) branch() string {
	if a.BIC.Branch == "" {
		return "XXX"
	}
	return a.BIC.Branch
}

// ParseLTAddress reads a 12 character address.
func ParseLTAddress(raw string) (LTAddress, bool) {
	if len(raw) != 12 || !upperAlnum(raw) {
		return LTAddress{}, false
	}
	b, ok := ParseBIC(raw[0:8] + raw[9:12])
	if !ok {
		return LTAddress{}, false
	}
	return LTAddress{BIC: b, Terminal: raw[8:9]}, true
}

// FormatLTAddress writes the address; a BIC without branch gets "XXX".
func FormatLTAddress(a LTAddress) (string, bool) {
	raw := a.String()
	if _, ok := ParseLTAddress(raw); !ok {
		return "", false
	}
	return raw, true
}

// MIR is a 28 character message input reference: sending date (YYMMDD),
// logical terminal, session number (4 digits) and input sequence number
// (6 digits).
type MIR struct {
	Date     Date
	Address  LTAddress
	Session  string
	Sequence string
}

// ParseMIR reads a 28 character reference.
func ParseMIR(raw string) (MIR, bool) {
	if len(raw) != 28 {
		return MIR{}, false
	}
	date, ok := ParseDate2(raw[0:6])
	if !ok {
		return MIR{}, false
	}
	addr, ok := ParseLTAddress(raw[6:18])
	if !ok {
		return MIR{}, false
	}
	if !digits(raw[18:22]) || !digits(raw[22:28]) {
		return MIR{}, false
	}
	return MIR{Date: date, Address: addr, Session: raw[18:22], Sequence: raw[22:28]}, true
}

// FormatMIR writes the reference.
func FormatMIR(m MIR) (string, bool) {
	date, ok := FormatDate2(m.Date)
	if !ok {
		return "", false
	}
	addr, ok := FormatLTAddress(m.Address)
	if !ok {
		return "", false
	}
	if len(m.Session) != 4 || !digits(m.Session) || len(m.Sequence) != 6 || !digits(m.Sequence) {
		return "", false
	}
	return date + addr + m.Session + m.Sequence, true
}

// ParseCurrency reads an ISO 4217 code. Codes unknown to the currency
// registry are rejected.
func ParseCurrency(raw string) (currency.Unit, bool) {
	if len(raw) != 3 || !upperAlpha(raw) {
		return currency.Unit{}, false
	}
	unit, err := currency.ParseISO(raw)
	if err != nil {
		return currency.Unit{}, false
	}
	return unit, true
}

// FormatCurrency writes the ISO code of unit. The zero Unit is rejected.
func FormatCurrency(unit currency.Unit) (string, bool) {
	if unit == (currency.Unit{}) {
		return "", false
	}
	code := unit.String()
	if _, ok := ParseCurrency(code); !ok {
		return "", false
	}
	return code, true
}

func upperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return s != ""
}

func upperAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return s != ""
}
