package coerce

import (
	"fmt"
	"time"
)

// Date is a calendar date as carried on the wire. Year keeps the digits it
// was read with: a Date2 value for "240101" has Year 24.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateOf returns the date part of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Time returns the date at midnight in loc. Two-digit years are not widened.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// ParseDate2 reads YYMMDD. Years divisible by four are leap years.
func ParseDate2(raw string) (Date, bool) {
	if len(raw) != 6 || !digits(raw) {
		return Date{}, false
	}
	d := Date{Year: atoi(raw[0:2]), Month: atoi(raw[2:4]), Day: atoi(raw[4:6])}
	if !validDay(d, d.Year%4 == 0) {
		return Date{}, false
	}
	return d, true
}

// FormatDate2 writes YYMMDD. Only years 0-99 fit.
func FormatDate2(d Date) (string, bool) {
	if d.Year < 0 || d.Year > 99 || !validDay(d, d.Year%4 == 0) {
		return "", false
	}
	return fmt.Sprintf("%02d%02d%02d", d.Year, d.Month, d.Day), true
}

// ParseDate4 reads YYYYMMDD using the Gregorian leap year rule.
func ParseDate4(raw string) (Date, bool) {
	if len(raw) != 8 || !digits(raw) {
		return Date{}, false
	}
	d := Date{Year: atoi(raw[0:4]), Month: atoi(raw[4:6]), Day: atoi(raw[6:8])}
	if !validDay(d, gregorianLeap(d.Year)) {
		return Date{}, false
	}
	return d, true
}

// FormatDate4 writes YYYYMMDD.
func FormatDate4(d Date) (string, bool) {
	if d.Year < 0 || d.Year > 9999 || !validDay(d, gregorianLeap(d.Year)) {
		return "", false
	}
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day), true
}

// ParseTime2 reads HHMM.
func ParseTime2(raw string) (Clock, bool) {
	if len(raw) != 4 || !digits(raw) {
		return Clock{}, false
	}
	c := Clock{Hour: atoi(raw[0:2]), Minute: atoi(raw[2:4])}
	if !c.valid() {
		return Clock{}, false
	}
	return c, true
}

// FormatTime2 writes HHMM; seconds are dropped.
func FormatTime2(c Clock) (string, bool) {
	if !c.valid() {
		return "", false
	}
	return fmt.Sprintf("%02d%02d", c.Hour, c.Minute), true
}

// ParseTime3 reads HHMMSS.
func ParseTime3(raw string) (Clock, bool) {
	if len(raw) != 6 || !digits(raw) {
		return Clock{}, false
	}
	c := Clock{Hour: atoi(raw[0:2]), Minute: atoi(raw[2:4]), Second: atoi(raw[4:6])}
	if !c.valid() {
		return Clock{}, false
	}
	return c, true
}

// FormatTime3 writes HHMMSS.
func FormatTime3(c Clock) (string, bool) {
	if !c.valid() {
		return "", false
	}
	return fmt.Sprintf("%02d%02d%02d", c.Hour, c.Minute, c.Second), true
}

func (c Clock) valid() bool {
	return c.Hour >= 0 && c.Hour <= 23 &&
		c.Minute >= 0 && c.Minute <= 59 &&
		c.Second >= 0 && c.Second <= 59
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func validDay(d Date, leap bool) bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	limit := monthDays[d.Month]
	if d.Month == 2 && leap {
		limit = 29
	}
	return d.Day <= limit
}

func gregorianLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoi assumes s holds only digits.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
