// Package coerce converts raw component strings to and from their semantic
// types. Every function is pure and reports failure through a boolean instead
// of an error: a component that cannot be converted is simply absent.
//
// Formats follow the wire conventions, not the host locale. Dates are YYMMDD
// or YYYYMMDD with no century inference, times are HHMM or HHMMSS, and
// amounts use a comma as decimal separator that is always written, even when
// the fraction is empty ("1234,").
package coerce
