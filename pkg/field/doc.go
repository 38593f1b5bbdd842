// Package field holds the per-instance view of a SWIFT field: a registry
// definition paired with a fixed length vector of nullable component strings.
//
// A Field is what a message or block container manipulates. It parses raw
// values, exposes components by 1-based index, serializes back to the wire
// form and converts to and from the flat JSON object keyed by component
// labels. Setters never validate content; typed accessors report absence
// instead of failing.
//
// Field values are not safe for concurrent mutation. Definitions and their
// compiled patterns are shared and immutable.
package field
