// Package registry maps SWIFT field tags to their compiled grammar. Each row
// of the table names the validator and parser patterns of a field, labels its
// components and optionally marks the qualifier and data source scheme
// positions of generic fields.
//
// The default table ships embedded in the binary (see EmbeddedFS) and is
// compiled once on first use. Callers can load their own tables from any
// fs.FS in YAML, JSON or TOML, and overlay them on an existing registry to
// replace or add rows.
package registry
