// Package describe renders human readable summaries of field definitions and
// field values with pongo2 templates. The default templates are embedded;
// WithTemplateFS and WithBaseDir let callers supply their own.
package describe
