package mtfield

import (
	"io/fs"

	"github.com/goliatone/go-mtfield/pkg/describe"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

// EmbeddedRegistry exposes the built-in registry files so callers can copy
// them as a starting point for overlays.
func EmbeddedRegistry() fs.FS {
	return registry.EmbeddedFS()
}

// EmbeddedTemplates exposes the built-in describe templates.
func EmbeddedTemplates() fs.FS {
	return describe.TemplatesFS()
}
