package registry

import (
	"embed"
	"io/fs"
)

//go:embed fields/*
var embeddedFields embed.FS

// EmbeddedFS returns the bundled field table. Callers may pass it to LoadFS
// or use it as the base for their own overlays.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedFields, "fields")
	if err != nil {
		panic(err)
	}
	return sub
}
