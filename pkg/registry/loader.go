package registry

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Fields map[string]Entry `json:"fields" yaml:"fields" toml:"fields"`
}

// readFS walks fsys and compiles every row found in JSON, YAML or TOML
// files. A nil filesystem yields no rows.
func readFS(fsys fs.FS) (map[string]*Definition, error) {
	defs := make(map[string]*Definition)
	if fsys == nil {
		return defs, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRegistryFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("registry: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for name, row := range doc.Fields {
			def, err := define(name, row, path)
			if err != nil {
				return err
			}
			if prev, exists := defs[def.Name()]; exists {
				return fmt.Errorf("%w: duplicate field %q (files %s and %s)", ErrInvalidDefinition, def.Name(), prev.Source(), path)
			}
			defs[def.Name()] = def
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("registry: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".toml") {
		if err := toml.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("registry: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("registry: parse %s: invalid JSON or YAML", source)
}

func isRegistryFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}

// ReadEntries decodes one registry file without compiling its rows. source
// names the file and selects TOML decoding for ".toml".
func ReadEntries(data []byte, source string) (map[string]Entry, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	return doc.Fields, nil
}
