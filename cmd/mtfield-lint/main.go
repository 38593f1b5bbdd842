package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-mtfield/pkg/codec"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint registry files (JSON, YAML, TOML) before loading them as overlays.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"pkg/registry/fields"}
	}

	violations, rows, err := lintPaths(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}
	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
	fmt.Printf("%d rows ok\n", rows)
}

func lintPaths(paths []string) ([]violation, int, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, 0, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && isRegistryFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
	}
	sort.Strings(files)

	seen := make(map[string]string)
	var result []violation
	rows := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, 0, fmt.Errorf("read file: %w", err)
		}
		found, checked := lintFile(file, data, seen)
		result = append(result, found...)
		rows += checked
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].file == result[j].file {
			return result[i].location < result[j].location
		}
		return result[i].file < result[j].file
	})
	return result, rows, nil
}

// lintFile checks every row of one registry file and returns the violations
// together with the number of rows it checked.
func lintFile(file string, data []byte, seen map[string]string) ([]violation, int) {
	entries, err := registry.ReadEntries(data, file)
	if err != nil {
		return []violation{{file: file, location: "document", message: err.Error()}}, 0
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []violation
	for _, name := range names {
		entry := entries[name]
		location := "fields." + name
		normalized := registry.NormalizeName(name)
		if prev, ok := seen[normalized]; ok {
			result = append(result, violation{file: file, location: location, message: "duplicate of " + prev})
			continue
		}
		seen[normalized] = file

		if strings.TrimSpace(entry.Description) == "" {
			result = append(result, violation{file: file, location: location, message: "description is empty"})
		}
		for i, comp := range entry.Components {
			if strings.TrimSpace(comp.Label) == "" {
				result = append(result, violation{
					file:     file,
					location: fmt.Sprintf("%s.components[%d]", location, i),
					message:  "label is empty",
				})
			}
		}
		def, err := registry.NewDefinition(name, entry)
		if err != nil {
			result = append(result, violation{file: file, location: location, message: err.Error()})
			continue
		}
		for _, withOptional := range []bool{true, false} {
			if msg := roundTrip(def, withOptional); msg != "" {
				result = append(result, violation{file: file, location: location, message: msg})
			}
		}
	}
	return result, len(names)
}

// roundTrip serializes a sample vector of def and reports how tokenizing it
// back differs, or "" when it reproduces the vector.
func roundTrip(def *registry.Definition, withOptional bool) string {
	p := def.Pattern()
	want := def.Sample(withOptional)
	raw := codec.Serialize(p, want)
	got := codec.Tokenize(p, raw)
	for i := range want {
		if !sameValue(want[i], got[i]) {
			return fmt.Sprintf("sample %q does not round trip at component %d", raw, i+1)
		}
	}
	return ""
}

func sameValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func isRegistryFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
