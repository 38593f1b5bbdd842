package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-mtfield/pkg/registry"
)

type componentSnapshot struct {
	Index    int      `json:"index"`
	Label    string   `json:"label"`
	Key      string   `json:"key"`
	Type     string   `json:"type"`
	Format   string   `json:"format"`
	Optional bool     `json:"optional,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
}

type fieldSnapshot struct {
	Description string              `json:"description"`
	Validator   string              `json:"validator"`
	Parser      string              `json:"parser"`
	Source      string              `json:"source"`
	Components  []componentSnapshot `json:"components"`
}

func main() {
	var (
		overlayDir = flag.String("registry", "", "directory of registry files to overlay on the embedded table")
		outputPath = flag.String("output", "pkg/registry/testdata/snapshot.json", "output path for the registry snapshot")
	)
	flag.Parse()

	reg := registry.Default()
	if *overlayDir != "" {
		reg = reg.Clone()
		if err := reg.OverlayDir(*overlayDir); err != nil {
			log.Fatalf("overlay registry: %v", err)
		}
	}

	payload, err := json.MarshalIndent(snapshot(reg), "", "  ")
	if err != nil {
		log.Fatalf("encode snapshot: %v", err)
	}
	payload = append(payload, '\n')

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		log.Fatalf("write snapshot: %v", err)
	}
	fmt.Printf("Snapshot of %d fields written to %s\n", reg.Len(), *outputPath)
}

func snapshot(reg *registry.Registry) map[string]fieldSnapshot {
	out := make(map[string]fieldSnapshot, reg.Len())
	for _, def := range reg.Definitions() {
		p := def.Pattern()
		slots := p.Components()
		comps := make([]componentSnapshot, 0, def.Size())
		for _, c := range def.Components() {
			comps = append(comps, componentSnapshot{
				Index:    c.Index,
				Label:    c.Label,
				Key:      c.Key,
				Type:     c.Type.String(),
				Format:   slots[c.Index-1].Notation(),
				Optional: c.Optional,
				Aliases:  c.Aliases,
			})
		}
		out[def.Name()] = fieldSnapshot{
			Description: def.Description(),
			Validator:   p.Validator(),
			Parser:      p.Parser(),
			Source:      def.Source(),
			Components:  comps,
		}
	}
	return out
}
