package mtfield

import (
	"fmt"
	"io/fs"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-mtfield/pkg/describe"
	"github.com/goliatone/go-mtfield/pkg/field"
	"github.com/goliatone/go-mtfield/pkg/openapi"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	registry    *registry.Registry
	overlays    []fs.FS
	overlayDirs []string
	describe    []describe.Option
}

// WithRegistry replaces the embedded registry as the base table.
func WithRegistry(reg *registry.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithOverlayFS adds rows from fsys on top of the base table. Overlays apply
// in the order given.
func WithOverlayFS(fsys fs.FS) Option {
	return func(cfg *config) {
		if fsys != nil {
			cfg.overlays = append(cfg.overlays, fsys)
		}
	}
}

// WithOverlayDir adds rows from the registry files under dir.
func WithOverlayDir(dir string) Option {
	return func(cfg *config) {
		if dir != "" {
			cfg.overlayDirs = append(cfg.overlayDirs, dir)
		}
	}
}

// WithDescribeOptions configures the renderer used by Engine.Describe.
func WithDescribeOptions(opts ...describe.Option) Option {
	return func(cfg *config) {
		cfg.describe = append(cfg.describe, opts...)
	}
}

// Engine binds field operations to one registry.
type Engine struct {
	reg      *registry.Registry
	describe *describe.Renderer
}

// NewEngine builds an engine. Overlays are applied to a copy of the base
// registry, so the embedded table is never modified.
func NewEngine(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	reg := cfg.registry
	if reg == nil {
		reg = registry.Default()
	}
	if len(cfg.overlays) > 0 || len(cfg.overlayDirs) > 0 {
		reg = reg.Clone()
	}
	for _, fsys := range cfg.overlays {
		if err := reg.Overlay(fsys); err != nil {
			return nil, err
		}
	}
	for _, dir := range cfg.overlayDirs {
		if err := reg.OverlayDir(dir); err != nil {
			return nil, fmt.Errorf("mtfield: overlay %s: %w", dir, err)
		}
	}

	renderer, err := describe.New(cfg.describe...)
	if err != nil {
		return nil, err
	}
	return &Engine{reg: reg, describe: renderer}, nil
}

// Registry returns the table the engine reads from.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Lookup returns the definition of name.
func (e *Engine) Lookup(name string) (*Definition, error) {
	return e.reg.Lookup(name)
}

// New returns an empty field of the named tag.
func (e *Engine) New(name string) (*Field, error) {
	def, err := e.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	return field.New(def), nil
}

// Parse reads value as the named field.
func (e *Engine) Parse(name, value string) (*Field, error) {
	def, err := e.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	return field.Parse(def, value), nil
}

// FromTag parses a tag taken from a message container.
func (e *Engine) FromTag(tag Tag) (*Field, error) {
	def, err := e.reg.Lookup(tag.Name)
	if err != nil {
		return nil, err
	}
	return field.FromTag(def, tag)
}

// Decode builds the named field from its JSON object form.
func (e *Engine) Decode(name string, data []byte) (*Field, error) {
	def, err := e.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	return field.Decode(def, data)
}

// Schema returns the OpenAPI schema of the named field.
func (e *Engine) Schema(name string) (*openapi3.Schema, error) {
	def, err := e.reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	return openapi.SchemaFor(def), nil
}

// Catalog returns the OpenAPI schemas of every field in the registry.
func (e *Engine) Catalog() openapi3.Schemas {
	return openapi.Catalog(e.reg)
}

// Validate checks a JSON payload against the schema of the named field.
func (e *Engine) Validate(name string, payload []byte) error {
	def, err := e.reg.Lookup(name)
	if err != nil {
		return err
	}
	return openapi.Validate(def, payload)
}

// Describe renders the definition of the named field.
func (e *Engine) Describe(name string) (string, error) {
	def, err := e.reg.Lookup(name)
	if err != nil {
		return "", err
	}
	return e.describe.Definition(def)
}

// DescribeField renders f with its component values.
func (e *Engine) DescribeField(f *Field) (string, error) {
	return e.describe.Field(f)
}
