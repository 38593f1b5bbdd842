package describe

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-mtfield/pkg/field"
	"github.com/goliatone/go-mtfield/pkg/registry"
)

//go:embed templates/*.tpl
var embedded embed.FS

const (
	// TemplateText is the plain text summary.
	TemplateText = "field"
	// TemplateMarkdown renders a markdown table.
	TemplateMarkdown = "field.md"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
	template  string
}

// WithBaseDir loads templates from a directory on disk, ahead of the
// embedded ones.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithTemplateFS loads templates from files, ahead of the embedded ones.
func WithTemplateFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the template extension, ".tpl" by default.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTemplate selects the template used by Definition and Field.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.template = name
		}
	}
}

// Renderer renders definitions and fields through a pongo2 template set.
type Renderer struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
	name      string
}

var registerFilters sync.Once

// New builds a renderer. Templates are resolved in the base directory, then
// the supplied FS, then the embedded defaults.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{extension: ".tpl", template: TemplateText}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("describe: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	loaders = append(loaders, pongo2.NewFSLoader(TemplatesFS()))

	var filterErr error
	registerFilters.Do(func() { filterErr = registerDefaultFilters() })
	if filterErr != nil {
		return nil, filterErr
	}

	return &Renderer{
		set:       pongo2.NewSet("mtfield", loaders...),
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
		name:      cfg.template,
	}, nil
}

// Definition renders def with the configured template. The output is also
// copied to every writer in out.
func (r *Renderer) Definition(def *registry.Definition, out ...io.Writer) (string, error) {
	if def == nil {
		return "", errors.New("describe: nil definition")
	}
	return r.Render(r.name, definitionContext(def, nil), out...)
}

// Field renders f, including its component values and wire value.
func (r *Renderer) Field(f *field.Field, out ...io.Writer) (string, error) {
	if f == nil {
		return "", errors.New("describe: nil field")
	}
	return r.Render(r.name, definitionContext(f.Definition(), f), out...)
}

// Render executes the named template with ctx.
func (r *Renderer) Render(name string, ctx pongo2.Context, out ...io.Writer) (string, error) {
	path := name
	if !strings.HasSuffix(path, r.ext) {
		path += r.ext
	}
	tmpl, err := r.template(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	r.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	r.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("describe: execute template %q: %w", path, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (r *Renderer) template(path string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[path]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tmpl, ok := r.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("describe: load template %q: %w", path, err)
	}
	r.templates[path] = tmpl
	return tmpl, nil
}

func definitionContext(def *registry.Definition, f *field.Field) pongo2.Context {
	p := def.Pattern()
	slots := p.Components()
	comps := make([]map[string]any, 0, def.Size())
	for _, c := range def.Components() {
		row := map[string]any{
			"index":    c.Index,
			"label":    c.Label,
			"key":      c.Key,
			"type":     c.Type.String(),
			"optional": c.Optional,
			"aliases":  c.Aliases,
			"slot":     slots[c.Index-1].Notation(),
			"present":  false,
		}
		if f != nil {
			if v, ok := f.Component(c.Index); ok {
				row["value"] = v
				row["present"] = true
			}
		}
		comps = append(comps, row)
	}

	ctx := pongo2.Context{
		"name":        def.Name(),
		"description": def.Description(),
		"validator":   p.Validator(),
		"parser":      p.Parser(),
		"components":  comps,
		"has_value":   f != nil,
	}
	if g, ok := def.Generic(); ok {
		ctx["generic"] = map[string]any{
			"qualifier":   g.Qualifier,
			"dss":         g.DSS,
			"conditional": g.ConditionalQualifier,
		}
	}
	if f != nil {
		ctx["value"] = f.Value()
	}
	return ctx
}

func registerDefaultFilters() error {
	if pongo2.FilterExists("visible") {
		return nil
	}
	return pongo2.RegisterFilter("visible", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		s := strings.ReplaceAll(in.String(), "\r\n", `\r\n`)
		return pongo2.AsValue(strings.ReplaceAll(s, "\n", `\n`)), nil
	})
}

// TemplatesFS exposes the embedded templates so callers can copy or extend
// them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}
