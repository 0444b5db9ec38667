package templates

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gotemplate "github.com/goliatone/go-template"
)

// Engine renders named layouts through go-template.
type Engine struct {
	renderer *gotemplate.Engine
	helpers  *helperRegistry
	layouts  map[string]string
	layoutMu sync.RWMutex
	renderMu sync.Mutex
}

type engineOptions struct {
	helperFuncs  []map[string]any
	rendererOpts []gotemplate.Option
	layouts      map[string]string
}

// Option configures the engine.
type Option func(*engineOptions)

// WithHelperFuncs registers additional helper functions with the renderer.
func WithHelperFuncs(funcs map[string]any) Option {
	return func(eo *engineOptions) {
		if len(funcs) == 0 {
			return
		}
		eo.helperFuncs = append(eo.helperFuncs, funcs)
	}
}

// WithRendererOptions forwards options directly to go-template's renderer.
func WithRendererOptions(opts ...gotemplate.Option) Option {
	return func(eo *engineOptions) {
		eo.rendererOpts = append(eo.rendererOpts, opts...)
	}
}

// WithLayout registers a layout at construction time.
func WithLayout(name, body string) Option {
	return func(eo *engineOptions) {
		if eo.layouts == nil {
			eo.layouts = make(map[string]string)
		}
		eo.layouts[normalizeKey(name)] = body
	}
}

// NewEngine builds the renderer and wires the default helpers.
func NewEngine(opts ...Option) (*Engine, error) {
	settings := engineOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	rendererOpts := []gotemplate.Option{
		gotemplate.WithBaseDir("."),
	}
	rendererOpts = append(rendererOpts, settings.rendererOpts...)

	renderer, err := gotemplate.NewRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererConfig, err)
	}

	engine := &Engine{
		renderer: renderer,
		helpers:  newHelperRegistry(renderer),
		layouts:  make(map[string]string),
	}
	engine.helpers.Register(defaultHelperFuncs())
	for _, funcs := range settings.helperFuncs {
		engine.helpers.Register(funcs)
	}
	for name, body := range settings.layouts {
		engine.layouts[name] = body
	}
	return engine, nil
}

// RegisterLayout adds or replaces a named layout.
func (e *Engine) RegisterLayout(name, body string) {
	if e == nil || strings.TrimSpace(name) == "" {
		return
	}
	e.layoutMu.Lock()
	e.layouts[normalizeKey(name)] = body
	e.layoutMu.Unlock()
}

// RegisterHelpers adds helper functions to the underlying renderer.
func (e *Engine) RegisterHelpers(funcs map[string]any) {
	if e == nil {
		return
	}
	e.helpers.Register(funcs)
}

// Render executes the named layout with data.
func (e *Engine) Render(ctx context.Context, name string, data map[string]any) (string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	if e == nil || e.renderer == nil {
		return "", ErrRendererConfig
	}
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidRenderRequest
	}

	e.layoutMu.RLock()
	body, ok := e.layouts[normalizeKey(name)]
	e.layoutMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}

	payload := cloneData(data)

	e.renderMu.Lock()
	out, err := e.renderer.RenderString(body, payload)
	e.renderMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("templates: render %s: %w", name, err)
	}
	return out, nil
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func cloneData(input map[string]any) map[string]any {
	if len(input) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}

// Helpers lists the helper names available to layouts.
func (e *Engine) Helpers() []string {
	if e == nil {
		return nil
	}
	return e.helpers.Names()
}
