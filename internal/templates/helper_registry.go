package templates

import (
	"sort"
	"sync"

	gotemplate "github.com/goliatone/go-template"
)

// helperRegistry tracks the helper set pushed into the go-template renderer.
type helperRegistry struct {
	mu       sync.RWMutex
	funcs    map[string]any
	renderer *gotemplate.Engine
}

func newHelperRegistry(renderer *gotemplate.Engine) *helperRegistry {
	return &helperRegistry{
		funcs:    make(map[string]any),
		renderer: renderer,
	}
}

// Register forwards non-nil helpers to the renderer. A nil value removes the
// helper from the registry's view only; go-template keeps what it was given.
func (r *helperRegistry) Register(funcs map[string]any) {
	if r == nil || len(funcs) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	forward := make(map[string]any, len(funcs))
	for key, fn := range funcs {
		if fn == nil {
			delete(r.funcs, key)
			continue
		}
		r.funcs[key] = fn
		forward[key] = fn
	}
	if len(forward) > 0 {
		gotemplate.WithTemplateFunc(forward)(r.renderer)
	}
}

// Names returns the registered helper names in sorted order.
func (r *helperRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
