package core

import (
	"errors"
	"fmt"
	"sort"

	"microlife/pkg/core"
)

// ErrUnknownRenderer is returned when no renderer is registered under a name.
var ErrUnknownRenderer = errors.New("unknown renderer")

// RendererFactory constructs a Renderer using an optional configuration map.
type RendererFactory func(cfg map[string]string) (core.Renderer, error)

var renderers = map[string]RendererFactory{}

// RegisterRenderer adds a renderer factory under the provided name.
func RegisterRenderer(name string, f RendererFactory) {
	if name == "" || f == nil {
		return
	}
	renderers[name] = f
}

// NewRenderer builds the renderer registered under name.
func NewRenderer(name string, cfg map[string]string) (core.Renderer, error) {
	f, ok := renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownRenderer, name, RendererNames())
	}
	return f(cfg)
}

// RendererNames lists registered renderers in sorted order.
func RendererNames() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
