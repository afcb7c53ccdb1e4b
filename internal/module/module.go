// Package module defines the contract between the layout engine and the
// content modules it hosts.
//
// A content module is an opaque leaf: the engine builds it from a descriptor
// fragment, asks it to serialize itself back, and forwards update, config,
// destroy and copy requests. Modules talk back to the engine only through the
// Host they are bound to.
package module

import "errors"

// ErrUnsupported is returned by optional capabilities a module does not
// implement. Base returns it from Copy.
var ErrUnsupported = errors.New("capability not supported")

// Host is the upward channel from a content instance to the container holding it.
type Host interface {
	// Hide asks the enclosing container to hide (true) or show (false) this content.
	Hide(hidden bool)
	// Authoring reports whether the tree is in authoring mode.
	Authoring() bool
}

// Content is a content module instance.
//
// Serialize and Render must be implemented by every module. Update, Config,
// Destroy, Copy and Bind have safe defaults in Base.
type Content interface {
	// Serialize returns the module-specific fragment (the text between ':' and ')').
	Serialize() (string, error)
	// Render draws the content into a width x height cell area.
	Render(width, height int) string

	Update()
	Config(authoring bool)
	Destroy()
	// Copy returns an independent instance. Returning ErrUnsupported makes the
	// engine rebuild a copy from the serialized fragment instead.
	Copy() (Content, error)
	Bind(h Host)
}

// Env is passed to builders.
type Env struct {
	// Data is the external data source (device-state mirror, clock, ...) the
	// application mounted the tree with. Modules type-assert what they need.
	Data      any
	Authoring bool
}

// Builder builds a content instance from src starting at cursor, which points
// just past the "name:" prefix. It returns the instance and the cursor just past
// the consumed fragment; the engine then expects ')' at that position.
type Builder func(src string, cursor int, env Env) (Content, int, error)

// Base provides no-op defaults for the optional capabilities.
type Base struct {
	host Host
}

// Update implements Content.
func (b *Base) Update() {}

// Config implements Content.
func (b *Base) Config(authoring bool) {}

// Destroy implements Content.
func (b *Base) Destroy() {}

// Copy implements Content.
func (b *Base) Copy() (Content, error) { return nil, ErrUnsupported }

// Bind implements Content.
func (b *Base) Bind(h Host) { b.host = h }

// Host returns the bound host, or nil before the instance is attached.
func (b *Base) Host() Host { return b.host }

// Hide forwards to the bound host. No-op when unbound.
func (b *Base) Hide(hidden bool) {
	if b.host != nil {
		b.host.Hide(hidden)
	}
}
