package module

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// reservedChars may not appear in module names; they are descriptor delimiters.
const reservedChars = "(){}[]:\\"

// Registry maps module names to builders. It is passed explicitly to the
// parser; there is no package-level default.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
	}
}

// Register adds a builder under name, replacing any previous one.
func (r *Registry) Register(name string, b Builder) error {
	if name == "" {
		return fmt.Errorf("register module: empty name")
	}
	if strings.ContainsAny(name, reservedChars) {
		return fmt.Errorf("register module %q: name contains a reserved character (%s)", name, reservedChars)
	}
	if b == nil {
		return fmt.Errorf("register module %q: nil builder", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = b
	return nil
}

// MustRegister is Register for composition roots; it panics on error.
func (r *Registry) MustRegister(name string, b Builder) {
	if err := r.Register(name, b); err != nil {
		panic(err)
	}
}

// Lookup returns the builder registered under name.
func (r *Registry) Lookup(name string) (Builder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[name]
	return b, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for n := range r.builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Match selects the module whose name followed by ':' is the longest prefix of
// src[cursor:]. It returns the name and its builder.
func (r *Registry) Match(src string, cursor int) (string, Builder, bool) {
	if cursor > len(src) {
		return "", nil, false
	}
	rest := src[cursor:]
	r.mu.RLock()
	defer r.mu.RUnlock()
	best := ""
	var bestBuilder Builder
	for name, b := range r.builders {
		if len(name) <= len(best) {
			continue
		}
		if len(rest) > len(name) && rest[len(name)] == ':' && strings.HasPrefix(rest, name) {
			best, bestBuilder = name, b
		}
	}
	return best, bestBuilder, best != ""
}

// Suggest returns the registered name closest to word, if any is reasonably close.
func (r *Registry) Suggest(word string) (string, bool) {
	if word == "" {
		return "", false
	}
	best := ""
	bestDist := -1
	for _, name := range r.Names() {
		d := levenshtein.ComputeDistance(word, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	limit := len(word) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}
