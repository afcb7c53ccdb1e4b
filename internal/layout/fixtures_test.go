package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"paneboard/internal/module"
)

// paneLog counts instances across a test so leaks can be asserted.
type paneLog struct {
	built     int
	destroyed int
	names     []string
}

func (l *paneLog) live() int { return l.built - l.destroyed }

// fakePane is a content module whose behavior is switched by its module name:
// "nocopy" has no Copy, "broken" has neither Copy nor Serialize.
type fakePane struct {
	module.Base
	log       *paneLog
	name      string
	value     string
	destroyed bool
	authoring bool
	updates   int
}

func (p *fakePane) Serialize() (string, error) {
	if p.name == "broken" {
		return "", errors.New("no persistent state")
	}
	return module.Escape(p.value), nil
}

func (p *fakePane) Render(width, height int) string { return p.value }

func (p *fakePane) Update() { p.updates++ }

func (p *fakePane) Config(authoring bool) { p.authoring = authoring }

func (p *fakePane) Destroy() {
	if !p.destroyed {
		p.destroyed = true
		p.log.destroyed++
		p.log.names = append(p.log.names, p.name+":"+p.value)
	}
}

func (p *fakePane) Copy() (module.Content, error) {
	if p.name == "nocopy" || p.name == "broken" {
		return nil, module.ErrUnsupported
	}
	p.log.built++
	return &fakePane{log: p.log, name: p.name, value: p.value}, nil
}

func newFakeRegistry(t *testing.T, log *paneLog) *module.Registry {
	t.Helper()
	reg := module.NewRegistry()
	for _, name := range []string{"dummy", "dum", "nocopy", "broken", "text"} {
		name := name
		err := reg.Register(name, module.Simple(func(fragment string, env module.Env) (module.Content, error) {
			if strings.HasPrefix(fragment, "!") {
				return nil, errors.New("fragment rejected")
			}
			log.built++
			return &fakePane{log: log, name: name, value: fragment}, nil
		}))
		require.NoError(t, err)
	}
	return reg
}

// mount parses descriptor with a fresh fakePane registry.
func mount(t *testing.T, descriptor string, opts ...Option) (*Tree, *paneLog) {
	t.Helper()
	log := &paneLog{}
	tree, err := Mount(descriptor, newFakeRegistry(t, log), opts...)
	require.NoError(t, err)
	return tree, log
}

func paneAt(t *testing.T, tree *Tree, leaf NodeID) *fakePane {
	t.Helper()
	p, ok := tree.Instance(leaf).(*fakePane)
	require.True(t, ok, "node %d is not a fakePane leaf", leaf)
	return p
}

func mustSerialize(t *testing.T, tree *Tree) string {
	t.Helper()
	s, err := tree.Serialize()
	require.NoError(t, err)
	return s
}
