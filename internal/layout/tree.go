package layout

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"paneboard/internal/module"
)

// Observer receives the outcome of parses and mutations. Used for metrics.
type Observer interface {
	Parsed(err error)
	Mutated(op string, err error)
}

type nopObserver struct{}

func (nopObserver) Parsed(error)          {}
func (nopObserver) Mutated(string, error) {}

// Tree is a mounted layout and the handle returned by Mount.
// It is not safe for concurrent use; all calls come from the UI event loop.
type Tree struct {
	id        string
	reg       *module.Registry
	nodes     map[NodeID]*node
	next      NodeID
	root      NodeID
	data      any
	authoring bool

	logger   *slog.Logger
	tracer   trace.Tracer
	observer Observer
	hideHook func(bin NodeID, hidden bool)
}

// Option configures a Tree.
type Option func(*Tree)

// WithData sets the external data passed to content builders.
func WithData(data any) Option {
	return func(t *Tree) { t.data = data }
}

// WithAuthoring starts the tree in authoring mode.
func WithAuthoring(on bool) Option {
	return func(t *Tree) { t.authoring = on }
}

// WithLogger sets the logger used for mutation logs.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithTracer sets the tracer used for operation spans.
func WithTracer(tr trace.Tracer) Option {
	return func(t *Tree) {
		if tr != nil {
			t.tracer = tr
		}
	}
}

// WithObserver sets the parse/mutation observer.
func WithObserver(o Observer) Option {
	return func(t *Tree) {
		if o != nil {
			t.observer = o
		}
	}
}

// WithHideHook is called whenever a Bin's hide request to its parent changes,
// including the root Bin, whose request is otherwise a no-op.
func WithHideHook(fn func(bin NodeID, hidden bool)) Option {
	return func(t *Tree) { t.hideHook = fn }
}

func newTree(reg *module.Registry, opts ...Option) *Tree {
	t := &Tree{
		id:       uuid.NewString(),
		reg:      reg,
		nodes:    make(map[NodeID]*node),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   noop.NewTracerProvider().Tracer("paneboard/layout"),
		observer: nopObserver{},
	}
	if t.reg == nil {
		t.reg = module.NewRegistry()
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mount parses descriptor and builds the tree. A parse failure aborts the
// whole mount; no content instance survives it.
func Mount(descriptor string, reg *module.Registry, opts ...Option) (*Tree, error) {
	t := newTree(reg, opts...)
	_, span := t.tracer.Start(context.Background(), "layout.mount",
		trace.WithAttributes(
			attribute.String("paneboard.tree.id", t.id),
			attribute.Int("paneboard.descriptor.length", len(descriptor)),
		))
	defer span.End()

	content, err := t.parseSubtree(descriptor)
	t.observer.Parsed(err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.logger.Debug("mount failed", "tree", t.id, "err", err)
		return nil, err
	}
	t.root = t.newBin(content)
	t.logger.Debug("mounted layout", "tree", t.id, "nodes", len(t.nodes))
	return t, nil
}

// Parse is Mount for callers that only inspect or re-serialize a descriptor.
func Parse(descriptor string, reg *module.Registry, opts ...Option) (*Tree, error) {
	return Mount(descriptor, reg, opts...)
}

// ID returns the tree's instance identifier.
func (t *Tree) ID() string { return t.id }

// Root returns the root Bin.
func (t *Tree) Root() NodeID { return t.root }

// Authoring reports whether authoring mode is on.
func (t *Tree) Authoring() bool { return t.authoring }

// Len returns the number of live nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Exists reports whether id names a live node.
func (t *Tree) Exists(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Kind returns the variant of id, or 0 if it does not exist.
func (t *Tree) Kind(id NodeID) Kind {
	if n, ok := t.nodes[id]; ok {
		return n.kind
	}
	return 0
}

// Parent returns the non-owning parent of id (zero for the root).
func (t *Tree) Parent(id NodeID) NodeID {
	if n, ok := t.nodes[id]; ok {
		return n.parent
	}
	return 0
}

// Content returns the content node held by a Bin.
func (t *Tree) Content(bin NodeID) NodeID {
	if n, err := t.lookup(bin, KindBin); err == nil {
		return n.content
	}
	return 0
}

// Bins returns the two Bins of a Split.
func (t *Tree) Bins(split NodeID) (first, second NodeID) {
	if n, err := t.lookup(split, KindSplit); err == nil {
		return n.bins[0], n.bins[1]
	}
	return 0, 0
}

// SplitSpec returns the configuration of a Split.
func (t *Tree) SplitSpec(split NodeID) (SplitSpec, bool) {
	n, err := t.lookup(split, KindSplit)
	if err != nil {
		return SplitSpec{}, false
	}
	return n.spec, true
}

// Pages returns a copy of a Tabs container's pages.
func (t *Tree) Pages(tabs NodeID) []Page {
	n, err := t.lookup(tabs, KindTabs)
	if err != nil {
		return nil
	}
	out := make([]Page, len(n.pages))
	copy(out, n.pages)
	return out
}

// Active returns the selected page index of a Tabs container.
func (t *Tree) Active(tabs NodeID) int {
	if n, err := t.lookup(tabs, KindTabs); err == nil {
		return n.active
	}
	return -1
}

// Module returns the module name of a leaf.
func (t *Tree) Module(leaf NodeID) string {
	if n, err := t.lookup(leaf, KindLeaf); err == nil {
		return n.module
	}
	return ""
}

// Instance returns the content instance of a leaf.
func (t *Tree) Instance(leaf NodeID) module.Content {
	if n, err := t.lookup(leaf, KindLeaf); err == nil {
		return n.inst
	}
	return nil
}

// BinOf returns the Bin holding content node id.
func (t *Tree) BinOf(id NodeID) NodeID {
	n, ok := t.nodes[id]
	if !ok || n.kind == KindBin {
		return 0
	}
	return n.parent
}

// EnclosingSplit walks up from any node and returns the nearest Split above it.
func (t *Tree) EnclosingSplit(id NodeID) NodeID {
	return t.enclosing(id, KindSplit)
}

// EnclosingTabs walks up from any node and returns the nearest Tabs above it.
func (t *Tree) EnclosingTabs(id NodeID) NodeID {
	return t.enclosing(id, KindTabs)
}

func (t *Tree) enclosing(id NodeID, kind Kind) NodeID {
	n, ok := t.nodes[id]
	for ok && n.parent != 0 {
		id = n.parent
		n, ok = t.nodes[id]
		if ok && n.kind == kind {
			return id
		}
	}
	return 0
}

// Leaves returns every leaf in document order, hidden ones included.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	var walk func(NodeID)
	walk = func(id NodeID) {
		n, ok := t.nodes[id]
		if !ok {
			return
		}
		switch n.kind {
		case KindBin:
			walk(n.content)
		case KindSplit:
			walk(n.bins[0])
			walk(n.bins[1])
		case KindTabs:
			for _, p := range n.pages {
				walk(p.Bin)
			}
		case KindLeaf:
			out = append(out, id)
		}
	}
	walk(t.root)
	return out
}

// ShowsPicker reports whether a Bin displays the content picker: only in
// authoring mode and only when it holds a leaf.
func (t *Tree) ShowsPicker(bin NodeID) bool {
	n, err := t.lookup(bin, KindBin)
	if err != nil || !t.authoring {
		return false
	}
	return t.Kind(n.content) == KindLeaf
}

// Update forwards an update to every content instance.
func (t *Tree) Update() {
	for _, id := range t.Leaves() {
		if n, ok := t.nodes[id]; ok && n.inst != nil {
			n.inst.Update()
		}
	}
}

// SetAuthoring switches authoring mode and reconfigures every content instance.
func (t *Tree) SetAuthoring(on bool) {
	t.authoring = on
	for _, id := range t.Leaves() {
		if n, ok := t.nodes[id]; ok && n.inst != nil {
			n.inst.Config(on)
		}
	}
	t.logger.Debug("authoring mode", "tree", t.id, "on", on)
}

// Destroy tears the whole tree down, releasing every content instance.
func (t *Tree) Destroy() {
	t.destroySubtree(t.root)
	t.root = 0
	t.logger.Debug("destroyed layout", "tree", t.id)
}

// leafHost binds a content instance to its leaf. The Bin holding the leaf is
// looked up on every call, so promotion keeps the binding valid.
type leafHost struct {
	t    *Tree
	leaf NodeID
}

func (h leafHost) Hide(hidden bool) { h.t.hideLeaf(h.leaf, hidden) }
func (h leafHost) Authoring() bool  { return h.t.authoring }

// op starts a span for a mutation and returns the function that ends it.
func (t *Tree) op(name string, attrs ...attribute.KeyValue) func(error) {
	attrs = append(attrs, attribute.String("paneboard.tree.id", t.id))
	_, span := t.tracer.Start(context.Background(), "layout."+name, trace.WithAttributes(attrs...))
	return func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			t.logger.Debug("mutation rejected", "tree", t.id, "op", name, "err", err)
		} else {
			t.logger.Debug("mutation applied", "tree", t.id, "op", name)
		}
		t.observer.Mutated(name, err)
		span.End()
	}
}

func nodeAttr(key string, id NodeID) attribute.KeyValue {
	return attribute.Int("paneboard."+key, int(id))
}
