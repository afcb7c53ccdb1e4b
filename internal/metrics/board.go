package metrics

import (
	"sync"
	"time"

	"paneboard/internal/layout"
)

// BoardState is what the status server reports about the running board.
type BoardState struct {
	TreeID     string          `json:"tree_id" yaml:"tree_id"`
	Profile    string          `json:"profile" yaml:"profile"`
	Descriptor string          `json:"descriptor" yaml:"descriptor"`
	Authoring  bool            `json:"authoring" yaml:"authoring"`
	Updated    time.Time       `json:"updated" yaml:"updated"`
	Layout     layout.Snapshot `json:"layout" yaml:"layout"`
}

// Board holds the most recently published board state. The UI goroutine
// publishes; HTTP handlers read.
type Board struct {
	mu        sync.RWMutex
	state     BoardState
	published bool
	collector *Collector
}

// NewBoard creates a Board. collector may be nil.
func NewBoard(collector *Collector) *Board {
	return &Board{collector: collector}
}

// Publish records the current state of tree.
func (b *Board) Publish(tree *layout.Tree, profile string) {
	st := BoardState{
		TreeID:     tree.ID(),
		Profile:    profile,
		Descriptor: tree.String(),
		Authoring:  tree.Authoring(),
		Updated:    time.Now(),
		Layout:     tree.Snapshot(),
	}
	b.mu.Lock()
	b.state, b.published = st, true
	b.mu.Unlock()
	if b.collector != nil {
		b.collector.observeSnapshot(st.Layout)
	}
}

// State returns the last published state and whether anything was published.
func (b *Board) State() (BoardState, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state, b.published
}
