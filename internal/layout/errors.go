package layout

import (
	"errors"
	"fmt"
)

// ErrNoNode is returned when a NodeID does not name a live node of the expected kind.
var ErrNoNode = errors.New("no such node")

// SyntaxError reports a malformed descriptor.
type SyntaxError struct {
	Offset   int
	Expected string
	Found    string
	// Suggestion is a registered module name close to an unknown one.
	Suggestion string
	// Err is the builder error when a module rejected its fragment.
	Err error
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error at offset %d: expected %s, found %s", e.Offset, e.Expected, e.Found)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ContractViolationError reports a content instance that cannot provide a
// capability an operation needs (serialize for persistence, copy for split).
type ContractViolationError struct {
	Module     string
	Capability string
	Err        error
}

func (e *ContractViolationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("module %q: %s not available", e.Module, e.Capability)
	}
	return fmt.Sprintf("module %q: %s: %v", e.Module, e.Capability, e.Err)
}

func (e *ContractViolationError) Unwrap() error { return e.Err }

// StructuralInvariantError reports an operation that would break a container
// invariant (a Split with fewer than two children, an empty Tabs).
type StructuralInvariantError struct {
	Op     string
	Node   NodeID
	Reason string
}

func (e *StructuralInvariantError) Error() string {
	return fmt.Sprintf("%s on node %d: %s", e.Op, e.Node, e.Reason)
}
