package reactive

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPathNotFound is wrapped by every *PathError.
var ErrPathNotFound = errors.New("reactive: path not found")

// ErrEmptyPath is returned when a path has no segments.
var ErrEmptyPath = errors.New("reactive: empty path")

// ErrNotifyDepthExceeded is the panic value used by BudgetModePanic, and is
// logged by BudgetModeThrottle, when re-entrant writes nest deeper than the
// configured notify budget.
var ErrNotifyDepthExceeded = errors.New("reactive: notify depth exceeded")

// PathError reports the first segment of a path that could not be resolved.
type PathError struct {
	// Path is the full path being resolved.
	Path Path

	// Index is the position of the missing segment in Path.
	Index int

	// Reason says what the missing segment was indexed into.
	Reason string
}

// Error implements the error interface.
func (e *PathError) Error() string {
	seg := ""
	if e.Index < len(e.Path) {
		seg = e.Path[e.Index]
	}
	return fmt.Sprintf("reactive: resolve %q: segment %q: %s",
		strings.Join(e.Path, "."), seg, e.Reason)
}

// Unwrap returns ErrPathNotFound for errors.Is support.
func (e *PathError) Unwrap() error {
	return ErrPathNotFound
}

// CallbackPanic wraps a value recovered from a watcher callback when the
// watcher was created with WithRecover.
type CallbackPanic struct {
	Path  Path
	Value any
}

// Error implements the error interface.
func (e *CallbackPanic) Error() string {
	return fmt.Sprintf("reactive: watcher %q panicked: %v", e.Path.String(), e.Value)
}
