package reactive

import "fmt"

// BudgetExceededMode determines what happens when a notify budget is exceeded.
type BudgetExceededMode int

const (
	// BudgetModeThrottle drops the notification and logs a warning (default).
	BudgetModeThrottle BudgetExceededMode = iota

	// BudgetModePanic panics with ErrNotifyDepthExceeded.
	BudgetModePanic
)

// String returns the mode name used in configuration files.
func (m BudgetExceededMode) String() string {
	if m == BudgetModePanic {
		return "panic"
	}
	return "throttle"
}

// ParseBudgetMode parses "throttle" or "panic".
func ParseBudgetMode(s string) (BudgetExceededMode, error) {
	switch s {
	case "", "throttle":
		return BudgetModeThrottle, nil
	case "panic":
		return BudgetModePanic, nil
	default:
		return BudgetModeThrottle, fmt.Errorf("reactive: unknown budget mode %q", s)
	}
}

// NotifyBudget bounds how deeply notifications may nest on one goroutine.
// Nesting happens when a watcher callback writes a tracked property, whose
// subscribers write another, and so on. The zero budget is unlimited, which
// lets a callback that writes the property it watches recurse until the
// stack is exhausted.
type NotifyBudget struct {
	// MaxDepth is the deepest allowed nesting of notify calls. 0 disables the check.
	MaxDepth int

	// OnExceeded selects throttle or panic behavior.
	OnExceeded BudgetExceededMode
}

// allows reports whether a notification at depth may proceed.
func (b NotifyBudget) allows(depth int) bool {
	return b.MaxDepth <= 0 || depth <= b.MaxDepth
}

// BudgetError is the panic value raised under BudgetModePanic.
type BudgetError struct {
	Key   string
	Depth int
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	return fmt.Sprintf("%v: writing %q at depth %d", ErrNotifyDepthExceeded, e.Key, e.Depth)
}

// Unwrap returns ErrNotifyDepthExceeded.
func (e *BudgetError) Unwrap() error {
	return ErrNotifyDepthExceeded
}
