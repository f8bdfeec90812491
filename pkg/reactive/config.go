package reactive

// DevMode enables development-time checks.
// When true, a BudgetModeThrottle budget panics instead of dropping, so
// runaway write loops surface in tests rather than as missing updates.
//
// Set this at application startup:
//
//	func main() {
//	    reactive.DevMode = os.Getenv("MVVM_DEV") == "1"
//	    // ...
//	}
var DevMode = false

// DebugConfig controls debug logging of the reactive core.
// Records are emitted at debug level on the observer's logger.
type DebugConfig struct {
	// LogRegistrations logs every subscriber registration.
	// Default: false.
	LogRegistrations bool

	// LogNotifications logs every notify fan-out with its size.
	// Default: false.
	LogNotifications bool

	// LogWatcherUpdates logs every watcher re-evaluation.
	// Default: false.
	LogWatcherUpdates bool
}

// DefaultDebugConfig returns a DebugConfig with all debugging disabled.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{}
}

// Debug is the global debug configuration.
// Modify this at application startup to enable debugging features.
var Debug = DefaultDebugConfig()
