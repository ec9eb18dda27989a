// Copyright © 2026 The ELPS authors

package lisp

// Profiler is notified of every function application.
type Profiler interface {
	// IsEnabled reports whether the profiler is collecting data.
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// Complete ends the profiling session and flushes any collected data.
	Complete() error
	// Start marks the application of fun and returns a function which marks
	// its end.
	Start(fun *LVal) func()
}
