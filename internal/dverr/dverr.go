// Package dverr defines the sentinel error kinds shared across the
// scanner, monitor, pipeline, layouter and pick engine.
package dverr

import "errors"

// Sentinel kinds matched with errors.Is. Wrap with fmt.Errorf("...: %w", Kind)
// to attach a path or other context.
var (
	// Io covers file/directory access failures encountered mid-scan or
	// mid-watch. Per-entry occurrences are logged and skipped, never fatal.
	Io = errors.New("io error")

	// NotADirectory is returned when a scan root resolves to a regular file.
	NotADirectory = errors.New("not a directory")

	// PathRejected marks a path containing a "." or ".." component.
	PathRejected = errors.New("path rejected")

	// WatchFailed is surfaced from a monitor's Start when the OS watch
	// primitive could not be registered.
	WatchFailed = errors.New("watch registration failed")

	// Cancelled is surfaced to a scan's finish callback when the caller's
	// cancellation flag was observed before the walk completed.
	Cancelled = errors.New("operation cancelled")

	// InvariantViolated marks a debug-only programmer error: a violation
	// of an invariant the caller was responsible for upholding.
	InvariantViolated = errors.New("invariant violated")
)
