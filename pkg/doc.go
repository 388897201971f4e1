// Package pkg provides the core libraries for pipbuilddeps.
//
// # Overview
//
// pipbuilddeps derives the build dependencies of a Python project from
// its fully-resolved runtime dependencies by observing what an external
// "pip download" run has to collect on top of them. The data flow:
//
//	requirements files
//	         ↓
//	    [download] package (invoke pip download, capture log)
//	         ↓
//	    [scan] package (extract indented "Collecting" lines)
//	         ↓
//	    [reconcile] package (merge with the existing output file)
//	         ↓
//	    [report] package (render commented, timestamped text)
//
// # Main Packages
//
// [discover] - Orchestrates one discovery run: scratch workspace setup,
// downloader invocation, log scanning and partial-failure handling.
//
// [download] - Invokes pip download in source-only verbose mode with
// combined output captured to a log file.
//
// [scan] - Extracts build dependencies from a pip download log. The only
// place that knows pip's log format.
//
// [reqfile] - Reads requirements-style files back into name sets.
//
// [reconcile] - Pure merge policy between fresh and prior dependency
// sets (overwrite, append, only-write-on-update).
//
// [report] - Renders the final dependency set as diffable text.
//
// [workspace] - Scratch directory lifecycle, kept on failure for
// postmortem inspection.
//
// [config] - Optional TOML configuration with flag-overridable defaults.
//
// [errors] - Structured error codes shared by all packages.
//
// [buildinfo] - ldflags-injected version information.
package pkg
