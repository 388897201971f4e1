// Package download invokes the external pip downloader.
//
// The downloader is treated as a black box: this package only knows how
// to spawn it with a fixed flag set (source-only, verbose), redirect its
// combined output into a log file, and surface a non-zero exit as a typed
// error. Parsing the captured log is the scan package's job.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// DefaultBinary is the downloader invoked when no override is configured.
const DefaultBinary = "pip"

// Command describes one pip download invocation.
type Command struct {
	// Pip is the downloader binary. Defaults to DefaultBinary when empty.
	Pip string

	// ExtraArgs are appended verbatim after the fixed flag set, before
	// the requirement-file references (e.g. "--index-url", ...).
	ExtraArgs []string

	// Dest is the download destination directory (pip's -d).
	Dest string

	// LogPath is the file receiving the combined stdout and stderr of
	// the downloader process.
	LogPath string

	// NoCache passes --no-cache-dir to pip.
	NoCache bool

	// RequirementFiles are passed as one -r flag each, in order. An
	// empty list is allowed; pip is still invoked without -r flags.
	RequirementFiles []string
}

// ExitError reports a downloader process that terminated with a non-zero
// status. LogPath points at the captured output so a human can inspect
// what pip printed before failing.
type ExitError struct {
	LogPath string
	Err     error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("pip download failed, see %s for more info", e.LogPath)
}

// Unwrap returns the underlying exec error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Args returns the full argument vector after the binary name. Exposed
// for testing the invocation contract without running a process.
func (c *Command) Args() []string {
	args := []string{
		"download",
		"-d", c.Dest,
		"--no-binary", ":all:",
		"--use-pep517",
		"--verbose",
	}
	if c.NoCache {
		args = append(args, "--no-cache-dir")
	}
	args = append(args, c.ExtraArgs...)
	for _, file := range c.RequirementFiles {
		args = append(args, "-r", file)
	}
	return args
}

// Run executes the downloader once and waits for it to finish. Both
// output streams are redirected to LogPath. There is no retry and no
// timeout; cancelling ctx kills the process.
//
// A non-zero exit status is returned as *ExitError. Failing to create
// the log file is an ordinary error.
func (c *Command) Run(ctx context.Context) error {
	bin := c.Pip
	if bin == "" {
		bin = DefaultBinary
	}

	logFile, err := os.Create(c.LogPath)
	if err != nil {
		return fmt.Errorf("create downloader log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.CommandContext(ctx, bin, c.Args()...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{LogPath: c.LogPath, Err: err}
		}
		// The process never ran (e.g. binary not found); there is no
		// exit status and no log to point at.
		return fmt.Errorf("start downloader %s: %w", bin, err)
	}
	return nil
}
