// Package discover runs the build-dependency discovery pipeline: invoke
// pip download against the resolved runtime requirements, then scan the
// captured log for the extra packages pip had to collect to satisfy
// build requirements.
package discover

import (
	"context"
	stderrors "errors"

	charmlog "github.com/charmbracelet/log"

	"pipbuilddeps/pkg/download"
	"pipbuilddeps/pkg/errors"
	"pipbuilddeps/pkg/scan"
	"pipbuilddeps/pkg/workspace"
)

// Options configures one discovery run.
type Options struct {
	// RequirementFiles are the fully-resolved runtime requirement files.
	// An empty list is accepted and yields an empty dependency set.
	RequirementFiles []string

	// NoCache bypasses the pip download cache.
	NoCache bool

	// TolerateFailure produces a partial result instead of an error when
	// pip download exits non-zero. Packages collected before the failure
	// are still valid signal.
	TolerateFailure bool

	// Pip overrides the downloader binary. Empty means "pip".
	Pip string

	// ExtraArgs are passed through to pip download verbatim.
	ExtraArgs []string

	// ScratchRoot is the parent directory for the scratch workspace.
	// Empty means the system temporary directory.
	ScratchRoot string

	// Logger receives progress messages. Nil falls back to the default
	// logger.
	Logger *charmlog.Logger
}

// Result is the outcome of a discovery run.
type Result struct {
	// Deps is the sorted, duplicate-free set of build dependencies.
	Deps []string

	// Partial is true when pip download failed and the caller opted to
	// tolerate it: Deps holds whatever was discovered before the
	// failure, and nothing after it is known.
	Partial bool

	// LogPath is the captured downloader log. The file only outlives the
	// run when the result is partial.
	LogPath string
}

// Run discovers build dependencies for the given requirement files.
//
// The scratch workspace is removed on a clean run and deliberately kept
// on a partial one so the raw pip log remains inspectable.
func Run(ctx context.Context, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = charmlog.Default()
	}

	ws, err := workspace.New(opts.ScratchRoot, "pipbuilddeps")
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "create scratch workspace")
	}
	defer ws.Remove()

	cmd := &download.Command{
		Pip:              opts.Pip,
		ExtraArgs:        opts.ExtraArgs,
		Dest:             ws.Dir(),
		LogPath:          ws.LogPath(),
		NoCache:          opts.NoCache,
		RequirementFiles: opts.RequirementFiles,
	}

	result := Result{LogPath: ws.LogPath()}

	logger.Info("Running pip download, this may take a while")
	if err := cmd.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		var exitErr *download.ExitError
		if !stderrors.As(err, &exitErr) {
			// Not a downloader exit status (e.g. the log file could not
			// be created); never tolerated.
			return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "invoke pip download")
		}
		if !opts.TolerateFailure {
			ws.Keep()
			return Result{}, errors.Wrap(errors.ErrCodeDownloadFailed, exitErr, "discovery failed")
		}
		logger.Error("Pip download failed", "log", ws.LogPath())
		logger.Warn("Ignoring error, output may be incomplete")
		result.Partial = true
		ws.Keep()
	}

	// Scan unconditionally: on a tolerated failure the log still holds
	// every package collected before the crash.
	logger.Info("Looking for build dependencies in the output of pip download")
	deps, err := scan.BuilddepsFile(ws.LogPath())
	if err != nil {
		ws.Keep()
		return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "scan downloader log %s", ws.LogPath())
	}
	result.Deps = deps

	return result, nil
}
