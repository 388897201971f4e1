package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pipbuilddeps/pkg/config"
	"pipbuilddeps/pkg/discover"
	"pipbuilddeps/pkg/errors"
	"pipbuilddeps/pkg/reconcile"
	"pipbuilddeps/pkg/reqfile"
	"pipbuilddeps/pkg/report"
)

// findOptions holds the command-line flags of the root command.
type findOptions struct {
	outputFile        string // output file path (stdout if empty)
	appendOutput      bool   // append to output file instead of overwriting
	noCache           bool   // pass --no-cache-dir to pip
	ignoreErrors      bool   // produce partial output if pip download fails
	onlyWriteOnUpdate bool   // skip the write when nothing would change
	review            bool   // interactively confirm deps before writing
	watch             bool   // re-run when an input file changes
	pip               string // downloader binary override
	configPath        string // explicit config file path
}

// findCommand creates the root command performing build-dependency
// discovery for the given requirement files.
func (c *CLI) findCommand() *cobra.Command {
	var opts findOptions

	cmd := &cobra.Command{
		Use:   appName + " [flags] REQUIREMENTS_FILE...",
		Short: "Find build dependencies for your runtime dependencies",
		Long: `Find build dependencies for all your runtime dependencies.

The input must be requirements files containing all *recursive* runtime
dependencies (pip-compile can generate such files). The tool runs
"pip download" in source-only verbose mode and collects every package
pip had to fetch on top of the listed ones: those are the build
dependencies. The output is an intermediate file that must go through
pip-compile before use.

Examples:
  pipbuilddeps requirements.txt
  pipbuilddeps -o requirements-build.in requirements.txt
  pipbuilddeps -a --only-write-on-update -o requirements-build.in requirements.txt
  pipbuilddeps --watch -o requirements-build.in requirements.txt dev-requirements.txt`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New(errors.ErrCodeInvalidUsage, "at least one requirements file is required")
			}
			return nil
		},
		SilenceUsage: true,
		// main owns error reporting; without this cobra prints every
		// error a second time.
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFind(cmd.Context(), &opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outputFile, "output-file", "o", "", "write output to this file (default stdout)")
	cmd.Flags().BoolVarP(&opts.appendOutput, "append", "a", false, "append to output file instead of overwriting")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use the pip cache when downloading packages")
	cmd.Flags().BoolVar(&opts.ignoreErrors, "ignore-errors", false, "generate partial output even if pip download fails")
	cmd.Flags().BoolVar(&opts.onlyWriteOnUpdate, "only-write-on-update", false, "only write the output file if dependencies would change")
	cmd.Flags().BoolVar(&opts.review, "review", false, "interactively confirm discovered dependencies before writing")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "re-run discovery when an input file changes (requires -o)")
	cmd.Flags().StringVar(&opts.pip, "pip", "", "downloader binary to invoke (default from config, or \"pip\")")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pipbuilddeps/config.toml)")

	return cmd
}

// runFind validates the flag combination, merges config defaults and runs
// discovery once, or in a watch loop when requested.
func (c *CLI) runFind(ctx context.Context, opts *findOptions, reqFiles []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyConfig(opts, cfg)

	// Fail fast on invalid flag combinations, before any discovery work.
	if opts.onlyWriteOnUpdate && opts.outputFile == "" {
		return errors.New(errors.ErrCodeInvalidUsage, "--only-write-on-update requires an output file (-o/--output-file)")
	}
	if opts.watch && opts.outputFile == "" {
		return errors.New(errors.ErrCodeInvalidUsage, "--watch requires an output file (-o/--output-file)")
	}
	for _, file := range reqFiles {
		if _, err := os.Stat(file); err != nil {
			return errors.New(errors.ErrCodeFileNotFound, "requirements file %s does not exist", file)
		}
	}

	c.Logger.Info("Please make sure the input files contain the full recursive runtime dependencies (see --help)")

	if err := c.findOnce(ctx, opts, cfg, reqFiles); err != nil {
		return err
	}
	if opts.watch {
		return c.watchLoop(ctx, opts, cfg, reqFiles)
	}
	return nil
}

// applyConfig fills flag defaults from the config file. Flags set on the
// command line win.
func applyConfig(opts *findOptions, cfg config.Config) {
	if opts.pip == "" {
		opts.pip = cfg.Pip
	}
	if opts.outputFile == "" {
		opts.outputFile = cfg.OutputFile
	}
}

// findOnce performs a single discover -> reconcile -> render -> write pass.
func (c *CLI) findOnce(ctx context.Context, opts *findOptions, cfg config.Config, reqFiles []string) error {
	spin := newSpinner(ctx, "Running pip download...")
	spin.Start()

	prog := newProgress(c.Logger)
	result, err := discover.Run(ctx, discover.Options{
		RequirementFiles: reqFiles,
		NoCache:          opts.noCache,
		TolerateFailure:  opts.ignoreErrors,
		Pip:              opts.pip,
		ExtraArgs:        cfg.ExtraArgs,
		ScratchRoot:      cfg.ScratchRoot,
		Logger:           c.Logger,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Discovered %d build dependencies", len(result.Deps)))

	// The prior set is only meaningful against a real output file; stdout
	// has no previous content to merge with.
	prior := map[string]bool{}
	if opts.outputFile != "" {
		if prior, err = reqfile.Load(opts.outputFile); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "read existing output %s", opts.outputFile)
		}
	}

	plan := reconcile.Make(result.Deps, prior, reconcile.Mode{
		Append:        opts.appendOutput,
		OnlyIfChanged: opts.onlyWriteOnUpdate,
	})
	if !plan.Write {
		c.Logger.Info("No new build dependencies found")
		return nil
	}

	deps := plan.Deps
	if opts.review && len(deps) > 0 {
		deps, err = reviewDeps(deps)
		if err != nil {
			return err
		}
		if deps == nil {
			printInfo("Review cancelled, nothing written")
			return nil
		}
	}

	if result.Partial {
		c.Logger.Warn("Pip download failed, output may be incomplete!")
	}
	c.Logger.Info("Make sure to pip-compile the output before using it")

	content := report.Render(deps, result.Partial, time.Now())
	return writeReport(content, opts.outputFile, opts.appendOutput)
}

// writeReport writes the rendered report to path, or to stdout when path
// is empty. The file is opened once with an explicit truncate or append
// mode; a trailing newline is always added.
func writeReport(content, path string, appendMode bool) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open output file %s", path)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, content); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write output file %s", path)
	}

	printSuccess("Wrote build dependencies")
	printFile(path)
	return nil
}
