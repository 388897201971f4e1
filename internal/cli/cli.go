// Package cli implements the pipbuilddeps command-line interface.
//
// The tool takes fully-resolved runtime requirement files, runs pip
// download in source-only verbose mode, and derives the set of packages
// pip had to collect as build requirements. The result is written as a
// deterministic, diffable requirements-style file meant to be fed to
// pip-compile afterwards.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pipbuilddeps/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "pipbuilddeps"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command. The root command itself
// performs discovery; the only subcommand is shell completion.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.findCommand()
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.completionCommand())

	return root
}
