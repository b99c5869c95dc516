// Package cli implements the kbc-conform command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/keboola/kbc-conform/internal/pkg/conformed"
	"github.com/keboola/kbc-conform/internal/pkg/env"
	"github.com/keboola/kbc-conform/internal/pkg/log"
	"github.com/keboola/kbc-conform/internal/pkg/options"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
	"github.com/keboola/kbc-conform/internal/pkg/version"
)

const binaryName = "kbc-conform"

const description = `
Keboola Conform

Inspect schedules, triggers and configuration properties
of Keboola Connection streams and dataflows.

Each command reads a JSON payload, as returned by the API, from a file.
`

type RootCommand struct {
	*cobra.Command
	Options  *options.Options
	Logger   log.Logger
	envs     *env.Map
	fs       afero.Fs
	clock    clockwork.Clock
	registry *conformed.Registry
	logFile  *log.File
}

type Option func(root *RootCommand)

// WithClock replaces the real clock, the clock is used to compute the next run of a schedule.
func WithClock(clock clockwork.Clock) Option {
	return func(root *RootCommand) {
		root.clock = clock
	}
}

// WithRegistry replaces the default properties registry.
func WithRegistry(registry *conformed.Registry) Option {
	return func(root *RootCommand) {
		root.registry = registry
	}
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdout io.Writer, stderr io.Writer, envs *env.Map, fs afero.Fs, opts ...Option) *RootCommand {
	root := &RootCommand{
		Options:  options.New(),
		Logger:   log.NewMemoryLogger(), // temporary logger, we don't have a path to the log file yet
		envs:     envs,
		fs:       fs,
		clock:    clockwork.NewRealClock(),
		registry: conformed.Default(),
	}
	for _, o := range opts {
		o(root)
	}

	root.Command = &cobra.Command{
		Use:           binaryName,
		Version:       version.Version(),
		Short:         description,
		SilenceUsage:  true,
		SilenceErrors: true, // custom error handling, see printError
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return root.Help()
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("{{.Version}}")

	// Persistent flags for all sub-commands
	flags := root.PersistentFlags()
	flags.SortFlags = true
	root.Options.BindPersistentFlags(flags)

	// Init when flags are parsed
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := root.Options.Load(cmd.Context(), root.Logger, root.envs, root.fs, cmd.Flags()); err != nil {
			return err
		}
		root.setupLogger(cmd.Context())
		return nil
	}

	root.AddCommand(
		ScheduleCommand(root),
		TriggersCommand(root),
		PropertyCommand(root),
	)

	return root
}

// Execute command or sub-command.
func (root *RootCommand) Execute(ctx context.Context) (exitCode int) {
	defer func() {
		exitCode = root.tearDown(ctx, exitCode)
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		root.printError(err)
		return 1
	}
	return 0
}

// path converts a relative path to an absolute path in the working directory.
func (root *RootCommand) path(path string) string {
	if filepath.IsAbs(path) || root.Options.WorkingDir == "" {
		return path
	}
	return filepath.Join(root.Options.WorkingDir, path)
}

func (root *RootCommand) printError(err error) {
	root.PrintErrln(errors.PrefixError(err, "Error").Error())
}

func (root *RootCommand) setupLogger(ctx context.Context) {
	// Get log file
	var logFileErr error
	root.logFile, logFileErr = log.NewLogFile(root.Options.LogFilePath)

	// Get temporary logger
	memoryLogger, _ := root.Logger.(*log.MemoryLogger)

	// Create logger
	root.Logger = log.NewCliLogger(root.OutOrStdout(), root.ErrOrStderr(), root.logFile, root.Options.Verbose)

	// Warn if user specified log file + it cannot be opened
	if logFileErr != nil && root.Options.LogFilePath != "" {
		root.Logger.Warnf(ctx, "Cannot open log file: %s", logFileErr)
	}

	// Log info
	root.Logger.Debugf(ctx, "Running command %v", os.Args)
	root.Logger.Debug(ctx, root.Options.Dump())
	if root.logFile == nil {
		root.Logger.Debug(ctx, "Log file: -")
	} else {
		root.Logger.Debug(ctx, "Log file: "+root.logFile.Path())
	}

	// Copy logs from the temporary logger
	if memoryLogger != nil {
		memoryLogger.CopyLogsTo(root.Logger)
	}
}

// tearDown does clean-up after command execution.
func (root *RootCommand) tearDown(ctx context.Context, exitCode int) int {
	// Logger may be uninitialized, if error occurred before initialization
	if _, ok := root.Logger.(*log.MemoryLogger); ok {
		root.setupLogger(ctx)
	}

	_ = root.Logger.Sync()
	if err := root.logFile.TearDown(exitCode != 0); err != nil {
		root.PrintErrln(fmt.Sprintf("Warning: %s", err))
	}
	return exitCode
}
