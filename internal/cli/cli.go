// Package cli holds the ticklist command tree.
//
// e.g., ticklist entry toggle 3
package cli

import (
	"errors"
	"fmt"

	"github.com/sadopc/ticklist/internal/config"
	"github.com/sadopc/ticklist/internal/logging"
	"github.com/sadopc/ticklist/internal/state"
	"github.com/sadopc/ticklist/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CLI represents the CLI application context
type CLI struct {
	Config *config.Config
	Log    *zap.Logger

	closeLog func() error
	handle   *store.Handle
	store    *store.Store
	projects *state.Projects
	entries  *state.Entries
}

type options struct {
	configPath string
	dbPath     string
	logLevel   string
	json       bool
}

// NewCLI loads configuration and logging. The database stays closed until a
// command asks for it.
func NewCLI(opts options) (*CLI, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log, closeLog, err := logging.New(logging.Config{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return &CLI{
		Config:   cfg,
		Log:      log,
		closeLog: closeLog,
		handle:   store.NewHandle(cfg.DBPath),
	}, nil
}

// open connects the database and builds the state containers on first use.
func (c *CLI) open() error {
	if c.store != nil {
		return nil
	}
	s, err := c.handle.Conn()
	if err != nil {
		c.Log.Error("open database", zap.String("path", c.Config.DBPath), zap.Error(err))
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.store = s
	c.projects = state.NewProjects(s, c.Log.Named("projects"))
	c.entries = state.NewEntries(s, c.Log.Named("entries"))
	c.projects.OnDelete(c.entries.Forget)
	return nil
}

// reload re-reads the caches after another process wrote the database.
func (c *CLI) reload() {
	if err := c.projects.Load(); err != nil {
		return
	}
	if err := c.entries.Refresh(); err != nil {
		return
	}
	c.Log.Debug("reloaded after external write")
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	err := c.handle.Close()
	if cerr := c.closeLog(); err == nil {
		err = cerr
	}
	return err
}

// usageError marks a command invoked with bad arguments.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// usageArgs reports a positional argument mismatch as a usage error.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{msg: err.Error()}
		}
		return nil
	}
}

// flagUsage is the root flag error func; subcommands inherit it.
func flagUsage(_ *cobra.Command, err error) error {
	return usageError{msg: err.Error()}
}

// ExitCode maps a command error onto the process exit status.
func ExitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ue):
		return ExitUsage
	case errors.Is(err, store.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, store.ErrEmptyTitle), errors.Is(err, store.ErrInvalidThemeMode):
		return ExitValidation
	}
	return ExitError
}
