package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/ticklist/internal/tui"
	"github.com/sadopc/ticklist/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session carries the CLI built in PersistentPreRunE to the subcommands.
type session struct {
	opts options
	cli  *CLI
}

// close releases whatever PersistentPreRunE opened.
func (s *session) close() error {
	if s.cli == nil {
		return nil
	}
	return s.cli.Close()
}

// newRoot builds the ticklist command tree.
func newRoot() (*cobra.Command, *session) {
	s := &session{}

	root := &cobra.Command{
		Use:   "ticklist",
		Short: "Reusable checklists in your terminal",
		Long: `ticklist keeps projects of checklist entries in a local SQLite database.

Run without a subcommand to open the interactive view.

Examples:
  ticklist project add --title="Groceries"
  ticklist entry add 1 "Milk"
  ticklist entry toggle 1
  ticklist entry reset 1
`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewCLI(s.opts)
			if err != nil {
				return err
			}
			s.cli = c
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(s.cli)
		},
	}

	root.SetFlagErrorFunc(flagUsage)
	root.PersistentFlags().StringVar(&s.opts.configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/ticklist/config.yaml)")
	root.PersistentFlags().StringVar(&s.opts.dbPath, "db", "", "Database path, overrides the config file")
	root.PersistentFlags().StringVar(&s.opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&s.opts.json, "json", false, "Output in JSON format")

	root.AddCommand(projectCmd(s))
	root.AddCommand(entryCmd(s))
	root.AddCommand(exportCmd(s))
	root.AddCommand(themeCmd(s))
	root.AddCommand(configCmd(s))

	return root, s
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	root, s := newRoot()
	err := root.Execute()
	if cerr := s.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

func runTUI(c *CLI) error {
	if err := c.open(); err != nil {
		return err
	}
	app := tui.NewApp(tui.Deps{
		Store:     c.store,
		Projects:  c.projects,
		Entries:   c.entries,
		Log:       c.Log.Named("tui"),
		ExportDir: c.Config.ExportDir,
	})
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if w, err := watch.New(c.Config.DBPath, c.Log.Named("watch")); err != nil {
		c.Log.Warn("database watcher disabled", zap.Error(err))
	} else {
		defer w.Close()
		go w.Run(ctx, c.reload)
	}

	c.Log.Info("starting tui", zap.String("db", c.Config.DBPath))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
