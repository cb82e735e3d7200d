package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/sadopc/ticklist/internal/config"
	"github.com/spf13/cobra"
)

func configCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(configInitCmd(s))
	cmd.AddCommand(configShowCmd(s))

	return cmd
}

func configInitCmd(s *session) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(s)
			if _, err := os.Stat(path); err == nil && !force {
				return usagef("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := s.cli.Config.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func configShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := s.cli.Config
			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "config", c)
			}
			fmt.Fprintf(out, "config:     %s\n", configPath(s))
			fmt.Fprintf(out, "db_path:    %s\n", c.DBPath)
			fmt.Fprintf(out, "log_file:   %s\n", c.LogFile)
			fmt.Fprintf(out, "log_level:  %s\n", c.LogLevel)
			fmt.Fprintf(out, "export_dir: %s\n", c.ExportDir)
			return nil
		},
	}
}

func configPath(s *session) string {
	if s.opts.configPath != "" {
		return s.opts.configPath
	}
	return config.DefaultPath()
}
