package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/ticklist/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func exportCmd(s *session) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every project and entry to a CSV or JSON file",
		Long: `Write every project and entry to a CSV or JSON file.

Without --out the file lands in the configured export directory.

Examples:
  ticklist export --format=json
  ticklist export --format=csv --out=checklists.csv
`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return usagef("invalid format '%s' (must be: csv, json)", format)
			}
			if err := s.cli.open(); err != nil {
				return err
			}

			path := out
			if path == "" {
				name := fmt.Sprintf("ticklist-export-%s.%s", time.Now().Format("2006-01-02"), format)
				path = filepath.Join(s.cli.Config.ExportDir, name)
			}

			projects, entries, err := export.Collect(s.cli.store)
			if err != nil {
				return fmt.Errorf("collect export: %w", err)
			}
			if format == "csv" {
				err = export.ToCSV(projects, entries, path)
			} else {
				err = export.ToJSON(projects, entries, path)
			}
			if err != nil {
				s.cli.Log.Error("export", zap.String("path", path), zap.Error(err))
				return fmt.Errorf("export %s: %w", format, err)
			}
			s.cli.Log.Info("export", zap.String("path", path), zap.Int("projects", len(projects)))

			w := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(w, "path", path)
			}
			fmt.Fprintf(w, "✓ Exported %d projects to %s\n", len(projects), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format (csv, json)")
	cmd.Flags().StringVar(&out, "out", "", "Output file")

	return cmd
}
