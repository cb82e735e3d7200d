package cli

import (
	"fmt"

	"github.com/sadopc/ticklist/internal/store"
	"github.com/spf13/cobra"
)

func themeCmd(s *session) *cobra.Command {
	var themeID int
	var mode string

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		Long: `Show the stored theme preference, or change it when --id or --mode is given.

Examples:
  ticklist theme
  ticklist theme --id=2 --mode=light
`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.cli.open(); err != nil {
				return err
			}
			pref, err := s.cli.store.GetPreference()
			if err != nil {
				return fmt.Errorf("load preferences: %w", err)
			}

			if cmd.Flags().Changed("id") || cmd.Flags().Changed("mode") {
				id, m := pref.ThemeID, pref.ThemeMode
				if cmd.Flags().Changed("id") {
					if themeID < 0 {
						return usagef("theme ID must not be negative, got %d", themeID)
					}
					id = themeID
				}
				if cmd.Flags().Changed("mode") {
					if m, err = store.ParseThemeMode(mode); err != nil {
						return err
					}
				}
				if pref, err = s.cli.store.SavePreference(id, m); err != nil {
					return fmt.Errorf("save preferences: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "preference", pref)
			}
			fmt.Fprintf(out, "Theme: %d\nMode:  %s\n", pref.ThemeID, pref.ThemeMode)
			return nil
		},
	}

	cmd.Flags().IntVar(&themeID, "id", 0, "Theme colour index")
	cmd.Flags().StringVar(&mode, "mode", "", "Theme mode (dark, light)")

	return cmd
}
