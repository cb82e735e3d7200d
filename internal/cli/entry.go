package cli

import (
	"fmt"

	"github.com/sadopc/ticklist/internal/store"
	"github.com/spf13/cobra"
)

func entryCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"entries"},
		Short:   "Manage checklist entries",
	}

	cmd.AddCommand(entryAddCmd(s))
	cmd.AddCommand(entryListCmd(s))
	cmd.AddCommand(entryToggleCmd(s))
	cmd.AddCommand(entryResetCmd(s))

	return cmd
}

func entryAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add <project-id> <title>",
		Short: "Add an entry to a project's checklist",
		Long: `Add an entry to a project's checklist. New entries start incomplete.

Examples:
  ticklist entry add 1 "Milk"
`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			if err := s.cli.open(); err != nil {
				return err
			}
			if _, err := s.cli.store.GetProject(projectID); err != nil {
				return fmt.Errorf("project %d: %w", projectID, err)
			}

			e, err := s.cli.entries.Create(store.EntryInput{Title: args[1], ProjectID: projectID})
			if err != nil {
				return fmt.Errorf("add entry: %w", err)
			}

			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "entry", e)
			}
			fmt.Fprintf(out, "✓ Entry '%s' added (ID: %d)\n", e.Title, e.ID)
			return nil
		},
	}
}

func entryListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "Show a project's checklist",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			if err := s.cli.open(); err != nil {
				return err
			}
			if _, err := s.cli.store.GetProject(projectID); err != nil {
				return fmt.Errorf("project %d: %w", projectID, err)
			}
			if err := s.cli.entries.Load(projectID); err != nil {
				return fmt.Errorf("load entries: %w", err)
			}
			entries := s.cli.entries.All()

			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "entries", entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "Checklist is empty. Add one to view.")
				return nil
			}
			for _, e := range entries {
				box := "[ ]"
				if e.Completed {
					box = "[x]"
				}
				fmt.Fprintf(out, "  %s %d %s\n", box, e.ID, e.Title)
			}
			fmt.Fprintf(out, "\n%s\n", s.cli.entries.Status())
			return nil
		},
	}
}

func entryToggleCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <entry-id>",
		Short: "Flip an entry between done and not done",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("entry", args[0])
			if err != nil {
				return err
			}
			if err := s.cli.open(); err != nil {
				return err
			}
			current, err := s.cli.store.GetEntry(id)
			if err != nil {
				return fmt.Errorf("entry %d: %w", id, err)
			}
			if err := s.cli.entries.Load(current.ProjectID); err != nil {
				return fmt.Errorf("load entries: %w", err)
			}

			e, err := s.cli.entries.Toggle(id)
			if err != nil {
				return fmt.Errorf("toggle entry %d: %w", id, err)
			}
			done := s.cli.entries.AllCompleted()

			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "entry", map[string]any{
					"entry":         e,
					"all_completed": done,
				})
			}
			mark := "not done"
			if e.Completed {
				mark = "done"
			}
			fmt.Fprintf(out, "✓ Entry '%s' marked %s\n", e.Title, mark)
			if done {
				fmt.Fprintf(out, "All done! Run 'ticklist entry reset %d' to start over.\n", e.ProjectID)
			}
			return nil
		},
	}
}

func entryResetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <project-id>",
		Short: "Mark every entry of a project as not done",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			if err := s.cli.open(); err != nil {
				return err
			}
			p, err := s.cli.store.GetProject(projectID)
			if err != nil {
				return fmt.Errorf("project %d: %w", projectID, err)
			}
			if err := s.cli.entries.ResetAll(projectID); err != nil {
				return fmt.Errorf("reset project %d: %w", projectID, err)
			}

			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "project_id", projectID)
			}
			fmt.Fprintf(out, "✓ Checklist '%s' reset\n", p.Title)
			return nil
		},
	}
}
