package cli

import (
	"fmt"
	"strings"

	"github.com/sadopc/ticklist/internal/store"
	"github.com/spf13/cobra"
)

func projectCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(projectAddCmd(s))
	cmd.AddCommand(projectListCmd(s))
	cmd.AddCommand(projectDeleteCmd(s))

	return cmd
}

func projectAddCmd(s *session) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		Long: `Create a new project.

Examples:
  ticklist project add --title="Groceries"
  ticklist project add --title="Packing" --description="Weekend trip"
`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") {
				return usagef(`required flag "title" not set`)
			}
			if strings.TrimSpace(title) == "" {
				return usagef("project title cannot be empty")
			}
			if err := s.cli.open(); err != nil {
				return err
			}

			in := store.ProjectInput{Title: strings.TrimSpace(title)}
			if d := strings.TrimSpace(description); d != "" {
				in.Description = &d
			}
			p, err := s.cli.projects.Create(in)
			if err != nil {
				return fmt.Errorf("create project: %w", err)
			}

			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "project", p)
			}
			fmt.Fprintf(out, "✓ Project '%s' created successfully (ID: %d)\n", p.Title, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Project description")

	return cmd
}

func projectListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long:  "List all projects with how many of their entries are done.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.cli.open(); err != nil {
				return err
			}
			if err := s.cli.projects.Load(); err != nil {
				return fmt.Errorf("load projects: %w", err)
			}
			projects := s.cli.projects.All()

			progress, err := s.cli.store.ProjectProgress()
			if err != nil {
				return fmt.Errorf("load progress: %w", err)
			}
			tally := make(map[int64]store.Progress, len(progress))
			for _, p := range progress {
				tally[p.ProjectID] = p
			}

			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "projects", projects)
			}

			if len(projects) == 0 {
				fmt.Fprintln(out, "No Projects. Add one to view.")
				return nil
			}
			for _, p := range projects {
				t := tally[p.ID]
				fmt.Fprintf(out, "  [%d] %s (%d/%d)", p.ID, p.Title, t.Completed, t.Total)
				if p.Description != nil {
					fmt.Fprintf(out, " - %s", *p.Description)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func projectDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and its entries",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			if err := s.cli.open(); err != nil {
				return err
			}
			if err := s.cli.projects.Delete(id); err != nil {
				return fmt.Errorf("delete project %d: %w", id, err)
			}

			out := cmd.OutOrStdout()
			if s.opts.json {
				return writeJSON(out, "project_id", id)
			}
			fmt.Fprintf(out, "✓ Project %d deleted successfully\n", id)
			return nil
		},
	}
}
