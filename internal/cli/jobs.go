package cli

import (
	"errors"

	"jobdesk-cli/internal/directory"
	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newJobsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse and manage job postings",
	}

	cmd.AddCommand(newJobsListCmd(app))
	cmd.AddCommand(newJobsShowCmd(app))
	cmd.AddCommand(newJobsCreateCmd(app))
	cmd.AddCommand(newJobsEditCmd(app))
	cmd.AddCommand(newJobsDeleteCmd(app))

	return cmd
}

func newJobsListCmd(app *App) *cobra.Command {
	var mine bool
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List public jobs (or your own with --mine)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := restoreSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dir := directory.New(app.client)

			if mine {
				if err := dir.LoadOwned(cmd.Context(), sess); err != nil {
					return writeErr(cmd, errors.New(dir.Owned.Err))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"jobs": dir.Owned.Jobs}})
			}

			if err := dir.LoadPublic(cmd.Context()); err != nil {
				return writeErr(cmd, errors.New(dir.Public.Err))
			}
			jobs := directory.Search(dir.Public.Jobs, search)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"jobs": jobs, "total": len(jobs)}})
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "List only jobs you posted (requires login)")
	cmd.Flags().StringVar(&search, "search", "", "Filter by case-insensitive substring across title/company/location/description")

	return cmd
}

func newJobsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := restoreSession(cmd, app); err != nil {
				return writeErr(cmd, err)
			}
			job, err := app.client.GetJob(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": job})
		},
	}
}

func jobFieldsFlags(cmd *cobra.Command, fields *model.JobFields) {
	cmd.Flags().StringVar(&fields.Title, "title", "", "Job title")
	cmd.Flags().StringVar(&fields.Description, "description", "", "Job description")
	cmd.Flags().StringVar(&fields.Company, "company", "", "Company name")
	cmd.Flags().StringVar(&fields.Location, "location", "", "Location (e.g. \"New York, NY\" or \"Remote\")")
	cmd.Flags().StringVar(&fields.Salary, "salary", "", "Salary (optional)")
}

func newJobsCreateCmd(app *App) *cobra.Command {
	var fields model.JobFields

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new job",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := restoreSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			job, err := mutate.Create(cmd.Context(), app.client, sess, fields)
			if err != nil {
				return writeErr(cmd, errors.New(mutate.FailureMessage(mutate.OpCreate, err)))
			}
			logActivity(cmd.Context(), sess.UserID(), "job.create", job.ID, map[string]string{"title": job.Title})
			return writeOut(cmd, app, map[string]any{"data": job})
		},
	}

	jobFieldsFlags(cmd, &fields)
	return cmd
}

func newJobsEditCmd(app *App) *cobra.Command {
	var fields model.JobFields

	cmd := &cobra.Command{
		Use:   "edit <job-id>",
		Short: "Edit a job you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := restoreSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			job, err := mutate.Update(cmd.Context(), app.client, sess, args[0], fields)
			if err != nil {
				return writeErr(cmd, errors.New(mutate.FailureMessage(mutate.OpUpdate, err)))
			}
			logActivity(cmd.Context(), sess.UserID(), "job.update", job.ID, nil)
			return writeOut(cmd, app, map[string]any{"data": job})
		},
	}

	jobFieldsFlags(cmd, &fields)
	return cmd
}

func newJobsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a job you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("refusing to delete without --yes (this cannot be undone)"))
			}
			sess, err := restoreSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.Remove(cmd.Context(), app.client, sess, args[0]); err != nil {
				return writeErr(cmd, errors.New(mutate.FailureMessage(mutate.OpRemove, err)))
			}
			logActivity(cmd.Context(), sess.UserID(), "job.delete", args[0], nil)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
