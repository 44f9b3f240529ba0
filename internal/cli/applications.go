package cli

import (
	"errors"
	"fmt"
	"strings"

	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/workflow"

	"github.com/spf13/cobra"
)

func newApplyCmd(app *App) *cobra.Command {
	var coverLetter string

	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply to a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := restoreSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			application, err := workflow.Submit(cmd.Context(), app.client, sess, args[0], coverLetter)
			if err != nil {
				return writeErr(cmd, errors.New(workflow.SubmitFailureMessage(err)))
			}
			logActivity(cmd.Context(), sess.UserID(), "application.submit", application.ID, map[string]string{"jobId": args[0]})
			return writeOut(cmd, app, map[string]any{"data": application})
		},
	}

	cmd.Flags().StringVar(&coverLetter, "cover-letter", "", "Cover letter text")
	_ = cmd.MarkFlagRequired("cover-letter")

	return cmd
}

func newApplicationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "Review applications to jobs you own",
	}

	cmd.AddCommand(newApplicationsListCmd(app))
	cmd.AddCommand(newApplicationsDecideCmd(app))

	return cmd
}

func newApplicationsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <job-id>",
		Short: "List applications for a job you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := restoreSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			apps, err := workflow.ListForJob(cmd.Context(), app.client, sess, args[0])
			if err != nil {
				return writeErr(cmd, errors.New(workflow.ListFailureMessage(err)))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"applications": apps}})
		},
	}
}

func newApplicationsDecideCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "decide <job-id> <application-id>",
		Short: "Accept, reject, or mark an application reviewed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to := model.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
			if !to.Valid() || to == model.StatusPending {
				return writeErr(cmd, fmt.Errorf("invalid --status %q (accepted|rejected|reviewed)", status))
			}

			sess, err := restoreSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			// The API has no single-application read; resolve the current
			// status from the job's list so the transition can be checked.
			apps, err := workflow.ListForJob(cmd.Context(), app.client, sess, args[0])
			if err != nil {
				return writeErr(cmd, errors.New(workflow.ListFailureMessage(err)))
			}
			var target *model.Application
			for i := range apps {
				if apps[i].ID == args[1] {
					target = &apps[i]
					break
				}
			}
			if target == nil {
				return writeErr(cmd, fmt.Errorf("application not found for job %s: %s", args[0], args[1]))
			}

			decided, err := workflow.Decide(cmd.Context(), app.client, sess, *target, to)
			if err != nil {
				return writeErr(cmd, err)
			}
			logActivity(cmd.Context(), sess.UserID(), "application.decide", decided.ID, map[string]string{"status": string(to)})
			return writeOut(cmd, app, map[string]any{"data": decided})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (accepted|rejected|reviewed)")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}
