// Package workflow is the application workflow controller: submitting an
// application to a job, listing a job's applications for its owner, and
// deciding them. The transient "applications for a job" view it produces is
// owned by whichever review surface requested it and is discarded when that
// surface closes.
package workflow

import (
	"context"
	"strings"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/model"
)

// SelfApplyMessage is the friendly phrasing for the server's 403 on
// applying to your own job.
const SelfApplyMessage = "You cannot apply to jobs you created"

// Submit applies to a job with a cover letter. The server enforces the
// self-application prohibition; its 403 is mapped by SubmitFailureMessage.
func Submit(ctx context.Context, client *api.Client, sess *model.Session, jobID, coverLetter string) (model.Application, error) {
	if !sess.Active() {
		return model.Application{}, api.AuthRequired("apply to a job")
	}
	if strings.TrimSpace(coverLetter) == "" {
		return model.Application{}, &api.Error{Kind: api.KindValidation, Message: "Cover letter is required"}
	}
	return client.SubmitApplication(ctx, jobID, coverLetter)
}

// ListForJob fetches the applications for a job the caller owns. The server
// enforces ownership; the returned order is the server's, untouched.
func ListForJob(ctx context.Context, client *api.Client, sess *model.Session, jobID string) ([]model.Application, error) {
	if !sess.Active() {
		return nil, api.AuthRequired("view applicants")
	}
	return client.JobApplications(ctx, jobID)
}

// Decide transitions an application to the given status after validating the
// step against the state machine. The write itself is last-write-wins; the
// server holds no version check for it.
func Decide(ctx context.Context, client *api.Client, sess *model.Session, app model.Application, to model.ApplicationStatus) (model.Application, error) {
	if !sess.Active() {
		return model.Application{}, api.AuthRequired("decide applications")
	}
	if !CanTransition(app.Status, to) {
		return model.Application{}, &api.Error{
			Kind:    api.KindValidation,
			Message: "cannot move application from " + string(app.Status) + " to " + string(to),
		}
	}
	return client.DecideApplication(ctx, app.ID, to)
}

// SubmitFailureMessage maps a Submit error to the user-facing line. The
// Forbidden case is special-cased to the self-apply phrasing.
func SubmitFailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if api.IsForbidden(err) {
		return SelfApplyMessage
	}
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return "Failed to submit application"
}

// ListFailureMessage maps a ListForJob error.
func ListFailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return "Failed to fetch applicants"
}
