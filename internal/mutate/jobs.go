// Package mutate is the job mutation controller: create, update and delete
// against the server, gated on an active session before dispatch. Each call
// is single-shot: a failure is reported and must be explicitly re-invoked,
// never retried automatically.
package mutate

import (
	"context"
	"strings"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/model"
)

// ValidateFields checks the required job fields. Salary stays optional.
func ValidateFields(fields model.JobFields) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", fields.Title},
		{"description", fields.Description},
		{"company", fields.Company},
		{"location", fields.Location},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return ValidationError{Field: f.name}
		}
	}
	return nil
}

// Create posts a new job. The created job is returned for the caller to
// fold into the directory.
func Create(ctx context.Context, client *api.Client, sess *model.Session, fields model.JobFields) (model.Job, error) {
	if !sess.Active() {
		return model.Job{}, api.AuthRequired("post a job")
	}
	if err := ValidateFields(fields); err != nil {
		return model.Job{}, err
	}
	return client.CreateJob(ctx, fields)
}

// Update edits an existing job. The server is the authority on ownership; a
// non-owner request comes back Forbidden and is mapped by FailureMessage.
func Update(ctx context.Context, client *api.Client, sess *model.Session, jobID string, fields model.JobFields) (model.Job, error) {
	if !sess.Active() {
		return model.Job{}, api.AuthRequired("edit a job")
	}
	if err := ValidateFields(fields); err != nil {
		return model.Job{}, err
	}
	return client.UpdateJob(ctx, jobID, fields)
}

// Remove deletes a job. Confirmation is the caller's business (the TUI asks
// through its confirm-delete modal, the CLI via --yes).
func Remove(ctx context.Context, client *api.Client, sess *model.Session, jobID string) error {
	if !sess.Active() {
		return api.AuthRequired("delete a job")
	}
	return client.DeleteJob(ctx, jobID)
}

type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpRemove
)

// FailureMessage turns a mutation error into the user-facing line. Forbidden
// gets the specific not-allowed phrasing; everything else uses the server's
// message when present, with a deterministic fallback.
func FailureMessage(op Op, err error) string {
	if err == nil {
		return ""
	}
	if api.IsForbidden(err) {
		switch op {
		case OpRemove:
			return "You are not allowed to delete this job"
		default:
			return "You are not allowed to edit this job"
		}
	}
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	switch op {
	case OpCreate:
		return "Failed to create job. Please try again."
	case OpUpdate:
		return "Failed to update job. Please try again."
	default:
		return "Failed to delete job"
	}
}
