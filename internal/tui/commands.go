package tui

import (
	"context"
	"time"

	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/mutate"
	"jobdesk-cli/internal/store"
	"jobdesk-cli/internal/workflow"

	tea "github.com/charmbracelet/bubbletea"
)

// Commands run off the update loop; everything they need (epoch, sequence
// numbers, the token inside the client) is captured when the command is
// built, i.e. at dispatch time.

const requestTimeout = 30 * time.Second

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func (m *appModel) restoreCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		sess, err := sessions.Restore(ctx)
		return sessionRestoredMsg{sess: sess, err: err}
	}
}

func (m *appModel) loginCmd(email, password string) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		sess, err := sessions.Login(ctx, email, password)
		if err == nil {
			logActivity(sess.UserID(), "auth.login", "", nil)
		}
		return loginResultMsg{sess: sess, err: err}
	}
}

func (m *appModel) loadPublicCmd() tea.Cmd {
	m.publicSeq++
	m.publicLoading = true
	seq := m.publicSeq
	epoch := m.sessions.Epoch()
	client := m.client
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		jobs, err := client.PublicJobs(ctx)
		return publicJobsMsg{epoch: epoch, seq: seq, jobs: jobs, err: err}
	}
}

func (m *appModel) loadOwnedCmd() tea.Cmd {
	m.ownedSeq++
	m.ownedLoading = true
	seq := m.ownedSeq
	epoch := m.sessions.Epoch()
	client := m.client
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		jobs, err := client.OwnedJobs(ctx)
		return ownedJobsMsg{epoch: epoch, seq: seq, jobs: jobs, err: err}
	}
}

// mutateJobCmd creates (jobID == "") or updates a job from the form.
func (m *appModel) mutateJobCmd(jobID string, fields model.JobFields) tea.Cmd {
	epoch := m.sessions.Epoch()
	client := m.client
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		var job model.Job
		var err error
		if jobID == "" {
			job, err = mutate.Create(ctx, client, sess, fields)
		} else {
			job, err = mutate.Update(ctx, client, sess, jobID, fields)
		}
		if err == nil {
			kind := "job.create"
			if jobID != "" {
				kind = "job.update"
			}
			logActivity(sess.UserID(), kind, job.ID, map[string]string{"title": job.Title})
		}
		return jobMutatedMsg{epoch: epoch, job: job, err: err}
	}
}

func (m *appModel) deleteJobCmd(jobID string) tea.Cmd {
	epoch := m.sessions.Epoch()
	client := m.client
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		err := mutate.Remove(ctx, client, sess, jobID)
		if err == nil {
			logActivity(sess.UserID(), "job.delete", jobID, nil)
		}
		return jobDeletedMsg{epoch: epoch, jobID: jobID, err: err}
	}
}

func (m *appModel) submitApplicationCmd(jobID, coverLetter string) tea.Cmd {
	epoch := m.sessions.Epoch()
	client := m.client
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		app, err := workflow.Submit(ctx, client, sess, jobID, coverLetter)
		if err == nil {
			logActivity(sess.UserID(), "application.submit", app.ID, map[string]string{"jobId": jobID})
		}
		return applySubmittedMsg{epoch: epoch, jobID: jobID, err: err}
	}
}

func (m *appModel) loadApplicantsCmd(jobID string) tea.Cmd {
	epoch := m.sessions.Epoch()
	client := m.client
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		apps, err := workflow.ListForJob(ctx, client, sess, jobID)
		return applicantsMsg{epoch: epoch, jobID: jobID, apps: apps, err: err}
	}
}

func (m *appModel) decideCmd(jobID string, app model.Application, to model.ApplicationStatus) tea.Cmd {
	epoch := m.sessions.Epoch()
	client := m.client
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()
		decided, err := workflow.Decide(ctx, client, sess, app, to)
		if err == nil {
			logActivity(sess.UserID(), "application.decide", decided.ID, map[string]string{"status": string(to)})
		}
		return decideResultMsg{epoch: epoch, jobID: jobID, app: decided, err: err}
	}
}

// logActivity appends to the local activity log, best effort.
func logActivity(actorID, kind, subject string, detail map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	log, err := store.OpenActivityLog(ctx)
	if err != nil {
		return
	}
	defer log.Close()
	_ = log.Append(ctx, actorID, kind, subject, detail)
}
