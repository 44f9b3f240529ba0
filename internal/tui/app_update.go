package tui

import (
	"strings"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/directory"
	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/mutate"
	"jobdesk-cli/internal/perm"
	"jobdesk-cli/internal/workflow"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.anythingLoading() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case sessionRestoredMsg:
		return m.onSessionRestored(msg)

	case loginResultMsg:
		return m.onLoginResult(msg)

	case publicJobsMsg:
		return m.onPublicJobs(msg)

	case ownedJobsMsg:
		return m.onOwnedJobs(msg)

	case jobMutatedMsg:
		return m.onJobMutated(msg)

	case jobDeletedMsg:
		return m.onJobDeleted(msg)

	case applySubmittedMsg:
		return m.onApplySubmitted(msg)

	case applicantsMsg:
		return m.onApplicants(msg)

	case decideResultMsg:
		return m.onDecideResult(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewLogin:
			return m.updateLogin(msg)
		case viewForm:
			return m.updateForm(msg)
		case viewDetail:
			return m.updateDetail(msg)
		case viewBrowse:
			return m.updateBrowse(msg)
		}
		return m, nil
	}

	return m, nil
}

func (m *appModel) anythingLoading() bool {
	return m.view == viewLoading || m.publicLoading || m.ownedLoading ||
		m.applicantsLoading || m.applyBusy || m.deleteBusy || m.decideBusy ||
		m.formBusy || m.loginBusy
}

func (m appModel) onSessionRestored(msg sessionRestoredMsg) (tea.Model, tea.Cmd) {
	m.sess = msg.sess
	m.view = viewBrowse
	if msg.err != nil {
		m.banner = fetchFailureMessage(msg.err, "Could not restore your session")
	}
	cmds := []tea.Cmd{m.loadPublicCmd(), m.spin.Tick}
	if m.sess.Active() {
		cmds = append(cmds, m.loadOwnedCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) onLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loginBusy = false
	if msg.err != nil {
		m.loginErr = loginFailureMessage(msg.err)
		return m, nil
	}
	m.sess = msg.sess
	m.loginErr = ""
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.view = viewBrowse
	m.flash = "Signed in as " + msg.sess.Identity.Name
	m.refreshJobsList()
	return m, tea.Batch(m.loadPublicCmd(), m.loadOwnedCmd(), m.spin.Tick)
}

func (m appModel) onPublicJobs(msg publicJobsMsg) (tea.Model, tea.Cmd) {
	// A newer public fetch is in flight (or landed): this one is stale.
	if msg.seq != m.publicSeq {
		return m, nil
	}
	m.publicLoading = false
	if msg.err != nil {
		// Keep whatever was loaded before; only the banner changes.
		m.dir.Public.State = directory.LoadFailed
		m.dir.Public.Err = fetchFailureMessage(msg.err, "Failed to fetch jobs")
		m.banner = m.dir.Public.Err
		return m, nil
	}
	m.dir.Public.Jobs = msg.jobs
	m.dir.Public.State = directory.LoadOK
	m.dir.Public.Err = ""
	m.refreshJobsList()
	return m, nil
}

func (m appModel) onOwnedJobs(msg ownedJobsMsg) (tea.Model, tea.Cmd) {
	// Identity changed since dispatch, or a newer fetch superseded this one.
	if msg.epoch != m.sessions.Epoch() || msg.seq != m.ownedSeq {
		return m, nil
	}
	m.ownedLoading = false
	if msg.err != nil {
		m.dir.Owned.State = directory.LoadFailed
		m.dir.Owned.Err = fetchFailureMessage(msg.err, "Failed to fetch jobs")
		m.banner = m.dir.Owned.Err
		return m, nil
	}
	m.dir.Owned.Jobs = msg.jobs
	m.dir.Owned.State = directory.LoadOK
	m.dir.Owned.Err = ""
	m.refreshJobsList()
	return m, nil
}

func (m appModel) onJobDeleted(msg jobDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.sessions.Epoch() {
		return m, nil
	}
	m.deleteBusy = false
	m.closeAllModals()
	if msg.err != nil {
		m.banner = mutate.FailureMessage(mutate.OpRemove, msg.err)
		return m, nil
	}
	m.dir.Remove(msg.jobID)
	if m.view == viewDetail && m.detailJob != nil && m.detailJob.ID == msg.jobID {
		m.detailJob = nil
		m.view = viewBrowse
	}
	m.refreshJobsList()
	m.flash = "Job deleted"
	return m, nil
}

func (m appModel) onApplySubmitted(msg applySubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.sessions.Epoch() {
		return m, nil
	}
	m.applyBusy = false
	if msg.err != nil {
		if m.modal == modalApply && m.modalJobID == msg.jobID {
			// Keep the modal (and the draft) so the user can fix and retry.
			m.applyErr = workflow.SubmitFailureMessage(msg.err)
		} else {
			m.banner = workflow.SubmitFailureMessage(msg.err)
		}
		return m, nil
	}
	m.closeAllModals()
	m.flash = "Application submitted successfully!"
	return m, nil
}

func (m appModel) onApplicants(msg applicantsMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.sessions.Epoch() {
		return m, nil
	}
	// The review surface owns this view; if it closed (or moved to another
	// job), the response is discarded.
	if m.modal != modalViewApplicants || m.modalJobID != msg.jobID {
		return m, nil
	}
	m.applicantsLoading = false
	if msg.err != nil {
		m.applicantsErr = workflow.ListFailureMessage(msg.err)
		return m, nil
	}
	m.applicants = msg.apps
	m.applicantsErr = ""
	m.refreshApplicantsList()
	return m, nil
}

func (m appModel) onDecideResult(msg decideResultMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.sessions.Epoch() {
		return m, nil
	}
	m.decideBusy = false
	if msg.err != nil {
		// Errors belong to the modal only while it still shows this job's
		// applicants; otherwise they go to the banner.
		if m.modal == modalViewApplicants && m.modalJobID == msg.jobID {
			m.applicantsErr = fetchFailureMessage(msg.err, "Failed to update application")
		} else {
			m.banner = fetchFailureMessage(msg.err, "Failed to update application")
		}
		return m, nil
	}
	if m.modal != modalViewApplicants || m.modalJobID != msg.jobID {
		return m, nil
	}
	for i := range m.applicants {
		if m.applicants[i].ID == msg.app.ID {
			m.applicants[i] = msg.app
			break
		}
	}
	m.applicantsErr = ""
	m.refreshApplicantsList()
	return m, nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "esc":
			// First esc clears the term, second leaves the search box.
			if strings.TrimSpace(m.searchInput.Value()) != "" {
				m.searchInput.SetValue("")
			} else {
				m.searchFocused = false
				m.searchInput.Blur()
			}
			m.refreshJobsList()
			return m, nil
		case "enter":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.refreshJobsList()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.banner = ""
		m.searchFocused = true
		cmd := m.searchInput.Focus()
		return m, cmd
	case "tab":
		// The "mine" toggle only exists for signed-in users.
		if m.sess.Active() {
			if m.filter == filterAll {
				m.filter = filterMine
			} else {
				m.filter = filterAll
			}
			m.refreshJobsList()
		}
		return m, nil
	case "r":
		m.banner = ""
		m.flash = ""
		cmds := []tea.Cmd{m.loadPublicCmd(), m.spin.Tick}
		if m.sess.Active() {
			cmds = append(cmds, m.loadOwnedCmd())
		}
		return m, tea.Batch(cmds...)
	case "enter":
		if job, ok := m.selectedJob(); ok {
			m.detailJob = &job
			m.view = viewDetail
		}
		return m, nil
	case "n":
		if !m.sess.Active() {
			m.banner = "Sign in to post jobs"
			return m, nil
		}
		cmd := m.openCreateForm()
		return m, cmd
	case "s":
		if !m.sess.Active() {
			m.view = viewLogin
			m.loginErr = ""
			m.loginFocus = loginFocusEmail
			m.passwordInput.Blur()
			cmd := m.emailInput.Focus()
			return m, cmd
		}
		return m, nil
	case "o":
		return m.signOut()
	case "x":
		m.banner = ""
		m.flash = ""
		return m, nil
	case "a", "d", "v", "e":
		return m.jobAction(msg.String())
	}

	var cmd tea.Cmd
	m.jobsList, cmd = m.jobsList.Update(msg)
	return m, cmd
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.detailJob = nil
		m.view = viewBrowse
		return m, nil
	case "a", "d", "v", "e":
		return m.jobAction(msg.String())
	}
	return m, nil
}

// jobAction runs one of the per-job gated actions for the selected job.
// Gating goes through perm exclusively.
func (m appModel) jobAction(key string) (tea.Model, tea.Cmd) {
	job, ok := m.selectedJob()
	if !ok {
		return m, nil
	}
	switch key {
	case "a":
		if !m.sess.Active() {
			m.banner = "Sign in to apply to jobs"
			return m, nil
		}
		if !perm.CanApply(m.sess, &job) {
			return m, nil
		}
		m.openModal(modalApply, job.ID, job.Title)
		m.applyErr = ""
		cmd := tea.Batch(m.coverLetter.Focus(), m.spin.Tick)
		return m, cmd
	case "d":
		if !perm.CanEditJob(m.sess, &job) {
			return m, nil
		}
		m.openModal(modalConfirmDelete, job.ID, job.Title)
		return m, nil
	case "v":
		if !perm.CanViewApplicants(m.sess, &job) {
			return m, nil
		}
		m.openModal(modalViewApplicants, job.ID, job.Title)
		m.applicantsLoading = true
		return m, tea.Batch(m.loadApplicantsCmd(job.ID), m.spin.Tick)
	case "e":
		if !perm.CanEditJob(m.sess, &job) {
			return m, nil
		}
		cmd := m.openEditForm(job)
		return m, cmd
	}
	return m, nil
}

func (m appModel) signOut() (tea.Model, tea.Cmd) {
	if !m.sess.Active() {
		return m, nil
	}
	actor := m.sess.UserID()
	if err := m.sessions.Logout(); err != nil {
		m.banner = err.Error()
		return m, nil
	}
	logActivity(actor, "auth.logout", "", nil)
	m.sess = nil
	m.filter = filterAll
	m.dir.Owned = directory.Collection{}
	m.closeAllModals()
	m.detailJob = nil
	m.view = viewBrowse
	m.flash = "Signed out"
	m.refreshJobsList()
	return m, nil
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewBrowse
		m.emailInput.Blur()
		m.passwordInput.Blur()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		if m.loginFocus == loginFocusEmail {
			m.loginFocus = loginFocusPassword
			m.emailInput.Blur()
			cmd := m.passwordInput.Focus()
			return m, cmd
		}
		m.loginFocus = loginFocusEmail
		m.passwordInput.Blur()
		cmd := m.emailInput.Focus()
		return m, cmd
	case "enter":
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if m.loginFocus == loginFocusEmail && password == "" {
			m.loginFocus = loginFocusPassword
			m.emailInput.Blur()
			cmd := m.passwordInput.Focus()
			return m, cmd
		}
		if email == "" || password == "" {
			m.loginErr = "Email and password are required"
			return m, nil
		}
		m.loginBusy = true
		m.loginErr = ""
		return m, tea.Batch(m.loginCmd(email, password), m.spin.Tick)
	}

	var cmd tea.Cmd
	if m.loginFocus == loginFocusEmail {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "enter", "y":
			if m.deleteBusy {
				return m, nil
			}
			m.deleteBusy = true
			return m, tea.Batch(m.deleteJobCmd(m.modalJobID), m.spin.Tick)
		case "esc", "n", "ctrl+g":
			m.closeAllModals()
			return m, nil
		}
		return m, nil

	case modalApply:
		switch msg.String() {
		case "esc", "ctrl+g":
			// Abandoning the modal discards the draft cover letter.
			m.closeAllModals()
			return m, nil
		case "ctrl+s":
			if m.applyBusy {
				return m, nil
			}
			letter := m.coverLetter.Value()
			if strings.TrimSpace(letter) == "" {
				m.applyErr = "Cover letter is required"
				return m, nil
			}
			m.applyBusy = true
			m.applyErr = ""
			return m, tea.Batch(m.submitApplicationCmd(m.modalJobID, letter), m.spin.Tick)
		}
		var cmd tea.Cmd
		m.coverLetter, cmd = m.coverLetter.Update(msg)
		return m, cmd

	case modalViewApplicants:
		switch msg.String() {
		case "esc", "q", "ctrl+g":
			m.closeAllModals()
			return m, nil
		case "r":
			m.applicantsLoading = true
			m.applicantsErr = ""
			return m, tea.Batch(m.loadApplicantsCmd(m.modalJobID), m.spin.Tick)
		case "a":
			return m.decideSelected(model.StatusAccepted)
		case "x":
			return m.decideSelected(model.StatusRejected)
		case "m":
			return m.decideSelected(model.StatusReviewed)
		}
		var cmd tea.Cmd
		m.applicantsList, cmd = m.applicantsList.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m appModel) decideSelected(to model.ApplicationStatus) (tea.Model, tea.Cmd) {
	if m.decideBusy {
		return m, nil
	}
	app, ok := m.selectedApplication()
	if !ok {
		return m, nil
	}
	if !workflow.CanTransition(app.Status, to) {
		m.applicantsErr = "Application is already " + string(app.Status)
		return m, nil
	}
	m.decideBusy = true
	return m, tea.Batch(m.decideCmd(m.modalJobID, app, to), m.spin.Tick)
}

func loginFailureMessage(err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return "Login failed. Please try again."
}

func fetchFailureMessage(err error, def string) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return def
}
