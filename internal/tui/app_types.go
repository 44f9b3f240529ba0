package tui

import (
	"jobdesk-cli/internal/model"
)

type view int

const (
	// viewLoading shows until session restoration resolves; nothing is
	// interactive before it.
	viewLoading view = iota
	viewBrowse
	viewDetail
	viewLogin
	// viewForm is the job create/edit form; formJobID on the model decides
	// which mutation a save runs.
	viewForm
)

type filterKind int

const (
	filterAll filterKind = iota
	filterMine
)

// modalKind is the single active-modal slot. At most one modal is ever
// visible; opening a variant replaces whatever was open, and closing
// discards any draft state scoped to the modal (e.g. a cover letter).
type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalApply
	modalViewApplicants
)

type loginFocus int

const (
	loginFocusEmail loginFocus = iota
	loginFocusPassword
)

// Async completion messages. Each carries the session epoch captured at
// dispatch time; Update drops messages from an older epoch so a superseded
// fetch can never clobber newer state. List loads additionally carry a
// per-collection sequence number for same-epoch supersession.

type sessionRestoredMsg struct {
	sess *model.Session
	err  error
}

type loginResultMsg struct {
	sess *model.Session
	err  error
}

type publicJobsMsg struct {
	epoch uint64
	seq   int
	jobs  []model.Job
	err   error
}

type ownedJobsMsg struct {
	epoch uint64
	seq   int
	jobs  []model.Job
	err   error
}

type jobMutatedMsg struct {
	epoch uint64
	job   model.Job
	err   error
}

type jobDeletedMsg struct {
	epoch uint64
	jobID string
	err   error
}

type applySubmittedMsg struct {
	epoch uint64
	jobID string
	err   error
}

type applicantsMsg struct {
	epoch uint64
	jobID string
	apps  []model.Application
	err   error
}

type decideResultMsg struct {
	epoch uint64
	jobID string
	app   model.Application
	err   error
}

// closeAllModals restores the no-modal state and discards modal-scoped
// drafts. Every modal open goes through openModal, every close through
// here, which is what makes the exclusivity structural.
func (m *appModel) closeAllModals() {
	m.modal = modalNone
	m.modalJobID = ""
	m.modalJobTitle = ""
	m.applicants = nil
	m.applicantsErr = ""
	m.applicantsLoading = false
	m.applicantsList.SetItems(nil)

	m.coverLetter.SetValue("")
	m.coverLetter.Blur()
	m.applyBusy = false
	m.deleteBusy = false
	m.decideBusy = false
}

func (m *appModel) openModal(kind modalKind, jobID, jobTitle string) {
	// Replace whatever is open; the previous modal's drafts go with it.
	m.closeAllModals()
	m.modal = kind
	m.modalJobID = jobID
	m.modalJobTitle = jobTitle
}
