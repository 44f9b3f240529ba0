package tui

import (
	"fmt"
	"strings"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/directory"
	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/perm"
	"jobdesk-cli/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type appModel struct {
	client   *api.Client
	sessions *session.Store
	dir      *directory.Directory

	width  int
	height int

	view   view
	filter filterKind

	sess *model.Session

	searchInput   textinput.Model
	searchFocused bool
	jobsList      list.Model
	spin          spinner.Model

	// Per-collection dispatch sequence numbers; a completion with an older
	// seq was superseded and is dropped.
	publicSeq int
	ownedSeq  int

	publicLoading bool
	ownedLoading  bool

	// banner is the dismissible error line; flash the transient success one.
	banner string
	flash  string

	detailJob *model.Job

	// Single active-modal slot (see app_types.go).
	modal         modalKind
	modalJobID    string
	modalJobTitle string

	coverLetter textarea.Model
	applyErr    string
	applyBusy   bool

	deleteBusy bool
	decideBusy bool

	// Job create/edit form state. formJobID is "" while creating.
	formJobID    string
	formTitle    textinput.Model
	formCompany  textinput.Model
	formLocation textinput.Model
	formSalary   textinput.Model
	formDesc     textarea.Model
	formFocus    int
	formErr      string
	formBusy     bool

	applicants        []model.Application
	applicantsList    list.Model
	applicantsLoading bool
	applicantsErr     string

	// Login screen state.
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    loginFocus
	loginBusy     bool
	loginErr      string
}

func newAppModel(client *api.Client, sessions *session.Store) appModel {
	m := appModel{
		client:   client,
		sessions: sessions,
		dir:      directory.New(client),
		view:     viewLoading,
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search for jobs, companies, or locations..."
	m.searchInput.CharLimit = 120

	m.jobsList = newList("Available Jobs")
	m.applicantsList = newList("Applicants")

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "you@example.com"
	m.emailInput.CharLimit = 120

	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "password"
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.CharLimit = 120

	m.coverLetter = textarea.New()
	m.coverLetter.Placeholder = "Cover letter"
	m.coverLetter.CharLimit = 4000

	m.formTitle = textinput.New()
	m.formTitle.Placeholder = "Job title"
	m.formTitle.CharLimit = 200

	m.formCompany = textinput.New()
	m.formCompany.Placeholder = "Company"
	m.formCompany.CharLimit = 200

	m.formLocation = textinput.New()
	m.formLocation.Placeholder = "Location (e.g. Remote)"
	m.formLocation.CharLimit = 200

	m.formSalary = textinput.New()
	m.formSalary.Placeholder = "Salary (optional)"
	m.formSalary.CharLimit = 100

	m.formDesc = textarea.New()
	m.formDesc.Placeholder = "Description (markdown)"
	m.formDesc.CharLimit = 8000

	return m
}

func newList(title string) list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(colorSelectedFg)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(colorMuted)

	l := list.New(nil, d, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

// Init restores the session before anything renders; the loading view stays
// up until sessionRestoredMsg arrives.
func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.restoreCmd())
}

// visibleJobs applies the filter toggle and the search term. Search only
// ever filters the public collection.
func (m *appModel) visibleJobs() []model.Job {
	if m.filter == filterMine {
		return m.dir.Owned.Jobs
	}
	return directory.Search(m.dir.Public.Jobs, m.searchInput.Value())
}

func (m *appModel) refreshJobsList() {
	jobs := m.visibleJobs()
	items := make([]list.Item, 0, len(jobs))
	for _, j := range jobs {
		j := j
		items = append(items, jobItem{job: j, mine: m.filter == filterAll && perm.CanEditJob(m.sess, &j)})
	}
	m.jobsList.SetItems(items)
	if m.filter == filterMine {
		m.jobsList.Title = "Your Job Postings"
	} else {
		m.jobsList.Title = "Available Jobs"
	}
}

func (m *appModel) refreshApplicantsList() {
	items := make([]list.Item, 0, len(m.applicants))
	for _, a := range m.applicants {
		items = append(items, applicantItem{app: a})
	}
	m.applicantsList.SetItems(items)
}

func (m *appModel) selectedJob() (model.Job, bool) {
	if m.view == viewDetail && m.detailJob != nil {
		return *m.detailJob, true
	}
	if it, ok := m.jobsList.SelectedItem().(jobItem); ok {
		return it.job, true
	}
	return model.Job{}, false
}

func (m *appModel) selectedApplication() (model.Application, bool) {
	if it, ok := m.applicantsList.SelectedItem().(applicantItem); ok {
		return it.app, true
	}
	return model.Application{}, false
}

func (m *appModel) resize() {
	listHeight := m.height - 7
	if listHeight < 3 {
		listHeight = 3
	}
	m.jobsList.SetSize(m.width-2, listHeight)
	m.applicantsList.SetSize(modalBodyWidth(m.width)-2, 12)
	m.searchInput.Width = m.width - 10
	m.coverLetter.SetWidth(modalBodyWidth(m.width) - 4)
	m.coverLetter.SetHeight(8)

	fieldW := modalBodyWidth(m.width) - 14
	m.formTitle.Width = fieldW
	m.formCompany.Width = fieldW
	m.formLocation.Width = fieldW
	m.formSalary.Width = fieldW
	m.formDesc.SetWidth(modalBodyWidth(m.width) - 4)
	m.formDesc.SetHeight(6)
}

func (m *appModel) headline() string {
	if m.sess.Active() {
		return fmt.Sprintf("Welcome back, %s", m.sess.Identity.Name)
	}
	return "Find Your Dream Job"
}

func (m *appModel) resultCount() string {
	if m.filter == filterMine {
		return ""
	}
	n := len(m.visibleJobs())
	if n == 0 {
		term := strings.TrimSpace(m.searchInput.Value())
		if term != "" {
			return fmt.Sprintf("No jobs match %q. Try a different search term.", term)
		}
		return "No jobs available at the moment."
	}
	if n == 1 {
		return "Showing 1 job"
	}
	return fmt.Sprintf("Showing %d jobs", n)
}
