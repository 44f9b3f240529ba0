package tui

import (
	"strings"

	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/mutate"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The job form is a full view, not a modal: create and edit share it, with
// formJobID deciding which mutation runs on save. Leaving the form discards
// the draft, the same rule the apply modal has for cover letters.

const (
	formFocusTitle = iota
	formFocusCompany
	formFocusLocation
	formFocusSalary
	formFocusDesc
	formFieldCount
)

func (m *appModel) openCreateForm() tea.Cmd {
	m.resetForm()
	m.view = viewForm
	return m.setFormFocus(formFocusTitle)
}

func (m *appModel) openEditForm(job model.Job) tea.Cmd {
	m.resetForm()
	m.formJobID = job.ID
	m.formTitle.SetValue(job.Title)
	m.formCompany.SetValue(job.Company)
	m.formLocation.SetValue(job.Location)
	m.formSalary.SetValue(job.Salary)
	m.formDesc.SetValue(job.Description)
	m.view = viewForm
	return m.setFormFocus(formFocusTitle)
}

func (m *appModel) resetForm() {
	m.formJobID = ""
	m.formTitle.SetValue("")
	m.formCompany.SetValue("")
	m.formLocation.SetValue("")
	m.formSalary.SetValue("")
	m.formDesc.SetValue("")
	m.formErr = ""
	m.formBusy = false
	m.blurForm()
	m.formFocus = formFocusTitle
}

func (m *appModel) blurForm() {
	m.formTitle.Blur()
	m.formCompany.Blur()
	m.formLocation.Blur()
	m.formSalary.Blur()
	m.formDesc.Blur()
}

func (m *appModel) setFormFocus(i int) tea.Cmd {
	m.blurForm()
	m.formFocus = i
	switch i {
	case formFocusCompany:
		return m.formCompany.Focus()
	case formFocusLocation:
		return m.formLocation.Focus()
	case formFocusSalary:
		return m.formSalary.Focus()
	case formFocusDesc:
		return m.formDesc.Focus()
	default:
		return m.formTitle.Focus()
	}
}

func (m *appModel) formFields() model.JobFields {
	return model.JobFields{
		Title:       strings.TrimSpace(m.formTitle.Value()),
		Company:     strings.TrimSpace(m.formCompany.Value()),
		Location:    strings.TrimSpace(m.formLocation.Value()),
		Salary:      strings.TrimSpace(m.formSalary.Value()),
		Description: strings.TrimSpace(m.formDesc.Value()),
	}
}

// leaveForm returns to wherever the form was opened from.
func (m *appModel) leaveForm() {
	m.resetForm()
	if m.detailJob != nil {
		m.view = viewDetail
		return
	}
	m.view = viewBrowse
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.leaveForm()
		return m, nil
	case "tab":
		cmd := m.setFormFocus((m.formFocus + 1) % formFieldCount)
		return m, cmd
	case "shift+tab":
		cmd := m.setFormFocus((m.formFocus + formFieldCount - 1) % formFieldCount)
		return m, cmd
	case "enter":
		// Enter advances through the single-line fields; the textarea keeps
		// it for newlines.
		if m.formFocus != formFocusDesc {
			cmd := m.setFormFocus(m.formFocus + 1)
			return m, cmd
		}
	case "ctrl+s":
		if m.formBusy {
			return m, nil
		}
		fields := m.formFields()
		if err := mutate.ValidateFields(fields); err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formBusy = true
		m.formErr = ""
		return m, tea.Batch(m.mutateJobCmd(m.formJobID, fields), m.spin.Tick)
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case formFocusCompany:
		m.formCompany, cmd = m.formCompany.Update(msg)
	case formFocusLocation:
		m.formLocation, cmd = m.formLocation.Update(msg)
	case formFocusSalary:
		m.formSalary, cmd = m.formSalary.Update(msg)
	case formFocusDesc:
		m.formDesc, cmd = m.formDesc.Update(msg)
	default:
		m.formTitle, cmd = m.formTitle.Update(msg)
	}
	return m, cmd
}

func (m appModel) onJobMutated(msg jobMutatedMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.sessions.Epoch() {
		return m, nil
	}
	m.formBusy = false
	if msg.err != nil {
		op := mutate.OpCreate
		if m.formJobID != "" {
			op = mutate.OpUpdate
		}
		// Keep the form (and the draft) so the user can fix and retry.
		if m.view == viewForm {
			m.formErr = mutate.FailureMessage(op, msg.err)
		} else {
			m.banner = mutate.FailureMessage(op, msg.err)
		}
		return m, nil
	}

	editing := m.formJobID != ""
	m.dir.Fold(msg.job)
	if m.detailJob != nil && m.detailJob.ID == msg.job.ID {
		job := msg.job
		m.detailJob = &job
	}
	m.leaveForm()
	if editing {
		m.flash = "Job updated"
	} else {
		m.flash = "Job posted"
	}
	m.refreshJobsList()
	return m, nil
}

func (m appModel) viewForm() string {
	var b strings.Builder
	if m.formJobID != "" {
		b.WriteString(" " + styleTitle().Render("Edit Job") + "\n\n")
	} else {
		b.WriteString(" " + styleTitle().Render("Post a Job") + "\n\n")
	}

	if m.formErr != "" {
		b.WriteString(" " + styleBanner().Render(m.formErr) + "\n\n")
	}

	b.WriteString(" Title:    " + m.formTitle.View() + "\n")
	b.WriteString(" Company:  " + m.formCompany.View() + "\n")
	b.WriteString(" Location: " + m.formLocation.View() + "\n")
	b.WriteString(" Salary:   " + m.formSalary.View() + "\n\n")
	b.WriteString(" Description:\n")
	b.WriteString(m.formDesc.View())
	b.WriteString("\n\n")

	if m.formBusy {
		b.WriteString(" " + m.spin.View() + " Saving...\n")
	} else {
		b.WriteString(" " + styleMuted().Render("ctrl+s: save   tab: next field   esc: cancel") + "\n")
	}
	return placeCentered(m.width, m.height, lipgloss.NewStyle().Width(modalBodyWidth(m.width)).Render(b.String()))
}
