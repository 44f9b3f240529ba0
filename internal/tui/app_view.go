package tui

import (
	"fmt"
	"strings"

	"jobdesk-cli/internal/perm"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}

	var base string
	switch m.view {
	case viewLoading:
		base = placeCentered(m.width, m.height, m.spin.View()+" Loading...")
	case viewLogin:
		base = m.viewLogin()
	case viewForm:
		base = m.viewForm()
	case viewDetail:
		base = m.viewDetail()
	default:
		base = m.viewBrowse()
	}

	if m.modal != modalNone {
		return placeCentered(m.width, m.height, m.renderModal())
	}
	return base
}

func (m appModel) header() string {
	left := styleTitle().Render("jobdesk")
	mid := styleMuted().Render(" — " + m.headline())
	right := ""
	if m.sess.Active() {
		right = styleMuted().Render(m.sess.Identity.Email)
	} else {
		right = styleMuted().Render("anonymous")
	}
	gap := m.width - lipgloss.Width(left+mid) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + mid + strings.Repeat(" ", gap) + right
}

func (m appModel) footer() string {
	var lines []string
	if m.banner != "" {
		lines = append(lines, " "+styleBanner().Render(m.banner)+styleMuted().Render("   (x: dismiss)"))
	}
	if m.flash != "" {
		lines = append(lines, " "+styleFlash().Render(m.flash))
	}
	lines = append(lines, " "+styleMuted().Render(m.helpLine()))
	return strings.Join(lines, "\n")
}

func (m appModel) helpLine() string {
	if m.view == viewDetail {
		job := m.detailJob
		parts := []string{"esc: back"}
		if perm.CanApply(m.sess, job) {
			parts = append(parts, "a: apply")
		}
		if perm.CanEditJob(m.sess, job) {
			parts = append(parts, "e: edit", "d: delete", "v: applicants")
		}
		return strings.Join(parts, "   ")
	}

	parts := []string{"/: search", "enter: details", "r: refresh"}
	if m.sess.Active() {
		parts = append(parts, "n: post job", "tab: all/mine", "o: sign out")
	} else {
		parts = append(parts, "s: sign in")
	}
	if job, ok := m.selectedJob(); ok {
		if perm.CanApply(m.sess, &job) {
			parts = append(parts, "a: apply")
		}
		if perm.CanEditJob(m.sess, &job) {
			parts = append(parts, "e: edit", "d: delete", "v: applicants")
		}
	}
	parts = append(parts, "q: quit")
	return strings.Join(parts, "   ")
}

func (m appModel) viewBrowse() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	search := " Search: " + m.searchInput.View()
	if m.filter == filterMine {
		search = " " + styleMuted().Render("Filter: my jobs (search applies to all jobs)")
	}
	b.WriteString(search)
	b.WriteString("\n")

	if m.publicLoading || m.ownedLoading {
		b.WriteString(" " + m.spin.View() + " loading jobs...\n")
	} else if count := m.resultCount(); count != "" {
		b.WriteString(" " + styleMuted().Render(count) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(m.jobsList.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m appModel) viewDetail() string {
	job := m.detailJob
	if job == nil {
		return m.viewBrowse()
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	b.WriteString(" " + styleTitle().Render(job.Title) + "\n")
	meta := job.Company + "  ·  " + job.Location
	if strings.TrimSpace(job.Salary) != "" {
		meta += "  ·  " + job.Salary
	}
	b.WriteString(" " + styleMuted().Render(meta) + "\n")
	if perm.CanEditJob(m.sess, job) {
		b.WriteString(" " + styleFlash().Render("Your post") + "\n")
	}
	b.WriteString("\n")

	bodyWidth := m.width - 4
	if bodyWidth > 100 {
		bodyWidth = 100
	}
	b.WriteString(renderMarkdown(job.Description, bodyWidth))
	b.WriteString("\n\n")
	b.WriteString(" " + styleMuted().Render("id: "+job.ID) + "\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m appModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(" " + styleTitle().Render("Welcome Back") + "\n")
	b.WriteString(" " + styleMuted().Render("Sign in to your account") + "\n\n")

	if m.loginErr != "" {
		b.WriteString(" " + styleBanner().Render(m.loginErr) + "\n\n")
	}

	b.WriteString(" Email:    " + m.emailInput.View() + "\n")
	b.WriteString(" Password: " + m.passwordInput.View() + "\n\n")

	if m.loginBusy {
		b.WriteString(" " + m.spin.View() + " Signing in...\n")
	} else {
		b.WriteString(" " + styleMuted().Render("enter: sign in   tab: switch field   esc: back") + "\n")
	}
	b.WriteString("\n " + styleMuted().Render("No account? Register with: jobdesk register --name ... --email ...") + "\n")
	return placeCentered(m.width, m.height, lipgloss.NewStyle().Width(modalBodyWidth(m.width)).Render(b.String()))
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalConfirmDelete:
		body := "Are you sure you want to delete this job? This action cannot be undone."
		if m.deleteBusy {
			body += "\n\n" + m.spin.View() + " Deleting..."
		} else {
			body += "\n\n" + styleMuted().Render("enter/y: delete   esc/n: cancel")
		}
		return renderModalBox(m.width, "Delete Job", body)

	case modalApply:
		var b strings.Builder
		if m.applyErr != "" {
			b.WriteString(styleBanner().Render(m.applyErr) + "\n\n")
		}
		b.WriteString(m.coverLetter.View())
		b.WriteString("\n\n")
		if m.applyBusy {
			b.WriteString(m.spin.View() + " Submitting...")
		} else {
			b.WriteString(styleMuted().Render("ctrl+s: submit   esc: cancel"))
		}
		return renderModalBox(m.width, "Apply: "+m.modalJobTitle, b.String())

	case modalViewApplicants:
		var b strings.Builder
		switch {
		case m.applicantsLoading:
			b.WriteString(m.spin.View() + " Loading applicants...")
		case m.applicantsErr != "":
			b.WriteString(styleBanner().Render(m.applicantsErr))
		case len(m.applicants) == 0:
			b.WriteString(styleMuted().Render("No applications yet."))
		default:
			b.WriteString(m.applicantsList.View())
		}
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("a: accept   x: reject   m: mark reviewed   r: reload   esc: close"))
		title := fmt.Sprintf("Applicants — %s", m.modalJobTitle)
		return renderModalBox(m.width, title, b.String())
	}
	return ""
}
