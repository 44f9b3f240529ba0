package tui

import (
	"strings"

	"jobdesk-cli/internal/model"
)

type jobItem struct {
	job model.Job
	// mine marks the "Your Post" badge in the public list.
	mine bool
}

func (i jobItem) FilterValue() string { return i.job.Title }

func (i jobItem) Title() string {
	if i.mine {
		return i.job.Title + " " + styleMuted().Render("• your post")
	}
	return i.job.Title
}

func (i jobItem) Description() string {
	parts := []string{i.job.Company, i.job.Location}
	if strings.TrimSpace(i.job.Salary) != "" {
		parts = append(parts, i.job.Salary)
	}
	return strings.Join(parts, "  ·  ")
}

type applicantItem struct {
	app model.Application
}

func (i applicantItem) FilterValue() string {
	if i.app.Applicant != nil {
		return i.app.Applicant.Name
	}
	return i.app.ApplicantID
}

func (i applicantItem) Title() string {
	name := i.app.ApplicantID
	if i.app.Applicant != nil && strings.TrimSpace(i.app.Applicant.Name) != "" {
		name = i.app.Applicant.Name
	}
	return name + "  " + statusStyle(string(i.app.Status)).Render("["+string(i.app.Status)+"]")
}

func (i applicantItem) Description() string {
	letter := strings.TrimSpace(i.app.CoverLetter)
	letter = strings.ReplaceAll(letter, "\n", " ")
	if i.app.Applicant != nil && strings.TrimSpace(i.app.Applicant.Email) != "" {
		return i.app.Applicant.Email + "  ·  " + letter
	}
	return letter
}
