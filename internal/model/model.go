package model

import (
	"strings"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary,omitempty"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobFields is the user-editable subset of Job, used for create and update.
// OwnerID is never part of it: ownership is fixed at creation by the server.
type JobFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary,omitempty"`
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition out of s is exposed.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	ApplicantID string            `json:"applicantId"`
	Applicant   *User             `json:"applicant,omitempty"`
	CoverLetter string            `json:"coverLetter"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Session is the authenticated identity and credential currently active in
// the client. Identity and Token are both set or both empty, never one
// without the other.
type Session struct {
	Identity *User
	Token    string
}

func (s *Session) Active() bool {
	return s != nil && s.Identity != nil && strings.TrimSpace(s.Token) != ""
}

// UserID returns the identity id, or "" for an anonymous session.
func (s *Session) UserID() string {
	if s == nil || s.Identity == nil {
		return ""
	}
	return strings.TrimSpace(s.Identity.ID)
}
