// Package perm centralizes the per-action authorization predicates. Every
// ownership check in the client goes through here, and comparison is always
// value-based (trimmed string equality). Gating can't drift between call
// sites because there is only one.
package perm

import (
	"strings"

	"jobdesk-cli/internal/model"
)

func owns(sess *model.Session, job *model.Job) bool {
	if !sess.Active() || job == nil {
		return false
	}
	owner := strings.TrimSpace(job.OwnerID)
	if owner == "" {
		return false
	}
	return owner == sess.UserID()
}

// CanApply: signed in, and not the job's owner.
func CanApply(sess *model.Session, job *model.Job) bool {
	return sess.Active() && job != nil && !owns(sess, job)
}

// CanEditJob covers edit and delete: signed in, and the job's owner.
func CanEditJob(sess *model.Session, job *model.Job) bool {
	return owns(sess, job)
}

// CanViewApplicants: same rule as editing, owner only.
func CanViewApplicants(sess *model.Session, job *model.Job) bool {
	return owns(sess, job)
}
