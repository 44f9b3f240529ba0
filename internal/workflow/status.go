package workflow

import "jobdesk-cli/internal/model"

// CanTransition validates one step of the application state machine:
//
//	pending  → reviewed | accepted | rejected
//	reviewed → accepted | rejected
//
// accepted and rejected are terminal. Review is advisory; pending may jump
// straight to a decision.
func CanTransition(from, to model.ApplicationStatus) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	switch from {
	case model.StatusPending:
		return to == model.StatusReviewed || to == model.StatusAccepted || to == model.StatusRejected
	case model.StatusReviewed:
		return to == model.StatusAccepted || to == model.StatusRejected
	}
	return false
}
