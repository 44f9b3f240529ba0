package workflow

import (
	"testing"

	"jobdesk-cli/internal/model"
)

func TestCanTransition(t *testing.T) {
	const (
		pending  = model.StatusPending
		reviewed = model.StatusReviewed
		accepted = model.StatusAccepted
		rejected = model.StatusRejected
	)

	cases := []struct {
		from, to model.ApplicationStatus
		want     bool
	}{
		{pending, reviewed, true},
		{pending, accepted, true},
		{pending, rejected, true},
		{reviewed, accepted, true},
		{reviewed, rejected, true},

		{reviewed, pending, false},
		{accepted, rejected, false},
		{accepted, reviewed, false},
		{accepted, pending, false},
		{rejected, accepted, false},
		{rejected, reviewed, false},
		{rejected, pending, false},

		{pending, pending, false},
		{accepted, accepted, false},
		{pending, "archived", false},
		{"", accepted, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTerminalStatusesAllowNoTransition(t *testing.T) {
	all := []model.ApplicationStatus{
		model.StatusPending, model.StatusReviewed, model.StatusAccepted, model.StatusRejected,
	}
	for _, from := range all {
		if !from.Terminal() {
			continue
		}
		for _, to := range all {
			if CanTransition(from, to) {
				t.Fatalf("terminal status %q allowed transition to %q", from, to)
			}
		}
	}
}
