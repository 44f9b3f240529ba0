package mutate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/model"
)

func validFields() model.JobFields {
	return model.JobFields{
		Title:       "Backend Engineer",
		Description: "Build services",
		Company:     "Acme",
		Location:    "Remote",
	}
}

func activeSession() *model.Session {
	return &model.Session{
		Identity: &model.User{ID: "u-1"},
		Token:    "tok-1",
	}
}

func newClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := api.New(srv.URL)
	c.SetToken("tok-1")
	return c
}

func TestValidateFields(t *testing.T) {
	if err := ValidateFields(validFields()); err != nil {
		t.Fatalf("valid fields rejected: %v", err)
	}

	// Salary is the one optional field.
	f := validFields()
	f.Salary = ""
	if err := ValidateFields(f); err != nil {
		t.Fatalf("empty salary rejected: %v", err)
	}

	cases := []struct {
		field  string
		mutate func(*model.JobFields)
	}{
		{"title", func(f *model.JobFields) { f.Title = "" }},
		{"description", func(f *model.JobFields) { f.Description = "  " }},
		{"company", func(f *model.JobFields) { f.Company = "" }},
		{"location", func(f *model.JobFields) { f.Location = "\t" }},
	}
	for _, tc := range cases {
		f := validFields()
		tc.mutate(&f)
		err := ValidateFields(f)
		var verr ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: err = %v, want ValidationError", tc.field, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("field = %q, want %q", verr.Field, tc.field)
		}
		if got, want := verr.Error(), tc.field+" is required"; got != want {
			t.Fatalf("message = %q, want %q", got, want)
		}
	}
}

func TestMutationsRequireSessionBeforeAnyRequest(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s for an anonymous mutation", r.Method, r.URL.Path)
	})

	ctx := context.Background()
	if _, err := Create(ctx, client, nil, validFields()); !api.IsAuthRequired(err) {
		t.Fatalf("Create err = %v, want auth-required", err)
	}
	if _, err := Update(ctx, client, &model.Session{}, "j-1", validFields()); !api.IsAuthRequired(err) {
		t.Fatalf("Update err = %v, want auth-required", err)
	}
	if err := Remove(ctx, client, nil, "j-1"); !api.IsAuthRequired(err) {
		t.Fatalf("Remove err = %v, want auth-required", err)
	}
}

func TestCreateValidatesBeforeAnyRequest(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s for invalid fields", r.Method, r.URL.Path)
	})

	f := validFields()
	f.Title = ""
	var verr ValidationError
	if _, err := Create(context.Background(), client, activeSession(), f); !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateReturnsServerJob(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/jobs" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"job": model.Job{
			ID: "j-7", Title: "Backend Engineer", OwnerID: "u-1",
		}})
	})

	job, err := Create(context.Background(), client, activeSession(), validFields())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.ID != "j-7" || job.OwnerID != "u-1" {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestFailureMessage(t *testing.T) {
	forbidden := &api.Error{Kind: api.KindForbidden, Status: 403}
	server := &api.Error{Kind: api.KindValidation, Status: 400, Message: "title too long"}
	opaque := &api.Error{Kind: api.KindNetworkOrServer}

	cases := []struct {
		op   Op
		err  error
		want string
	}{
		{OpCreate, nil, ""},
		{OpUpdate, forbidden, "You are not allowed to edit this job"},
		{OpRemove, forbidden, "You are not allowed to delete this job"},
		{OpCreate, server, "title too long"},
		{OpCreate, opaque, "Failed to create job. Please try again."},
		{OpUpdate, opaque, "Failed to update job. Please try again."},
		{OpRemove, opaque, "Failed to delete job"},
	}
	for _, tc := range cases {
		if got := FailureMessage(tc.op, tc.err); got != tc.want {
			t.Errorf("FailureMessage(%d, %v) = %q, want %q", tc.op, tc.err, got, tc.want)
		}
	}
}
