package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobdesk-cli/internal/model"
)

func TestNewNormalizesBaseURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", DefaultBaseURL},
		{"   ", DefaultBaseURL},
		{"http://api.example.com/", "http://api.example.com"},
		{"http://api.example.com/v1///", "http://api.example.com/v1"},
	}
	for _, tc := range cases {
		if got := New(tc.in).BaseURL(); got != tc.want {
			t.Errorf("New(%q).BaseURL() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusMapsToErrorKind(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnauthorized, KindAuthRequired},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindNetworkOrServer},
		{http.StatusBadGateway, KindNetworkOrServer},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			fmt.Fprintf(w, `{"message":"status %d body"}`, tc.status)
		}))
		c := New(srv.URL)

		_, err := c.PublicJobs(context.Background())
		srv.Close()

		var ae *Error
		if !errors.As(err, &ae) {
			t.Fatalf("status %d: err = %v, want *Error", tc.status, err)
		}
		if ae.Kind != tc.want {
			t.Errorf("status %d: kind = %d, want %d", tc.status, ae.Kind, tc.want)
		}
		if ae.Status != tc.status {
			t.Errorf("status %d: recorded status = %d", tc.status, ae.Status)
		}
		if want := fmt.Sprintf("status %d body", tc.status); ServerMessage(err) != want {
			t.Errorf("status %d: message = %q, want %q", tc.status, ServerMessage(err), want)
		}
	}
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens here anymore

	c := New(srv.URL)
	_, err := c.PublicJobs(context.Background())

	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if ae.Kind != KindNetworkOrServer {
		t.Fatalf("kind = %d, want network/server", ae.Kind)
	}
	if ae.Status != 0 {
		t.Fatalf("status = %d, want 0 for a request that never got a response", ae.Status)
	}
	if ServerMessage(err) == "" {
		t.Fatal("expected a transport message for diagnostics")
	}
}

func TestBearerTokenAttachedAtRequestTime(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"jobs":[]}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("first")
	if _, err := c.OwnedJobs(context.Background()); err != nil {
		t.Fatalf("OwnedJobs: %v", err)
	}
	c.SetToken("second")
	if _, err := c.OwnedJobs(context.Background()); err != nil {
		t.Fatalf("OwnedJobs: %v", err)
	}

	want := []string{"Bearer first", "Bearer second"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("request %d Authorization = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAuthedRequestWithoutTokenFailsLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server without a token")
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.OwnedJobs(context.Background())
	if !IsAuthRequired(err) {
		t.Fatalf("err = %v, want auth-required", err)
	}
}

func TestPublicJobsNeverSendsAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("public listing sent Authorization %q", r.Header.Get("Authorization"))
		}
		fmt.Fprint(w, `{"jobs":[{"id":"j-1","title":"Welder"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok")
	jobs, err := c.PublicJobs(context.Background())
	if err != nil {
		t.Fatalf("PublicJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j-1" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}
}

func TestAuthRequiredHelperAndMessages(t *testing.T) {
	err := AuthRequired("apply to a job")
	if !IsAuthRequired(err) {
		t.Fatalf("IsAuthRequired = false for %v", err)
	}
	if got := err.Error(); got != "sign in to apply to a job" {
		t.Fatalf("message = %q", got)
	}

	// Helpers classify, never match messages.
	if IsForbidden(err) || IsValidation(err) || IsNotFound(err) {
		t.Fatal("auth-required error misclassified")
	}
	if IsAuthRequired(errors.New("plain")) {
		t.Fatal("plain error classified as auth-required")
	}
}

func TestDecideApplicationEscapesID(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		fmt.Fprint(w, `{"application":{"id":"a 1","status":"accepted"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok")
	if _, err := c.DecideApplication(context.Background(), "a 1", model.StatusAccepted); err != nil {
		t.Fatalf("DecideApplication: %v", err)
	}
	if path != "/applications/a%201" {
		t.Fatalf("path = %q, want escaped id", path)
	}
}
