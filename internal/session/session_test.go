package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/store"
)

// authServer mimics the auth endpoints: login hands out token "tok-valid",
// /auth/me accepts only that token.
func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := model.User{ID: "u-1", Name: "Ada", Email: "ada@example.com"}
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]any{"token": "tok-valid", "user": user})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-valid" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"user": user})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRestoreWithoutCredentialIsAnonymous(t *testing.T) {
	t.Setenv("JOBDESK_CONFIG_DIR", t.TempDir())

	s := NewStore(api.New(authServer(t).URL))
	sess, err := s.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected anonymous session, got %+v", sess)
	}
	if s.Current() != nil {
		t.Fatal("store holds a session with no credential")
	}
}

func TestLoginPersistsAndRestoreRecovers(t *testing.T) {
	t.Setenv("JOBDESK_CONFIG_DIR", t.TempDir())
	srv := authServer(t)

	s := NewStore(api.New(srv.URL))
	sess, err := s.Login(context.Background(), "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !sess.Active() || sess.UserID() != "u-1" {
		t.Fatalf("unexpected session %+v", sess)
	}

	tok, err := store.LoadCredential()
	if err != nil || tok != "tok-valid" {
		t.Fatalf("persisted credential = %q, %v", tok, err)
	}

	// A fresh process (new store, new client) recovers the same identity.
	s2 := NewStore(api.New(srv.URL))
	sess2, err := s2.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !sess2.Active() || sess2.UserID() != sess.UserID() {
		t.Fatalf("restored session %+v does not match %+v", sess2, sess)
	}
}

func TestRestoreDiscardsInvalidCredential(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOBDESK_CONFIG_DIR", dir)
	if err := store.SaveCredential("tok-stale"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}

	s := NewStore(api.New(authServer(t).URL))
	sess, err := s.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if sess != nil {
		t.Fatalf("expired credential produced a session %+v", sess)
	}

	// The stale token is gone from disk.
	if _, err := os.Stat(filepath.Join(dir, "credential.json")); !os.IsNotExist(err) {
		t.Fatalf("credential file still present: %v", err)
	}
}

func TestRestoreKeepsCredentialOnNetworkFailure(t *testing.T) {
	t.Setenv("JOBDESK_CONFIG_DIR", t.TempDir())
	if err := store.SaveCredential("tok-valid"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable

	s := NewStore(api.New(srv.URL))
	sess, err := s.Restore(context.Background())
	if err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
	if sess != nil || s.Current() != nil {
		t.Fatal("network failure must not yield a session")
	}

	tok, err := store.LoadCredential()
	if err != nil || tok != "tok-valid" {
		t.Fatalf("credential after network failure = %q, %v; want it kept", tok, err)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	t.Setenv("JOBDESK_CONFIG_DIR", t.TempDir())
	srv := authServer(t)

	s := NewStore(api.New(srv.URL))
	if _, err := s.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.Current() != nil {
		t.Fatal("session survived logout")
	}
	if tok, _ := store.LoadCredential(); tok != "" {
		t.Fatalf("credential survived logout: %q", tok)
	}

	// Logout with nothing persisted still succeeds.
	if err := s.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestEpochBumpsOnEverySessionChange(t *testing.T) {
	t.Setenv("JOBDESK_CONFIG_DIR", t.TempDir())
	srv := authServer(t)

	s := NewStore(api.New(srv.URL))
	e0 := s.Epoch()

	if _, err := s.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	e1 := s.Epoch()
	if e1 <= e0 {
		t.Fatalf("epoch after login = %d, want > %d", e1, e0)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	e2 := s.Epoch()
	if e2 <= e1 {
		t.Fatalf("epoch after logout = %d, want > %d", e2, e1)
	}

	if _, err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	// Anonymous restore changes nothing, so no bump is fine; logging in
	// again must bump.
	if _, err := s.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Epoch() <= e2 {
		t.Fatalf("epoch after re-login = %d, want > %d", s.Epoch(), e2)
	}
}
