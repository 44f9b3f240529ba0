package cli

import (
	"testing"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/store"
)

func TestWirePrecedence(t *testing.T) {
	t.Setenv("JOBDESK_CONFIG_DIR", t.TempDir())

	// Flag (or env, resolved into BaseURL at flag setup) wins.
	app := &App{BaseURL: "http://flag.example:1/api"}
	if err := app.wire(); err != nil {
		t.Fatalf("wire: %v", err)
	}
	if got := app.client.BaseURL(); got != "http://flag.example:1/api" {
		t.Fatalf("BaseURL = %q", got)
	}

	// Config is next.
	if err := store.SaveConfig(&store.GlobalConfig{APIBaseURL: "http://config.example:2/api"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	app = &App{}
	if err := app.wire(); err != nil {
		t.Fatalf("wire: %v", err)
	}
	if got := app.client.BaseURL(); got != "http://config.example:2/api" {
		t.Fatalf("BaseURL = %q", got)
	}

	// Nothing configured: built-in default.
	t.Setenv("JOBDESK_CONFIG_DIR", t.TempDir())
	app = &App{}
	if err := app.wire(); err != nil {
		t.Fatalf("wire: %v", err)
	}
	if got := app.client.BaseURL(); got != api.DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want default", got)
	}
}

func TestWireIsIdempotent(t *testing.T) {
	t.Setenv("JOBDESK_CONFIG_DIR", t.TempDir())

	app := &App{BaseURL: "http://one.example/api"}
	if err := app.wire(); err != nil {
		t.Fatalf("wire: %v", err)
	}
	first := app.client

	app.BaseURL = "http://two.example/api"
	if err := app.wire(); err != nil {
		t.Fatalf("second wire: %v", err)
	}
	if app.client != first {
		t.Fatal("wire rebuilt the client")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("JOBDESK_TEST_ENVOR", "")
	if got := envOr("JOBDESK_TEST_ENVOR", "fallback"); got != "fallback" {
		t.Fatalf("envOr = %q", got)
	}
	t.Setenv("JOBDESK_TEST_ENVOR", "set")
	if got := envOr("JOBDESK_TEST_ENVOR", "fallback"); got != "set" {
		t.Fatalf("envOr = %q", got)
	}
}
