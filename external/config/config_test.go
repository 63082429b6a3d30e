package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foxseedlab/meetnotes/internal/notes"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ATTIO_API_KEY", "attio-key")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GMAIL_CREDENTIALS_JSON", `{"installed":{}}`)
	t.Setenv("GMAIL_TOKEN_JSON", `{"refresh_token":"r"}`)
	t.Setenv("DRAFT_TIMEZONE", "UTC")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":3000" || cfg.DispatchMode != "background" || cfg.AttioBaseURL != "https://api.attio.com/v2" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TranscriptRetryBaseDelay != 10*time.Second || cfg.TranscriptRetryMaxDelay != time.Minute || cfg.TranscriptMaxAttempts != 10 {
		t.Fatalf("unexpected retry defaults: %+v", cfg)
	}
	if cfg.PollInterval != time.Hour || cfg.PollMaxPages != 30 || cfg.PollItemDelay != 2*time.Second {
		t.Fatalf("unexpected poll defaults: %+v", cfg)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ATTIO_API_KEY", "")
	os.Unsetenv("ATTIO_API_KEY")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without ATTIO_API_KEY")
	}
}

func TestLoadPrompts(t *testing.T) {
	p, err := LoadPrompts("")
	if err != nil || p != notes.DefaultPrompts() {
		t.Fatalf("expected defaults, got err=%v", err)
	}

	path := filepath.Join(t.TempDir(), "prompts.toml")
	if err := os.WriteFile(path, []byte("action_items = \"\"\"\nList items in {{.Transcript}}\n\"\"\"\n"), 0o600); err != nil {
		t.Fatalf("write prompts file: %v", err)
	}
	p, err = LoadPrompts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ActionItems != "List items in {{.Transcript}}\n" {
		t.Fatalf("unexpected override: %q", p.ActionItems)
	}
	if p.Notes != notes.DefaultPrompts().Notes {
		t.Fatal("notes prompt should keep its default")
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("summary = \"x\"\n"), 0o600); err != nil {
		t.Fatalf("write prompts file: %v", err)
	}
	if _, err := LoadPrompts(bad); err == nil {
		t.Fatal("expected unknown key error")
	}
}
