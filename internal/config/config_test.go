package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:                      "development",
		AttioAPIKey:              "attio-key",
		AttioBaseURL:             "https://api.attio.com/v2",
		OpenAIAPIKey:             "sk-test",
		OpenAIModel:              "gpt-4.1",
		GmailCredentialsJSON:     `{"installed":{}}`,
		GmailTokenJSON:           `{"refresh_token":"r"}`,
		DispatchMode:             DispatchModeBackground,
		TranscriptMaxAttempts:    10,
		TranscriptRetryBaseDelay: 10 * time.Second,
		TranscriptRetryMaxDelay:  time.Minute,
		PollEnabled:              true,
		PollInterval:             time.Hour,
		PollCutoverDate:          "2026-01-01",
		PollMaxPages:             30,
		PollPageSize:             50,
		PollDraftMaxResults:      500,
		DraftTimezone:            "UTC",
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when required fields are missing")
	}
}

func TestValidate_Invalid(t *testing.T) {
	cases := map[string]func(c *Config){
		"discord token without channel": func(c *Config) { c.DiscordToken = "t" },
		"handoff without worker url":    func(c *Config) { c.DispatchMode = DispatchModeHandoff },
		"unknown dispatch mode":         func(c *Config) { c.DispatchMode = "sync" },
		"zero attempts":                 func(c *Config) { c.TranscriptMaxAttempts = 0 },
		"cap below base":                func(c *Config) { c.TranscriptRetryMaxDelay = time.Second },
		"zero poll interval":            func(c *Config) { c.PollInterval = 0 },
		"bad timezone":                  func(c *Config) { c.DraftTimezone = "Mars/Olympus" },
		"bad cutover":                   func(c *Config) { c.PollCutoverDate = "01/01/2026" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_PollIntervalIgnoredWhenDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.PollEnabled = false
	cfg.PollInterval = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Fatal("expected non-development mode")
	}
}

func TestPollCutover(t *testing.T) {
	cfg := validConfig()
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := cfg.PollCutover(); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSignatureLines(t *testing.T) {
	cfg := &Config{DraftSignature: `Thanks\nStella` + "\n\nAccount Manager "}
	got := cfg.SignatureLines()
	if len(got) != 3 || got[0] != "Thanks" || got[1] != "Stella" || got[2] != "Account Manager" {
		t.Fatalf("unexpected lines: %q", got)
	}
}
