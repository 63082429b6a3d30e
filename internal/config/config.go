package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DispatchModeBackground = "background"
	DispatchModeHandoff    = "handoff"

	cutoverDateLayout = "2006-01-02"
)

type Config struct {
	Env                string
	HTTPAddr           string
	HTTPRequestTimeout time.Duration

	AttioAPIKey  string
	AttioBaseURL string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	GmailCredentialsJSON string
	GmailTokenJSON       string

	DiscordToken     string
	DiscordChannelID string

	DispatchMode       string
	WorkerURL          string
	WorkerSharedSecret string
	WorkerAddr         string

	TranscriptInitialBuffer  time.Duration
	TranscriptRetryBaseDelay time.Duration
	TranscriptRetryMaxDelay  time.Duration
	TranscriptMaxAttempts    int

	PollEnabled         bool
	PollInterval        time.Duration
	PollCutoverDate     string
	PollMaxPages        int
	PollPageSize        int
	PollItemDelay       time.Duration
	PollDraftMaxResults int

	DraftTimezone  string
	DraftSignature string
	PromptsFile    string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return fmt.Errorf("DISCORD_TOKEN and DISCORD_CHANNEL_ID must be set together")
	}
	switch c.DispatchMode {
	case DispatchModeBackground:
	case DispatchModeHandoff:
		if c.WorkerURL == "" {
			return fmt.Errorf("WORKER_URL is required when DISPATCH_MODE=%s", DispatchModeHandoff)
		}
	default:
		return fmt.Errorf("DISPATCH_MODE must be %q or %q, got %q", DispatchModeBackground, DispatchModeHandoff, c.DispatchMode)
	}
	if c.TranscriptMaxAttempts <= 0 {
		return fmt.Errorf("TRANSCRIPT_MAX_ATTEMPTS must be positive, got %d", c.TranscriptMaxAttempts)
	}
	if c.TranscriptRetryBaseDelay <= 0 || c.TranscriptRetryMaxDelay < c.TranscriptRetryBaseDelay {
		return fmt.Errorf("TRANSCRIPT_RETRY_BASE_DELAY must be positive and not above TRANSCRIPT_RETRY_MAX_DELAY")
	}
	if c.PollEnabled && c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.PollMaxPages <= 0 || c.PollPageSize <= 0 || c.PollDraftMaxResults <= 0 {
		return fmt.Errorf("POLL_MAX_PAGES, POLL_PAGE_SIZE and POLL_DRAFT_MAX_RESULTS must be positive")
	}
	if _, err := time.LoadLocation(c.DraftTimezone); err != nil {
		return fmt.Errorf("DRAFT_TIMEZONE is invalid: %w", err)
	}
	if _, err := time.Parse(cutoverDateLayout, c.PollCutoverDate); err != nil {
		return fmt.Errorf("POLL_CUTOVER_DATE must look like 2026-01-01: %w", err)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "ATTIO_API_KEY", value: c.AttioAPIKey},
		{name: "ATTIO_BASE_URL", value: c.AttioBaseURL},
		{name: "OPENAI_API_KEY", value: c.OpenAIAPIKey},
		{name: "OPENAI_MODEL", value: c.OpenAIModel},
		{name: "GMAIL_CREDENTIALS_JSON", value: c.GmailCredentialsJSON},
		{name: "GMAIL_TOKEN_JSON", value: c.GmailTokenJSON},
		{name: "DRAFT_TIMEZONE", value: c.DraftTimezone},
		{name: "POLL_CUTOVER_DATE", value: c.PollCutoverDate},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) NotificationsEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// Location returns the draft timezone, falling back to UTC when invalid.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DraftTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PollCutover is midnight of POLL_CUTOVER_DATE in the draft timezone.
func (c *Config) PollCutover() time.Time {
	t, err := time.ParseInLocation(cutoverDateLayout, c.PollCutoverDate, c.Location())
	if err != nil {
		return time.Time{}
	}
	return t
}

// SignatureLines splits DRAFT_SIGNATURE on newlines, accepting a literal "\n" too.
func (c *Config) SignatureLines() []string {
	raw := strings.ReplaceAll(c.DraftSignature, `\n`, "\n")
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
