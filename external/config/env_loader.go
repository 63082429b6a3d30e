package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/meetnotes/internal/config"
)

type envConfig struct {
	Env                string        `env:"ENV" envDefault:"production"`
	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":3000"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`

	AttioAPIKey  string `env:"ATTIO_API_KEY,required"`
	AttioBaseURL string `env:"ATTIO_BASE_URL" envDefault:"https://api.attio.com/v2"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY,required"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4.1"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	GmailCredentialsJSON string `env:"GMAIL_CREDENTIALS_JSON,required"`
	GmailTokenJSON       string `env:"GMAIL_TOKEN_JSON,required"`

	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`

	DispatchMode       string `env:"DISPATCH_MODE" envDefault:"background"`
	WorkerURL          string `env:"WORKER_URL"`
	WorkerSharedSecret string `env:"WORKER_SHARED_SECRET"`
	WorkerAddr         string `env:"WORKER_ADDR" envDefault:":3001"`

	TranscriptInitialBuffer  time.Duration `env:"TRANSCRIPT_INITIAL_BUFFER" envDefault:"5s"`
	TranscriptRetryBaseDelay time.Duration `env:"TRANSCRIPT_RETRY_BASE_DELAY" envDefault:"10s"`
	TranscriptRetryMaxDelay  time.Duration `env:"TRANSCRIPT_RETRY_MAX_DELAY" envDefault:"60s"`
	TranscriptMaxAttempts    int           `env:"TRANSCRIPT_MAX_ATTEMPTS" envDefault:"10"`

	PollEnabled         bool          `env:"POLL_ENABLED" envDefault:"true"`
	PollInterval        time.Duration `env:"POLL_INTERVAL" envDefault:"1h"`
	PollCutoverDate     string        `env:"POLL_CUTOVER_DATE" envDefault:"2026-01-01"`
	PollMaxPages        int           `env:"POLL_MAX_PAGES" envDefault:"30"`
	PollPageSize        int           `env:"POLL_PAGE_SIZE" envDefault:"50"`
	PollItemDelay       time.Duration `env:"POLL_ITEM_DELAY" envDefault:"2s"`
	PollDraftMaxResults int           `env:"POLL_DRAFT_MAX_RESULTS" envDefault:"500"`

	DraftTimezone  string `env:"DRAFT_TIMEZONE" envDefault:"Australia/Sydney"`
	DraftSignature string `env:"DRAFT_SIGNATURE"`
	PromptsFile    string `env:"PROMPTS_FILE"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                      raw.Env,
		HTTPAddr:                 raw.HTTPAddr,
		HTTPRequestTimeout:       raw.HTTPRequestTimeout,
		AttioAPIKey:              raw.AttioAPIKey,
		AttioBaseURL:             raw.AttioBaseURL,
		OpenAIAPIKey:             raw.OpenAIAPIKey,
		OpenAIModel:              raw.OpenAIModel,
		OpenAIBaseURL:            raw.OpenAIBaseURL,
		GmailCredentialsJSON:     raw.GmailCredentialsJSON,
		GmailTokenJSON:           raw.GmailTokenJSON,
		DiscordToken:             raw.DiscordToken,
		DiscordChannelID:         raw.DiscordChannelID,
		DispatchMode:             raw.DispatchMode,
		WorkerURL:                raw.WorkerURL,
		WorkerSharedSecret:       raw.WorkerSharedSecret,
		WorkerAddr:               raw.WorkerAddr,
		TranscriptInitialBuffer:  raw.TranscriptInitialBuffer,
		TranscriptRetryBaseDelay: raw.TranscriptRetryBaseDelay,
		TranscriptRetryMaxDelay:  raw.TranscriptRetryMaxDelay,
		TranscriptMaxAttempts:    raw.TranscriptMaxAttempts,
		PollEnabled:              raw.PollEnabled,
		PollInterval:             raw.PollInterval,
		PollCutoverDate:          raw.PollCutoverDate,
		PollMaxPages:             raw.PollMaxPages,
		PollPageSize:             raw.PollPageSize,
		PollItemDelay:            raw.PollItemDelay,
		PollDraftMaxResults:      raw.PollDraftMaxResults,
		DraftTimezone:            raw.DraftTimezone,
		DraftSignature:           raw.DraftSignature,
		PromptsFile:              raw.PromptsFile,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
