package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/foxseedlab/meetnotes/internal/crm"
	"github.com/foxseedlab/meetnotes/internal/failure"
	"github.com/foxseedlab/meetnotes/internal/transcript"
)

// RecordingEvent identifies one unit of work, either pushed by the CRM webhook
// or discovered by the poller.
type RecordingEvent struct {
	MeetingID   string `json:"meeting_id"`
	RecordingID string `json:"call_recording_id"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	ActorID     string `json:"actor_id,omitempty"`
}

type Data struct {
	Title            string
	StartDatetime    time.Time
	ParticipantNames []string
	Transcript       *transcript.Transcript
}

type TranscriptFetcher interface {
	Fetch(ctx context.Context, meetingID, recordingID string) (*transcript.Transcript, error)
}

type Fetcher struct {
	meetings      crm.MeetingReader
	transcripts   TranscriptFetcher
	initialBuffer time.Duration
	sleep         transcript.SleepFunc
	logger        *slog.Logger
}

type Option func(*Fetcher)

func WithSleep(sleep transcript.SleepFunc) Option {
	return func(f *Fetcher) { f.sleep = sleep }
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

func NewFetcher(meetings crm.MeetingReader, transcripts TranscriptFetcher, initialBuffer time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		meetings:      meetings,
		transcripts:   transcripts,
		initialBuffer: initialBuffer,
		sleep:         transcript.Sleep,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch loads meeting metadata, waits the initial buffer, then assembles the
// transcript. Transcript failures are returned unchanged.
func (f *Fetcher) Fetch(ctx context.Context, event RecordingEvent) (*Data, error) {
	m, err := f.meetings.GetMeeting(ctx, event.MeetingID)
	if errors.Is(err, crm.ErrNotFound) {
		return nil, failure.Reasonf(failure.MeetingNotFound, "meeting %s not found", event.MeetingID)
	}
	if err != nil {
		return nil, fmt.Errorf("meeting %s lookup failed: %w", event.MeetingID, err)
	}
	f.logger.Info("meeting metadata fetched",
		"meeting_id", event.MeetingID,
		"title", m.Title,
		"participants", len(m.Participants))

	if f.initialBuffer > 0 {
		f.logger.Debug("waiting before first transcript request", "delay", f.initialBuffer.String())
		if err := f.sleep(ctx, f.initialBuffer); err != nil {
			return nil, &failure.Error{Kind: failure.TranscriptUnavailable, Reason: "interrupted before first transcript request", Err: err}
		}
	}

	t, err := f.transcripts.Fetch(ctx, event.MeetingID, event.RecordingID)
	if err != nil {
		return nil, err
	}

	return &Data{
		Title:            m.Title,
		StartDatetime:    m.StartDatetime,
		ParticipantNames: ParticipantNames(m.Participants),
		Transcript:       t,
	}, nil
}

func ParticipantNames(participants []crm.Participant) []string {
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		if name := ParticipantName(p.EmailAddress); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParticipantName turns "jane.doe@x.com" into "Jane Doe".
func ParticipantName(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	local, _, _ := strings.Cut(email, "@")
	tokens := strings.Split(local, ".")
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		words = append(words, titleCase(tok))
	}
	return strings.Join(words, " ")
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
