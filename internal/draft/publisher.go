package draft

import (
	"context"
	"log/slog"
	"time"

	"github.com/foxseedlab/meetnotes/internal/failure"
	"github.com/foxseedlab/meetnotes/internal/mail"
)

type Input struct {
	Notes        string
	MeetingTitle string
	MeetingDate  time.Time
	RecordingURL string
	RecordingID  string
}

type Result struct {
	DraftID string
	Subject string
}

// Publisher creates exactly one mail draft per call. It does not check for
// earlier drafts of the same meeting.
type Publisher struct {
	mailbox   mail.Mailbox
	location  *time.Location
	signature []string
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Publisher)

func WithSignature(lines []string) Option {
	return func(p *Publisher) { p.signature = lines }
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func NewPublisher(mailbox mail.Mailbox, location *time.Location, opts ...Option) *Publisher {
	if location == nil {
		location = time.UTC
	}
	p := &Publisher{
		mailbox:  mailbox,
		location: location,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) Publish(ctx context.Context, in Input) (*Result, error) {
	date := in.MeetingDate
	if date.IsZero() {
		date = p.now()
	}
	subject := Subject(in.MeetingTitle, date, p.location)
	html, err := Body(in.Notes, in.RecordingURL, p.signature)
	if err != nil {
		return nil, failure.New(failure.PublishFailed, "render email body", err)
	}
	raw := message{
		Subject:      subject,
		MeetingTitle: in.MeetingTitle,
		RecordingID:  in.RecordingID,
		HTML:         html,
	}.bytes()

	id, err := p.mailbox.CreateDraft(ctx, raw)
	if err != nil {
		return nil, failure.New(failure.PublishFailed, "create draft", err)
	}
	p.logger.Info("draft created", "draft_id", id, "subject", subject, "call_recording_id", in.RecordingID)
	return &Result{DraftID: id, Subject: subject}, nil
}
