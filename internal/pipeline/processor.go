package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/foxseedlab/meetnotes/internal/draft"
	"github.com/foxseedlab/meetnotes/internal/failure"
	"github.com/foxseedlab/meetnotes/internal/meeting"
	"github.com/foxseedlab/meetnotes/internal/notifier"
)

const (
	stageFetch   = "fetch"
	stageFormat  = "format"
	stagePublish = "publish"

	notifyTimeout = 10 * time.Second
)

type MeetingFetcher interface {
	Fetch(ctx context.Context, event meeting.RecordingEvent) (*meeting.Data, error)
}

type NoteFormatter interface {
	Format(ctx context.Context, data *meeting.Data) (string, error)
}

type DraftPublisher interface {
	Publish(ctx context.Context, in draft.Input) (*draft.Result, error)
}

type Result struct {
	Event    meeting.RecordingEvent
	Title    string
	DraftID  string
	Subject  string
	Duration time.Duration
}

// Processor runs fetch, format and publish for one recording. Errors are
// never retried across stages.
type Processor struct {
	fetcher   MeetingFetcher
	formatter NoteFormatter
	publisher DraftPublisher
	notifier  notifier.Notifier
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Processor)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

func WithNotifier(n notifier.Notifier) Option {
	return func(p *Processor) { p.notifier = n }
}

func NewProcessor(fetcher MeetingFetcher, formatter NoteFormatter, publisher DraftPublisher, opts ...Option) *Processor {
	p := &Processor{
		fetcher:   fetcher,
		formatter: formatter,
		publisher: publisher,
		notifier:  notifier.Nop{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) Process(ctx context.Context, event meeting.RecordingEvent) (*Result, error) {
	started := p.now()
	log := p.logger.With("meeting_id", event.MeetingID, "call_recording_id", event.RecordingID)
	log.Info("processing started")

	data, err := p.fetcher.Fetch(ctx, event)
	if err != nil {
		return nil, p.fail(ctx, log, event, stageFetch, err)
	}
	log.Info("stage completed", "stage", stageFetch, "title", data.Title, "segments", len(data.Transcript.Segments))

	formatted, err := p.formatter.Format(ctx, data)
	if err != nil {
		return nil, p.fail(ctx, log, event, stageFormat, err)
	}
	log.Info("stage completed", "stage", stageFormat, "characters", len(formatted))

	published, err := p.publisher.Publish(ctx, draft.Input{
		Notes:        formatted,
		MeetingTitle: data.Title,
		MeetingDate:  data.StartDatetime,
		RecordingURL: data.Transcript.WebURL,
		RecordingID:  event.RecordingID,
	})
	if err != nil {
		return nil, p.fail(ctx, log, event, stagePublish, err)
	}

	res := &Result{
		Event:    event,
		Title:    data.Title,
		DraftID:  published.DraftID,
		Subject:  published.Subject,
		Duration: p.now().Sub(started),
	}
	log.Info("processing completed",
		"draft_id", res.DraftID,
		"subject", res.Subject,
		"duration_seconds", res.Duration.Seconds())
	return res, nil
}

func (p *Processor) fail(ctx context.Context, log *slog.Logger, event meeting.RecordingEvent, stage string, err error) error {
	log.Error("processing failed", "stage", stage, "kind", string(failure.KindOf(err)), "error", err)

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if nerr := p.notifier.Notify(nctx, notifier.ProcessingFailed(event.MeetingID, event.RecordingID, err.Error())); nerr != nil {
		log.Warn("failure notification not sent", "error", nerr)
	}
	return err
}
