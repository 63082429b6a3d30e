package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/meetnotes/internal/crm"
	"github.com/foxseedlab/meetnotes/internal/mail"
	"github.com/foxseedlab/meetnotes/internal/meeting"
	"github.com/foxseedlab/meetnotes/internal/pipeline"
	"github.com/foxseedlab/meetnotes/internal/transcript"
)

const untitledMeeting = "Untitled Meeting"

type Processor interface {
	Process(ctx context.Context, event meeting.RecordingEvent) (*pipeline.Result, error)
}

type Options struct {
	Interval        time.Duration
	ItemDelay       time.Duration
	Cutover         time.Time
	MaxPages        int
	PageSize        int
	DraftMaxResults int
}

// Handled is the set of recording ids processed successfully during the life
// of one Run. It is owned by the caller and passed to every Poll.
type Handled map[string]struct{}

type Summary struct {
	Candidates  int
	Unprocessed int
	Succeeded   int
	Failed      int
	Duration    time.Duration
}

type candidate struct {
	MeetingID   string
	RecordingID string
	Title       string
	CreatedAt   time.Time
}

// Poller finds recordings whose webhook never produced a draft and runs the
// processing chain for them, one at a time.
type Poller struct {
	crm       crm.Client
	mailbox   mail.Mailbox
	processor Processor
	opts      Options
	now       func() time.Time
	sleep     transcript.SleepFunc
	logger    *slog.Logger
}

type Option func(*Poller)

func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

func WithSleep(sleep transcript.SleepFunc) Option {
	return func(p *Poller) { p.sleep = sleep }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) { p.logger = logger }
}

func New(client crm.Client, mailbox mail.Mailbox, processor Processor, opts Options, options ...Option) *Poller {
	p := &Poller{
		crm:       client,
		mailbox:   mailbox,
		processor: processor,
		opts:      opts,
		now:       time.Now,
		sleep:     transcript.Sleep,
		logger:    slog.Default(),
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Run polls immediately, then every Interval until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	if p.opts.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", p.opts.Interval)
	}
	handled := make(Handled)
	p.logger.Info("poller started", "interval", p.opts.Interval.String(), "cutover", p.opts.Cutover.Format(time.RFC3339))

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()
	for {
		if _, err := p.Poll(ctx, handled); err != nil {
			p.logger.Error("poll cycle failed", "error", err)
		}
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Poll runs one cycle. Recordings that complete successfully are added to handled.
func (p *Poller) Poll(ctx context.Context, handled Handled) (Summary, error) {
	started := p.now()
	var summary Summary

	ev, err := p.processedEvidence(ctx)
	if err != nil {
		return summary, err
	}

	candidates, err := p.candidates(ctx, started)
	if err != nil {
		return summary, err
	}
	summary.Candidates = len(candidates)

	var pending []candidate
	for _, c := range candidates {
		if _, ok := handled[c.RecordingID]; ok || ev.processed(c) {
			continue
		}
		pending = append(pending, c)
	}
	summary.Unprocessed = len(pending)
	p.logger.Info("unprocessed recordings found",
		"candidates", summary.Candidates,
		"unprocessed", summary.Unprocessed,
		"known_titles", len(ev.titles))

	for i, c := range pending {
		if i > 0 {
			if err := p.sleep(ctx, p.opts.ItemDelay); err != nil {
				break
			}
		}
		_, err := p.processor.Process(ctx, meeting.RecordingEvent{MeetingID: c.MeetingID, RecordingID: c.RecordingID})
		if err != nil {
			summary.Failed++
			p.logger.Warn("recovery failed", "meeting_id", c.MeetingID, "call_recording_id", c.RecordingID, "title", c.Title, "error", err)
			continue
		}
		summary.Succeeded++
		handled[c.RecordingID] = struct{}{}
	}

	summary.Duration = p.now().Sub(started)
	p.logger.Info("poll cycle completed",
		"candidates", summary.Candidates,
		"unprocessed", summary.Unprocessed,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"duration_seconds", summary.Duration.Seconds())
	return summary, nil
}

func (p *Poller) processedEvidence(ctx context.Context) (evidence, error) {
	drafts, err := p.mailbox.ListDrafts(ctx, draftQuery(p.opts.Cutover), p.opts.DraftMaxResults)
	if err != nil {
		return evidence{}, fmt.Errorf("list drafts: %w", err)
	}
	ev := newEvidence()
	for _, d := range drafts {
		ev.add(d)
	}
	p.logger.Debug("draft evidence collected", "drafts", len(drafts), "titles", len(ev.titles), "recording_ids", len(ev.recordingIDs))
	return ev, nil
}

// candidates walks at most MaxPages meeting pages and keeps recordings created
// between cutover and now. A listing failure ends the walk with what was found;
// a recordings failure only skips that meeting.
func (p *Poller) candidates(ctx context.Context, now time.Time) ([]candidate, error) {
	var (
		out    []candidate
		cursor string
	)
	for page := 0; page < p.opts.MaxPages; page++ {
		res, err := p.crm.ListMeetings(ctx, crm.ListMeetingsInput{Cursor: cursor, Limit: p.opts.PageSize})
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf("list meetings: %w", err)
			}
			p.logger.Warn("meeting listing stopped early", "page", page+1, "error", err)
			break
		}
		for _, m := range res.Meetings {
			recs, err := p.crm.ListRecordings(ctx, m.ID)
			if err != nil {
				p.logger.Warn("skipping meeting, recordings unavailable", "meeting_id", m.ID, "error", err)
				continue
			}
			title := m.Title
			if title == "" {
				title = untitledMeeting
			}
			for _, r := range recs {
				if r.CreatedAt.IsZero() || r.CreatedAt.Before(p.opts.Cutover) || r.CreatedAt.After(now) {
					continue
				}
				out = append(out, candidate{MeetingID: m.ID, RecordingID: r.ID, Title: title, CreatedAt: r.CreatedAt})
			}
		}
		if res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}
	return out, nil
}
