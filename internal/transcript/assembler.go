package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/meetnotes/internal/crm"
	"github.com/foxseedlab/meetnotes/internal/failure"
)

// Assembler fetches every page of a recording's transcript, retrying with
// exponential backoff while the CRM has not produced it yet.
type Assembler struct {
	source crm.RecordingReader
	policy RetryPolicy
	sleep  SleepFunc
	logger *slog.Logger
}

type Option func(*Assembler)

func WithSleep(sleep SleepFunc) Option {
	return func(a *Assembler) { a.sleep = sleep }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) { a.logger = logger }
}

func NewAssembler(source crm.RecordingReader, policy RetryPolicy, opts ...Option) *Assembler {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	a := &Assembler{
		source: source,
		policy: policy,
		sleep:  Sleep,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// processingAttempt is the retry state of one Fetch call. It is never shared.
type processingAttempt struct {
	number          int
	consecutive404s int
	nextDelay       time.Duration
}

func (a *Assembler) Fetch(ctx context.Context, meetingID, recordingID string) (*Transcript, error) {
	log := a.logger.With("meeting_id", meetingID, "call_recording_id", recordingID)
	state := processingAttempt{}

	for state.number = 1; ; state.number++ {
		segments, webURL, pages, err := a.fetchAllPages(ctx, meetingID, recordingID)

		var waitReason string
		switch {
		case errors.Is(err, crm.ErrNotFound):
			state.consecutive404s++
			if state.number == 1 {
				status, err := a.verifyRecording(ctx, meetingID, recordingID)
				if err != nil {
					log.Warn("transcript will not become available", "error", err)
					return nil, err
				}
				log.Info("recording exists, waiting for transcript", "recording_status", status)
			}
			if state.number >= a.policy.MaxAttempts {
				return nil, a.giveUpNotFound(ctx, meetingID, recordingID, state.number)
			}
			waitReason = "transcript not ready"
		case err != nil:
			return nil, &failure.Error{
				Kind:     failure.TranscriptUnavailable,
				Reason:   "transcript request failed",
				Attempts: state.number,
				Err:      err,
			}
		case len(segments) == 0:
			state.consecutive404s = 0
			if state.number >= a.policy.MaxAttempts {
				return nil, &failure.Error{
					Kind:     failure.TranscriptUnavailable,
					Reason:   fmt.Sprintf("transcript exists but is still empty after %d attempts", state.number),
					Attempts: state.number,
				}
			}
			waitReason = "transcript empty, still processing"
		default:
			t := newTranscript(segments, webURL, pages)
			log.Info("transcript assembled",
				"attempt", state.number,
				"pages", t.PageCount,
				"segments", len(t.Segments),
				"characters", t.TotalCharacters,
				"duration_seconds", t.DurationSeconds)
			return t, nil
		}

		delay := a.policy.Delay(state.number)
		state.nextDelay = delay
		log.Info("transcript retry scheduled",
			"reason", waitReason,
			"attempt", state.number,
			"max_attempts", a.policy.MaxAttempts,
			"consecutive_404s", state.consecutive404s,
			"delay", state.nextDelay.String())
		if err := a.sleep(ctx, delay); err != nil {
			return nil, &failure.Error{
				Kind:     failure.TranscriptUnavailable,
				Reason:   "interrupted while waiting for transcript",
				Attempts: state.number,
				Err:      err,
			}
		}
	}
}

// fetchAllPages follows next cursors until none is returned, keeping page order.
// A cursor that comes back a second time is an error.
func (a *Assembler) fetchAllPages(ctx context.Context, meetingID, recordingID string) ([]crm.TranscriptSegment, string, int, error) {
	var (
		segments []crm.TranscriptSegment
		webURL   string
		cursor   string
		pages    int
	)
	seen := make(map[string]struct{})
	for {
		page, err := a.source.GetTranscriptPage(ctx, meetingID, recordingID, cursor)
		if err != nil {
			return nil, "", pages, err
		}
		pages++
		segments = append(segments, page.Segments...)
		if webURL == "" {
			webURL = page.WebURL
		}
		if page.NextCursor == "" {
			return segments, webURL, pages, nil
		}
		if _, ok := seen[page.NextCursor]; ok {
			return nil, "", pages, fmt.Errorf("transcript cursor %q repeated after %d pages", page.NextCursor, pages)
		}
		seen[page.NextCursor] = struct{}{}
		cursor = page.NextCursor
	}
}

// verifyRecording is the single side lookup made after the first 404.
func (a *Assembler) verifyRecording(ctx context.Context, meetingID, recordingID string) (crm.RecordingStatus, error) {
	rec, err := a.source.GetRecording(ctx, meetingID, recordingID)
	if errors.Is(err, crm.ErrNotFound) {
		return "", &failure.Error{
			Kind:     failure.TranscriptUnavailable,
			Reason:   "cannot verify recording",
			Attempts: 1,
			Err:      failure.Reasonf(failure.RecordingNotFound, "recording %s not found", recordingID),
		}
	}
	if err != nil {
		return "", &failure.Error{Kind: failure.TranscriptUnavailable, Reason: "cannot verify recording", Attempts: 1, Err: err}
	}
	if rec.Status.IsTerminalFailure() {
		return rec.Status, &failure.Error{
			Kind:     failure.TranscriptUnavailable,
			Reason:   fmt.Sprintf("recording status is %q, transcript will not be generated", rec.Status),
			Attempts: 1,
		}
	}
	return rec.Status, nil
}

func (a *Assembler) giveUpNotFound(ctx context.Context, meetingID, recordingID string, attempts int) error {
	rec, err := a.source.GetRecording(ctx, meetingID, recordingID)
	if err != nil {
		cause := err
		if errors.Is(err, crm.ErrNotFound) {
			cause = failure.Reasonf(failure.RecordingNotFound, "recording %s no longer exists", recordingID)
		}
		return &failure.Error{
			Kind:     failure.TranscriptUnavailable,
			Reason:   fmt.Sprintf("transcript not available after %d attempts, recording may no longer exist", attempts),
			Attempts: attempts,
			Err:      cause,
		}
	}
	status := rec.Status
	if status == "" {
		status = "unknown"
	}
	return &failure.Error{
		Kind:     failure.TranscriptUnavailable,
		Reason:   fmt.Sprintf("transcript not available after %d attempts, recording exists (status: %s) but transcript was never generated", attempts, status),
		Attempts: attempts,
	}
}
