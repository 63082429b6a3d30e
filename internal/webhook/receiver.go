package webhook

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/foxseedlab/meetnotes/internal/dispatch"
	"github.com/foxseedlab/meetnotes/internal/failure"
	"github.com/google/uuid"
)

type Response struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message,omitempty"`
	Error               string   `json:"error,omitempty"`
	Kind                string   `json:"kind,omitempty"`
	JobID               string   `json:"job_id,omitempty"`
	MeetingID           string   `json:"meeting_id,omitempty"`
	RecordingID         string   `json:"call_recording_id,omitempty"`
	ResponseTimeSeconds float64  `json:"response_time_seconds,omitempty"`
	Expected            string   `json:"expected,omitempty"`
	Received            string   `json:"received,omitempty"`
	Required            []string `json:"required,omitempty"`
	ReceivedType        string   `json:"received_type,omitempty"`
}

// Receiver validates webhook bodies and submits accepted events. After
// validation the answer is always 2xx, whatever happens downstream.
type Receiver struct {
	dispatcher dispatch.Dispatcher
	newID      func() string
	now        func() time.Time
	logger     *slog.Logger
}

type Option func(*Receiver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Receiver) { r.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(r *Receiver) { r.now = now }
}

func NewReceiver(dispatcher dispatch.Dispatcher, opts ...Option) *Receiver {
	r := &Receiver{
		dispatcher: dispatcher,
		newID:      uuid.NewString,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Receiver) Handle(ctx context.Context, body []byte) (int, Response) {
	started := r.now()
	event, err := ParseRecordingEvent(body)
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			verr = &ValidationError{Kind: failure.InvalidPayload, Message: err.Error()}
		}
		r.logger.Warn("webhook rejected", "kind", string(verr.Kind), "reason", verr.Message, "received", verr.Received)
		return http.StatusBadRequest, Response{
			Success:      false,
			Error:        verr.Message,
			Kind:         string(verr.Kind),
			Expected:     verr.Expected,
			Received:     verr.Received,
			Required:     verr.Required,
			ReceivedType: verr.ReceivedType,
		}
	}

	job := dispatch.Job{ID: r.newID(), Event: event, ReceivedAt: started}
	log := r.logger.With("job_id", job.ID, "meeting_id", event.MeetingID, "call_recording_id", event.RecordingID)
	if err := r.dispatcher.Submit(ctx, job); err != nil {
		log.Error("background processing could not be started", "error", err)
		return http.StatusOK, Response{
			Success:     false,
			Error:       "failed to start background processing: " + err.Error(),
			MeetingID:   event.MeetingID,
			RecordingID: event.RecordingID,
		}
	}

	elapsed := r.now().Sub(started).Seconds()
	log.Info("webhook accepted", "response_time_seconds", elapsed)
	return http.StatusAccepted, Response{
		Success:             true,
		Message:             "Webhook received, processing in background",
		JobID:               job.ID,
		MeetingID:           event.MeetingID,
		RecordingID:         event.RecordingID,
		ResponseTimeSeconds: elapsed,
	}
}
