package worker

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/foxseedlab/meetnotes/internal/dispatch"
	"github.com/foxseedlab/meetnotes/internal/meeting"
)

// TokenHeader carries the shared secret between the receiver and the worker.
const TokenHeader = "X-Worker-Token"

// JobRequest is the wire form of a job handed from the receiver to the worker.
type JobRequest struct {
	JobID       string `json:"job_id"`
	MeetingID   string `json:"meeting_id"`
	RecordingID string `json:"call_recording_id"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	ActorID     string `json:"actor_id,omitempty"`
}

func newJobRequest(job dispatch.Job) JobRequest {
	return JobRequest{
		JobID:       job.ID,
		MeetingID:   job.Event.MeetingID,
		RecordingID: job.Event.RecordingID,
		WorkspaceID: job.Event.WorkspaceID,
		ActorID:     job.Event.ActorID,
	}
}

// DecodeJob parses a hand-off body. Every identifier is required.
func DecodeJob(body []byte, receivedAt time.Time) (dispatch.Job, error) {
	var req JobRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return dispatch.Job{}, fmt.Errorf("decode job: %w", err)
	}
	var missing []string
	if strings.TrimSpace(req.JobID) == "" {
		missing = append(missing, "job_id")
	}
	if strings.TrimSpace(req.MeetingID) == "" {
		missing = append(missing, "meeting_id")
	}
	if strings.TrimSpace(req.RecordingID) == "" {
		missing = append(missing, "call_recording_id")
	}
	if len(missing) > 0 {
		return dispatch.Job{}, fmt.Errorf("job is missing %s", strings.Join(missing, ", "))
	}
	return dispatch.Job{
		ID: req.JobID,
		Event: meeting.RecordingEvent{
			MeetingID:   req.MeetingID,
			RecordingID: req.RecordingID,
			WorkspaceID: req.WorkspaceID,
			ActorID:     req.ActorID,
		},
		ReceivedAt: receivedAt,
	}, nil
}

// Authorized reports whether token matches secret. An empty secret disables the check.
func Authorized(secret, token string) bool {
	if secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(token)) == 1
}
