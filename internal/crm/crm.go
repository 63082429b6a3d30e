package crm

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("resource not found")

type RecordingStatus string

const (
	RecordingStatusProcessing RecordingStatus = "processing"
	RecordingStatusCompleted  RecordingStatus = "completed"
	RecordingStatusFailed     RecordingStatus = "failed"
	RecordingStatusCancelled  RecordingStatus = "cancelled"
)

// IsTerminalFailure reports whether a recording in this status will never produce a transcript.
func (s RecordingStatus) IsTerminalFailure() bool {
	return s == RecordingStatusFailed || s == RecordingStatusCancelled
}

type Participant struct {
	EmailAddress string
	IsOrganizer  bool
}

type Meeting struct {
	ID            string
	Title         string
	StartDatetime time.Time
	Participants  []Participant
}

type Recording struct {
	ID        string
	MeetingID string
	Status    RecordingStatus
	WebURL    string
	CreatedAt time.Time
}

type TranscriptSegment struct {
	SpeakerName      string
	StartTimeSeconds float64
	EndTimeSeconds   float64
	Text             string
}

type TranscriptPage struct {
	Segments   []TranscriptSegment
	WebURL     string
	NextCursor string
}

type MeetingsPage struct {
	Meetings   []Meeting
	NextCursor string
}

type ListMeetingsInput struct {
	Cursor     string
	Limit      int
	StartsFrom *time.Time
}

type MeetingReader interface {
	GetMeeting(ctx context.Context, meetingID string) (*Meeting, error)
	ListMeetings(ctx context.Context, input ListMeetingsInput) (*MeetingsPage, error)
}

type RecordingReader interface {
	GetRecording(ctx context.Context, meetingID, recordingID string) (*Recording, error)
	ListRecordings(ctx context.Context, meetingID string) ([]Recording, error)
	GetTranscriptPage(ctx context.Context, meetingID, recordingID, cursor string) (*TranscriptPage, error)
}

// Client returns ErrNotFound (possibly wrapped) for any 404 answer.
type Client interface {
	MeetingReader
	RecordingReader
}
