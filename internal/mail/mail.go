package mail

import "context"

// Custom headers written on every draft so later runs can tell which meeting
// and recording a draft came from.
const (
	HeaderMeetingTitle = "X-Meeting-Title"
	HeaderRecordingID  = "X-Recording-Id"
)

type Draft struct {
	ID      string
	Subject string
	// Headers holds the raw values of the headers the mailbox was asked for.
	Headers map[string]string
}

type Mailbox interface {
	// CreateDraft stores a raw RFC 5322 message as a draft and returns its id.
	CreateDraft(ctx context.Context, raw []byte) (string, error)
	// ListDrafts returns drafts matching a provider search query, newest first.
	ListDrafts(ctx context.Context, query string, maxResults int) ([]Draft, error)
}
