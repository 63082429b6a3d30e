package failure

import (
	"errors"
	"fmt"
)

type Kind string

const (
	InvalidPayload        Kind = "InvalidPayload"
	UnexpectedEventType   Kind = "UnexpectedEventType"
	MissingIdentifiers    Kind = "MissingIdentifiers"
	MeetingNotFound       Kind = "MeetingNotFound"
	RecordingNotFound     Kind = "RecordingNotFound"
	TranscriptUnavailable Kind = "TranscriptUnavailable"
	FormattingFailed      Kind = "FormattingFailed"
	PublishFailed         Kind = "PublishFailed"
)

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrInvalidPayload        = &Error{Kind: InvalidPayload}
	ErrUnexpectedEventType   = &Error{Kind: UnexpectedEventType}
	ErrMissingIdentifiers    = &Error{Kind: MissingIdentifiers}
	ErrMeetingNotFound       = &Error{Kind: MeetingNotFound}
	ErrRecordingNotFound     = &Error{Kind: RecordingNotFound}
	ErrTranscriptUnavailable = &Error{Kind: TranscriptUnavailable}
	ErrFormattingFailed      = &Error{Kind: FormattingFailed}
	ErrPublishFailed         = &Error{Kind: PublishFailed}
)

type Error struct {
	Kind     Kind
	Reason   string
	Attempts int
	Err      error
}

func New(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the outermost failure kind in err's chain, or "" if none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Reasonf is a shorthand for New with a formatted reason and no cause.
func Reasonf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
