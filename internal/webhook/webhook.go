package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/foxseedlab/meetnotes/internal/failure"
	"github.com/foxseedlab/meetnotes/internal/meeting"
)

const EventTypeRecordingCreated = "call-recording.created"

var requiredIdentifiers = []string{"id.meeting_id", "id.call_recording_id"}

// ValidationError is a payload rejected before dispatch. errors.Is matches
// the failure sentinel of its Kind.
type ValidationError struct {
	Kind         failure.Kind
	Message      string
	Expected     string
	Received     string
	Required     []string
	ReceivedType string
}

func (e *ValidationError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*failure.Error)
	return ok && t.Kind == e.Kind
}

// ParseRecordingEvent validates a webhook body. Both a bare event object and
// an {"events": [...]} envelope are accepted; only the first event of an
// envelope is used.
func ParseRecordingEvent(body []byte) (meeting.RecordingEvent, error) {
	var payload any
	if err := json.Unmarshal(bytes.TrimSpace(body), &payload); err != nil {
		return meeting.RecordingEvent{}, &ValidationError{
			Kind:         failure.InvalidPayload,
			Message:      "request body must be a JSON object",
			ReceivedType: "unparsable",
		}
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return meeting.RecordingEvent{}, notAnObject(payload)
	}

	if raw, ok := obj["events"]; ok {
		events, _ := raw.([]any)
		if len(events) == 0 {
			return meeting.RecordingEvent{}, &ValidationError{
				Kind:    failure.InvalidPayload,
				Message: "events envelope must contain at least one event",
			}
		}
		if obj, ok = events[0].(map[string]any); !ok {
			return meeting.RecordingEvent{}, notAnObject(events[0])
		}
	}

	eventType, _ := obj["event_type"].(string)
	if eventType != EventTypeRecordingCreated {
		received := eventType
		if received == "" && obj["event_type"] != nil {
			received = fmt.Sprint(obj["event_type"])
		}
		return meeting.RecordingEvent{}, &ValidationError{
			Kind:     failure.UnexpectedEventType,
			Message:  "unexpected event type",
			Expected: EventTypeRecordingCreated,
			Received: received,
		}
	}

	ids, _ := obj["id"].(map[string]any)
	event := meeting.RecordingEvent{
		MeetingID:   stringField(ids, "meeting_id"),
		RecordingID: stringField(ids, "call_recording_id"),
		WorkspaceID: stringField(ids, "workspace_id"),
	}
	if actor, ok := obj["actor"].(map[string]any); ok {
		event.ActorID = stringField(actor, "id")
	}
	if event.MeetingID == "" || event.RecordingID == "" {
		return meeting.RecordingEvent{}, &ValidationError{
			Kind:     failure.MissingIdentifiers,
			Message:  "missing meeting_id or call_recording_id",
			Required: requiredIdentifiers,
		}
	}
	return event, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func notAnObject(v any) *ValidationError {
	return &ValidationError{
		Kind:         failure.InvalidPayload,
		Message:      "request body must be a JSON object",
		ReceivedType: jsonTypeName(v),
	}
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "object"
	}
}
