package attio

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// normalizeID turns an Attio id field into a plain string. Depending on the
// endpoint the field is either a string or an object such as
// {"workspace_id": "...", "meeting_id": "..."}; key names the object member.
func normalizeID(raw json.RawMessage, key string) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if v, ok := obj[key]; ok {
			return normalizeID(v, key)
		}
	}
	return string(raw)
}

// parseTimestamp accepts either "2026-01-02T03:04:05Z" or {"datetime": "..."}.
func parseTimestamp(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var obj struct {
			Datetime string `json:"datetime"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return time.Time{}
		}
		s = obj.Datetime
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
