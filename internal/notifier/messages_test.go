package notifier

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewRecording(t *testing.T) {
	msg := NewRecording("M1", "R1", "job-1")
	for _, want := range []string{"New call recording detected", "`M1`", "`R1`", "`job-1`"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
	if strings.Contains(NewRecording("M1", "R1", ""), "Job:") {
		t.Fatal("job line should be omitted without a job id")
	}
}

func TestProcessingFailed_TruncatesReason(t *testing.T) {
	msg := ProcessingFailed("M1", "R1", strings.Repeat("x", 3000))
	if len(msg) > 1800 {
		t.Fatalf("message too long: %d", len(msg))
	}
	if !strings.Contains(msg, "Reason: xxx") {
		t.Fatalf("reason missing: %q", msg)
	}
}

func TestProcessingFailed_TruncatesOnRuneBoundary(t *testing.T) {
	msg := ProcessingFailed("M1", "R1", "x"+strings.Repeat("会議", 1000))
	if !utf8.ValidString(msg) {
		t.Fatal("truncated message is not valid UTF-8")
	}
	line := msg[strings.Index(msg, "Reason: ")+len("Reason: "):]
	line = line[:strings.Index(line, "\n")]
	if n := utf8.RuneCountInString(line); n != maxReasonLength+1 {
		t.Fatalf("expected %d runes including the ellipsis, got %d", maxReasonLength+1, n)
	}
	if !strings.HasSuffix(line, "…") {
		t.Fatalf("expected ellipsis, got %q", line[len(line)-8:])
	}
}
