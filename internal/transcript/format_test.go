package transcript

import (
	"strings"
	"testing"

	"github.com/foxseedlab/meetnotes/internal/crm"
)

func seg(speaker string, start, end float64, text string) crm.TranscriptSegment {
	return crm.TranscriptSegment{SpeakerName: speaker, StartTimeSeconds: start, EndTimeSeconds: end, Text: text}
}

func TestFormatSegments_GroupsConsecutiveSpeakerRuns(t *testing.T) {
	segments := []crm.TranscriptSegment{
		seg("Alice", 0, 1, "hello"),
		seg("Alice", 1, 2, "there"),
		seg("Bob", 65, 66, "hi"),
		seg("Alice", 70, 71, "again"),
		seg("Alice", 71, 72, "and"),
	}

	got := FormatSegments(segments)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (one per run), got %d: %q", len(lines), got)
	}
	if lines[0] != "[00:00] Alice: hello there" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "[01:05] Bob: hi" {
		t.Fatalf("unexpected second line: %q", lines[1])
	}
	if lines[2] != "[01:10] Alice: again and" {
		t.Fatalf("non-adjacent runs must not merge: %q", lines[2])
	}
}

func TestFormatSegments_LineCountEqualsRunCount(t *testing.T) {
	speakers := []string{"A", "A", "B", "B", "B", "A", "C", "C", "A", "A"}
	segments := make([]crm.TranscriptSegment, 0, len(speakers))
	runs := 0
	for i, s := range speakers {
		if i == 0 || speakers[i-1] != s {
			runs++
		}
		segments = append(segments, seg(s, float64(i), float64(i+1), "w"))
	}
	lines := strings.Split(FormatSegments(segments), "\n")
	if len(lines) != runs {
		t.Fatalf("expected %d lines, got %d", runs, len(lines))
	}
}

func TestFormatSegments_EmptyAndUnknownSpeaker(t *testing.T) {
	if got := FormatSegments(nil); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	got := FormatSegments([]crm.TranscriptSegment{seg("", 3725, 3726, "late")})
	if got != "[62:05] Unknown Speaker: late" {
		t.Fatalf("unexpected line: %q", got)
	}
}

func TestNewTranscript_Stats(t *testing.T) {
	tr := newTranscript([]crm.TranscriptSegment{seg("Zoë", 0, 1.5, "héllo"), seg("Zoë", 1.5, 42.25, "wörld")}, "https://crm/x", 2)
	if tr.DurationSeconds != 42.25 {
		t.Fatalf("unexpected duration: %v", tr.DurationSeconds)
	}
	if tr.TotalCharacters != len([]rune(tr.FormattedText)) {
		t.Fatalf("characters should count runes: %d vs %q", tr.TotalCharacters, tr.FormattedText)
	}
	if tr.PageCount != 2 || tr.WebURL != "https://crm/x" {
		t.Fatalf("unexpected transcript: %+v", tr)
	}
}
