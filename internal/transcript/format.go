package transcript

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/foxseedlab/meetnotes/internal/crm"
)

const unknownSpeaker = "Unknown Speaker"

type Transcript struct {
	Segments        []crm.TranscriptSegment
	FormattedText   string
	WebURL          string
	PageCount       int
	TotalCharacters int
	DurationSeconds float64
}

func newTranscript(segments []crm.TranscriptSegment, webURL string, pageCount int) *Transcript {
	text := FormatSegments(segments)
	return &Transcript{
		Segments:        segments,
		FormattedText:   text,
		WebURL:          webURL,
		PageCount:       pageCount,
		TotalCharacters: utf8.RuneCountInString(text),
		DurationSeconds: durationOf(segments),
	}
}

// FormatSegments renders one "[MM:SS] Speaker: words" line per maximal run of
// consecutive segments sharing a speaker. Segment order is kept as given.
func FormatSegments(segments []crm.TranscriptSegment) string {
	if len(segments) == 0 {
		return ""
	}
	lines := make([]string, 0)
	var (
		speaker string
		startAt float64
		words   []string
	)
	flush := func() {
		if len(words) == 0 {
			return
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", formatElapsedMS(startAt), speaker, strings.Join(words, " ")))
		words = words[:0]
	}
	for i, seg := range segments {
		name := speakerName(seg)
		if i == 0 || name != speaker {
			flush()
			speaker = name
			startAt = seg.StartTimeSeconds
		}
		words = append(words, seg.Text)
	}
	flush()
	return strings.Join(lines, "\n")
}

func speakerName(seg crm.TranscriptSegment) string {
	name := strings.TrimSpace(seg.SpeakerName)
	if name == "" {
		return unknownSpeaker
	}
	return name
}

func formatElapsedMS(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func durationOf(segments []crm.TranscriptSegment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].EndTimeSeconds
}
