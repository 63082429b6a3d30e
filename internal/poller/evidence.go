package poller

import (
	"mime"
	"regexp"
	"strings"
	"time"

	"github.com/foxseedlab/meetnotes/internal/mail"
)

// legacySubjectPattern matches "Meeting Notes: <title> - <n>".
var legacySubjectPattern = regexp.MustCompile(`Meeting Notes:\s*(.+?)\s*-\s*\d+`)

var headerDecoder = new(mime.WordDecoder)

// evidence is what existing drafts tell us about already processed meetings.
type evidence struct {
	titles       map[string]struct{}
	recordingIDs map[string]struct{}
}

func newEvidence() evidence {
	return evidence{
		titles:       make(map[string]struct{}),
		recordingIDs: make(map[string]struct{}),
	}
}

func (e evidence) add(d mail.Draft) {
	if m := legacySubjectPattern.FindStringSubmatch(decodeHeader(d.Subject)); m != nil {
		e.titles[normalizeTitle(m[1])] = struct{}{}
	}
	if title := normalizeTitle(decodeHeader(d.Headers[mail.HeaderMeetingTitle])); title != "" {
		e.titles[title] = struct{}{}
	}
	if id := strings.TrimSpace(d.Headers[mail.HeaderRecordingID]); id != "" {
		e.recordingIDs[id] = struct{}{}
	}
}

func (e evidence) processed(c candidate) bool {
	if _, ok := e.recordingIDs[c.RecordingID]; ok {
		return true
	}
	_, ok := e.titles[normalizeTitle(c.Title)]
	return ok
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func decodeHeader(v string) string {
	decoded, err := headerDecoder.DecodeHeader(v)
	if err != nil {
		return v
	}
	return decoded
}

// draftQuery searches drafts written by this service or its predecessor since cutover.
func draftQuery(cutover time.Time) string {
	return `in:drafts {subject:"Meeting Notes" subject:"Notes and Actions"} after:` + cutover.Format("2006/01/02")
}
