package draft

import (
	"bytes"
	"encoding/base64"
	"mime"
	"strings"

	"github.com/foxseedlab/meetnotes/internal/mail"
)

const mimeLineLength = 76

type message struct {
	Subject      string
	MeetingTitle string
	RecordingID  string
	HTML         string
}

// bytes encodes the message as an RFC 5322 HTML message with a base64 body.
func (m message) bytes() []byte {
	var b bytes.Buffer
	header := func(name, value string) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}
	header("MIME-Version", "1.0")
	header("Content-Type", `text/html; charset="utf-8"`)
	header("Content-Transfer-Encoding", "base64")
	header("Subject", encodeHeader(m.Subject))
	if m.MeetingTitle != "" {
		header(mail.HeaderMeetingTitle, encodeHeader(m.MeetingTitle))
	}
	if m.RecordingID != "" {
		header(mail.HeaderRecordingID, m.RecordingID)
	}
	b.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString([]byte(m.HTML))
	for len(encoded) > mimeLineLength {
		b.WriteString(encoded[:mimeLineLength])
		b.WriteString("\r\n")
		encoded = encoded[mimeLineLength:]
	}
	b.WriteString(encoded)
	b.WriteString("\r\n")
	return b.Bytes()
}

func encodeHeader(v string) string {
	v = strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
	return mime.QEncoding.Encode("utf-8", v)
}
