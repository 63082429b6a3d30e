package draft

import (
	"regexp"
	"time"
)

var meetingCodePattern = regexp.MustCompile(`\[([^\]]+)\]`)

const (
	fallbackCode     = "[Meeting]"
	subjectDateStamp = "02.01.06"
)

// Subject builds "[CODE] Notes and Actions - DD.MM.YY" from the first
// bracketed code in the meeting title.
func Subject(title string, date time.Time, loc *time.Location) string {
	code := fallbackCode
	if m := meetingCodePattern.FindStringSubmatch(title); m != nil {
		code = "[" + m[1] + "]"
	}
	if loc != nil {
		date = date.In(loc)
	}
	return code + " Notes and Actions - " + date.Format(subjectDateStamp)
}
