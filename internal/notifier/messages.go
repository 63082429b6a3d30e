package notifier

import (
	"fmt"
	"strings"
)

const (
	messageNewRecordingTitle     = ":movie_camera: **New call recording detected.**"
	messageProcessingFailedTitle = ":warning: **Meeting notes could not be generated.**"
	messageNewRecordingHint      = "-# A notes draft will be created once the transcript is ready."
	messageFailedHint            = "-# The hourly recovery sweep will retry recordings without a draft."

	messageMeetingLineFormat   = "Meeting: `%s`"
	messageRecordingLineFormat = "Recording: `%s`"
	messageJobLineFormat       = "Job: `%s`"
	messageReasonLineFormat    = "Reason: %s"

	maxReasonLength = 1500
)

func NewRecording(meetingID, recordingID, jobID string) string {
	lines := []string{
		messageNewRecordingTitle,
		fmt.Sprintf(messageMeetingLineFormat, meetingID),
		fmt.Sprintf(messageRecordingLineFormat, recordingID),
	}
	if jobID != "" {
		lines = append(lines, fmt.Sprintf(messageJobLineFormat, jobID))
	}
	lines = append(lines, messageNewRecordingHint)
	return strings.Join(lines, "\n")
}

func ProcessingFailed(meetingID, recordingID, reason string) string {
	if r := []rune(reason); len(r) > maxReasonLength {
		reason = string(r[:maxReasonLength]) + "…"
	}
	return strings.Join([]string{
		messageProcessingFailedTitle,
		fmt.Sprintf(messageMeetingLineFormat, meetingID),
		fmt.Sprintf(messageRecordingLineFormat, recordingID),
		fmt.Sprintf(messageReasonLineFormat, reason),
		messageFailedHint,
	}, "\n")
}
