package attio

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/foxseedlab/meetnotes/internal/crm"
)

type recordingDTO struct {
	ID        json.RawMessage `json:"id"`
	Status    string          `json:"status"`
	WebURL    string          `json:"web_url"`
	CreatedAt json.RawMessage `json:"created_at"`
}

func (r recordingDTO) toDomain(meetingID string) crm.Recording {
	return crm.Recording{
		ID:        normalizeID(r.ID, "call_recording_id"),
		MeetingID: meetingID,
		Status:    crm.RecordingStatus(r.Status),
		WebURL:    r.WebURL,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

type segmentDTO struct {
	Speech    string  `json:"speech"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Speaker   struct {
		Name string `json:"name"`
	} `json:"speaker"`
}

func recordingPath(meetingID, recordingID string) string {
	return "/meetings/" + url.PathEscape(meetingID) + "/call_recordings/" + url.PathEscape(recordingID)
}

func (c *Client) GetRecording(ctx context.Context, meetingID, recordingID string) (*crm.Recording, error) {
	var resp struct {
		Data recordingDTO `json:"data"`
	}
	if err := c.getJSON(ctx, recordingPath(meetingID, recordingID), nil, &resp); err != nil {
		return nil, err
	}
	r := resp.Data.toDomain(meetingID)
	if r.ID == "" {
		r.ID = recordingID
	}
	return &r, nil
}

func (c *Client) ListRecordings(ctx context.Context, meetingID string) ([]crm.Recording, error) {
	var resp struct {
		Data []recordingDTO `json:"data"`
	}
	if err := c.getJSON(ctx, "/meetings/"+url.PathEscape(meetingID)+"/call_recordings", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]crm.Recording, 0, len(resp.Data))
	for _, r := range resp.Data {
		out = append(out, r.toDomain(meetingID))
	}
	return out, nil
}

func (c *Client) GetTranscriptPage(ctx context.Context, meetingID, recordingID, cursor string) (*crm.TranscriptPage, error) {
	var q url.Values
	if cursor != "" {
		q = url.Values{"cursor": {cursor}}
	}
	var resp struct {
		Data struct {
			Transcript []segmentDTO `json:"transcript"`
			WebURL     string       `json:"web_url"`
		} `json:"data"`
		Pagination pagination `json:"pagination"`
	}
	if err := c.getJSON(ctx, recordingPath(meetingID, recordingID)+"/transcript", q, &resp); err != nil {
		return nil, err
	}
	page := &crm.TranscriptPage{
		WebURL:     resp.Data.WebURL,
		NextCursor: resp.Pagination.NextCursor,
		Segments:   make([]crm.TranscriptSegment, 0, len(resp.Data.Transcript)),
	}
	for _, s := range resp.Data.Transcript {
		page.Segments = append(page.Segments, crm.TranscriptSegment{
			SpeakerName:      s.Speaker.Name,
			StartTimeSeconds: s.StartTime,
			EndTimeSeconds:   s.EndTime,
			Text:             s.Speech,
		})
	}
	return page, nil
}
