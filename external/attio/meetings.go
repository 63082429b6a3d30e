package attio

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/foxseedlab/meetnotes/internal/crm"
)

type pagination struct {
	NextCursor string `json:"next_cursor"`
}

type meetingDTO struct {
	ID           json.RawMessage `json:"id"`
	Title        string          `json:"title"`
	Start        json.RawMessage `json:"start"`
	Participants []struct {
		EmailAddress string `json:"email_address"`
		IsOrganizer  bool   `json:"is_organizer"`
	} `json:"participants"`
}

func (m meetingDTO) toDomain() crm.Meeting {
	out := crm.Meeting{
		ID:            normalizeID(m.ID, "meeting_id"),
		Title:         m.Title,
		StartDatetime: parseTimestamp(m.Start),
	}
	for _, p := range m.Participants {
		out.Participants = append(out.Participants, crm.Participant{EmailAddress: p.EmailAddress, IsOrganizer: p.IsOrganizer})
	}
	return out
}

func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*crm.Meeting, error) {
	var resp struct {
		Data meetingDTO `json:"data"`
	}
	if err := c.getJSON(ctx, "/meetings/"+url.PathEscape(meetingID), nil, &resp); err != nil {
		return nil, err
	}
	m := resp.Data.toDomain()
	if m.ID == "" {
		m.ID = meetingID
	}
	return &m, nil
}

func (c *Client) ListMeetings(ctx context.Context, in crm.ListMeetingsInput) (*crm.MeetingsPage, error) {
	q := url.Values{}
	if in.Limit > 0 {
		q.Set("limit", strconv.Itoa(in.Limit))
	}
	if in.Cursor != "" {
		q.Set("cursor", in.Cursor)
	}
	if in.StartsFrom != nil {
		q.Set("starts_from", in.StartsFrom.UTC().Format(time.RFC3339))
	}
	var resp struct {
		Data       []meetingDTO `json:"data"`
		Pagination pagination   `json:"pagination"`
	}
	if err := c.getJSON(ctx, "/meetings", q, &resp); err != nil {
		return nil, err
	}
	page := &crm.MeetingsPage{NextCursor: resp.Pagination.NextCursor}
	for _, m := range resp.Data {
		page.Meetings = append(page.Meetings, m.toDomain())
	}
	return page, nil
}
