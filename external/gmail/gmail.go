package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foxseedlab/meetnotes/internal/mail"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	userID           = "me"
	maxListPageSize  = 500
	draftFetchFormat = "full"
	headerSubject    = "Subject"
)

// NewService builds a Gmail client from an OAuth client secret JSON and a
// previously granted token JSON. Every request, token refreshes included, is
// bounded by timeout.
func NewService(ctx context.Context, credentialsJSON, tokenJSON string, timeout time.Duration, opts ...option.ClientOption) (*gmailapi.Service, error) {
	cfg, err := google.ConfigFromJSON([]byte(credentialsJSON), gmailapi.GmailComposeScope)
	if err != nil {
		return nil, fmt.Errorf("parse gmail credentials: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(tokenJSON), &tok); err != nil {
		return nil, fmt.Errorf("parse gmail token: %w", err)
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	client := cfg.Client(ctx, &tok)
	client.Timeout = timeout
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	svc, err := gmailapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return svc, nil
}

type Mailbox struct {
	svc    *gmailapi.Service
	logger *slog.Logger
}

var _ mail.Mailbox = (*Mailbox)(nil)

func NewMailbox(svc *gmailapi.Service) *Mailbox {
	return &Mailbox{svc: svc, logger: slog.Default()}
}

func (m *Mailbox) CreateDraft(ctx context.Context, raw []byte) (string, error) {
	d, err := m.svc.Users.Drafts.Create(userID, &gmailapi.Draft{
		Message: &gmailapi.Message{Raw: base64.URLEncoding.EncodeToString(raw)},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail create draft: %w", err)
	}
	return d.Id, nil
}

// ListDrafts pages through matching drafts up to maxResults and reads each
// draft's Subject and tracking headers. Drafts that cannot be read are skipped.
func (m *Mailbox) ListDrafts(ctx context.Context, query string, maxResults int) ([]mail.Draft, error) {
	var ids []string
	pageToken := ""
	for len(ids) < maxResults {
		call := m.svc.Users.Drafts.List(userID).Q(query).MaxResults(int64(min(maxResults-len(ids), maxListPageSize))).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("gmail list drafts: %w", err)
		}
		for _, d := range resp.Drafts {
			ids = append(ids, d.Id)
		}
		if resp.NextPageToken == "" || len(resp.Drafts) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	drafts := make([]mail.Draft, 0, len(ids))
	for _, id := range ids {
		full, err := m.svc.Users.Drafts.Get(userID, id).Format(draftFetchFormat).Context(ctx).Do()
		if err != nil {
			m.logger.Warn("skipping unreadable draft", "draft_id", id, "error", err)
			continue
		}
		drafts = append(drafts, toDraft(full))
	}
	return drafts, nil
}

func toDraft(d *gmailapi.Draft) mail.Draft {
	out := mail.Draft{ID: d.Id, Headers: make(map[string]string)}
	if d.Message == nil || d.Message.Payload == nil {
		return out
	}
	for _, h := range d.Message.Payload.Headers {
		switch {
		case strings.EqualFold(h.Name, headerSubject):
			out.Subject = h.Value
		case strings.EqualFold(h.Name, mail.HeaderMeetingTitle):
			out.Headers[mail.HeaderMeetingTitle] = h.Value
		case strings.EqualFold(h.Name, mail.HeaderRecordingID):
			out.Headers[mail.HeaderRecordingID] = h.Value
		}
	}
	return out
}
