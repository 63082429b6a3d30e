package notes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/foxseedlab/meetnotes/internal/failure"
	"github.com/foxseedlab/meetnotes/internal/meeting"
	"github.com/foxseedlab/meetnotes/internal/transcript"
)

type completion struct {
	text string
	err  error
}

type mockCompleter struct {
	answers   []completion
	prompts   []string
	maxTokens []int
}

func (m *mockCompleter) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.maxTokens = append(m.maxTokens, maxTokens)
	a := m.answers[len(m.prompts)-1]
	return a.text, a.err
}

func testData() *meeting.Data {
	return &meeting.Data{
		Title:            "[ACME] Weekly",
		StartDatetime:    time.Date(2026, 3, 3, 23, 30, 0, 0, time.UTC),
		ParticipantNames: []string{"Jane Doe", "Bob"},
		Transcript:       &transcript.Transcript{FormattedText: "[00:00] Jane: I'll send the plan"},
	}
}

func TestFormat_TwoPasses(t *testing.T) {
	llm := &mockCompleter{answers: []completion{
		{text: "1. PERSON: Jane\n   ACTION: send the plan"},
		{text: "Key Decisions\n- Plan goes out Monday,\n\nAction Items\n| Person | Item | Due |\n|---|---|---|\n| Jane | Send the plan. | Monday |"},
	}}
	f, err := NewFormatter(llm, Prompts{}, time.FixedZone("AEDT", 11*60*60))
	if err != nil {
		t.Fatalf("new formatter: %v", err)
	}

	out, err := f.Format(context.Background(), testData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(llm.prompts) != 2 || llm.maxTokens[0] != 3000 || llm.maxTokens[1] != 4000 {
		t.Fatalf("unexpected calls: %d tokens=%v", len(llm.prompts), llm.maxTokens)
	}
	if !strings.Contains(llm.prompts[0], "[00:00] Jane: I'll send the plan") {
		t.Fatal("pass 1 prompt should carry the transcript")
	}
	if !strings.Contains(llm.prompts[1], "ACTION: send the plan") ||
		!strings.Contains(llm.prompts[1], "Participants: Jane Doe, Bob") ||
		!strings.Contains(llm.prompts[1], "Wednesday, 4 March 2026") {
		t.Fatalf("pass 2 prompt missing inputs:\n%s", llm.prompts[1])
	}
	if !strings.Contains(out, "- Plan goes out Monday.") || !strings.Contains(out, "| Jane | Send the plan | Monday |") {
		t.Fatalf("output was not normalized:\n%s", out)
	}
}

func TestFormat_FailureInEitherPass(t *testing.T) {
	cases := map[string][]completion{
		"pass 1 error": {{err: errors.New("timeout")}},
		"pass 1 empty": {{text: "  "}},
		"pass 2 error": {{text: "items"}, {err: errors.New("rate limited")}},
	}
	for name, answers := range cases {
		t.Run(name, func(t *testing.T) {
			llm := &mockCompleter{answers: answers}
			f, err := NewFormatter(llm, Prompts{}, nil)
			if err != nil {
				t.Fatalf("new formatter: %v", err)
			}
			out, err := f.Format(context.Background(), testData())
			if !errors.Is(err, failure.ErrFormattingFailed) {
				t.Fatalf("expected FormattingFailed, got %v", err)
			}
			if out != "" {
				t.Fatalf("no partial output expected, got %q", out)
			}
			if len(llm.prompts) != len(answers) {
				t.Fatalf("expected %d calls, got %d", len(answers), len(llm.prompts))
			}
		})
	}
}

func TestNewFormatter_PromptOverrides(t *testing.T) {
	llm := &mockCompleter{answers: []completion{{text: "items"}, {text: "Meeting Notes\n- done"}}}
	f, err := NewFormatter(llm, Prompts{ActionItems: "custom {{.Title}}"}, nil)
	if err != nil {
		t.Fatalf("new formatter: %v", err)
	}
	if _, err := f.Format(context.Background(), testData()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if llm.prompts[0] != "custom [ACME] Weekly" {
		t.Fatalf("override not applied: %q", llm.prompts[0])
	}
	if !strings.Contains(llm.prompts[1], "CANDIDATE ACTION ITEMS") {
		t.Fatal("empty override should keep the default notes prompt")
	}

	if _, err := NewFormatter(llm, Prompts{Notes: "{{.Broken"}, nil); err == nil {
		t.Fatal("expected template parse error")
	}
}
