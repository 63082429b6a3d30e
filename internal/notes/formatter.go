package notes

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/foxseedlab/meetnotes/internal/failure"
	"github.com/foxseedlab/meetnotes/internal/llm"
	"github.com/foxseedlab/meetnotes/internal/meeting"
)

const (
	actionItemsMaxTokens = 3000
	notesMaxTokens       = 4000

	promptDateLayout = "Monday, 2 January 2006"
)

var errEmptyCompletion = errors.New("empty completion")

// Formatter turns meeting data into notes with two completions: the first
// extracts candidate action items from the transcript, the second filters them
// and writes the final sections.
type Formatter struct {
	llm      llm.Completer
	prompts  *compiledPrompts
	location *time.Location
	logger   *slog.Logger
}

type Option func(*Formatter)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) { f.logger = logger }
}

func NewFormatter(completer llm.Completer, prompts Prompts, location *time.Location, opts ...Option) (*Formatter, error) {
	compiled, err := prompts.Merge(DefaultPrompts()).compile()
	if err != nil {
		return nil, err
	}
	if location == nil {
		location = time.UTC
	}
	f := &Formatter{
		llm:      completer,
		prompts:  compiled,
		location: location,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Format returns normalized notes text. Any failure in either pass is a
// FormattingFailed error and no partial output is returned.
func (f *Formatter) Format(ctx context.Context, data *meeting.Data) (string, error) {
	input := PromptData{
		Title:        data.Title,
		Participants: strings.Join(data.ParticipantNames, ", "),
	}
	if !data.StartDatetime.IsZero() {
		input.Date = data.StartDatetime.In(f.location).Format(promptDateLayout)
	}
	if data.Transcript != nil {
		input.Transcript = data.Transcript.FormattedText
	}

	prompt, err := render(f.prompts.actionItems, input)
	if err != nil {
		return "", failure.New(failure.FormattingFailed, "pass 1", err)
	}
	actionItems, err := f.complete(ctx, prompt, actionItemsMaxTokens)
	if err != nil {
		return "", failure.New(failure.FormattingFailed, "pass 1", err)
	}
	f.logger.Debug("action items extracted", "characters", len(actionItems))

	input.ActionItems = actionItems
	prompt, err = render(f.prompts.notes, input)
	if err != nil {
		return "", failure.New(failure.FormattingFailed, "pass 2", err)
	}
	raw, err := f.complete(ctx, prompt, notesMaxTokens)
	if err != nil {
		return "", failure.New(failure.FormattingFailed, "pass 2", err)
	}

	formatted := Normalize(raw)
	f.logger.Info("notes formatted",
		"title", data.Title,
		"action_items", len(Parse(formatted).ActionItems),
		"characters", len(formatted))
	return formatted, nil
}

func (f *Formatter) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	out, err := f.llm.Complete(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", errEmptyCompletion
	}
	return out, nil
}
