package notes

import (
	"bytes"
	"fmt"
	"text/template"
)

// Prompts holds the text/template sources for both formatter passes. Either
// field may be overridden from the prompts file; empty fields keep the default.
type Prompts struct {
	ActionItems string `toml:"action_items"`
	Notes       string `toml:"notes"`
}

// PromptData is the template input for both passes.
type PromptData struct {
	Title        string
	Date         string
	Participants string
	Transcript   string
	ActionItems  string
}

type compiledPrompts struct {
	actionItems *template.Template
	notes       *template.Template
}

func DefaultPrompts() Prompts {
	return Prompts{
		ActionItems: defaultActionItemsPrompt,
		Notes:       defaultNotesPrompt,
	}
}

// Merge returns p with empty fields filled from defaults.
func (p Prompts) Merge(defaults Prompts) Prompts {
	if p.ActionItems == "" {
		p.ActionItems = defaults.ActionItems
	}
	if p.Notes == "" {
		p.Notes = defaults.Notes
	}
	return p
}

func (p Prompts) compile() (*compiledPrompts, error) {
	actionItems, err := template.New("action_items").Parse(p.ActionItems)
	if err != nil {
		return nil, fmt.Errorf("parse action items prompt: %w", err)
	}
	notes, err := template.New("notes").Parse(p.Notes)
	if err != nil {
		return nil, fmt.Errorf("parse notes prompt: %w", err)
	}
	return &compiledPrompts{actionItems: actionItems, notes: notes}, nil
}

func render(t *template.Template, data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

const defaultActionItemsPrompt = `You are reading a meeting transcript and extracting every possible action item.

MEETING TRANSCRIPT:
{{.Transcript}}

Work through the whole transcript and list each candidate action item. Over-capture rather than under-capture: include anything that might be a commitment, even when unsure.

Look for:
- commitments ("I'll", "I will", "I need to", "let me")
- requests addressed to someone ("can you", "could you")
- planning statements ("save budget for", "make sure to", "hold back")
- shared work ("we should", "let's", "you two")
- answers to questions about upcoming work
- compound commitments ("I'll do X and Y" counts as two)

When an item is shared, name every person involved, resolving "we" and "you two" from who is speaking and the surrounding discussion.

Answer with a numbered list in this shape:

1. PERSON: name
   ACTION: what they will do
   DUE: when, if stated
   COLLABORATIVE: Yes or No, and if Yes the names of everyone involved
   TYPE: Core, Strategic, Status, Vague or Personal
   CONTEXT: relevant details
`

const defaultNotesPrompt = `You are turning meeting material into structured meeting notes.

MEETING
Title: {{.Title}}
Date: {{.Date}}
Participants: {{.Participants}}

CANDIDATE ACTION ITEMS (first pass):
{{.ActionItems}}

ACTION ITEM FILTERING
- Drop vague check-ins ("touch base", "catch up") and routine status updates.
- Drop personal, social and office items (coffee, lunch, seats, rooms).
- Keep only business items: campaigns, projects, budgets, strategy, deliverables.
- Give each row enough context to explain why the work matters.
- When several people share one task, list them all in a single row ("Katie and Stella").
- When one person has a multi-part commitment, give each part its own row.
- Use first names only. Copy due dates as stated and leave them blank when none was given.
- Aim for 6 to 12 rows.

OUTPUT SECTIONS, in this order, each introduced by its header on its own line:

Meeting Notes
5 to 7 bullets, one per topic area, in the past tense, specific to this meeting. Every line ends with a comma.

Campaign Updates, Metrics, and Performance
Every metric or performance remark mentioned, one per line, as "Platform or campaign: figure", with exact numbers, currencies and dates. Every line ends with a comma.

Key Decisions
One decision per bullet, stated directly without a "Decision to" prefix. Every line ends with a period.

Action Items
Exactly one markdown table with the columns | Person | Item | Due |. No punctuation at the end of any cell.

Next Meeting Agenda
One or two sentences listing the topics for next time, ending with a period.

A section with nothing to report may be left out. Do not add commentary before or after the sections.
`
