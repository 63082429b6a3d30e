package notes

import (
	"strings"
)

// String renders the notes in fixed section order with the punctuation rules
// applied: Meeting Notes and Campaign Updates lines end with a comma, Key
// Decisions with a period, table cells without terminal punctuation, and the
// agenda with a period. Empty sections are omitted.
func (n Notes) String() string {
	var blocks []string
	if len(n.MeetingNotes) > 0 {
		blocks = append(blocks, SectionMeetingNotes+"\n"+bulletLines(n.MeetingNotes, ","))
	}
	if len(n.CampaignUpdates) > 0 {
		blocks = append(blocks, SectionCampaignUpdates+"\n"+bulletLines(n.CampaignUpdates, ","))
	}
	if len(n.KeyDecisions) > 0 {
		blocks = append(blocks, SectionKeyDecisions+"\n"+bulletLines(n.KeyDecisions, "."))
	}
	if len(n.ActionItems) > 0 {
		blocks = append(blocks, SectionActionItems+"\n"+actionItemsTable(n.ActionItems))
	}
	if n.Agenda != "" {
		blocks = append(blocks, SectionAgenda+"\n"+withTerminal(n.Agenda, "."))
	}
	return strings.Join(blocks, "\n\n")
}

// Normalize parses text and renders it back. Text without any known section is
// returned trimmed as is.
func Normalize(text string) string {
	n := Parse(text)
	if n.IsEmpty() {
		return strings.TrimSpace(text)
	}
	return n.String()
}

func bulletLines(items []string, terminal string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + withTerminal(item, terminal)
	}
	return strings.Join(lines, "\n")
}

func withTerminal(s, terminal string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".,;:") + terminal
}

func actionItemsTable(items []ActionItem) string {
	var b strings.Builder
	b.WriteString("| Person | Item | Due |\n")
	b.WriteString("| --- | --- | --- |")
	for _, it := range items {
		b.WriteString("\n| ")
		b.WriteString(tableCell(it.Person))
		b.WriteString(" | ")
		b.WriteString(tableCell(it.Item))
		b.WriteString(" | ")
		b.WriteString(tableCell(it.Due))
		b.WriteString(" |")
	}
	return b.String()
}

func tableCell(s string) string {
	return strings.ReplaceAll(trimCellPunctuation(s), "|", "/")
}
