package notes

import (
	"strings"
)

// Parse splits formatted notes into sections by their header lines.
// Header lines may carry markdown decoration ("## Key Decisions", "**Action Items**:").
// Text before the first header and unknown sections are ignored.
func Parse(text string) Notes {
	bodies := splitSections(text)
	var n Notes
	for name, body := range bodies {
		switch name {
		case SectionMeetingNotes:
			n.MeetingNotes = parseParagraphItems(body)
		case SectionCampaignUpdates:
			n.CampaignUpdates = parseLineItems(body)
		case SectionKeyDecisions:
			n.KeyDecisions = parseParagraphItems(body)
		case SectionActionItems:
			n.ActionItems = ParseActionItems(body)
		case SectionAgenda:
			n.Agenda = strings.Join(strings.Fields(strings.Join(parseLineItems(body), " ")), " ")
		}
	}
	return n
}

func splitSections(text string) map[string]string {
	sections := make(map[string]string)
	var (
		current string
		body    []string
	)
	flush := func() {
		if current != "" {
			sections[current] = strings.Join(body, "\n")
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if name, ok := headerName(line); ok {
			flush()
			current = name
			body = nil
			continue
		}
		if current != "" {
			body = append(body, line)
		}
	}
	flush()
	return sections
}

func headerName(line string) (string, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_")
	s = strings.TrimSuffix(strings.TrimSpace(s), ":")
	s = strings.Trim(strings.TrimSpace(s), "*_")
	name, ok := sectionAliases[strings.TrimSpace(s)]
	return name, ok
}

// parseLineItems treats every non-empty line as one item.
func parseLineItems(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		if item := stripBullet(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseParagraphItems starts a new item at every bullet or after a blank line;
// other lines continue the current item.
func parseParagraphItems(body string) []string {
	var (
		items []string
		cur   []string
	)
	flush := func() {
		if len(cur) > 0 {
			items = append(items, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if hasBullet(trimmed) {
			flush()
		}
		if item := stripBullet(trimmed); item != "" {
			cur = append(cur, item)
		}
	}
	flush()
	return items
}

func hasBullet(s string) bool {
	return strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") || strings.HasPrefix(s, "•")
}

func stripBullet(line string) string {
	s := strings.TrimSpace(line)
	if hasBullet(s) {
		s = strings.TrimPrefix(s, "•")
		s = strings.TrimPrefix(s, "- ")
		s = strings.TrimPrefix(s, "* ")
	}
	return strings.TrimSpace(s)
}

// ParseActionItems reads a three-column markdown table (Person | Item | Due).
// The header row and separator rows are skipped; cells lose terminal punctuation.
func ParseActionItems(body string) []ActionItem {
	var rows [][]string
	headerEnd := -1
	for _, line := range strings.Split(body, "\n") {
		s := strings.TrimSpace(line)
		if !strings.Contains(s, "|") {
			continue
		}
		cells := tableCells(s)
		if isSeparatorRow(cells) {
			if headerEnd < 0 {
				headerEnd = len(rows)
			}
			continue
		}
		rows = append(rows, cells)
	}
	switch {
	case headerEnd > 0:
		rows = rows[headerEnd:]
	case len(rows) > 0 && looksLikeHeader(rows[0]):
		rows = rows[1:]
	}

	var items []ActionItem
	for _, cells := range rows {
		if len(cells) < 2 {
			continue
		}
		item := ActionItem{
			Person: trimCellPunctuation(cells[0]),
			Item:   trimCellPunctuation(cells[1]),
		}
		if len(cells) > 2 {
			item.Due = trimCellPunctuation(cells[2])
		}
		if item.Person == "" && item.Item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func tableCells(row string) []string {
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if c == "" || strings.Trim(c, "-: ") != "" {
			return false
		}
	}
	return len(cells) > 0
}

func looksLikeHeader(cells []string) bool {
	first := strings.ToLower(cells[0])
	return first == "person" || strings.Contains(first, "responsible") || first == "owner"
}

func trimCellPunctuation(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ".,;:!"))
}
