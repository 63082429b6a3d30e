package notes

const (
	SectionMeetingNotes    = "Meeting Notes"
	SectionCampaignUpdates = "Campaign Updates, Metrics, and Performance"
	SectionKeyDecisions    = "Key Decisions"
	SectionActionItems     = "Action Items"
	SectionAgenda          = "Next Meeting Agenda"
)

// sectionAliases maps every accepted header text to its canonical section.
var sectionAliases = map[string]string{
	SectionMeetingNotes:    SectionMeetingNotes,
	SectionCampaignUpdates: SectionCampaignUpdates,
	"Campaign Updates":     SectionCampaignUpdates,
	SectionKeyDecisions:    SectionKeyDecisions,
	SectionActionItems:     SectionActionItems,
	SectionAgenda:          SectionAgenda,
}

// Notes is the five-section document produced by the formatter.
type Notes struct {
	MeetingNotes    []string
	CampaignUpdates []string
	KeyDecisions    []string
	ActionItems     []ActionItem
	Agenda          string
}

type ActionItem struct {
	Person string
	Item   string
	Due    string
}

func (n Notes) IsEmpty() bool {
	return len(n.MeetingNotes) == 0 &&
		len(n.CampaignUpdates) == 0 &&
		len(n.KeyDecisions) == 0 &&
		len(n.ActionItems) == 0 &&
		n.Agenda == ""
}
