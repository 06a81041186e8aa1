package entity

// DateFormat is the wire format for lastContact and activity dates.
const DateFormat = "2006-01-02"

// Pipeline stages, in board order. Disqualified sits outside the board as
// the terminal rejection state. Any stage may be set from any other; the
// pipeline board allows free drag-and-drop and we do not enforce a
// transition graph.
const (
	StatusNew          = "New"
	StatusContacted    = "Contacted"
	StatusQualified    = "Qualified"
	StatusProposal     = "Proposal"
	StatusNegotiation  = "Negotiation"
	StatusDisqualified = "Disqualified"
	StatusClosed       = "Closed"
)

const DefaultSource = "Website"

// Activity types a rep can log against a lead.
const (
	ActivityEmail   = "Email"
	ActivityCall    = "Call"
	ActivityMeeting = "Meeting"
	ActivityNote    = "Note"
	ActivityTask    = "Task"
)

type Lead struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Budget      float64    `json:"budget"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	Score       int        `json:"score"`
	Company     string     `json:"company,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	LastContact string     `json:"lastContact"`
	Assignee    string     `json:"assignee,omitempty"`
	Activities  []Activity `json:"activities"`
}

// Activity is a logged interaction. LeadID is denormalized for display;
// the Lead owns its activity list.
type Activity struct {
	ID          int    `json:"id"`
	LeadID      int    `json:"leadId"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Statuses returns the pipeline stages in board order, Disqualified last.
func Statuses() []string {
	return []string{
		StatusNew,
		StatusContacted,
		StatusQualified,
		StatusProposal,
		StatusNegotiation,
		StatusClosed,
		StatusDisqualified,
	}
}

func IsValidStatus(s string) bool {
	for _, st := range Statuses() {
		if st == s {
			return true
		}
	}
	return false
}

func ActivityTypes() []string {
	return []string{ActivityEmail, ActivityCall, ActivityMeeting, ActivityNote, ActivityTask}
}

func IsValidActivityType(t string) bool {
	for _, at := range ActivityTypes() {
		if at == t {
			return true
		}
	}
	return false
}

// Clone returns a copy of the lead with its own activity slice, so callers
// can hold results without racing against store mutations.
func (l Lead) Clone() Lead {
	c := l
	c.Activities = make([]Activity, len(l.Activities))
	copy(c.Activities, l.Activities)
	return c
}
