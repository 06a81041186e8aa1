package entity

type TeamMember struct {
	Initials string `json:"initials"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// TeamMembers is the fixed roster leads can be assigned to. There is no
// user management; the Settings page only reads this list.
func TeamMembers() []TeamMember {
	return []TeamMember{
		{Initials: "AS", Name: "Ana Souza", Role: "Account Executive"},
		{Initials: "RH", Name: "Rafael Herrera", Role: "SDR"},
		{Initials: "LM", Name: "Lucas Martins", Role: "Sales Manager"},
	}
}

func IsTeamMember(initials string) bool {
	for _, m := range TeamMembers() {
		if m.Initials == initials {
			return true
		}
	}
	return false
}
