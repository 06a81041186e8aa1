// Package seed provides the demo leads the store starts with, so the
// dashboard is never empty on a cold start and tests get deterministic
// fixtures.
package seed

import "github.com/xavierca1/leadflow/internal/entity"

// Leads returns a fresh copy of the 8 demo leads. Two of them carry an
// activity history. Callers own the returned slices.
func Leads() []entity.Lead {
	return []entity.Lead{
		{
			ID: 1, Name: "John Smith", Email: "john@example.com", Budget: 150000,
			Source: "Website", Score: 85, Status: entity.StatusNew,
			Company: "Acme Corp", LastContact: "2023-09-15", Assignee: "AS",
			Notes: "Initial contact made via website.",
			Activities: []entity.Activity{
				{ID: 101, LeadID: 1, Date: "2023-09-15", Type: entity.ActivityEmail, Description: "Sent welcome email"},
				{ID: 102, LeadID: 1, Date: "2023-09-18", Type: entity.ActivityCall, Description: "Discussed product features"},
			},
		},
		{
			ID: 2, Name: "Emily Johnson", Email: "emily@example.com", Budget: 250000,
			Source: "Referral", Score: 92, Status: entity.StatusContacted,
			Company: "TechCorp", LastContact: "2023-09-10", Assignee: "RH",
			Activities: []entity.Activity{
				{ID: 201, LeadID: 2, Date: "2023-09-10", Type: entity.ActivityMeeting, Description: "Initial consultation"},
			},
		},
		{
			ID: 3, Name: "Michael Brown", Email: "michael@example.com", Budget: 120000,
			Source: "LinkedIn", Score: 78, Status: entity.StatusQualified,
			Company: "Globex", LastContact: "2023-09-05", Assignee: "AS",
			Activities: []entity.Activity{},
		},
		{
			ID: 4, Name: "Sarah Williams", Email: "sarah@example.com", Budget: 85000,
			Source: "Email Campaign", Score: 65, Status: entity.StatusNew,
			Company: "Initech", LastContact: "2023-09-20", Assignee: "LM",
			Activities: []entity.Activity{},
		},
		{
			ID: 5, Name: "David Miller", Email: "david@example.com", Budget: 190000,
			Source: "Trade Show", Score: 73, Status: entity.StatusDisqualified,
			Company: "Wayne Enterprises", LastContact: "2023-08-30", Assignee: "RH",
			Activities: []entity.Activity{},
		},
		{
			ID: 6, Name: "Jessica Wilson", Email: "jessica@example.com", Budget: 175000,
			Source: "Website", Score: 81, Status: entity.StatusContacted,
			Company: "Stark Industries", LastContact: "2023-09-12", Assignee: "LM",
			Activities: []entity.Activity{},
		},
		{
			ID: 7, Name: "Robert Taylor", Email: "robert@example.com", Budget: 95000,
			Source: "Advertisement", Score: 69, Status: entity.StatusNew,
			Company: "Umbrella Corp", LastContact: "2023-09-18", Assignee: "AS",
			Activities: []entity.Activity{},
		},
		{
			ID: 8, Name: "Jennifer Garcia", Email: "jennifer@example.com", Budget: 230000,
			Source: "Webinar", Score: 88, Status: entity.StatusQualified,
			Company: "Massive Dynamics", LastContact: "2023-09-03", Assignee: "RH",
			Activities: []entity.Activity{},
		},
	}
}
