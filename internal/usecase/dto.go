package usecase

import "github.com/xavierca1/leadflow/internal/entity"

type AddLeadInput struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Budget float64 `json:"budget"`

	// Optional; defaulted when empty.
	Status   string `json:"status,omitempty"`
	Source   string `json:"source,omitempty"`
	Company  string `json:"company,omitempty"`
	Assignee string `json:"assignee,omitempty"`
}

type AddLeadOutput struct {
	Lead entity.Lead `json:"lead"`

	// Warning is set when the backend persist failed. The lead is in the
	// local store regardless; the UI shows this as a non-blocking notice.
	Warning string `json:"warning,omitempty"`
}

// UpdateLeadInput is a shallow patch. Nil fields are left untouched on
// the stored lead, mirroring COALESCE-style upserts.
type UpdateLeadInput struct {
	ID       int      `json:"id"`
	Name     *string  `json:"name,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Budget   *float64 `json:"budget,omitempty"`
	Source   *string  `json:"source,omitempty"`
	Status   *string  `json:"status,omitempty"`
	Score    *int     `json:"score,omitempty"`
	Company  *string  `json:"company,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
	Assignee *string  `json:"assignee,omitempty"`
}

type AddActivityInput struct {
	Type        string `json:"type"`
	Description string `json:"description"`

	// Date defaults to today when empty.
	Date string `json:"date,omitempty"`
}
