package scoring

// CreateLeadInput is the payload for POST /add_lead/.
type CreateLeadInput struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Budget float64 `json:"budget"`
}

// RemoteLead is one entry of GET /all_leads/. The backend ships it as a
// positional 4-tuple [id, name, email, budget]; decodeRemoteLead assigns
// the field names.
type RemoteLead struct {
	ID     int
	Name   string
	Email  string
	Budget float64
}

// ScoreResult is the answer of GET /score_lead/{email}. Exactly one of
// LeadScore ("Hot", "Warm", "Cold") or Message is set.
type ScoreResult struct {
	LeadScore string `json:"lead_score,omitempty"`
	Message   string `json:"message,omitempty"`
}

type addLeadResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
