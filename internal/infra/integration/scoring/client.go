// Package scoring talks to the external lead scoring backend. Every call
// here is advisory from the store's point of view: callers log failures
// and keep going with local state.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateLead persists a lead on the backend. A well-formed response that
// carries an "error" field still counts as a failure here; the caller
// decides how fatal that is.
func (c *Client) CreateLead(ctx context.Context, input CreateLeadInput) error {
	jsonBody, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/add_lead/", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scoring backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("scoring backend rejected lead (status %d): %s", resp.StatusCode, string(body))
	}

	var response addLeadResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("decode add_lead response: %w", err)
	}
	if response.Error != "" {
		return fmt.Errorf("scoring backend error: %s", response.Error)
	}

	return nil
}

// ScoreLead asks the backend for the AI score of a lead, keyed by email.
func (c *Client) ScoreLead(ctx context.Context, email string) (*ScoreResult, error) {
	endpoint := c.baseURL + "/score_lead/" + url.PathEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoring backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("score_lead failed (status %d): %s", resp.StatusCode, string(body))
	}

	var result ScoreResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode score_lead response: %w", err)
	}

	return &result, nil
}

// ListLeads fetches every lead known to the backend. The wire shape is
// {"leads": [[id, name, email, budget], ...]}.
func (c *Client) ListLeads(ctx context.Context) ([]RemoteLead, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/all_leads/", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoring backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("all_leads failed (status %d): %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Leads []json.RawMessage `json:"leads"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode all_leads response: %w", err)
	}

	leads := make([]RemoteLead, 0, len(payload.Leads))
	for i, raw := range payload.Leads {
		lead, err := decodeRemoteLead(raw)
		if err != nil {
			return nil, fmt.Errorf("lead tuple %d: %w", i, err)
		}
		leads = append(leads, lead)
	}

	return leads, nil
}

// decodeRemoteLead names the positions of a backend lead tuple. A wrong
// arity or a wrong element type is a decode error, not a silent zero.
func decodeRemoteLead(raw json.RawMessage) (RemoteLead, error) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return RemoteLead{}, fmt.Errorf("not an array: %w", err)
	}
	if len(tuple) != 4 {
		return RemoteLead{}, fmt.Errorf("has %d elements, want 4", len(tuple))
	}

	var lead RemoteLead
	if err := json.Unmarshal(tuple[0], &lead.ID); err != nil {
		return RemoteLead{}, fmt.Errorf("id: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &lead.Name); err != nil {
		return RemoteLead{}, fmt.Errorf("name: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &lead.Email); err != nil {
		return RemoteLead{}, fmt.Errorf("email: %w", err)
	}
	if err := json.Unmarshal(tuple[3], &lead.Budget); err != nil {
		return RemoteLead{}, fmt.Errorf("budget: %w", err)
	}

	return lead, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LeadFlow/1.0")
}
