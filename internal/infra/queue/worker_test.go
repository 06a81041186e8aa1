package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/leadflow/internal/infra/integration/scoring"
)

type stubScoreLookup struct {
	result *scoring.ScoreResult
	err    error
	asked  string
}

func (s *stubScoreLookup) ScoreLead(ctx context.Context, email string) (*scoring.ScoreResult, error) {
	s.asked = email
	return s.result, s.err
}

type stubAlerts struct {
	sent []string
	err  error
}

func (s *stubAlerts) SendHotLeadAlert(to, leadName, company, score string) error {
	s.sent = append(s.sent, leadName)
	return s.err
}

func TestProcessEventHotLeadSendsAlert(t *testing.T) {
	scores := &stubScoreLookup{result: &scoring.ScoreResult{LeadScore: "Hot"}}
	alerts := &stubAlerts{}
	w := NewWorker(nil, scores, alerts, "sales@leadflow.app")

	err := w.processEvent(context.Background(), LeadCreatedPayload{
		EventID: "ev-1", LeadID: 9, Name: "Zed", Email: "zed@x.com", Company: "ZedCo",
	})
	assert.NoError(t, err)
	assert.Equal(t, "zed@x.com", scores.asked)
	assert.Equal(t, []string{"Zed"}, alerts.sent)
}

func TestProcessEventColdLeadNoAlert(t *testing.T) {
	scores := &stubScoreLookup{result: &scoring.ScoreResult{LeadScore: "Cold"}}
	alerts := &stubAlerts{}
	w := NewWorker(nil, scores, alerts, "sales@leadflow.app")

	err := w.processEvent(context.Background(), LeadCreatedPayload{Email: "zed@x.com"})
	assert.NoError(t, err)
	assert.Empty(t, alerts.sent)
}

func TestProcessEventNoScoreYet(t *testing.T) {
	scores := &stubScoreLookup{result: &scoring.ScoreResult{Message: "no history"}}
	alerts := &stubAlerts{}
	w := NewWorker(nil, scores, alerts, "sales@leadflow.app")

	err := w.processEvent(context.Background(), LeadCreatedPayload{Email: "zed@x.com"})
	assert.NoError(t, err)
	assert.Empty(t, alerts.sent)
}

func TestProcessEventScoringFailurePropagates(t *testing.T) {
	scores := &stubScoreLookup{err: errors.New("backend down")}
	w := NewWorker(nil, scores, nil, "")

	err := w.processEvent(context.Background(), LeadCreatedPayload{Email: "zed@x.com"})
	assert.ErrorContains(t, err, "backend down")
}

func TestProcessEventAlertFailureStillAcks(t *testing.T) {
	scores := &stubScoreLookup{result: &scoring.ScoreResult{LeadScore: "Hot"}}
	alerts := &stubAlerts{err: errors.New("smtp down")}
	w := NewWorker(nil, scores, alerts, "sales@leadflow.app")

	// A lost alert email must not requeue the event.
	err := w.processEvent(context.Background(), LeadCreatedPayload{Name: "Zed", Email: "zed@x.com"})
	assert.NoError(t, err)
}

func TestProcessEventNoAlertTargetConfigured(t *testing.T) {
	scores := &stubScoreLookup{result: &scoring.ScoreResult{LeadScore: "Hot"}}
	alerts := &stubAlerts{}
	w := NewWorker(nil, scores, alerts, "")

	err := w.processEvent(context.Background(), LeadCreatedPayload{Email: "zed@x.com"})
	assert.NoError(t, err)
	assert.Empty(t, alerts.sent)
}
