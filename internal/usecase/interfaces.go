package usecase

import (
	"context"

	"github.com/xavierca1/leadflow/internal/infra/integration/scoring"
	"github.com/xavierca1/leadflow/internal/infra/queue"
)

// ScoringGateway is the contract toward the external scoring backend.
type ScoringGateway interface {
	CreateLead(ctx context.Context, input scoring.CreateLeadInput) error
	ScoreLead(ctx context.Context, email string) (*scoring.ScoreResult, error)
	ListLeads(ctx context.Context) ([]scoring.RemoteLead, error)
}

type QueueProducerInterface interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}
