package usecase_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/integration/scoring"
	"github.com/xavierca1/leadflow/internal/infra/queue"
	"github.com/xavierca1/leadflow/internal/usecase"
)

// MockScoringGateway
type MockScoringGateway struct {
	mock.Mock
}

func (m *MockScoringGateway) CreateLead(ctx context.Context, input scoring.CreateLeadInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockScoringGateway) ScoreLead(ctx context.Context, email string) (*scoring.ScoreResult, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoring.ScoreResult), args.Error(1)
}

func (m *MockScoringGateway) ListLeads(ctx context.Context) ([]scoring.RemoteLead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.RemoteLead), args.Error(1)
}

// chanProducer records published events so tests can wait for the
// fire-and-forget goroutine.
type chanProducer struct {
	events chan queue.LeadCreatedPayload
}

func newChanProducer() *chanProducer {
	return &chanProducer{events: make(chan queue.LeadCreatedPayload, 8)}
}

func (p *chanProducer) PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error {
	p.events <- payload
	return nil
}

var fixedNow = func() time.Time {
	return time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
}

func newTestStore(gateway usecase.ScoringGateway, producer usecase.QueueProducerInterface) *usecase.LeadStore {
	return usecase.NewLeadStore(gateway, producer, rand.New(rand.NewSource(1)), fixedNow)
}

func strPtr(s string) *string { return &s }

func TestStoreSeedsDemoData(t *testing.T) {
	store := newTestStore(nil, nil)

	leads := store.Filter("")
	assert.Len(t, leads, 8)
	assert.Equal(t, "John Smith", leads[0].Name)
	assert.Len(t, leads[0].Activities, 2)

	emails := make(map[string]bool)
	for _, l := range leads {
		assert.False(t, emails[l.Email], "duplicate email %s in seed", l.Email)
		emails[l.Email] = true
	}
}

func TestAddLeadDefaultsAndPrepends(t *testing.T) {
	mockGateway := new(MockScoringGateway)
	mockGateway.On("CreateLead", mock.Anything, mock.Anything).Return(nil)
	store := newTestStore(mockGateway, nil)

	out, err := store.AddLead(context.Background(), usecase.AddLeadInput{
		Name: "Zed", Email: "zed@x.com", Budget: 1000,
	})
	assert.NoError(t, err)
	assert.Empty(t, out.Warning)

	leads := store.Filter("")
	assert.Len(t, leads, 9)
	assert.Equal(t, "Zed", leads[0].Name)
	assert.GreaterOrEqual(t, leads[0].Score, 70)
	assert.LessOrEqual(t, leads[0].Score, 99)
	assert.Equal(t, entity.StatusNew, leads[0].Status)
	assert.Equal(t, entity.DefaultSource, leads[0].Source)
	assert.Equal(t, "2024-05-15", leads[0].LastContact)
	assert.NotNil(t, leads[0].Activities)
	assert.Empty(t, leads[0].Activities)

	mockGateway.AssertExpectations(t)
}

func TestAddLeadKeepsLocalOnBackendFailure(t *testing.T) {
	mockGateway := new(MockScoringGateway)
	mockGateway.On("CreateLead", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	store := newTestStore(mockGateway, nil)

	out, err := store.AddLead(context.Background(), usecase.AddLeadInput{
		Name: "Zed", Email: "zed@x.com", Budget: 1000,
	})
	assert.NoError(t, err)
	assert.Contains(t, out.Warning, "connection refused")
	assert.Equal(t, 9, store.Count())
}

func TestAddLeadValidationLeavesStoreUnchanged(t *testing.T) {
	store := newTestStore(nil, nil)

	_, err := store.AddLead(context.Background(), usecase.AddLeadInput{Email: "zed@x.com"})
	assert.Error(t, err)
	assert.True(t, usecase.IsValidation(err))

	_, err = store.AddLead(context.Background(), usecase.AddLeadInput{Name: "Zed"})
	assert.Error(t, err)

	assert.Equal(t, 8, store.Count())
}

func TestAddLeadDistinctEmailsNoDuplicates(t *testing.T) {
	mockGateway := new(MockScoringGateway)
	mockGateway.On("CreateLead", mock.Anything, mock.Anything).Return(nil)
	store := newTestStore(mockGateway, nil)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := store.AddLead(context.Background(), usecase.AddLeadInput{
			Name: "Lead " + email, Email: email, Budget: 10,
		})
		assert.NoError(t, err)
	}

	leads := store.Filter("")
	assert.Len(t, leads, 11)

	seen := make(map[string]bool)
	ids := make(map[int]bool)
	for _, l := range leads {
		assert.False(t, seen[l.Email])
		assert.False(t, ids[l.ID])
		seen[l.Email] = true
		ids[l.ID] = true
	}
}

func TestAddLeadPublishesEvent(t *testing.T) {
	mockGateway := new(MockScoringGateway)
	mockGateway.On("CreateLead", mock.Anything, mock.Anything).Return(nil)
	producer := newChanProducer()
	store := newTestStore(mockGateway, producer)

	out, err := store.AddLead(context.Background(), usecase.AddLeadInput{
		Name: "Zed", Email: "zed@x.com", Budget: 1000, Company: "ZedCo",
	})
	assert.NoError(t, err)

	select {
	case event := <-producer.events:
		assert.Equal(t, out.Lead.ID, event.LeadID)
		assert.Equal(t, "zed@x.com", event.Email)
		assert.Equal(t, "ZedCo", event.Company)
		assert.NotEmpty(t, event.EventID)
	case <-time.After(2 * time.Second):
		t.Fatal("lead.created event never published")
	}
}

func TestFetchAndMergeRemoteWins(t *testing.T) {
	mockGateway := new(MockScoringGateway)
	mockGateway.On("ListLeads", mock.Anything).Return([]scoring.RemoteLead{
		{ID: 101, Name: "John Remote", Email: "john@example.com", Budget: 9000},
		{ID: 102, Name: "Nina Fields", Email: "nina@x.com", Budget: 5000},
	}, nil)
	store := newTestStore(mockGateway, nil)

	merged := store.FetchAndMergeRemote(context.Background())

	// 2 remote + 7 locals whose emails did not collide.
	assert.Len(t, merged, 9)
	assert.Equal(t, "John Remote", merged[0].Name)
	assert.Equal(t, "Nina Fields", merged[1].Name)

	johns := 0
	for _, l := range merged {
		if l.Email == "john@example.com" {
			johns++
			assert.Equal(t, "John Remote", l.Name)
			assert.Equal(t, 9000.0, l.Budget)
			assert.Equal(t, entity.StatusNew, l.Status)
		}
	}
	assert.Equal(t, 1, johns)
}

func TestFetchAndMergeRemoteFailureKeepsCache(t *testing.T) {
	mockGateway := new(MockScoringGateway)
	mockGateway.On("ListLeads", mock.Anything).Return(nil, errors.New("timeout"))
	store := newTestStore(mockGateway, nil)

	leads := store.FetchAndMergeRemote(context.Background())
	assert.Len(t, leads, 8)
	assert.Equal(t, "John Smith", leads[0].Name)
}

func TestFetchAndMergeAssignsFreshLocalIDs(t *testing.T) {
	mockGateway := new(MockScoringGateway)
	mockGateway.On("ListLeads", mock.Anything).Return([]scoring.RemoteLead{
		{ID: 500, Name: "Big ID", Email: "big@x.com", Budget: 1},
	}, nil)
	mockGateway.On("CreateLead", mock.Anything, mock.Anything).Return(nil)
	store := newTestStore(mockGateway, nil)

	store.FetchAndMergeRemote(context.Background())

	out, err := store.AddLead(context.Background(), usecase.AddLeadInput{
		Name: "After Merge", Email: "after@x.com", Budget: 1,
	})
	assert.NoError(t, err)
	assert.Greater(t, out.Lead.ID, 500)
}

func TestAddActivityPrependsAndBumpsLastContact(t *testing.T) {
	store := newTestStore(nil, nil)

	activity, err := store.AddActivity(1, usecase.AddActivityInput{
		Type: entity.ActivityCall, Description: "Follow-up call",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, activity.LeadID)
	assert.Equal(t, "2024-05-15", activity.Date)

	lead, err := store.GetByID(1)
	assert.NoError(t, err)
	assert.Equal(t, "Follow-up call", lead.Activities[0].Description)
	assert.Len(t, lead.Activities, 3)
	assert.Equal(t, "2024-05-15", lead.LastContact)
}

func TestAddNoteConcatenatesWithBlankLine(t *testing.T) {
	store := newTestStore(nil, nil)

	// Lead 3 starts with empty notes.
	assert.NoError(t, store.AddNote(3, "hello"))
	assert.NoError(t, store.AddNote(3, "world"))

	lead, err := store.GetByID(3)
	assert.NoError(t, err)
	assert.Equal(t, "hello\n\nworld", lead.Notes)
	assert.Equal(t, "2024-05-15", lead.LastContact)
}

func TestUpdateLeadShallowMerge(t *testing.T) {
	store := newTestStore(nil, nil)

	before, err := store.GetByID(2)
	assert.NoError(t, err)

	updated, err := store.UpdateLead(usecase.UpdateLeadInput{
		ID:     2,
		Status: strPtr(entity.StatusQualified),
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.StatusQualified, updated.Status)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Email, updated.Email)
	assert.Equal(t, before.Budget, updated.Budget)
	assert.Equal(t, before.Score, updated.Score)
	assert.Equal(t, before.Company, updated.Company)
	assert.Equal(t, before.LastContact, updated.LastContact)
}

func TestMutationsWithUnknownIDFail(t *testing.T) {
	store := newTestStore(nil, nil)
	before := store.Filter("")

	_, err := store.UpdateLead(usecase.UpdateLeadInput{ID: 999, Status: strPtr(entity.StatusClosed)})
	assert.EqualError(t, err, "Lead not found")

	_, err = store.AddActivity(999, usecase.AddActivityInput{Description: "x"})
	assert.EqualError(t, err, "Lead not found")

	err = store.AddNote(999, "x")
	assert.EqualError(t, err, "Lead not found")

	_, err = store.GetByID(999)
	assert.EqualError(t, err, "Lead not found")

	assert.Equal(t, before, store.Filter(""))
}

func TestFilterMatchesAcrossFields(t *testing.T) {
	store := newTestStore(nil, nil)

	assert.Len(t, store.Filter("acme"), 1)          // company
	assert.Len(t, store.Filter("EMILY"), 1)         // name, case-insensitive
	assert.Len(t, store.Filter("referral"), 1)      // source
	assert.Len(t, store.Filter("qualified"), 3)     // status: Qualified x2 + Disqualified
	assert.Len(t, store.Filter("example.com"), 8)   // email domain
	assert.Empty(t, store.Filter("no-such-thing"))
}

func TestLeadsByStatus(t *testing.T) {
	store := newTestStore(nil, nil)

	leads := store.LeadsByStatus(entity.StatusNew)
	assert.Len(t, leads, 3)
	for _, l := range leads {
		assert.Equal(t, entity.StatusNew, l.Status)
	}
}

func TestStatusFreeTransitions(t *testing.T) {
	store := newTestStore(nil, nil)

	// No transition graph: Closed straight back to New is allowed.
	_, err := store.UpdateLead(usecase.UpdateLeadInput{ID: 5, Status: strPtr(entity.StatusClosed)})
	assert.NoError(t, err)
	_, err = store.UpdateLead(usecase.UpdateLeadInput{ID: 5, Status: strPtr(entity.StatusNew)})
	assert.NoError(t, err)

	lead, _ := store.GetByID(5)
	assert.Equal(t, entity.StatusNew, lead.Status)
}

func TestSnapshotIsACopy(t *testing.T) {
	store := newTestStore(nil, nil)

	leads := store.Snapshot()
	leads[0].Name = "Mutated"
	leads[0].Activities[0].Description = "Mutated"

	fresh, err := store.GetByID(leads[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, "John Smith", fresh.Name)
	assert.Equal(t, "Sent welcome email", fresh.Activities[0].Description)
}
