package usecase

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/integration/scoring"
	"github.com/xavierca1/leadflow/internal/infra/queue"
	"github.com/xavierca1/leadflow/internal/seed"
)

// LeadStore is the authoritative in-process set of leads. It is seeded
// with demo data, refreshed from the scoring backend by
// FetchAndMergeRemote, and mutated by the add/update/activity/note
// operations. Its lifetime is the process; nothing is persisted.
//
// The remote side is always advisory: no operation lets a backend
// failure empty the store or roll back a local write.
type LeadStore struct {
	mu             sync.RWMutex
	leads          []entity.Lead
	nextLeadID     int
	nextActivityID int

	Gateway ScoringGateway
	Queue   QueueProducerInterface // may be nil

	rng *rand.Rand
	now func() time.Time
}

// NewLeadStore builds a store pre-populated with the demo leads. Pass a
// fixed rng/now to pin synthetic scores and dates in tests; nil means
// time-seeded randomness and the wall clock.
func NewLeadStore(gateway ScoringGateway, producer QueueProducerInterface, rng *rand.Rand, now func() time.Time) *LeadStore {
	return NewLeadStoreWithLeads(seed.Leads(), gateway, producer, rng, now)
}

// NewLeadStoreWithLeads is NewLeadStore with caller-supplied initial
// contents instead of the demo seed.
func NewLeadStoreWithLeads(leads []entity.Lead, gateway ScoringGateway, producer QueueProducerInterface, rng *rand.Rand, now func() time.Time) *LeadStore {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}

	s := &LeadStore{
		leads:   leads,
		Gateway: gateway,
		Queue:   producer,
		rng:     rng,
		now:     now,
	}
	s.renumberLocked()
	return s
}

// FetchAndMergeRemote pulls the backend lead list, fills in the CRM
// fields the backend does not track, and makes the merged set the new
// store contents. Backend leads win on email collision; local leads with
// unseen emails are appended after them.
//
// Any failure keeps the current contents and is logged, never returned:
// the list view must survive a dead backend.
func (s *LeadStore) FetchAndMergeRemote(ctx context.Context) []entity.Lead {
	if s.Gateway == nil {
		return s.Snapshot()
	}

	remotes, err := s.Gateway.ListLeads(ctx)
	if err != nil {
		log.Printf("lead sync failed, keeping cached leads: %v", err)
		return s.Snapshot()
	}

	s.mu.Lock()
	merged := make([]entity.Lead, 0, len(remotes)+len(s.leads))
	seen := make(map[string]bool, len(remotes))
	for _, r := range remotes {
		merged = append(merged, s.synthesizeLocked(r))
		seen[r.Email] = true
	}
	for _, l := range s.leads {
		if !seen[l.Email] {
			merged = append(merged, l)
		}
	}
	s.leads = merged
	s.renumberLocked()
	s.mu.Unlock()

	return s.Snapshot()
}

// AddLead validates the draft, tries to persist it on the backend, and
// always inserts a fully defaulted lead at the front of the store. A
// backend failure comes back as Output.Warning, not as an error.
func (s *LeadStore) AddLead(ctx context.Context, input AddLeadInput) (*AddLeadOutput, error) {
	if errs := ValidateAddLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	var warning string
	if s.Gateway != nil {
		err := s.Gateway.CreateLead(ctx, scoring.CreateLeadInput{
			Name:   input.Name,
			Email:  input.Email,
			Budget: input.Budget,
		})
		if err != nil {
			log.Printf("backend persist failed for %s, keeping lead locally: %v", input.Email, err)
			warning = "lead saved locally only: " + err.Error()
		}
	}

	s.mu.Lock()
	lead := entity.Lead{
		ID:          s.nextLeadID,
		Name:        input.Name,
		Email:       input.Email,
		Budget:      input.Budget,
		Source:      input.Source,
		Status:      input.Status,
		Score:       s.syntheticScoreLocked(),
		Company:     input.Company,
		Assignee:    input.Assignee,
		LastContact: s.today(),
		Activities:  []entity.Activity{},
	}
	if lead.Status == "" {
		lead.Status = entity.StatusNew
	}
	if lead.Source == "" {
		lead.Source = entity.DefaultSource
	}
	s.nextLeadID++
	s.leads = append([]entity.Lead{lead}, s.leads...)
	s.mu.Unlock()

	if s.Queue != nil {
		payload := queue.LeadCreatedPayload{
			EventID: uuid.New().String(),
			LeadID:  lead.ID,
			Name:    lead.Name,
			Email:   lead.Email,
			Company: lead.Company,
			Budget:  lead.Budget,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Queue.PublishLeadCreated(ctx, payload); err != nil {
				log.Printf("lead.created publish failed for %s: %v", payload.Email, err)
			}
		}()
	}

	return &AddLeadOutput{Lead: lead.Clone(), Warning: warning}, nil
}

// UpdateLead shallow-merges the non-nil patch fields over the stored
// lead. Absent fields keep their previous values.
func (s *LeadStore) UpdateLead(input UpdateLeadInput) (entity.Lead, error) {
	if errs := ValidateUpdateLeadInput(input); len(errs) > 0 {
		return entity.Lead{}, validationFailed(errs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(input.ID)
	if i < 0 {
		return entity.Lead{}, ErrLeadNotFound()
	}

	lead := &s.leads[i]
	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Budget != nil {
		lead.Budget = *input.Budget
	}
	if input.Source != nil {
		lead.Source = *input.Source
	}
	if input.Status != nil {
		lead.Status = *input.Status
	}
	if input.Score != nil {
		lead.Score = *input.Score
	}
	if input.Company != nil {
		lead.Company = *input.Company
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}
	if input.Assignee != nil {
		lead.Assignee = *input.Assignee
	}

	return lead.Clone(), nil
}

// AddActivity prepends a new activity (newest first) and refreshes the
// lead's lastContact.
func (s *LeadStore) AddActivity(leadID int, input AddActivityInput) (entity.Activity, error) {
	if errs := ValidateAddActivityInput(input); len(errs) > 0 {
		return entity.Activity{}, validationFailed(errs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(leadID)
	if i < 0 {
		return entity.Activity{}, ErrLeadNotFound()
	}

	activity := entity.Activity{
		ID:          s.nextActivityID,
		LeadID:      leadID,
		Date:        input.Date,
		Type:        input.Type,
		Description: input.Description,
	}
	if activity.Date == "" {
		activity.Date = s.today()
	}
	if activity.Type == "" {
		activity.Type = entity.ActivityNote
	}
	s.nextActivityID++

	lead := &s.leads[i]
	lead.Activities = append([]entity.Activity{activity}, lead.Activities...)
	lead.LastContact = s.today()

	return activity, nil
}

// AddNote appends text to the lead's notes, blank-line separated, and
// refreshes lastContact.
func (s *LeadStore) AddNote(leadID int, text string) error {
	if strings.TrimSpace(text) == "" {
		return validationFailed([]ValidationError{{"text", "is required"}})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(leadID)
	if i < 0 {
		return ErrLeadNotFound()
	}

	lead := &s.leads[i]
	if lead.Notes == "" {
		lead.Notes = text
	} else {
		lead.Notes += "\n\n" + text
	}
	lead.LastContact = s.today()

	return nil
}

func (s *LeadStore) GetByID(id int) (entity.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return entity.Lead{}, ErrLeadNotFound()
	}
	return s.leads[i].Clone(), nil
}

// Filter returns leads whose name, email, company, source or status
// contains the term, case-insensitively. An empty term returns the full
// set in store order.
func (s *LeadStore) Filter(term string) []entity.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if term == "" {
		return s.snapshotLocked()
	}

	t := strings.ToLower(term)
	var out []entity.Lead
	for _, l := range s.leads {
		if strings.Contains(strings.ToLower(l.Name), t) ||
			strings.Contains(strings.ToLower(l.Email), t) ||
			strings.Contains(strings.ToLower(l.Company), t) ||
			strings.Contains(strings.ToLower(l.Source), t) ||
			strings.Contains(strings.ToLower(l.Status), t) {
			out = append(out, l.Clone())
		}
	}
	return out
}

func (s *LeadStore) LeadsByStatus(status string) []entity.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.Lead
	for _, l := range s.leads {
		if l.Status == status {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Snapshot returns a copy of the current contents in store order.
func (s *LeadStore) Snapshot() []entity.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *LeadStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads)
}

func (s *LeadStore) snapshotLocked() []entity.Lead {
	out := make([]entity.Lead, len(s.leads))
	for i, l := range s.leads {
		out[i] = l.Clone()
	}
	return out
}

func (s *LeadStore) indexOfLocked(id int) int {
	for i := range s.leads {
		if s.leads[i].ID == id {
			return i
		}
	}
	return -1
}

// synthesizeLocked turns a bare backend tuple into a full lead with the
// documented defaults and a synthetic score.
func (s *LeadStore) synthesizeLocked(r scoring.RemoteLead) entity.Lead {
	return entity.Lead{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Budget:      r.Budget,
		Source:      entity.DefaultSource,
		Status:      entity.StatusNew,
		Score:       s.syntheticScoreLocked(),
		LastContact: s.today(),
		Activities:  []entity.Activity{},
	}
}

// syntheticScoreLocked draws the demo quality estimate, uniform in
// [70,99]. Real scoring comes from the backend and is never blended in.
func (s *LeadStore) syntheticScoreLocked() int {
	return 70 + s.rng.Intn(30)
}

func (s *LeadStore) today() string {
	return s.now().Format(entity.DateFormat)
}

// renumberLocked moves the id counters past everything currently held,
// so locally assigned ids stay unique after seeding or a merge.
func (s *LeadStore) renumberLocked() {
	maxLead, maxActivity := 0, 0
	for _, l := range s.leads {
		if l.ID > maxLead {
			maxLead = l.ID
		}
		for _, a := range l.Activities {
			if a.ID > maxActivity {
				maxActivity = a.ID
			}
		}
	}
	if s.nextLeadID <= maxLead {
		s.nextLeadID = maxLead + 1
	}
	if s.nextActivityID <= maxActivity {
		s.nextActivityID = maxActivity + 1
	}
}
