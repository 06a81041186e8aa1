package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
	"github.com/xavierca1/leadflow/internal/usecase"
)

type LeadHandler struct {
	store       *usecase.LeadStore
	rateLimiter *RateLimiter
}

func NewLeadHandler(store *usecase.LeadStore) *LeadHandler {
	return &LeadHandler{
		store:       store,
		rateLimiter: NewRateLimiter(30, time.Minute), // 30 creates/min per IP
	}
}

type createLeadResponse struct {
	Success bool        `json:"success"`
	Lead    entity.Lead `json:"lead"`
	Warning string      `json:"warning,omitempty"`
}

type mutationResponse struct {
	Success bool `json:"success"`
}

// HandleList serves GET /leads?q= — the filtered list view.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads := h.store.Filter(r.URL.Query().Get("q"))
	if leads == nil {
		leads = []entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

// HandleCreate serves POST /leads. The lead always lands in the local
// store; a failed backend persist rides along as a warning in the 201.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests. Please try again later."})
		return
	}

	var input usecase.AddLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	out, err := h.store.AddLead(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated(out.Lead.Source)
	if out.Warning != "" {
		middleware.RecordIntegrationError("scoring")
	}

	writeJSON(w, http.StatusCreated, createLeadResponse{
		Success: true,
		Lead:    out.Lead,
		Warning: out.Warning,
	})
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	lead, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// HandleUpdate serves PUT /leads/{id}: a shallow patch, absent fields
// keep their stored values.
func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}
	input.ID = id

	lead, err := h.store.UpdateLead(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleAddActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	var input usecase.AddActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	activity, err := h.store.AddActivity(id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (h *LeadHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	if err := h.store.AddNote(id, input.Text); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mutationResponse{Success: true})
}

// HandleScore serves GET /leads/{id}/score — a passthrough to the
// scoring backend, keyed by the lead's email. The AI score is looked up
// on demand and never written back into the stored lead.
func (h *LeadHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}

	lead, err := h.store.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.store.Gateway == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "scoring backend not configured"})
		return
	}

	result, err := h.store.Gateway.ScoreLead(r.Context(), lead.Email)
	if err != nil {
		middleware.RecordIntegrationError("scoring")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	if result.LeadScore != "" {
		middleware.RecordScoringResult(result.LeadScore)
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSync serves POST /leads/sync: refresh the store from the
// backend. Per the store contract this cannot fail — on backend trouble
// the previous contents come back unchanged.
func (h *LeadHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.FetchAndMergeRemote(r.Context()))
}

func leadID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lead id"})
		return 0, false
	}
	return id, true
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
