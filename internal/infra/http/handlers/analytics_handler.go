package handlers

import (
	"net/http"

	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/usecase"
)

type AnalyticsHandler struct {
	store *usecase.LeadStore
}

func NewAnalyticsHandler(store *usecase.LeadStore) *AnalyticsHandler {
	return &AnalyticsHandler{store: store}
}

// HandleSources feeds the lead-source pie chart.
func (h *AnalyticsHandler) HandleSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.AggregateBySource())
}

// HandlePerformance feeds the 7-month conversion chart.
func (h *AnalyticsHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.AggregateMonthlyPerformance())
}

// HandleSummary feeds the dashboard stat cards.
func (h *AnalyticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.AggregateSummary())
}

type pipelineColumn struct {
	Status string        `json:"status"`
	Leads  []entity.Lead `json:"leads"`
}

// HandlePipeline serves the kanban board: one column per stage in board
// order, each holding its leads in store order.
func (h *AnalyticsHandler) HandlePipeline(w http.ResponseWriter, r *http.Request) {
	columns := make([]pipelineColumn, 0, len(entity.Statuses()))
	for _, status := range entity.Statuses() {
		leads := h.store.LeadsByStatus(status)
		if leads == nil {
			leads = []entity.Lead{}
		}
		columns = append(columns, pipelineColumn{Status: status, Leads: leads})
	}
	writeJSON(w, http.StatusOK, columns)
}
