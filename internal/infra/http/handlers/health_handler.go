package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadflow/internal/usecase"
)

type HealthHandler struct {
	Store     *usecase.LeadStore
	RabbitMQ  *amqp091.Connection
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Leads        int               `json:"leads"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(store *usecase.LeadStore, rabbitMQ *amqp091.Connection) *HealthHandler {
	return &HealthHandler{
		Store:     store,
		RabbitMQ:  rabbitMQ,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// Check scoring backend config. The store works without it, every
	// remote call is advisory.
	if os.Getenv("SCORING_API_URL") != "" {
		deps["scoring"] = "configured"
	} else {
		deps["scoring"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Leads:        h.Store.Count(),
		Dependencies: deps,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}
