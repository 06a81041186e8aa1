package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadflow/internal/infra/http/handlers"
	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
	"github.com/xavierca1/leadflow/internal/infra/integration/scoring"
	"github.com/xavierca1/leadflow/internal/infra/mail"
	"github.com/xavierca1/leadflow/internal/infra/queue"
	"github.com/xavierca1/leadflow/internal/usecase"
)

func main() {
	godotenv.Load()

	// 1. Scoring backend client
	scoringClient := scoring.NewClient(envOr("SCORING_API_URL", "http://localhost:8000"))

	// 2. RabbitMQ (optional: unset RABBITMQ_HOST runs without eventing)
	var producer usecase.QueueProducerInterface
	var rabbitConn *amqp.Connection
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			envOr("RABBITMQ_USER", "guest"),
			envOr("RABBITMQ_PASS", "guest"),
			host,
			envOr("RABBITMQ_PORT", "5672"),
		)
		if err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, running without lead events: %v", err)
		} else {
			defer rabbitMQ.Conn.Close()
			defer rabbitMQ.Ch.Close()
			rabbitConn = rabbitMQ.Conn
			producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

			// Hot lead alerts need SMTP; the worker runs without them.
			var alerts queue.AlertSender
			if os.Getenv("MAIL_HOST") != "" {
				alerts = mail.NewEmailSender(
					os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
				)
			}
			worker := queue.NewWorker(rabbitMQ.Ch, scoringClient, alerts, os.Getenv("ALERT_EMAIL_TO"))
			go worker.Start(queue.QueueName)
		}
	}

	// 3. The store, seeded with demo leads
	store := usecase.NewLeadStore(scoringClient, producer, nil, nil)

	// Warm the cache from the backend; on failure the seed data serves.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		store.FetchAndMergeRemote(ctx)
	}()

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(store)
	analyticsHandler := handlers.NewAnalyticsHandler(store)
	teamHandler := handlers.NewTeamHandler()
	healthHandler := handlers.NewHealthHandler(store, rabbitConn)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(envOr("CORS_ORIGINS", "http://localhost:5173,*"), ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/leads", leadHandler.HandleList)
	r.Post("/leads", leadHandler.HandleCreate)
	r.Post("/leads/sync", leadHandler.HandleSync)
	r.Get("/leads/{id}", leadHandler.HandleGet)
	r.Put("/leads/{id}", leadHandler.HandleUpdate)
	r.Post("/leads/{id}/activities", leadHandler.HandleAddActivity)
	r.Post("/leads/{id}/notes", leadHandler.HandleAddNote)
	r.Get("/leads/{id}/score", leadHandler.HandleScore)

	r.Get("/pipeline", analyticsHandler.HandlePipeline)
	r.Get("/analytics/sources", analyticsHandler.HandleSources)
	r.Get("/analytics/performance", analyticsHandler.HandlePerformance)
	r.Get("/analytics/summary", analyticsHandler.HandleSummary)

	r.Get("/team", teamHandler.HandleList)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 LeadFlow API listening on %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
