package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
	"github.com/xavierca1/leadflow/internal/infra/integration/scoring"
)

// ScoreLookup is the slice of the scoring client the worker needs.
type ScoreLookup interface {
	ScoreLead(ctx context.Context, email string) (*scoring.ScoreResult, error)
}

// AlertSender notifies the team about a hot lead. May be nil when SMTP
// is not configured.
type AlertSender interface {
	SendHotLeadAlert(to, leadName, company, score string) error
}

// Worker consumes lead.created events, fetches the AI score for each new
// lead and raises an email alert when the backend says "Hot". It never
// touches the store: scoring results are advisory, not blended into the
// synthetic score field.
type Worker struct {
	Channel *amqp.Channel
	Scoring ScoreLookup
	Alerts  AlertSender
	AlertTo string
}

func NewWorker(ch *amqp.Channel, scoreClient ScoreLookup, alerts AlertSender, alertTo string) *Worker {
	return &Worker{
		Channel: ch,
		Scoring: scoreClient,
		Alerts:  alerts,
		AlertTo: alertTo,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Malformed lead.created event: %s", err)
				// Poison message, reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			if err := w.processEvent(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Scoring failed for %s: %s", payload.Email, err)
				middleware.RecordIntegrationError("scoring")
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processEvent(ctx context.Context, payload LeadCreatedPayload) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	result, err := w.Scoring.ScoreLead(ctx, payload.Email)
	if err != nil {
		return err
	}

	if result.LeadScore == "" {
		// Backend had no score for this lead yet; nothing to do.
		log.Printf("⚙️ [WORKER] No score for %s: %s", payload.Email, result.Message)
		return nil
	}

	middleware.RecordScoringResult(result.LeadScore)
	log.Printf("⚙️ [WORKER] %s scored %s", payload.Email, result.LeadScore)

	if result.LeadScore == "Hot" && w.Alerts != nil && w.AlertTo != "" {
		if err := w.Alerts.SendHotLeadAlert(w.AlertTo, payload.Name, payload.Company, result.LeadScore); err != nil {
			// The score was delivered; a lost alert email is not worth a requeue.
			log.Printf("❌ [WORKER] Hot lead alert email failed: %s", err)
			middleware.RecordIntegrationError("mail")
		} else {
			middleware.RecordHotLeadAlert()
		}
	}

	return nil
}
