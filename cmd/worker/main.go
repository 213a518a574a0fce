package main

import (
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/hypetribe/engagement-backend/internal/config"
	"github.com/hypetribe/engagement-backend/internal/db"
	"github.com/hypetribe/engagement-backend/internal/engine"
	"github.com/hypetribe/engagement-backend/internal/notify"
	"github.com/hypetribe/engagement-backend/internal/queue"
	"github.com/hypetribe/engagement-backend/internal/repository"
	"github.com/hypetribe/engagement-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	db.Init(cfg.DatabaseURL)

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	participantRepo := &repository.ParticipantRepository{DB: db.DB}
	assignmentRepo := &repository.AssignmentRepository{DB: db.DB}
	cooldownRepo := &repository.CooldownRepository{DB: db.DB}

	assignmentService := &service.AssignmentService{
		CampaignRepo:    campaignRepo,
		ParticipantRepo: participantRepo,
		AssignmentRepo:  assignmentRepo,
		CooldownRepo:    cooldownRepo,
		Engine:          engine.New(),
		Notifier:        &notify.LogNotifier{},
		NotifyDelay:     cfg.NotifyDelay,
	}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.AmqpURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicAssignments, // name
		true,                   // durable
		false,                  // delete when unused
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job queue.AssignmentJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Println("Invalid job:", err)
				d.Ack(false)
				continue
			}

			log.Println("📩 Processing assignment job", job.JobID, "for campaign", job.CampaignID)

			result, err := assignmentService.BuildAssignments(job.CampaignID)
			if err != nil {
				log.Println("Failed to build assignments:", err)
				// Retry logic: requeue up to 3 times
				var retryCount int
				if d.Headers["x-retry-count"] != nil {
					retryCount, _ = d.Headers["x-retry-count"].(int)
				}
				if retryCount < 3 {
					d.Nack(false, true) // requeue
					continue
				}
			} else {
				log.Println("✅ Campaign", job.CampaignID, "assigned", result.Assigned, "participants")
			}

			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for assignment jobs...")
	<-forever
}
