// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/hypetribe/engagement-backend/internal/config"
	"github.com/hypetribe/engagement-backend/internal/controller"
	"github.com/hypetribe/engagement-backend/internal/db"
	"github.com/hypetribe/engagement-backend/internal/engine"
	"github.com/hypetribe/engagement-backend/internal/notify"
	"github.com/hypetribe/engagement-backend/internal/onboarding"
	"github.com/hypetribe/engagement-backend/internal/queue"
	"github.com/hypetribe/engagement-backend/internal/repository"
	"github.com/hypetribe/engagement-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db.Init(cfg.DatabaseURL)
	if cfg.RunMigrations {
		if err := db.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

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

	q := queue.NewInMemoryQueue()
	queue.StartAssignmentSubscriber(q, func(campaignID int) error {
		_, err := assignmentService.BuildAssignments(campaignID)
		return err
	})

	campaignService := &service.CampaignService{
		CampaignRepo:   campaignRepo,
		AssignmentRepo: assignmentRepo,
		Queue:          q,
	}

	participantService := &service.ParticipantService{
		ParticipantRepo: participantRepo,
		Verifier:        onboarding.NewSimulatedVerifier(),
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
		AmqpURL:         cfg.AmqpURL,
	}
	participantController := &controller.ParticipantController{
		ParticipantService: participantService,
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaignDetails)
	r.Get("/campaigns/{id}/assignments", campaignController.ListAssignments)
	r.Post("/campaigns/{id}/assign", campaignController.AssignCampaign)
	r.Post("/assignments/{id}/engagement", campaignController.RecordEngagement)

	// Participant routes
	r.Post("/participants", participantController.Register)
	r.Post("/participants/{id}/verify", participantController.VerifyHandle)
	r.Post("/participants/{id}/profile", participantController.CompleteProfile)
	r.Post("/participants/{id}/deactivate", participantController.Deactivate)

	log.Println("🚀 Server running on", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
