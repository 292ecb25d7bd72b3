package main

import (
	"fmt"
	"log"
	"net/http"

	"mdtboard/internal/api"
	"mdtboard/internal/api/handlers"
	"mdtboard/internal/api/middleware"
	"mdtboard/internal/engine/files"
	"mdtboard/internal/engine/meetings"
	"mdtboard/internal/pkg/logger"
	"mdtboard/internal/platform/auth"
	"mdtboard/internal/platform/config"
	"mdtboard/internal/platform/database"
	"mdtboard/internal/platform/repositories"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fileStore, err := files.NewStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	meetingRepo := meetings.NewRepository(db)
	fileRepo := files.NewRepository(db)

	// Services
	tokenSvc := auth.NewTokenService(cfg.JWT)
	sessionSvc := auth.NewSessionService(sessionRepo)
	federated := auth.NewFederatedClient()
	meetingSvc := meetings.NewService(meetingRepo)
	fileSvc := files.NewService(fileRepo, fileStore)

	// Handlers
	deps := &api.Dependencies{
		AuthHandler:      handlers.NewAuthHandler(userRepo, tokenSvc, sessionSvc, federated),
		UserHandler:      handlers.NewUserHandler(userRepo),
		PatientHandler:   handlers.NewPatientHandler(patientRepo, meetingSvc, fileSvc),
		MeetingHandler:   handlers.NewMeetingHandler(meetingSvc),
		AgendaHandler:    handlers.NewAgendaHandler(meetingSvc),
		DecisionHandler:  handlers.NewDecisionHandler(meetingSvc),
		FileHandler:      handlers.NewFileHandler(fileSvc),
		DashboardHandler: handlers.NewDashboardHandler(meetingSvc, patientRepo),
		HealthHandler:    handlers.NewHealthHandler(db),
		AuthMiddleware:   middleware.NewAuthMiddleware(tokenSvc, userRepo, sessionRepo),
	}

	router := api.NewRouter(deps)
	cors := middleware.NewCORS(cfg.CORS)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      cors.Handle(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
