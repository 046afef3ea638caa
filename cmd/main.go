package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/medibridge/medibridge-backend/internal/data/db"
	"github.com/medibridge/medibridge-backend/internal/data/repos"
	"github.com/medibridge/medibridge-backend/internal/handlers"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
	"github.com/medibridge/medibridge-backend/internal/server"
	"github.com/medibridge/medibridge-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sqlitePath := utils.GetEnv("SQLITE_PATH", "./data/medibridge.db", log)

	// Storage
	sqliteService := db.NewSQLiteService(sqlitePath, log)
	if err := sqliteService.Init(); err != nil {
		log.Error("SQLite init failed", "error", err)
		os.Exit(1)
	}
	defer sqliteService.Close()
	conn, err := sqliteService.DB()
	if err != nil {
		log.Error("SQLite handle unavailable", "error", err)
		os.Exit(1)
	}

	// Repos
	log.Info("Setting up repos...")
	conditionRepo := repos.NewConditionRepo(conn, log)
	exclusionMethodRepo := repos.NewExclusionMethodRepo(conn, log)
	treatmentPlanRepo := repos.NewTreatmentPlanRepo(conn, log)
	conditionExclusionMethodRepo := repos.NewConditionExclusionMethodRepo(conn, log)
	conditionTreatmentPlanRepo := repos.NewConditionTreatmentPlanRepo(conn, log)
	diseaseRepo := repos.NewDiseaseRepo(conn, log)
	symptomRepo := repos.NewSymptomRepo(conn, log)
	diseaseSymptomAssociationRepo := repos.NewDiseaseSymptomAssociationRepo(conn, log)
	conversationRepo := repos.NewConversationRepo(conn, log)
	messageRepo := repos.NewMessageRepo(conn, log)

	// Handlers
	log.Info("Setting up handlers...")
	healthHandler := handlers.NewHealthHandler(sqliteService)
	knowledgeHandler := handlers.NewKnowledgeHandler(
		log,
		conditionRepo,
		exclusionMethodRepo,
		treatmentPlanRepo,
		conditionExclusionMethodRepo,
		conditionTreatmentPlanRepo,
	)
	taxonomyHandler := handlers.NewTaxonomyHandler(log, diseaseRepo, symptomRepo, diseaseSymptomAssociationRepo)
	consultHandler := handlers.NewConsultHandler(log, conversationRepo, messageRepo)

	// Router
	router := server.NewRouter(server.RouterConfig{
		HealthHandler:    healthHandler,
		KnowledgeHandler: knowledgeHandler,
		TaxonomyHandler:  taxonomyHandler,
		ConsultHandler:   consultHandler,
	})

	port := utils.GetEnvAsInt("PORT", 8080, log)
	log.Info("Server listening", "port", port)
	if err := router.Run(fmt.Sprintf(":%d", port)); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
