package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/platekeep/recipedocs-backend/internal/db"
	"github.com/platekeep/recipedocs-backend/internal/docgen"
	"github.com/platekeep/recipedocs-backend/internal/handlers"
	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/observability"
	"github.com/platekeep/recipedocs-backend/internal/repos"
	"github.com/platekeep/recipedocs-backend/internal/server"
	"github.com/platekeep/recipedocs-backend/internal/services"
	"github.com/platekeep/recipedocs-backend/internal/temporalx"
	"github.com/platekeep/recipedocs-backend/internal/temporalx/recipedoc"
	"github.com/platekeep/recipedocs-backend/internal/temporalx/temporalworker"
	"github.com/platekeep/recipedocs-backend/internal/utils"
)

func main() {
	// Logger
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

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "recipedocs-backend",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userDocumentRepo := repos.NewUserDocumentRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	recipeService := services.NewRecipeService(log, userDocumentRepo)
	instructionService := services.NewInstructionService(log, openaiClient)
	pdfRenderer := docgen.NewPDFRenderer(log)
	docxRenderer := docgen.NewDocxRenderer(log)

	// Temporal
	log.Info("Setting up Temporal from main...")
	temporalClient, err := temporalx.NewClient(log)
	if err != nil {
		log.Error("Could not init Temporal client", "error", err)
		os.Exit(1)
	}
	if temporalClient == nil {
		log.Error("Temporal is required; set TEMPORAL_ADDRESS")
		os.Exit(1)
	}
	defer temporalClient.Close()

	activities := &recipedoc.Activities{
		Log:           log,
		Recipes:       recipeService,
		Instructions:  instructionService,
		PDF:           pdfRenderer,
		Docx:          docxRenderer,
		MaxConcurrent: utils.GetEnvAsInt("INSTRUCTION_CONCURRENCY", 1, log),
	}
	runner, err := temporalworker.NewRunner(log, temporalClient, activities)
	if err != nil {
		log.Error("Could not init Temporal worker", "error", err)
		os.Exit(1)
	}
	if err := runner.Start(context.Background()); err != nil {
		log.Error("Temporal worker failed to start", "error", err)
		os.Exit(1)
	}

	runService, err := services.NewDocumentRunService(log, temporalClient)
	if err != nil {
		log.Error("Could not init DocumentRunService", "error", err)
		os.Exit(1)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	syncWaitSeconds := utils.GetEnvAsInt("WORKFLOW_SYNC_WAIT_SECONDS", 60, log)
	recipeDocsHandler := handlers.NewRecipeDocsHandler(log, runService, time.Duration(syncWaitSeconds)*time.Second)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		RecipeDocsHandler: recipeDocsHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
