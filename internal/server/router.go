package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/platekeep/recipedocs-backend/internal/handlers"
	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/middleware"
)

type RouterConfig struct {
	Log               *logger.Logger
	RecipeDocsHandler *handlers.RecipeDocsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("recipedocs-backend"))
	router.Use(middleware.RequestID(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	router.POST("/generate_recipes/:user_id", cfg.RecipeDocsHandler.Generate)
	router.GET("/generate_recipes/status/:instance_id", cfg.RecipeDocsHandler.Status)

	return router
}
