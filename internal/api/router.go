package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/promptforge/internal/api/handler"
	"github.com/timmy/promptforge/internal/api/middleware"
	"github.com/timmy/promptforge/internal/kb"
	"github.com/timmy/promptforge/internal/logger"
	"github.com/timmy/promptforge/internal/repository"
	"github.com/timmy/promptforge/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	doc *kb.Document,
	repo *repository.AnnotationRepository,
	generator *service.GeneratorService,
	log *logger.Logger,
	mode string,
	cors middleware.CORSConfig,
) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	taxonomyHandler := handler.NewTaxonomyHandler(doc)
	statsHandler := handler.NewStatsHandler(doc)
	recordsHandler := handler.NewRecordsHandler(repo)
	generateHandler := handler.NewGenerateHandler(generator)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Taxonomy
		v1.GET("/categories", taxonomyHandler.GetCategories)
		v1.GET("/categories/:category/terms", taxonomyHandler.GetTerms)

		// Corpus aggregates
		v1.GET("/stats", statsHandler.GetStats)
		v1.GET("/loras", statsHandler.GetLoRAs)

		// Records
		v1.GET("/records", recordsHandler.ListRecords)
		v1.GET("/records/random", recordsHandler.GetRandomRecord)
		v1.GET("/records/:id", recordsHandler.GetRecord)

		// Prompt synthesis
		v1.POST("/generate", generateHandler.Generate)
		v1.POST("/expand", generateHandler.Expand)
	}

	return r
}
