package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pokemmohub/companion/backend/internal/api/handlers"
	"github.com/pokemmohub/companion/backend/internal/dex"
	"github.com/pokemmohub/companion/backend/internal/metrics"
	"github.com/pokemmohub/companion/backend/internal/services"
)

func SetupRouter(index *dex.Index, marketService *services.MarketService, tmService *services.TMLocationService, smogonService *services.SmogonService, abilityService *services.AbilityService) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false // Explicitly set
	router.Use(cors.New(config))

	router.Use(requestMetrics())

	// Initialize handlers
	dexHandler := handlers.NewDexHandler(index)
	areaHandler := handlers.NewAreaHandler(index)
	caughtHandler := handlers.NewCaughtHandler(index)
	marketHandler := handlers.NewMarketHandler(marketService)
	referenceHandler := handlers.NewReferenceHandler(tmService, smogonService, abilityService)

	// API routes
	api := router.Group("/api")
	{
		// Species routes
		species := api.Group("/species")
		{
			species.GET("/search", dexHandler.SearchSpecies)
			species.GET("/:key", dexHandler.GetSpecies)
			species.GET("/:key/encounters", dexHandler.GetSpeciesEncounters)
			species.GET("/:key/areas", dexHandler.GetSpeciesAreas)
			species.GET("/:key/dex-number", dexHandler.GetRegionalDexNumber)
		}

		// Area routes
		areas := api.Group("/areas")
		{
			areas.GET("/search", areaHandler.SearchAreas)
			areas.GET("/match", areaHandler.MatchArea)
			areas.POST("/match-text", areaHandler.MatchAreaInText)
		}

		// Caught list routes
		caught := api.Group("/caught")
		{
			caught.GET("", caughtHandler.GetCaught)
			caught.POST("", caughtHandler.AddCaught)
			caught.DELETE("/:id", caughtHandler.DeleteCaught)
			caught.GET("/stats", caughtHandler.GetStats)
			caught.POST("/export", caughtHandler.ExportCaught)
			caught.POST("/import/:token", caughtHandler.ImportCaught)
		}

		// Reference routes
		api.GET("/encounter-types", dexHandler.GetEncounterTypes)
		api.GET("/regions", dexHandler.GetRegions)
		api.GET("/market/items", marketHandler.GetListings)
		api.GET("/tms", referenceHandler.GetTMLocations)
		api.GET("/smogon/:format/:species", referenceHandler.GetSmogonSets)
		api.GET("/abilities/:name", referenceHandler.GetAbility)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "species": index.SpeciesCount()})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// requestMetrics records per-request counters and latency. The route pattern
// (not the raw URL) is used as the path label to keep cardinality bounded.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" || path == "/metrics" {
			return
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
