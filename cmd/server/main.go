package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pokemmohub/companion/backend/internal/api"
	"github.com/pokemmohub/companion/backend/internal/database"
	"github.com/pokemmohub/companion/backend/internal/dex"
	"github.com/pokemmohub/companion/backend/internal/metrics"
	"github.com/pokemmohub/companion/backend/internal/services"
)

func main() {
	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./companion.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Load the static dex datasets and build the index
	dataDir := os.Getenv("DEX_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	index, err := dex.LoadIndex(dataDir)
	if err != nil {
		log.Fatalf("Failed to load dex data: %v", err)
	}
	metrics.SpeciesLoaded.Set(float64(index.SpeciesCount()))
	metrics.AreasIndexed.Set(float64(index.AreaCount()))

	// Initialize services
	marketService := services.NewMarketService(os.Getenv("GTL_ITEMS_URL"), os.Getenv("GTL_AUTH"), index.Items())

	tmSource := os.Getenv("TM_LOCATIONS_URL")
	if tmSource == "" {
		tmSource = dataDir + "/tms.json"
	}
	tmService := services.NewTMLocationService(tmSource)

	smogonService := services.NewSmogonService()
	abilityService := services.NewAbilityService()

	// Create a cancellable context for background work
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the TM dataset so the first request doesn't pay the fetch
	go func() {
		warmCtx, warmCancel := context.WithTimeout(ctx, 30*time.Second)
		defer warmCancel()
		if _, err := tmService.ByRegion(warmCtx); err != nil {
			log.Printf("Warning: TM location dataset unavailable: %v", err)
		}
	}()

	// Setup router
	router := api.SetupRouter(index, marketService, tmService, smogonService, abilityService)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
