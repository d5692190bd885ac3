package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/healthlens/healthlens-be/internal/api"
	"github.com/healthlens/healthlens-be/internal/api/middleware"
	"github.com/healthlens/healthlens-be/internal/catalog"
	"github.com/healthlens/healthlens-be/internal/engine"
	"github.com/healthlens/healthlens-be/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Get configuration from environment
	port := getEnv("PORT", "8080")
	dataFile := getEnv("DISEASE_DATA_FILE", "data/diseases.json")
	databaseURL := getEnv("DATABASE_URL", "")
	rateLimitRPS := getEnvFloat("RATE_LIMIT_RPS", 100.0/60.0) // ~100/min per IP
	rateLimitBurst := getEnvInt("RATE_LIMIT_BURST", 20)

	// Load the disease catalog exactly once, before accepting requests.
	// DATABASE_URL takes precedence over the JSON dataset file.
	store, err := catalog.Init(func() (*catalog.Store, error) {
		if databaseURL != "" {
			return loadCatalogFromDB(databaseURL)
		}
		return catalog.LoadFromFile(dataFile)
	})
	if err != nil {
		log.Fatalf("Failed to load disease catalog: %v", err)
	}
	log.Printf("✅ Disease catalog loaded (%d conditions)", store.Len())

	// Initialize the engine and handlers
	eng := engine.New(store)
	analysisHandler := api.NewAnalysisHandler(eng, store)
	analyzeWS := ws.NewAnalyzeHandler(eng)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PerIP(rateLimitRPS, rateLimitBurst))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"conditions": store.Len(),
			"time":       time.Now().Unix(),
		})
	})

	// Analysis routes
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/analyze", analysisHandler.Analyze)
		apiGroup.GET("/conditions", analysisHandler.ListConditions)
		apiGroup.GET("/conditions/:id", analysisHandler.GetCondition)
	}

	// WebSocket analysis route
	router.GET("/ws/analyze", analyzeWS.HandleAnalyze)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", port)
		log.Printf("📝 API endpoints:")
		log.Printf("   POST   /api/analyze")
		log.Printf("   GET    /api/conditions")
		log.Printf("   GET    /api/conditions/:id")
		log.Printf("   GET    /ws/analyze")
		log.Printf("   GET    /health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// loadCatalogFromDB opens a short-lived Postgres connection just for the
// one-time catalog load
func loadCatalogFromDB(databaseURL string) (*catalog.Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return catalog.LoadFromDB(ctx, db)
}

// getEnv returns an environment variable or a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or a fallback value
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or a fallback value
func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
