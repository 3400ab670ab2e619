package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realtorai/internal/config"
	"realtorai/internal/handler"
	"realtorai/internal/repository"
	"realtorai/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("RealtorAI Recommendation Service")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Initialize oracle client
	var oracle *service.OracleClient
	if cfg.Oracle.Enabled {
		oracle = service.NewOracleClient(&cfg.Oracle)
		log.Printf("✅ Oracle client initialized")
		log.Printf("   - API URL: %s", cfg.Oracle.APIURL)
		log.Printf("   - Model: %s", cfg.Oracle.Model)
		log.Printf("   - Temperature: %.2f", cfg.Oracle.Temperature)
	} else {
		log.Println("⚠️  Oracle is disabled - parsing and weight inference run on local extraction only")
		log.Println("   Set DEEPSEEK_API_KEY environment variable to enable oracle features")
	}

	// Build the location gazetteer
	var gazetteer *service.Gazetteer
	if cfg.Data.DistrictCSV != "" && cfg.Data.CircleCSV != "" {
		gazetteer, err = service.LoadGazetteerCSV(cfg.Data.DistrictCSV, cfg.Data.CircleCSV)
		if err != nil {
			log.Fatalf("Failed to load gazetteer: %v", err)
		}
		log.Printf("✅ Gazetteer loaded from %s, %s", cfg.Data.DistrictCSV, cfg.Data.CircleCSV)
	} else {
		gazetteer = service.DefaultGazetteer()
		log.Println("✅ Gazetteer loaded from built-in tables")
	}

	// Initialize services
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	parser := service.NewRequirementParser(gazetteer, oracle)
	inferencer := service.NewWeightInferencer(oracle)
	communityRecommender := service.NewCommunityRecommender(repo, rng)
	circleRecommender := service.NewCircleRecommender(repo, rng)
	scoreService := service.NewScoreService(repo)
	marketService := service.NewMarketService(repo, oracle, cfg.Data.MarketStatsPath)

	log.Println("✅ Services initialized")

	// Initialize handlers
	requirementHandler := handler.NewRequirementHandler(parser, inferencer)
	recommendHandler := handler.NewRecommendHandler(communityRecommender, circleRecommender, cfg.Ranking)
	scoreHandler := handler.NewScoreHandler(scoreService)
	marketHandler := handler.NewMarketHandler(marketService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "realtorai-recommendation",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Requirement parsing and weight inference
		api.POST("/parse-requirement", requirementHandler.Parse)
		api.POST("/infer-weights", requirementHandler.InferWeights)

		// Ranked recommendations
		api.POST("/recommend-communities", recommendHandler.Communities)
		api.POST("/recommend-circles", recommendHandler.Circles)

		// Score cards and autocomplete
		api.POST("/community-scores", scoreHandler.CommunityScores)
		api.POST("/circle-scores", scoreHandler.CircleScores)
		api.GET("/community-suggest", scoreHandler.Suggest)

		// Market information
		api.GET("/market-overview", marketHandler.Overview)
		api.GET("/property-policy", marketHandler.Policy)
		api.GET("/market-stats", marketHandler.Stats)
		api.GET("/market-trend", marketHandler.Trend)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API root: http://localhost:%d/api", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
