package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"prompthash.backend/internal/config"
	"prompthash.backend/internal/infrastructure/blockchain"
	"prompthash.backend/internal/infrastructure/gateway"
	"prompthash.backend/internal/infrastructure/jobs"
	"prompthash.backend/internal/infrastructure/repositories"
	"prompthash.backend/internal/interfaces/http/handlers"
	"prompthash.backend/internal/interfaces/http/middleware"
	"prompthash.backend/internal/usecases"
	"prompthash.backend/pkg/jwt"
	"prompthash.backend/pkg/logger"
	"prompthash.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.SessionExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	promptRepo := repositories.NewPromptRepository(db)

	// Initialize blockchain access
	clientFactory := blockchain.NewClientFactory()
	marketplaceReader := blockchain.NewMarketplaceReader(clientFactory, cfg.Blockchain.RPCURL, cfg.Blockchain.ContractAddress)
	signingSession := blockchain.NewOperatorSession(
		clientFactory,
		cfg.Blockchain.RPCURL,
		cfg.Blockchain.ContractAddress,
		cfg.Blockchain.OperatorPrivateKey,
		cfg.Blockchain.ConfirmInterval,
		cfg.Blockchain.ConfirmTimeout,
	)

	// Initialize AI gateway client
	assistClient := gateway.NewAssistClient(cfg.Assist.BaseURL, cfg.Assist.DefaultModel, cfg.Assist.Timeout)

	// Initialize usecases
	userUsecase := usecases.NewUserUsecase(userRepo, jwtService)
	promptUsecase := usecases.NewPromptUsecase(promptRepo, userRepo)
	submissionUsecase := usecases.NewSubmissionUsecase(signingSession, promptUsecase)
	purchaseUsecase := usecases.NewPurchaseUsecase(signingSession, promptRepo, cfg.Market.MarkupFactor)
	listingUsecase := usecases.NewListingUsecase(signingSession, promptRepo)
	assistUsecase := usecases.NewAssistUsecase(assistClient)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userUsecase)
	promptHandler := handlers.NewPromptHandler(promptUsecase)
	workflowHandler := handlers.NewWorkflowHandler(submissionUsecase, purchaseUsecase, listingUsecase)
	assistHandler := handlers.NewAssistHandler(assistUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncJob := jobs.NewOwnershipSyncJob(promptRepo, userRepo, marketplaceReader, cfg.Market.OwnerSyncInterval)
	go syncJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.WalletAuthMiddleware(jwtService))

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerRoutes(r, routeDeps{
		userHandler:     userHandler,
		promptHandler:   promptHandler,
		workflowHandler: workflowHandler,
		assistHandler:   assistHandler,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		syncJob.Stop()
		if err := redis.Close(); err != nil {
			log.Printf("⚠️ Error closing redis: %v", err)
		}
		cancel()
	}()

	// Start server
	log.Printf("🚀 PromptHash Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
