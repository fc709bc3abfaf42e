package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "lendshare-backend/internal/api/http"
	"lendshare-backend/internal/authz"
	"lendshare-backend/internal/config"
	"lendshare-backend/internal/logger"
	"lendshare-backend/internal/repository/postgres"
	"lendshare-backend/internal/security"
	"lendshare-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LendShare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authenticator := httpapi.NewAuthenticator(tokenManager)
	authorizer := authz.NewAuthorizer()

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, store.RefreshTokenRepository, tokenManager)
	itemSvc := service.NewItemService(store.ItemRepository, authorizer)
	categorySvc := service.NewItemCategoryService(store.ItemCategoryRepository, authorizer)
	loanSvc := service.NewLoanService(
		store.LoanRepository,
		store.ItemRepository,
		store.UserRepository,
		store.PickupProtocolRepository,
		store.ReturnProtocolRepository,
		store.NotificationRepository,
		emailSvc,
		authorizer,
	)
	pickupSvc := service.NewPickupProtocolService(
		store.LoanRepository,
		store.PickupProtocolRepository,
		store.UserRepository,
		emailSvc,
		authorizer,
	)
	returnSvc := service.NewReturnProtocolService(
		store.LoanRepository,
		store.ReturnProtocolRepository,
		store.UserRepository,
		emailSvc,
		authorizer,
	)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.LoanRepository, authorizer)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Item:         httpapi.NewItemHandler(itemSvc, reviewSvc),
		Category:     httpapi.NewCategoryHandler(categorySvc),
		Loan:         httpapi.NewLoanHandler(loanSvc),
		Protocol:     httpapi.NewProtocolHandler(pickupSvc, returnSvc),
		Review:       httpapi.NewReviewHandler(reviewSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}

	router := httpapi.NewRouter(handlers, authenticator)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
