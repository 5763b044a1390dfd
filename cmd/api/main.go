package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"committee-backend/api/routes"
	"committee-backend/internal/config"
	"committee-backend/internal/handlers"
	"committee-backend/internal/models"
	"committee-backend/internal/repositories"
	"committee-backend/internal/repositories/memory"
	mongorepo "committee-backend/internal/repositories/mongodb"
	"committee-backend/internal/services"
	"committee-backend/pkg/mongodb"
	"committee-backend/pkg/smsgateway"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)

	sequence := models.NewSequence(cfg.Scheme.Months)

	var (
		memberRepo       repositories.MemberRepository
		adminUserRepo    repositories.AdminUserRepository
		notificationRepo repositories.NotificationRepository
	)

	if cfg.Store.InMemory {
		slog.Warn("Running with the in-memory store; nothing will be persisted")
		memberRepo = memory.NewMemberRepository()
		adminUserRepo = memory.NewAdminUserRepository()
		notificationRepo = memory.NewNotificationRepository()
		if err := seedAdmin(adminUserRepo, cfg); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
	} else {
		mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				slog.Error("Error disconnecting from MongoDB", "error", err)
			}
		}()

		db := mongoClient.Database(cfg.MongoDB.Database)
		memberRepo = mongorepo.NewMemberRepository(db)
		adminUserRepo = mongorepo.NewAdminUserRepository(db)
		notificationRepo = mongorepo.NewNotificationRepository(db)
	}

	var gateway smsgateway.Gateway
	if cfg.SMS.MockSMSGateway {
		gateway = smsgateway.NewMockGateway()
	} else {
		gateway = smsgateway.NewHTTPGateway(cfg.SMS.BaseURL, cfg.SMS.APIKey, cfg.SMS.SenderName)
	}

	authService := services.NewAuthService(adminUserRepo, cfg)
	ledgerService := services.NewLedgerService(memberRepo, sequence)
	historyService := services.NewHistoryService(memberRepo, sequence)
	notificationService := services.NewNotificationService(memberRepo, notificationRepo, gateway, sequence, cfg.Scheme.MonthlyAmount)

	deps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService),
		MemberHandler:       handlers.NewMemberHandler(ledgerService),
		LedgerHandler:       handlers.NewLedgerHandler(ledgerService, sequence),
		HistoryHandler:      handlers.NewHistoryHandler(historyService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("Server starting", "port", cfg.Server.Port, "startingMonth", cfg.Scheme.Months[0])

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

// seedAdmin creates the configured admin account so the in-memory mode is
// usable without a bootstrap step.
func seedAdmin(repo repositories.AdminUserRepository, cfg *config.Config) error {
	hash, err := services.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	return repo.Create(context.Background(), &models.AdminUser{
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		FullName:     "Committee Admin",
	})
}
