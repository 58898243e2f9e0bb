package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/config"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/database"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/handlers"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/log"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/middleware"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/routes"
	"github.com/AnshRaj112/mercado-seguro-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}
	// Load configuration
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	if cfg.AdminRegisterToken == "" {
		log.Warnf("⚠️  ADMIN_REGISTER_TOKEN not set. POST /api/register will refuse every request.")
	}

	// Connect to MongoDB
	log.Infof("Connecting to MongoDB at %s", cfg.MaskedMongoURI())
	if err := database.Connect(cfg.MongoURI, cfg.MongoDatabase); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer database.Disconnect()

	// Connect to Redis
	log.Info("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer database.DisconnectRedis()

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := services.EnsureResponseIndexes(idxCtx, database.DB); err != nil {
		log.Warnf("⚠️  failed to ensure respuestas indexes: %v", err)
	}
	if err := services.EnsureAdminIndexes(idxCtx, database.DB); err != nil {
		// without the unique index duplicate registrations are not caught
		log.Fatalf("Failed to ensure admin indexes: %v", err)
	}
	idxCancel()
	log.Info("✅ MongoDB indexes ensured")

	surveys := services.NewSurveyService(
		services.NewResponseRepository(database.DB),
		services.NewStatsCache(database.RedisClient),
	)
	admins := services.NewAdminService(services.NewAdminRepository(database.DB), cfg.AdminRegisterToken)
	sessions := services.NewSessionStore(database.RedisClient)

	r := routes.NewRouter(handlers.New(surveys, admins, sessions), routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
		AllowedHost:    cfg.AllowedHost,
		TrustProxy:     cfg.TrustProxy,
		SubmitLimit:    middleware.SubmissionRateLimit(database.RedisClient),
		AuthLimit:      middleware.AuthRateLimit(),
	})
	if cfg.IsProduction() {
		log.Info("✅ Production security enabled (security headers, host check, per-IP rate limiting)")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("🚀 Mercado seguro backend running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}
