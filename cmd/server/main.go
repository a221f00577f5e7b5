package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/config"
	"github.com/careerbridge/careerbridge-backend/internal/database"
	"github.com/careerbridge/careerbridge-backend/internal/handler"
	"github.com/careerbridge/careerbridge-backend/internal/identity"
	"github.com/careerbridge/careerbridge-backend/internal/logger"
	"github.com/careerbridge/careerbridge-backend/internal/router"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/careerbridge/careerbridge-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("storage", cfg.StorageBackend).
		Str("identity", cfg.IdentityProvider).
		Msg("Starting CareerBridge Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect Storage and Cache ─────────────────────────────────────
	backend, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer backend.Close()

	provider, err := identity.FromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure identity provider")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	stores := backend.Stores
	questionService := service.NewQuestionService(stores.Questions, stores.Tests, log)
	testService := service.NewTestService(stores, service.DeferredGrader{}, log)
	applicationService := service.NewApplicationService(stores, log)
	collegeService := service.NewCollegeService(stores, log)
	studentService := service.NewStudentService(stores, log)
	owners := service.NewOwnership(stores)
	authService := service.NewAuthService(provider, backend.Cache, studentService, collegeService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Question:    handler.NewQuestionHandler(questionService, owners),
		College:     handler.NewCollegeHandler(collegeService, applicationService, owners),
		Student:     handler.NewStudentHandler(studentService, applicationService, owners),
		Application: handler.NewApplicationHandler(applicationService),
		Test:        handler.NewTestHandler(testService, studentService, owners),
		System:      handler.NewSystemHandler(backend.Checks, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, backend.Cache, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new HTTP requests and let in-flight ones finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
