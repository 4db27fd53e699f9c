package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fetenahub-backend/internal/config"
	"fetenahub-backend/internal/handlers"
	"fetenahub-backend/internal/middleware"
	"fetenahub-backend/internal/repository"
	"fetenahub-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	if cfg.Telegram.BotToken == "" {
		log.Fatal().Msg("Bot token is not configured")
	}

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	universityRepo := repository.NewUniversityRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	examRepo := repository.NewExamRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, followRepo)
	followService := services.NewFollowService(followRepo, userRepo)
	catalogService := services.NewCatalogService(universityRepo, courseRepo)
	examService := services.NewExamService(examRepo, followRepo, userRepo)
	reportService := services.NewReportService(reportRepo, examRepo, userRepo)
	uploadService, err := services.NewUploadService(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload service")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.Telegram.BotToken)
	userHandler := handlers.NewUserHandler(userService)
	followHandler := handlers.NewFollowHandler(followService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	examHandler := handlers.NewExamHandler(examService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Get("/", handlers.Index)
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", handlers.Health)
		r.Post("/auth/verify", authHandler.VerifyAuth)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.TelegramAuth(cfg.Telegram.BotToken))

			r.Get("/user/profile", userHandler.GetProfile)
			r.Put("/user/profile", userHandler.UpdateProfile)
			r.Get("/user/profile/{id}", userHandler.GetProfileByID)

			r.Post("/follow/{id}", followHandler.Follow)
			r.Delete("/follow/{id}", followHandler.Unfollow)

			r.Get("/universities", catalogHandler.ListUniversities)
			r.Post("/universities", catalogHandler.CreateUniversity)
			r.Get("/courses", catalogHandler.ListCourses)
			r.Post("/courses", catalogHandler.CreateCourse)

			r.Get("/exams", examHandler.List)
			r.Post("/exams", examHandler.Create)
			r.Get("/exams/{id}", examHandler.Get)
			r.Post("/exams/{id}/like", examHandler.Like)
			r.Delete("/exams/{id}/like", examHandler.Unlike)

			r.Post("/upload/url", uploadHandler.GetUploadURL)
			r.Post("/upload/confirm", uploadHandler.ConfirmUpload)

			r.Post("/reports", reportHandler.Create)
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "X-Telegram-Auth, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
