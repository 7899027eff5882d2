package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/teenbudget/backend/internal/cache"
	"github.com/teenbudget/backend/internal/config"
	"github.com/teenbudget/backend/internal/handler"
	"github.com/teenbudget/backend/internal/integrations/advisor"
	"github.com/teenbudget/backend/internal/middleware"
	"github.com/teenbudget/backend/internal/repository"
	"github.com/teenbudget/backend/internal/scheduler"
	"github.com/teenbudget/backend/internal/service"
	"github.com/teenbudget/backend/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Redis cache is optional; a nil cache disables it
	c, err := cache.New(cfg.RedisAddr, logger)
	if err != nil {
		logger.Warnf("Cache disabled: %v", err)
		c = nil
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	mail := email.NewSender(cfg, logger)
	adv := advisor.New(cfg, logger)
	svc := service.NewService(repo, c, adv, mail, logger, cfg)
	h := handler.NewHandler(svc, logger)

	sched, err := scheduler.New(svc, cfg.ReminderSchedule, logger)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/signup", h.Signup).Methods("POST")
	r.HandleFunc("/signin", h.Signin).Methods("POST")
	r.HandleFunc("/verify-email", h.VerifyEmail).Methods("POST")
	r.HandleFunc("/resend-code", h.ResendCode).Methods("POST")
	r.HandleFunc("/token-validation", h.TokenValidation).Methods("POST")
	r.HandleFunc("/password-reset-request", h.PasswordResetRequest).Methods("POST")
	r.HandleFunc("/password-reset", h.PasswordReset).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/savings-goals", h.ListGoals).Methods("GET")
	authRouter.HandleFunc("/savings-goals", h.CreateGoal).Methods("POST")
	authRouter.HandleFunc("/savings-goals/{id}/milestones/{seq}", h.ToggleMilestone).Methods("PATCH")
	authRouter.HandleFunc("/expense-analysis", h.GenerateAnalysis).Methods("POST")
	authRouter.HandleFunc("/save-expense-analysis", h.SaveAnalysis).Methods("POST")
	authRouter.HandleFunc("/get-last-expense-analysis", h.LastAnalysis).Methods("GET")
	authRouter.HandleFunc("/reports/pdf", h.PDFReport).Methods("POST")
	authRouter.HandleFunc("/reports/excel", h.ExcelReport).Methods("POST")

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Run server and scheduler until a shutdown signal arrives
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sched.Start()
		<-gctx.Done()
		sched.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
