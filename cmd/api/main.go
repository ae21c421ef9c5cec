// @title           Task Board API
// @version         1.0
// @description     Board, Card, Task 관리와 실시간 협업 API

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "taskboard-api/docs" // Swagger docs import

	"taskboard-api/internal/auth"
	"taskboard-api/internal/authz"
	"taskboard-api/internal/client"
	"taskboard-api/internal/config"
	"taskboard-api/internal/database"
	"taskboard-api/internal/job"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/router"
	"taskboard-api/internal/service"
)

const devJWTSecret = "taskboard-dev-secret"

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Task Board API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	db, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	database.RegisterMetricsCallbacks(db, m)
	statsDone := database.StartDBStatsCollector(db, m, 15*time.Second)

	redisClient, err := database.NewRedis(cfg.Redis.URL, cfg.Redis.Password, logger)
	if err != nil {
		logger.Warn("Redis unavailable, realtime events stay on this instance", zap.Error(err))
		redisClient = nil
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		logger.Warn("JWT secret not set, using development secret")
		secret = devJWTSecret
	}
	tokens, err := auth.NewTokenManager(secret, cfg.JWT.TokenTTL)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	var emailClient client.EmailClient
	if cfg.SMTP.Enabled() {
		emailClient = client.NewSMTPEmailClient(client.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Timeout:  cfg.SMTP.Timeout,
		}, logger, m)
		logger.Info("SMTP email client initialized", zap.String("host", cfg.SMTP.Host))
	} else {
		emailClient = client.NewNoOpEmailClient(logger)
		logger.Warn("SMTP configuration incomplete, emails are logged only")
	}

	var githubClient client.GitHubClient
	if cfg.GitHub.ClientID != "" {
		githubClient = client.NewGitHubClient(client.GitHubConfig{
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			APIBaseURL:   cfg.GitHub.APIBaseURL,
			OAuthURL:     cfg.GitHub.OAuthURL,
			Timeout:      cfg.GitHub.Timeout,
		}, logger, m)
	} else {
		logger.Warn("GitHub OAuth not configured, GitHub routes disabled")
	}

	guard := authz.NewGuard(
		repository.NewBoardRepository(db),
		repository.NewCardRepository(db),
		repository.NewTaskRepository(db),
		repository.NewInvitationRepository(db),
	)

	// Realtime hub, fanned out across instances when redis is configured
	var bridge realtime.Bridge
	if redisClient != nil {
		bridge = realtime.NewRedisBridge(redisClient, logger)
	}
	hub := realtime.NewHub(realtime.HubConfig{
		EnforceMembership: cfg.Realtime.EnforceMembership,
		SendBuffer:        cfg.Realtime.SendBuffer,
	}, guard, bridge, m, logger)

	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	r := router.Setup(router.Config{
		DB:          db,
		Redis:       redisClient,
		Logger:      logger,
		Metrics:     m,
		BasePath:    cfg.Server.BasePath,
		FrontendURL: cfg.Server.FrontendURL,
		Tokens:      tokens,
		Hasher:      auth.NewCodeHasher(cfg.Verification.BcryptCost),
		Auth: service.AuthConfig{
			SignupCodeTTL: cfg.Verification.SignupCodeTTL,
			ResendCodeTTL: cfg.Verification.ResendCodeTTL,
		},
		EmailClient:  emailClient,
		GitHubClient: githubClient,
		Guard:        guard,
		Hub:          hub,
	})

	// Background jobs
	scheduler := cron.New()
	if _, err := scheduler.AddJob(cfg.Jobs.OrphanSweepSchedule,
		job.NewOrphanSweepJob(repository.NewOrphanRepository(db), m, logger)); err != nil {
		logger.Fatal("Invalid orphan sweep schedule", zap.Error(err))
	}
	if _, err := scheduler.AddJob(cfg.Jobs.BusinessMetricsSchedule,
		metrics.NewBusinessMetricsCollector(db, m, logger)); err != nil {
		logger.Fatal("Invalid business metrics schedule", zap.Error(err))
	}
	scheduler.Start()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Task Board API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	<-scheduler.Stop().Done()

	stopHub()
	select {
	case <-hub.Done():
	case <-ctx.Done():
		logger.Warn("Realtime hub did not stop in time")
	}

	close(statsDone)
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
