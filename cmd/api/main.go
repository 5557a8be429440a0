package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hireFlow/internal/api"
	"hireFlow/internal/auth"
	"hireFlow/internal/calendar"
	"hireFlow/internal/config"
	"hireFlow/internal/database"
	"hireFlow/internal/hiring"
	"hireFlow/internal/ingest"
	"hireFlow/internal/mail"
	"hireFlow/internal/oracle"
	"hireFlow/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := db.AutoMigrate(
		&database.User{},
		&database.Job{},
		&database.Candidate{},
		&database.Interview{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	logger.Info("database ready",
		slog.String("host", cfg.Database.Host),
		slog.String("name", cfg.Database.Name),
	)

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}
	defer redisClient.Close()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	authService, err := buildAuthService(cfg)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	agent, scheduler, err := buildAgent(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("init hiring agent: %v", err)
	}

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, cfg, db, asynqClient, authService, redisClient, storageClient, agent, scheduler, logger)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

func buildAuthService(cfg *config.Config) (*auth.AuthService, error) {
	privateKey, err := os.ReadFile(cfg.Auth.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	publicKey, err := os.ReadFile(cfg.Auth.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return auth.NewAuthService(
		privateKey,
		publicKey,
		cfg.Auth.AccessTTL(),
		cfg.Auth.RefreshTTL(),
	)
}

// buildAgent wires the pipeline collaborators. Calendar and mail are
// optional: without credentials those stages degrade gracefully instead of
// blocking resume analysis.
func buildAgent(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*hiring.Agent, *calendar.Scheduler, error) {
	generator, err := oracle.NewGenerator(ctx, cfg.Oracle.APIKey, cfg.Oracle.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("init gemini client: %w", err)
	}
	matcher := oracle.NewMatcher(generator, logger)

	var scheduler *calendar.Scheduler
	var schedulerIface hiring.Scheduler
	if cfg.Calendar.CredentialsPath != "" {
		calendarClient, err := calendar.NewClient(ctx, cfg.Calendar.CredentialsPath, cfg.Calendar.CalendarID)
		if err != nil {
			return nil, nil, fmt.Errorf("init calendar client: %w", err)
		}
		scheduler = calendar.NewScheduler(
			calendarClient, logger,
			cfg.Calendar.WorkingHourStart, cfg.Calendar.WorkingHourEnd,
		)
		schedulerIface = scheduler
	} else {
		logger.Warn("calendar credentials not configured, scheduling disabled")
	}

	var mailerIface hiring.Mailer
	if cfg.Mail.FromEmail != "" {
		mailer, err := mail.NewSESMailer(ctx, cfg.Mail.Region, cfg.Mail.FromEmail, cfg.Mail.FromName, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("init ses mailer: %w", err)
		}
		mailerIface = mailer
	} else {
		logger.Warn("mail sender not configured, confirmations disabled")
	}

	composer := hiring.NewComposer(cfg.Mail.CompanyName, cfg.Calendar.InterviewDurationMinutes)

	agent := hiring.NewAgent(
		ingest.NewExtractor(),
		matcher,
		schedulerIface,
		mailerIface,
		ingest.NewContactFinder(),
		composer,
		logger,
	)
	return agent, scheduler, nil
}
