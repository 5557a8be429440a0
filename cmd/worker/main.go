package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"hireFlow/internal/config"
	"hireFlow/internal/database"
	"hireFlow/internal/hiring"
	"hireFlow/internal/ingest"
	"hireFlow/internal/metrics"
	"hireFlow/internal/oracle"
	"hireFlow/internal/storage"
	"hireFlow/internal/tasks"
	"hireFlow/internal/worker"
)

const metricsAddr = ":2112"

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	generator, err := oracle.NewGenerator(context.Background(), cfg.Oracle.APIKey, cfg.Oracle.Model)
	if err != nil {
		log.Fatalf("init gemini client: %v", err)
	}

	// The worker only runs the extract/assess/rank stages; scheduling and
	// mail go through the API process.
	agent := hiring.NewAgent(
		ingest.NewExtractor(),
		oracle.NewMatcher(generator, logger),
		nil,
		nil,
		ingest.NewContactFinder(),
		hiring.NewComposer(cfg.Mail.CompanyName, cfg.Calendar.InterviewDurationMinutes),
		logger,
	)

	analyzeHandler := worker.NewAnalyzeTaskHandler(db, storageClient, redisClient, agent, logger)

	server := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 10,
	})

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypeResumeBatchAnalyze, analyzeHandler)

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			logger.Error("metrics listener stopped", slog.Any("error", err))
		}
	}()

	logger.Info("worker service started",
		slog.String("redis_addr", redisAddr),
		slog.String("metrics_addr", metricsAddr),
	)
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
