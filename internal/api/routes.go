package api

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hireFlow/internal/api/middleware"
	"hireFlow/internal/auth"
	"hireFlow/internal/calendar"
	"hireFlow/internal/config"
	"hireFlow/internal/hiring"
	"hireFlow/internal/storage"
)

// RegisterRoutes wires every API endpoint. scheduler may be nil when no
// calendar integration is configured.
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	storageClient *storage.Client,
	agent *hiring.Agent,
	scheduler *calendar.Scheduler,
	logger *slog.Logger,
) {
	authHandler := NewAuthHandler(
		db, authService, redisClient, logger,
		cfg.Auth.LoginRateLimitPerHour,
		cfg.Auth.LoginLockThreshold,
		time.Duration(cfg.Auth.LoginLockMinutes)*time.Minute,
		cfg.Auth.CookieDomain,
	)
	wsHandler := NewWsHandler(redisClient, authService, logger, splitOrigins(cfg.API.AllowedOrigins))

	var canceler interviewCanceler
	if scheduler != nil {
		canceler = scheduler
	}
	hiringHandler := NewHiringHandler(
		db, asynqClient, storageClient, redisClient, agent, canceler, logger,
		HiringConfig{
			MaxUploadBytes:    cfg.Hiring.MaxUploadBytes,
			ClamdAddr:         cfg.Hiring.ClamdAddr,
			MonthlyBatchLimit: cfg.Hiring.MonthlyBatchLimit,
			MaxCandidates:     cfg.Hiring.MaxCandidates,
			MinScoreThreshold: cfg.Hiring.MinScoreThreshold,
		},
	)

	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		hiringGroup := v1.Group("/hiring")
		hiringGroup.Use(authMiddleware)
		{
			hiringGroup.POST("/process-resumes", hiringHandler.ProcessResumes)
			hiringGroup.POST("/process-resumes/async", hiringHandler.ProcessResumesAsync)
			hiringGroup.GET("/jobs", hiringHandler.ListJobs)
			hiringGroup.GET("/jobs/:jobID/candidates", hiringHandler.GetJobCandidates)
			hiringGroup.POST("/rank", hiringHandler.RankCandidates)
			hiringGroup.POST("/compare", hiringHandler.CompareCandidates)
			hiringGroup.POST("/schedule-interviews", hiringHandler.ScheduleInterviews)
			hiringGroup.POST("/send-confirmations", hiringHandler.SendConfirmations)
			hiringGroup.GET("/available-slots", hiringHandler.AvailableSlots)
			hiringGroup.POST("/draft-email", hiringHandler.DraftEmail)
			hiringGroup.DELETE("/interviews/:eventID", hiringHandler.CancelInterview)
		}
	}
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
