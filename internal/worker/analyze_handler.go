package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hireFlow/internal/database"
	"hireFlow/internal/errcode"
	"hireFlow/internal/hiring"
	"hireFlow/internal/storage"
	"hireFlow/internal/tasks"
)

// AnalyzeTaskHandler consumes resume batch analysis tasks: it pulls the
// uploaded documents from object storage, runs the assessment pipeline and
// persists the ranked candidates.
type AnalyzeTaskHandler struct {
	db          *gorm.DB
	storage     *storage.Client
	redisClient *redis.Client
	agent       *hiring.Agent
	logger      *slog.Logger
}

// NewAnalyzeTaskHandler creates the task handler.
func NewAnalyzeTaskHandler(
	db *gorm.DB,
	storage *storage.Client,
	redisClient *redis.Client,
	agent *hiring.Agent,
	logger *slog.Logger,
) *AnalyzeTaskHandler {
	return &AnalyzeTaskHandler{
		db:          db,
		storage:     storage,
		redisClient: redisClient,
		agent:       agent,
		logger:      logger,
	}
}

// ProcessTask implements asynq.Handler.
func (h *AnalyzeTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ResumeBatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("job_id", payload.JobID),
		slog.Uint64("user_id", uint64(payload.UserID)),
	)
	log.Info("starting resume batch analysis task", slog.Int("documents", len(payload.Documents)))

	var job database.Job
	if err := h.db.WithContext(ctx).Where("job_id = ?", payload.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("job not found, skipping task")
			return nil
		}
		log.Error("query job failed", slog.Any("error", err))
		return err
	}

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		h.db.WithContext(ctx).Model(&job).Update("status", hiring.StatusFailed)

		notify := BatchNotifyMessage{
			Status:        "error",
			JobID:         payload.JobID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishBatchNotify(ctx, payload.UserID, notify); err != nil {
			log.Error("publish batch error notification failed", slog.Any("error", err))
		}
	}()

	docs, objectKeys := h.downloadDocuments(ctx, log, payload.Documents)

	jd := hiring.JobDescription{
		Title:           payload.Title,
		Description:     payload.Description,
		Requirements:    payload.Requirements,
		Skills:          payload.Skills,
		ExperienceLevel: payload.ExperienceLevel,
	}

	result := h.agent.RunBatch(ctx, payload.JobID, docs, jd)
	// Documents that never made it out of storage still count as received.
	result.TotalResumes = len(payload.Documents)

	if err := h.persistResult(ctx, &job, result, objectKeys); err != nil {
		log.Error("persist batch result failed", slog.Any("error", err))
		return err
	}

	notify := BatchNotifyMessage{
		Status:           "completed",
		JobID:            payload.JobID,
		CorrelationID:    payload.CorrelationID,
		ErrorCode:        errcode.OK,
		TotalResumes:     result.TotalResumes,
		ProcessedResumes: result.ProcessedResumes,
	}
	if result.ProcessedResumes < result.TotalResumes {
		notify.ErrorCode = errcode.ResumeSkipped
		notify.ErrorMessage = fmt.Sprintf(
			"%d of %d resumes were skipped during processing",
			result.TotalResumes-result.ProcessedResumes, result.TotalResumes,
		)
		log.Warn("batch completed with skipped resumes",
			slog.Int("processed", result.ProcessedResumes),
			slog.Int("total", result.TotalResumes),
		)
	}
	if err := h.publishBatchNotify(ctx, payload.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("resume batch analysis task completed",
		slog.Int("candidates", len(result.Candidates)),
	)
	return nil
}

// downloadDocuments fetches every uploaded blob. A failed download drops the
// document from the batch; the gap shows up in the processed count.
func (h *AnalyzeTaskHandler) downloadDocuments(ctx context.Context, log *slog.Logger, stored []tasks.StoredDocument) ([]hiring.Document, map[string]string) {
	docs := make([]hiring.Document, 0, len(stored))
	objectKeys := make(map[string]string, len(stored))

	for _, doc := range stored {
		obj, err := h.storage.GetObject(ctx, doc.ObjectKey)
		if err != nil {
			log.Warn("download resume failed",
				slog.String("object_key", doc.ObjectKey),
				slog.Any("error", err),
			)
			continue
		}
		data, err := io.ReadAll(obj)
		obj.Close()
		if err != nil {
			log.Warn("read resume object failed",
				slog.String("object_key", doc.ObjectKey),
				slog.Any("error", err),
			)
			continue
		}

		docs = append(docs, hiring.Document{Filename: doc.Filename, Data: data})
		objectKeys[doc.Filename] = doc.ObjectKey
	}

	return docs, objectKeys
}

func (h *AnalyzeTaskHandler) persistResult(ctx context.Context, job *database.Job, result hiring.BatchResult, objectKeys map[string]string) error {
	return h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := map[string]any{
			"total_resumes":     result.TotalResumes,
			"processed_resumes": result.ProcessedResumes,
			"summary":           result.Summary,
			"status":            result.Status,
		}
		if err := tx.Model(job).Updates(update).Error; err != nil {
			return fmt.Errorf("update job: %w", err)
		}

		for _, c := range result.Candidates {
			skills, err := json.Marshal(c.Skills)
			if err != nil {
				return fmt.Errorf("marshal skills: %w", err)
			}
			record := database.Candidate{
				CandidateID:     c.ID,
				JobRef:          job.ID,
				Name:            c.Name,
				Email:           c.Email,
				Phone:           c.Phone,
				ResumeID:        c.ResumeID,
				ResumeObjectKey: objectKeys[c.Filename],
				Filename:        c.Filename,
				Score:           c.Score,
				SkillScore:      c.SkillScore,
				ExperienceScore: c.ExperienceScore,
				Summary:         c.Summary,
				Skills:          datatypes.JSON(skills),
				Experience:      c.Experience,
				MatchReasoning:  c.MatchReasoning,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("create candidate: %w", err)
			}
		}

		return nil
	})
}

func (h *AnalyzeTaskHandler) publishBatchNotify(ctx context.Context, userID uint, notify BatchNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
