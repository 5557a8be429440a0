package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hireFlow/internal/api/middleware"
	"hireFlow/internal/database"
	"hireFlow/internal/hiring"
	"hireFlow/internal/storage"
	"hireFlow/internal/tasks"
)

const maxBatchFiles = 20

// interviewCanceler is the slice of the calendar scheduler the handler needs
// beyond what the agent exposes.
type interviewCanceler interface {
	CancelInterview(ctx context.Context, eventID string) error
}

// HiringConfig carries the tunables the hiring endpoints enforce.
type HiringConfig struct {
	MaxUploadBytes    int64
	ClamdAddr         string
	MonthlyBatchLimit int
	MaxCandidates     int
	MinScoreThreshold int
}

// HiringHandler exposes the resume screening pipeline over HTTP: batch
// uploads, ranking, interview scheduling and confirmation emails.
type HiringHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
	storage     *storage.Client
	redis       redis.UniversalClient
	agent       *hiring.Agent
	canceler    interviewCanceler
	logger      *slog.Logger
	cfg         HiringConfig
}

// NewHiringHandler builds the hiring handler. canceler may be nil when no
// calendar integration is configured; cancellation then only updates the
// stored record.
func NewHiringHandler(
	db *gorm.DB,
	asynqClient *asynq.Client,
	storageClient *storage.Client,
	redisClient redis.UniversalClient,
	agent *hiring.Agent,
	canceler interviewCanceler,
	logger *slog.Logger,
	cfg HiringConfig,
) *HiringHandler {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = hiring.DefaultMaxCandidates
	}
	if cfg.MinScoreThreshold <= 0 {
		cfg.MinScoreThreshold = hiring.DefaultMinScoreThreshold
	}
	return &HiringHandler{
		db:          db,
		asynqClient: asynqClient,
		storage:     storageClient,
		redis:       redisClient,
		agent:       agent,
		canceler:    canceler,
		logger:      logger,
		cfg:         cfg,
	}
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
}

// ProcessResumes runs one batch synchronously: the response carries the fully
// ranked candidate list. Intended for small batches; large ones should use
// the async variant.
func (h *HiringHandler) ProcessResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	logger := middleware.LoggerFromContext(c)

	jd, files, ok := h.parseBatchForm(c)
	if !ok {
		return
	}
	if !h.checkBatchQuota(c, userID) {
		return
	}

	docs := make([]hiring.Document, 0, len(files))
	for _, file := range files {
		data, err := h.readUpload(file)
		if err != nil {
			BadRequest(c, fmt.Sprintf("unreadable file %q", file.Filename))
			return
		}
		docs = append(docs, hiring.Document{Filename: file.Filename, Data: data})
	}

	result := h.agent.ProcessBatch(c.Request.Context(), docs, jd)

	if err := h.persistBatch(c, userID, jd, result, nil); err != nil {
		logger.Error("persist batch failed", slog.Any("error", err))
		Internal(c, "failed to store batch result")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ProcessResumesAsync uploads the documents to object storage, records the
// job and hands the batch to the queue. The client is notified over the
// WebSocket channel when processing finishes.
func (h *HiringHandler) ProcessResumesAsync(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	logger := middleware.LoggerFromContext(c)

	jd, files, ok := h.parseBatchForm(c)
	if !ok {
		return
	}
	if !h.checkBatchQuota(c, userID) {
		return
	}

	jobID := uuid.NewString()
	ctx := c.Request.Context()

	stored := make([]tasks.StoredDocument, 0, len(files))
	for _, file := range files {
		reader, err := file.Open()
		if err != nil {
			BadRequest(c, fmt.Sprintf("unreadable file %q", file.Filename))
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		objectKey := fmt.Sprintf("resumes/%d/%s/%s%s", userID, jobID, uuid.NewString(), ext)
		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		_, err = h.storage.UploadFile(ctx, objectKey, reader, file.Size, contentType)
		reader.Close()
		if err != nil {
			logger.Error("upload resume failed",
				slog.String("filename", file.Filename),
				slog.Any("error", err),
			)
			Internal(c, "failed to store uploaded file")
			return
		}

		stored = append(stored, tasks.StoredDocument{ObjectKey: objectKey, Filename: file.Filename})
	}

	job := database.Job{
		JobID:           jobID,
		UserID:          userID,
		Title:           jd.Title,
		Description:     jd.Description,
		Requirements:    mustJSON(jd.Requirements),
		Skills:          mustJSON(jd.Skills),
		ExperienceLevel: jd.ExperienceLevel,
		TotalResumes:    len(stored),
		Status:          "processing",
	}
	if err := h.db.WithContext(ctx).Create(&job).Error; err != nil {
		logger.Error("create job record failed", slog.Any("error", err))
		Internal(c, "failed to create job")
		return
	}

	task, err := tasks.NewResumeBatchTask(tasks.ResumeBatchPayload{
		JobID:           jobID,
		UserID:          userID,
		CorrelationID:   middleware.GetCorrelationID(c),
		Documents:       stored,
		Title:           jd.Title,
		Description:     jd.Description,
		Requirements:    jd.Requirements,
		Skills:          jd.Skills,
		ExperienceLevel: jd.ExperienceLevel,
	})
	if err != nil {
		logger.Error("build batch task failed", slog.Any("error", err))
		Internal(c, "failed to enqueue batch")
		return
	}
	if _, err := h.asynqClient.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		logger.Error("enqueue batch task failed", slog.Any("error", err))
		Internal(c, "failed to enqueue batch")
		return
	}

	logger.Info("resume batch enqueued",
		slog.String("job_id", jobID),
		slog.Int("documents", len(stored)),
	)
	c.JSON(http.StatusAccepted, gin.H{
		"job_id":        jobID,
		"status":        "processing",
		"total_resumes": len(stored),
	})
}

// parseBatchForm validates the multipart upload: the job description fields
// and the resume files, including per-file size, extension and virus checks.
// On failure the response has already been written.
func (h *HiringHandler) parseBatchForm(c *gin.Context) (hiring.JobDescription, []*multipart.FileHeader, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "invalid multipart form")
		return hiring.JobDescription{}, nil, false
	}

	jd := hiring.JobDescription{
		Title:           strings.TrimSpace(c.PostForm("title")),
		Description:     strings.TrimSpace(c.PostForm("description")),
		Requirements:    parseStringList(c.PostForm("requirements")),
		Skills:          parseStringList(c.PostForm("skills")),
		ExperienceLevel: strings.TrimSpace(c.PostForm("experience_level")),
	}
	if jd.Title == "" {
		BadRequest(c, "title is required")
		return hiring.JobDescription{}, nil, false
	}

	files := form.File["files"]
	if len(files) == 0 {
		BadRequest(c, "no resume files uploaded")
		return hiring.JobDescription{}, nil, false
	}
	if len(files) > maxBatchFiles {
		BadRequest(c, fmt.Sprintf("too many files, maximum is %d", maxBatchFiles))
		return hiring.JobDescription{}, nil, false
	}

	for _, file := range files {
		if h.cfg.MaxUploadBytes > 0 && file.Size > h.cfg.MaxUploadBytes {
			BadRequest(c, fmt.Sprintf("file %q exceeds the size limit", file.Filename))
			return hiring.JobDescription{}, nil, false
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedResumeExtensions[ext] {
			BadRequest(c, fmt.Sprintf("unsupported file type %q", ext))
			return hiring.JobDescription{}, nil, false
		}
		if err := h.scanUpload(c, file); err != nil {
			return hiring.JobDescription{}, nil, false
		}
	}

	return jd, files, true
}

// scanUpload streams one file through clamd. Skipped when no scanner is
// configured. On rejection or scanner failure the response has been written.
func (h *HiringHandler) scanUpload(c *gin.Context, file *multipart.FileHeader) error {
	if h.cfg.ClamdAddr == "" {
		return nil
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return err
	}

	clamdClient := clamd.NewClamd(h.cfg.ClamdAddr)
	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(reader, abortChan)
	reader.Close()
	if err != nil {
		middleware.LoggerFromContext(c).Error("virus scan failed",
			slog.String("filename", file.Filename),
			slog.Any("error", err),
		)
		Internal(c, "failed to scan file")
		return err
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			BadRequest(c, fmt.Sprintf("malicious file detected: %q", file.Filename))
			return fmt.Errorf("malicious file %q", file.Filename)
		}
	}
	return nil
}

func (h *HiringHandler) readUpload(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// checkBatchQuota enforces the per-user monthly batch cap. A zero limit
// disables the check. On rejection the response has been written.
func (h *HiringHandler) checkBatchQuota(c *gin.Context, userID uint) bool {
	if h.cfg.MonthlyBatchLimit <= 0 {
		return true
	}

	key := fmt.Sprintf("quota:batches:%d:%s", userID, time.Now().UTC().Format("200601"))
	count, err := incrWithTTL(c.Request.Context(), h.redis, key, 32*24*time.Hour)
	if err != nil {
		// Redis trouble should not block uploads.
		middleware.LoggerFromContext(c).Warn("batch quota check failed", slog.Any("error", err))
		return true
	}
	if count > int64(h.cfg.MonthlyBatchLimit) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "monthly batch limit reached"})
		return false
	}
	return true
}

func (h *HiringHandler) persistBatch(c *gin.Context, userID uint, jd hiring.JobDescription, result hiring.BatchResult, objectKeys map[string]string) error {
	return h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		job := database.Job{
			JobID:            result.JobID,
			UserID:           userID,
			Title:            jd.Title,
			Description:      jd.Description,
			Requirements:     mustJSON(jd.Requirements),
			Skills:           mustJSON(jd.Skills),
			ExperienceLevel:  jd.ExperienceLevel,
			TotalResumes:     result.TotalResumes,
			ProcessedResumes: result.ProcessedResumes,
			Summary:          result.Summary,
			Status:           result.Status,
		}
		if err := tx.Create(&job).Error; err != nil {
			return fmt.Errorf("create job: %w", err)
		}

		for _, candidate := range result.Candidates {
			record := database.Candidate{
				CandidateID:     candidate.ID,
				JobRef:          job.ID,
				Name:            candidate.Name,
				Email:           candidate.Email,
				Phone:           candidate.Phone,
				ResumeID:        candidate.ResumeID,
				ResumeObjectKey: objectKeys[candidate.Filename],
				Filename:        candidate.Filename,
				Score:           candidate.Score,
				SkillScore:      candidate.SkillScore,
				ExperienceScore: candidate.ExperienceScore,
				Summary:         candidate.Summary,
				Skills:          mustJSON(candidate.Skills),
				Experience:      candidate.Experience,
				MatchReasoning:  candidate.MatchReasoning,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("create candidate: %w", err)
			}
		}
		return nil
	})
}

// ListJobs returns the caller's screening batches, newest first.
func (h *HiringHandler) ListJobs(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var jobs []database.Job
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		middleware.LoggerFromContext(c).Error("list jobs failed", slog.Any("error", err))
		Internal(c, "failed to list jobs")
		return
	}

	items := make([]gin.H, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, gin.H{
			"job_id":            job.JobID,
			"title":             job.Title,
			"status":            job.Status,
			"total_resumes":     job.TotalResumes,
			"processed_resumes": job.ProcessedResumes,
			"created_at":        job.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"jobs": items})
}

// GetJobCandidates returns the ranked candidates of one job, each with a
// short-lived download link for the original resume when it is still stored.
func (h *HiringHandler) GetJobCandidates(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	job, ok := h.loadOwnedJob(c, userID, c.Param("jobID"))
	if !ok {
		return
	}

	var candidates []database.Candidate
	if err := h.db.WithContext(c.Request.Context()).
		Where("job_ref = ?", job.ID).
		Order("score DESC, skill_score DESC, experience_score DESC").
		Find(&candidates).Error; err != nil {
		middleware.LoggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to list candidates")
		return
	}

	items := make([]gin.H, 0, len(candidates))
	for _, candidate := range candidates {
		item := gin.H{
			"candidate_id":     candidate.CandidateID,
			"name":             candidate.Name,
			"email":            candidate.Email,
			"phone":            candidate.Phone,
			"filename":         candidate.Filename,
			"score":            candidate.Score,
			"skill_score":      candidate.SkillScore,
			"experience_score": candidate.ExperienceScore,
			"summary":          candidate.Summary,
			"skills":           candidate.Skills,
			"experience":       candidate.Experience,
			"match_reasoning":  candidate.MatchReasoning,
			"is_selected":      candidate.IsSelected,
		}
		if candidate.ResumeObjectKey != "" {
			url, err := h.storage.GeneratePresignedURLWithParams(
				c.Request.Context(), candidate.ResumeObjectKey, 15*time.Minute,
				map[string]string{
					"response-content-disposition": fmt.Sprintf("attachment; filename=%q", candidate.Filename),
				},
			)
			if err == nil {
				item["resume_url"] = url
			}
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":     job.JobID,
		"summary":    job.Summary,
		"status":     job.Status,
		"candidates": items,
	})
}

type rankRequest struct {
	Candidates        []map[string]any `json:"candidates" binding:"required"`
	MaxCandidates     *int             `json:"max_candidates"`
	MinScoreThreshold *int             `json:"min_score_threshold"`
}

// RankCandidates orders raw assessments, applies the selection cutoff and
// returns the tier buckets plus a text summary. Stateless: nothing is stored.
func (h *HiringHandler) RankCandidates(c *gin.Context) {
	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	maxCandidates := h.cfg.MaxCandidates
	if req.MaxCandidates != nil {
		maxCandidates = *req.MaxCandidates
	}
	minScore := h.cfg.MinScoreThreshold
	if req.MinScoreThreshold != nil {
		minScore = *req.MinScoreThreshold
	}

	assessments := make([]hiring.MatchAssessment, 0, len(req.Candidates))
	for _, raw := range req.Candidates {
		assessments = append(assessments, hiring.NormalizeAssessment(raw))
	}

	ranked := hiring.Rank(assessments)
	c.JSON(http.StatusOK, gin.H{
		"ranked":   ranked,
		"selected": hiring.SelectTop(ranked, maxCandidates, minScore),
		"tiers":    hiring.Categorize(ranked),
		"summary":  hiring.Summarize(ranked),
	})
}

type compareRequest struct {
	Candidate1 map[string]any `json:"candidate1" binding:"required"`
	Candidate2 map[string]any `json:"candidate2" binding:"required"`
}

// CompareCandidates puts two assessments side by side.
func (h *HiringHandler) CompareCandidates(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	comparison := hiring.Compare(
		hiring.NormalizeAssessment(req.Candidate1),
		hiring.NormalizeAssessment(req.Candidate2),
	)
	c.JSON(http.StatusOK, comparison)
}

type scheduleRequest struct {
	JobID        string     `json:"job_id" binding:"required"`
	CandidateIDs []string   `json:"candidate_ids" binding:"required"`
	StartDate    *time.Time `json:"start_date"`
}

// ScheduleInterviews books calendar slots for the selected candidates of a
// job and records the bookings. The drafts in the response can be passed to
// the confirmation endpoint as-is.
func (h *HiringHandler) ScheduleInterviews(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	logger := middleware.LoggerFromContext(c)

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	job, ok := h.loadOwnedJob(c, userID, req.JobID)
	if !ok {
		return
	}

	var stored []database.Candidate
	if err := h.db.WithContext(c.Request.Context()).
		Where("job_ref = ?", job.ID).
		Find(&stored).Error; err != nil {
		logger.Error("load candidates failed", slog.Any("error", err))
		Internal(c, "failed to load candidates")
		return
	}

	pool := make([]hiring.Candidate, 0, len(stored))
	for _, candidate := range stored {
		pool = append(pool, hiring.Candidate{
			ID:      candidate.CandidateID,
			Name:    candidate.Name,
			Email:   candidate.Email,
			Phone:   candidate.Phone,
			JobID:   job.JobID,
			Summary: candidate.Summary,
		})
	}

	var startDate time.Time
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	result := h.agent.ScheduleInterviews(
		c.Request.Context(), job.JobID, req.CandidateIDs, pool, job.Title, startDate,
	)

	if len(result.Scheduled) > 0 {
		if err := h.persistInterviews(c, job.ID, result.Scheduled); err != nil {
			logger.Error("persist interviews failed", slog.Any("error", err))
			Internal(c, "failed to store interviews")
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

func (h *HiringHandler) persistInterviews(c *gin.Context, jobRef uint, scheduled []hiring.ScheduledInterview) error {
	return h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(scheduled))
		for _, interview := range scheduled {
			record := database.Interview{
				EventID:        interview.EventID,
				JobRef:         jobRef,
				CandidateID:    interview.CandidateID,
				CandidateName:  interview.CandidateName,
				CandidateEmail: interview.CandidateEmail,
				InterviewDate:  interview.InterviewDate,
				InterviewLink:  interview.InterviewLink,
				Status:         "scheduled",
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("create interview: %w", err)
			}
			ids = append(ids, interview.CandidateID)
		}
		if err := tx.Model(&database.Candidate{}).
			Where("candidate_id IN ?", ids).
			Update("is_selected", true).Error; err != nil {
			return fmt.Errorf("mark candidates selected: %w", err)
		}
		return nil
	})
}

type confirmationsRequest struct {
	Drafts []hiring.EmailDraft `json:"drafts" binding:"required"`
}

// SendConfirmations dispatches the confirmation drafts produced by the
// scheduling endpoint.
func (h *HiringHandler) SendConfirmations(c *gin.Context) {
	var req confirmationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result := h.agent.DispatchConfirmations(c.Request.Context(), req.Drafts)
	c.JSON(http.StatusOK, result)
}

// AvailableSlots returns free interview slots in the requested window.
// Defaults to the next business week starting tomorrow.
func (h *HiringHandler) AvailableSlots(c *gin.Context) {
	start, err := parseDateParam(c.Query("start_date"), time.Now().Add(24*time.Hour))
	if err != nil {
		BadRequest(c, "invalid start_date")
		return
	}
	end, err := parseDateParam(c.Query("end_date"), start.AddDate(0, 0, 7))
	if err != nil {
		BadRequest(c, "invalid end_date")
		return
	}
	if end.Before(start) {
		BadRequest(c, "end_date before start_date")
		return
	}

	duration := h.agent.Composer().DurationMinutes
	slots := h.agent.AvailableSlots(c.Request.Context(), start, end, duration)

	c.JSON(http.StatusOK, gin.H{
		"available_slots":  slots,
		"count":            len(slots),
		"duration_minutes": duration,
	})
}

type draftEmailRequest struct {
	CandidateName  string    `json:"candidate_name" binding:"required"`
	CandidateEmail string    `json:"candidate_email" binding:"required"`
	InterviewDate  time.Time `json:"interview_date" binding:"required"`
	InterviewLink  string    `json:"interview_link"`
	JobTitle       string    `json:"job_title"`
}

// DraftEmail renders a confirmation email without sending it.
func (h *HiringHandler) DraftEmail(c *gin.Context) {
	var req draftEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	draft := h.agent.Composer().Draft(
		req.CandidateName, req.CandidateEmail, req.InterviewDate, req.InterviewLink, req.JobTitle,
	)
	c.JSON(http.StatusOK, draft)
}

// CancelInterview deletes the calendar event and marks the stored interview
// record cancelled.
func (h *HiringHandler) CancelInterview(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	logger := middleware.LoggerFromContext(c)

	eventID := c.Param("eventID")
	ctx := c.Request.Context()

	var interview database.Interview
	if err := h.db.WithContext(ctx).Where("event_id = ?", eventID).First(&interview).Error; err != nil {
		NotFound(c, "interview not found")
		return
	}

	var job database.Job
	if err := h.db.WithContext(ctx).First(&job, interview.JobRef).Error; err != nil || job.UserID != userID {
		NotFound(c, "interview not found")
		return
	}

	if h.canceler != nil {
		if err := h.canceler.CancelInterview(ctx, eventID); err != nil {
			logger.Error("cancel calendar event failed",
				slog.String("event_id", eventID),
				slog.Any("error", err),
			)
			Internal(c, "failed to cancel interview")
			return
		}
	}

	if err := h.db.WithContext(ctx).Model(&interview).Update("status", "cancelled").Error; err != nil {
		logger.Error("update interview status failed", slog.Any("error", err))
		Internal(c, "failed to update interview")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "status": "cancelled"})
}

func (h *HiringHandler) loadOwnedJob(c *gin.Context, userID uint, jobID string) (database.Job, bool) {
	var job database.Job
	err := h.db.WithContext(c.Request.Context()).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		First(&job).Error
	if err != nil {
		NotFound(c, "job not found")
		return database.Job{}, false
	}
	return job, true
}

// parseStringList accepts either a JSON array or a comma-separated string.
func parseStringList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}
	if strings.HasPrefix(value, "[") {
		var list []string
		if err := json.Unmarshal([]byte(value), &list); err == nil {
			return list
		}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseDateParam accepts a plain date or a full RFC 3339 timestamp.
func parseDateParam(value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func mustJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
