package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants, shared by queue producers and consumers.
const (
	TypeResumeBatchAnalyze = "resume:batch_analyze"
)

// StoredDocument points at one uploaded resume blob in object storage.
type StoredDocument struct {
	ObjectKey string `json:"object_key"`
	Filename  string `json:"filename"`
}

// ResumeBatchPayload carries everything the worker needs to run one batch:
// the pre-assigned job id, the uploaded documents and the job description.
type ResumeBatchPayload struct {
	JobID           string           `json:"job_id"`
	UserID          uint             `json:"user_id"`
	CorrelationID   string           `json:"correlation_id"`
	Documents       []StoredDocument `json:"documents"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Requirements    []string         `json:"requirements"`
	Skills          []string         `json:"skills"`
	ExperienceLevel string           `json:"experience_level"`
}

// NewResumeBatchTask builds the queue task for one resume batch.
func NewResumeBatchTask(p ResumeBatchPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResumeBatchAnalyze, payload), nil
}
