package worker

// Unified WebSocket message protocol, forwarded to the frontend through
// Redis pub/sub. Field names must stay in sync with the frontend parser.
type BatchNotifyMessage struct {
	Status           string `json:"status"`
	JobID            string `json:"job_id"`
	CorrelationID    string `json:"correlation_id"`
	ErrorCode        int    `json:"error_code"`
	ErrorMessage     string `json:"error_message"`
	TotalResumes     int    `json:"total_resumes"`
	ProcessedResumes int    `json:"processed_resumes"`
}
