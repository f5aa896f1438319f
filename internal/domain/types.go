package domain

// JobStatus tracks the lifecycle of a single transcription run.
type JobStatus string

const (
	JobStatusReceived     JobStatus = "received"
	JobStatusTranscribing JobStatus = "transcribing"
	JobStatusDone         JobStatus = "done"
	JobStatusFailed       JobStatus = "failed"
)

// MediaAsset is one staged upload awaiting transcription. The file at Path
// is transient and is removed after the first terminal ASR response.
type MediaAsset struct {
	ID              string  `json:"id"`
	Path            string  `json:"path"`
	MIMEType        string  `json:"mimeType"`
	SizeBytes       int64   `json:"sizeBytes"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// Job stores the identity and lifecycle status of one in-flight run.
type Job struct {
	ID      string    `json:"id"`
	AssetID string    `json:"assetId"`
	Status  JobStatus `json:"status"`
}
