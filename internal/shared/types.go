package shared

// Task type names used by the asynq queue and worker.
const (
	TypeGenerateDerivatives = "photo:generate_derivatives"
	TypeCleanupStaleUploads = "photo:cleanup_stale_uploads"
)

// Queue names, highest priority first.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// GenerateDerivativesPayload carries the object key of a freshly
// registered upload that needs resized variants.
type GenerateDerivativesPayload struct {
	ObjectKey string `json:"objectKey"`
}
