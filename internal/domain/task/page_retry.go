package task

import "pcbanai/core/internal/domain"

const TypePageRetry = "PageRetryTask"

// PageRetryTask re-queues a listing page whose fetch or persist failed.
type PageRetryTask struct {
	RetailerID string             `json:"retailer_id"`
	Category   domain.RawCategory `json:"category"`
	Page       int                `json:"page"`
	RetryCount int                `json:"retry_count"`
	Error      string             `json:"error"`
}

func (t *PageRetryTask) TaskType() string {
	return TypePageRetry
}

func (t *PageRetryTask) TaskValue() ([]byte, error) {
	return marshalTask(t)
}
