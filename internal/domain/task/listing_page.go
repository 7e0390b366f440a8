package task

import "pcbanai/core/internal/domain"

const TypeListingPage = "ListingPageTask"

// ListingPageTask carries one scraped listing page for a (retailer, raw
// category) pair, ready to be persisted by a worker.
type ListingPageTask struct {
	RetailerID string             `json:"retailer_id"`
	Category   domain.RawCategory `json:"category"`
	Page       int                `json:"page"`
	Listings   []domain.Listing   `json:"listings"`
}

func (t *ListingPageTask) TaskType() string {
	return TypeListingPage
}

func (t *ListingPageTask) TaskValue() ([]byte, error) {
	return marshalTask(t)
}
