package broker

import "context"

// Event kinds published to the review stream.
const (
	EventNeedsReview   = "needs_review"
	EventOrphanedBlob  = "orphaned_object"
	EventStagingSwept  = "staging_swept"
	EventPendingReview = "pending_review"
)

// ReviewEvent is one message for the asynchronous review/cleanup consumers.
type ReviewEvent struct {
	Kind       string
	PhotoID    string
	StorageKey string
	Detail     string
}

type Publisher interface {
	Publish(ctx context.Context, event ReviewEvent) error
}
