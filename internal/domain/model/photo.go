package model

import "time"

// ModerationStatus is the persisted moderation state of a photo.
type ModerationStatus string

const (
	ModerationPending     ModerationStatus = "pending"
	ModerationApproved    ModerationStatus = "approved"
	ModerationRejected    ModerationStatus = "rejected"
	ModerationNeedsReview ModerationStatus = "needs_review"
)

// Photo is the durable metadata record of one sanitized upload. Photos are
// soft-deleted; physical object cleanup belongs to the reconciliation sweep.
type Photo struct {
	ID               string           `bson:"_id"`
	OwnerID          string           `bson:"owner_id"`
	CandidateID      string           `bson:"candidate_id,omitempty"`
	PostID           string           `bson:"post_id,omitempty"`
	PhotoType        string           `bson:"photo_type"`
	Purpose          string           `bson:"purpose"`
	StorageKey       string           `bson:"storage_key"`
	ThumbnailKey     string           `bson:"thumbnail_key"`
	URL              string           `bson:"url"`
	ThumbnailURL     string           `bson:"thumbnail_url"`
	OriginalSize     int64            `bson:"original_size"`
	TransformedSize  int64            `bson:"transformed_size"`
	Dimensions       Dimensions       `bson:"dimensions"`
	MIMEType         string           `bson:"mime_type"`
	ModerationStatus ModerationStatus `bson:"moderation_status"`
	Caption          string           `bson:"caption,omitempty"`
	Active           bool             `bson:"active"`
	CreatedAt        time.Time        `bson:"created_at"`
	UpdatedAt        time.Time        `bson:"updated_at"`
}

type Dimensions struct {
	Width  int `bson:"width"`
	Height int `bson:"height"`
}

// PostPhotoLink pairs a post with a photo. The (post_id, photo_id) pair is
// unique; display order controls gallery position.
type PostPhotoLink struct {
	ID           string    `bson:"_id"`
	PostID       string    `bson:"post_id"`
	PhotoID      string    `bson:"photo_id"`
	DisplayOrder int       `bson:"display_order"`
	CreatedAt    time.Time `bson:"created_at"`
}
