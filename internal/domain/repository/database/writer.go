package database

import (
	"context"
	"errors"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

// ErrQuotaExceeded is returned when the persistence-time quota re-check fails.
var ErrQuotaExceeded = errors.New("user storage quota exceeded")

// ErrDuplicateLink is returned when a (post, photo) pair already exists.
var ErrDuplicateLink = errors.New("photo already attached to post")

type Writer interface {
	// CreatePhoto persists a new photo record. The owner's quota is
	// re-checked immediately before the insert.
	CreatePhoto(ctx context.Context, photo *model.Photo) error

	// CreatePhotoWithLink persists the photo and its post link as one
	// transaction: neither row is observable unless both commit.
	CreatePhotoWithLink(ctx context.Context, photo *model.Photo, link *model.PostPhotoLink) error

	// AttachToPost links an existing photo to a post, transactionally
	// creating the link row and setting the record's post id.
	AttachToPost(ctx context.Context, photoID, postID string, displayOrder int) error
}
