package moderation

import (
	"context"
	"errors"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
)

// ErrUnavailable marks transport-level classifier failures (timeout, refused
// connection, 5xx). Policy decides whether it is fatal or routes the upload to
// pending manual review.
var ErrUnavailable = errors.New("moderation service unavailable")

// Classifier is the opaque scored visual-content classifier.
type Classifier interface {
	Classify(ctx context.Context, image []byte, mimeType string) (*entity.ModerationVerdict, error)
}
