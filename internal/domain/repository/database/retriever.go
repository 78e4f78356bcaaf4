package database

import (
	"context"
	"errors"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

// ErrNotFound is returned when no active photo matches the lookup.
var ErrNotFound = errors.New("photo not found")

type Retriever interface {
	// GetByID returns the active photo with the given id.
	GetByID(ctx context.Context, id string) (*model.Photo, error)

	// TotalActiveBytes sums the transformed sizes of the owner's active
	// photos. Used by the quota guard and by the persistence re-check.
	TotalActiveBytes(ctx context.Context, ownerID string) (int64, error)
}
