package database

import (
	"context"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

type Lister interface {
	// ActiveStorageKeys returns every object key (full-size and thumbnail)
	// referenced by an active photo record.
	ActiveStorageKeys(ctx context.Context) (map[string]struct{}, error)

	// ListByOwner returns the owner's active photos, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Photo, error)
}
