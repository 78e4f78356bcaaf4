package abstraction

import (
	"context"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

type Attacher interface {
	Attach(ctx context.Context, userID, postID, photoID string, displayOrder int) (*model.Photo, error)
}

type Deleter interface {
	Delete(ctx context.Context, userID, photoID string) error
}

type Getter interface {
	Get(ctx context.Context, photoID string) (*model.Photo, error)
}

type Lister interface {
	ListOwn(ctx context.Context, userID string) ([]model.Photo, error)
}
