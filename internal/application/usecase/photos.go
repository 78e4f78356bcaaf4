package usecase

import (
	"context"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
)

// Attacher links an existing photo to a post after creation time.
type Attacher struct {
	retriever database.Retriever
	writer    database.Writer
}

func NewAttacher(retriever database.Retriever, writer database.Writer) *Attacher {
	return &Attacher{retriever: retriever, writer: writer}
}

func (a *Attacher) Attach(ctx context.Context, userID, postID, photoID string, displayOrder int) (*model.Photo, error) {
	photo, err := a.retriever.GetByID(ctx, photoID)
	if err != nil {
		return nil, entity.WrapFatal(entity.KindNotFound, err, "photo %s not found", photoID)
	}
	if photo.OwnerID != userID {
		return nil, entity.NewFatal(entity.KindPermissionDenied, "photo %s is not owned by the caller", photoID)
	}

	if displayOrder < 1 {
		displayOrder = 1
	}

	if err := a.writer.AttachToPost(ctx, photoID, postID, displayOrder); err != nil {
		return nil, entity.WrapFatal(entity.KindPersistenceConflict, err, "attach photo to post")
	}

	photo.PostID = postID

	return photo, nil
}

// Deleter soft-deletes photos. Physical object removal is deferred to the
// reconciliation sweep.
type Deleter struct {
	remover database.Remover
}

func NewDeleter(remover database.Remover) *Deleter {
	return &Deleter{remover: remover}
}

func (d *Deleter) Delete(ctx context.Context, userID, photoID string) error {
	if err := d.remover.SoftDelete(ctx, photoID, userID); err != nil {
		return entity.WrapFatal(entity.KindNotFound, err, "photo %s not found", photoID)
	}

	return nil
}

// Getter resolves photo descriptors for active records.
type Getter struct {
	retriever database.Retriever
}

func NewGetter(retriever database.Retriever) *Getter {
	return &Getter{retriever: retriever}
}

func (g *Getter) Get(ctx context.Context, photoID string) (*model.Photo, error) {
	photo, err := g.retriever.GetByID(ctx, photoID)
	if err != nil {
		return nil, entity.WrapFatal(entity.KindNotFound, err, "photo %s not found", photoID)
	}

	return photo, nil
}

// Lister returns the caller's own active photos, newest first.
type Lister struct {
	lister database.Lister
}

func NewLister(lister database.Lister) *Lister {
	return &Lister{lister: lister}
}

func (l *Lister) ListOwn(ctx context.Context, userID string) ([]model.Photo, error) {
	photos, err := l.lister.ListByOwner(ctx, userID)
	if err != nil {
		return nil, entity.WrapFatal(entity.KindInternal, err, "list photos")
	}

	return photos, nil
}
