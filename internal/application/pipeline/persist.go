package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
)

// PersistStage creates the durable photo record, and the post link when the
// upload targets a post at creation time, as one transaction. On failure the
// already-written objects become orphans flagged for the reconciliation
// sweep; atomicity holds only within the relational side.
type PersistStage struct {
	writer database.Writer
}

func NewPersistStage(writer database.Writer) *PersistStage {
	return &PersistStage{writer: writer}
}

func (s *PersistStage) Name() string { return "persist" }

func (s *PersistStage) Ready(pc *Context) error {
	if pc.Processing.StorageKey == "" || pc.Processing.ThumbnailKey == "" {
		return errors.New("objects not stored")
	}

	return nil
}

func (s *PersistStage) Run(ctx context.Context, pc *Context) error {
	now := time.Now().UTC()
	req := pc.Request

	photo := &model.Photo{
		ID:               uuid.New().String(),
		OwnerID:          req.UserID,
		CandidateID:      req.CandidateID,
		PhotoType:        string(req.PhotoType),
		Purpose:          string(req.Purpose),
		StorageKey:       pc.Processing.StorageKey,
		ThumbnailKey:     pc.Processing.ThumbnailKey,
		URL:              pc.Processing.URL,
		ThumbnailURL:     pc.Processing.ThumbnailURL,
		OriginalSize:     int64(len(req.Data)),
		TransformedSize:  int64(len(pc.Processing.Transformed)),
		Dimensions:       model.Dimensions{Width: pc.Processing.Width, Height: pc.Processing.Height},
		MIMEType:         pc.Processing.Format,
		ModerationStatus: pc.Processing.ModerationStatus,
		Caption:          req.Caption,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var err error
	if req.PostID != "" {
		photo.PostID = req.PostID
		link := &model.PostPhotoLink{
			ID:           uuid.New().String(),
			PostID:       req.PostID,
			PhotoID:      photo.ID,
			DisplayOrder: 1,
			CreatedAt:    now,
		}
		err = s.writer.CreatePhotoWithLink(ctx, photo, link)
	} else {
		err = s.writer.CreatePhoto(ctx, photo)
	}

	if err != nil {
		switch {
		case errors.Is(err, database.ErrQuotaExceeded):
			return entity.WrapFatal(entity.KindQuotaExceeded, err, "quota exceeded at persistence")
		case errors.Is(err, database.ErrDuplicateLink):
			return entity.WrapFatal(entity.KindPersistenceConflict, err, "photo already attached to post")
		default:
			return entity.WrapFatal(entity.KindPersistenceConflict, err, "photo record creation failed")
		}
	}

	pc.Processing.Photo = photo

	return nil
}
