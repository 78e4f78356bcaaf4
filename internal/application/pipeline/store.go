package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/minio"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/utils"
)

// StoreStage writes the transformed image and its thumbnail to object
// storage. Keys are freshly generated per attempt (never the client
// filename), so a retried upload cannot collide; a failure after this stage
// leaves orphans for the reconciliation sweep, not for synchronous rollback.
type StoreStage struct {
	uploader    minio.Uploader
	remover     minio.Remover
	preset      Preset
	thumbFolder string
	retries     int
}

func NewStoreStage(uploader minio.Uploader, remover minio.Remover, preset Preset, thumbFolder string, retries int) *StoreStage {
	return &StoreStage{
		uploader:    uploader,
		remover:     remover,
		preset:      preset,
		thumbFolder: thumbFolder,
		retries:     retries,
	}
}

func (s *StoreStage) Name() string { return "store" }

func (s *StoreStage) Ready(pc *Context) error {
	if pc.Processing.Transformed == nil {
		return errors.New("no transformed image")
	}
	if pc.Processing.Thumbnail == nil {
		return errors.New("no thumbnail")
	}
	if pc.Processing.ModerationStatus == "" {
		return errors.New("no moderation outcome")
	}

	return nil
}

func (s *StoreStage) Run(ctx context.Context, pc *Context) error {
	id := uuid.New().String()
	ext := utils.GetExtensionFromMimeType(pc.Processing.Format)
	key := fmt.Sprintf("%s/%s%s", s.preset.Folder, id, ext)
	thumbKey := fmt.Sprintf("%s/%s/%s.jpg", s.thumbFolder, s.preset.Folder, id)

	// Writes are shielded from caller cancellation. A client abort takes
	// effect at the next stage boundary, never mid-transfer; the per-write
	// timeout inside the uploader still bounds each attempt.
	writeCtx := context.WithoutCancel(ctx)

	url, err := s.putWithRetry(ctx, writeCtx, key, pc.Processing.Transformed, pc.Processing.Format)
	if err != nil {
		return entity.WrapFatal(entity.KindStorageWriteFailure, err, "image upload failed")
	}

	thumbURL, err := s.putWithRetry(ctx, writeCtx, thumbKey, pc.Processing.Thumbnail, "image/jpeg")
	if err != nil {
		// Best-effort removal of the full-size object; anything missed is
		// the reconciliation sweep's responsibility.
		if rmErr := s.remover.Remove(writeCtx, key); rmErr != nil {
			logger.Error("failed to remove image after thumbnail upload failed",
				"key", key, "err", rmErr)
		}

		return entity.WrapFatal(entity.KindStorageWriteFailure, err, "thumbnail upload failed")
	}

	pc.Processing.StorageKey = key
	pc.Processing.ThumbnailKey = thumbKey
	pc.Processing.URL = url
	pc.Processing.ThumbnailURL = thumbURL

	return nil
}

// putWithRetry attempts the write at most 1+retries times. The bound is
// deliberate: endless retries against an eventually-consistent store mask
// permanent configuration problems. In-flight attempts run on writeCtx,
// detached from caller cancellation; ctx only gates starting another attempt.
func (s *StoreStage) putWithRetry(ctx, writeCtx context.Context, key string, data []byte, contentType string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		url, err := s.uploader.Put(writeCtx, key, data, contentType)
		if err == nil {
			return url, nil
		}

		lastErr = err
		logger.Warn("object write failed", "key", key, "attempt", attempt+1, "err", err)

		if ctx.Err() != nil {
			break
		}
	}

	return "", lastErr
}
