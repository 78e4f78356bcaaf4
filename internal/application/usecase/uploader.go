package usecase

import (
	"context"
	"fmt"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/pipeline"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/broker"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/identity"
	minioRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/minio"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/moderation"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

// Uploader runs the full processing pipeline for one submitted file. A fresh
// executor is assembled per request from the injected config; nothing is
// shared between concurrent uploads.
type Uploader struct {
	retriever  database.Retriever
	writer     database.Writer
	uploader   minioRepo.Uploader
	remover    minioRepo.Remover
	classifier moderation.Classifier
	verifier   identity.Verifier
	publisher  broker.Publisher
	cfg        *pipeline.Config
}

func NewUploader(retriever database.Retriever, writer database.Writer,
	uploader minioRepo.Uploader, remover minioRepo.Remover,
	classifier moderation.Classifier, verifier identity.Verifier,
	publisher broker.Publisher, cfg *pipeline.Config,
) *Uploader {
	return &Uploader{
		retriever:  retriever,
		writer:     writer,
		uploader:   uploader,
		remover:    remover,
		classifier: classifier,
		verifier:   verifier,
		publisher:  publisher,
		cfg:        cfg,
	}
}

func (u *Uploader) Upload(ctx context.Context, req *entity.UploadRequest) (*entity.PipelineResult, error) {
	preset, ok := u.cfg.PresetFor(req.PhotoType)
	if !ok {
		return nil, fmt.Errorf("unsupported photo type %q", req.PhotoType)
	}

	exec := pipeline.NewExecutor(
		pipeline.NewValidateStage(),
		pipeline.NewLimitsStage(u.cfg.Limits, u.retriever),
		pipeline.NewPermissionStage(u.verifier),
		pipeline.Parallel("render",
			pipeline.NewTransformStage(preset, u.cfg.JPEGQuality),
			pipeline.NewThumbnailStage(preset, u.cfg.JPEGQuality),
		),
		pipeline.NewModerateStage(u.classifier, u.cfg.Moderation),
		pipeline.NewStoreStage(u.uploader, u.remover, preset, u.cfg.ThumbFolder, u.cfg.StoreRetries),
		pipeline.NewPersistStage(u.writer),
	)

	result := exec.Run(ctx, req)

	if result.Success && result.Photo != nil {
		u.publishReview(ctx, result.Photo)
	}

	return result, nil
}

// publishReview forwards non-approved outcomes to the review stream.
// Best effort: a broker outage never fails an already persisted upload.
func (u *Uploader) publishReview(ctx context.Context, photo *model.Photo) {
	var kind string
	switch photo.ModerationStatus {
	case model.ModerationNeedsReview:
		kind = broker.EventNeedsReview
	case model.ModerationPending:
		kind = broker.EventPendingReview
	default:
		return
	}

	err := u.publisher.Publish(ctx, broker.ReviewEvent{
		Kind:       kind,
		PhotoID:    photo.ID,
		StorageKey: photo.StorageKey,
		Detail:     string(photo.ModerationStatus),
	})
	if err != nil {
		logger.Error("failed to publish review event", "photo", photo.ID, "err", err)
	}
}
