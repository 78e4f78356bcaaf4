package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase/abstraction"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	minioRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/minio"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/utils"
)

// PresignConfig drives the direct-to-storage upload shape.
type PresignConfig struct {
	StagingFolder string `yaml:"staging_folder"`
	TTLSeconds    int64  `yaml:"ttl_in_s"`
	MaxFileSize   int64  `yaml:"max_file_size"`
}

var presignableTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// Presigner implements the alternative upload shape: the caller gets a
// short-lived write-only URL to a staging key, uploads directly, then
// confirms. Confirmation reads the staged object back and runs the full
// pipeline from the signature check, because a write-only credential cannot
// validate content before bytes land.
type Presigner struct {
	presigner minioRepo.Presigner
	reader    minioRepo.Reader
	remover   minioRepo.Remover
	uploader  abstraction.Uploader
	cfg       PresignConfig
}

func NewPresigner(presigner minioRepo.Presigner, reader minioRepo.Reader,
	remover minioRepo.Remover, uploader abstraction.Uploader, cfg PresignConfig,
) *Presigner {
	return &Presigner{
		presigner: presigner,
		reader:    reader,
		remover:   remover,
		uploader:  uploader,
		cfg:       cfg,
	}
}

func (p *Presigner) Presign(ctx context.Context, userID, contentType string, photoType entity.PhotoType) (*entity.PresignGrant, error) {
	normalized := utils.NormalizeMimeType(contentType)
	if _, ok := presignableTypes[normalized]; !ok {
		return nil, entity.NewFatal(entity.KindInvalidRequest, "content type %s is not allowed", contentType)
	}

	key := fmt.Sprintf("%s/%s%s", p.cfg.StagingFolder, uuid.New().String(),
		utils.GetExtensionFromMimeType(normalized))

	expiry := time.Duration(p.cfg.TTLSeconds) * time.Second
	url, err := p.presigner.PresignPut(ctx, key, expiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload url: %w", err)
	}

	logger.Info("issued staging upload url", "user", userID, "key", key)

	return &entity.PresignGrant{
		ObjectKey:   key,
		UploadURL:   url,
		ExpiresAt:   time.Now().Add(expiry),
		MaxFileSize: p.cfg.MaxFileSize,
		ContentType: normalized,
	}, nil
}

func (p *Presigner) Confirm(ctx context.Context, req *abstraction.ConfirmRequest) (*entity.PipelineResult, error) {
	if !strings.HasPrefix(req.ObjectKey, p.cfg.StagingFolder+"/") {
		return nil, entity.NewFatal(entity.KindInvalidRequest, "object key %q is not a staging key", req.ObjectKey)
	}

	data, contentType, err := p.reader.Read(ctx, req.ObjectKey)
	if err != nil {
		return nil, entity.WrapFatal(entity.KindNotFound, err, "read staged object %s", req.ObjectKey)
	}

	result, err := p.uploader.Upload(ctx, &entity.UploadRequest{
		Data:         data,
		DeclaredMIME: contentType,
		Filename:     req.ObjectKey,
		Size:         int64(len(data)),
		UserID:       req.UserID,
		PhotoType:    req.PhotoType,
		Purpose:      req.Purpose,
		Caption:      req.Caption,
		CandidateID:  req.CandidateID,
		PostID:       req.PostID,
	})

	// The staging object is temporary regardless of outcome: on success the
	// sanitized copy has its own key, on failure the bytes must not linger.
	if rmErr := p.remover.Remove(ctx, req.ObjectKey); rmErr != nil {
		logger.Error("failed to remove staging object", "key", req.ObjectKey, "err", rmErr)
	}

	return result, err
}
