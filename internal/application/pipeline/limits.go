package pipeline

import (
	"context"
	"errors"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
)

// LimitsStage enforces the per-file size ceiling and the per-user storage
// quota. The quota read here is optimistic; the persistence stage re-checks
// it so two near-the-limit concurrent uploads cannot both pass.
type LimitsStage struct {
	limits    Limits
	retriever database.Retriever
}

func NewLimitsStage(limits Limits, retriever database.Retriever) *LimitsStage {
	return &LimitsStage{limits: limits, retriever: retriever}
}

func (s *LimitsStage) Name() string { return "limits" }

func (s *LimitsStage) Ready(pc *Context) error {
	if pc.Processing.MIME == "" {
		return errors.New("file type not validated")
	}

	return nil
}

func (s *LimitsStage) Run(ctx context.Context, pc *Context) error {
	size := int64(len(pc.Request.Data))

	ceiling := s.limits.MaxStaticBytes
	if pc.Processing.MIME == "image/gif" {
		// Animated formats get a lower ceiling; decoded frames multiply
		// the memory cost.
		ceiling = s.limits.MaxAnimatedBytes
	}
	if size > ceiling {
		return entity.NewFatal(entity.KindFileTooLarge,
			"file is %d bytes, limit for %s is %d", size, pc.Processing.MIME, ceiling)
	}

	used, err := s.retriever.TotalActiveBytes(ctx, pc.Request.UserID)
	if err != nil {
		return entity.WrapFatal(entity.KindInternal, err, "quota lookup failed")
	}
	if used+size > s.limits.UserQuotaBytes {
		return entity.NewFatal(entity.KindQuotaExceeded,
			"upload of %d bytes exceeds remaining quota of %d", size, s.limits.UserQuotaBytes-used)
	}

	return nil
}
