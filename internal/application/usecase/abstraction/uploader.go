package abstraction

import (
	"context"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
)

type Uploader interface {
	Upload(ctx context.Context, req *entity.UploadRequest) (*entity.PipelineResult, error)
}
