package abstraction

import (
	"context"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
)

// ConfirmRequest finalizes a presigned direct-to-storage upload.
type ConfirmRequest struct {
	ObjectKey   string
	UserID      string
	PhotoType   entity.PhotoType
	Purpose     entity.PhotoPurpose
	Caption     string
	CandidateID string
	PostID      string
}

type Presigner interface {
	Presign(ctx context.Context, userID, contentType string, photoType entity.PhotoType) (*entity.PresignGrant, error)
	Confirm(ctx context.Context, req *ConfirmRequest) (*entity.PipelineResult, error)
}
