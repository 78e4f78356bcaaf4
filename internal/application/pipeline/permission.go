package pipeline

import (
	"context"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/identity"
)

// PermissionStage confirms the acting user may attach media to the target
// candidate profile. It runs before any decode work so unauthorized uploads
// are rejected cheaply.
type PermissionStage struct {
	verifier identity.Verifier
}

func NewPermissionStage(verifier identity.Verifier) *PermissionStage {
	return &PermissionStage{verifier: verifier}
}

func (s *PermissionStage) Name() string { return "permission" }

func (s *PermissionStage) Ready(pc *Context) error { return nil }

func (s *PermissionStage) Run(ctx context.Context, pc *Context) error {
	if pc.Request.CandidateID == "" {
		return nil
	}

	ok, err := s.verifier.OwnsCandidate(ctx, pc.Request.UserID, pc.Request.CandidateID)
	if err != nil {
		return entity.WrapFatal(entity.KindPermissionDenied, err,
			"ownership of candidate %s could not be confirmed", pc.Request.CandidateID)
	}
	if !ok {
		return entity.NewFatal(entity.KindPermissionDenied,
			"user does not own candidate %s", pc.Request.CandidateID)
	}

	return nil
}
