package pipeline

import (
	"context"
	"errors"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/moderation"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

// alwaysReject categories are fatal regardless of context flags, thresholds
// or service-availability policy.
var alwaysReject = map[string]struct{}{
	entity.CategoryExplicitSexual:  {},
	entity.CategoryExtremeViolence: {},
}

// ModerateStage submits the transformed image to the visual classifier and
// applies the decision policy. It runs strictly before any object-store
// write so rejected content is never durably stored, even transiently.
type ModerateStage struct {
	classifier moderation.Classifier
	policy     ModerationPolicy
}

func NewModerateStage(classifier moderation.Classifier, policy ModerationPolicy) *ModerateStage {
	return &ModerateStage{classifier: classifier, policy: policy}
}

func (s *ModerateStage) Name() string { return "moderate" }

func (s *ModerateStage) Ready(pc *Context) error {
	if pc.Processing.Transformed == nil {
		return errors.New("no transformed image")
	}

	return nil
}

func (s *ModerateStage) Run(ctx context.Context, pc *Context) error {
	verdict, err := s.classifier.Classify(ctx, pc.Processing.Transformed, pc.Processing.Format)
	if err != nil {
		if !errors.Is(err, moderation.ErrUnavailable) || !s.policy.FailOpen {
			return entity.WrapFatal(entity.KindModerationUnavailable, err,
				"content classification failed")
		}

		// Availability over certainty: the upload proceeds flagged for
		// deferred human review.
		logger.Warn("classifier unreachable, deferring to manual review",
			"user", pc.Request.UserID, "err", err)
		pc.Processing.ModerationStatus = model.ModerationPending

		return entity.NewAdvisory(entity.KindModerationUnavailable,
			"classifier unreachable, pending manual review")
	}

	pc.Processing.Verdict = verdict

	status := model.ModerationApproved
	for _, cat := range verdict.Flagged() {
		if _, absolute := alwaysReject[cat.Name]; absolute {
			perr := entity.NewFatal(entity.KindModerationRejected,
				"content rejected: %s", cat.Name)
			perr.Category = cat.Name

			return perr
		}

		if verdict.HasContextAllowance() {
			status = model.ModerationNeedsReview

			continue
		}

		if cat.Confidence >= s.policy.RejectThreshold {
			perr := entity.NewFatal(entity.KindModerationRejected,
				"content rejected: %s at confidence %.2f", cat.Name, cat.Confidence)
			perr.Category = cat.Name

			return perr
		}

		status = model.ModerationNeedsReview
	}

	pc.Processing.ModerationStatus = status

	return nil
}
