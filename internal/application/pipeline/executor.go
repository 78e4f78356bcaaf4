package pipeline

import (
	"context"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

// Executor drives one upload through the ordered stage list. It is
// constructed per upload request and holds no cross-request state.
//
// Stage transitions are strictly sequential: a stage whose precondition is
// unmet is skipped with a recorded advisory, a fatal stage error halts the
// run, an advisory error is recorded and the run continues. Cancellation is
// cooperative and checked only at stage boundaries so an aborted client
// cannot interrupt a write mid-object.
type Executor struct {
	stages []Stage
}

func NewExecutor(stages ...Stage) *Executor {
	return &Executor{stages: stages}
}

func (e *Executor) Run(ctx context.Context, req *entity.UploadRequest) *entity.PipelineResult {
	pc := NewContext(req)

	for _, stage := range e.stages {
		if err := ctx.Err(); err != nil {
			pc.recordError(&entity.PipelineError{
				Kind:    entity.KindCancelled,
				Stage:   stage.Name(),
				Message: "upload cancelled before stage",
				Fatal:   true,
			})

			break
		}

		if err := stage.Ready(pc); err != nil {
			pc.recordError(&entity.PipelineError{
				Kind:    entity.KindInternal,
				Stage:   stage.Name(),
				Message: "skipped, precondition unmet: " + err.Error(),
			})

			continue
		}

		start := time.Now()
		err := stage.Run(ctx, pc)
		pc.recordTiming(stage.Name(), time.Since(start))

		if err == nil {
			continue
		}

		perr := entity.AsPipelineError(err, stage.Name())
		pc.recordError(perr)

		if perr.Fatal {
			logger.Info("pipeline halted",
				"stage", stage.Name(), "kind", perr.Kind, "user", req.UserID)

			break
		}

		logger.Warn("pipeline stage failed, continuing",
			"stage", stage.Name(), "kind", perr.Kind, "user", req.UserID)
	}

	return pc.result()
}
