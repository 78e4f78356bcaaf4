package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
)

func testLimits() Limits {
	return Limits{
		MaxStaticBytes:   1000,
		MaxAnimatedBytes: 500,
		UserQuotaBytes:   10000,
	}
}

func limitsContext(size int, mime string) *Context {
	pc := NewContext(&entity.UploadRequest{
		Data:   make([]byte, size),
		UserID: "user-1",
		Size:   int64(size),
	})
	pc.Processing.MIME = mime

	return pc
}

func TestLimitsNotReadyBeforeValidation(t *testing.T) {
	stage := NewLimitsStage(testLimits(), &fakeRetriever{})

	assert.Error(t, stage.Ready(limitsContext(10, "")))
	assert.NoError(t, stage.Ready(limitsContext(10, "image/png")))
}

func TestLimitsAcceptsWithinCeiling(t *testing.T) {
	stage := NewLimitsStage(testLimits(), &fakeRetriever{used: 0})

	err := stage.Run(context.Background(), limitsContext(800, "image/png"))
	assert.NoError(t, err)
}

func TestLimitsRejectsOversizeStatic(t *testing.T) {
	stage := NewLimitsStage(testLimits(), &fakeRetriever{})

	err := stage.Run(context.Background(), limitsContext(1001, "image/png"))

	var perr *entity.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, entity.KindFileTooLarge, perr.Kind)
	assert.True(t, perr.Fatal)
}

func TestLimitsAnimatedCeilingIsLower(t *testing.T) {
	stage := NewLimitsStage(testLimits(), &fakeRetriever{})

	// 800 bytes passes as a static image but exceeds the animated ceiling.
	assert.NoError(t, stage.Run(context.Background(), limitsContext(800, "image/png")))

	err := stage.Run(context.Background(), limitsContext(800, "image/gif"))

	var perr *entity.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, entity.KindFileTooLarge, perr.Kind)
}

func TestLimitsRejectsQuotaExceeded(t *testing.T) {
	stage := NewLimitsStage(testLimits(), &fakeRetriever{used: 9500})

	err := stage.Run(context.Background(), limitsContext(600, "image/png"))

	var perr *entity.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, entity.KindQuotaExceeded, perr.Kind)
}

func TestLimitsExactQuotaBoundaryPasses(t *testing.T) {
	stage := NewLimitsStage(testLimits(), &fakeRetriever{used: 9400})

	assert.NoError(t, stage.Run(context.Background(), limitsContext(600, "image/png")))
}

func TestLimitsQuotaLookupFailureIsFatal(t *testing.T) {
	stage := NewLimitsStage(testLimits(), &fakeRetriever{err: errors.New("db down")})

	err := stage.Run(context.Background(), limitsContext(100, "image/png"))

	var perr *entity.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, entity.KindInternal, perr.Kind)
}
