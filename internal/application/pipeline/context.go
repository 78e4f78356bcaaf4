package pipeline

import (
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

// Processing is the bag of fields stages progressively fill in. Later stages
// declare preconditions on earlier fields via their Ready methods; nothing
// here may be read before the stage that populates it has run.
type Processing struct {
	MIME             string // validated actual type, set by the signature check
	Format           string // normalized output type, set by the transform
	Transformed      []byte
	Thumbnail        []byte
	Width            int
	Height           int
	Verdict          *entity.ModerationVerdict
	ModerationStatus model.ModerationStatus
	StorageKey       string
	ThumbnailKey     string
	URL              string
	ThumbnailURL     string
	Photo            *model.Photo
}

// Context is the mutable state of one pipeline run, owned exclusively by the
// executor for the run's duration.
type Context struct {
	Request    *entity.UploadRequest
	Processing Processing
	Errors     []entity.StageError

	timings map[string]time.Duration
	started time.Time
}

func NewContext(req *entity.UploadRequest) *Context {
	return &Context{
		Request: req,
		timings: make(map[string]time.Duration),
		started: time.Now(),
	}
}

func (c *Context) recordTiming(stage string, d time.Duration) {
	c.timings[stage] = d
}

func (c *Context) recordError(err *entity.PipelineError) {
	c.Errors = append(c.Errors, entity.StageError{
		Stage:    err.Stage,
		Kind:     err.Kind,
		Message:  err.Message,
		Category: err.Category,
		Fatal:    err.Fatal,
	})
}

func (c *Context) hasFatal() bool {
	for _, e := range c.Errors {
		if e.Fatal {
			return true
		}
	}

	return false
}

func (c *Context) result() *entity.PipelineResult {
	return &entity.PipelineResult{
		Success:      !c.hasFatal(),
		Photo:        c.Processing.Photo,
		Errors:       c.Errors,
		StageTimings: c.timings,
		Elapsed:      time.Since(c.started),
	}
}
