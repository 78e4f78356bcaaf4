package entity

import (
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

// StageError is one recorded stage failure, fatal or advisory.
type StageError struct {
	Stage    string    `json:"stage"`
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	Category string    `json:"category,omitempty"`
	Fatal    bool      `json:"fatal"`
}

// PipelineResult is the outcome of one pipeline run.
type PipelineResult struct {
	Success      bool
	Photo        *model.Photo
	Errors       []StageError
	StageTimings map[string]time.Duration
	Elapsed      time.Duration
}

// FirstFatal returns the error that halted the run, if any.
func (r *PipelineResult) FirstFatal() *StageError {
	for i := range r.Errors {
		if r.Errors[i].Fatal {
			return &r.Errors[i]
		}
	}

	return nil
}

// PresignGrant is a short-lived write-only credential for the
// direct-to-storage upload shape.
type PresignGrant struct {
	ObjectKey   string
	UploadURL   string
	ExpiresAt   time.Time
	MaxFileSize int64
	ContentType string
}
