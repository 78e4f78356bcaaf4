package entity

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable failure classification surfaced to callers.
type ErrorKind string

const (
	KindInvalidRequest        ErrorKind = "invalid_request"
	KindInvalidFileSignature  ErrorKind = "invalid_file_signature"
	KindTypeMismatch          ErrorKind = "type_mismatch"
	KindFileTooLarge          ErrorKind = "file_too_large"
	KindQuotaExceeded         ErrorKind = "quota_exceeded"
	KindPermissionDenied      ErrorKind = "permission_denied"
	KindDecodeFailure         ErrorKind = "decode_failure"
	KindModerationRejected    ErrorKind = "moderation_rejected"
	KindModerationUnavailable ErrorKind = "moderation_service_unavailable"
	KindStorageWriteFailure   ErrorKind = "storage_write_failure"
	KindPersistenceConflict   ErrorKind = "persistence_conflict"
	KindNotFound              ErrorKind = "not_found"
	KindCancelled             ErrorKind = "cancelled"
	KindInternal              ErrorKind = "internal"
)

// PipelineError is the error type every stage returns. Fatal errors halt the
// run; advisory errors are recorded and the run continues.
type PipelineError struct {
	Kind     ErrorKind
	Stage    string
	Message  string
	Category string // moderation subkind, set only for KindModerationRejected
	Fatal    bool
	cause    error
}

func (e *PipelineError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.cause
}

func NewFatal(kind ErrorKind, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Message: fmt.Sprintf(format, args...), Fatal: true}
}

func NewAdvisory(kind ErrorKind, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func WrapFatal(kind ErrorKind, cause error, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Message: fmt.Sprintf(format, args...), Fatal: true, cause: cause}
}

// AsPipelineError converts any stage error into a *PipelineError, attaching
// the stage name. Unknown errors become fatal internal errors.
func AsPipelineError(err error, stage string) *PipelineError {
	var perr *PipelineError
	if errors.As(err, &perr) {
		if perr.Stage == "" {
			perr.Stage = stage
		}

		return perr
	}

	return &PipelineError{Kind: KindInternal, Stage: stage, Message: err.Error(), Fatal: true, cause: err}
}
