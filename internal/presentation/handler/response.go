package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

func statusForKind(kind entity.ErrorKind) int {
	switch kind {
	case entity.KindInvalidRequest, entity.KindInvalidFileSignature,
		entity.KindTypeMismatch, entity.KindDecodeFailure:
		return http.StatusBadRequest
	case entity.KindFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case entity.KindQuotaExceeded:
		return http.StatusForbidden
	case entity.KindPermissionDenied:
		return http.StatusForbidden
	case entity.KindModerationRejected:
		return http.StatusUnprocessableEntity
	case entity.KindModerationUnavailable:
		return http.StatusServiceUnavailable
	case entity.KindPersistenceConflict:
		return http.StatusConflict
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindCancelled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func descriptor(photo *model.Photo) dto.PhotoDescriptor {
	return dto.PhotoDescriptor{
		ID:               photo.ID,
		URL:              photo.URL,
		ThumbnailURL:     photo.ThumbnailURL,
		Width:            photo.Dimensions.Width,
		Height:           photo.Dimensions.Height,
		Size:             photo.TransformedSize,
		MIMEType:         photo.MIMEType,
		PhotoType:        photo.PhotoType,
		ModerationStatus: string(photo.ModerationStatus),
		PostID:           photo.PostID,
		Uploaded:         photo.CreatedAt.Unix(),
	}
}

// respondResult turns a pipeline outcome into the HTTP response. A successful
// run returns 201 with the photo descriptor; a halted run returns the status
// mapped from the fatal error.
func respondResult(c echo.Context, result *entity.PipelineResult) error {
	if result.Success {
		return c.JSON(http.StatusCreated, descriptor(result.Photo))
	}

	fatal := result.FirstFatal()
	if fatal == nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "upload failed",
			Kind:  string(entity.KindInternal),
		})
	}

	return c.JSON(statusForKind(fatal.Kind), dto.ErrorResponse{
		Error: fatal.Message,
		Kind:  string(fatal.Kind),
	})
}

func respondError(c echo.Context, kind entity.ErrorKind, message string) error {
	return c.JSON(statusForKind(kind), dto.ErrorResponse{
		Error: message,
		Kind:  string(kind),
	})
}
