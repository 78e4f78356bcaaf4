package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase/abstraction"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation"
)

type ListHandler struct {
	lister abstraction.Lister
}

func NewListHandler(lister abstraction.Lister) *ListHandler {
	return &ListHandler{lister: lister}
}

// HandleList handles GET /photos requests, returning the caller's own photos.
func (h *ListHandler) HandleList(c echo.Context) error {
	userID, _ := c.Get(presentation.UID).(string)
	if userID == "" {
		return respondError(c, entity.KindPermissionDenied, "missing identity")
	}

	photos, err := h.lister.ListOwn(c.Request().Context(), userID)
	if err != nil {
		var perr *entity.PipelineError
		if errors.As(err, &perr) {
			return respondError(c, perr.Kind, perr.Message)
		}

		return respondError(c, entity.KindInternal, err.Error())
	}

	descriptors := make([]dto.PhotoDescriptor, 0, len(photos))
	for i := range photos {
		descriptors = append(descriptors, descriptor(&photos[i]))
	}

	return c.JSON(http.StatusOK, descriptors)
}
