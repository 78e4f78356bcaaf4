package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase/abstraction"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation"
)

type DeleteHandler struct {
	deleter abstraction.Deleter
}

func NewDeleteHandler(deleter abstraction.Deleter) *DeleteHandler {
	return &DeleteHandler{deleter: deleter}
}

// HandleDelete handles DELETE /photos/:photoID requests.
func (h *DeleteHandler) HandleDelete(c echo.Context) error {
	userID, _ := c.Get(presentation.UID).(string)
	photoID := c.Param(presentation.PhotoIDParam)

	if photoID == "" {
		return respondError(c, entity.KindNotFound, "missing photo id")
	}

	if err := h.deleter.Delete(c.Request().Context(), userID, photoID); err != nil {
		var perr *entity.PipelineError
		if errors.As(err, &perr) {
			return respondError(c, perr.Kind, perr.Message)
		}

		return respondError(c, entity.KindInternal, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
