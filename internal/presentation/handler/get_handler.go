package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase/abstraction"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation"
)

type GetHandler struct {
	getter abstraction.Getter
}

func NewGetHandler(getter abstraction.Getter) *GetHandler {
	return &GetHandler{getter: getter}
}

// HandleGet handles GET /photos/:photoID requests.
func (h *GetHandler) HandleGet(c echo.Context) error {
	photoID := c.Param(presentation.PhotoIDParam)
	if photoID == "" {
		return respondError(c, entity.KindNotFound, "missing photo id")
	}

	photo, err := h.getter.Get(c.Request().Context(), photoID)
	if err != nil {
		var perr *entity.PipelineError
		if errors.As(err, &perr) {
			return respondError(c, perr.Kind, perr.Message)
		}

		return respondError(c, entity.KindNotFound, err.Error())
	}

	return c.JSON(http.StatusOK, descriptor(photo))
}
