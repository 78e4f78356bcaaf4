package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase/abstraction"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation"
)

type AttachHandler struct {
	attacher abstraction.Attacher
}

func NewAttachHandler(attacher abstraction.Attacher) *AttachHandler {
	return &AttachHandler{attacher: attacher}
}

// HandleAttach handles POST /posts/:postID/photos/:photoID requests.
func (h *AttachHandler) HandleAttach(c echo.Context) error {
	userID, _ := c.Get(presentation.UID).(string)
	postID := c.Param(presentation.PostIDParam)
	photoID := c.Param(presentation.PhotoIDParam)

	if postID == "" || photoID == "" {
		return respondError(c, entity.KindNotFound, "missing post or photo id")
	}

	displayOrder, _ := strconv.Atoi(c.QueryParam("display_order"))

	photo, err := h.attacher.Attach(c.Request().Context(), userID, postID, photoID, displayOrder)
	if err != nil {
		var perr *entity.PipelineError
		if errors.As(err, &perr) {
			return respondError(c, perr.Kind, perr.Message)
		}

		return respondError(c, entity.KindInternal, err.Error())
	}

	return c.JSON(http.StatusOK, descriptor(photo))
}
