package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase/abstraction"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/dto"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

type presignRequest struct {
	PhotoType   string `json:"photo_type"   validate:"required,oneof=avatar cover campaign verification gallery post_media"`
	ContentType string `json:"content_type" validate:"required"`
}

type confirmRequest struct {
	ObjectKey   string `json:"object_key"   validate:"required"`
	PhotoType   string `json:"photo_type"   validate:"required,oneof=avatar cover campaign verification gallery post_media"`
	Purpose     string `json:"purpose"      validate:"omitempty,oneof=personal campaign both"`
	Caption     string `json:"caption"      validate:"max=500"`
	CandidateID string `json:"candidate_id" validate:"omitempty,max=64"`
	PostID      string `json:"post_id"      validate:"omitempty,max=64"`
}

type PresignHandler struct {
	presigner abstraction.Presigner
	validate  *validator.Validate
}

func NewPresignHandler(presigner abstraction.Presigner) *PresignHandler {
	return &PresignHandler{
		presigner: presigner,
		validate:  validator.New(),
	}
}

// HandlePresign handles POST /photos/presign requests.
func (h *PresignHandler) HandlePresign(c echo.Context) error {
	userID, _ := c.Get(presentation.UID).(string)

	var req presignRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, entity.KindInvalidRequest, "malformed request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, entity.KindInvalidRequest, err.Error())
	}

	grant, err := h.presigner.Presign(c.Request().Context(), userID, req.ContentType, entity.PhotoType(req.PhotoType))
	if err != nil {
		logger.Error("presign failed", "user", userID, "error", err)

		var perr *entity.PipelineError
		if errors.As(err, &perr) {
			return respondError(c, perr.Kind, perr.Message)
		}

		return respondError(c, entity.KindInternal, err.Error())
	}

	return c.JSON(http.StatusOK, dto.PresignDescriptor{
		ObjectKey:   grant.ObjectKey,
		UploadURL:   grant.UploadURL,
		ExpiresAt:   grant.ExpiresAt.Unix(),
		MaxFileSize: grant.MaxFileSize,
		ContentType: grant.ContentType,
	})
}

// HandleConfirm handles POST /photos/confirm requests. The staged object is
// pulled back from storage and pushed through the same pipeline as a direct
// upload.
func (h *PresignHandler) HandleConfirm(c echo.Context) error {
	userID, _ := c.Get(presentation.UID).(string)

	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, entity.KindInvalidRequest, "malformed request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return respondError(c, entity.KindInvalidRequest, err.Error())
	}

	purpose := entity.PhotoPurpose(req.Purpose)
	if purpose == "" {
		purpose = entity.PurposePersonal
	}

	result, err := h.presigner.Confirm(c.Request().Context(), &abstraction.ConfirmRequest{
		ObjectKey:   req.ObjectKey,
		UserID:      userID,
		PhotoType:   entity.PhotoType(req.PhotoType),
		Purpose:     purpose,
		Caption:     req.Caption,
		CandidateID: req.CandidateID,
		PostID:      req.PostID,
	})
	if err != nil {
		logger.Error("confirm failed", "user", userID, "key", req.ObjectKey, "error", err)

		var perr *entity.PipelineError
		if errors.As(err, &perr) {
			return respondError(c, perr.Kind, perr.Message)
		}

		return respondError(c, entity.KindInternal, err.Error())
	}

	return respondResult(c, result)
}
