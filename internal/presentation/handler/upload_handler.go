package handler

import (
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase/abstraction"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

type uploadForm struct {
	PhotoType   string `form:"photo_type"   validate:"required,oneof=avatar cover campaign verification gallery post_media"`
	Purpose     string `form:"purpose"      validate:"omitempty,oneof=personal campaign both"`
	Caption     string `form:"caption"      validate:"max=500"`
	CandidateID string `form:"candidate_id" validate:"omitempty,max=64"`
	PostID      string `form:"post_id"      validate:"omitempty,max=64"`
}

type UploadHandler struct {
	uploader abstraction.Uploader
	validate *validator.Validate
}

func NewUploadHandler(uploader abstraction.Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		validate: validator.New(),
	}
}

// HandleUpload handles POST /photos multipart requests.
func (h *UploadHandler) HandleUpload(c echo.Context) error {
	userID, _ := c.Get(presentation.UID).(string)

	form := uploadForm{
		PhotoType:   c.FormValue("photo_type"),
		Purpose:     c.FormValue("purpose"),
		Caption:     c.FormValue("caption"),
		CandidateID: c.FormValue("candidate_id"),
		PostID:      c.FormValue("post_id"),
	}
	if err := h.validate.Struct(&form); err != nil {
		return respondError(c, entity.KindInvalidRequest, err.Error())
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return respondError(c, entity.KindInvalidRequest, "missing photo file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, entity.KindInternal, "failed to read photo file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, entity.KindInternal, "failed to read photo file")
	}

	purpose := entity.PhotoPurpose(form.Purpose)
	if purpose == "" {
		purpose = entity.PurposePersonal
	}

	result, err := h.uploader.Upload(c.Request().Context(), &entity.UploadRequest{
		Data:         data,
		DeclaredMIME: fileHeader.Header.Get(presentation.TypeKey),
		Filename:     fileHeader.Filename,
		Size:         int64(len(data)),
		UserID:       userID,
		PhotoType:    entity.PhotoType(form.PhotoType),
		Purpose:      purpose,
		Caption:      form.Caption,
		CandidateID:  form.CandidateID,
		PostID:       form.PostID,
	})
	if err != nil {
		logger.Error("upload failed", "user", userID, "error", err)

		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return respondResult(c, result)
}
