package pipeline

import (
	"context"

	"github.com/gabriel-vasile/mimetype"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/utils"
)

// supportedTypes are the raster formats the downstream codecs handle.
var supportedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ValidateStage determines the file's actual type from its leading bytes.
// The declared type is attacker-controlled and never drives codec selection;
// a declared type that disagrees with the signature is rejected outright.
type ValidateStage struct{}

func NewValidateStage() *ValidateStage { return &ValidateStage{} }

func (s *ValidateStage) Name() string { return "validate" }

func (s *ValidateStage) Ready(pc *Context) error { return nil }

func (s *ValidateStage) Run(_ context.Context, pc *Context) error {
	if len(pc.Request.Data) == 0 {
		return entity.NewFatal(entity.KindInvalidFileSignature, "empty file")
	}

	actual := utils.NormalizeMimeType(mimetype.Detect(pc.Request.Data).String())
	if _, ok := supportedTypes[actual]; !ok {
		return entity.NewFatal(entity.KindInvalidFileSignature,
			"unsupported file signature: detected %s", actual)
	}

	if declared := utils.NormalizeMimeType(pc.Request.DeclaredMIME); declared != "" && declared != actual {
		return entity.NewFatal(entity.KindTypeMismatch,
			"declared type %s does not match detected type %s", declared, actual)
	}

	pc.Processing.MIME = actual

	return nil
}
