package pipeline

import (
	"context"
	"errors"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/imgproc"
)

// TransformStage decodes the validated buffer, applies EXIF orientation,
// resizes to the category preset and re-encodes. The re-encode is the
// privacy guarantee: no capture-device metadata survives it. Animated GIFs
// are resized frame-by-frame and stay GIF; everything else becomes JPEG.
type TransformStage struct {
	preset  Preset
	quality int
}

func NewTransformStage(preset Preset, quality int) *TransformStage {
	return &TransformStage{preset: preset, quality: quality}
}

func (s *TransformStage) Name() string { return "transform" }

func (s *TransformStage) Ready(pc *Context) error {
	if pc.Processing.MIME == "" {
		return errors.New("file type not validated")
	}

	return nil
}

func (s *TransformStage) Run(_ context.Context, pc *Context) error {
	if pc.Processing.MIME == "image/gif" {
		return s.transformGIF(pc)
	}

	return s.transformStatic(pc)
}

func (s *TransformStage) transformStatic(pc *Context) error {
	img, _, err := imgproc.Decode(pc.Request.Data)
	if err != nil {
		return entity.WrapFatal(entity.KindDecodeFailure, err, "image decode failed")
	}

	img = imgproc.Orient(img, imgproc.OrientationTag(pc.Request.Data))
	img = imgproc.Fit(img, s.preset.MaxWidth, s.preset.MaxHeight)

	encoded, err := imgproc.EncodeJPEG(img, s.quality)
	if err != nil {
		return entity.WrapFatal(entity.KindDecodeFailure, err, "image re-encode failed")
	}

	b := img.Bounds()
	pc.Processing.Transformed = encoded
	pc.Processing.Width = b.Dx()
	pc.Processing.Height = b.Dy()
	pc.Processing.Format = "image/jpeg"

	return nil
}

func (s *TransformStage) transformGIF(pc *Context) error {
	g, err := imgproc.DecodeGIF(pc.Request.Data)
	if err != nil {
		return entity.WrapFatal(entity.KindDecodeFailure, err, "gif decode failed")
	}

	g = imgproc.ResizeGIF(g, s.preset.MaxWidth, s.preset.MaxHeight)

	encoded, err := imgproc.EncodeGIF(g)
	if err != nil {
		return entity.WrapFatal(entity.KindDecodeFailure, err, "gif re-encode failed")
	}

	pc.Processing.Transformed = encoded
	pc.Processing.Width = g.Config.Width
	pc.Processing.Height = g.Config.Height
	pc.Processing.Format = "image/gif"

	return nil
}

// ThumbnailStage derives a center-cropped preview from the original buffer,
// not from the transformed output, so the two resizes do not compound
// quality loss. It shares no written fields with TransformStage and the two
// run concurrently under a Parallel group.
type ThumbnailStage struct {
	preset  Preset
	quality int
}

func NewThumbnailStage(preset Preset, quality int) *ThumbnailStage {
	return &ThumbnailStage{preset: preset, quality: quality}
}

func (s *ThumbnailStage) Name() string { return "thumbnail" }

func (s *ThumbnailStage) Ready(pc *Context) error {
	if pc.Processing.MIME == "" {
		return errors.New("file type not validated")
	}

	return nil
}

func (s *ThumbnailStage) Run(_ context.Context, pc *Context) error {
	img, _, err := imgproc.Decode(pc.Request.Data)
	if err != nil {
		return entity.WrapFatal(entity.KindDecodeFailure, err, "thumbnail decode failed")
	}

	img = imgproc.Orient(img, imgproc.OrientationTag(pc.Request.Data))
	img = imgproc.Thumbnail(img, s.preset.ThumbWidth, s.preset.ThumbHeight)

	encoded, err := imgproc.EncodeJPEG(img, s.quality)
	if err != nil {
		return entity.WrapFatal(entity.KindDecodeFailure, err, "thumbnail encode failed")
	}

	pc.Processing.Thumbnail = encoded

	return nil
}
