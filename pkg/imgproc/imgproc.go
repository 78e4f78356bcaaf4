// Package imgproc holds the raster primitives the upload pipeline is built
// from: decoding, EXIF auto-orientation, bounded resizing, center-crop
// thumbnails and re-encoding. Re-encoding is what strips embedded metadata;
// no EXIF, GPS or camera data survives EncodeJPEG or EncodeGIF.
package imgproc

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"

	_ "image/png" // png decode

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/webp" // webp decode
)

// Decode decodes a raster buffer and reports the source format name
// ("jpeg", "png", "gif", "webp").
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	return img, format, nil
}

// DecodeGIF decodes every frame of a GIF buffer.
func DecodeGIF(data []byte) (*gif.GIF, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}

	return g, nil
}

// OrientationTag reads the EXIF orientation tag from a raw buffer.
// Returns 1 (normal) when the buffer has no EXIF data or no orientation tag.
func OrientationTag(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}

	return v
}

// Orient applies the transform prescribed by an EXIF orientation tag.
func Orient(img image.Image, tag int) image.Image {
	switch tag {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// Fit scales img down to fit within maxW x maxH, preserving aspect ratio.
// Images already within bounds are returned unscaled: presets never upscale.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}

	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// FitBounds computes the dimensions Fit would produce.
func FitBounds(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scaleW {
		scale = scaleH
	}

	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	return nw, nh
}

// Thumbnail produces a w x h center-cropped preview.
func Thumbnail(img image.Image, w, h int) image.Image {
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

// EncodeJPEG re-encodes img as baseline JPEG with the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// ResizeGIF scales every frame of an animated GIF to fit within maxW x maxH,
// preserving palettes, frame delays, disposal and loop count. GIFs already
// within bounds are returned untouched.
func ResizeGIF(g *gif.GIF, maxW, maxH int) *gif.GIF {
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		// Some encoders omit the logical screen size; fall back to frame 0.
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}

	nw, nh := FitBounds(w, h, maxW, maxH)
	if nw == w && nh == h {
		return g
	}

	scaleX := float64(nw) / float64(w)
	scaleY := float64(nh) / float64(h)

	for i, frame := range g.Image {
		b := frame.Bounds()
		nb := image.Rect(
			int(float64(b.Min.X)*scaleX),
			int(float64(b.Min.Y)*scaleY),
			int(float64(b.Max.X)*scaleX+0.5),
			int(float64(b.Max.Y)*scaleY+0.5),
		)
		if nb.Dx() < 1 {
			nb.Max.X = nb.Min.X + 1
		}
		if nb.Dy() < 1 {
			nb.Max.Y = nb.Min.Y + 1
		}

		dst := image.NewPaletted(nb, frame.Palette)
		xdraw.NearestNeighbor.Scale(dst, nb, frame, b, xdraw.Src, nil)
		g.Image[i] = dst
	}

	g.Config.Width, g.Config.Height = nw, nh

	return g
}

// EncodeGIF re-encodes an animated GIF, dropping any application extensions
// beyond the animation data itself.
func EncodeGIF(g *gif.GIF) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}

	return buf.Bytes(), nil
}
