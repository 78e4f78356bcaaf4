package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
)

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))

	return buf.Bytes()
}

func makeGIF(t *testing.T, width, height, frames int) []byte {
	t.Helper()

	palette := []color.Color{color.White, color.Black, color.RGBA{R: 255, A: 255}}
	anim := &gif.GIF{
		Config: image.Config{Width: width, Height: height},
	}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, width, height), palette)
		for x := 0; x < width; x++ {
			frame.SetColorIndex(x, (x+i)%height, 1)
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}

	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, anim))

	return buf.Bytes()
}

type fakeRetriever struct {
	photo *model.Photo
	used  int64
	err   error
}

func (f *fakeRetriever) GetByID(context.Context, string) (*model.Photo, error) {
	return f.photo, f.err
}

func (f *fakeRetriever) TotalActiveBytes(context.Context, string) (int64, error) {
	return f.used, f.err
}

type fakeVerifier struct {
	owns bool
	err  error

	calls int
}

func (f *fakeVerifier) OwnsCandidate(context.Context, string, string) (bool, error) {
	f.calls++

	return f.owns, f.err
}

type fakeClassifier struct {
	verdict *entity.ModerationVerdict
	err     error
}

func (f *fakeClassifier) Classify(context.Context, []byte, string) (*entity.ModerationVerdict, error) {
	return f.verdict, f.err
}

type fakeObjectStore struct {
	failPuts int // first failPuts Put calls fail
	putErr   error

	puts    []string
	removed []string
}

func (f *fakeObjectStore) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	f.puts = append(f.puts, key)
	if len(f.puts) <= f.failPuts {
		return "", f.putErr
	}

	return "http://cdn.example/" + key, nil
}

func (f *fakeObjectStore) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)

	return nil
}

type fakeWriter struct {
	createErr error

	photo *model.Photo
	link  *model.PostPhotoLink
}

func (f *fakeWriter) CreatePhoto(_ context.Context, photo *model.Photo) error {
	f.photo = photo

	return f.createErr
}

func (f *fakeWriter) CreatePhotoWithLink(_ context.Context, photo *model.Photo, link *model.PostPhotoLink) error {
	f.photo = photo
	f.link = link

	return f.createErr
}

func (f *fakeWriter) AttachToPost(context.Context, string, string, int) error {
	return f.createErr
}
