package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/model"
	brokerRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/broker"
	dbRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/database"
	minioRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/minio"
	moderationRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/moderation"
)

var (
	errModerationDown = fmt.Errorf("%w: connection refused", moderationRepo.ErrUnavailable)
	errBrokerDown     = errors.New("broker connection refused")
)

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

type memRetriever struct {
	photos map[string]*model.Photo
	used   int64
}

func (m *memRetriever) GetByID(_ context.Context, id string) (*model.Photo, error) {
	if p, ok := m.photos[id]; ok {
		return p, nil
	}

	return nil, dbRepo.ErrNotFound
}

func (m *memRetriever) TotalActiveBytes(context.Context, string) (int64, error) {
	return m.used, nil
}

type memWriter struct {
	createErr error

	photos []*model.Photo
	links  []*model.PostPhotoLink
}

func (m *memWriter) CreatePhoto(_ context.Context, photo *model.Photo) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.photos = append(m.photos, photo)

	return nil
}

func (m *memWriter) CreatePhotoWithLink(_ context.Context, photo *model.Photo, link *model.PostPhotoLink) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.photos = append(m.photos, photo)
	m.links = append(m.links, link)

	return nil
}

func (m *memWriter) AttachToPost(_ context.Context, photoID, postID string, displayOrder int) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.links = append(m.links, &model.PostPhotoLink{PostID: postID, PhotoID: photoID, DisplayOrder: displayOrder})

	return nil
}

type memRemover struct {
	err error

	deleted []string
}

func (m *memRemover) SoftDelete(_ context.Context, id, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)

	return nil
}

type memObjectStore struct {
	putErr  error
	readErr error

	objects map[string][]byte
	removed []string
	listing []minioRepo.ObjectInfo
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: make(map[string][]byte)}
}

func (m *memObjectStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	m.objects[key] = data

	return "http://cdn.example/" + key, nil
}

func (m *memObjectStore) Remove(_ context.Context, key string) error {
	m.removed = append(m.removed, key)
	delete(m.objects, key)

	return nil
}

func (m *memObjectStore) Read(_ context.Context, key string) ([]byte, string, error) {
	if m.readErr != nil {
		return nil, "", m.readErr
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, "", errors.New("object not found")
	}

	return data, "image/png", nil
}

func (m *memObjectStore) PresignPut(_ context.Context, key string, expiry time.Duration) (string, error) {
	return "http://minio.example/" + key + "?sig=test", nil
}

func (m *memObjectStore) ListKeys(_ context.Context, prefix string) ([]minioRepo.ObjectInfo, error) {
	var out []minioRepo.ObjectInfo
	for _, obj := range m.listing {
		if strings.HasPrefix(obj.Key, prefix) {
			out = append(out, obj)
		}
	}

	return out, nil
}

type memLister struct {
	keys   map[string]struct{}
	photos []model.Photo
	err    error
}

func (m *memLister) ActiveStorageKeys(context.Context) (map[string]struct{}, error) {
	return m.keys, nil
}

func (m *memLister) ListByOwner(_ context.Context, ownerID string) ([]model.Photo, error) {
	if m.err != nil {
		return nil, m.err
	}

	var out []model.Photo
	for _, p := range m.photos {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}

	return out, nil
}

type memClassifier struct {
	verdict *entity.ModerationVerdict
	err     error
}

func (m *memClassifier) Classify(context.Context, []byte, string) (*entity.ModerationVerdict, error) {
	return m.verdict, m.err
}

type memVerifier struct {
	owns bool
	err  error
}

func (m *memVerifier) OwnsCandidate(context.Context, string, string) (bool, error) {
	return m.owns, m.err
}

type memPublisher struct {
	err error

	events []brokerRepo.ReviewEvent
}

func (m *memPublisher) Publish(_ context.Context, event brokerRepo.ReviewEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)

	return nil
}
