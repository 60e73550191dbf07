package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

func newTestUploadService(storage *fakeStorage, cfg UploadServiceConfig) *UploadService {
	if cfg.Bucket == "" {
		cfg.Bucket = "motour-media"
	}
	logger, _ := test.NewNullLogger()
	cfg.Logger = logger
	svc := NewUploadService(storage, cfg)
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	svc.newID = func() string { return "abc" }
	return svc
}

func TestUploadImageStoresProcessedBytes(t *testing.T) {
	storage := &fakeStorage{}
	processor := &stubImageProcessor{output: []byte("small"), contentType: "image/webp"}
	svc := newTestUploadService(storage, UploadServiceConfig{ImageProcessor: processor, ImageMaxDimension: 1024})

	payload := []byte("original-image")
	got, err := svc.UploadImage(context.Background(), FolderProfiles, FileUpload{
		Reader:      bytes.NewReader(payload),
		Size:        int64(len(payload)),
		FileName:    "me.png",
		ContentType: "image/png",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, processor.calls)
	assert.Equal(t, 1024, processor.lastMax)
	assert.Equal(t, "profiles/20250102T030405Z_abc.webp", got.PublicID)
	assert.Equal(t, domain.MediaKindImage, got.Type)
	require.Len(t, storage.objects, 1)
	assert.Equal(t, "small", string(storage.objects[0].data))
	assert.Equal(t, "image/webp", storage.objects[0].contentType)
	assert.True(t, strings.HasSuffix(got.URL, got.PublicID))
}

func TestUploadImageRejectsLargeAndUnsupported(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestUploadService(storage, UploadServiceConfig{MaxImageBytes: 4})

	_, err := svc.UploadImage(context.Background(), FolderVehicles, FileUpload{
		Reader: strings.NewReader("12345"), Size: 5, FileName: "bike.jpg", ContentType: "image/jpeg",
	})
	assert.ErrorIs(t, err, ErrUploadTooLarge)

	_, err = svc.UploadImage(context.Background(), FolderVehicles, FileUpload{
		Reader: strings.NewReader("%PDF"), Size: 4, FileName: "doc.pdf", ContentType: "application/pdf",
	})
	assert.ErrorIs(t, err, ErrUploadUnsupported)

	_, err = svc.UploadImage(context.Background(), FolderVehicles, FileUpload{
		Reader: strings.NewReader(""), Size: 0, FileName: "empty.jpg", ContentType: "image/jpeg",
	})
	assert.ErrorIs(t, err, ErrUploadEmpty)

	// A lying size header is caught while reading.
	_, err = svc.UploadImage(context.Background(), FolderVehicles, FileUpload{
		Reader: strings.NewReader("1234567"), Size: 3, FileName: "bike.jpg", ContentType: "image/jpeg",
	})
	assert.ErrorIs(t, err, ErrUploadTooLarge)
	assert.Empty(t, storage.objects)
}

func TestUploadRatingVideoWithThumbnail(t *testing.T) {
	storage := &fakeStorage{}
	thumbs := &stubThumbnailer{}
	svc := newTestUploadService(storage, UploadServiceConfig{Thumbnailer: thumbs})

	got, err := svc.UploadRatingMedia(context.Background(), FileUpload{
		Reader: strings.NewReader("video-bytes"), Size: 11, FileName: "ride.mp4", ContentType: "video/mp4",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MediaKindVideo, got.Type)
	assert.Equal(t, "ratings/20250102T030405Z_abc.mp4", got.PublicID)
	require.NotNil(t, got.Thumbnail)
	assert.True(t, strings.HasSuffix(*got.Thumbnail, "ratings/20250102T030405Z_abc_thumb.jpg"))
	assert.Len(t, storage.objects, 2)
}

func TestUploadRatingVideoThumbnailFailureIsTolerated(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestUploadService(storage, UploadServiceConfig{Thumbnailer: &stubThumbnailer{err: errors.New("no ffmpeg")}})

	got, err := svc.UploadRatingMedia(context.Background(), FileUpload{
		Reader: strings.NewReader("video"), Size: 5, FileName: "clip.mov",
	})
	require.NoError(t, err)
	assert.Nil(t, got.Thumbnail)
	assert.Len(t, storage.objects, 1)
	assert.Equal(t, "video/quicktime", storage.objects[0].contentType)
}

func TestUploadWithoutStorage(t *testing.T) {
	svc := NewUploadService(nil, UploadServiceConfig{})
	_, err := svc.UploadImage(context.Background(), FolderProfiles, FileUpload{
		Reader: strings.NewReader("x"), Size: 1, FileName: "a.jpg",
	})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
