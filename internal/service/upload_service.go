package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/media"
	"github.com/Fan-Karwanta/motour-server-101/internal/repository/ports"
)

// Upload folders inside the media bucket.
const (
	FolderProfiles     = "profiles"
	FolderVehicles     = "vehicles"
	FolderRatings      = "ratings"
	FolderDestinations = "destinations"
)

const (
	defaultMaxUploadBytes = int64(5 * 1024 * 1024)
	defaultMaxVideoBytes  = int64(50 * 1024 * 1024)
)

var (
	allowedImageTypes = map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
		"image/webp": {},
	}
	allowedVideoTypes = map[string]struct{}{
		"video/mp4":       {},
		"video/quicktime": {},
		"video/webm":      {},
	}
)

type UploadServiceConfig struct {
	Bucket            string
	MaxImageBytes     int64
	MaxVideoBytes     int64
	ImageMaxDimension int
	ImageProcessor    media.Processor
	Thumbnailer       media.Thumbnailer
	Logger            logrus.FieldLogger
}

type FileUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// UploadService stores user supplied files on the media host and returns the
// descriptor clients attach to ratings, profiles and vehicles.
type UploadService struct {
	storage           ports.ObjectStorage
	bucket            string
	maxImageBytes     int64
	maxVideoBytes     int64
	imageMaxDimension int
	imageProcessor    media.Processor
	thumbnailer       media.Thumbnailer
	log               logrus.FieldLogger
	now               func() time.Time
	newID             func() string
}

func NewUploadService(storage ports.ObjectStorage, cfg UploadServiceConfig) *UploadService {
	maxImage := cfg.MaxImageBytes
	if maxImage <= 0 {
		maxImage = defaultMaxUploadBytes
	}
	maxVideo := cfg.MaxVideoBytes
	if maxVideo <= 0 {
		maxVideo = defaultMaxVideoBytes
	}
	maxDimension := cfg.ImageMaxDimension
	if maxDimension <= 0 {
		maxDimension = media.DefaultMaxDimension
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UploadService{
		storage:           storage,
		bucket:            strings.TrimSpace(cfg.Bucket),
		maxImageBytes:     maxImage,
		maxVideoBytes:     maxVideo,
		imageMaxDimension: maxDimension,
		imageProcessor:    cfg.ImageProcessor,
		thumbnailer:       cfg.Thumbnailer,
		log:               log.WithField("component", "uploads"),
		now:               time.Now,
		newID:             uuid.NewString,
	}
}

// UploadImage stores a single image under folder.
func (s *UploadService) UploadImage(ctx context.Context, folder string, file FileUpload) (*domain.RatingMedia, error) {
	contentType := media.NormalizeContentType(file.ContentType, file.FileName)
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s (allowed: jpeg, png, webp)", ErrUploadUnsupported, contentType)
	}
	data, err := s.readLimited(file, s.maxImageBytes)
	if err != nil {
		return nil, err
	}
	return s.storeImage(ctx, folder, file.FileName, contentType, data)
}

// UploadRatingMedia accepts an image or a video. Videos get a JPEG thumbnail
// stored next to them; a failed thumbnail leaves the field empty.
func (s *UploadService) UploadRatingMedia(ctx context.Context, file FileUpload) (*domain.RatingMedia, error) {
	contentType := media.NormalizeContentType(file.ContentType, file.FileName)
	kind, ok := media.KindOf(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUploadUnsupported, contentType)
	}
	if kind == media.KindImage {
		return s.UploadImage(ctx, FolderRatings, file)
	}
	if _, ok := allowedVideoTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s (allowed: mp4, mov, webm)", ErrUploadUnsupported, contentType)
	}

	data, err := s.readLimited(file, s.maxVideoBytes)
	if err != nil {
		return nil, err
	}
	if err := s.ensureStorage(); err != nil {
		return nil, err
	}

	key := s.objectKey(FolderRatings, media.ExtensionFor(contentType, file.FileName))
	url, err := s.storage.Upload(ctx, s.bucket, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	descriptor := &domain.RatingMedia{URL: url, PublicID: key, Type: domain.MediaKindVideo}

	if s.thumbnailer == nil {
		return descriptor, nil
	}
	thumb, err := s.thumbnailer.Thumbnail(ctx, data, file.FileName)
	if err != nil {
		s.log.WithError(err).WithField("object_key", key).Warn("video thumbnail extraction failed")
		return descriptor, nil
	}
	thumbKey := strings.TrimSuffix(key, path.Ext(key)) + "_thumb.jpg"
	thumbURL, err := s.storage.Upload(ctx, s.bucket, thumbKey, thumb.ContentType, bytes.NewReader(thumb.Bytes), int64(len(thumb.Bytes)))
	if err != nil {
		s.log.WithError(err).WithField("object_key", thumbKey).Warn("video thumbnail upload failed")
		return descriptor, nil
	}
	descriptor.Thumbnail = &thumbURL
	return descriptor, nil
}

// Remove deletes a previously uploaded object by its public id.
func (s *UploadService) Remove(ctx context.Context, publicID string) error {
	if err := s.ensureStorage(); err != nil {
		return err
	}
	return s.storage.Remove(ctx, s.bucket, publicID)
}

func (s *UploadService) storeImage(ctx context.Context, folder, fileName, contentType string, data []byte) (*domain.RatingMedia, error) {
	if err := s.ensureStorage(); err != nil {
		return nil, err
	}
	reader, size, finalType, err := prepareImageForUpload(ctx, s.imageProcessor, media.Upload{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		FileName:    fileName,
		ContentType: contentType,
	}, s.imageMaxDimension)
	if err != nil {
		return nil, err
	}

	key := s.objectKey(folder, media.ExtensionFor(finalType, fileName))
	url, err := s.storage.Upload(ctx, s.bucket, key, finalType, reader, size)
	if err != nil {
		return nil, err
	}
	return &domain.RatingMedia{URL: url, PublicID: key, Type: domain.MediaKindImage}, nil
}

func (s *UploadService) readLimited(file FileUpload, limit int64) ([]byte, error) {
	if file.Reader == nil || file.Size == 0 {
		return nil, ErrUploadEmpty
	}
	if file.Size > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrUploadTooLarge, limit)
	}
	data, err := io.ReadAll(io.LimitReader(file.Reader, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrUploadTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, ErrUploadEmpty
	}
	return data, nil
}

func (s *UploadService) ensureStorage() error {
	if s.storage == nil || s.bucket == "" {
		return ErrStorageUnavailable
	}
	return nil
}

func (s *UploadService) objectKey(folder, ext string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "misc"
	}
	return fmt.Sprintf("%s/%s_%s%s", folder, s.now().UTC().Format("20060102T150405Z"), s.newID(), ext)
}
