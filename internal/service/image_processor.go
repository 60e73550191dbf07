package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Fan-Karwanta/motour-server-101/internal/media"
)

// prepareImageForUpload downsizes oversized images. Without a processor the
// upload passes through untouched.
func prepareImageForUpload(ctx context.Context, processor media.Processor, upload media.Upload, maxDimension int) (io.Reader, int64, string, error) {
	if processor == nil {
		return upload.Reader, upload.Size, upload.ContentType, nil
	}
	result, err := processor.Process(ctx, upload, maxDimension)
	if err != nil {
		return nil, 0, "", fmt.Errorf("%w: %v", ErrUploadUnsupported, err)
	}
	return bytes.NewReader(result.Bytes), int64(len(result.Bytes)), result.ContentType, nil
}
