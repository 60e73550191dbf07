package service

import (
	"context"
	"io"

	"github.com/Fan-Karwanta/motour-server-101/internal/media"
)

type stubImageProcessor struct {
	output      []byte
	contentType string
	err         error

	calls   int
	last    media.Upload
	lastMax int
}

func (s *stubImageProcessor) Process(ctx context.Context, upload media.Upload, maxDimension int) (*media.Result, error) {
	s.calls++
	s.last = upload
	s.lastMax = maxDimension
	if s.err != nil {
		return nil, s.err
	}
	if upload.Reader != nil {
		_, _ = io.Copy(io.Discard, upload.Reader)
	}
	ct := s.contentType
	if ct == "" {
		ct = upload.ContentType
	}
	return &media.Result{
		Bytes:       append([]byte(nil), s.output...),
		ContentType: ct,
		Resized:     true,
	}, nil
}

type stubThumbnailer struct {
	err   error
	calls int
}

func (s *stubThumbnailer) Thumbnail(ctx context.Context, video []byte, fileName string) (*media.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &media.Result{Bytes: []byte("jpeg-frame"), ContentType: "image/jpeg"}, nil
}
