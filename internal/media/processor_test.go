package media

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := map[string]struct {
		kind Kind
		ok   bool
	}{
		"image/png":        {KindImage, true},
		" IMAGE/JPEG ":     {KindImage, true},
		"video/mp4":        {KindVideo, true},
		"application/pdf":  {"", false},
		"":                 {"", false},
	}
	for input, want := range cases {
		kind, ok := KindOf(input)
		if kind != want.kind || ok != want.ok {
			t.Fatalf("KindOf(%q) = %q, %v; want %q, %v", input, kind, ok, want.kind, want.ok)
		}
	}
}

func TestNormalizeContentType(t *testing.T) {
	if got := NormalizeContentType("image/jpg", ""); got != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", got)
	}
	if got := NormalizeContentType("", "clip.MP4"); got != "video/mp4" {
		t.Fatalf("expected video/mp4, got %q", got)
	}
	if got := NormalizeContentType("application/octet-stream", "photo.webp"); got != "image/webp" {
		t.Fatalf("expected image/webp, got %q", got)
	}
	if got := NormalizeContentType("image/png; charset=binary", ""); got != "image/png" {
		t.Fatalf("expected parameters to be dropped, got %q", got)
	}
}

func TestScaleToFit(t *testing.T) {
	w, h := scaleToFit(4000, 2000, 2000)
	if w != 2000 || h != 1000 {
		t.Fatalf("expected 2000x1000, got %dx%d", w, h)
	}
	w, h = scaleToFit(10, 4000, 2000)
	if w != 5 || h != 2000 {
		t.Fatalf("expected 5x2000, got %dx%d", w, h)
	}
	w, _ = scaleToFit(1, 4000, 100)
	if w != 2 {
		t.Fatalf("expected minimum width 2, got %d", w)
	}
}

func TestProcessSkipsSmallImages(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	// ffmpeg path is never invoked for images inside the limit
	p := NewFFMPEGProcessor("/nonexistent/ffmpeg", 64)
	res, err := p.Process(context.Background(), Upload{
		Reader:      bytes.NewReader(buf.Bytes()),
		Size:        int64(buf.Len()),
		FileName:    "tiny.png",
		ContentType: "image/png",
	}, 0)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if res.Resized {
		t.Fatalf("expected image to be left untouched")
	}
	if !bytes.Equal(res.Bytes, buf.Bytes()) {
		t.Fatalf("expected original bytes to be returned")
	}
}

func TestExtensionFor(t *testing.T) {
	if got := ExtensionFor("video/quicktime", "x"); got != ".mov" {
		t.Fatalf("expected .mov, got %q", got)
	}
	if got := ExtensionFor("application/x-custom", "a.HEIC"); got != ".heic" {
		t.Fatalf("expected .heic, got %q", got)
	}
}
