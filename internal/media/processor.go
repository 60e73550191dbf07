package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 2048
	defaultJPEGQuality  = 3
	defaultPNGLevel     = 4
	defaultWebPQuality  = 85
	thumbnailOffset     = "00:00:01"
	thumbnailWidth      = 640
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// KindOf classifies a MIME type; ok is false for anything that is neither an
// image nor a video.
func KindOf(contentType string) (Kind, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindImage, true
	case strings.HasPrefix(ct, "video/"):
		return KindVideo, true
	}
	return "", false
}

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Resized     bool
}

// Processor downsizes images that exceed maxDimension on either side.
type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// Thumbnailer extracts a still JPEG frame from a video.
type Thumbnailer interface {
	Thumbnail(ctx context.Context, video []byte, fileName string) (*Result, error)
}

type FFMPEGProcessor struct {
	path         string
	maxDimension int
	jpegQuality  int
	pngLevel     int
	webpQuality  int
}

func NewFFMPEGProcessor(binaryPath string, maxDimension int) *FFMPEGProcessor {
	path := strings.TrimSpace(binaryPath)
	if path == "" {
		path = "ffmpeg"
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &FFMPEGProcessor{
		path:         path,
		maxDimension: maxDimension,
		jpegQuality:  defaultJPEGQuality,
		pngLevel:     defaultPNGLevel,
		webpQuality:  defaultWebPQuality,
	}
}

func (p *FFMPEGProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}

	contentType := NormalizeContentType(upload.ContentType, upload.FileName)

	width, height, err := decodeDimensions(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode dimensions: %w", err)
	}
	limit := maxDimension
	if limit <= 0 {
		limit = p.maxDimension
	}
	if width <= limit && height <= limit {
		return &Result{Bytes: data, ContentType: contentType}, nil
	}

	codec, codecArgs, err := p.codecArgs(contentType)
	if err != nil {
		return nil, err
	}
	targetW, targetH := scaleToFit(width, height, limit)
	args := []string{
		"-i", "pipe:0",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", targetW, targetH),
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", codec,
	}
	args = append(args, codecArgs...)
	out, err := p.run(ctx, bytes.NewReader(data), args...)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: out, ContentType: contentType, Resized: true}, nil
}

// Thumbnail writes the video to a temporary file because most containers need
// a seekable input, then grabs one frame a second in.
func (p *FFMPEGProcessor) Thumbnail(ctx context.Context, video []byte, fileName string) (*Result, error) {
	if len(video) == 0 {
		return nil, fmt.Errorf("media: empty video data")
	}
	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".mp4"
	}
	tmp, err := os.CreateTemp("", "motour-video-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("media: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(video); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("media: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("media: close temp file: %w", err)
	}

	out, err := p.run(ctx, nil,
		"-ss", thumbnailOffset,
		"-i", tmp.Name(),
		"-vf", fmt.Sprintf("scale=%d:-2", thumbnailWidth),
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-q:v", strconv.Itoa(p.jpegQuality),
	)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: out, ContentType: "image/jpeg"}, nil
}

func (p *FFMPEGProcessor) run(ctx context.Context, stdin io.Reader, args ...string) ([]byte, error) {
	cmdArgs := append([]string{"-hide_banner", "-loglevel", "error"}, args...)
	cmdArgs = append(cmdArgs, "pipe:1")

	cmd := exec.CommandContext(ctx, p.path, cmdArgs...)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ffmpeg: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg: produced empty output")
	}
	return stdout.Bytes(), nil
}

func (p *FFMPEGProcessor) codecArgs(contentType string) (string, []string, error) {
	switch contentType {
	case "image/jpeg":
		return "mjpeg", []string{"-q:v", strconv.Itoa(p.jpegQuality)}, nil
	case "image/png":
		return "png", []string{"-compression_level", strconv.Itoa(p.pngLevel)}, nil
	case "image/webp":
		return "libwebp", []string{"-quality", strconv.Itoa(p.webpQuality)}, nil
	}
	return "", nil, fmt.Errorf("media: unsupported content type %s", contentType)
}

func decodeDimensions(r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}

func scaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		h := int(math.Round(float64(height) * float64(maxDim) / float64(width)))
		return atLeastTwo(maxDim), atLeastTwo(h)
	}
	w := int(math.Round(float64(width) * float64(maxDim) / float64(height)))
	return atLeastTwo(w), atLeastTwo(maxDim)
}

func atLeastTwo(v int) int {
	if v < 2 {
		return 2
	}
	return v
}

// NormalizeContentType lowercases the declared type, falling back to the file
// extension when the client sent none.
func NormalizeContentType(value, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	}
	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return strings.ToLower(strings.SplitN(mt, ";", 2)[0])
		}
	}
	return "application/octet-stream"
}

// ExtensionFor picks the object key extension for a stored file.
func ExtensionFor(contentType, fileName string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		return ext
	}
	return ".bin"
}
