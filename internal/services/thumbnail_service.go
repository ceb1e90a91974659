package services

import (
	"Shoebox/internal/helpers"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"math"
	"sync"

	"github.com/nfnt/resize"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// Thumbnails are capped on the short edge; the long edge follows the
	// source aspect ratio.
	thumbnailMaxShortEdge = 1024
	thumbnailJPEGQuality  = 85
)

var ErrTranscoderClosed = errors.New("thumbnail transcoder closed")

// ThumbnailService re-encodes source images into bounded JPEG data
// URLs. All work funnels through one worker goroutine, so at most one
// decoded image is held in memory no matter how many callers there are.
type ThumbnailService interface {
	Generate(data []byte) (string, error)
	Close()
}

type thumbnailJob struct {
	data  []byte
	reply chan thumbnailResult
}

type thumbnailResult struct {
	dataURL string
	err     error
}

type ThumbnailServiceImpl struct {
	jobs      chan thumbnailJob
	quit      chan struct{}
	closeOnce sync.Once
}

func NewThumbnailService() ThumbnailService {
	s := &ThumbnailServiceImpl{
		jobs: make(chan thumbnailJob),
		quit: make(chan struct{}),
	}
	go s.worker()
	return s
}

// Generate blocks until the worker has finished this image. A decode or
// encode problem is reported as an error with an empty result; after
// Close every call fails with ErrTranscoderClosed.
func (s *ThumbnailServiceImpl) Generate(data []byte) (string, error) {
	reply := make(chan thumbnailResult, 1)
	select {
	case s.jobs <- thumbnailJob{data: data, reply: reply}:
	case <-s.quit:
		return "", ErrTranscoderClosed
	}
	result := <-reply
	return result.dataURL, result.err
}

func (s *ThumbnailServiceImpl) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
}

func (s *ThumbnailServiceImpl) worker() {
	for {
		select {
		case job := <-s.jobs:
			// a job can slip in while Close is racing the select above
			select {
			case <-s.quit:
				job.reply <- thumbnailResult{err: ErrTranscoderClosed}
				return
			default:
			}
			dataURL, err := transcode(job.data)
			job.reply <- thumbnailResult{dataURL: dataURL, err: err}
		case <-s.quit:
			return
		}
	}
}

func transcode(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	// JPEG encoding needs a full-color image.
	if paletted, ok := img.(*image.Paletted); ok {
		rgba := image.NewRGBA(paletted.Bounds())
		draw.Draw(rgba, rgba.Bounds(), paletted, paletted.Bounds().Min, draw.Src)
		img = rgba
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	targetWidth, targetHeight := thumbnailSize(width, height)
	if targetWidth != width || targetHeight != height {
		img = resize.Resize(uint(targetWidth), uint(targetHeight), img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return helpers.EncodeDataURL("image/jpeg", buf.Bytes()), nil
}

// thumbnailSize scales both edges by the same factor when the short
// edge exceeds the cap. Each edge is rounded on its own, so the aspect
// ratio can drift by a pixel.
func thumbnailSize(width, height int) (int, int) {
	shortEdge := min(width, height)
	if shortEdge <= thumbnailMaxShortEdge {
		return width, height
	}
	scale := float64(thumbnailMaxShortEdge) / float64(shortEdge)
	return int(math.Round(float64(width) * scale)), int(math.Round(float64(height) * scale))
}
