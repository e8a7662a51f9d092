package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	thumbnailMinDim  = 32
	thumbnailMaxEdge = 1280
	thumbnailQuality = 82
)

// ThumbnailProcessor normalizes uploaded thumbnails. Input may be JPEG,
// PNG, or WebP; output is always JPEG with the longest edge capped at
// thumbnailMaxEdge.
type ThumbnailProcessor struct {
	maxEdge int
	quality int
}

func NewThumbnailProcessor() *ThumbnailProcessor {
	return &ThumbnailProcessor{maxEdge: thumbnailMaxEdge, quality: thumbnailQuality}
}

// Process decodes, validates, downscales, and re-encodes the thumbnail.
// The returned bytes are always a JPEG.
func (p *ThumbnailProcessor) Process(content []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("decoding thumbnail: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < thumbnailMinDim || height < thumbnailMinDim {
		return nil, fmt.Errorf("thumbnail %dx%d is below the %dpx minimum", width, height, thumbnailMinDim)
	}

	if scaled := p.targetSize(width, height); scaled != nil {
		dst := image.NewRGBA(image.Rect(0, 0, scaled.X, scaled.Y))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encoding thumbnail from %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// targetSize returns the downscaled dimensions, or nil when the image
// already fits within the edge cap.
func (p *ThumbnailProcessor) targetSize(width, height int) *image.Point {
	longest := width
	if height > longest {
		longest = height
	}
	if longest <= p.maxEdge {
		return nil
	}
	scale := float64(p.maxEdge) / float64(longest)
	return &image.Point{
		X: int(float64(width)*scale + 0.5),
		Y: int(float64(height)*scale + 0.5),
	}
}
