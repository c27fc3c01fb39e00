package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// PhotoProcessor normalizes uploaded beach photos.
type PhotoProcessor struct {
	maxWidth  int
	maxHeight int
	quality   int
}

// NewPhotoProcessor builds a processor that fits photos into the given
// bounding box and re-encodes them as JPEG.
func NewPhotoProcessor(maxWidth, maxHeight int) *PhotoProcessor {
	return &PhotoProcessor{maxWidth: maxWidth, maxHeight: maxHeight, quality: 85}
}

// Normalize decodes the uploaded image, scales it down to fit the bounding
// box (never up) and re-encodes it as JPEG. The result is what gets stored
// and served, regardless of the upload format.
func (p *PhotoProcessor) Normalize(content io.Reader) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("decode image failed: %w", err)
	}

	fitted := imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitted, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode image failed: %w", err)
	}
	return buf, nil
}
