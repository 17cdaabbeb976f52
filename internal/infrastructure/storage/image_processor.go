package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp"
)

const (
	// ThumbnailWidth is the max width of grid thumbnails.
	ThumbnailWidth = 400
	// DisplayWidth is the max width of full-screen display variants.
	DisplayWidth = 1920

	jpegQuality = 85
)

// ImageProcessor produces resized derivatives of uploaded photos.
type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Resize scales an image down to at most maxWidth, preserving aspect
// ratio. Images already narrower than maxWidth keep their dimensions.
// PNG input stays PNG; everything else, WebP included, is re-encoded
// as JPEG since there is no writable WebP path. Returns the encoded
// bytes and the output content type.
func (p *ImageProcessor) Resize(data []byte, maxWidth int) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	img = flatten(img)

	if w := img.Bounds().Dx(); w > maxWidth {
		h := img.Bounds().Dy()
		newH := int(math.Round(float64(maxWidth) * float64(h) / float64(w)))
		img = imaging.Resize(img, maxWidth, newH, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if format == "png" {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(buf, img); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}

	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// Dimensions reports the pixel size of an encoded image without fully
// decoding it.
func (p *ImageProcessor) Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// flatten composites transparent or palette-based images onto a white
// background so they survive JPEG encoding.
func flatten(img image.Image) image.Image {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64, *image.Paletted:
		bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
	default:
		return img
	}
}
