package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gsdoc/common"
)

// NormalizeOptions controls how acquired images are stored.
type NormalizeOptions struct {
	Format      common.ImageFormat
	MaxWidth    int
	MaxHeight   int
	JPEGQuality int
	DPI         int
}

// Normalized is image ready to be referenced by renderers.
type Normalized struct {
	Data   []byte
	Format common.ImageFormat
	Width  int
	Height int
}

// Normalize decodes (or rasterizes SVG) image data, fits it into configured
// box and re-encodes it in requested format. Transparent areas are flattened
// onto white for JPEG output, grayscale images are stored as single channel.
func Normalize(data []byte, opts NormalizeOptions) (*Normalized, error) {
	var (
		img image.Image
		err error
	)
	if IsSVG(data) {
		img, err = RasterizeSVG(data, opts.MaxWidth, opts.MaxHeight)
		if err != nil {
			return nil, fmt.Errorf("unable to rasterize svg: %w", err)
		}
	} else {
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("unable to decode image: %w", err)
		}
	}

	if b := img.Bounds(); (opts.MaxWidth > 0 && b.Dx() > opts.MaxWidth) || (opts.MaxHeight > 0 && b.Dy() > opts.MaxHeight) {
		w, h := opts.MaxWidth, opts.MaxHeight
		if w <= 0 {
			w = b.Dx()
		}
		if h <= 0 {
			h = b.Dy()
		}
		img = imaging.Fit(img, w, h, imaging.Lanczos)
	}

	if opts.Format == common.ImageFormatJpeg && !isOpaque(img) {
		bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		img = imaging.Overlay(bg, img, image.Point{}, 1.0)
	}
	if IsGrayscale(img) {
		img = toGray(img)
	}

	res := &Normalized{Format: opts.Format, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	switch opts.Format {
	case common.ImageFormatPng:
		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, fmt.Errorf("unable to encode png: %w", err)
		}
		res.Data = buf.Bytes()
	default:
		res.Format = common.ImageFormatJpeg
		if res.Data, err = EncodeJPEG(img, opts.JPEGQuality, opts.DPI); err != nil {
			return nil, fmt.Errorf("unable to encode jpeg: %w", err)
		}
	}
	return res, nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}
