package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

var ErrUnsupportedFormat = errors.New("export: unsupported file format")

// Format picks the encoder from a file extension such as ".png".
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatPDF
)

func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// WriteImage encodes the raw canvas as PNG or JPEG.
func WriteImage(w io.Writer, img image.Image, f Format, jpegQuality int) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	}
	return fmt.Errorf("%w: format %d is not a raster format", ErrUnsupportedFormat, f)
}
