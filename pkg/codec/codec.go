// Package codec reads and writes image files for strip composition.
//
// Inputs are decoded by sniffing their content, so a mislabeled extension
// still loads. Outputs are encoded by file extension:
//   - ".png"          → PNG
//   - ".jpg", ".jpeg" → JPEG (alpha is discarded)
//   - ".gif"          → GIF (transparent entry plus Plan 9, Floyd–Steinberg dithering)
//   - ".bmp"          → BMP
//   - ".tif", ".tiff" → TIFF (deflate)
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp"
)

// gifPalette puts a fully transparent entry ahead of the first 255 Plan 9
// colors, so padding under short frames stays transparent.
var gifPalette = append(color.Palette{color.Transparent}, palette.Plan9[:255]...)

// ErrUnsupportedFormat is returned by Save for an unknown output extension.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Options tunes a FileCodec.
type Options struct {
	JPEGQuality int   // 1–100 (default: 95)
	MaxPixels   int64 // canvas pixel cap (default: MaxCanvasPixels)
}

// Option mutates Options.
type Option func(*Options)

// WithJPEGQuality sets the quality used for .jpg/.jpeg output.
func WithJPEGQuality(q int) Option {
	return func(o *Options) { o.JPEGQuality = q }
}

// WithMaxPixels caps the canvas area NewCanvas will allocate.
func WithMaxPixels(n int64) Option {
	return func(o *Options) { o.MaxPixels = n }
}

// FileCodec loads and saves images on the local filesystem.
type FileCodec struct {
	opts Options
}

// New creates a FileCodec.
func New(opts ...Option) *FileCodec {
	o := Options{
		JPEGQuality: 95,
		MaxPixels:   MaxCanvasPixels,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.JPEGQuality = min(max(o.JPEGQuality, 1), 100)
	return &FileCodec{opts: o}
}

// Load decodes the image at path. The file is closed before returning.
func (c *FileCodec) Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	Logger().Debug("loaded image", zap.String("path", path), zap.String("format", format))
	return img, nil
}

// Save encodes img to path. The format is inferred from the extension and
// the file is replaced atomically, so a failed save leaves no partial output.
func (c *FileCodec) Save(img image.Image, path string) error {
	enc, err := c.encoderFor(path)
	if err != nil {
		return err
	}
	if err := writeAtomic(path, func(w io.Writer) error { return enc(w, img) }); err != nil {
		return err
	}
	Logger().Debug("saved image", zap.String("path", path))
	return nil
}

type encodeFunc func(w io.Writer, img image.Image) error

func (c *FileCodec) encoderFor(path string) (encodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		Logger().Warn("JPEG has no alpha channel; transparent areas will be flattened", zap.String("path", path))
		opts := &jpeg.Options{Quality: c.opts.JPEGQuality}
		return func(w io.Writer, img image.Image) error { return jpeg.Encode(w, img, opts) }, nil
	case ".gif":
		return encodeGIF, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		opts := &tiff.Options{Compression: tiff.Deflate}
		return func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, opts) }, nil
	default:
		return nil, fmt.Errorf("%w %q: use .png, .jpg, .gif, .bmp or .tiff", ErrUnsupportedFormat, ext)
	}
}

func encodeGIF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	pm := image.NewPaletted(b, gifPalette)
	draw.FloydSteinberg.Draw(pm, b, img, b.Min)
	return gif.Encode(w, pm, nil)
}
