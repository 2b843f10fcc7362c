// canvas.go — Transparent RGBA canvas allocation and frame pasting.
package codec

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// MaxCanvasPixels bounds the canvas area (256 MP, 1 GiB of RGBA).
const MaxCanvasPixels int64 = 1 << 28

var (
	// ErrInvalidCanvas is returned by NewCanvas for a zero or negative dimension.
	ErrInvalidCanvas = errors.New("canvas dimensions must be positive")
	// ErrCanvasTooLarge is returned by NewCanvas when w×h exceeds the pixel cap.
	ErrCanvasTooLarge = errors.New("canvas exceeds pixel limit")
)

// NewCanvas allocates a w×h RGBA image with every pixel at (0,0,0,0).
// The canvas is always four 8-bit channels, whatever the inputs were.
func (c *FileCodec) NewCanvas(w, h int) (draw.Image, error) {
	if err := validateCanvas(w, h, c.opts.MaxPixels); err != nil {
		return nil, err
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// Paste copies src onto dst with its top-left corner at (x, y), replacing
// the destination pixels, alpha included.
func (c *FileCodec) Paste(dst draw.Image, src image.Image, x, y int) {
	b := src.Bounds()
	at := image.Pt(x, y)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, src, b.Min, draw.Src)
}

func validateCanvas(w, h int, limit int64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w (%d x %d)", ErrInvalidCanvas, w, h)
	}
	if pixels := int64(w) * int64(h); limit > 0 && pixels > limit {
		return fmt.Errorf("%w: %d pixels > %d", ErrCanvasTooLarge, pixels, limit)
	}
	return nil
}
