// Package strip concatenates images left to right into a single strip.
//
// The pipeline is linear: decode every input, plan the canvas, paste each
// frame at its offset, then encode. File formats are handled by an injected
// Codec so the geometry can be tested without touching disk.
package strip

import (
	"fmt"
	"image"
	"image/draw"

	"go.uber.org/zap"
)

// Codec is the imaging capability the compositor depends on.
type Codec interface {
	// Load decodes the image stored at path.
	Load(path string) (image.Image, error)
	// Save encodes img to path, choosing the format from the extension.
	Save(img image.Image, path string) error
	// NewCanvas returns a fully transparent RGBA image of w×h pixels.
	NewCanvas(w, h int) (draw.Image, error)
	// Paste copies all of src, alpha included, onto dst with its top-left at (x, y).
	Paste(dst draw.Image, src image.Image, x, y int)
}

// Result describes a written strip.
type Result struct {
	Output string
	Width  int
	Height int
	Frames int
}

func (r Result) String() string {
	return fmt.Sprintf("Saved %s (%dx%d, %d frames)", r.Output, r.Width, r.Height, r.Frames)
}

// Compositor builds strips through a Codec.
type Compositor struct {
	codec Codec
}

// New creates a compositor backed by codec.
func New(codec Codec) *Compositor {
	return &Compositor{codec: codec}
}

// ValidateArgs splits positional arguments into the output path and the
// input paths. It fails with a *UsageError unless there is an output path
// and at least MinInputs inputs.
func ValidateArgs(args []string) (output string, inputs []string, err error) {
	if len(args) < 1+MinInputs {
		return "", nil, &UsageError{Args: len(args)}
	}
	return args[0], args[1:], nil
}

// Compose decodes inputs in order, places them side by side on a
// transparent canvas and writes the canvas to output. Nothing is written
// unless every input decodes and the canvas can be allocated.
func (c *Compositor) Compose(inputs []string, output string) (Result, error) {
	if len(inputs) < MinInputs {
		return Result{}, &UsageError{Args: len(inputs) + 1}
	}

	frames, err := c.load(inputs)
	if err != nil {
		return Result{}, err
	}

	sizes := make([]image.Point, len(frames))
	for i, f := range frames {
		sizes[i] = f.Bounds().Size()
	}
	layout := Plan(sizes)
	Logger().Debug("planned strip",
		zap.Int("width", layout.Width),
		zap.Int("height", layout.Height),
		zap.Int("frames", len(frames)))
	if !uniformWidth(sizes) {
		Logger().Warn("frame widths differ; players that slice the strip into equal cells will misalign",
			zap.Ints("widths", widths(sizes)))
	}

	canvas, err := c.codec.NewCanvas(layout.Width, layout.Height)
	if err != nil {
		return Result{}, &AllocationError{Width: layout.Width, Height: layout.Height, Err: err}
	}

	for _, p := range layout.Placements {
		c.codec.Paste(canvas, frames[p.Index], p.X, 0)
	}
	clear(frames)

	if err := c.codec.Save(canvas, output); err != nil {
		return Result{}, &EncodeError{Path: output, Err: err}
	}

	return Result{
		Output: output,
		Width:  layout.Width,
		Height: layout.Height,
		Frames: len(inputs),
	}, nil
}

// load decodes every path in order and stops at the first failure,
// dropping the frames decoded so far.
func (c *Compositor) load(paths []string) ([]image.Image, error) {
	frames := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		img, err := c.codec.Load(p)
		if err != nil {
			clear(frames)
			return nil, &DecodeError{Path: p, Err: err}
		}
		Logger().Debug("decoded frame",
			zap.String("path", p),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()))
		frames = append(frames, img)
	}
	return frames, nil
}

func uniformWidth(sizes []image.Point) bool {
	if len(sizes) == 0 {
		return true
	}
	for _, s := range sizes[1:] {
		if s.X != sizes[0].X {
			return false
		}
	}
	return true
}

func widths(sizes []image.Point) []int {
	w := make([]int, len(sizes))
	for i, s := range sizes {
		w[i] = s.X
	}
	return w
}
