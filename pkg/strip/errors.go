// errors.go — Failure taxonomy for a strip run. Every error is fatal.
package strip

import (
	"errors"
	"fmt"
	"io/fs"
)

// MinInputs is the smallest number of input images a run accepts.
const MinInputs = 2

// ErrTooFewInputs is wrapped by every UsageError.
var ErrTooFewInputs = errors.New("too few input images")

// UsageError reports that the invocation lacks an output path or enough inputs.
type UsageError struct {
	Args int // positional arguments received, output path included
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("need an output path and at least %d input images, got %d arguments", MinInputs, e.Args)
}

func (e *UsageError) Unwrap() error { return ErrTooFewInputs }

// Usage returns the one-line usage text for program.
func Usage(program string) string {
	return fmt.Sprintf("Usage: %s output.png input1.png input2.png ...", program)
}

// DecodeError reports an input that is missing, unreadable or not an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	// Don't repeat the path an *fs.PathError already carries.
	var pe *fs.PathError
	if errors.As(e.Err, &pe) && pe.Path == e.Path {
		return fmt.Sprintf("read image %s: %v", e.Path, pe.Err)
	}
	return fmt.Sprintf("read image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AllocationError reports a canvas that could not be allocated.
type AllocationError struct {
	Width, Height int
	Err           error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocate %dx%d canvas: %v", e.Width, e.Height, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// EncodeError reports an output that could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
