// layout.go — Canvas geometry for a horizontal strip.
package strip

import "image"

// Placement positions one input frame on the canvas. Frames are always
// top-aligned, so only the horizontal offset varies.
type Placement struct {
	Index int         // position in the input list
	X     int         // left edge on the canvas
	Size  image.Point // frame width and height
}

// Rect returns the canvas region the frame occupies.
func (p Placement) Rect() image.Rectangle {
	return image.Rectangle{Min: image.Pt(p.X, 0), Max: image.Pt(p.X, 0).Add(p.Size)}
}

// Layout is the computed canvas size plus the placement of every frame.
type Layout struct {
	Width      int
	Height     int
	Placements []Placement
}

// Plan lays out frames of the given sizes left to right in input order.
// Width is the sum of all widths; Height is the tallest frame.
func Plan(sizes []image.Point) Layout {
	l := Layout{Placements: make([]Placement, 0, len(sizes))}
	for i, s := range sizes {
		l.Placements = append(l.Placements, Placement{Index: i, X: l.Width, Size: s})
		l.Width += s.X
		l.Height = max(l.Height, s.Y)
	}
	return l
}
