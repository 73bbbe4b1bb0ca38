package model

import "math"

// Rect is an axis-aligned rectangle in page coordinates, stored in corner
// form. The coordinate space has its origin at the top-left of the page, so
// Y0 is the top edge and Y1 the bottom edge. A well-formed Rect satisfies
// X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0 float64 // left
	Y0 float64 // top
	X1 float64 // right
	Y1 float64 // bottom
}

// NewRect creates a rectangle from two corner points, normalizing the
// coordinate order so the result is well-formed.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Intersects checks if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 ||
		r.X0 > other.X1 ||
		r.Y1 < other.Y0 ||
		r.Y0 > other.Y1)
}

// Contains checks if other lies entirely within r.
func (r Rect) Contains(other Rect) bool {
	return other.X0 >= r.X0 && other.X1 <= r.X1 &&
		other.Y0 >= r.Y0 && other.Y1 <= r.Y1
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// IsValid returns true if the corner order is well-formed.
func (r Rect) IsValid() bool {
	return r.X0 <= r.X1 && r.Y0 <= r.Y1
}

// IsZero returns true for the zero-value rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}
