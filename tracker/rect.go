package tracker

import (
	"math"
)

// Xyah (center x, center y, aspect ratio, height) is the box representation
// used as the Kalman filter measurement space
type Xyah []float64

// Rect represents an axis aligned bounding box in corner form, where
// (X1,Y1) is the top left and (X2,Y2) the bottom right corner
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// NewRect creates a new Rect from the top left corner and dimensions
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		X1: x,
		Y1: y,
		X2: x + width,
		Y2: y + height,
	}
}

// NewRectFromCorners creates a new Rect from top left and bottom right
// corner coordinates
func NewRectFromCorners(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// Width returns the width of the rectangle
func (r Rect) Width() float64 {
	return r.X2 - r.X1
}

// Height returns the height of the rectangle
func (r Rect) Height() float64 {
	return r.Y2 - r.Y1
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Center returns the center point coordinates of the rectangle
func (r Rect) Center() (float64, float64) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Valid reports if the rectangle is well formed with X1 < X2 and Y1 < Y2
func (r Rect) Valid() bool {
	return r.X1 < r.X2 && r.Y1 < r.Y2
}

// GetXyah converts the rectangle to Xyah (center x, center y, aspect ratio,
// height) format
func (r Rect) GetXyah() Xyah {
	cx, cy := r.Center()
	return Xyah{
		cx,
		cy,
		r.Width() / r.Height(),
		r.Height(),
	}
}

// CalcIoU calculates the Intersection over Union with another rectangle.
// Identical boxes give 1 and disjoint boxes give 0.
func (r Rect) CalcIoU(other Rect) float64 {

	iw := math.Min(r.X2, other.X2) - math.Max(r.X1, other.X1)

	if iw <= 0 {
		return 0
	}

	ih := math.Min(r.Y2, other.Y2) - math.Max(r.Y1, other.Y1)

	if ih <= 0 {
		return 0
	}

	inter := iw * ih
	union := r.Area() + other.Area() - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}

// GenerateRectByXyah creates a Rect from Xyah (center x, center y,
// aspect ratio, height) format
func GenerateRectByXyah(xyah Xyah) Rect {
	width := xyah[2] * xyah[3]
	return NewRect(xyah[0]-width/2, xyah[1]-xyah[3]/2, width, xyah[3])
}
