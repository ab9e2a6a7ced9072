// Package geometry provides basic geometric types used throughout the application.
package geometry

import "image"

// Rect represents a rectangle with floating-point coordinates.
// Used for detector box math before pixel-space conversion.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToInt converts to a RectInt, truncating coordinates.
func (r Rect) ToInt() RectInt {
	return RectInt{X: int(r.X), Y: int(r.Y), Width: int(r.Width), Height: int(r.Height)}
}

// RectInt represents a rectangle with integer pixel coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// ToFloat converts to a Rect.
func (r RectInt) ToFloat() Rect {
	return Rect{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// ToImageRect converts to a standard library image.Rectangle.
func (r RectInt) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// FromImageRect creates a RectInt from a standard library image.Rectangle.
func FromImageRect(r image.Rectangle) RectInt {
	return RectInt{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ClampTo clips the rectangle to an image of the given dimensions.
// The result may be empty if the rectangle lies entirely outside.
func (r RectInt) ClampTo(width, height int) RectInt {
	x := max(r.X, 0)
	y := max(r.Y, 0)
	x2 := min(r.X+r.Width, width)
	y2 := min(r.Y+r.Height, height)
	return RectInt{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Contains returns true if the point (x, y) is inside the rectangle.
func (r RectInt) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r RectInt) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
