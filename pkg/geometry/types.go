// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Round converts to the nearest integer point.
func (p Point2D) Round() PointInt {
	return PointInt{X: int(p.X + 0.5), Y: int(p.Y + 0.5)}
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Clamp returns the point clamped to [0, w-1] x [0, h-1].
func (p PointInt) Clamp(w, h int) PointInt {
	return PointInt{
		X: clampInt(p.X, 0, w-1),
		Y: clampInt(p.Y, 0, h-1),
	}
}

// RectInt represents a box selection with integer corner coordinates.
// A validated selection always satisfies X2 > X1 and Y2 > Y1.
type RectInt struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the rectangle width.
func (r RectInt) Width() int {
	return r.X2 - r.X1
}

// Height returns the rectangle height.
func (r RectInt) Height() int {
	return r.Y2 - r.Y1
}

// Center returns the center of the rectangle.
func (r RectInt) Center() PointInt {
	return PointInt{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// ContainsF returns true if the floating-point position lies strictly
// inside the rectangle.
func (r RectInt) ContainsF(x, y float64) bool {
	return x > float64(r.X1) && x < float64(r.X2) &&
		y > float64(r.Y1) && y < float64(r.Y2)
}

func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
