package dnd

import "math"

// ItemID is the stable identity of a list item. It is supplied by the
// consumer and used to track measured heights across reordering - never the
// array index, which changes as items move.
type ItemID string

// ContainerID identifies a registered scroll container.
type ContainerID string

// Axis restricts which pointer delta components affect drag resolution.
type Axis int

const (
	AxisNone Axis = iota // No restriction
	AxisX                // Only horizontal movement is honored
	AxisY                // Only vertical movement is honored
)

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Len returns the vector's length.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Clamp returns the nearest point inside the rectangle.
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: clampf(p.X, r.X, r.X+r.W),
		Y: clampf(p.Y, r.Y, r.Y+r.H),
	}
}

// heightTolerance is the float tolerance below which a reported measurement
// is considered unchanged from the stored one.
const heightTolerance = 0.25

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// minf returns the minimum of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
