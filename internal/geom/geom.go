// Package geom provides the 2D value math shared by the session engine:
// immutable vectors for position/velocity/path points and axis-aligned
// rectangles for obstacle overlap tests. All operations are pure.
package geom

import "math"

// Vec2 is an immutable (x, y) pair. Methods return new values.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the euclidean magnitude of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Lerp returns the linear interpolation from v toward o by t.
// t is not clamped; callers pass a fixed smoothing factor in [0, 1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

// Vec3 holds one three-axis sensor reading (accelerometer or gyro counts).
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min  Vec2
	Size Vec2
}

// RectAt returns a rect with top-left (x, y) and the given dimensions.
func RectAt(x, y, w, h float64) Rect {
	return Rect{Min: Vec2{x, y}, Size: Vec2{w, h}}
}

// RectCentered returns a rect whose center is c.
func RectCentered(c Vec2, w, h float64) Rect {
	return Rect{Min: Vec2{c.X - w/2, c.Y - h/2}, Size: Vec2{w, h}}
}

// Center returns the rect's center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.Min.X + r.Size.X/2, r.Min.Y + r.Size.Y/2}
}

// Overlaps reports whether r and o intersect with positive area.
// Rects that share only an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Min.X+o.Size.X &&
		r.Min.X+r.Size.X > o.Min.X &&
		r.Min.Y < o.Min.Y+o.Size.Y &&
		r.Min.Y+r.Size.Y > o.Min.Y
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PathLength sums the distances between consecutive points.
// Fewer than two points yields zero.
func PathLength(points []Vec2) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}
