package animir

import "math"

// Matrix2D is a 2-D affine transform [a b c d tx ty] laid out as:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// The zero value is NOT the identity; use [IdentityMatrix].
type Matrix2D struct {
	A, B, C, D, TX, TY float64
}

// IdentityMatrix is the identity affine transform.
var IdentityMatrix = Matrix2D{A: 1, D: 1}

// Vec2D is a 2-D point or vector.
type Vec2D struct {
	X, Y float64
}

// SizeD is a 2-D size.
type SizeD struct {
	W, H float64
}

// RectD is an axis-aligned rectangle using a top-left-origin, Y-down,
// inclusive-edge convention.
type RectD struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r, edges inclusive.
func (r RectD) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Union returns the smallest rectangle containing both r and other.
func (r RectD) Union(other RectD) RectD {
	if r.W == 0 && r.H == 0 {
		return other
	}
	if other.W == 0 && other.H == 0 {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.W, other.X+other.W)
	y1 := math.Max(r.Y+r.H, other.Y+other.H)
	return RectD{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate builds a pure-translation matrix.
func Translate(x, y float64) Matrix2D {
	return Matrix2D{A: 1, D: 1, TX: x, TY: y}
}

// Scale builds a pure-scale matrix.
func Scale(sx, sy float64) Matrix2D {
	return Matrix2D{A: sx, D: sy}
}

// Rotate builds a pure-rotation matrix. Lottie rotation is clockwise in
// screen coordinates (Y down), so a positive angle maps (x,y) -> (y, -x),
// i.e. a 90 degree rotation maps (1,0) -> (0,-1).
func Rotate(radians float64) Matrix2D {
	sin, cos := math.Sincos(radians)
	return Matrix2D{A: cos, B: -sin, C: sin, D: cos}
}

// Concat returns p * c — p applied after c (p is the outer/parent transform,
// c is the inner/child transform). Matches multiplyAffine's parent-then-child
// convention: concatenation is outer -> inner, left to right.
func Concat(p, c Matrix2D) Matrix2D {
	return Matrix2D{
		A:  p.A*c.A + p.C*c.B,
		B:  p.B*c.A + p.D*c.B,
		C:  p.A*c.C + p.C*c.D,
		D:  p.B*c.C + p.D*c.D,
		TX: p.A*c.TX + p.C*c.TY + p.TX,
		TY: p.B*c.TX + p.D*c.TY + p.TY,
	}
}

// Invert returns the inverse of m, or [IdentityMatrix] if m is singular.
func (m Matrix2D) Invert() Matrix2D {
	det := m.A*m.D - m.C*m.B
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m.D * invDet
	b := -m.B * invDet
	c := -m.C * invDet
	d := m.A * invDet
	return Matrix2D{
		A: a, B: b, C: c, D: d,
		TX: -(a*m.TX + c*m.TY),
		TY: -(b*m.TX + d*m.TY),
	}
}

// Apply transforms a point by m.
func (m Matrix2D) Apply(p Vec2D) Vec2D {
	return Vec2D{X: m.A*p.X + m.C*p.Y + m.TX, Y: m.B*p.X + m.D*p.Y + m.TY}
}

// ApplyVector transforms a tangent/direction vector by m's linear part only,
// discarding translation — used to carry a path's in/out handles through a
// matrix without also translating them a second time.
func (m Matrix2D) ApplyVector(v Vec2D) Vec2D {
	return Vec2D{X: m.A*v.X + m.C*v.Y, Y: m.B*v.X + m.D*v.Y}
}

// Color is an RGB color with components in [0, 1]. Opacity is tracked
// separately (as an AnimTrack or a plain float) rather than as a 4th
// channel, matching StrokeStyle's own split between Color and Opacity.
type Color struct {
	R, G, B float64
}

// Array returns the color as [3]float64, the shape drawShape/drawStroke
// commands carry.
func (c Color) Array() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// clampInt clamps x to [lo, hi].
func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// clampFloat clamps x to [lo, hi].
func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// lerp linearly interpolates between a and b at t in [0, 1].
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
