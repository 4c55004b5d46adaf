package animir

import "math"

// GroupTransform is an animatable 2-D transform shared by shape groups and
// layers: position, anchor, scale (stored as a fraction, e.g. 1.0 == 100%),
// rotation (degrees, clockwise in screen coordinates),
// and opacity (0..1). matrix composes in the fixed order
// T(position)·R(rotation)·S(scale)·T(-anchor).
type GroupTransform struct {
	Position AnimTrack[Vec2D]
	Anchor   AnimTrack[Vec2D]
	Scale    AnimTrack[Vec2D]
	Rotation AnimTrack[float64]
	Opacity  AnimTrack[float64]
}

// IdentityGroupTransform is a transform that contributes nothing: the
// identity matrix and full opacity at every frame.
func IdentityGroupTransform() GroupTransform {
	return GroupTransform{
		Position: NewStaticTrack(Vec2D{}),
		Anchor:   NewStaticTrack(Vec2D{}),
		Scale:    NewStaticTrack(Vec2D{X: 1, Y: 1}),
		Rotation: NewStaticTrack(0),
		Opacity:  NewStaticTrack(1.0),
	}
}

// matrix evaluates the transform's local matrix at frame.
func (g GroupTransform) matrix(frame float64) Matrix2D {
	pos := g.Position.Sample(frame)
	anchor := g.Anchor.Sample(frame)
	scale := g.Scale.Sample(frame)
	rot := g.Rotation.Sample(frame)

	m := Translate(pos.X, pos.Y)
	m = Concat(m, Rotate(rot*math.Pi/180))
	m = Concat(m, Scale2D(scale.X, scale.Y))
	m = Concat(m, Translate(-anchor.X, -anchor.Y))
	return m
}

// opacityAt evaluates the transform's own opacity contribution at frame.
// Unlike the transform matrix, opacity does not inherit down a same-
// composition parent chain — parent links are a pure transform convenience.
// It does accumulate across a precomp boundary: a precomp layer's own
// opacity multiplies into everything its nested composition draws.
func (g GroupTransform) opacityAt(frame float64) float64 {
	return clamp01(g.Opacity.Sample(frame))
}

// Scale2D builds a non-uniform scale matrix; named distinctly from the
// package-level geometry Scale func used for paths to avoid confusion
// between a scale ratio (1.0 == 100%) and a scale matrix.
func Scale2D(sx, sy float64) Matrix2D {
	return Scale(sx, sy)
}
