package preview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/vectorframe/animir"
)

// ebitenGeoM converts a [animir.Matrix2D] to an [ebiten.GeoM]. Both use the
// same column layout (x' = a*x + c*y + tx, y' = b*x + d*y + ty), so this is
// a direct element copy.
func ebitenGeoM(m animir.Matrix2D) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.C)
	g.SetElement(0, 2, m.TX)
	g.SetElement(1, 0, m.B)
	g.SetElement(1, 1, m.D)
	g.SetElement(1, 2, m.TY)
	return g
}

// vectorPathFrom builds an ebiten vector.Path from a [animir.BezierPath]'s
// vertex/tangent data, matching the Lottie in/out-handle convention anim_path.go
// and shape.go already decode into BezierPath.
func vectorPathFrom(bp animir.BezierPath) vector.Path {
	var p vector.Path
	if len(bp.Vertices) == 0 {
		return p
	}
	v0 := bp.Vertices[0]
	p.MoveTo(float32(v0.Point.X), float32(v0.Point.Y))
	n := len(bp.Vertices)
	last := n - 1
	if bp.Closed {
		last = n
	}
	for i := 0; i < last; i++ {
		a := bp.Vertices[i%n]
		b := bp.Vertices[(i+1)%n]
		c1 := Vec2Add(a.Point, a.OutTangent)
		c2 := Vec2Add(b.Point, b.InTangent)
		p.CubicTo(
			float32(c1.X), float32(c1.Y),
			float32(c2.X), float32(c2.Y),
			float32(b.Point.X), float32(b.Point.Y),
		)
	}
	if bp.Closed {
		p.Close()
	}
	return p
}

// Vec2Add adds two vectors; a tiny local helper so geom.go doesn't reach
// into animir's unexported arithmetic.
func Vec2Add(a, b animir.Vec2D) animir.Vec2D {
	return animir.Vec2D{X: a.X + b.X, Y: a.Y + b.Y}
}
