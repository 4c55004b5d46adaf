package preview

import (
	"math"
	"testing"

	"github.com/vectorframe/animir"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestEbitenGeoMMatchesMatrix2D(t *testing.T) {
	m := animir.Concat(animir.Translate(10, 20), animir.Rotate(math.Pi/2))
	g := ebitenGeoM(m)

	x, y := g.Apply(1, 0)
	want := m.Apply(animir.Vec2D{X: 1, Y: 0})
	if !approxEqual(x, want.X, 1e-9) || !approxEqual(y, want.Y, 1e-9) {
		t.Errorf("GeoM.Apply(1,0) = (%v,%v), want (%v,%v)", x, y, want.X, want.Y)
	}
}

func TestVectorPathFromClosedSquare(t *testing.T) {
	bp := animir.NewBezierPath([]animir.Vertex{
		{Point: animir.Vec2D{X: 0, Y: 0}},
		{Point: animir.Vec2D{X: 10, Y: 0}},
		{Point: animir.Vec2D{X: 10, Y: 10}},
		{Point: animir.Vec2D{X: 0, Y: 10}},
	}, true)
	vp := vectorPathFrom(bp)
	vs, is := vp.AppendVerticesAndIndicesForFilling(nil, nil)
	if len(vs) == 0 || len(is) == 0 {
		t.Fatal("expected non-empty triangulation for a closed square")
	}
}

func TestVectorPathFromEmpty(t *testing.T) {
	var bp animir.BezierPath
	vp := vectorPathFrom(bp)
	vs, _ := vp.AppendVerticesAndIndicesForFilling(nil, nil)
	if len(vs) != 0 {
		t.Errorf("expected no vertices for an empty path, got %d", len(vs))
	}
}

func TestTransformedBoundsIdentity(t *testing.T) {
	bp := animir.NewBezierPath([]animir.Vertex{
		{Point: animir.Vec2D{X: -5, Y: -5}},
		{Point: animir.Vec2D{X: 5, Y: 5}},
	}, false)
	r := transformedBounds(bp, animir.IdentityMatrix)
	if r.X != -5 || r.Y != -5 || r.W != 10 || r.H != 10 {
		t.Errorf("transformedBounds = %+v, want {-5,-5,10,10}", r)
	}
}

func TestTransformedBoundsTranslated(t *testing.T) {
	bp := animir.NewBezierPath([]animir.Vertex{
		{Point: animir.Vec2D{X: 0, Y: 0}},
		{Point: animir.Vec2D{X: 10, Y: 10}},
	}, false)
	r := transformedBounds(bp, animir.Translate(100, 0))
	if r.X != 100 || r.Y != 0 {
		t.Errorf("transformedBounds origin = (%v,%v), want (100,0)", r.X, r.Y)
	}
}
