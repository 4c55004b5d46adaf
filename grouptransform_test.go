package animir

import (
	"math"
	"testing"
)

func TestIdentityGroupTransformMatrix(t *testing.T) {
	g := IdentityGroupTransform()
	m := g.matrix(0)
	if m != IdentityMatrix {
		t.Errorf("matrix(0) = %+v, want identity", m)
	}
	if op := g.opacityAt(0); op != 1.0 {
		t.Errorf("opacityAt(0) = %v, want 1.0", op)
	}
}

func TestGroupTransformTranslation(t *testing.T) {
	g := GroupTransform{
		Position: NewStaticTrack(Vec2D{X: 10, Y: 20}),
		Anchor:   NewStaticTrack(Vec2D{}),
		Scale:    NewStaticTrack(Vec2D{X: 1, Y: 1}),
		Rotation: NewStaticTrack(0),
		Opacity:  NewStaticTrack(1.0),
	}
	p := g.matrix(0).Apply(Vec2D{X: 0, Y: 0})
	if p.X != 10 || p.Y != 20 {
		t.Errorf("Apply(origin) = %+v, want (10,20)", p)
	}
}

func TestGroupTransformAnchorAppliesBeforeRotation(t *testing.T) {
	g := GroupTransform{
		Position: NewStaticTrack(Vec2D{}),
		Anchor:   NewStaticTrack(Vec2D{X: 10, Y: 0}),
		Scale:    NewStaticTrack(Vec2D{X: 1, Y: 1}),
		Rotation: NewStaticTrack(90),
		Opacity:  NewStaticTrack(1.0),
	}
	// The anchor point itself should map back to position (0,0): rotating a
	// point around its own anchor leaves it fixed.
	p := g.matrix(0).Apply(Vec2D{X: 10, Y: 0})
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Errorf("Apply(anchor) = %+v, want ~(0,0)", p)
	}
}

func TestGroupTransformOpacityClamped(t *testing.T) {
	g := IdentityGroupTransform()
	g.Opacity = NewStaticTrack(1.5)
	if op := g.opacityAt(0); op != 1.0 {
		t.Errorf("opacityAt with 1.5 input = %v, want clamped to 1.0", op)
	}
	g.Opacity = NewStaticTrack(-0.5)
	if op := g.opacityAt(0); op != 0.0 {
		t.Errorf("opacityAt with -0.5 input = %v, want clamped to 0.0", op)
	}
}
