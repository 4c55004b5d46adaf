package animir

import (
	"math"
	"testing"
)

func TestRectDContains(t *testing.T) {
	r := RectD{X: 10, Y: 20, W: 100, H: 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("RectD%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectDUnion(t *testing.T) {
	a := RectD{X: 0, Y: 0, W: 10, H: 10}
	b := RectD{X: 5, Y: 5, W: 10, H: 10}
	got := a.Union(b)
	want := RectD{X: 0, Y: 0, W: 15, H: 15}
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestConcatIdentity(t *testing.T) {
	m := Matrix2D{A: 2, B: 0, C: 0, D: 3, TX: 5, TY: 7}
	got := Concat(IdentityMatrix, m)
	if got != m {
		t.Errorf("Concat(identity, m) = %v, want %v", got, m)
	}
	got2 := Concat(m, IdentityMatrix)
	if got2 != m {
		t.Errorf("Concat(m, identity) = %v, want %v", got2, m)
	}
}

// Matrix composition order: position=(0,0), scale=2, anchor=(10,0),
// rotation=0 maps local point (10,0) to world (0,0).
func TestMatrixOrderLaw(t *testing.T) {
	m := Concat(Translate(0, 0), Concat(Scale(2, 2), Translate(-10, 0)))
	got := m.Apply(Vec2D{X: 10, Y: 0})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("Apply((10,0)) = %v, want (0,0)", got)
	}
}

func TestRotate90MapsXYtoYNegX(t *testing.T) {
	m := Rotate(math.Pi / 2)
	got := m.Apply(Vec2D{X: 1, Y: 0})
	if math.Abs(got.X-0) > 1e-9 || math.Abs(got.Y-(-1)) > 1e-9 {
		t.Errorf("Rotate(90deg).Apply((1,0)) = %v, want (0,-1) [clockwise screen rotation]", got)
	}
}

func TestInvertSingularReturnsIdentity(t *testing.T) {
	m := Matrix2D{A: 0, B: 0, C: 0, D: 0, TX: 5, TY: 5}
	got := m.Invert()
	if got != IdentityMatrix {
		t.Errorf("Invert(singular) = %v, want identity", got)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Concat(Translate(12, -4), Concat(Rotate(0.7), Scale(2, 0.5)))
	inv := m.Invert()
	p := Vec2D{X: 3, Y: 9}
	world := m.Apply(p)
	back := inv.Apply(world)
	if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func BenchmarkConcat(b *testing.B) {
	p := Translate(1, 2)
	c := Rotate(0.5)
	b.ReportAllocs()
	for b.Loop() {
		_ = Concat(p, c)
	}
}
