package animir

import "testing"

func TestCubicBezierEaseLinearEndpoints(t *testing.T) {
	fn := cubicBezierEase(0.25, 0.25, 0.75, 0.75) // ~linear handles
	got := fn(0, 0, 1, 10)
	if got < -0.001 || got > 0.001 {
		t.Errorf("fn(0,...) = %v, want ~0", got)
	}
	got = fn(10, 0, 1, 10)
	if got < 0.999 || got > 1.001 {
		t.Errorf("fn(duration,...) = %v, want ~1", got)
	}
}

func TestCubicBezierEaseMonotonicForEaseLikeCurve(t *testing.T) {
	fn := cubicBezierEase(0.42, 0, 0.58, 1) // CSS ease-in-out-ish
	prev := -1.0
	for i := 0; i <= 10; i++ {
		v := float64(fn(float32(i), 0, 1, 10))
		if v < prev-1e-9 {
			t.Fatalf("easing not monotonic at step %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestSolveBezierParamConverges(t *testing.T) {
	for _, x := range []float64{0, 0.1, 0.5, 0.9, 1} {
		tParam := solveBezierParam(x, 0.3, 0.7)
		got := bezierComponent(tParam, 0.3, 0.7)
		if got < x-1e-4 || got > x+1e-4 {
			t.Errorf("solveBezierParam(%v): bezierComponent(t)=%v, want %v", x, got, x)
		}
	}
}
