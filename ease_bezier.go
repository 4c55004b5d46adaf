package animir

import "github.com/tanema/gween/ease"

// cubicBezierEase adapts a Lottie keyframe's cubic-bezier easing handles
// (outgoing control (x1,y1), incoming control (x2,y2), with implicit anchors
// at (0,0) and (1,1)) into a [ease.TweenFunc]. gween's named eases
// (ease.Linear, ease.InQuad, ...) are fixed curves; Lottie instead stores an
// arbitrary cubic-bezier per keyframe, so this builds one on the fly rather
// than picking the closest named curve.
//
// track.go and anim_path.go call a TweenFunc as fn(elapsed, 0, 1, duration)
// to get a pure eased fraction, so this only needs to solve the bezier for
// that calling convention.
func cubicBezierEase(x1, y1, x2, y2 float64) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d == 0 {
			return b + c
		}
		u := float64(t) / float64(d)
		if u <= 0 {
			return b
		}
		if u >= 1 {
			return b + c
		}
		paramT := solveBezierParam(u, x1, x2)
		y := bezierComponent(paramT, y1, y2)
		return b + c*float32(y)
	}
}

// bezierComponent evaluates one axis of the cubic bezier with anchors at 0
// and 1: B(t) = 3(1-t)^2*t*p1 + 3(1-t)t^2*p2 + t^3.
func bezierComponent(t, p1, p2 float64) float64 {
	mt := 1 - t
	return 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t
}

// bezierComponentDerivative is d/dt of bezierComponent.
func bezierComponentDerivative(t, p1, p2 float64) float64 {
	mt := 1 - t
	return 3*mt*mt*p1 + 6*mt*t*(p2-p1) + 3*t*t*(1-p2)
}

// solveBezierParam finds t such that bezierComponent(t, x1, x2) == x, via
// Newton-Raphson with a bisection fallback for robustness against flat or
// out-of-range control points (Lottie does not clamp x1/x2 to [0,1]).
func solveBezierParam(x, x1, x2 float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		fx := bezierComponent(t, x1, x2) - x
		dfx := bezierComponentDerivative(t, x1, x2)
		if dfx == 0 {
			break
		}
		next := t - fx/dfx
		if next < 0 || next > 1 {
			break
		}
		t = next
		if fx < 0 {
			fx = -fx
		}
		if fx < 1e-7 {
			return t
		}
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 30; i++ {
		mid := (lo + hi) / 2
		if bezierComponent(mid, x1, x2) < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
