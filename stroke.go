package animir

// LineCap mirrors Lottie's stroke line cap enumeration.
type LineCap int

const (
	LineCapButt LineCap = iota + 1
	LineCapRound
	LineCapSquare
)

// LineJoin mirrors Lottie's stroke line join enumeration.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota + 1
	LineJoinRound
	LineJoinBevel
)

// StrokeStyle describes how a shape's outline is painted: a static color and
// opacity (animated fill/stroke color is not supported — only the first
// sampled value is kept), an animatable width, and static cap/join/miter
// settings. Construction rejects dashed strokes and widths outside
// (0, 2048].
type StrokeStyle struct {
	Color      Color
	Opacity    float64 // 0..1, static
	Width      AnimTrack[float64]
	LineCap    LineCap
	LineJoin   LineJoin
	MiterLimit float64
}

const maxStrokeWidth = 2048.0

// newStrokeStyle validates and assembles a StrokeStyle. jsonPath is used for
// error messages only.
func newStrokeStyle(color Color, opacity float64, width AnimTrack[float64], cap LineCap, join LineJoin, miter float64, dashed bool, jsonPath string) (StrokeStyle, error) {
	if dashed {
		return StrokeStyle{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath, "dashed strokes are not supported")
	}
	if cap != LineCapButt && cap != LineCapRound && cap != LineCapSquare {
		return StrokeStyle{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath, "unsupported line cap %d", cap)
	}
	if join != LineJoinMiter && join != LineJoinRound && join != LineJoinBevel {
		return StrokeStyle{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath, "unsupported line join %d", join)
	}
	if miter < 0 {
		return StrokeStyle{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath, "negative miter limit %v", miter)
	}
	probe := []float64{0}
	if !width.IsStatic() {
		probe = probeTrackSamples(width)
	} else {
		probe = []float64{width.Sample(0)}
	}
	for _, w := range probe {
		if w <= 0 || w > maxStrokeWidth {
			return StrokeStyle{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath, "stroke width %v outside (0, %v]", w, maxStrokeWidth)
		}
	}
	return StrokeStyle{
		Color:      color,
		Opacity:    clamp01(opacity),
		Width:      width,
		LineCap:    cap,
		LineJoin:   join,
		MiterLimit: miter,
	}, nil
}

// probeTrackSamples returns each keyframe's start value, a cheap proxy for
// the track's range used only for the stroke-width bound check at compile
// time (the track may still dip outside this range between keyframes for
// non-monotonic easing curves — a known, accepted gap in this bound check).
func probeTrackSamples(t AnimTrack[float64]) []float64 {
	if t.IsStatic() {
		return []float64{t.Sample(0)}
	}
	out := make([]float64, 0, len(t.keyframes))
	for _, kf := range t.keyframes {
		out = append(out, kf.Start)
	}
	return out
}
