package animir

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// PathKeyframe is one control point of a [AnimPath]'s keyframed form: a time,
// a concrete [BezierPath], and optional interpolation hints (an easing
// function applied to the segment starting at this keyframe).
type PathKeyframe struct {
	Time            float64
	Path            BezierPath
	InterpolationFn ease.TweenFunc // nil means linear
}

// AnimPath is an animatable vector path: either a single static [BezierPath]
// or a sequence of [PathKeyframe]s. All keyframes on a keyframed AnimPath
// must share the same vertex count and closed flag — this is enforced at
// construction, not at sample time, since a mismatch is a compile-time
// authoring error.
type AnimPath struct {
	isStatic  bool
	static    BezierPath
	keyframes []PathKeyframe
}

// NewStaticAnimPath wraps a single unchanging path.
func NewStaticAnimPath(p BezierPath) AnimPath {
	return AnimPath{isStatic: true, static: p}
}

// NewKeyframedAnimPath builds an animated path. Keyframe times must be
// strictly increasing and every keyframe must share the first keyframe's
// vertex count and closed flag.
func NewKeyframedAnimPath(keyframes []PathKeyframe) (AnimPath, error) {
	if len(keyframes) == 0 {
		return AnimPath{}, &CompileError{Code: ErrInvalidKeyframe, Message: "animated path has no keyframes"}
	}
	n := len(keyframes[0].Path.Vertices)
	closed := keyframes[0].Path.Closed
	for i, kf := range keyframes {
		if i > 0 && kf.Time <= keyframes[i-1].Time {
			return AnimPath{}, &CompileError{Code: ErrInvalidKeyframe, Message: "path keyframe times must be strictly increasing"}
		}
		if len(kf.Path.Vertices) != n || kf.Path.Closed != closed {
			return AnimPath{}, &CompileError{
				Code:    ErrInvalidKeyframe,
				Message: fmt.Sprintf("path keyframe %d has mismatched vertex count or closed flag", i),
			}
		}
	}
	return AnimPath{keyframes: keyframes}, nil
}

// Sample evaluates the path at frame, clamping outside the keyframe range
// and linearly (or eased) interpolating vertices and tangents within it.
func (p AnimPath) Sample(frame float64) BezierPath {
	if p.isStatic {
		return p.static
	}
	kfs := p.keyframes
	if len(kfs) == 1 {
		return kfs[0].Path
	}
	last := len(kfs) - 1
	if frame <= kfs[0].Time {
		return kfs[0].Path
	}
	if frame >= kfs[last].Time {
		return kfs[last].Path
	}
	i := 0
	for i < last && kfs[i+1].Time <= frame {
		i++
	}
	a, b := kfs[i], kfs[i+1]
	span := b.Time - a.Time
	if span <= 0 {
		return a.Path
	}
	frac := (frame - a.Time) / span
	if a.InterpolationFn != nil {
		frac = float64(a.InterpolationFn(float32(frame-a.Time), 0, 1, float32(span)))
	}
	return lerpBezierPath(a.Path, b.Path, frac)
}

// lerpBezierPath linearly interpolates vertices and tangents between two
// paths with identical vertex count and closed flag.
func lerpBezierPath(a, b BezierPath, t float64) BezierPath {
	verts := make([]Vertex, len(a.Vertices))
	for i := range verts {
		va, vb := a.Vertices[i], b.Vertices[i]
		verts[i] = Vertex{
			Point:      blendVec2D(va.Point, vb.Point, t),
			InTangent:  blendVec2D(va.InTangent, vb.InTangent, t),
			OutTangent: blendVec2D(va.OutTangent, vb.OutTangent, t),
		}
	}
	return BezierPath{Vertices: verts, Closed: a.Closed}
}
