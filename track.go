package animir

import (
	"github.com/tanema/gween/ease"
)

// Keyframe is one control point of an [AnimTrack]: a time (in frames) and a
// start value. Every keyframe on an animated track must carry both Time and
// Start — a keyframe missing either is an [ErrInvalidKeyframe] at compile
// time, never silently defaulted.
type Keyframe[T any] struct {
	Time   float64
	Start  T
	Easing ease.TweenFunc // nil means linear
}

// blendFunc interpolates between a and b at fraction t in [0, 1].
type blendFunc[T any] func(a, b T, t float64) T

// AnimTrack is a property track that is either a single static value or a
// sequence of keyframes sampled over frame time. The zero value is not
// usable; construct with [NewStaticTrack] or [NewKeyframedTrack].
type AnimTrack[T any] struct {
	isStatic  bool
	value     T
	keyframes []Keyframe[T]
	blend     blendFunc[T]
}

// NewStaticTrack builds a track holding a single unchanging value.
func NewStaticTrack[T any](v T) AnimTrack[T] {
	return AnimTrack[T]{isStatic: true, value: v}
}

// NewKeyframedTrack builds an animated track. Keyframe times must be
// strictly increasing; violating that, or a track with fewer than one
// keyframe, returns [ErrInvalidKeyframe].
func NewKeyframedTrack[T any](keyframes []Keyframe[T], blend blendFunc[T]) (AnimTrack[T], error) {
	if len(keyframes) == 0 {
		return AnimTrack[T]{}, &CompileError{Code: ErrInvalidKeyframe, Message: "animated track has no keyframes"}
	}
	for i := 1; i < len(keyframes); i++ {
		if keyframes[i].Time <= keyframes[i-1].Time {
			return AnimTrack[T]{}, &CompileError{
				Code:    ErrInvalidKeyframe,
				Message: "keyframe times must be strictly increasing",
			}
		}
	}
	return AnimTrack[T]{keyframes: keyframes, blend: blend}, nil
}

// IsStatic reports whether the track holds a single unchanging value.
func (t AnimTrack[T]) IsStatic() bool {
	return t.isStatic
}

// Sample evaluates the track at frame, clamping outside the keyframe range
// and linearly (or eased, per keyframe) interpolating within it.
func (t AnimTrack[T]) Sample(frame float64) T {
	if t.isStatic || len(t.keyframes) == 1 {
		if t.isStatic {
			return t.value
		}
		return t.keyframes[0].Start
	}
	kfs := t.keyframes
	if frame <= kfs[0].Time {
		return kfs[0].Start
	}
	last := len(kfs) - 1
	if frame >= kfs[last].Time {
		return kfs[last].Start
	}
	// Find the bracketing segment [i, i+1).
	i := 0
	for i < last && kfs[i+1].Time <= frame {
		i++
	}
	a, b := kfs[i], kfs[i+1]
	span := b.Time - a.Time
	if span <= 0 {
		return a.Start
	}
	frac := (frame - a.Time) / span
	if a.Easing != nil {
		frac = float64(a.Easing(float32(frame-a.Time), 0, 1, float32(span)))
	}
	return t.blend(a.Start, b.Start, frac)
}

// --- Standard blend funcs ---

func blendFloat64(a, b float64, t float64) float64 {
	return lerp(a, b, t)
}

func blendVec2D(a, b Vec2D, t float64) Vec2D {
	return Vec2D{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}

func blendSizeD(a, b SizeD, t float64) SizeD {
	return SizeD{W: lerp(a.W, b.W, t), H: lerp(a.H, b.H, t)}
}

func blendColor(a, b Color, t float64) Color {
	return Color{R: lerp(a.R, b.R, t), G: lerp(a.G, b.G, t), B: lerp(a.B, b.B, t)}
}

// NewFloatTrack builds a static or keyframed float64 track.
func NewFloatTrack(static *float64, keyframes []Keyframe[float64]) (AnimTrack[float64], error) {
	if static != nil {
		return NewStaticTrack(*static), nil
	}
	return NewKeyframedTrack(keyframes, blendFloat64)
}

// NewVec2Track builds a static or keyframed [Vec2D] track.
func NewVec2Track(static *Vec2D, keyframes []Keyframe[Vec2D]) (AnimTrack[Vec2D], error) {
	if static != nil {
		return NewStaticTrack(*static), nil
	}
	return NewKeyframedTrack(keyframes, blendVec2D)
}
