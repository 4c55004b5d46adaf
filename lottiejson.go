package animir

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// This file decodes the Lottie-shaped JSON document into small private
// staging structs, then converts those into domain types: decode into a
// jsonX-shaped struct first, build the real type second.

// lottieDoc is the top-level document: v, fr, ip, op, w, h, assets[],
// layers[], markers[].
type lottieDoc struct {
	Version   string          `json:"v"`
	FrameRate float64         `json:"fr"`
	InPoint   float64         `json:"ip"`
	OutPoint  float64         `json:"op"`
	Width     float64         `json:"w"`
	Height    float64         `json:"h"`
	Assets    []lottieAsset   `json:"assets"`
	Layers    []lottieLayer   `json:"layers"`
	Markers   json.RawMessage `json:"markers"`
}

// lottieAsset covers both image and precomp asset shapes; only the fields
// relevant to one or the other are populated per kind.
type lottieAsset struct {
	ID     string        `json:"id"`
	Width  float64       `json:"w"`
	Height float64       `json:"h"`
	U      string        `json:"u"`
	P      string        `json:"p"`
	E      int           `json:"e"`
	Name   string        `json:"nm"`
	FR     float64       `json:"fr"`
	Layers []lottieLayer `json:"layers"`
}

func (a lottieAsset) isPrecomp() bool { return a.Layers != nil }

// lottieLayer is one layer entry: ind, ty, nm, refId, ks, hasMask,
// masksProperties[], ip, op, st, parent, hd, td, tt, tp, shapes[], w, h.
type lottieLayer struct {
	Index           int               `json:"ind"`
	Type            int               `json:"ty"`
	Name            string            `json:"nm"`
	RefID           string            `json:"refId"`
	Transform       lottieTransform   `json:"ks"`
	HasMask         bool              `json:"hasMask"`
	MasksProperties []lottieMask      `json:"masksProperties"`
	InPoint         float64           `json:"ip"`
	OutPoint        float64           `json:"op"`
	StartTime       float64           `json:"st"`
	Parent          *int              `json:"parent"`
	Hidden          bool              `json:"hd"`
	TrackMatteOf    int               `json:"td"`
	TrackMatteType  int               `json:"tt"`
	MatteTarget     *int              `json:"tp"`
	Shapes          []lottieShapeItem `json:"shapes"`
	Width           float64           `json:"w"`
	Height          float64           `json:"h"`
}

// lottieTransform is a layer or group transform block (ks): o, r, p, a, s.
// rx/ry/sk/sa are not decoded; encoding/json ignores them, so documents
// carrying them still parse.
type lottieTransform struct {
	Opacity  *lottieProp `json:"o"`
	Rotation *lottieProp `json:"r"`
	Position *lottieProp `json:"p"`
	Anchor   *lottieProp `json:"a"`
	Scale    *lottieProp `json:"s"`
}

// lottieMask is one entry of masksProperties: mode, inverted, path, opacity.
type lottieMask struct {
	Mode     string      `json:"mode"`
	Inverted bool        `json:"inv"`
	Path     *lottieProp `json:"pt"`
	Opacity  *lottieProp `json:"o"`
}

// lottieShapeItem is one entry of a shape tree: gr, sh, fl, st, tr, rc, el,
// sr, tm, mm, rp, d. Only the fields relevant to supported item types are
// populated. The extractor skips tm, mm and rp items and rejects any other
// unsupported type with a compile error, as it does a forbidden feature of a
// supported one (dash on a stroke, animated polystar point count, etc.).
type lottieShapeItem struct {
	Type string `json:"ty"`

	// gr (group)
	Items []lottieShapeItem `json:"it"`

	// sh (bezier path)
	Vertices *lottieProp `json:"ks"`

	// fl (fill)
	FillColor   *lottieProp `json:"c"`
	FillOpacity *lottieProp `json:"o"`

	// st (stroke)
	StrokeColor   *lottieProp `json:"sc"`
	StrokeOpacity *lottieProp `json:"so"`
	StrokeWidth   *lottieProp `json:"sw"`
	LineCap       int         `json:"lc"`
	LineJoin      int         `json:"lj"`
	MiterLimit    float64     `json:"ml"`
	HasDashes     bool        `json:"-"`

	// rc (rectangle) / el (ellipse) / tr (transform) share Position/Size/
	// Roundness — a "tr" item reinterprets Size as scale and Roundness as
	// rotation (see transformFromShapeItem), since both are a single
	// animatable property in the same {a,k} shape regardless of name.
	Position  *lottieProp `json:"p"`
	Anchor    *lottieProp `json:"a"`
	Size      *lottieProp `json:"s"`
	Roundness *lottieProp `json:"r"`
	Direction int         `json:"-"`

	// sr (polystar)
	PolyType   float64     `json:"sy"` // 1 = star, 2 = polygon
	Points     *lottieProp `json:"pt"`
	InnerRad   *lottieProp `json:"ir"`
	OuterRad   *lottieProp `json:"or"`
	InnerRound *lottieProp `json:"is"`
	OuterRound *lottieProp `json:"os"`
	StarRot    *lottieProp `json:"rt"`
}

// UnmarshalJSON handles the "d" field overload: on "st" it is a dash array,
// on "rc"/"el"/"sr" it is a direction integer. The two are distinguished by
// sniffing the raw value's JSON type rather than the item's "ty", since "d"
// decodes before "ty" is known to the generic json package.
func (s *lottieShapeItem) UnmarshalJSON(data []byte) error {
	type alias lottieShapeItem
	var probe struct {
		alias
		RawD json.RawMessage `json:"d"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	*s = lottieShapeItem(probe.alias)
	if len(probe.RawD) > 0 {
		var dir int
		if err := json.Unmarshal(probe.RawD, &dir); err == nil {
			s.Direction = dir
		} else {
			s.HasDashes = true
		}
	}
	return nil
}

// transformFromShapeItem builds a [lottieTransform] from a "tr"-type shape
// item's fields, which share the same {p, a, s, r, o} property shapes as a
// layer-level "ks" block but flattened onto lottieShapeItem to avoid a
// second nearly-identical struct.
func transformFromShapeItem(item lottieShapeItem) lottieTransform {
	return lottieTransform{
		Position: item.Position,
		Anchor:   item.Anchor,
		Scale:    item.Size,
		Rotation: item.Roundness,
		Opacity:  item.FillOpacity,
	}
}

// lottieProp is an animatable property value: either static ("a" absent or
// 0, "k" holds the raw value) or animated ("a":1, "k" holds a keyframe
// array). Decoding is deferred (RawK) because the shape (scalar vs vector)
// depends on the call site.
type lottieProp struct {
	Animated int             `json:"a"`
	RawK     json.RawMessage `json:"k"`
}

func (p *lottieProp) isAnimated() bool {
	return p != nil && p.Animated != 0
}

// lottieKeyframe is one entry of an animated property's "k" array.
type lottieKeyframe struct {
	Time  *float64          `json:"t"`
	Start []float64         `json:"s"`
	InX   json.RawMessage   `json:"i"`
	OutX  json.RawMessage   `json:"o"`
}

// easingHandle is the {x, y} cubic-bezier control point Lottie stores for
// "i" (incoming) and "o" (outgoing) easing. x/y may each be a scalar or a
// per-dimension array; this spec only needs the first component.
type easingHandle struct {
	X firstFloat `json:"x"`
	Y firstFloat `json:"y"`
}

// firstFloat decodes either a bare number or a single-element/array of
// numbers, taking the first value — Lottie overloads easing handles this way
// for multi-dimensional properties.
type firstFloat float64

func (f *firstFloat) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		*f = firstFloat(scalar)
		return nil
	}
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("animir: easing handle is neither scalar nor array: %w", err)
	}
	if len(arr) == 0 {
		return fmt.Errorf("animir: easing handle array is empty")
	}
	*f = firstFloat(arr[0])
	return nil
}

// parseFloatTrack converts an animatable scalar property into an
// AnimTrack[float64]. jsonPath is used only for error messages.
func parseFloatTrack(p *lottieProp, jsonPath string) (AnimTrack[float64], error) {
	if p == nil {
		return AnimTrack[float64]{}, newCompileError(ErrInvalidKeyframe, jsonPath, "missing property")
	}
	if !p.isAnimated() {
		var v []float64
		if err := json.Unmarshal(p.RawK, &v); err != nil {
			var scalar float64
			if err2 := json.Unmarshal(p.RawK, &scalar); err2 != nil {
				return AnimTrack[float64]{}, newCompileError(ErrInvalidKeyframe, jsonPath, "static scalar value is not numeric")
			}
			return NewStaticTrack(scalar), nil
		}
		if len(v) == 0 {
			return AnimTrack[float64]{}, newCompileError(ErrInvalidKeyframe, jsonPath, "static scalar value is empty")
		}
		return NewStaticTrack(v[0]), nil
	}
	var raw []lottieKeyframe
	if err := json.Unmarshal(p.RawK, &raw); err != nil {
		return AnimTrack[float64]{}, newCompileError(ErrInvalidKeyframe, jsonPath, "animated keyframe array malformed: %v", err)
	}
	kfs := make([]Keyframe[float64], 0, len(raw))
	for i, rk := range raw {
		kf, err := toFloatKeyframe(rk, fmt.Sprintf("%s.k[%d]", jsonPath, i))
		if err != nil {
			return AnimTrack[float64]{}, err
		}
		kfs = append(kfs, kf)
	}
	return NewKeyframedTrack(kfs, blendFloat64)
}

func toFloatKeyframe(rk lottieKeyframe, path string) (Keyframe[float64], error) {
	if rk.Time == nil {
		return Keyframe[float64]{}, newCompileError(ErrInvalidKeyframe, path, "keyframe missing time (t)")
	}
	if len(rk.Start) == 0 {
		return Keyframe[float64]{}, newCompileError(ErrInvalidKeyframe, path, "keyframe missing start value (s)")
	}
	return Keyframe[float64]{Time: *rk.Time, Start: rk.Start[0], Easing: parseEasing(rk)}, nil
}

// parseVec2Track converts an animatable 2-D property (position, anchor,
// scale, size) into an AnimTrack[Vec2D]. Scale is stored as percentage
// (Lottie convention, e.g. 100 = 1.0); callers normalize.
func parseVec2Track(p *lottieProp, jsonPath string) (AnimTrack[Vec2D], error) {
	if p == nil {
		return AnimTrack[Vec2D]{}, newCompileError(ErrInvalidKeyframe, jsonPath, "missing property")
	}
	if !p.isAnimated() {
		var v []float64
		if err := json.Unmarshal(p.RawK, &v); err != nil || len(v) < 2 {
			return AnimTrack[Vec2D]{}, newCompileError(ErrInvalidKeyframe, jsonPath, "static vector value malformed")
		}
		return NewStaticTrack(Vec2D{X: v[0], Y: v[1]}), nil
	}
	var raw []lottieKeyframe
	if err := json.Unmarshal(p.RawK, &raw); err != nil {
		return AnimTrack[Vec2D]{}, newCompileError(ErrInvalidKeyframe, jsonPath, "animated keyframe array malformed: %v", err)
	}
	kfs := make([]Keyframe[Vec2D], 0, len(raw))
	for i, rk := range raw {
		if rk.Time == nil {
			return AnimTrack[Vec2D]{}, newCompileError(ErrInvalidKeyframe, fmt.Sprintf("%s.k[%d]", jsonPath, i), "keyframe missing time (t)")
		}
		if len(rk.Start) < 2 {
			return AnimTrack[Vec2D]{}, newCompileError(ErrInvalidKeyframe, fmt.Sprintf("%s.k[%d]", jsonPath, i), "keyframe missing start value (s)")
		}
		kfs = append(kfs, Keyframe[Vec2D]{
			Time:   *rk.Time,
			Start:  Vec2D{X: rk.Start[0], Y: rk.Start[1]},
			Easing: parseEasing(rk),
		})
	}
	return NewKeyframedTrack(kfs, blendVec2D)
}

// parseColor decodes a static RGB color property (fill/stroke color
// animation is unsupported; a color property is sampled at its first
// value).
func parseColor(p *lottieProp, jsonPath string) (Color, error) {
	if p == nil {
		return Color{}, newCompileError(ErrInvalidKeyframe, jsonPath, "missing color property")
	}
	var v []float64
	if p.isAnimated() {
		var raw []lottieKeyframe
		if err := json.Unmarshal(p.RawK, &raw); err != nil || len(raw) == 0 || len(raw[0].Start) < 3 {
			return Color{}, newCompileError(ErrInvalidKeyframe, jsonPath, "animated color malformed")
		}
		v = raw[0].Start
	} else if err := json.Unmarshal(p.RawK, &v); err != nil || len(v) < 3 {
		return Color{}, newCompileError(ErrInvalidKeyframe, jsonPath, "static color malformed")
	}
	return Color{R: v[0], G: v[1], B: v[2]}, nil
}

// parseEasing builds a cubic-bezier easing function from a keyframe's i/o
// handles, or nil (linear) if absent/malformed.
func parseEasing(rk lottieKeyframe) ease.TweenFunc {
	if len(rk.InX) == 0 || len(rk.OutX) == 0 {
		return nil
	}
	var in, out easingHandle
	if err := json.Unmarshal(rk.InX, &in); err != nil {
		return nil
	}
	if err := json.Unmarshal(rk.OutX, &out); err != nil {
		return nil
	}
	return cubicBezierEase(float64(out.X), float64(out.Y), float64(in.X), float64(in.Y))
}

// parseEasingRaw is parseEasing's counterpart for vertex keyframes, whose
// i/o handles are decoded separately from the enclosing keyframe struct.
func parseEasingRaw(inX, outX json.RawMessage) ease.TweenFunc {
	if len(inX) == 0 || len(outX) == 0 {
		return nil
	}
	var in, out easingHandle
	if err := json.Unmarshal(inX, &in); err != nil {
		return nil
	}
	if err := json.Unmarshal(outX, &out); err != nil {
		return nil
	}
	return cubicBezierEase(float64(out.X), float64(out.Y), float64(in.X), float64(in.Y))
}

// unmarshalRaw is a thin json.Unmarshal alias kept local so shape.go reads
// as "decode this raw chunk" without importing encoding/json itself.
func unmarshalRaw(data json.RawMessage, v any) error {
	return json.Unmarshal(data, v)
}

// lottieVertexData is a bezier shape's "ks" value (static or one keyframe's
// "s" entry): c (closed), v (vertex points), i (in-tangent offsets), o
// (out-tangent offsets) — all three point arrays the same length.
type lottieVertexData struct {
	Closed bool        `json:"c"`
	V      [][]float64 `json:"v"`
	I      [][]float64 `json:"i"`
	O      [][]float64 `json:"o"`
}

func (d lottieVertexData) toBezierPath() BezierPath {
	n := len(d.V)
	verts := make([]Vertex, n)
	for i := 0; i < n; i++ {
		verts[i] = Vertex{
			Point:      vecAt(d.V, i),
			InTangent:  vecAt(d.I, i),
			OutTangent: vecAt(d.O, i),
		}
	}
	return NewBezierPath(verts, d.Closed)
}

func vecAt(pts [][]float64, i int) Vec2D {
	if i >= len(pts) || len(pts[i]) < 2 {
		return Vec2D{}
	}
	return Vec2D{X: pts[i][0], Y: pts[i][1]}
}

// lottieVertexKeyframe is one entry of an animated bezier shape's "ks.k"
// array: t (time), s (a single-element array holding the vertex data at
// this keyframe), and i/o easing handles.
type lottieVertexKeyframe struct {
	Time  *float64            `json:"t"`
	Start []lottieVertexData  `json:"s"`
	InX   json.RawMessage     `json:"i"`
	OutX  json.RawMessage     `json:"o"`
}
