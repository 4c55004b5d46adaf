package animir

import (
	"fmt"
	"math"
)

// FillPaint is a shape's fill: a static color and opacity. Like
// [StrokeStyle], animated fill color is not supported — only the first
// sampled value is kept.
type FillPaint struct {
	Color   Color
	Opacity float64
}

// ShapePrimitive is one paintable piece of geometry within a shape group: a
// path plus the paint(s) that apply to it. A primitive with both Fill and
// Stroke nil contributes geometry only (used for matte/clip-only shapes).
type ShapePrimitive struct {
	Path   AnimPath
	Fill   *FillPaint
	Stroke *StrokeStyle
}

// ShapeGroup is one "gr" node of a shape layer's content tree: its own
// transform, any directly-owned primitives, and nested child groups. This
// compiler supports one fill and one stroke per group, each applying to
// every path primitive declared in that group — the common case for
// Lottie documents produced by design tools, and sufficient for the
// shape-group/transform/matte/mask semantics this IR targets.
type ShapeGroup struct {
	Transform  GroupTransform
	Primitives []ShapePrimitive
	Children   []ShapeGroup
}

// extractShapeGroups walks a layer's top-level shapes[] array (an implicit
// unnamed root group, given the identity transform) into a single-element
// []ShapeGroup slice so no top-level geometry is dropped.
func extractShapeGroups(items []lottieShapeItem, jsonPath string) ([]ShapeGroup, error) {
	root, err := extractOneGroup(items, IdentityGroupTransform(), jsonPath)
	if err != nil {
		return nil, err
	}
	return []ShapeGroup{root}, nil
}

// extractOneGroup extracts the geometry, paint, and nested groups declared
// directly inside one shape item list, applying transform to the returned
// group (or identity if this list has no "tr" — e.g. the synthetic root).
func extractOneGroup(items []lottieShapeItem, transform GroupTransform, jsonPath string) (ShapeGroup, error) {
	g := ShapeGroup{Transform: transform}
	var paths []AnimPath
	var fill *FillPaint
	var stroke *StrokeStyle

	for i, item := range items {
		itemPath := fmt.Sprintf("%s.it[%d]", jsonPath, i)
		switch item.Type {
		case "gr":
			childTransform := IdentityGroupTransform()
			for _, sub := range item.Items {
				if sub.Type == "tr" {
					t, err := extractTransform(transformFromShapeItem(sub), itemPath+".tr")
					if err != nil {
						return ShapeGroup{}, err
					}
					childTransform = t
				}
			}
			child, err := extractOneGroup(item.Items, childTransform, itemPath)
			if err != nil {
				return ShapeGroup{}, err
			}
			g.Children = append(g.Children, child)

		case "sh":
			p, err := extractBezierPath(item, itemPath)
			if err != nil {
				return ShapeGroup{}, err
			}
			paths = append(paths, p)

		case "rc":
			p, err := extractRectanglePath(item, itemPath)
			if err != nil {
				return ShapeGroup{}, err
			}
			paths = append(paths, p)

		case "el":
			p, err := extractEllipsePath(item, itemPath)
			if err != nil {
				return ShapeGroup{}, err
			}
			paths = append(paths, p)

		case "sr":
			p, err := extractPolystarPath(item, itemPath)
			if err != nil {
				return ShapeGroup{}, err
			}
			paths = append(paths, p)

		case "fl":
			color, err := parseColor(item.FillColor, itemPath+".c")
			if err != nil {
				return ShapeGroup{}, err
			}
			opacity := 1.0
			if item.FillOpacity != nil {
				t, err := parseFloatTrack(item.FillOpacity, itemPath+".o")
				if err != nil {
					return ShapeGroup{}, err
				}
				opacity = t.Sample(0) / 100
			}
			fill = &FillPaint{Color: color, Opacity: clamp01(opacity)}

		case "st":
			s, err := extractStroke(item, itemPath)
			if err != nil {
				return ShapeGroup{}, err
			}
			stroke = &s

		case "tr", "mm", "rp", "tm":
			// tr is consumed by the parent "gr" case above; merge modes,
			// repeaters, and trim-path are outside this spec's subset.
		default:
			return ShapeGroup{}, newCompileError(ErrUnsupportedShapeFeature, itemPath, "unsupported shape item type %q", item.Type)
		}
	}

	for _, p := range paths {
		g.Primitives = append(g.Primitives, ShapePrimitive{Path: p, Fill: fill, Stroke: stroke})
	}
	return g, nil
}

// extractTransform converts a lottieTransform block into a [GroupTransform].
func extractTransform(raw lottieTransform, jsonPath string) (GroupTransform, error) {
	t := IdentityGroupTransform()
	var err error
	if raw.Position != nil {
		if t.Position, err = parseVec2Track(raw.Position, jsonPath+".p"); err != nil {
			return GroupTransform{}, err
		}
	}
	if raw.Anchor != nil {
		if t.Anchor, err = parseVec2Track(raw.Anchor, jsonPath+".a"); err != nil {
			return GroupTransform{}, err
		}
	}
	if raw.Scale != nil {
		st, err2 := parseVec2Track(raw.Scale, jsonPath+".s")
		if err2 != nil {
			return GroupTransform{}, err2
		}
		t.Scale = scaleTrackFromPercent(st)
	}
	if raw.Rotation != nil {
		if t.Rotation, err = parseFloatTrack(raw.Rotation, jsonPath+".r"); err != nil {
			return GroupTransform{}, err
		}
	}
	if raw.Opacity != nil {
		opT, err2 := parseFloatTrack(raw.Opacity, jsonPath+".o")
		if err2 != nil {
			return GroupTransform{}, err2
		}
		t.Opacity = opacityTrackFromPercent(opT)
	}
	return t, nil
}

// scaleTrackFromPercent rewrites a raw Lottie scale track (percent, 100 ==
// 1.0) into a fraction track by sampling and rebuilding — acceptable here
// because scale tracks are small (design-tool authored, rarely more than a
// handful of keyframes).
func scaleTrackFromPercent(raw AnimTrack[Vec2D]) AnimTrack[Vec2D] {
	if raw.IsStatic() {
		v := raw.Sample(0)
		return NewStaticTrack(Vec2D{X: v.X / 100, Y: v.Y / 100})
	}
	kfs := make([]Keyframe[Vec2D], len(raw.keyframes))
	for i, kf := range raw.keyframes {
		kfs[i] = Keyframe[Vec2D]{
			Time:   kf.Time,
			Start:  Vec2D{X: kf.Start.X / 100, Y: kf.Start.Y / 100},
			Easing: kf.Easing,
		}
	}
	out, _ := NewKeyframedTrack(kfs, blendVec2D)
	return out
}

// opacityTrackFromPercent rewrites a raw Lottie opacity track (percent, 100
// == 1.0) into a 0..1 fraction track.
func opacityTrackFromPercent(raw AnimTrack[float64]) AnimTrack[float64] {
	if raw.IsStatic() {
		return NewStaticTrack(clamp01(raw.Sample(0) / 100))
	}
	kfs := make([]Keyframe[float64], len(raw.keyframes))
	for i, kf := range raw.keyframes {
		kfs[i] = Keyframe[float64]{Time: kf.Time, Start: clamp01(kf.Start / 100), Easing: kf.Easing}
	}
	out, _ := NewKeyframedTrack(kfs, blendFloat64)
	return out
}

// extractBezierPath converts a "sh" item's vertex property into an AnimPath.
// Only the static case is modeled in full generality for animated vertex
// arrays of varying topology: every keyframe on an animated path must share
// vertex count and closed flag, so a document violating that is a
// compile-time [ErrInvalidKeyframe], not a best-effort resample.
func extractBezierPath(item lottieShapeItem, jsonPath string) (AnimPath, error) {
	if item.Vertices == nil {
		return AnimPath{}, newCompileError(ErrInvalidKeyframe, jsonPath, "bezier shape missing vertex property (ks)")
	}
	if !item.Vertices.isAnimated() {
		var v lottieVertexData
		if err := unmarshalRaw(item.Vertices.RawK, &v); err != nil {
			return AnimPath{}, newCompileError(ErrInvalidKeyframe, jsonPath+".ks", "static vertex data malformed: %v", err)
		}
		return NewStaticAnimPath(v.toBezierPath()), nil
	}
	var raw []lottieVertexKeyframe
	if err := unmarshalRaw(item.Vertices.RawK, &raw); err != nil {
		return AnimPath{}, newCompileError(ErrInvalidKeyframe, jsonPath+".ks", "animated vertex keyframes malformed: %v", err)
	}
	kfs := make([]PathKeyframe, 0, len(raw))
	for i, rk := range raw {
		if rk.Time == nil || len(rk.Start) == 0 {
			return AnimPath{}, newCompileError(ErrInvalidKeyframe, fmt.Sprintf("%s.ks.k[%d]", jsonPath, i), "keyframe missing time or start value")
		}
		kfs = append(kfs, PathKeyframe{
			Time:            *rk.Time,
			Path:            rk.Start[0].toBezierPath(),
			InterpolationFn: parseEasingRaw(rk.InX, rk.OutX),
		})
	}
	return NewKeyframedAnimPath(kfs)
}

// extractRectanglePath converts an "rc" item into a static axis-aligned
// rounded-rect AnimPath. Animated rectangles are sampled at frame 0 only —
// position/size animation on primitive shapes is uncommon in authored
// content and out of this compiler's supported subset.
func extractRectanglePath(item lottieShapeItem, jsonPath string) (AnimPath, error) {
	pos, size, round, err := samplePrimitiveGeometry(item, jsonPath)
	if err != nil {
		return AnimPath{}, err
	}
	hw, hh := size.X/2, size.Y/2
	r := math.Min(round, math.Min(hw, hh))
	return NewStaticAnimPath(roundedRectPath(pos, hw, hh, r)), nil
}

// extractEllipsePath converts an "el" item into a static ellipse AnimPath
// approximated with 4 cubic bezier vertices (the standard kappa
// approximation).
func extractEllipsePath(item lottieShapeItem, jsonPath string) (AnimPath, error) {
	pos, size, _, err := samplePrimitiveGeometry(item, jsonPath)
	if err != nil {
		return AnimPath{}, err
	}
	return NewStaticAnimPath(ellipsePath(pos, size.X/2, size.Y/2)), nil
}

const kappa = 0.5522847498307936

func ellipsePath(center Vec2D, rx, ry float64) BezierPath {
	ox, oy := rx*kappa, ry*kappa
	verts := []Vertex{
		{Point: Vec2D{X: center.X, Y: center.Y - ry}, InTangent: Vec2D{X: -ox, Y: 0}, OutTangent: Vec2D{X: ox, Y: 0}},
		{Point: Vec2D{X: center.X + rx, Y: center.Y}, InTangent: Vec2D{X: 0, Y: -oy}, OutTangent: Vec2D{X: 0, Y: oy}},
		{Point: Vec2D{X: center.X, Y: center.Y + ry}, InTangent: Vec2D{X: ox, Y: 0}, OutTangent: Vec2D{X: -ox, Y: 0}},
		{Point: Vec2D{X: center.X - rx, Y: center.Y}, InTangent: Vec2D{X: 0, Y: oy}, OutTangent: Vec2D{X: 0, Y: -oy}},
	}
	return NewBezierPath(verts, true)
}

func roundedRectPath(center Vec2D, hw, hh, r float64) BezierPath {
	if r <= 0 {
		verts := []Vertex{
			{Point: Vec2D{X: center.X - hw, Y: center.Y - hh}},
			{Point: Vec2D{X: center.X + hw, Y: center.Y - hh}},
			{Point: Vec2D{X: center.X + hw, Y: center.Y + hh}},
			{Point: Vec2D{X: center.X - hw, Y: center.Y + hh}},
		}
		return NewBezierPath(verts, true)
	}
	ox := r * kappa
	left, right := center.X-hw, center.X+hw
	top, bottom := center.Y-hh, center.Y+hh
	verts := []Vertex{
		{Point: Vec2D{X: left + r, Y: top}, InTangent: Vec2D{X: -ox, Y: 0}},
		{Point: Vec2D{X: right - r, Y: top}, OutTangent: Vec2D{X: ox, Y: 0}},
		{Point: Vec2D{X: right, Y: top + r}, InTangent: Vec2D{X: 0, Y: -ox}},
		{Point: Vec2D{X: right, Y: bottom - r}, OutTangent: Vec2D{X: 0, Y: ox}},
		{Point: Vec2D{X: right - r, Y: bottom}, InTangent: Vec2D{X: ox, Y: 0}},
		{Point: Vec2D{X: left + r, Y: bottom}, OutTangent: Vec2D{X: -ox, Y: 0}},
		{Point: Vec2D{X: left, Y: bottom - r}, InTangent: Vec2D{X: 0, Y: ox}},
		{Point: Vec2D{X: left, Y: top + r}, OutTangent: Vec2D{X: 0, Y: -ox}},
	}
	return NewBezierPath(verts, true)
}

// extractPolystarPath converts an "sr" item (star or polygon) into a static
// path. Animated point count is rejected — changing vertex count mid-shape
// has no well-defined interpolation and this spec requires every keyframe
// on a path to share a vertex count.
func extractPolystarPath(item lottieShapeItem, jsonPath string) (AnimPath, error) {
	if item.Points != nil && item.Points.isAnimated() {
		return AnimPath{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath+".pt", "animated polystar point count is not supported")
	}
	pos, err := sampleVec2(item.Position, jsonPath+".p", Vec2D{})
	if err != nil {
		return AnimPath{}, err
	}
	points, err := sampleScalar(item.Points, jsonPath+".pt", 5)
	if err != nil {
		return AnimPath{}, err
	}
	outerR, err := sampleScalar(item.OuterRad, jsonPath+".or", 100)
	if err != nil {
		return AnimPath{}, err
	}
	isStar := item.PolyType == 1
	innerR := outerR / 2
	if isStar {
		innerR, err = sampleScalar(item.InnerRad, jsonPath+".ir", outerR/2)
		if err != nil {
			return AnimPath{}, err
		}
	}
	rot, err := sampleScalar(item.StarRot, jsonPath+".rt", 0)
	if err != nil {
		return AnimPath{}, err
	}

	n := int(points + 0.5)
	if n < 3 {
		return AnimPath{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath+".pt", "polystar point count %d below minimum of 3", n)
	}
	vertCount := n
	if isStar {
		vertCount = n * 2
	}
	verts := make([]Vertex, 0, vertCount)
	angleStep := 2 * math.Pi / float64(vertCount)
	start := (rot - 90) * math.Pi / 180
	for i := 0; i < vertCount; i++ {
		radius := outerR
		if isStar && i%2 == 1 {
			radius = innerR
		}
		angle := start + float64(i)*angleStep
		verts = append(verts, Vertex{Point: Vec2D{
			X: pos.X + radius*math.Cos(angle),
			Y: pos.Y + radius*math.Sin(angle),
		}})
	}
	return NewStaticAnimPath(NewBezierPath(verts, true)), nil
}

// samplePrimitiveGeometry samples a rc/el item's position/size/roundness at
// frame 0.
func samplePrimitiveGeometry(item lottieShapeItem, jsonPath string) (pos, size Vec2D, roundness float64, err error) {
	pos, err = sampleVec2(item.Position, jsonPath+".p", Vec2D{})
	if err != nil {
		return
	}
	size, err = sampleVec2(item.Size, jsonPath+".s", Vec2D{X: 100, Y: 100})
	if err != nil {
		return
	}
	roundness, err = sampleScalar(item.Roundness, jsonPath+".r", 0)
	return
}

func sampleVec2(p *lottieProp, jsonPath string, fallback Vec2D) (Vec2D, error) {
	if p == nil {
		return fallback, nil
	}
	t, err := parseVec2Track(p, jsonPath)
	if err != nil {
		return Vec2D{}, err
	}
	return t.Sample(0), nil
}

func sampleScalar(p *lottieProp, jsonPath string, fallback float64) (float64, error) {
	if p == nil {
		return fallback, nil
	}
	t, err := parseFloatTrack(p, jsonPath)
	if err != nil {
		return 0, err
	}
	return t.Sample(0), nil
}

// extractStroke builds a [StrokeStyle] from a "st" shape item.
func extractStroke(item lottieShapeItem, jsonPath string) (StrokeStyle, error) {
	color, err := parseColor(item.StrokeColor, jsonPath+".sc")
	if err != nil {
		return StrokeStyle{}, err
	}
	opacity := 1.0
	if item.StrokeOpacity != nil {
		t, err := parseFloatTrack(item.StrokeOpacity, jsonPath+".so")
		if err != nil {
			return StrokeStyle{}, err
		}
		opacity = t.Sample(0) / 100
	}
	width, err := parseFloatTrack(item.StrokeWidth, jsonPath+".sw")
	if err != nil {
		return StrokeStyle{}, err
	}
	return newStrokeStyle(color, opacity, width, LineCap(item.LineCap), LineJoin(item.LineJoin), item.MiterLimit, item.HasDashes, jsonPath)
}
