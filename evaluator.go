package animir

import "fmt"

// RenderCommands evaluates the animation at frame (absolute, in the root
// composition's own frame space) and returns its render-command stream.
// userTransform is applied on top of the binding layer's own sampled matrix
// only — it never affects any other layer. bindingLayerVisible gates
// whether the binding layer's content actually draws (a caller with no real
// user media bound passes false so only the clip/placeholder geometry is
// set up, nothing paints inside it). mode selects between a full Preview
// stream at frame and a canonical EditMode render: frame 0, restricted to
// the binding layer and its dependencies. Any non-fatal issues observed are
// retained and available via [AnimIR.LastRenderIssues];
// [AnimIR.RenderCommandsWithIssues] returns them directly instead.
func (a *AnimIR) RenderCommands(frame float64, userTransform Matrix2D, bindingLayerVisible bool, mode TemplateMode) []RenderCommand {
	cmds, issues := a.RenderCommandsWithIssues(frame, userTransform, bindingLayerVisible, mode)
	a.lastIssues = issues
	return cmds
}

// RenderCommandsWithIssues is [AnimIR.RenderCommands] without the shared
// lastIssues side effect.
func (a *AnimIR) RenderCommandsWithIssues(frame float64, userTransform Matrix2D, bindingLayerVisible bool, mode TemplateMode) ([]RenderCommand, []RenderIssue) {
	if mode == EditMode {
		frame = a.localFrameIndex(0)
	}
	e := &evalCtx{ir: a, userTransform: userTransform, bindingLayerVisible: bindingLayerVisible, mode: mode}
	if mode == EditMode && a.Binding != nil {
		e.editPath = findCompositionPath(a.Comps, a.Binding.CompID)
	}
	cmds := e.emitComposition(a.RootComp, frame, 1.0)
	Metrics().recordFrame(len(cmds), len(e.issues))
	return cmds, e.issues
}

// evalCtx carries per-call evaluation state: the compiled IR being sampled,
// the per-call binding parameters, accumulated non-fatal issues, the
// precomp stack used to detect precomp expansion cycles, and (in EditMode)
// the precomp-path leading from the root composition to the binding
// layer's own composition.
type evalCtx struct {
	ir                  *AnimIR
	userTransform       Matrix2D
	bindingLayerVisible bool
	mode                TemplateMode
	editPath            []CompositionID

	issues             []RenderIssue
	precompStack       []CompositionID
	bindingMasksWarned bool
}

func (e *evalCtx) addIssue(code IssueCode, message string, layerID LayerID, compID CompositionID) {
	e.issues = append(e.issues, RenderIssue{Code: code, Message: message, LayerID: layerID, CompID: compID})
}

// namespacedAssetID returns assetID namespaced under this animation's own
// AnimRef, matching the key [CompileAnim] registered it under in the shared
// [AssetIndex].
func (e *evalCtx) namespacedAssetID(assetID string) string {
	return namespacedAssetKey(e.ir.AnimRef, assetID)
}

// findCompositionPath walks precomp layers depth-first from the root
// composition and returns the first-found ordered chain of composition IDs
// from root to target (inclusive), or nil if target is unreachable from
// root. Used both to restrict EditMode rendering to the binding layer's
// ancestor chain and, via [AnimIR.resolveContainerContext], to compute an
// absolute matrix for the standalone hit-test API.
func findCompositionPath(comps map[CompositionID]Composition, target CompositionID) []CompositionID {
	return walkCompositionPath(comps, rootCompositionID, target, map[CompositionID]bool{})
}

func walkCompositionPath(comps map[CompositionID]Composition, from, target CompositionID, visited map[CompositionID]bool) []CompositionID {
	if from == target {
		return []CompositionID{from}
	}
	visited[from] = true
	comp := comps[from]
	for _, l := range comp.Layers {
		if l.Content.kind != LayerKindPrecomp {
			continue
		}
		childID := CompositionID(l.Content.compID)
		if visited[childID] {
			continue
		}
		if sub := walkCompositionPath(comps, childID, target, visited); sub != nil {
			return append([]CompositionID{from}, sub...)
		}
	}
	return nil
}

// editKeepSet reports, in EditMode, which layers of comp survive filtering:
// on the binding layer's own composition, only the binding layer itself; on
// an ancestor composition along the precomp path leading to it, only the
// precomp layer(s) that continue that path. Matte sources of a kept layer
// are not listed here — they are picked up automatically by the matte-pair
// handling in emitComposition, which looks them up regardless of keepSet.
func (e *evalCtx) editKeepSet(comp Composition) map[LayerID]bool {
	keep := map[LayerID]bool{}
	idx := -1
	for i, id := range e.editPath {
		if id == comp.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return keep
	}
	if comp.ID == e.ir.Binding.CompID {
		keep[e.ir.Binding.BoundLayerID] = true
		return keep
	}
	next := e.editPath[idx+1]
	for _, l := range comp.Layers {
		if l.Content.kind == LayerKindPrecomp && CompositionID(l.Content.compID) == next {
			keep[l.ID] = true
		}
	}
	return keep
}

// emitComposition emits one composition's layer stack, drawn bottom-to-top
// (array declaration order has index 0 as the topmost layer, so layers are
// visited from the end of the slice toward the start). In EditMode,
// purely-decorative layers not on the path to the binding layer are
// dropped entirely.
func (e *evalCtx) emitComposition(comp Composition, compFrame float64, precompOpacity float64) []RenderCommand {
	filtering := e.mode == EditMode && e.ir.Binding != nil
	var keep map[LayerID]bool
	if filtering {
		keep = e.editKeepSet(comp)
	}

	var cmds []RenderCommand
	cmds = append(cmds, beginGroup(string(comp.ID)))
	consumed := map[LayerID]bool{}

	for i := len(comp.Layers) - 1; i >= 0; i-- {
		l := comp.Layers[i]
		if consumed[l.ID] {
			continue
		}
		if l.IsMatteSource {
			// Drawn only as part of its consumer's matte scope, below.
			continue
		}
		if filtering && !keep[l.ID] {
			continue
		}

		isBinding := e.ir.Binding != nil && comp.ID == e.ir.Binding.CompID && l.ID == e.ir.Binding.BoundLayerID

		if l.Matte != nil {
			source, ok := comp.layerByID(l.Matte.SourceLayerID)
			if !ok {
				continue
			}
			cmds = append(cmds, beginMatte(l.Matte.Mode))
			cmds = append(cmds, beginGroup("matteSource"))
			cmds = append(cmds, e.emitLayer(source, comp, compFrame, precompOpacity)...)
			cmds = append(cmds, endGroup())
			cmds = append(cmds, beginGroup("matteConsumer"))
			if isBinding {
				cmds = append(cmds, e.emitBindingLayer(l, comp, compFrame, precompOpacity)...)
			} else {
				cmds = append(cmds, e.emitLayer(l, comp, compFrame, precompOpacity)...)
			}
			cmds = append(cmds, endGroup())
			cmds = append(cmds, endMatte())
			consumed[source.ID] = true
			continue
		}

		if isBinding {
			cmds = append(cmds, e.emitBindingLayer(l, comp, compFrame, precompOpacity)...)
			continue
		}
		cmds = append(cmds, e.emitLayer(l, comp, compFrame, precompOpacity)...)
	}

	cmds = append(cmds, endGroup())
	return cmds
}

// emitLayer emits one layer's contribution: visibility check, local
// transform, masks, then its content (shape primitives, image, or expanded
// precomp).
func (e *evalCtx) emitLayer(l Layer, comp Composition, compFrame float64, precompOpacity float64) []RenderCommand {
	if l.IsHidden || !l.Timing.visibleAt(compFrame) {
		return nil
	}

	local, ok := e.resolveParentChainMatrix(comp, l, compFrame)
	if !ok {
		return nil
	}

	localFrame := compFrame - l.Timing.StartTime
	opacity := l.Transform.opacityAt(localFrame) * precompOpacity

	var cmds []RenderCommand
	cmds = append(cmds, beginGroup(fmt.Sprintf("layer:%d", l.ID)))
	cmds = append(cmds, pushTransform(local))

	maskCmds := e.emitMasks(l, localFrame)
	cmds = append(cmds, maskCmds...)

	switch l.Kind {
	case LayerKindImage:
		cmds = append(cmds, drawImage(e.namespacedAssetID(l.Content.assetID), opacity))
	case LayerKindShape:
		cmds = append(cmds, e.emitShapeGroups(l.Content.shapes, localFrame, opacity)...)
	case LayerKindPrecomp:
		cmds = append(cmds, e.emitPrecomp(l, compFrame, opacity)...)
	case LayerKindNull:
		// Contributes transform/visibility only.
	}

	for range maskCmds {
		cmds = append(cmds, endMask())
	}
	cmds = append(cmds, popTransform())
	cmds = append(cmds, endGroup())
	return cmds
}

// emitBindingLayer emits the designated binding layer, implementing the
// mediaInput/inputClip pipeline when the binding has resolved mediaInput
// geometry: the bound content is clipped to the mediaInput's own path
// (sampled in its own local space, independent of userTransform) and drawn
// with the binding layer's local matrix composed with userTransform on top,
// only when bindingLayerVisible is set. A binding layer carrying masks of
// its own has them ignored (masks apply to ordinary layers; the binding
// layer's clip comes from its mediaInput, not its mask stack), surfaced
// once per render via IssueBindingLayerMasksIgnored.
func (e *evalCtx) emitBindingLayer(l Layer, comp Composition, compFrame float64, precompOpacity float64) []RenderCommand {
	if l.IsHidden || !l.Timing.visibleAt(compFrame) {
		return nil
	}
	local, ok := e.resolveParentChainMatrix(comp, l, compFrame)
	if !ok {
		return nil
	}

	localFrame := compFrame - l.Timing.StartTime
	opacity := l.Transform.opacityAt(localFrame) * precompOpacity
	content := Concat(local, e.userTransform)

	if len(l.Masks) > 0 && !e.bindingMasksWarned {
		e.addIssue(IssueBindingLayerMasksIgnored, fmt.Sprintf("binding layer %v carries masks, which are ignored", l.ID), l.ID, comp.ID)
		e.bindingMasksWarned = true
	}

	var cmds []RenderCommand
	cmds = append(cmds, beginGroup("Layer:"+l.Name))

	ig := e.ir.InputGeometry
	if ig == nil {
		cmds = append(cmds, pushTransform(content))
		if e.bindingLayerVisible {
			cmds = append(cmds, e.drawBindingContent(l, compFrame, opacity)...)
		}
		cmds = append(cmds, popTransform())
		cmds = append(cmds, endGroup())
		return cmds
	}

	mediaMatrix := e.mediaInputLocalMatrix(comp, ig, compFrame)
	cmds = append(cmds, pushTransform(mediaMatrix))
	cmds = append(cmds, beginMask(MaskModeIntersect, false, ig.PathID, 1.0))
	cmds = append(cmds, popTransform())
	cmds = append(cmds, pushTransform(content))
	if e.bindingLayerVisible {
		cmds = append(cmds, e.drawBindingContent(l, compFrame, opacity)...)
	}
	cmds = append(cmds, popTransform())
	cmds = append(cmds, endMask())
	cmds = append(cmds, endGroup())
	return cmds
}

// drawBindingContent draws a binding layer's own content (no mask/transform
// scoping — the caller has already pushed whatever transform applies).
func (e *evalCtx) drawBindingContent(l Layer, compFrame float64, opacity float64) []RenderCommand {
	localFrame := compFrame - l.Timing.StartTime
	switch l.Kind {
	case LayerKindImage:
		return []RenderCommand{drawImage(e.namespacedAssetID(l.Content.assetID), opacity)}
	case LayerKindShape:
		return e.emitShapeGroups(l.Content.shapes, localFrame, opacity)
	case LayerKindPrecomp:
		return e.emitPrecomp(l, compFrame, opacity)
	}
	return nil
}

// mediaInputLocalMatrix computes the mediaInput layer's own matrix relative
// to its composition's local origin: its parent chain (like any ordinary
// layer) concatenated with its own GroupTransforms chain, since group
// transforms are never baked into the stored path vertices and must be
// recomposed per frame.
func (e *evalCtx) mediaInputLocalMatrix(comp Composition, ig *InputGeometry, compFrame float64) Matrix2D {
	l, ok := comp.layerByID(ig.LayerID)
	if !ok {
		return IdentityMatrix
	}
	base, _ := e.resolveParentChainMatrix(comp, l, compFrame)
	localFrame := compFrame - l.Timing.StartTime
	m := base
	for _, gt := range ig.GroupTransforms {
		m = Concat(m, gt.matrix(localFrame))
	}
	return m
}

// resolveParentChainMatrix walks a layer's parent chain within the same
// composition, detecting missing parents and cycles, and returns the
// layer's matrix local to comp's own origin (no ancestor-composition
// context baked in — the renderer's own transform stack, built up as
// precomp layers are expanded, supplies that). A missing parent or a cycle
// records a non-fatal issue and returns false, so the caller skips the layer
// rather than aborting the whole render.
func (e *evalCtx) resolveParentChainMatrix(comp Composition, l Layer, compFrame float64) (Matrix2D, bool) {
	local := l.Transform.matrix(compFrame - l.Timing.StartTime)

	chain := []Matrix2D{local}
	visited := map[LayerID]bool{l.ID: true}
	cur := l
	for cur.ParentID != nil {
		parent, ok := comp.layerByID(*cur.ParentID)
		if !ok {
			e.addIssue(IssueParentNotFound, fmt.Sprintf("layer %v references missing parent %v", l.ID, *cur.ParentID), l.ID, comp.ID)
			return IdentityMatrix, false
		}
		if visited[parent.ID] {
			e.addIssue(IssueParentCycleBroken, fmt.Sprintf("layer %v has a cyclic parent chain", l.ID), l.ID, comp.ID)
			return IdentityMatrix, false
		}
		visited[parent.ID] = true
		chain = append(chain, parent.Transform.matrix(compFrame-parent.Timing.StartTime))
		cur = parent
	}

	m := IdentityMatrix
	for i := len(chain) - 1; i >= 0; i-- {
		m = Concat(m, chain[i])
	}
	return m, true
}

// emitMasks emits a layer's mask stack in reverse declaration order and
// returns the commands so the caller can emit the matching endMask calls
// once the layer's content has been drawn.
func (e *evalCtx) emitMasks(l Layer, localFrame float64) []RenderCommand {
	var cmds []RenderCommand
	for i := len(l.Masks) - 1; i >= 0; i-- {
		m := l.Masks[i]
		path := m.Path.Sample(localFrame)
		id := e.ir.Paths.Register(path)
		cmds = append(cmds, beginMask(m.Mode, m.Inverted, id, m.Opacity.Sample(localFrame)))
	}
	return cmds
}

// emitShapeGroups walks a shape layer's group tree, pushing each group's
// transform and emitting a drawShape/drawStroke pair per primitive.
func (e *evalCtx) emitShapeGroups(groups []ShapeGroup, frame float64, parentOpacity float64) []RenderCommand {
	var cmds []RenderCommand
	for _, g := range groups {
		cmds = append(cmds, beginGroup("shapeGroup"))
		cmds = append(cmds, pushTransform(g.Transform.matrix(frame)))
		opacity := parentOpacity * g.Transform.opacityAt(frame)

		for _, prim := range g.Primitives {
			path := prim.Path.Sample(frame)
			id := e.ir.Paths.Register(path)
			if prim.Fill != nil {
				cmds = append(cmds, drawShape(id, prim.Fill, opacity*prim.Fill.Opacity))
			}
			if prim.Stroke != nil {
				cmds = append(cmds, drawStroke(id, prim.Stroke, opacity*prim.Stroke.Opacity))
			}
		}

		cmds = append(cmds, e.emitShapeGroups(g.Children, frame, opacity)...)
		cmds = append(cmds, popTransform())
		cmds = append(cmds, endGroup())
	}
	return cmds
}

// emitPrecomp expands a precomp-referencing layer into its nested
// composition's own emitted stream, guarding against a precomp cycle and
// applying this layer's own opacity as a multiplier across everything the
// nested composition draws. The nested composition's own transforms are
// pushed relative to whatever this layer already pushed onto the renderer's
// transform stack — nothing here bakes in an absolute/ancestor matrix.
func (e *evalCtx) emitPrecomp(l Layer, compFrame float64, opacity float64) []RenderCommand {
	compID := CompositionID(l.Content.compID)
	for _, id := range e.precompStack {
		if id == compID {
			e.addIssue(IssuePrecompCycleBroken, fmt.Sprintf("precomp %v references itself through a cycle", compID), l.ID, compID)
			return nil
		}
	}
	nested, ok := e.ir.Comps[compID]
	if !ok {
		return nil
	}

	e.precompStack = append(e.precompStack, compID)
	nestedFrame := compFrame - l.Timing.StartTime
	cmds := e.emitComposition(nested, nestedFrame, opacity)
	e.precompStack = e.precompStack[:len(e.precompStack)-1]
	return cmds
}

// resolveContainerContext walks the first precomp path from the root
// composition to target, accumulating each precomp layer's own local
// matrix into an absolute matrix and mapping atFrame into target's own
// local frame space. Unlike the render-command path, this has no renderer
// transform stack to lean on — it is used only by the standalone hit-test
// API below, which a caller may invoke with no render call in progress.
func (ir *AnimIR) resolveContainerContext(target CompositionID, atFrame float64) (Matrix2D, float64, bool) {
	if target == rootCompositionID {
		return IdentityMatrix, atFrame, true
	}
	path := findCompositionPath(ir.Comps, target)
	if path == nil {
		return IdentityMatrix, 0, false
	}
	e := &evalCtx{ir: ir}
	m := IdentityMatrix
	frame := atFrame
	for i := 0; i < len(path)-1; i++ {
		comp := ir.Comps[path[i]]
		next := path[i+1]
		var found *Layer
		for idx := range comp.Layers {
			if comp.Layers[idx].Content.kind == LayerKindPrecomp && CompositionID(comp.Layers[idx].Content.compID) == next {
				found = &comp.Layers[idx]
				break
			}
		}
		if found == nil {
			return IdentityMatrix, 0, false
		}
		local, ok := e.resolveParentChainMatrix(comp, *found, frame)
		if !ok {
			return IdentityMatrix, 0, false
		}
		m = Concat(m, local)
		frame -= found.Timing.StartTime
	}
	return m, frame, true
}

// MediaInputWorldMatrix returns the absolute (scene-space, not renderer-
// stack-relative) matrix placing this animation's mediaInput clip shape at
// frame, for a caller doing hit-testing or placement without walking a
// render-command stream of its own. It reports false if this animation has
// no resolved mediaInput.
func (a *AnimIR) MediaInputWorldMatrix(frame float64) (Matrix2D, bool) {
	if a.InputGeometry == nil || a.Binding == nil {
		return IdentityMatrix, false
	}
	containerMatrix, localFrame, ok := a.resolveContainerContext(a.Binding.CompID, frame)
	if !ok {
		return IdentityMatrix, false
	}
	e := &evalCtx{ir: a}
	comp := a.Comps[a.Binding.CompID]
	rel := e.mediaInputLocalMatrix(comp, a.InputGeometry, localFrame)
	return Concat(containerMatrix, rel), true
}

// MediaInputPath returns the mediaInput clip shape transformed into
// absolute (scene-space) coordinates at frame, for the same hit-testing use
// case as [AnimIR.MediaInputWorldMatrix].
func (a *AnimIR) MediaInputPath(frame float64) (BezierPath, bool) {
	m, ok := a.MediaInputWorldMatrix(frame)
	if !ok {
		return BezierPath{}, false
	}
	path, ok := a.Paths.Lookup(a.InputGeometry.PathID)
	if !ok {
		return BezierPath{}, false
	}
	verts := make([]Vertex, len(path.Vertices))
	for i, v := range path.Vertices {
		verts[i] = Vertex{
			Point:      m.Apply(v.Point),
			InTangent:  m.ApplyVector(v.InTangent),
			OutTangent: m.ApplyVector(v.OutTangent),
		}
	}
	return NewBezierPath(verts, path.Closed), true
}
