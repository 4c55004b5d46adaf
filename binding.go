package animir

// BindingInfo records that a layer somewhere in the animation is the
// designated "binding layer" for the bindingKey given to [CompileAnim] — the
// named slot a scene template exposes for a consumer to wire external media
// into. CompID is the composition the binding layer itself lives in
// (searched root-first, then sub-compositions); BoundAssetID/BoundCompID
// identify what the layer's own content resolves to, when it is an image or
// precomp layer respectively.
type BindingInfo struct {
	BindingKey   string
	CompID       CompositionID
	BoundLayerID LayerID
	BoundAssetID string
	BoundCompID  CompositionID
}

// InputGeometry describes where a mediaInput's content plane sits: which
// layer/composition it belongs to, the path it is clipped to (the shape's
// AnimPath, sampled and interned into the shared registry so the renderer
// and a caller probing geometry see the same data), a frame-0 bounding rect
// as a cheap hit-test hint, and the ordered (outer to inner) chain of group
// transforms standing between the mediaInput layer's own origin and the
// primitive the path was extracted from — group transforms are never baked
// into the stored path vertices, so recomposing this chain per-frame is how
// a caller places the path correctly.
type InputGeometry struct {
	LayerID         LayerID
	CompID          CompositionID
	PathID          PathID
	BoundingRect    RectD
	GroupTransforms []GroupTransform
}
