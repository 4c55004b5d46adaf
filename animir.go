package animir

// AssetIndex maps an asset ID to its declared pixel size, for layers whose
// content is an image. Namespacing (so two animations loaded into the same
// package don't collide) is done by [CompileAnim], which registers image
// assets under "animRef|id" keys; [AssetIndex.Namespace] re-prefixes an
// already-built index.
type AssetIndex struct {
	sizes map[string]SizeD
}

// NewAssetIndex builds an empty index.
func NewAssetIndex() *AssetIndex {
	return &AssetIndex{sizes: map[string]SizeD{}}
}

// Put registers an asset's declared size.
func (a *AssetIndex) Put(id string, size SizeD) {
	if a.sizes == nil {
		a.sizes = map[string]SizeD{}
	}
	a.sizes[id] = size
}

// Size returns an asset's declared size and whether it is known.
func (a *AssetIndex) Size(id string) (SizeD, bool) {
	s, ok := a.sizes[id]
	return s, ok
}

// Namespace returns a copy of this index with every asset ID prefixed
// "prefix|id". [CompileAnim] already namespaces assets this way as it
// registers them into a caller-supplied shared index, so this is only
// needed for ad hoc re-prefixing of an already-built index (e.g. loading a
// legacy single-animation index into a multi-animation package).
func (a *AssetIndex) Namespace(prefix string) *AssetIndex {
	out := NewAssetIndex()
	for id, size := range a.sizes {
		out.sizes[namespacedAssetKey(prefix, id)] = size
	}
	return out
}

// namespacedAssetKey builds the "{animRef}|{assetId}" key [CompileAnim]
// registers image assets under in a shared [AssetIndex], and the matching
// key [AnimIR.RenderCommands] emits in drawImage commands — so that two
// animations merged into one [ScenePlayer] package never collide on an
// identically-named asset. An empty animRef leaves the id unprefixed, for
// callers compiling a single animation with no package-merge in play.
func namespacedAssetKey(animRef, assetID string) string {
	if animRef == "" {
		return assetID
	}
	return animRef + "|" + assetID
}

// IssueCode identifies a non-fatal runtime issue surfaced alongside a
// render-command stream — something worth telling a caller about without
// aborting the render — distinct from a fatal [CompileError], which aborts
// compilation outright.
type IssueCode string

const (
	IssueBindingLayerMasksIgnored IssueCode = "bindingLayerMasksIgnored"
	IssuePrecompCycleBroken       IssueCode = "precompCycleBroken"
	IssueParentCycleBroken        IssueCode = "parentCycleBroken"
	IssueParentNotFound           IssueCode = "parentNotFound"
)

// RenderIssue is one non-fatal issue observed while producing a render
// command stream for a single frame.
type RenderIssue struct {
	Code    IssueCode
	Message string
	LayerID LayerID
	CompID  CompositionID
}

// AnimIR is a fully compiled animation: its root composition, every nested
// precomp composition, its asset index, the animRef it namespaces its own
// asset IDs under, its resolved binding layer (if its compile specified a
// bindingKey), that binding's resolved mediaInput geometry (if any), and the
// path registry its path primitives were interned into. Evaluation does not
// change its compositions, but a render call has side effects:
// [AnimIR.RenderCommands] records its issues on the AnimIR, and every render
// call registers each sampled mask and shape path into Paths, which has no
// locking. Concurrent render calls on one AnimIR, or on AnimIRs sharing a
// registry, are therefore not safe.
type AnimIR struct {
	FrameRate     float64
	InPoint       float64
	OutPoint      float64
	RootComp      Composition
	Comps         map[CompositionID]Composition
	Assets        *AssetIndex
	AnimRef       string
	Binding       *BindingInfo
	InputGeometry *InputGeometry
	Paths         *PathRegistry

	lastIssues []RenderIssue
}

// LastRenderIssues returns the non-fatal issues observed during the most
// recent [AnimIR.RenderCommands] call, or nil if none were. Not safe to
// call concurrently with a RenderCommands call on the same AnimIR;
// [AnimIR.RenderCommandsWithIssues] returns the issues directly instead of
// through this shared field.
func (a *AnimIR) LastRenderIssues() []RenderIssue {
	return a.lastIssues
}

// Duration returns the animation's length in frames.
func (a *AnimIR) Duration() float64 {
	return a.OutPoint - a.InPoint
}

// localFrameIndex clamps frame into the animation's own playable range
// [0, OutPoint-1] — the frame Edit-mode template rendering and any other
// caller needing a single representative frame should sample at.
func (a *AnimIR) localFrameIndex(frame float64) float64 {
	return clampFloat(frame, 0, a.OutPoint-1)
}
