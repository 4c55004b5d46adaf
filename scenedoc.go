package animir

// Scene is a declarative scene-template descriptor: a canvas size, a set of
// media blocks (each referencing a compiled animation and a frame/loop
// range within it), and their z-ordering. A [ScenePlayer] compiles a Scene
// plus the [AnimIR]s it references into a [CompiledScene] ready to sample.
type Scene struct {
	ID     string
	Canvas Canvas
	Blocks []MediaBlock
}

// Canvas is a scene's fixed pixel size.
type Canvas struct {
	Size SizeD
}

// LoopRange is a playback window within a referenced animation's own frame
// space, optionally looped.
type LoopRange struct {
	Start float64
	End   float64
	Loop  bool
}

// Timing maps a scene-local frame index to a point within a block's
// LoopRange.
type Timing struct {
	Range LoopRange
}

// MediaBlock is one scene element: a reference to a compiled animation (by
// its registered key, see [CompiledPackage]), its timing window, its
// z-ordering among sibling blocks, and any user-supplied media bindings.
type MediaBlock struct {
	ID      string
	AnimKey string
	ZIndex  int
	Timing  Timing
	Inputs  []MediaInput
}

// MediaInput is one user-facing media slot a block exposes, keyed to a
// binding declared inside the referenced animation (see [BindingInfo]).
type MediaInput struct {
	BindingKey string
	Variant    Variant
}

// Variant selects which of a binding's presentation modes a particular
// instance of a scene uses — e.g. whether user media is actually present,
// for preview vs. edit template modes.
type Variant struct {
	Name string
}

// TemplateMode selects how a [ScenePlayer] resolves a block's binding
// layers: EditMode always draws the binding layer's own content regardless
// of whether user media is set; PreviewMode draws it only once user media is
// marked present, and draws nothing inside the binding layer's scope while
// it is absent.
type TemplateMode int

const (
	PreviewMode TemplateMode = iota + 1
	EditMode
)
