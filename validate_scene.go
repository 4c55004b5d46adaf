package animir

import "fmt"

// SceneIssueCode identifies a non-fatal structural problem a [SceneValidator]
// finds in a [Scene] or its resolution against a [CompiledPackage].
type SceneIssueCode string

const (
	SceneUnknownAnimKey    SceneIssueCode = "SCENE_UNKNOWN_ANIM_KEY"
	SceneDuplicateBlockID  SceneIssueCode = "SCENE_DUPLICATE_BLOCK_ID"
	SceneInvalidLoopRange  SceneIssueCode = "SCENE_INVALID_LOOP_RANGE"
	SceneUnknownBindingKey SceneIssueCode = "SCENE_UNKNOWN_BINDING_KEY"
	SceneCanvasNonPositive SceneIssueCode = "SCENE_CANVAS_NON_POSITIVE"
)

// SceneValidation is one finding from [SceneValidator.ValidateScene].
type SceneValidation struct {
	Code    SceneIssueCode
	Message string
	BlockID string
}

// SceneValidator runs non-fatal structural checks over a [Scene] against
// the [CompiledPackage] it will be compiled with.
type SceneValidator struct{}

// ValidateScene checks canvas sanity, block reference validity, duplicate
// block IDs, loop-range sanity, and that every MediaInput's binding key
// actually exists on its referenced animation.
func (SceneValidator) ValidateScene(scene Scene, pkg *CompiledPackage) []SceneValidation {
	var out []SceneValidation
	if scene.Canvas.Size.W <= 0 || scene.Canvas.Size.H <= 0 {
		out = append(out, SceneValidation{Code: SceneCanvasNonPositive, Message: "canvas size must be positive"})
	}

	seen := map[string]bool{}
	for _, b := range scene.Blocks {
		if seen[b.ID] {
			out = append(out, SceneValidation{Code: SceneDuplicateBlockID, Message: fmt.Sprintf("duplicate block id %q", b.ID), BlockID: b.ID})
		}
		seen[b.ID] = true

		anim, ok := pkg.Anims[b.AnimKey]
		if !ok {
			out = append(out, SceneValidation{Code: SceneUnknownAnimKey, Message: fmt.Sprintf("block %q references unknown animation key %q", b.ID, b.AnimKey), BlockID: b.ID})
			continue
		}
		if b.Timing.Range.End <= b.Timing.Range.Start {
			out = append(out, SceneValidation{Code: SceneInvalidLoopRange, Message: fmt.Sprintf("block %q has a non-positive loop range", b.ID), BlockID: b.ID})
		}
		for _, mi := range b.Inputs {
			if anim.Binding == nil || anim.Binding.BindingKey != mi.BindingKey {
				out = append(out, SceneValidation{Code: SceneUnknownBindingKey, Message: fmt.Sprintf("block %q references unknown binding key %q", b.ID, mi.BindingKey), BlockID: b.ID})
			}
		}
	}
	return out
}
