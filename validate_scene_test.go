package animir

import "testing"

func TestValidateSceneFlagsNonPositiveCanvas(t *testing.T) {
	pkg := buildMinimalPackage(t)
	scene := Scene{Canvas: Canvas{Size: SizeD{W: 0, H: 0}}}
	findings := (SceneValidator{}).ValidateScene(scene, pkg)
	var found bool
	for _, f := range findings {
		if f.Code == SceneCanvasNonPositive {
			found = true
		}
	}
	if !found {
		t.Error("expected SCENE_CANVAS_NON_POSITIVE finding")
	}
}

func TestValidateSceneFlagsDuplicateBlockID(t *testing.T) {
	pkg := buildMinimalPackage(t)
	scene := Scene{
		Canvas: Canvas{Size: SizeD{W: 10, H: 10}},
		Blocks: []MediaBlock{
			{ID: "dup", AnimKey: "square", Timing: Timing{Range: LoopRange{Start: 0, End: 10}}},
			{ID: "dup", AnimKey: "square", Timing: Timing{Range: LoopRange{Start: 0, End: 10}}},
		},
	}
	findings := (SceneValidator{}).ValidateScene(scene, pkg)
	var found bool
	for _, f := range findings {
		if f.Code == SceneDuplicateBlockID {
			found = true
		}
	}
	if !found {
		t.Error("expected SCENE_DUPLICATE_BLOCK_ID finding")
	}
}

func TestValidateSceneFlagsUnknownAnimKey(t *testing.T) {
	pkg := buildMinimalPackage(t)
	scene := Scene{
		Canvas: Canvas{Size: SizeD{W: 10, H: 10}},
		Blocks: []MediaBlock{{ID: "b1", AnimKey: "nope"}},
	}
	findings := (SceneValidator{}).ValidateScene(scene, pkg)
	if len(findings) == 0 || findings[0].Code != SceneUnknownAnimKey {
		t.Errorf("findings = %+v, want SCENE_UNKNOWN_ANIM_KEY", findings)
	}
}
