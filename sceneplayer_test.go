package animir

import "testing"

func buildMinimalPackage(t *testing.T) *CompiledPackage {
	t.Helper()
	ir, err := compileTestAnim(minimalDoc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	pkg := NewCompiledPackage()
	pkg.Add("square", ir)
	return pkg
}

func TestScenePlayerCompileAndRender(t *testing.T) {
	pkg := buildMinimalPackage(t)
	scene := Scene{
		ID:     "s1",
		Canvas: Canvas{Size: SizeD{W: 200, H: 200}},
		Blocks: []MediaBlock{
			{ID: "b1", AnimKey: "square", ZIndex: 0, Timing: Timing{Range: LoopRange{Start: 0, End: 30}}},
		},
	}
	player := NewScenePlayer(pkg)
	cs, err := player.Compile(scene)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	cmds := player.RenderCommands(cs, 5, PreviewMode)
	if err := (RenderCommandValidator{}).ValidateRenderCommands(cmds); err != nil {
		t.Errorf("unbalanced scene command stream: %v", err)
	}
}

func TestScenePlayerCompileRejectsUnknownAnimKey(t *testing.T) {
	pkg := buildMinimalPackage(t)
	scene := Scene{ID: "s1", Blocks: []MediaBlock{{ID: "b1", AnimKey: "missing"}}}
	player := NewScenePlayer(pkg)
	if _, err := player.Compile(scene); err == nil {
		t.Error("expected error for unknown animation key")
	}
}

func TestScenePlayerZIndexOrdering(t *testing.T) {
	pkg := buildMinimalPackage(t)
	scene := Scene{
		Blocks: []MediaBlock{
			{ID: "back", AnimKey: "square", ZIndex: 5},
			{ID: "front", AnimKey: "square", ZIndex: 1},
		},
	}
	player := NewScenePlayer(pkg)
	cs, err := player.Compile(scene)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if cs.Blocks[0].Block.ID != "front" || cs.Blocks[1].Block.ID != "back" {
		t.Errorf("blocks not sorted by zIndex: %v, %v", cs.Blocks[0].Block.ID, cs.Blocks[1].Block.ID)
	}
}

func TestScenePlayerUserTransform(t *testing.T) {
	pkg := buildMinimalPackage(t)
	scene := Scene{Blocks: []MediaBlock{{ID: "b1", AnimKey: "square"}}}
	player := NewScenePlayer(pkg)
	cs, _ := player.Compile(scene)

	if m := cs.UserTransform("b1"); m != IdentityMatrix {
		t.Errorf("default UserTransform = %+v, want identity", m)
	}
	custom := Translate(5, 5)
	cs.SetUserTransform("b1", custom)
	if m := cs.UserTransform("b1"); m != custom {
		t.Errorf("UserTransform after set = %+v, want %+v", m, custom)
	}
	cs.ResetAllUserTransforms()
	if m := cs.UserTransform("b1"); m != IdentityMatrix {
		t.Errorf("UserTransform after reset = %+v, want identity", m)
	}
}

func TestMapLoopFrame(t *testing.T) {
	r := LoopRange{Start: 0, End: 10, Loop: true}
	if f := mapLoopFrame(12, r); f != 2 {
		t.Errorf("mapLoopFrame(12) = %v, want 2", f)
	}
	nonLoop := LoopRange{Start: 0, End: 10, Loop: false}
	if f := mapLoopFrame(100, nonLoop); f != 10 {
		t.Errorf("mapLoopFrame(100, non-loop) = %v, want clamped to 10", f)
	}
}
