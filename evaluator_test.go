package animir

import "testing"

func TestRenderCommandsBalancedForMinimalDoc(t *testing.T) {
	ir, err := compileTestAnim(minimalDoc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	cmds := ir.RenderCommands(0, IdentityMatrix, true, PreviewMode)
	if len(cmds) == 0 {
		t.Fatal("expected non-empty command stream")
	}
	if err := (RenderCommandValidator{}).ValidateRenderCommands(cmds); err != nil {
		t.Errorf("unbalanced command stream: %v", err)
	}

	var sawShape bool
	for _, c := range cmds {
		if c.Type == CommandDrawShape {
			sawShape = true
			if c.Fill == nil || c.Fill.Color.R != 1 {
				t.Errorf("drawShape fill = %+v, want red fill", c.Fill)
			}
		}
	}
	if !sawShape {
		t.Error("expected a drawShape command in the stream")
	}
}

func TestRenderCommandsSkipsLayerOutsideTimingWindow(t *testing.T) {
	ir, err := compileTestAnim(minimalDoc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	cmds := ir.RenderCommands(1000, IdentityMatrix, true, PreviewMode) // well past op:30
	for _, c := range cmds {
		if c.Type == CommandDrawShape {
			t.Error("expected no drawShape command outside the layer's timing window")
		}
	}
}

func TestResolveWorldMatrixReportsMissingParent(t *testing.T) {
	doc := `{"v":"5.5.0","fr":30,"ip":0,"op":30,"w":100,"h":100,"assets":[],
	  "layers":[{"ind":1,"ty":3,"nm":"x","parent":99,
	  "ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},
	  "ip":0,"op":30,"st":0}]}`
	ir, err := compileTestAnim(doc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	_, issues := ir.RenderCommandsWithIssues(0, IdentityMatrix, true, PreviewMode)
	var found bool
	for _, iss := range issues {
		if iss.Code == IssueParentNotFound {
			found = true
		}
	}
	if !found {
		t.Error("expected IssueParentNotFound")
	}
}
