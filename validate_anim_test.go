package animir

import "testing"

func TestValidateAnimFlagsMediaInputWithoutPath(t *testing.T) {
	doc := `{"v":"5.5.0","fr":30,"ip":0,"op":30,"w":100,"h":100,"assets":[],
	  "layers":[{"ind":1,"ty":4,"nm":"mediaInput","ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},
	  "ip":0,"op":30,"st":0,"shapes":[]}]}`
	ir, err := compileTestAnim(doc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	findings := (AnimValidator{}).ValidateAnim(ir)
	var found bool
	for _, f := range findings {
		if f.Code == MediaInputNoPath {
			found = true
		}
	}
	if !found {
		t.Error("expected MEDIA_INPUT_NO_PATH finding")
	}
}

func TestValidateAnimFlagsMediaInputNotShape(t *testing.T) {
	doc := `{"v":"5.5.0","fr":30,"ip":0,"op":30,"w":100,"h":100,"assets":[],
	  "layers":[{"ind":1,"ty":3,"nm":"mediaInput","ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},
	  "ip":0,"op":30,"st":0}]}`
	ir, err := compileTestAnim(doc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	findings := (AnimValidator{}).ValidateAnim(ir)
	if len(findings) == 0 {
		t.Fatal("expected at least one finding")
	}
	if findings[0].Code != MediaInputNotShape {
		t.Errorf("findings[0].Code = %v, want MediaInputNotShape", findings[0].Code)
	}
}

func TestValidateAnimNoFindingsForCleanDoc(t *testing.T) {
	ir, err := compileTestAnim(minimalDoc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	findings := (AnimValidator{}).ValidateAnim(ir)
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none", findings)
	}
}
