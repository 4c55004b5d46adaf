package animir

import "testing"

// compileTestAnim calls CompileAnim with fresh, unshared asset/path
// registries for tests that don't exercise binding resolution or
// cross-animation asset namespacing.
func compileTestAnim(data string) (*AnimIR, error) {
	return CompileAnim([]byte(data), "test", "", NewAssetIndex(), &PathRegistry{})
}

const minimalDoc = `{
  "v": "5.5.0", "fr": 30, "ip": 0, "op": 30, "w": 100, "h": 100,
  "assets": [],
  "layers": [
    {
      "ind": 1, "ty": 4, "nm": "square",
      "ks": {"o": {"k": 100}, "r": {"k": 0}, "p": {"k": [50, 50]}, "a": {"k": [0, 0]}, "s": {"k": [100, 100]}},
      "ip": 0, "op": 30, "st": 0,
      "shapes": [
        {"ty": "rc", "p": {"k": [0, 0]}, "s": {"k": [20, 20]}, "r": {"k": 0}},
        {"ty": "fl", "c": {"k": [1, 0, 0]}, "o": {"k": 100}}
      ]
    }
  ]
}`

func TestCompileAnimMinimal(t *testing.T) {
	ir, err := compileTestAnim(minimalDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ir.RootComp.Layers) != 1 {
		t.Fatalf("len(Layers) = %d, want 1", len(ir.RootComp.Layers))
	}
	l := ir.RootComp.Layers[0]
	if l.Kind != LayerKindShape {
		t.Errorf("Kind = %v, want LayerKindShape", l.Kind)
	}
	if len(l.Content.shapes) != 1 || len(l.Content.shapes[0].Primitives) != 1 {
		t.Fatalf("shape content not extracted as expected: %+v", l.Content)
	}
}

func TestCompileAnimRejectsMalformedJSON(t *testing.T) {
	_, err := compileTestAnim("{not json")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestCompileAnimRejectsTextLayer(t *testing.T) {
	doc := `{"v":"5.5.0","fr":30,"ip":0,"op":30,"w":100,"h":100,"assets":[],
	  "layers":[{"ind":1,"ty":5,"nm":"t","ks":{},"ip":0,"op":30,"st":0}]}`
	_, err := compileTestAnim(doc)
	assertCompileError(t, err, ErrUnsupportedShapeFeature)
}

func TestCompileAnimRejectsUnknownMaskMode(t *testing.T) {
	doc := `{"v":"5.5.0","fr":30,"ip":0,"op":30,"w":100,"h":100,"assets":[],
	  "layers":[{"ind":1,"ty":4,"nm":"x","ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},
	  "ip":0,"op":30,"st":0,"shapes":[],
	  "masksProperties":[{"mode":"x","inv":false,"pt":{"k":{"c":true,"v":[[0,0]],"i":[[0,0]],"o":[[0,0]]}},"o":{"k":100}}]}]}`
	_, err := compileTestAnim(doc)
	assertCompileError(t, err, ErrUnsupportedMaskMode)
}

func TestCompileAnimMatteTargetNotFound(t *testing.T) {
	doc := `{"v":"5.5.0","fr":30,"ip":0,"op":30,"w":100,"h":100,"assets":[],
	  "layers":[{"ind":1,"ty":3,"nm":"x","ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},
	  "ip":0,"op":30,"st":0,"tp":99}]}`
	_, err := compileTestAnim(doc)
	assertCompileError(t, err, ErrMatteTargetNotFound)
}

func TestCompileAnimMatteTargetInvalidOrder(t *testing.T) {
	doc := `{"v":"5.5.0","fr":30,"ip":0,"op":30,"w":100,"h":100,"assets":[],
	  "layers":[
	    {"ind":1,"ty":3,"nm":"consumer","ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},"ip":0,"op":30,"st":0,"tp":2},
	    {"ind":2,"ty":3,"nm":"alsoAfter","ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},"ip":0,"op":30,"st":0}
	  ]}`
	// tp=2 refers to a layer declared after the consumer in array order
	// (source at index 1, consumer at index 0), which is the invalid order.
	_, err := compileTestAnim(doc)
	assertCompileError(t, err, ErrMatteTargetInvalidOrder)
}

func TestCompileAnimMatteTargetInvalidOrderReversed(t *testing.T) {
	doc := `{"v":"5.5.0","fr":30,"ip":0,"op":30,"w":100,"h":100,"assets":[],
	  "layers":[
	    {"ind":1,"ty":3,"nm":"source","ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},"ip":0,"op":30,"st":0},
	    {"ind":2,"ty":3,"nm":"consumer","ks":{"p":{"k":[0,0]},"a":{"k":[0,0]},"s":{"k":[100,100]},"r":{"k":0},"o":{"k":100}},"ip":0,"op":30,"st":0,"tp":1}
	  ]}`
	// The reverse of the case above: the source (index 0) is declared before
	// its consumer (index 1), which is the valid order.
	_, err := compileTestAnim(doc)
	if err != nil {
		t.Fatalf("unexpected error for a validly-ordered matte: %v", err)
	}
}
