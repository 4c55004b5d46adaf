package animir

import "testing"

func TestSaveLoadTVERoundTrip(t *testing.T) {
	ir, err := compileTestAnim(minimalDoc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	pkg := NewCompiledPackage()
	pkg.Add("square", ir)

	data, err := SaveTVE(pkg)
	if err != nil {
		t.Fatalf("SaveTVE error: %v", err)
	}

	loaded, err := LoadTVE(data)
	if err != nil {
		t.Fatalf("LoadTVE error: %v", err)
	}
	got, ok := loaded.Anims["square"]
	if !ok {
		t.Fatal("loaded package missing \"square\" animation")
	}
	if len(got.RootComp.Layers) != len(ir.RootComp.Layers) {
		t.Errorf("loaded layer count = %d, want %d", len(got.RootComp.Layers), len(ir.RootComp.Layers))
	}
}

func TestLoadTVERejectsNewerEngineVersion(t *testing.T) {
	_, err := LoadTVE([]byte(`{"engineVersion": 999999}`))
	if err == nil {
		t.Error("expected error for unsupported engine version")
	}
}

func TestLoadTVERejectsMalformedBundle(t *testing.T) {
	_, err := LoadTVE([]byte(`not json`))
	if err == nil {
		t.Error("expected error for malformed bundle")
	}
}
