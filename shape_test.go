package animir

import (
	"encoding/json"
	"testing"
)

func staticProp(t *testing.T, jsonValue string) *lottieProp {
	t.Helper()
	return &lottieProp{RawK: json.RawMessage(jsonValue)}
}

func TestExtractRectanglePathNoRound(t *testing.T) {
	item := lottieShapeItem{
		Type:     "rc",
		Position: staticProp(t, "[0,0]"),
		Size:     staticProp(t, "[20,10]"),
		Roundness: staticProp(t, "0"),
	}
	p, err := extractRectanglePath(item, "shapes[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := p.Sample(0).Bounds()
	want := RectD{X: -10, Y: -5, W: 20, H: 10}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestExtractEllipsePath(t *testing.T) {
	item := lottieShapeItem{
		Type:     "el",
		Position: staticProp(t, "[5,5]"),
		Size:     staticProp(t, "[10,10]"),
	}
	p, err := extractEllipsePath(item, "shapes[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := p.Sample(0)
	if len(path.Vertices) != 4 {
		t.Errorf("ellipse path has %d vertices, want 4", len(path.Vertices))
	}
	if !path.Closed {
		t.Error("ellipse path should be closed")
	}
}

func TestExtractPolystarRejectsAnimatedPointCount(t *testing.T) {
	item := lottieShapeItem{
		Type:   "sr",
		Points: &lottieProp{Animated: 1, RawK: json.RawMessage(`[{"t":0,"s":[5]},{"t":10,"s":[6]}]`)},
	}
	_, err := extractPolystarPath(item, "shapes[0]")
	assertCompileError(t, err, ErrUnsupportedShapeFeature)
}

func TestExtractPolystarPolygon(t *testing.T) {
	item := lottieShapeItem{
		Type:     "sr",
		PolyType: 2,
		Position: staticProp(t, "[0,0]"),
		Points:   staticProp(t, "5"),
		OuterRad: staticProp(t, "10"),
	}
	p, err := extractPolystarPath(item, "shapes[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := p.Sample(0)
	if len(path.Vertices) != 5 {
		t.Errorf("polygon vertex count = %d, want 5", len(path.Vertices))
	}
}

func TestExtractPolystarStar(t *testing.T) {
	item := lottieShapeItem{
		Type:     "sr",
		PolyType: 1,
		Position: staticProp(t, "[0,0]"),
		Points:   staticProp(t, "5"),
		OuterRad: staticProp(t, "10"),
		InnerRad: staticProp(t, "5"),
	}
	p, err := extractPolystarPath(item, "shapes[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := p.Sample(0)
	if len(path.Vertices) != 10 {
		t.Errorf("star vertex count = %d, want 10", len(path.Vertices))
	}
}

func TestExtractBezierPathStatic(t *testing.T) {
	item := lottieShapeItem{
		Type: "sh",
		Vertices: staticProp(t, `{"c":true,"v":[[0,0],[10,0],[10,10]],"i":[[0,0],[0,0],[0,0]],"o":[[0,0],[0,0],[0,0]]}`),
	}
	p, err := extractBezierPath(item, "shapes[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := p.Sample(0)
	if len(path.Vertices) != 3 || !path.Closed {
		t.Errorf("path = %+v, want 3 closed vertices", path)
	}
}

func TestExtractStrokeFromShapeItem(t *testing.T) {
	item := lottieShapeItem{
		Type:        "st",
		StrokeColor: staticProp(t, "[1,0,0]"),
		StrokeWidth: staticProp(t, "3"),
		LineCap:     int(LineCapRound),
		LineJoin:    int(LineJoinRound),
		MiterLimit:  4,
	}
	s, err := extractStroke(item, "shapes[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Color.R != 1 {
		t.Errorf("Color.R = %v, want 1", s.Color.R)
	}
}

func TestExtractOneGroupFillAppliesToPrecedingPath(t *testing.T) {
	items := []lottieShapeItem{
		{Type: "rc", Position: staticProp(t, "[0,0]"), Size: staticProp(t, "[10,10]"), Roundness: staticProp(t, "0")},
		{Type: "fl", FillColor: staticProp(t, "[0,1,0]")},
	}
	g, err := extractOneGroup(items, IdentityGroupTransform(), "shapes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Primitives) != 1 {
		t.Fatalf("len(Primitives) = %d, want 1", len(g.Primitives))
	}
	if g.Primitives[0].Fill == nil || g.Primitives[0].Fill.Color.G != 1 {
		t.Errorf("Primitives[0].Fill = %+v, want green fill", g.Primitives[0].Fill)
	}
}

func TestExtractOneGroupRejectsUnsupportedItemType(t *testing.T) {
	items := []lottieShapeItem{{Type: "zz"}}
	_, err := extractOneGroup(items, IdentityGroupTransform(), "shapes")
	assertCompileError(t, err, ErrUnsupportedShapeFeature)
}
