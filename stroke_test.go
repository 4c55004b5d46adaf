package animir

import "testing"

func TestNewStrokeStyleValid(t *testing.T) {
	s, err := newStrokeStyle(Color{R: 1}, 1.0, NewStaticTrack(4.0), LineCapRound, LineJoinRound, 4, false, "stroke")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width.Sample(0) != 4.0 {
		t.Errorf("Width.Sample(0) = %v, want 4.0", s.Width.Sample(0))
	}
}

func TestNewStrokeStyleRejectsDash(t *testing.T) {
	_, err := newStrokeStyle(Color{}, 1, NewStaticTrack(2.0), LineCapButt, LineJoinMiter, 4, true, "stroke")
	assertCompileError(t, err, ErrUnsupportedShapeFeature)
}

func TestNewStrokeStyleRejectsWidthOutOfRange(t *testing.T) {
	_, err := newStrokeStyle(Color{}, 1, NewStaticTrack(0.0), LineCapButt, LineJoinMiter, 4, false, "stroke")
	assertCompileError(t, err, ErrUnsupportedShapeFeature)

	_, err = newStrokeStyle(Color{}, 1, NewStaticTrack(3000.0), LineCapButt, LineJoinMiter, 4, false, "stroke")
	assertCompileError(t, err, ErrUnsupportedShapeFeature)
}

func TestNewStrokeStyleRejectsInvalidCapJoinMiter(t *testing.T) {
	if _, err := newStrokeStyle(Color{}, 1, NewStaticTrack(1.0), 99, LineJoinMiter, 1, false, "stroke"); err == nil {
		t.Error("expected error for invalid line cap")
	}
	if _, err := newStrokeStyle(Color{}, 1, NewStaticTrack(1.0), LineCapButt, 99, 1, false, "stroke"); err == nil {
		t.Error("expected error for invalid line join")
	}
	if _, err := newStrokeStyle(Color{}, 1, NewStaticTrack(1.0), LineCapButt, LineJoinMiter, -1, false, "stroke"); err == nil {
		t.Error("expected error for negative miter limit")
	}
}

func assertCompileError(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	ce, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("err = %v (%T), want *CompileError", err, err)
	}
	if ce.Code != want {
		t.Errorf("err.Code = %v, want %v", ce.Code, want)
	}
}
