package animir

import "testing"

// These exercise the default (release) build of PerfMetrics. The debug
// build (-tags debug) swaps in the real counters in perfmetrics_debug.go;
// both satisfy the same method set, so code written against Metrics()
// works unmodified under either tag.
func TestMetricsReportIsValid(t *testing.T) {
	Metrics().Reset()
	if _, err := compileTestAnim(minimalDoc); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	data, err := Metrics().Report()
	if err != nil {
		t.Fatalf("Report error: %v", err)
	}
	if len(data) == 0 {
		t.Error("Report() returned empty data")
	}
}

func TestMetricsRecordFrameDuringRender(t *testing.T) {
	ir, err := compileTestAnim(minimalDoc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	Metrics().Reset()
	_ = ir.RenderCommands(0, IdentityMatrix, true, PreviewMode)
	if _, err := Metrics().Report(); err != nil {
		t.Errorf("Report error after render: %v", err)
	}
}
