package animir

// MatteMode selects how a matte source layer's pixels gate its consumer.
type MatteMode int

const (
	MatteModeAlpha MatteMode = iota + 1
	MatteModeAlphaInverted
	MatteModeLuma
	MatteModeLumaInverted
)

// parseMatteMode maps a Lottie track-matte type integer (tt) to a
// [MatteMode]. Unknown values default to MatteModeAlpha — Lottie documents
// 1-4 exhaustively, and an out-of-range tt is more likely an exporter quirk
// than an intentionally unsupported feature, so this does not hard-fail the
// compile (unlike mask modes, which are an explicit enum string).
func parseMatteMode(tt int) MatteMode {
	switch tt {
	case 2:
		return MatteModeAlphaInverted
	case 3:
		return MatteModeLuma
	case 4:
		return MatteModeLumaInverted
	default:
		return MatteModeAlpha
	}
}

// MatteInfo links a layer to the matte source that gates its visibility.
// SourceLayerID is resolved during compile's two matte-resolution passes:
// Pass A follows the modern "tp" (track-matte parent) field, Pass B falls
// back to legacy same-composition layer adjacency (the layer immediately
// above, by declaration order, when it sets matteTargetOf itself).
type MatteInfo struct {
	Mode          MatteMode
	SourceLayerID LayerID
}
