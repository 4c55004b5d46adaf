package preview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/vectorframe/animir"
)

// whiteDot is a 1x1 opaque white source image every vector.Path rasterization
// draws through — DrawTriangles always samples a source image, and since the
// vertex colors alone carry the fill/stroke color, any single uniformly-white
// pixel works as the sampled texel regardless of UV.
var whiteDot *ebiten.Image

func whiteSource() *ebiten.Image {
	if whiteDot == nil {
		whiteDot = ebiten.NewImage(1, 1)
		whiteDot.Fill(whiteColor{})
	}
	return whiteDot
}

type whiteColor struct{}

func (whiteColor) RGBA() (r, g, b, a uint32) { return 0xffff, 0xffff, 0xffff, 0xffff }

func colorVertices(vs []ebiten.Vertex, col animir.Color, alpha float64) {
	r, g, b := float32(col.R), float32(col.G), float32(col.B)
	a := float32(alpha)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR = r * a
		vs[i].ColorG = g * a
		vs[i].ColorB = b * a
		vs[i].ColorA = a
	}
}

// fillPath rasterizes bp (transformed by m) onto target, filled with col at
// alpha, using ebiten's vector path triangulation.
func fillPath(target *ebiten.Image, bp animir.BezierPath, m animir.Matrix2D, col animir.Color, alpha float64) {
	vp := vectorPathFrom(bp)
	vs, is := vp.AppendVerticesAndIndicesForFilling(nil, nil)
	if len(vs) == 0 {
		return
	}
	applyMatrixToVertices(vs, m)
	colorVertices(vs, col, alpha)
	target.DrawTriangles(vs, is, whiteSource(), &ebiten.DrawTrianglesOptions{
		FillRule: ebiten.FillRuleNonZero,
	})
}

func strokeLineCap(c animir.LineCap) vector.LineCap {
	switch c {
	case animir.LineCapRound:
		return vector.LineCapRound
	case animir.LineCapSquare:
		return vector.LineCapSquare
	default:
		return vector.LineCapButt
	}
}

func strokeLineJoin(j animir.LineJoin) vector.LineJoin {
	switch j {
	case animir.LineJoinRound:
		return vector.LineJoinRound
	case animir.LineJoinBevel:
		return vector.LineJoinBevel
	default:
		return vector.LineJoinMiter
	}
}

// strokePath rasterizes bp's outline (transformed by m) onto target using
// width (sampled from style's width track by the caller; [Player] samples it
// at frame 0) and style's cap/join settings.
func strokePath(target *ebiten.Image, bp animir.BezierPath, m animir.Matrix2D, style animir.StrokeStyle, width, alpha float64) {
	vp := vectorPathFrom(bp)
	vs, is := vp.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:      float32(width),
		LineCap:    strokeLineCap(style.LineCap),
		LineJoin:   strokeLineJoin(style.LineJoin),
		MiterLimit: float32(style.MiterLimit),
	})
	if len(vs) == 0 {
		return
	}
	applyMatrixToVertices(vs, m)
	colorVertices(vs, style.Color, alpha)
	target.DrawTriangles(vs, is, whiteSource(), &ebiten.DrawTrianglesOptions{})
}

// applyMatrixToVertices transforms each vertex's DstX/DstY in place by m —
// vector.Path emits vertices in local shape space, so the IR's own
// pushTransform matrix must be applied by hand rather than via GeoM (which
// only applies to whole DrawImage calls, not DrawTriangles vertex data).
func applyMatrixToVertices(vs []ebiten.Vertex, m animir.Matrix2D) {
	for i := range vs {
		x, y := float64(vs[i].DstX), float64(vs[i].DstY)
		vs[i].DstX = float32(m.A*x + m.C*y + m.TX)
		vs[i].DstY = float32(m.B*x + m.D*y + m.TY)
	}
}

// rasterizeStencil fills bp (transformed by m) into a fresh alpha mask image
// the size of target, used to implement beginMask/beginMatte via
// BlendDestinationIn compositing.
func rasterizeStencil(w, h int, bp animir.BezierPath, m animir.Matrix2D, opacity float64) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	fillPath(img, bp, m, animir.Color{R: 1, G: 1, B: 1}, opacity)
	return img
}
