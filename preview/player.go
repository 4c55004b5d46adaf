package preview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/vectorframe/animir"
)

// frame is one entry of the Player's target stack: an offscreen (or the
// real screen) image plus the scene-space origin its pixel (0,0) maps to.
// Every scope-opening command that needs isolation — pushClipRect,
// beginMask, beginMatte — renders its contents into a fresh frame, then
// composites that frame back into its parent on the matching pop/end.
type frame struct {
	target  *ebiten.Image
	originX float64
	originY float64
}

type scopeKind int

const (
	scopeClip scopeKind = iota + 1
	scopeMask
	scopeMatteRoot
	scopeMatteSource
	scopeMatteConsumer
)

// groupKind tags an open beginGroup/endGroup pair so the matching endGroup
// knows whether it closes a plain organizational group or the matteSource/
// matteConsumer group immediately nested inside a beginMatte scope — the
// only two group names this player gives rendering meaning to.
type groupKind int

const (
	groupPlain groupKind = iota
	groupMatteSource
	groupMatteConsumer
)

type scope struct {
	kind scopeKind
	fr   frame

	// scopeMask
	maskMode     animir.MaskMode
	maskInverted bool
	maskOpacity  float64
	maskPath     animir.BezierPath
	maskMatrix   animir.Matrix2D

	// scopeMatteRoot
	matteMode animir.MatteMode
}

// Player walks an [animir.RenderCommand] stream and draws it into an
// ebiten.Image, resolving drawImage/drawShape/drawStroke against an
// [AssetStore] and a [animir.PathRegistry] supplied per call.
type Player struct {
	Assets *AssetStore
	pool   *targetPool

	matrixStack []animir.Matrix2D
	frames      []frame
	scopes      []scope
	groups      []groupKind

	pendingMatteGate *ebiten.Image
}

// NewPlayer builds a player with an empty asset store; callers populate it
// via Assets.Put before drawing any drawImage commands.
func NewPlayer() *Player {
	return &Player{Assets: NewAssetStore(), pool: newTargetPool()}
}

// Draw samples cmds onto screen. paths resolves PathID references (normally
// the [animir.AnimIR] or [animir.CompiledPackage] the stream was produced
// from); screen is treated as the root frame at scene-space origin (0, 0).
func (p *Player) Draw(screen *ebiten.Image, cmds []animir.RenderCommand, paths *animir.PathRegistry) {
	p.matrixStack = []animir.Matrix2D{animir.IdentityMatrix}
	p.frames = []frame{{target: screen}}
	p.scopes = nil
	p.groups = nil
	p.pendingMatteGate = nil

	for _, cmd := range cmds {
		p.exec(cmd, paths)
	}
}

func (p *Player) top() *frame {
	return &p.frames[len(p.frames)-1]
}

func (p *Player) composed() animir.Matrix2D {
	return p.matrixStack[len(p.matrixStack)-1]
}

// localMatrix returns the composed scene-space matrix re-based onto the
// current frame's own pixel origin.
func (p *Player) localMatrix() animir.Matrix2D {
	f := p.top()
	return animir.Concat(animir.Translate(-f.originX, -f.originY), p.composed())
}

func (p *Player) exec(cmd animir.RenderCommand, paths *animir.PathRegistry) {
	switch cmd.Type {
	case animir.CommandBeginGroup:
		p.beginGroup(cmd.GroupName)
	case animir.CommandEndGroup:
		p.endGroup()

	case animir.CommandPushTransform:
		p.matrixStack = append(p.matrixStack, animir.Concat(p.composed(), cmd.Matrix))
	case animir.CommandPopTransform:
		p.matrixStack = p.matrixStack[:len(p.matrixStack)-1]

	case animir.CommandPushClipRect:
		p.pushIsolatedFrame(cmd.ClipRect)
		p.scopes = append(p.scopes, scope{kind: scopeClip, fr: *p.top()})
	case animir.CommandPopClipRect:
		p.popScope()

	case animir.CommandBeginMask:
		path, _ := paths.Lookup(cmd.MaskPathID)
		rect := transformedBounds(path, p.composed())
		p.pushIsolatedFrame(rect)
		p.scopes = append(p.scopes, scope{
			kind: scopeMask, fr: *p.top(),
			maskMode: cmd.MaskMode, maskInverted: cmd.MaskInverted,
			maskOpacity: cmd.MaskOpacity, maskPath: path, maskMatrix: p.localMatrix(),
		})
	case animir.CommandEndMask:
		p.popMaskScope()

	case animir.CommandBeginMatte:
		f := *p.top()
		p.pushIsolatedFrame(animir.RectD{X: f.originX, Y: f.originY, W: float64(f.target.Bounds().Dx()), H: float64(f.target.Bounds().Dy())})
		p.scopes = append(p.scopes, scope{kind: scopeMatteRoot, fr: *p.top(), matteMode: cmd.MatteMode})
	case animir.CommandEndMatte:
		p.popScope()

	case animir.CommandDrawImage:
		img := p.Assets.Image(cmd.AssetID)
		op := &ebiten.DrawImageOptions{}
		op.GeoM = ebitenGeoM(p.localMatrix())
		op.ColorScale.ScaleAlpha(float32(cmd.Opacity))
		p.top().target.DrawImage(img, op)

	case animir.CommandDrawShape:
		if cmd.Fill == nil {
			return
		}
		path, _ := paths.Lookup(cmd.PathID)
		fillPath(p.top().target, path, p.localMatrix(), cmd.Fill.Color, cmd.Fill.Opacity*cmd.Opacity)

	case animir.CommandDrawStroke:
		if cmd.Stroke == nil {
			return
		}
		path, _ := paths.Lookup(cmd.PathID)
		width := cmd.Stroke.Width.Sample(0)
		strokePath(p.top().target, path, p.localMatrix(), *cmd.Stroke, width, cmd.Stroke.Opacity*cmd.Opacity)
	}
}

// beginGroup opens a group. "matteSource"/"matteConsumer" immediately
// nested inside an open beginMatte scope get their own isolated frame so
// the source's pixels can gate the consumer on the matching endGroup;
// every other group (including those same names anywhere else) is purely
// organizational.
func (p *Player) beginGroup(name string) {
	if len(p.scopes) > 0 && p.scopes[len(p.scopes)-1].kind == scopeMatteRoot {
		switch name {
		case "matteSource":
			p.pushIsolatedFrame(matteRootRect(p.top()))
			p.scopes = append(p.scopes, scope{kind: scopeMatteSource, fr: *p.top()})
			p.groups = append(p.groups, groupMatteSource)
			return
		case "matteConsumer":
			p.pushIsolatedFrame(matteRootRect(p.top()))
			p.scopes = append(p.scopes, scope{kind: scopeMatteConsumer, fr: *p.top()})
			p.groups = append(p.groups, groupMatteConsumer)
			return
		}
	}
	p.groups = append(p.groups, groupPlain)
}

func (p *Player) endGroup() {
	kind := p.groups[len(p.groups)-1]
	p.groups = p.groups[:len(p.groups)-1]
	switch kind {
	case groupMatteSource, groupMatteConsumer:
		p.popMatteScope()
	}
}

// matteRootRect returns f's own rect, used to size the matteSource/
// matteConsumer sub-frames identically to their enclosing matte root frame.
func matteRootRect(f *frame) animir.RectD {
	return animir.RectD{X: f.originX, Y: f.originY, W: float64(f.target.Bounds().Dx()), H: float64(f.target.Bounds().Dy())}
}

// pushIsolatedFrame opens a new offscreen frame sized to rect (scene-space)
// and pushes it onto the frame stack.
func (p *Player) pushIsolatedFrame(rect animir.RectD) {
	w := int(math.Ceil(rect.W))
	h := int(math.Ceil(rect.H))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := p.pool.Acquire(w, h)
	p.frames = append(p.frames, frame{target: img, originX: rect.X, originY: rect.Y})
}

// popScope closes the top scope (plain clip case: composite unconditionally
// back onto the parent frame) and releases its offscreen target.
func (p *Player) popScope() {
	s := p.scopes[len(p.scopes)-1]
	p.scopes = p.scopes[:len(p.scopes)-1]
	p.frames = p.frames[:len(p.frames)-1]
	p.compositeOnto(p.top(), s.fr)
	p.pool.Release(s.fr.target)
}

func (p *Player) popMaskScope() {
	s := p.scopes[len(p.scopes)-1]
	p.scopes = p.scopes[:len(p.scopes)-1]
	p.frames = p.frames[:len(p.frames)-1]

	stencil := rasterizeStencil(s.fr.target.Bounds().Dx(), s.fr.target.Bounds().Dy(), s.maskPath, s.maskMatrix, s.maskOpacity)
	blend := ebiten.BlendDestinationIn
	if s.maskInverted {
		blend = ebiten.BlendDestinationOut
	}
	op := &ebiten.DrawImageOptions{Blend: blend}
	s.fr.target.DrawImage(stencil, op)

	p.compositeOnto(p.top(), s.fr)
	p.pool.Release(s.fr.target)
	p.pool.Release(stencil)
}

func (p *Player) popMatteScope() {
	s := p.scopes[len(p.scopes)-1]
	p.scopes = p.scopes[:len(p.scopes)-1]
	p.frames = p.frames[:len(p.frames)-1]

	switch s.kind {
	case scopeMatteSource:
		// A pure gate: stash it, don't composite into the parent on its own
		// (a consumer-less source contributes nothing visible by itself).
		p.pendingMatteGate = s.fr.target
	case scopeMatteConsumer:
		if p.pendingMatteGate != nil {
			blend := ebiten.BlendDestinationIn
			switch p.scopes[len(p.scopes)-1].matteMode {
			case animir.MatteModeAlphaInverted, animir.MatteModeLumaInverted:
				blend = ebiten.BlendDestinationOut
			}
			op := &ebiten.DrawImageOptions{Blend: blend}
			s.fr.target.DrawImage(p.pendingMatteGate, op)
			p.pool.Release(p.pendingMatteGate)
			p.pendingMatteGate = nil
		}
		p.compositeOnto(p.top(), s.fr)
		p.pool.Release(s.fr.target)
	}
}

// compositeOnto draws child's content onto dst at child's scene-space origin
// relative to dst's own origin, undoing the translation pushIsolatedFrame
// applied.
func (p *Player) compositeOnto(dst *frame, child frame) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(child.originX-dst.originX, child.originY-dst.originY)
	dst.target.DrawImage(child.target, op)
}

// transformedBounds returns the scene-space axis-aligned bounding box of
// bp's own bounds after applying m.
func transformedBounds(bp animir.BezierPath, m animir.Matrix2D) animir.RectD {
	b := bp.Bounds()
	corners := [4]animir.Vec2D{
		{X: b.X, Y: b.Y}, {X: b.X + b.W, Y: b.Y},
		{X: b.X, Y: b.Y + b.H}, {X: b.X + b.W, Y: b.Y + b.H},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		tc := m.Apply(c)
		minX, minY = math.Min(minX, tc.X), math.Min(minY, tc.Y)
		maxX, maxY = math.Max(maxX, tc.X), math.Max(maxY, tc.Y)
	}
	return animir.RectD{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
