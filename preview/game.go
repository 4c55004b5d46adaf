package preview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/vectorframe/animir"
)

// RunConfig holds window configuration for [Run], cut down to what a
// windowed render-command preview actually needs — no FPS widget, since
// PerfMetrics already covers that role for this domain (see
// perfmetrics_debug.go in the core package).
type RunConfig struct {
	Title         string
	Width, Height int
	ClearColor    color.Color
}

// Game implements [ebiten.Game] by advancing a [animir.ScenePlayer]'s
// [animir.CompiledScene] one frame per tick and drawing the resulting
// render-command stream through a [Player]: the usual Update/Draw/Layout
// split, specialized to "resample an immutable IR at the current frame
// index" since AnimIR has no mutable per-frame node state to advance.
type Game struct {
	Player *Player
	scene  *animir.CompiledScene
	sp     *animir.ScenePlayer
	paths  *animir.PathRegistry
	mode   animir.TemplateMode
	frame  float64
	w, h   int
	clear  color.Color
}

// NewGame builds a Game that plays cs via sp, resolving path IDs against
// paths (normally the union of every [animir.AnimIR] in the scene's
// [animir.CompiledPackage] — see [animir.AnimIR.Paths]).
func NewGame(sp *animir.ScenePlayer, cs *animir.CompiledScene, paths *animir.PathRegistry, mode animir.TemplateMode, cfg RunConfig) *Game {
	w, h := cfg.Width, cfg.Height
	if w == 0 {
		w = 640
	}
	if h == 0 {
		h = 480
	}
	clear := cfg.ClearColor
	if clear == nil {
		clear = color.Black
	}
	return &Game{
		Player: NewPlayer(), scene: cs, sp: sp, paths: paths, mode: mode,
		w: w, h: h, clear: clear,
	}
}

// Update advances the scene one frame. The caller is expected to have
// configured ebiten's tick rate to match the scene's intended frame rate
// (e.g. via ebiten.SetTPS) before calling [Run] or [ebiten.RunGame].
func (g *Game) Update() error {
	g.frame++
	return nil
}

// Draw samples the current frame's render-command stream and draws it.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.clear)
	cmds := g.sp.RenderCommands(g.scene, g.frame, g.mode)
	g.Player.Draw(screen, cmds, g.paths)
}

// Layout returns the fixed window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

// Run opens a window and runs g until the window closes or g.Update
// returns an error.
func Run(title string, g *Game) error {
	ebiten.SetWindowSize(g.w, g.h)
	if title != "" {
		ebiten.SetWindowTitle(title)
	}
	return ebiten.RunGame(g)
}
