package preview

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/vectorframe/animir"
)

const minimalDoc = `{
  "v": "5.5.2", "fr": 30, "ip": 0, "op": 30, "w": 100, "h": 100,
  "layers": [
    {
      "ty": 4, "ind": 1, "nm": "square",
      "ip": 0, "op": 30, "st": 0,
      "ks": {
        "o": {"k": 100}, "p": {"k": [50, 50]}, "a": {"k": [0, 0]},
        "s": {"k": [100, 100]}, "r": {"k": 0}
      },
      "shapes": [
        {"ty": "rc", "p": {"k": [0, 0]}, "s": {"k": [40, 40]}, "r": {"k": 0}},
        {"ty": "fl", "c": {"k": [1, 0, 0]}, "o": {"k": 100}}
      ]
    }
  ]
}`

// TestPlayerDrawDoesNotPanic exercises the full command-stream walk (begin/end
// group, push/pop transform, drawShape) against a real offscreen ebiten.Image.
// ebiten supports headless image operations without a running game loop, so
// this does not require an actual window.
func TestPlayerDrawDoesNotPanic(t *testing.T) {
	ir, err := animir.CompileAnim([]byte(minimalDoc), "test", "", animir.NewAssetIndex(), &animir.PathRegistry{})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	cmds := ir.RenderCommands(0, animir.IdentityMatrix, true, animir.PreviewMode)

	screen := ebiten.NewImage(100, 100)
	p := NewPlayer()
	p.Draw(screen, cmds, ir.Paths)
}

func TestPlayerDrawWithClipRect(t *testing.T) {
	ir, err := animir.CompileAnim([]byte(minimalDoc), "test", "", animir.NewAssetIndex(), &animir.PathRegistry{})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	cmds := []animir.RenderCommand{}
	cmds = append(cmds, ir.RenderCommands(0, animir.IdentityMatrix, true, animir.PreviewMode)...)

	screen := ebiten.NewImage(100, 100)
	p := NewPlayer()
	// Wrapping the whole stream in an extra clip scope should not panic or
	// leave dangling frames/scopes.
	wrapped := append([]animir.RenderCommand{{Type: animir.CommandPushClipRect, ClipRect: animir.RectD{W: 100, H: 100}}}, cmds...)
	wrapped = append(wrapped, animir.RenderCommand{Type: animir.CommandPopClipRect})
	p.Draw(screen, wrapped, ir.Paths)
	if len(p.frames) != 1 {
		t.Errorf("after Draw, frame stack depth = %d, want 1 (root only)", len(p.frames))
	}
	if len(p.scopes) != 0 {
		t.Errorf("after Draw, scope stack depth = %d, want 0", len(p.scopes))
	}
}
