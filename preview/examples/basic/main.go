// Basic plays a single compiled Lottie-shaped animation in a window. No
// external assets are required — the animation document is embedded below.
package main

import (
	"log"

	"github.com/vectorframe/animir"
	"github.com/vectorframe/animir/preview"
)

const doc = `{
  "v": "5.5.2", "fr": 30, "ip": 0, "op": 60, "w": 320, "h": 240,
  "layers": [
    {
      "ty": 4, "ind": 1, "nm": "square",
      "ip": 0, "op": 60, "st": 0,
      "ks": {
        "o": {"k": 100},
        "p": {"k": [160, 120]},
        "a": {"k": [0, 0]},
        "s": {"a": 1, "k": [
          {"t": 0, "s": [50, 50], "i": {"x": [0.42], "y": [1]}, "o": {"x": [0.58], "y": [0]}},
          {"t": 30, "s": [150, 150], "i": {"x": [0.42], "y": [1]}, "o": {"x": [0.58], "y": [0]}},
          {"t": 60, "s": [50, 50]}
        ]},
        "r": {"k": 0}
      },
      "shapes": [
        {"ty": "rc", "p": {"k": [0, 0]}, "s": {"k": [80, 80]}, "r": {"k": 8}},
        {"ty": "fl", "c": {"k": [0.31, 0.70, 1]}, "o": {"k": 100}}
      ]
    }
  ]
}`

func main() {
	ir, err := animir.CompileAnim([]byte(doc), "square", "", animir.NewAssetIndex(), &animir.PathRegistry{})
	if err != nil {
		log.Fatalf("compile: %v", err)
	}

	pkg := animir.NewCompiledPackage()
	pkg.Add("square", ir)
	sp := animir.NewScenePlayer(pkg)

	scene := animir.Scene{
		ID:     "demo",
		Canvas: animir.Canvas{Size: animir.SizeD{W: 320, H: 240}},
		Blocks: []animir.MediaBlock{
			{ID: "block1", AnimKey: "square", Timing: animir.Timing{Range: animir.LoopRange{Start: ir.InPoint, End: ir.OutPoint, Loop: true}}},
		},
	}
	cs, err := sp.Compile(scene)
	if err != nil {
		log.Fatalf("compile scene: %v", err)
	}

	game := preview.NewGame(sp, cs, ir.Paths, animir.PreviewMode, preview.RunConfig{
		Title: "AnimIR Preview — Basic", Width: 320, Height: 240,
	})
	if err := preview.Run("AnimIR Preview — Basic", game); err != nil {
		log.Fatal(err)
	}
}
