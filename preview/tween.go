package preview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PulseTween drives a single preview-only UI value (e.g. a selection
// rectangle's alpha) between two floats. Sampled render data itself is
// never driven through this type — AnimIR sampling uses its own track
// evaluation exclusively.
type PulseTween struct {
	tween *gween.Tween
	Value float64
	Done  bool
}

// NewPulseTween builds a tween from `from` to `to` over duration seconds
// using fn.
func NewPulseTween(from, to, duration float64, fn ease.TweenFunc) *PulseTween {
	return &PulseTween{
		tween: gween.New(float32(from), float32(to), float32(duration), fn),
		Value: from,
	}
}

// Update advances the tween by dt seconds and updates Value.
func (p *PulseTween) Update(dt float64) {
	if p.Done {
		return
	}
	val, finished := p.tween.Update(float32(dt))
	p.Value = float64(val)
	p.Done = finished
}

// SelectionPulse returns a one-shot alpha ease from 0.2 to 1.0 over 0.6
// seconds for highlighting the block currently under the cursor in an
// editor-mode preview. It does not loop: once Done, Value stays at 1.0.
func SelectionPulse() *PulseTween {
	return NewPulseTween(0.2, 1.0, 0.6, ease.InOutSine)
}
