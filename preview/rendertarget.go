package preview

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// targetPool manages reusable offscreen ebiten.Images keyed by power-of-two
// dimensions, used to composite clip/mask/matte scopes. Acquire/Release are
// zero-alloc after warmup, and dimensions are rounded up so a small set of
// buckets covers every scope size a stream is likely to open.
type targetPool struct {
	buckets map[uint64][]*ebiten.Image
}

func newTargetPool() *targetPool {
	return &targetPool{buckets: map[uint64][]*ebiten.Image{}}
}

func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
func (p *targetPool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if stack := p.buckets[key]; len(stack) > 0 {
		img := stack[len(stack)-1]
		p.buckets[key] = stack[:len(stack)-1]
		img.Clear()
		return img
	}
	return ebiten.NewImageWithOptions(image.Rect(0, 0, pw, ph), &ebiten.NewImageOptions{Unmanaged: true})
}

// Release returns an image to the pool for reuse.
func (p *targetPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())
	p.buckets[key] = append(p.buckets[key], img)
}
