package preview

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// AssetStore maps an animation's drawImage asset IDs to loaded ebiten
// images. An asset ID maps directly to its own image rather than a
// sub-rectangle of a shared atlas page, since the AnimIR asset model has no
// atlas-packing concept of its own.
type AssetStore struct {
	images map[string]*ebiten.Image
}

// NewAssetStore builds an empty store.
func NewAssetStore() *AssetStore {
	return &AssetStore{images: map[string]*ebiten.Image{}}
}

// Put registers the image to draw for a given asset ID.
func (s *AssetStore) Put(assetID string, img *ebiten.Image) {
	s.images[assetID] = img
}

// Image returns the image registered for assetID. If none was registered it
// logs and returns a 1x1 magenta placeholder rather than panicking.
func (s *AssetStore) Image(assetID string) *ebiten.Image {
	if img, ok := s.images[assetID]; ok {
		return img
	}
	log.Printf("preview: asset %q not found, using magenta placeholder", assetID)
	return magentaImage()
}

var magenta *ebiten.Image

func magentaImage() *ebiten.Image {
	if magenta == nil {
		magenta = ebiten.NewImage(1, 1)
		magenta.Fill(magentaColor{})
	}
	return magenta
}

// magentaColor implements color.Color for the placeholder fill.
type magentaColor struct{}

func (magentaColor) RGBA() (r, g, b, a uint32) {
	return 0xffff, 0, 0xffff, 0xffff
}
