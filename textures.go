package dice

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Textures is a name-keyed store of images shared by objects. Objects only
// borrow these images, so the store must outlive every object it serves.
// Decoding image files is left to the caller.
type Textures struct {
	images map[string]*ebiten.Image
}

// NewTextures creates an empty texture store.
func NewTextures() *Textures {
	return &Textures{images: make(map[string]*ebiten.Image)}
}

// Add stores img under name, replacing any previous image.
func (t *Textures) Add(name string, img *ebiten.Image) {
	t.images[name] = img
}

// AddSolid creates a w×h image filled with c and stores it under name.
// Useful for placeholders and tests.
func (t *Textures) AddSolid(name string, w, h int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	t.images[name] = img
	return img
}

// Get returns the image stored under name. A missing name logs a warning and
// returns nil, which SetTexture ignores.
func (t *Textures) Get(name string) *ebiten.Image {
	if img, ok := t.images[name]; ok {
		return img
	}
	logger.Warn("texture not found", zap.String("texture", name))
	return nil
}

// Remove deletes name from the store. Objects still borrowing the image keep
// drawing it.
func (t *Textures) Remove(name string) {
	delete(t.images, name)
}

// Names returns the stored names in sorted order.
func (t *Textures) Names() []string {
	names := make([]string, 0, len(t.images))
	for name := range t.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
