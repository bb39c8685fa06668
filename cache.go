package sward

import "github.com/hajimehoshi/ebiten/v2"

// renderKey identifies one cached tile image: a layout id plus the
// quantized master rotation bucket it was rendered at.
type renderKey struct {
	layout int
	bucket int
}

// imageCache maps (layout, rotation bucket) to rasterized tile images
// and layout id to rasterized shadow images. Entries are inserted on
// first render and never invalidated; the population is bounded by the
// format cache's layout cap times the number of rotation buckets.
type imageCache struct {
	tiles   map[renderKey]*ebiten.Image
	shadows map[int]*ebiten.Image
}

func newImageCache() *imageCache {
	return &imageCache{
		tiles:   make(map[renderKey]*ebiten.Image),
		shadows: make(map[int]*ebiten.Image),
	}
}

func (c *imageCache) tile(k renderKey) (*ebiten.Image, bool) {
	img, ok := c.tiles[k]
	return img, ok
}

func (c *imageCache) putTile(k renderKey, img *ebiten.Image) {
	c.tiles[k] = img
}

func (c *imageCache) shadow(layoutID int) (*ebiten.Image, bool) {
	img, ok := c.shadows[layoutID]
	return img, ok
}

func (c *imageCache) putShadow(layoutID int, img *ebiten.Image) {
	c.shadows[layoutID] = img
}

// tileCount returns the number of cached tile images.
func (c *imageCache) tileCount() int {
	return len(c.tiles)
}
