package sward

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// minDropoff is the floor applied to force dropoff distances so the
// falloff math never divides by zero.
const minDropoff = 1e-6

// burnNeighborhood is the 8-neighbor stencil used by the burn-spread
// automaton.
var burnNeighborhood = [8]gridCoord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// RotationFunc supplies a master rotation, in degrees, for the tile
// whose pixel origin is (x, y). Used to drive wind effects.
type RotationFunc func(x, y float64) float64

// Field owns a set of grass tiles keyed by grid coordinate, routes
// force application into the affected tiles, and drives the per-frame
// update/render pass including the fire-spread automaton.
//
// A Field is single-threaded: all mutation happens synchronously inside
// the host's frame loop, and no method may be called concurrently.
//
// Fire only spreads between tiles inside the current visible window;
// off-screen spread pauses. Hosts that need viewport-independent burning
// can run UpdateRender against an offscreen target covering the field.
type Field struct {
	cfg    Config
	blades *BladeSet
	rng    *rand.Rand

	nextLayoutID int
	formats      *formatCache
	cache        *imageCache
	tiles        map[gridCoord]*Tile
}

// NewField creates a grass field over the given blade set. Zero values
// for the structural Config fields (tile size, stiffness, cache caps,
// placement range, burn timings) fall back to DefaultConfig values;
// ShadeAmount and Shadow.Strength are taken literally since zero
// legitimately disables them.
func NewField(blades *BladeSet, cfg Config) *Field {
	cfg.normalize()
	if cfg.validate() != nil {
		cfg.PlaceRange = DefaultConfig().PlaceRange
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	return &Field{
		cfg:     cfg,
		blades:  blades,
		rng:     rng,
		formats: newFormatCache(cfg.MaxUnique, rng),
		cache:   newImageCache(),
		tiles:   make(map[gridCoord]*Tile),
	}
}

// Config returns the field's effective configuration.
func (f *Field) Config() Config {
	return f.cfg
}

// EnableGroundShadows turns on circular shadows beneath each blade.
// Pass a strength of 0 to disable. The remaining parameters control the
// circle radius, base color, and the shadow's offset from the blade.
func (f *Field) EnableGroundShadows(strength, radius float64, clr Color, shift Vec2) {
	f.cfg.Shadow = ShadowConfig{
		Strength: strength,
		Radius:   radius,
		Color:    clr,
		Shift:    shift,
	}
}

// Place creates a grass tile at the given grid coordinate with density
// blades drawn from the allowed variant indices. Placing over an
// occupied coordinate is ignored.
func (f *Field) Place(gx, gy, density int, variants []int) {
	key := gridCoord{gx, gy}
	if _, occupied := f.tiles[key]; occupied {
		return
	}
	if density <= 0 || len(variants) == 0 {
		return
	}
	f.tiles[key] = newTile(f, gx, gy, density, variants)
}

// Ignite lights the tile at the given grid coordinate, if one exists.
func (f *Field) Ignite(gx, gy int) {
	if t, ok := f.tiles[gridCoord{gx, gy}]; ok {
		t.ignite()
	}
}

// ApplyForce bends grass away from a world-space point. Blades within
// radius take the full deflection; the force then falls off linearly to
// nothing over dropoff pixels. The force is forwarded to every tile in
// the conservative square neighborhood covering radius+dropoff; each
// tile recomputes exact per-blade distances.
func (f *Field) ApplyForce(point Vec2, radius, dropoff float64) {
	if dropoff < minDropoff {
		dropoff = minDropoff
	}
	ts := float64(f.cfg.TileSize)
	gx := int(math.Floor(point.X / ts))
	gy := int(math.Floor(point.Y / ts))
	span := int(math.Ceil((radius + dropoff) / ts))

	for dy := -span; dy <= span; dy++ {
		for dx := -span; dx <= span; dx++ {
			if t, ok := f.tiles[gridCoord{gx + dx, gy + dy}]; ok {
				t.ApplyForce(point, radius, dropoff)
			}
		}
	}
}

// Len returns the number of live tiles in the field.
func (f *Field) Len() int {
	return len(f.tiles)
}

// TileAt returns the tile at the given grid coordinate, or nil.
func (f *Field) TileAt(gx, gy int) *Tile {
	return f.tiles[gridCoord{gx, gy}]
}

// UpdateRender advances the simulation by dt seconds and renders the
// visible tiles onto dst. offset is the camera's world-space offset.
// If rotFn is non-nil it is called with each visible tile's pixel origin
// to obtain a new master (wind) rotation for that tile.
//
// All per-frame mutation happens here: burn spread and countdown,
// return-to-rest easing, cache population, and the deferred removal of
// fully burned tiles.
func (f *Field) UpdateRender(dst *ebiten.Image, dt float64, offset Vec2, rotFn RotationFunc) {
	ts := f.cfg.TileSize
	cols := dst.Bounds().Dx()/ts + 1
	rows := dst.Bounds().Dy()/ts + 1
	baseX := int(math.Floor(offset.X / float64(ts)))
	baseY := int(math.Floor(offset.Y / float64(ts)))

	visible := make([]gridCoord, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pos := gridCoord{baseX + x, baseY + y}
			if _, ok := f.tiles[pos]; ok {
				visible = append(visible, pos)
			}
		}
	}

	if f.cfg.Shadow.Enabled() {
		shadowOffset := Vec2{
			X: offset.X - f.cfg.Shadow.Shift.X,
			Y: offset.Y - f.cfg.Shadow.Shift.Y,
		}
		for _, pos := range visible {
			f.tiles[pos].renderShadow(dst, shadowOffset)
		}
	}

	// Consumed tiles are collected and removed after the loop; deleting
	// from the map mid-iteration would skip or double-visit tiles.
	var consumed []gridCoord
	for _, pos := range visible {
		t := f.tiles[pos]

		if t.Burning() {
			for _, d := range burnNeighborhood {
				if n, ok := f.tiles[gridCoord{pos.x + d.x, pos.y + d.y}]; ok {
					n.smolder()
				}
			}
		}

		t.render(dst, dt, offset)

		if rotFn != nil {
			t.setRotation(rotFn(t.originX, t.originY))
		}

		if t.advance(dt) {
			consumed = append(consumed, pos)
		}
	}

	for _, pos := range consumed {
		delete(f.tiles, pos)
	}
}
