package sward

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// rotation buckets: master rotation is quantized to precision steps so
// tiles sharing a layout and a bucket can share one cached image.
const (
	rotationPrecision = 30
	rotationStep      = 90.0 / rotationPrecision
)

// Blade is one blade of grass within a tile layout: its base position
// (pixel offset within the tile), sprite variant, base rotation in
// degrees, and the variant's precomputed average color.
type Blade struct {
	X, Y     float64
	Variant  int
	Rotation float64
	Color    Color
}

// Tile owns one grid cell's blade layout, rotation state, and burn
// state. Tiles are created by Field.Place and destroyed by the field
// once their burn life runs out.
type Tile struct {
	field    *Field
	gx, gy   int
	originX  float64
	originY  float64
	size     int
	layoutID int

	// blades is the tile's base layout, immutable once deduplicated.
	// override is the per-blade deflected copy; nil while every blade
	// sits at its base rotation, which is what re-enables cache reuse.
	blades   []Blade
	override []Blade

	masterRotation float64
	bucket         int

	// burnFuse counts ignition pressure from burning neighbors; the tile
	// catches fire when it reaches 0. burnLife is the remaining fuel.
	burnFuse    int
	burnLife    float64
	maxBurnLife float64
}

// newTile generates a tile's blade layout and runs it through the format
// cache for deduplication.
func newTile(f *Field, gx, gy, density int, variants []int) *Tile {
	cfg := &f.cfg
	size := cfg.TileSize
	t := &Tile{
		field:       f,
		gx:          gx,
		gy:          gy,
		originX:     float64(gx * size),
		originY:     float64(gy * size),
		size:        size,
		burnFuse:    cfg.BurnFuse,
		burnLife:    cfg.BurnLife,
		maxBurnLife: cfg.BurnLife,
	}

	lo, hi := cfg.PlaceRange[0], cfg.PlaceRange[1]
	t.blades = make([]Blade, 0, density)
	for i := 0; i < density; i++ {
		variant := variants[f.rng.IntN(len(variants))]
		yFrac := lo
		if hi > lo {
			yFrac = lo + f.rng.Float64()*(hi-lo)
		}
		t.blades = append(t.blades, Blade{
			X:        f.rng.Float64() * float64(size),
			Y:        yFrac * float64(size),
			Variant:  variant,
			Rotation: f.rng.Float64()*30 - 15,
			Color:    f.blades.AverageColor(variant),
		})
	}

	// Back-to-front draw order.
	sort.SliceStable(t.blades, func(i, j int) bool {
		return t.blades[i].Variant < t.blades[j].Variant
	})

	t.layoutID = f.nextLayoutID
	f.nextLayoutID++

	key := formatKey(density, variants)
	if shared, ok := f.formats.register(key, layout{id: t.layoutID, blades: t.blades}); ok {
		t.blades = shared.blades
		t.layoutID = shared.id
	}
	return t
}

// Grid returns the tile's grid coordinate.
func (t *Tile) Grid() (gx, gy int) {
	return t.gx, t.gy
}

// Burning reports whether the tile is actively on fire.
func (t *Tile) Burning() bool {
	return t.burnFuse == 0
}

// BurnLife returns the tile's remaining fuel.
func (t *Tile) BurnLife() float64 {
	return t.burnLife
}

// Deflected reports whether any blade currently deviates from its base
// rotation. A deflected tile renders fresh instead of from the cache.
func (t *Tile) Deflected() bool {
	return t.override != nil
}

// ignite lights the tile's fuse immediately.
func (t *Tile) ignite() {
	t.burnFuse = 0
}

// smolder applies one step of ignition pressure from a burning neighbor.
func (t *Tile) smolder() {
	if t.burnFuse > 0 {
		t.burnFuse--
	}
}

// advance steps the burn state by dt seconds and reports whether the
// tile has been fully consumed. The field removes consumed tiles in a
// deferred sweep after the render pass.
func (t *Tile) advance(dt float64) (consumed bool) {
	if t.burnFuse > 0 {
		return false
	}
	t.burnLife = math.Max(0, t.burnLife-t.field.cfg.BurnRate*dt)
	return t.burnLife == 0
}

// ApplyForce bends the tile's blades away from a world-space point.
// Blades within radius take the maximum deflection; past that the force
// falls off linearly to zero over dropoff pixels. A pending deflection
// is only replaced when the new force is at least as strong.
func (t *Tile) ApplyForce(point Vec2, radius, dropoff float64) {
	if dropoff < minDropoff {
		dropoff = minDropoff
	}
	if t.override == nil {
		t.override = make([]Blade, len(t.blades))
		copy(t.override, t.blades)
	}
	for i := range t.blades {
		base := &t.blades[i]
		wx := t.originX + base.X
		wy := t.originY + base.Y
		dist := math.Hypot(wx-point.X, wy-point.Y)

		var force float64
		if dist < radius {
			force = 2
		} else {
			force = 1 - math.Min((dist-radius)/dropoff, 1)
		}

		dir := -1.0
		if point.X > wx {
			dir = 1
		}

		if math.Abs(t.override[i].Rotation-base.Rotation) <= force*90 {
			t.override[i].Rotation = base.Rotation + dir*force*90
		}
	}
}

// setRotation sets the tile's master rotation (wind) in degrees and
// recomputes the quantized bucket used for cache lookups.
func (t *Tile) setRotation(degrees float64) {
	t.masterRotation = degrees
	t.bucket = int(math.Round(degrees / rotationStep))
}

// trueRotation is the quantized master rotation in degrees.
func (t *Tile) trueRotation() float64 {
	return float64(t.bucket) * rotationStep
}

// render draws the tile onto dst and eases any deflected blades back
// toward rest. Burning and deflected tiles render fresh each frame;
// otherwise the image comes from (and on a miss, populates) the render
// image cache.
func (t *Tile) render(dst *ebiten.Image, dt float64, offset Vec2) {
	pad := float64(t.field.cfg.Padding)
	x := t.originX - offset.X - pad
	y := t.originY - offset.Y - pad

	switch {
	case t.Burning():
		// Burn scale changes every tick; caching would churn.
		img, _ := t.renderTile(false)
		blitAt(dst, img, x, y)
	case t.override != nil:
		// Per-blade deflection is tile-unique.
		img, _ := t.renderTile(false)
		blitAt(dst, img, x, y)
	default:
		key := renderKey{layout: t.layoutID, bucket: t.bucket}
		img, ok := t.field.cache.tile(key)
		if !ok {
			shadow := t.field.cfg.Shadow.Enabled()
			if _, have := t.field.cache.shadow(t.layoutID); have {
				shadow = false
			}
			var shadowImg *ebiten.Image
			img, shadowImg = t.renderTile(shadow)
			t.field.cache.putTile(key, img)
			if shadowImg != nil {
				t.field.cache.putShadow(t.layoutID, shadowImg)
			}
		}
		blitAt(dst, img, x, y)
	}

	if t.override == nil {
		return
	}
	// Ease deflected blades back toward their base rotation; once every
	// blade is exactly at rest, drop the override so the cache applies.
	step := t.field.cfg.Stiffness * dt
	matching := true
	for i := range t.override {
		t.override[i].Rotation = stepToward(t.override[i].Rotation, step, t.blades[i].Rotation)
		if t.override[i].Rotation != t.blades[i].Rotation {
			matching = false
		}
	}
	if matching {
		t.override = nil
	}
}

// renderShadow blits the tile's cached shadow image, if one exists yet.
// The shadow image is first generated alongside the tile image, so the
// very first frame of a tile can render without its shadow.
func (t *Tile) renderShadow(dst *ebiten.Image, offset Vec2) {
	img, ok := t.field.cache.shadow(t.layoutID)
	if !ok {
		return
	}
	pad := float64(t.field.cfg.Padding)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(t.originX-offset.X-pad, t.originY-offset.Y-pad)
	op.ColorScale.ScaleAlpha(float32(t.field.cfg.Shadow.Strength / 255))
	dst.DrawImage(img, &op)
}

// renderTile rasterizes the tile's current state onto a padded canvas.
// When withShadow is set it also rasterizes the shadow canvas: one
// filled circle per blade at the blade's base position.
func (t *Tile) renderTile(withShadow bool) (img, shadowImg *ebiten.Image) {
	cfg := &t.field.cfg
	pad := cfg.Padding
	side := t.size + pad*2
	img = ebiten.NewImage(side, side)

	if withShadow {
		shadowImg = ebiten.NewImage(side, side)
		clr := cfg.Shadow.Color.toRGBA()
		for i := range t.blades {
			b := &t.blades[i]
			vector.DrawFilledCircle(shadowImg,
				float32(b.X+float64(pad)), float32(b.Y+float64(pad)),
				float32(cfg.Shadow.Radius), clr, true)
		}
	}

	blades := t.blades
	if t.override != nil {
		blades = t.override
	}
	scale := t.burnLife / t.maxBurnLife
	rot := t.trueRotation()
	for i := range blades {
		b := &blades[i]
		t.field.blades.renderBlade(img, b.Variant,
			b.X+float64(pad), b.Y+float64(pad),
			clamp(b.Rotation+rot, -90, 90), scale, b.Color, cfg.ShadeAmount)
	}
	return img, shadowImg
}

func blitAt(dst, src *ebiten.Image, x, y float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	dst.DrawImage(src, &op)
}
