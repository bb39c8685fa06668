package sward

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Breeze produces a traveling sine-wave sway. Advance it with Update
// each frame and pass its Rotation method to Field.UpdateRender:
//
//	breeze := &sward.Breeze{Amplitude: 15, Wavelength: 100, Speed: 1}
//	breeze.Update(dt)
//	field.UpdateRender(screen, dt, offset, breeze.Rotation)
type Breeze struct {
	// Amplitude is the peak master rotation in degrees.
	Amplitude float64
	// Wavelength controls how quickly the wave phase changes across the
	// field horizontally, in pixels per radian. Zero defaults to 100.
	Wavelength float64
	// Speed is the wave's temporal frequency in radians per second.
	Speed float64

	elapsed float64
}

// Update advances the breeze by dt seconds.
func (b *Breeze) Update(dt float64) {
	b.elapsed += dt
}

// Rotation is a RotationFunc: the sway angle in degrees for a tile at
// pixel origin (x, y).
func (b *Breeze) Rotation(x, y float64) float64 {
	wl := b.Wavelength
	if wl <= 0 {
		wl = 100
	}
	return math.Sin(b.elapsed*b.Speed+x/wl) * b.Amplitude
}

// Gust sweeps a localized bending force across the field from one point
// to another, with the sweep position eased by a tween. Call Update once
// per frame until it reports done.
type Gust struct {
	from, to Vec2
	radius   float64
	dropoff  float64
	tween    *gween.Tween
	pos      Vec2
	done     bool
}

// NewGust creates a gust that travels from one point to another over
// duration seconds. radius and dropoff have the same meaning as in
// Field.ApplyForce. A nil easing function defaults to ease.Linear.
func NewGust(from, to Vec2, radius, dropoff float64, duration float32, fn ease.TweenFunc) *Gust {
	if fn == nil {
		fn = ease.Linear
	}
	return &Gust{
		from:    from,
		to:      to,
		radius:  radius,
		dropoff: dropoff,
		tween:   gween.New(0, 1, duration, fn),
		pos:     from,
	}
}

// Update advances the gust by dt seconds and applies its force to the
// field at the current sweep position. It reports true once the sweep
// has finished; further calls do nothing.
func (g *Gust) Update(f *Field, dt float64) (done bool) {
	if g.done {
		return true
	}
	t, finished := g.tween.Update(float32(dt))
	frac := float64(t)
	g.pos = Vec2{
		X: g.from.X + (g.to.X-g.from.X)*frac,
		Y: g.from.Y + (g.to.Y-g.from.Y)*frac,
	}
	f.ApplyForce(g.pos, g.radius, g.dropoff)
	if finished {
		g.done = true
	}
	return g.done
}

// Position returns the gust's current sweep position.
func (g *Gust) Position() Vec2 {
	return g.pos
}
