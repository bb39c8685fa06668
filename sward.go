package sward

import "math"

// Color represents an RGB color with components in [0, 1], plus alpha.
// Blade average colors carry A = 1; alpha is only meaningful for the
// shadow configuration.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the identity tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// toRGBA converts a Color to a premultiplied color.RGBA-compatible value.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image fills.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// stepToward moves val toward target by at most step, snapping to target
// when within step of it. Used for the return-to-rest easing so a blade
// can never overshoot its base rotation.
func stepToward(val, step, target float64) float64 {
	switch {
	case val > target+step:
		return val - step
	case val < target-step:
		return val + step
	default:
		return target
	}
}

// gridCoord keys the field's tile collection.
type gridCoord struct {
	x, y int
}
