package sward

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"math"
	"sort"

	_ "image/png" // blade sprites are conventionally PNG

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used for solid color fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// recolorBlend replaces destination RGB with the (premultiplied) source
// color while keeping the destination alpha. Used for the burn tint.
var recolorBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorDestinationAlpha,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorZero,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// bladeSprite is one loaded blade variant.
type bladeSprite struct {
	img     *ebiten.Image
	scratch *ebiten.Image // lazily allocated canvas for the burn recolor
	w, h    int
	avg     Color // arithmetic mean color of the opaque pixels
}

// BladeSet holds the loaded blade sprite variants and their average
// colors. Tiles reference variants by index; indices follow the
// lexicographic order of the source file names.
type BladeSet struct {
	blades []bladeSprite
}

// LoadBlades loads every image in dir (within fsys) as a blade variant,
// in lexicographic name order. Pure black is the transparency colorkey:
// those pixels become fully transparent, and the remaining pixels
// contribute to the variant's average color. A sprite with no opaque
// pixels is a configuration error.
func LoadBlades(fsys fs.FS, dir string) (*BladeSet, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("sward: failed to read blade directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	bs := &BladeSet{}
	for _, name := range names {
		f, err := fsys.Open(dir + "/" + name)
		if err != nil {
			return nil, fmt.Errorf("sward: failed to open blade sprite %q: %w", name, err)
		}
		src, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("sward: failed to decode blade sprite %q: %w", name, err)
		}
		if err := bs.add(src, name); err != nil {
			return nil, err
		}
	}
	return bs, nil
}

// NewBladeSet builds a BladeSet from already-decoded images, in the
// order given. The same colorkey rules as LoadBlades apply. Useful for
// procedurally generated blades and for tests.
func NewBladeSet(imgs []image.Image) (*BladeSet, error) {
	bs := &BladeSet{}
	for i, src := range imgs {
		if err := bs.add(src, fmt.Sprintf("blade %d", i)); err != nil {
			return nil, err
		}
	}
	return bs, nil
}

// add applies the colorkey, computes the average color, and appends the
// variant. name is only used in error messages.
func (bs *BladeSet) add(src image.Image, name string) error {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	keyed := image.NewRGBA(image.Rect(0, 0, w, h))

	var sumR, sumG, sumB float64
	opaque := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			if (r == 0 && g == 0 && b == 0) || a == 0 {
				continue // colorkey
			}
			px := x - bounds.Min.X
			py := y - bounds.Min.Y
			keyed.SetRGBA(px, py, color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: 255,
			})
			sumR += float64(r>>8) / 255
			sumG += float64(g>>8) / 255
			sumB += float64(b>>8) / 255
			opaque++
		}
	}
	if opaque == 0 {
		return fmt.Errorf("sward: blade sprite %s is fully transparent", name)
	}

	n := float64(opaque)
	bs.blades = append(bs.blades, bladeSprite{
		img: ebiten.NewImageFromImage(keyed),
		w:   w,
		h:   h,
		avg: Color{R: sumR / n, G: sumG / n, B: sumB / n, A: 1},
	})
	return nil
}

// Count returns the number of loaded blade variants.
func (bs *BladeSet) Count() int {
	return len(bs.blades)
}

// AverageColor returns the precomputed mean color of the given variant.
func (bs *BladeSet) AverageColor(variant int) Color {
	return bs.blades[variant].avg
}

// renderBlade composites one blade centered at (x, y) on dst. rotation
// is in degrees; the blade darkens toward shadeAmount as |rotation|
// approaches 90. A scale in (0, 1) marks an actively burning blade:
// the sprite shrinks and its opaque pixels are recolored toward a burn
// tint derived from avg and the inverse scale.
func (bs *BladeSet) renderBlade(dst *ebiten.Image, variant int, x, y, rotation, scale float64, avg Color, shadeAmount float64) {
	if scale <= 0 {
		return
	}
	blade := &bs.blades[variant]

	src := blade.img
	if scale < 1 {
		src = bs.burnRecolor(blade, avg, scale)
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-float64(blade.w)/2, -float64(blade.h)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(-rotation * math.Pi / 180)
	op.GeoM.Translate(x, y)

	shade := shadeAmount / 255 * math.Min(1, math.Abs(rotation)/90)
	k := float32(1 - shade)
	op.ColorScale.Scale(k, k, k, 1)
	op.Filter = ebiten.FilterNearest

	dst.DrawImage(src, &op)
}

// burnRecolor returns the blade sprite with every opaque pixel replaced
// by the burn tint. The tint pushes the average color toward red and
// brightens as the blade shrinks, clamped to the valid range.
func (bs *BladeSet) burnRecolor(blade *bladeSprite, avg Color, scale float64) *ebiten.Image {
	if blade.scratch == nil {
		blade.scratch = ebiten.NewImage(blade.w, blade.h)
	}
	blade.scratch.Clear()
	blade.scratch.DrawImage(blade.img, nil)

	tintR := clamp01(avg.R * 1.8 * (6 / scale))
	tintG := clamp01(avg.G * (1 / scale))
	tintB := clamp01(avg.B * (1 / scale))

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(blade.w), float64(blade.h))
	op.ColorScale.Scale(float32(tintR), float32(tintG), float32(tintB), 1)
	op.Blend = recolorBlend
	blade.scratch.DrawImage(whitePixel, &op)

	return blade.scratch
}
