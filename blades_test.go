package sward

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"
)

// solidBlade returns a w×h image whose left half is pure black (the
// colorkey) and whose right half is the given color.
func solidBlade(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoadBladesLexicographicOrder(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	// Deliberately inserted out of order; ReadDir + sort must fix it.
	fsys := fstest.MapFS{
		"grass/c_blue.png":  {Data: encodePNG(t, solidBlade(4, 8, blue))},
		"grass/a_red.png":   {Data: encodePNG(t, solidBlade(4, 8, red))},
		"grass/b_green.png": {Data: encodePNG(t, solidBlade(4, 8, green))},
	}

	bs, err := LoadBlades(fsys, "grass")
	if err != nil {
		t.Fatalf("LoadBlades: %v", err)
	}
	if bs.Count() != 3 {
		t.Fatalf("Count = %d, want 3", bs.Count())
	}

	tests := []struct {
		variant int
		channel string
		want    float64
	}{
		{0, "R", 1}, // a_red
		{1, "G", 1}, // b_green
		{2, "B", 1}, // c_blue
	}
	for _, tt := range tests {
		avg := bs.AverageColor(tt.variant)
		var got float64
		switch tt.channel {
		case "R":
			got = avg.R
		case "G":
			got = avg.G
		case "B":
			got = avg.B
		}
		if !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("variant %d: %s = %v, want %v", tt.variant, tt.channel, got, tt.want)
		}
	}
}

func TestAverageColorIgnoresColorkey(t *testing.T) {
	// Half the pixels are colorkey black; they must not drag the mean down.
	img := solidBlade(8, 8, color.RGBA{100, 200, 50, 255})
	bs, err := NewBladeSet([]image.Image{img})
	if err != nil {
		t.Fatalf("NewBladeSet: %v", err)
	}
	avg := bs.AverageColor(0)
	if !approxEqual(avg.R, 100.0/255, 1e-9) ||
		!approxEqual(avg.G, 200.0/255, 1e-9) ||
		!approxEqual(avg.B, 50.0/255, 1e-9) {
		t.Errorf("AverageColor = %+v, want (100,200,50)/255", avg)
	}
}

func TestAverageColorMixesOpaquePixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})
	bs, err := NewBladeSet([]image.Image{img})
	if err != nil {
		t.Fatalf("NewBladeSet: %v", err)
	}
	avg := bs.AverageColor(0)
	if !approxEqual(avg.R, 0.5, 1e-9) || !approxEqual(avg.B, 0.5, 1e-9) {
		t.Errorf("AverageColor = %+v, want R and B at 0.5", avg)
	}
}

func TestFullyTransparentSpriteIsError(t *testing.T) {
	blank := image.NewRGBA(image.Rect(0, 0, 4, 4)) // all colorkey
	_, err := NewBladeSet([]image.Image{solidBlade(4, 4, color.RGBA{0, 255, 0, 255}), blank})
	if err == nil {
		t.Fatal("expected error for fully transparent sprite")
	}
	if !strings.Contains(err.Error(), "blade 1") {
		t.Errorf("error %q should identify the offending sprite", err)
	}
}

func TestLoadBladesMissingDir(t *testing.T) {
	_, err := LoadBlades(fstest.MapFS{}, "grass")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
