package meshwarp

import (
	"image"
	"image/color"
	"testing"
)

// patternColor is opaque and distinct for every pixel of a 128x128 area.
func patternColor(x, y int) color.RGBA {
	return color.RGBA{R: uint8(x * 2), G: uint8(y * 2), B: uint8((x + y) % 256), A: 255}
}

func patternSurface(r image.Rectangle) *Surface {
	s := NewSurface(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.SetRGBA(x, y, patternColor(x, y))
		}
	}
	return s
}

func patternBitmap(t *testing.T, w, h int) *Bitmap {
	t.Helper()
	b, err := NewBitmap(w, h, FormatARGB32)
	if err != nil {
		t.Fatal(err)
	}
	for y := range h {
		for x := range w {
			if err := b.SetRGBA(x, y, patternColor(x, y)); err != nil {
				t.Fatal(err)
			}
		}
	}
	return b
}

func squareCage(lo, hi float64) Polygon {
	return Polygon{Pt(lo, lo), Pt(hi, lo), Pt(hi, hi), Pt(lo, hi)}
}

func scalePolygon(pg Polygon, k float64) Polygon {
	return Polygon(mapPoints(Scale(k, k), pg))
}
