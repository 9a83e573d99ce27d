package image

import (
	"image"
	"image/color"
	"math"
)

// InterpolationMode defines how sub-pixel sampling is performed.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest pixel (no interpolation).
	InterpNearest InterpolationMode = iota

	// InterpBilinear performs linear interpolation between 4 neighboring pixels.
	InterpBilinear
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// Sample reads the surface at the sub-pixel position (x, y). Pixel (i, j)
// is located exactly at integer coordinates; neighbours outside the
// surface contribute transparent black.
func Sample(s *Surface, x, y float64, mode InterpolationMode) color.RGBA {
	switch mode {
	case InterpNearest:
		return SampleNearest(s, x, y)
	case InterpBilinear:
		return SampleBilinear(s, x, y)
	default:
		return color.RGBA{}
	}
}

// SampleNearest returns the pixel nearest to (x, y).
func SampleNearest(s *Surface, x, y float64) color.RGBA {
	return s.RGBAAt(int(math.Round(x)), int(math.Round(y)))
}

// SampleBilinear interpolates the four pixels surrounding (x, y) in
// premultiplied space.
func SampleBilinear(s *Surface, x, y float64) color.RGBA {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	tx := x - x0
	ty := y - y0
	ix, iy := int(x0), int(y0)

	c00 := s.RGBAAt(ix, iy)
	c10 := s.RGBAAt(ix+1, iy)
	c01 := s.RGBAAt(ix, iy+1)
	c11 := s.RGBAAt(ix+1, iy+1)

	return color.RGBA{
		R: channel(c00.R, c10.R, c01.R, c11.R, tx, ty),
		G: channel(c00.G, c10.G, c01.G, c11.G, tx, ty),
		B: channel(c00.B, c10.B, c01.B, c11.B, tx, ty),
		A: channel(c00.A, c10.A, c01.A, c11.A, tx, ty),
	}
}

// ClampedPixel returns the pixel of b nearest to (x, y), clamped into the
// bitmap rectangle. b must not be empty.
func ClampedPixel(b *Bitmap, x, y float64) image.Point {
	return image.Point{
		X: clamp(int(math.Round(x)), 0, b.width-1),
		Y: clamp(int(math.Round(y)), 0, b.height-1),
	}
}

func channel(v00, v10, v01, v11 uint8, tx, ty float64) uint8 {
	v := lerp2D(float64(v00), float64(v10), float64(v01), float64(v11), tx, ty)
	return uint8(clampFloat(math.Round(v), 0, 255))
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float64 value to [minVal, maxVal].
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}
