package image

import (
	"image"
	"image/color"
)

// Surface is a mutable premultiplied RGBA raster covering a fixed
// rectangle of image space. Reads outside the rectangle return transparent
// pixels and writes outside it are dropped.
//
// Surface implements image.Image and draw.Image.
type Surface struct {
	pix    []uint8
	stride int
	rect   image.Rectangle
}

// NewSurface creates a transparent surface covering r.
func NewSurface(r image.Rectangle) *Surface {
	r = r.Canon()
	return &Surface{
		pix:    make([]uint8, 4*r.Dx()*r.Dy()),
		stride: 4 * r.Dx(),
		rect:   r,
	}
}

// Clone returns an independent snapshot of the surface.
func (s *Surface) Clone() *Surface {
	pix := make([]uint8, len(s.pix))
	copy(pix, s.pix)
	return &Surface{pix: pix, stride: s.stride, rect: s.rect}
}

// Bounds returns the rectangle covered by the surface.
func (s *Surface) Bounds() image.Rectangle {
	return s.rect
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model {
	return color.RGBAModel
}

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color {
	return s.RGBAAt(x, y)
}

// Set implements draw.Image.
func (s *Surface) Set(x, y int, c color.Color) {
	s.SetRGBA(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

func (s *Surface) offset(x, y int) int {
	if !(image.Point{X: x, Y: y}).In(s.rect) {
		return -1
	}
	return (y-s.rect.Min.Y)*s.stride + (x-s.rect.Min.X)*4
}

// RGBAAt returns the premultiplied color at (x, y).
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	i := s.offset(x, y)
	if i < 0 {
		return color.RGBA{}
	}
	p := s.pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// SetRGBA writes a premultiplied color at (x, y).
func (s *Surface) SetRGBA(x, y int, c color.RGBA) {
	i := s.offset(x, y)
	if i < 0 {
		return
	}
	p := s.pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Extent returns the bounding rectangle of the non-transparent pixels.
func (s *Surface) Extent() image.Rectangle {
	ext := image.Rectangle{}
	for y := s.rect.Min.Y; y < s.rect.Max.Y; y++ {
		row := s.pix[(y-s.rect.Min.Y)*s.stride:]
		for x := s.rect.Min.X; x < s.rect.Max.X; x++ {
			if row[(x-s.rect.Min.X)*4+3] != 0 {
				ext = ext.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return ext
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	clear(s.pix)
}

// ClearMask erases pixels proportionally to the coverage of mask.
func (s *Surface) ClearMask(mask *image.Alpha) {
	r := mask.Rect.Intersect(s.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if cov := mask.AlphaAt(x, y).A; cov != 0 {
				s.SetRGBA(x, y, scaleRGBA(s.RGBAAt(x, y), 255-cov))
			}
		}
	}
}

// DrawOver composites src over the surface using source-over.
func (s *Surface) DrawOver(src *Surface) {
	r := src.rect.Intersect(s.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := src.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			s.SetRGBA(x, y, over(c, s.RGBAAt(x, y)))
		}
	}
}

// Fill sets every pixel of r to c.
func (s *Surface) Fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(s.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.SetRGBA(x, y, c)
		}
	}
}
