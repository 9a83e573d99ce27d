// Package image provides the raster collaborators of the deformation
// engine: Bitmap, a fixed-format pixel buffer with a placement offset, and
// Surface, a bounded premultiplied RGBA raster with sub-pixel sampling.
package image

import (
	"errors"
	"image"
	"image/color"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// Bitmap is a 2-D pixel buffer placed at an offset in image space.
//
// Coordinates passed to the pixel accessors are local: (0, 0) is the
// top-left pixel regardless of the offset. A zero-sized Bitmap is valid and
// reports IsEmpty.
type Bitmap struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
	offset image.Point
}

// NewBitmap creates a transparent bitmap with the given dimensions and format.
func NewBitmap(width, height int, format Format) (*Bitmap, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	stride := format.RowBytes(width)
	return &Bitmap{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone creates a deep copy of the bitmap, offset included.
func (b *Bitmap) Clone() *Bitmap {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	c := *b
	c.data = data
	return &c
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *Bitmap) Format() Format {
	return b.format
}

// Data returns the raw pixel data slice.
func (b *Bitmap) Data() []byte {
	return b.data
}

// IsEmpty reports whether the bitmap has no pixels.
func (b *Bitmap) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

// Offset returns the image-space position of the top-left pixel.
func (b *Bitmap) Offset() image.Point {
	return b.offset
}

// SetOffset moves the bitmap to p in image space.
func (b *Bitmap) SetOffset(p image.Point) {
	b.offset = p
}

// Rect returns the local pixel rectangle (0, 0, width, height).
func (b *Bitmap) Rect() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Placement returns the rectangle the bitmap covers in image space.
func (b *Bitmap) Placement() image.Rectangle {
	return b.Rect().Add(b.offset)
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Bitmap) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// RGBAAt returns the premultiplied color of pixel (x, y). Out-of-bounds
// pixels are transparent.
func (b *Bitmap) RGBAAt(x, y int) color.RGBA {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return color.RGBA{}
	}
	p := b.data[off:]
	switch b.format {
	case FormatARGB32:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	case FormatRGBA8:
		return premultiply(p[0], p[1], p[2], p[3])
	case FormatGray8:
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}
	default:
		return color.RGBA{}
	}
}

// SetRGBA sets pixel (x, y) from a premultiplied color.
// Returns ErrOutOfBounds if coordinates are outside the bitmap.
func (b *Bitmap) SetRGBA(x, y int, c color.RGBA) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	p := b.data[off:]
	switch b.format {
	case FormatARGB32:
		p[0], p[1], p[2], p[3] = c.B, c.G, c.R, c.A
	case FormatRGBA8:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		p[0], p[1], p[2], p[3] = n.R, n.G, n.B, n.A
	case FormatGray8:
		p[0] = color.GrayModel.Convert(c).(color.Gray).Y
	}
	return nil
}

// CopyPixel copies pixel (sx, sy) of src into (x, y). Both bitmaps must
// share a format; pixels outside either bitmap are left untouched.
func (b *Bitmap) CopyPixel(x, y int, src *Bitmap, sx, sy int) {
	dOff := b.PixelOffset(x, y)
	sOff := src.PixelOffset(sx, sy)
	if dOff < 0 || sOff < 0 || src.format != b.format {
		return
	}
	bpp := b.format.BytesPerPixel()
	copy(b.data[dOff:dOff+bpp], src.data[sOff:sOff+bpp])
}

// Clear sets all pixels to zero (transparent black for formats with alpha).
func (b *Bitmap) Clear() {
	clear(b.data)
}

// Fill sets all pixels to c.
func (b *Bitmap) Fill(c color.RGBA) {
	for y := range b.height {
		for x := range b.width {
			_ = b.SetRGBA(x, y, c)
		}
	}
}

// ClearMask erases pixels proportionally to the coverage of mask. The
// mask rectangle is expressed in image space, like Placement.
func (b *Bitmap) ClearMask(mask *image.Alpha) {
	r := mask.Rect.Intersect(b.Placement())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := mask.AlphaAt(x, y).A
			if cov == 0 {
				continue
			}
			lx, ly := x-b.offset.X, y-b.offset.Y
			_ = b.SetRGBA(lx, ly, scaleRGBA(b.RGBAAt(lx, ly), 255-cov))
		}
	}
}

// DrawOver composites src over the bitmap using source-over, aligning both
// bitmaps by their offsets.
func (b *Bitmap) DrawOver(src *Bitmap) {
	r := src.Placement().Intersect(b.Placement())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.RGBAAt(x-src.offset.X, y-src.offset.Y)
			if s.A == 0 {
				continue
			}
			lx, ly := x-b.offset.X, y-b.offset.Y
			_ = b.SetRGBA(lx, ly, over(s, b.RGBAAt(lx, ly)))
		}
	}
}
