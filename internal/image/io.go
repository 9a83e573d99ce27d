package image

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file extension is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")
)

// Decode decodes a PNG or JPEG image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// Load reads and decodes the image stored at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Save encodes img to path, choosing PNG or JPEG from the extension.
func Save(path string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("image: encode: %w", err)
	}
	return f.Close()
}

// SurfaceFromImage copies img into a new surface covering img.Bounds().
func SurfaceFromImage(img image.Image) *Surface {
	rgba := clone.AsRGBA(img)
	s := NewSurface(rgba.Rect)
	for y := range rgba.Rect.Dy() {
		copy(s.pix[y*s.stride:(y+1)*s.stride], rgba.Pix[y*rgba.Stride:])
	}
	return s
}

// RGBA returns a copy of the surface as an *image.RGBA.
func (s *Surface) RGBA() *image.RGBA {
	out := image.NewRGBA(s.rect)
	for y := range s.rect.Dy() {
		copy(out.Pix[y*out.Stride:], s.pix[y*s.stride:(y+1)*s.stride])
	}
	return out
}

// BitmapFromImage converts img into an ARGB32 bitmap placed at
// img.Bounds().Min.
func BitmapFromImage(img image.Image) *Bitmap {
	rgba := clone.AsRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	b, _ := NewBitmap(w, h, FormatARGB32)
	b.offset = rgba.Rect.Min
	for y := range h {
		src := rgba.Pix[y*rgba.Stride:]
		dst := b.data[y*b.stride:]
		for x := range w {
			o := x * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = src[o+2], src[o+1], src[o], src[o+3]
		}
	}
	return b
}

// RGBA returns a copy of the bitmap as an *image.RGBA covering Placement.
func (b *Bitmap) RGBA() *image.RGBA {
	out := image.NewRGBA(b.Placement())
	for y := range b.height {
		for x := range b.width {
			c := b.RGBAAt(x, y)
			o := y*out.Stride + x*4
			out.Pix[o], out.Pix[o+1], out.Pix[o+2], out.Pix[o+3] = c.R, c.G, c.B, c.A
		}
	}
	return out
}
