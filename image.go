package meshwarp

import (
	"image"

	"github.com/gogpu/meshwarp/internal/geom"
	intImage "github.com/gogpu/meshwarp/internal/image"
)

// Surface is a bounded premultiplied RGBA raster with an origin offset.
// Workers rewrite a surface in place.
type Surface = intImage.Surface

// Bitmap is a preview raster with a placement offset.
type Bitmap = intImage.Bitmap

// Format is a bitmap pixel layout.
type Format = intImage.Format

// Bitmap formats.
const (
	// FormatARGB32 is 32-bit premultiplied ARGB stored as B, G, R, A bytes.
	// Bitmap runs require it.
	FormatARGB32 = intImage.FormatARGB32

	// FormatRGBA8 is 8-bit straight-alpha RGBA.
	FormatRGBA8 = intImage.FormatRGBA8

	// FormatGray8 is 8-bit grayscale.
	FormatGray8 = intImage.FormatGray8
)

// NewSurface allocates a transparent surface covering r.
func NewSurface(r image.Rectangle) *Surface {
	return intImage.NewSurface(r)
}

// NewBitmap allocates a transparent bitmap placed at the origin.
func NewBitmap(width, height int, format Format) (*Bitmap, error) {
	return intImage.NewBitmap(width, height, format)
}

// SurfaceFromImage copies img into a new surface with the same bounds.
func SurfaceFromImage(img image.Image) *Surface {
	return intImage.SurfaceFromImage(img)
}

// BitmapFromImage copies img into a new ARGB32 bitmap placed at the
// image's bounds origin.
func BitmapFromImage(img image.Image) *Bitmap {
	return intImage.BitmapFromImage(img)
}

// LoadImage decodes a PNG or JPEG file.
func LoadImage(path string) (image.Image, error) {
	return intImage.Load(path)
}

// SaveImage encodes img as PNG or JPEG depending on the file extension.
func SaveImage(path string, img image.Image) error {
	return intImage.Save(path, img)
}

func checkBitmap(b *Bitmap) error {
	if b == nil || b.IsEmpty() {
		return ErrEmptyBitmap
	}
	if b.Format() != FormatARGB32 {
		return ErrBitmapFormat
	}
	return nil
}

// newResultBitmap allocates the destination of a bitmap run: a transparent
// ARGB32 bitmap covering src's placement united with the bounds of the
// deformed points, placed at that rectangle's origin.
func newResultBitmap(src *Bitmap, transformed []Point, unionSource bool) (*Bitmap, error) {
	bounds := geom.BoundsOf(transformed).Aligned()
	if unionSource {
		bounds = bounds.Union(src.Placement())
	}
	dst, err := intImage.NewBitmap(bounds.Dx(), bounds.Dy(), FormatARGB32)
	if err != nil {
		return nil, err
	}
	dst.SetOffset(bounds.Min)
	return dst, nil
}
