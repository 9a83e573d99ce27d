package image

// Format specifies the pixel layout of a Bitmap.
type Format uint8

const (
	// FormatARGB32 is 32-bit premultiplied ARGB stored little-endian, so the
	// bytes of a pixel are B, G, R, A. It is the only format the deformation
	// drivers accept.
	FormatARGB32 Format = iota

	// FormatRGBA8 is 8-bit RGBA with straight alpha.
	FormatRGBA8

	// FormatGray8 is 8-bit grayscale without alpha.
	FormatGray8

	// formatCount is the number of formats (for validation).
	formatCount
)

// FormatInfo describes the byte layout of a format.
type FormatInfo struct {
	BytesPerPixel   int
	HasAlpha        bool
	IsPremultiplied bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatARGB32: {BytesPerPixel: 4, HasAlpha: true, IsPremultiplied: true},
	FormatRGBA8:  {BytesPerPixel: 4, HasAlpha: true},
	FormatGray8:  {BytesPerPixel: 1},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatARGB32:
		return "ARGB32"
	case FormatRGBA8:
		return "RGBA8"
	case FormatGray8:
		return "Gray8"
	default:
		return "Unknown"
	}
}
