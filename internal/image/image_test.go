package image

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	halfG = color.RGBA{G: 128, A: 128}
)

func TestNewBitmap(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		format  Format
		wantErr error
	}{
		{"argb32", 4, 3, FormatARGB32, nil},
		{"empty", 0, 0, FormatARGB32, nil},
		{"negative", -1, 3, FormatARGB32, ErrInvalidDimensions},
		{"bad format", 4, 3, Format(99), ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBitmap(tt.w, tt.h, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBitmap err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(b.Data()) != tt.w*tt.h*4 {
				t.Errorf("len(Data) = %d, want %d", len(b.Data()), tt.w*tt.h*4)
			}
			if b.IsEmpty() != (tt.w == 0 || tt.h == 0) {
				t.Errorf("IsEmpty = %v", b.IsEmpty())
			}
		})
	}
}

func TestBitmapByteOrder(t *testing.T) {
	b, _ := NewBitmap(2, 2, FormatARGB32)
	if err := b.SetRGBA(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 4}); err != nil {
		t.Fatal(err)
	}
	got := b.Data()[4:8]
	want := []byte{3, 2, 1, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pixel bytes = %v, want %v", got, want)
		}
	}
	if err := b.SetRGBA(2, 0, red); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetRGBA outside err = %v, want ErrOutOfBounds", err)
	}
	if c := b.RGBAAt(-1, 0); c != (color.RGBA{}) {
		t.Errorf("RGBAAt outside = %v, want transparent", c)
	}
}

func TestBitmapStraightAlpha(t *testing.T) {
	b, _ := NewBitmap(1, 1, FormatRGBA8)
	_ = b.SetRGBA(0, 0, halfG)
	if b.Data()[1] != 255 || b.Data()[3] != 128 {
		t.Errorf("straight bytes = %v, want G=255 A=128", b.Data())
	}
	if c := b.RGBAAt(0, 0); c != halfG {
		t.Errorf("RGBAAt = %v, want %v", c, halfG)
	}
}

func TestBitmapCopyPixel(t *testing.T) {
	src, _ := NewBitmap(2, 2, FormatARGB32)
	_ = src.SetRGBA(1, 1, blue)
	dst, _ := NewBitmap(3, 3, FormatARGB32)
	dst.CopyPixel(2, 0, src, 1, 1)
	if c := dst.RGBAAt(2, 0); c != blue {
		t.Errorf("copied pixel = %v, want %v", c, blue)
	}

	other, _ := NewBitmap(3, 3, FormatRGBA8)
	other.CopyPixel(0, 0, src, 1, 1)
	if c := other.RGBAAt(0, 0); c != (color.RGBA{}) {
		t.Errorf("cross-format copy wrote %v", c)
	}
}

func TestBitmapClearAndDraw(t *testing.T) {
	b, _ := NewBitmap(4, 4, FormatARGB32)
	b.SetOffset(image.Pt(10, 10))
	b.Fill(red)

	mask := image.NewAlpha(image.Rect(10, 10, 12, 14))
	for y := 10; y < 14; y++ {
		mask.SetAlpha(10, y, color.Alpha{A: 255})
		mask.SetAlpha(11, y, color.Alpha{A: 128})
	}
	b.ClearMask(mask)
	if c := b.RGBAAt(0, 0); c.A != 0 {
		t.Errorf("fully masked pixel alpha = %d, want 0", c.A)
	}
	if c := b.RGBAAt(1, 0); c.A != 127 {
		t.Errorf("half masked pixel alpha = %d, want 127", c.A)
	}
	if c := b.RGBAAt(2, 0); c != red {
		t.Errorf("unmasked pixel = %v, want %v", c, red)
	}

	top, _ := NewBitmap(1, 1, FormatARGB32)
	top.SetOffset(image.Pt(10, 10))
	top.Fill(blue)
	b.DrawOver(top)
	if c := b.RGBAAt(0, 0); c != blue {
		t.Errorf("composited pixel = %v, want %v", c, blue)
	}
}

func TestSurfaceOrigin(t *testing.T) {
	s := NewSurface(image.Rect(-5, -5, 5, 5))
	s.SetRGBA(-5, -5, red)
	s.SetRGBA(5, 5, red)
	if c := s.RGBAAt(-5, -5); c != red {
		t.Errorf("RGBAAt(-5,-5) = %v, want %v", c, red)
	}
	if c := s.RGBAAt(5, 5); c != (color.RGBA{}) {
		t.Errorf("write outside bounds was kept: %v", c)
	}
	if got, want := s.Extent(), image.Rect(-5, -5, -4, -4); got != want {
		t.Errorf("Extent = %v, want %v", got, want)
	}

	snap := s.Clone()
	s.Clear()
	if snap.RGBAAt(-5, -5) != red {
		t.Error("Clone shares pixels with the original")
	}
	if !s.Extent().Empty() {
		t.Errorf("Extent after Clear = %v, want empty", s.Extent())
	}
}

func TestSampleBilinear(t *testing.T) {
	s := NewSurface(image.Rect(0, 0, 2, 1))
	s.SetRGBA(0, 0, color.RGBA{R: 0, A: 255})
	s.SetRGBA(1, 0, color.RGBA{R: 200, A: 255})

	tests := []struct {
		x, y  float64
		wantR uint8
		wantA uint8
	}{
		{0, 0, 0, 255},
		{1, 0, 200, 255},
		{0.25, 0, 50, 255},
		{0.5, 0.5, 50, 128},
		{-1, 0, 0, 0},
	}
	for _, tt := range tests {
		c := Sample(s, tt.x, tt.y, InterpBilinear)
		if c.R != tt.wantR || c.A != tt.wantA {
			t.Errorf("Sample(%v, %v) = %v, want R=%d A=%d", tt.x, tt.y, c, tt.wantR, tt.wantA)
		}
	}
	if c := Sample(s, 0.6, 0.2, InterpNearest); c.R != 200 {
		t.Errorf("nearest sample = %v, want R=200", c)
	}
}

func TestClampedPixel(t *testing.T) {
	b, _ := NewBitmap(4, 3, FormatARGB32)
	tests := []struct {
		x, y float64
		want image.Point
	}{
		{1.4, 1.6, image.Pt(1, 2)},
		{-3, 1, image.Pt(0, 1)},
		{9, 9, image.Pt(3, 2)},
	}
	for _, tt := range tests {
		if got := ClampedPixel(b, tt.x, tt.y); got != tt.want {
			t.Errorf("ClampedPixel(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSurfaceDrawOver(t *testing.T) {
	dst := NewSurface(image.Rect(0, 0, 2, 2))
	dst.Fill(dst.Bounds(), red)
	src := NewSurface(image.Rect(1, 1, 3, 3))
	src.Fill(src.Bounds(), halfG)
	dst.DrawOver(src)

	if c := dst.RGBAAt(0, 0); c != red {
		t.Errorf("uncovered pixel = %v, want %v", c, red)
	}
	want := color.RGBA{R: 127, G: 128, A: 255}
	if c := dst.RGBAAt(1, 1); c != want {
		t.Errorf("blended pixel = %v, want %v", c, want)
	}
}

func TestImageRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 3, 6, 7))
	img.Set(2, 3, color.NRGBA{R: 255, A: 255})
	img.Set(5, 6, color.NRGBA{B: 255, A: 255})

	s := SurfaceFromImage(img)
	if s.Bounds() != img.Rect {
		t.Fatalf("surface bounds = %v, want %v", s.Bounds(), img.Rect)
	}
	if c := s.RGBAAt(5, 6); c != blue {
		t.Errorf("surface pixel = %v, want %v", c, blue)
	}

	b := BitmapFromImage(img)
	if b.Offset() != img.Rect.Min || b.Format() != FormatARGB32 {
		t.Fatalf("bitmap offset %v format %v", b.Offset(), b.Format())
	}
	if c := b.RGBAAt(0, 0); c != red {
		t.Errorf("bitmap pixel = %v, want %v", c, red)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(path, b.RGBA()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	back := SurfaceFromImage(loaded)
	if c := back.RGBAAt(3, 3); c != blue {
		t.Errorf("reloaded pixel = %v, want %v", c, blue)
	}

	if err := Save(filepath.Join(t.TempDir(), "out.bmp"), img); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save .bmp err = %v, want ErrUnsupportedFormat", err)
	}
}
