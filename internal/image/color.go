package image

import "image/color"

// div255 divides by 255 with rounding.
func div255(v uint32) uint8 {
	return uint8((v + 127) / 255)
}

// premultiply converts a straight-alpha color to premultiplied form.
func premultiply(r, g, b, a uint8) color.RGBA {
	if a == 255 {
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
	a32 := uint32(a)
	return color.RGBA{
		R: div255(uint32(r) * a32),
		G: div255(uint32(g) * a32),
		B: div255(uint32(b) * a32),
		A: a,
	}
}

// scaleRGBA multiplies every channel of a premultiplied color by k/255.
func scaleRGBA(c color.RGBA, k uint8) color.RGBA {
	k32 := uint32(k)
	return color.RGBA{
		R: div255(uint32(c.R) * k32),
		G: div255(uint32(c.G) * k32),
		B: div255(uint32(c.B) * k32),
		A: div255(uint32(c.A) * k32),
	}
}

// over composites premultiplied src over dst.
func over(src, dst color.RGBA) color.RGBA {
	if src.A == 255 {
		return src
	}
	inv := uint32(255 - src.A)
	return color.RGBA{
		R: src.R + div255(uint32(dst.R)*inv),
		G: src.G + div255(uint32(dst.G)*inv),
		B: src.B + div255(uint32(dst.B)*inv),
		A: src.A + div255(uint32(dst.A)*inv),
	}
}
