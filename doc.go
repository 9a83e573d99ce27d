// Package meshwarp deforms raster images by moving a sampling mesh.
//
// # Overview
//
// meshwarp is a Pure Go image deformation engine. A regular grid of sample
// points is laid over the source pixels, each strategy computes where every
// grid point moves to, and the resampler fills each deformed grid cell by
// mapping destination pixels back into the source cell through a bilinear
// patch.
//
// # Strategies
//
//   - Cage: the user edits a closed polygon around the content. Grid points
//     inside the cage move according to their Green coordinates, so the
//     content follows the cage under rotation, scale and bending.
//   - Liquify: brush strokes push, pull, twirl and restore grid points with
//     a Gaussian falloff around the brush center.
//   - Warp: pairs of control points drive a moving-least-squares transform
//     (affine, similitude or rigid).
//
// # Quick Start
//
//	import "github.com/gogpu/meshwarp"
//
//	src := meshwarp.SurfaceFromImage(img)
//
//	cage := meshwarp.Polygon{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
//	w, err := meshwarp.NewCageWorker(cage)
//	if err != nil {
//	    return err
//	}
//	if err := w.Prepare(src.Extent()); err != nil {
//	    return err
//	}
//	w.SetTransformedCage(moved)
//	if err := w.Run(src); err != nil {
//	    return err
//	}
//
// # Targets
//
// Every worker runs either on a [Surface], the full-resolution premultiplied
// RGBA raster that is rewritten in place, or on a [Bitmap], a 32-bit ARGB
// preview image. Bitmap runs take an image-to-thumbnail [Matrix] so a
// reduced preview can be rendered from full-resolution control data, and
// return a new bitmap together with its placement offset.
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Pixel centers lie on integer coordinates
//
// # Errors
//
// A failed operation never touches its target: all grid points are
// computed before the first pixel is written. Numerical degeneracies
// (collapsed cells, singular systems, cells with no usable neighbours) are
// resolved by documented fallbacks and are not errors.
package meshwarp

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
