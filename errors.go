package meshwarp

import (
	"errors"

	"github.com/gogpu/meshwarp/internal/cage"
	"github.com/gogpu/meshwarp/internal/grid"
	intImage "github.com/gogpu/meshwarp/internal/image"
	"github.com/gogpu/meshwarp/internal/liquify"
	"github.com/gogpu/meshwarp/internal/mls"
)

// Errors returned by the workers. Errors from lower layers are wrapped, so
// compare with errors.Is.
var (
	// ErrCageTooSmall is returned when a cage has fewer than three vertices.
	ErrCageTooSmall = cage.ErrCageTooSmall

	// ErrCageSizeMismatch is returned when the transformed cage does not
	// have as many vertices as the original cage.
	ErrCageSizeMismatch = cage.ErrCageSizeMismatch

	// ErrNotPrepared is returned when a cage worker runs before Prepare or
	// before a transformed cage was set.
	ErrNotPrepared = cage.ErrNotPrepared

	// ErrNaNPoint is returned when the cage transform produced a NaN grid
	// point.
	ErrNaNPoint = cage.ErrNaNPoint

	// ErrInvalidPrecision is returned for a grid precision that is not a
	// positive power of two.
	ErrInvalidPrecision = grid.ErrInvalidPrecision

	// ErrNoControlPoints is returned for a warp without control points.
	ErrNoControlPoints = mls.ErrNoControlPoints

	// ErrControlPointMismatch is returned when a warp has different numbers
	// of original and transformed control points.
	ErrControlPointMismatch = mls.ErrControlPointMismatch

	// ErrInvalidDimensions is returned for negative bitmap dimensions.
	ErrInvalidDimensions = intImage.ErrInvalidDimensions

	// ErrInconsistentState is returned when persisted liquify data does not
	// agree with its own grid description.
	ErrInconsistentState = liquify.ErrInconsistentState

	// ErrBitmapFormat is returned when a bitmap run gets a bitmap that is
	// not FormatARGB32.
	ErrBitmapFormat = errors.New("meshwarp: bitmap must be ARGB32")

	// ErrEmptyBitmap is returned when a bitmap run gets a bitmap without
	// pixels.
	ErrEmptyBitmap = errors.New("meshwarp: empty bitmap")
)
