package meshwarp

import "github.com/gogpu/meshwarp/internal/mls"

// WarpMode selects the moving-least-squares family used by WarpWorker.
type WarpMode = mls.Mode

// Warp modes.
const (
	// WarpAffine allows any affine transform, including shear.
	WarpAffine = mls.Affine

	// WarpSimilitude allows rotation, uniform scale and translation.
	WarpSimilitude = mls.Similitude

	// WarpRigid allows only rotation and translation.
	WarpRigid = mls.Rigid
)

// ParseWarpMode parses "affine", "similitude" (or "similarity") and
// "rigid".
func ParseWarpMode(s string) (WarpMode, error) {
	return mls.ParseMode(s)
}

// Default option values.
const (
	// DefaultPrecision is the grid spacing, in pixels, used by cage and
	// liquify workers and by warp bitmap previews.
	DefaultPrecision = 8

	// DefaultAlpha is the default warp weight exponent.
	DefaultAlpha = 1.0
)

// Option configures a worker during creation.
// Use functional options to customize worker behavior.
//
// Example:
//
//	// Default grid spacing of 8 pixels
//	w, _ := meshwarp.NewCageWorker(cage)
//
//	// Finer grid with progress reporting
//	w, _ := meshwarp.NewCageWorker(cage,
//	    meshwarp.WithPrecision(4),
//	    meshwarp.WithProgress(meshwarp.ProgressFunc(func(p int) { fmt.Println(p) })))
type Option func(*options)

// options holds optional configuration for worker creation.
type options struct {
	precision int
	progress  Progress
	alpha     float64
	mode      WarpMode
}

// defaultOptions returns the default worker options. A zero precision
// means the worker picks its own default.
func defaultOptions() options {
	return options{
		precision: 0,
		progress:  nil, // Replaced by a no-op reporter if nil
		alpha:     DefaultAlpha,
		mode:      WarpAffine,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.progress == nil {
		o.progress = nopProgress{}
	}
	return o
}

// precisionOr returns the configured precision or def when none was set.
func (o options) precisionOr(def int) int {
	if o.precision == 0 {
		return def
	}
	return o.precision
}

// WithPrecision sets the grid spacing in pixels. It must be a positive
// power of two; invalid values are reported by the worker constructor.
//
// Example:
//
//	w, err := meshwarp.NewLiquifyWorker(bounds, meshwarp.WithPrecision(16))
func WithPrecision(p int) Option {
	return func(o *options) {
		o.precision = p
	}
}

// WithProgress sets the receiver of progress updates.
func WithProgress(p Progress) Option {
	return func(o *options) {
		o.progress = p
	}
}

// WithAlpha sets the warp weight exponent. Larger values make control
// points more local.
func WithAlpha(alpha float64) Option {
	return func(o *options) {
		o.alpha = alpha
	}
}

// WithWarpMode sets the warp transform family.
func WithWarpMode(m WarpMode) Option {
	return func(o *options) {
		o.mode = m
	}
}
