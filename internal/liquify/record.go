package liquify

import (
	"errors"
	"fmt"
	"image"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/meshwarp/internal/geom"
	"github.com/gogpu/meshwarp/internal/grid"
)

// ErrInconsistentState is returned when a record's grid size or point
// counts do not match its bounds and precision.
var ErrInconsistentState = errors.New("liquify: inconsistent persisted state")

// Default bounds and precision of the state substituted for a rejected
// record.
var (
	DefaultBounds    = image.Rect(0, 0, 1024, 1024)
	DefaultPrecision = 8
)

// Record is the persisted form of a State.
type Record struct {
	Bounds      RectRecord    `yaml:"bounds"`
	Precision   int           `yaml:"precision"`
	GridSize    SizeRecord    `yaml:"grid_size"`
	Original    []PointRecord `yaml:"original_points,flow"`
	Transformed []PointRecord `yaml:"transformed_points,flow"`
}

// RectRecord stores a pixel rectangle as origin and size.
type RectRecord struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SizeRecord stores a grid size.
type SizeRecord struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PointRecord stores a point as an (x, y) pair.
type PointRecord [2]float64

func toPointRecords(pts []geom.Point) []PointRecord {
	out := make([]PointRecord, len(pts))
	for i, p := range pts {
		out[i] = PointRecord{p.X, p.Y}
	}
	return out
}

func fromPointRecords(recs []PointRecord) []geom.Point {
	out := make([]geom.Point, len(recs))
	for i, r := range recs {
		out[i] = geom.Pt(r[0], r[1])
	}
	return out
}

// Record returns the persisted form of s.
func (s *State) Record() Record {
	return Record{
		Bounds: RectRecord{
			X: s.bounds.Min.X, Y: s.bounds.Min.Y,
			Width: s.bounds.Dx(), Height: s.bounds.Dy(),
		},
		Precision:   s.precision,
		GridSize:    SizeRecord{Width: s.size.Width, Height: s.size.Height},
		Original:    toPointRecords(s.original),
		Transformed: toPointRecords(s.transformed),
	}
}

// FromRecord restores a state. A record whose grid size or point counts
// disagree with its bounds and precision is rejected: the returned state is
// then a fresh one over DefaultBounds and the error wraps
// ErrInconsistentState.
func FromRecord(rec Record) (*State, error) {
	bounds := image.Rect(rec.Bounds.X, rec.Bounds.Y, rec.Bounds.X+rec.Bounds.Width, rec.Bounds.Y+rec.Bounds.Height)
	if err := rec.validate(bounds); err != nil {
		fresh, ferr := New(DefaultBounds, DefaultPrecision)
		if ferr != nil {
			return nil, ferr
		}
		return fresh, fmt.Errorf("%w: %v", ErrInconsistentState, err)
	}
	return &State{
		bounds:      bounds,
		precision:   rec.Precision,
		size:        grid.Size{Width: rec.GridSize.Width, Height: rec.GridSize.Height},
		original:    fromPointRecords(rec.Original),
		transformed: fromPointRecords(rec.Transformed),
	}, nil
}

func (rec Record) validate(bounds image.Rectangle) error {
	if !grid.ValidPrecision(rec.Precision) {
		return grid.ErrInvalidPrecision
	}
	want := grid.CalcSize(bounds, rec.Precision)
	if want != (grid.Size{Width: rec.GridSize.Width, Height: rec.GridSize.Height}) {
		return fmt.Errorf("grid size %dx%d, bounds give %dx%d",
			rec.GridSize.Width, rec.GridSize.Height, want.Width, want.Height)
	}
	if len(rec.Original) != want.Len() || len(rec.Transformed) != want.Len() {
		return fmt.Errorf("%d original and %d transformed points for %d grid points",
			len(rec.Original), len(rec.Transformed), want.Len())
	}
	return nil
}

// Marshal encodes s as YAML.
func (s *State) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s.Record())
	if err != nil {
		return nil, fmt.Errorf("liquify: encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a YAML record produced by Marshal. Decoding errors
// return a nil state; inconsistent records behave like FromRecord.
func Unmarshal(data []byte) (*State, error) {
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("liquify: decode: %w", err)
	}
	return FromRecord(rec)
}
