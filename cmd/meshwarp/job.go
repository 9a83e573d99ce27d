package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/meshwarp"
)

// Job describes one deformation run.
type Job struct {
	Input     string  `yaml:"input" toml:"input"`
	Output    string  `yaml:"output" toml:"output"`
	Precision int     `yaml:"precision" toml:"precision"`
	Preview   float64 `yaml:"preview" toml:"preview"`

	Cage    *CageJob    `yaml:"cage" toml:"cage"`
	Liquify *LiquifyJob `yaml:"liquify" toml:"liquify"`
	Warp    *WarpJob    `yaml:"warp" toml:"warp"`
}

// CageJob moves the vertices of Original to Transformed.
type CageJob struct {
	Original    [][2]float64 `yaml:"original" toml:"original"`
	Transformed [][2]float64 `yaml:"transformed" toml:"transformed"`
}

// LiquifyJob replays brush strokes, optionally on top of a saved state.
type LiquifyJob struct {
	Load    string   `yaml:"load" toml:"load"`
	Save    string   `yaml:"save" toml:"save"`
	Strokes []Stroke `yaml:"strokes" toml:"strokes"`
}

// Stroke is one brush dab. Op is translate, scale, rotate or undo.
type Stroke struct {
	Op     string     `yaml:"op" toml:"op"`
	At     [2]float64 `yaml:"at" toml:"at"`
	Offset [2]float64 `yaml:"offset" toml:"offset"`
	Amount float64    `yaml:"amount" toml:"amount"`
	Sigma  float64    `yaml:"sigma" toml:"sigma"`
	Wash   bool       `yaml:"wash" toml:"wash"`
	Flow   float64    `yaml:"flow" toml:"flow"`
}

// WarpJob maps each Original control point onto its Transformed one.
type WarpJob struct {
	Mode        string       `yaml:"mode" toml:"mode"`
	Alpha       float64      `yaml:"alpha" toml:"alpha"`
	Original    [][2]float64 `yaml:"original" toml:"original"`
	Transformed [][2]float64 `yaml:"transformed" toml:"transformed"`
}

var (
	errJobKind    = errors.New("job must contain exactly one of cage, liquify or warp")
	errJobFormat  = errors.New("job file must end in .yaml, .yml or .toml")
	errJobPreview = errors.New("preview scale must be in (0, 1)")
)

func loadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	job := &Job{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, job)
	case ".toml":
		err = toml.Unmarshal(data, job)
	default:
		return nil, errJobFormat
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	job.Input = resolve(dir, job.Input)
	job.Output = resolve(dir, job.Output)
	if job.Liquify != nil {
		job.Liquify.Load = resolve(dir, job.Liquify.Load)
		job.Liquify.Save = resolve(dir, job.Liquify.Save)
	}
	return job, job.validate()
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (j *Job) validate() error {
	n := 0
	for _, set := range []bool{j.Cage != nil, j.Liquify != nil, j.Warp != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return errJobKind
	}
	if j.Input == "" || j.Output == "" {
		return errors.New("job needs input and output paths")
	}
	if j.Preview != 0 && (j.Preview <= 0 || j.Preview >= 1) {
		return errJobPreview
	}
	return nil
}

// Kind names the deformation the job runs.
func (j *Job) Kind() string {
	switch {
	case j.Cage != nil:
		return "cage"
	case j.Liquify != nil:
		return "liquify"
	default:
		return "warp"
	}
}

func (j *Job) options() []meshwarp.Option {
	if j.Precision == 0 {
		return nil
	}
	return []meshwarp.Option{meshwarp.WithPrecision(j.Precision)}
}

func points(pairs [][2]float64) []meshwarp.Point {
	out := make([]meshwarp.Point, len(pairs))
	for i, p := range pairs {
		out[i] = meshwarp.Pt(p[0], p[1])
	}
	return out
}
