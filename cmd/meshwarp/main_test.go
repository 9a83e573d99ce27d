package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/meshwarp"
)

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}
	if err := meshwarp.SaveImage(path, img); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadJobFormats(t *testing.T) {
	dir := t.TempDir()
	yamlJob := filepath.Join(dir, "job.yaml")
	writeFile(t, yamlJob, `input: in.png
output: out.png
precision: 4
warp:
  mode: rigid
  original: [[1, 2], [3, 4]]
  transformed: [[2, 2], [4, 5]]
`)
	tomlJob := filepath.Join(dir, "job.toml")
	writeFile(t, tomlJob, `input = "in.png"
output = "out.png"
precision = 4

[warp]
mode = "rigid"
original = [[1.0, 2.0], [3.0, 4.0]]
transformed = [[2.0, 2.0], [4.0, 5.0]]
`)

	for _, path := range []string{yamlJob, tomlJob} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			job, err := loadJob(path)
			if err != nil {
				t.Fatalf("loadJob: %v", err)
			}
			if job.Input != filepath.Join(dir, "in.png") {
				t.Errorf("Input = %q, want it resolved against the job directory", job.Input)
			}
			if job.Kind() != "warp" || job.Precision != 4 || job.Warp.Mode != "rigid" {
				t.Errorf("job = %+v", job)
			}
			if got := points(job.Warp.Transformed); len(got) != 2 || got[1] != meshwarp.Pt(4, 5) {
				t.Errorf("transformed = %v", got)
			}
		})
	}
}

func TestLoadJobInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, file, content string
		want                error
	}{
		{"no kind", "a.yaml", "input: a.png\noutput: b.png\n", errJobKind},
		{"two kinds", "b.yaml", "input: a.png\noutput: b.png\ncage: {}\nwarp: {}\n", errJobKind},
		{"bad preview", "c.yaml", "input: a.png\noutput: b.png\npreview: 2\nwarp: {}\n", errJobPreview},
		{"bad extension", "d.json", "{}", errJobFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)
			if _, err := loadJob(path); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func runApply(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"apply"}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("apply %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestApplyJobs(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, "in.png"), 48, 48)

	tests := []struct {
		name string
		job  string
		args []string
		want image.Rectangle
	}{
		{
			name: "warp",
			job: `input: in.png
output: warp.png
warp:
  original: [[10, 10]]
  transformed: [[14, 12]]
`,
			want: image.Rect(0, 0, 48, 48),
		},
		{
			name: "cage",
			job: `input: in.png
output: cage.png
cage:
  original: [[8, 8], [40, 8], [40, 40], [8, 40]]
  transformed: [[4, 8], [44, 8], [40, 40], [8, 40]]
`,
			want: image.Rect(0, 0, 48, 48),
		},
		{
			name: "liquify",
			job: `input: in.png
output: liquify.png
liquify:
  save: state.yaml
  strokes:
    - {op: translate, at: [24, 24], offset: [4, 0], sigma: 6}
    - {op: rotate, at: [24, 24], amount: 0.3, sigma: 6, wash: true, flow: 0.5}
`,
			want: image.Rect(0, 0, 48, 48),
		},
		{
			name: "warp preview",
			job: `input: in.png
output: preview.png
warp:
  original: [[10, 10]]
  transformed: [[18, 10]]
`,
			args: []string{"--preview", "0.5"},
			want: image.Rect(4, 0, 27, 23),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobPath := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			writeFile(t, jobPath, tt.job)
			out := runApply(t, append(tt.args, jobPath)...)
			if !strings.Contains(out, "wrote") {
				t.Errorf("summary = %q", out)
			}

			job, err := loadJob(jobPath)
			if err != nil {
				t.Fatal(err)
			}
			img, err := meshwarp.LoadImage(job.Output)
			if err != nil {
				t.Fatalf("output not readable: %v", err)
			}
			if got := img.Bounds().Size(); got != tt.want.Size() {
				t.Errorf("output size = %v, want %v", got, tt.want.Size())
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "state.yaml")); err != nil {
		t.Errorf("liquify state not saved: %v", err)
	}
}

func TestApplyVerboseLogs(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, "in.png"), 16, 16)
	jobPath := filepath.Join(dir, "job.yaml")
	writeFile(t, jobPath, `input: in.png
output: out.png
liquify:
  strokes:
    - {op: scale, at: [8, 8], amount: 0.2, sigma: 3}
`)
	out := runApply(t, "--verbose", jobPath)
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("verbose output has no debug records: %q", out)
	}
	if meshwarp.Logger().Enabled(t.Context(), 0) {
		t.Error("logger not restored after the command")
	}
}
