package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/GoChart"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), err
}

func TestApp_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chartgen version "+gochart.Version)
}

func TestApp_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, cmd := range []string{"render", "validate", "samples", "gallery", "kinds"} {
		assert.Contains(t, out, cmd)
	}
}

func TestApp_Kinds(t *testing.T) {
	out, err := run(t, "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "stacked_bar")
	assert.Contains(t, out, "Box Plot")
	assert.Contains(t, out, "surface_plot")
}

func TestApp_Render(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "bar.html")
	data := filepath.Join(dir, "bar.json")

	stdout, err := run(t, "render", "-k", "bar", "--data", "[5, 15, 25]",
		"--labels", "First,Second,Third", "-o", out, "--data-out", data)
	require.NoError(t, err)
	assert.Contains(t, stdout, out)
	assert.FileExists(t, out)

	raw, err := os.ReadFile(data)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotEmpty(t, doc)
}

func TestApp_RenderFromRequestFile(t *testing.T) {
	dir := t.TempDir()
	reqPath := filepath.Join(dir, "req.yaml")
	require.NoError(t, os.WriteFile(reqPath, []byte(`
kind: heatmap
data: [[1, 2], [3, 4]]
cmap: plasma
`), 0o600))

	out := filepath.Join(dir, "heat.png")
	_, err := run(t, "render", "-r", reqPath, "--title", "Heat", "-o", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestApp_RenderNeedsKind(t *testing.T) {
	_, err := run(t, "render", "--data", "[1, 2]")
	assert.Error(t, err)
}

func TestApp_Validate(t *testing.T) {
	out, err := run(t, "validate", "-k", "pie", "--data", "[1, 2, 3]", "--labels", "a,b,c")
	require.NoError(t, err)
	assert.Contains(t, out, "pie request is valid")
	assert.Contains(t, out, "Title: Pie Chart")
	assert.Contains(t, out, "Labels: 3")
}

func TestApp_ValidateInvalid(t *testing.T) {
	tests := map[string][]string{
		"label count":    {"validate", "-k", "pie", "--data", "[1, 2]", "--labels", "a"},
		"empty grid":     {"validate", "-k", "heatmap", "--data", "[[]]"},
		"negative wedge": {"validate", "-k", "pie", "--data", "[1, -2]", "--labels", "a,b"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, gochart.ErrValue)
			assert.Contains(t, err.Error(), "invalid request (value)")
		})
	}
}

func TestApp_ValidateWrongType(t *testing.T) {
	_, err := run(t, "validate", "-k", "line", "--data", `"not numbers"`, "--labels", "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, gochart.ErrType)
}

func TestApp_Samples(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "charts")
	data := filepath.Join(dir, "data")

	stdout, err := run(t, "samples", "-o", out, "--data-dir", data, "-f", "html", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 48 files")
	assert.FileExists(t, filepath.Join(out, "pie_chart_1.html"))
	assert.FileExists(t, filepath.Join(data, "histogram_2.json"))
}

func TestApp_Gallery(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gallery.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
formats: [html]
charts:
  - kind: line
    samples: 20
    formulas:
      - expr: "sin(x)"
      - expr: "log(x - 100)"
  - kind: pie
    prefix: slices
    labels: [a, b, c]
    formulas:
      - values: [1, 2, 3]
`), 0o600))

	out := filepath.Join(dir, "gallery")
	stdout, err := run(t, "gallery", "-c", cfgPath, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 2 files")
	assert.Contains(t, stdout, "skipped 1")
	assert.FileExists(t, filepath.Join(out, "line_01.html"))
	assert.FileExists(t, filepath.Join(out, "slices_01.html"))
}

func TestApp_GalleryWatchNeedsConfig(t *testing.T) {
	_, err := run(t, "gallery", "--watch")
	assert.Error(t, err)
}
