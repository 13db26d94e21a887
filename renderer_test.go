package gochart

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// sampleRequests holds one valid request per kind.
func sampleRequests() []Request {
	return []Request{
		{Kind: KindLine, Data: []float64{1, 4, 2, 8}, Labels: []string{"a", "b", "c", "d"}, Marker: "o"},
		{Kind: KindBar, Data: []float64{5, 15, 25}, Labels: []string{"First", "Second", "Third"}},
		{Kind: KindPie, Data: []float64{3, 2, 1}, Labels: []string{"x", "y", "z"}},
		{Kind: KindBox, Data: [][]float64{{1, 2, 3, 9}, {2, 4, 6}}, Labels: []string{"g1", "g2"}},
		{Kind: KindHeatmap, Data: [][]float64{{1, 2}, {3, 4}}},
		{Kind: KindPolar, Theta: []float64{0, 1, 2, 3}, R: []float64{1, 2, 1, 2}},
		{Kind: KindHistogram, Data: []float64{1, 1, 2, 3, 5, 8}, Bins: 4},
		{Kind: KindScatter, X: []float64{1, 2, 3}, Y: []float64{2, 1, 3}},
		{Kind: KindStackedBar, Data: [][]float64{{1, 2}, {2, 1}}, Labels: []string{"a", "b"}},
		{Kind: KindArea, Data: []float64{1, 3, 2}, Labels: []string{"a", "b", "c"}},
		{Kind: KindStem, Data: []float64{1, -1, 2}, Labels: []string{"a", "b", "c"}},
		{Kind: KindErrorBar, X: []float64{1, 2}, Y: []float64{1, 2}, YErr: []float64{0.2, 0.3}},
		{Kind: KindSurface, Data: [][]float64{{0, 1, 2}, {1, 2, 3}, {2, 3, 4}}},
	}
}

func TestToImage_DefaultSize(t *testing.T) {
	for _, req := range sampleRequests() {
		t.Run(req.Kind.String(), func(t *testing.T) {
			fig := MustNew(req)
			img, err := fig.ToImage(nil)
			require.NoError(t, err)
			assert.Equal(t, 640, img.Bounds().Dx())
			assert.Equal(t, 480, img.Bounds().Dy())
		})
	}
}

func TestToImage_DrawsOnWhite(t *testing.T) {
	fig := MustNew(Request{Kind: KindBar, Data: []float64{5, 15, 25}, Labels: []string{"A", "B", "C"}, Color: "red"})
	img, err := fig.ToImage(&RenderOptions{DPI: 50})
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())

	corner := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, corner)

	red := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R == 255 && c.G == 0 && c.B == 0 {
				red++
			}
		}
	}
	assert.Greater(t, red, 100, "bars should be painted red")
}

func TestWriteImage_PNG(t *testing.T) {
	fig := MustNew(sampleRequests()[0])
	var buf bytes.Buffer
	require.NoError(t, fig.WriteImage(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
}

func TestWriteImage_JPEG(t *testing.T) {
	fig := MustNew(sampleRequests()[1])
	var buf bytes.Buffer
	require.NoError(t, fig.WriteImage(&buf, &RenderOptions{Format: ImageFormatJPEG, JPEGQuality: 80}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xFF, 0xD8}))
}

func TestPixelSize(t *testing.T) {
	fig := MustNew(sampleRequests()[0])
	w, h := fig.PixelSize(200)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 960, h)
	assert.Equal(t, 100, Inch(1, 100))
	assert.Equal(t, 100.0, PointsToPixels(72, 100))
	assert.Equal(t, 1.0, PointToInch(72))
	assert.Equal(t, 2.0, PixelToInch(200, 100))
}

func TestFontCache_Fallback(t *testing.T) {
	fc := NewFontCache(filepath.Join(t.TempDir(), "missing"))
	face := fc.Face(12, false)
	require.NotNil(t, face)
	adv := font.MeasureString(face, "abc")
	assert.Greater(t, adv.Round(), 0)
}

func TestFontCache_LoadFontRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o600))
	fc := NewFontCache()
	assert.Error(t, fc.LoadFont("bad", path))
}
