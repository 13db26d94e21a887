package gochart

import "math"

// Unit conversion helpers between inches, points and pixels.
// 1 inch = 72 points; pixels depend on the rendering DPI.

const (
	pointsPerInch = 72
	// maxPixels bounds a rendered image side to keep allocations sane.
	maxPixels = 20000
)

// Inch converts inches to pixels at the given DPI. Clamps to a safe range.
func Inch(n, dpi float64) int {
	return clampPixels(n * dpi)
}

// PointsToPixels converts points to pixels at the given DPI.
func PointsToPixels(n, dpi float64) float64 {
	return n * dpi / pointsPerInch
}

// PixelToInch converts pixels to inches at the given DPI.
func PixelToInch(px int, dpi float64) float64 {
	return float64(px) / dpi
}

// PointToInch converts points to inches.
func PointToInch(pt float64) float64 {
	return pt / pointsPerInch
}

// clampPixels converts a float64 to a pixel count in [1, maxPixels].
func clampPixels(v float64) int {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if v > maxPixels {
		return maxPixels
	}
	return int(math.Round(v))
}

// PixelSize returns the raster size of the figure at the given DPI. A
// non-positive dpi uses the figure's own.
func (f *Figure) PixelSize(dpi float64) (w, h int) {
	if dpi <= 0 {
		dpi = f.DPI
	}
	return Inch(f.Width, dpi), Inch(f.Height, dpi)
}
