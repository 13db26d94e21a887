package gochart

import (
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
)

// axisMargin is the fraction of the data span added on each side when
// autoscaling.
const axisMargin = 0.05

var numberPrinter = message.NewPrinter(language.English)

// formatNumber renders a value the way tick labels and exports show it.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e6 && v == math.Trunc(v) && abs < 1e15 {
		return numberPrinter.Sprintf("%d", int64(v))
	}
	if abs >= 1e15 || abs < 1e-4 {
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
	return strconv.FormatFloat(math.Round(v*1e10)/1e10, 'f', -1, 64)
}

// formatPercent renders a pie fraction with one decimal, as "%1.1f%%".
func formatPercent(frac float64) string {
	return numberPrinter.Sprintf("%.1f%%", frac*100)
}

// finiteRange returns the minimum and maximum of the finite values. ok is
// false when there are none.
func finiteRange(vals ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range vals {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	if !ok {
		return 0, 1, false
	}
	return lo, hi, true
}

// expand pads [lo,hi] by the margin fraction, widening degenerate ranges.
func expand(lo, hi, margin float64) (float64, float64) {
	if lo == hi {
		d := math.Abs(lo) * 0.05
		if d == 0 {
			d = 0.05
		}
		return clampFinite(lo - d), clampFinite(hi + d)
	}
	pad := (hi - lo) * margin
	if math.IsInf(pad, 0) {
		pad = hi*margin - lo*margin
	}
	return clampFinite(lo - pad), clampFinite(hi + pad)
}

// clampFinite pulls an overflowed bound back to the largest float64.
func clampFinite(v float64) float64 {
	return math.Max(-math.MaxFloat64, math.Min(math.MaxFloat64, v))
}

// fraction returns (v-lo)/(hi-lo), halving the operands when the
// differences overflow. A zero span yields v-lo.
func fraction(v, lo, hi float64) float64 {
	d, s := v-lo, hi-lo
	if s == 0 {
		return d
	}
	if math.IsInf(d, 0) || math.IsInf(s, 0) {
		return (v/2 - lo/2) / (hi/2 - lo/2)
	}
	return d / s
}

// stickyZero pads a range but keeps an endpoint at zero, as bar and
// histogram value axes do.
func stickyZero(lo, hi float64) (float64, float64) {
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	plo, phi := expand(lo, hi, axisMargin)
	if lo == 0 {
		plo = 0
	}
	if hi == 0 {
		phi = 0
	}
	return plo, phi
}

// niceStep picks a step from 1, 2, 2.5, 5, 10 times a power of ten so that
// [lo,hi] is covered by at most maxTicks ticks.
func niceStep(lo, hi float64, maxTicks int) float64 {
	if !(hi > lo) || !finite(lo, hi) {
		return 1
	}
	raw := (hi - lo) / float64(maxTicks-1)
	if math.IsInf(raw, 0) {
		raw = hi/float64(maxTicks-1) - lo/float64(maxTicks-1)
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}

// niceTicks returns labelled ticks on round values within [lo,hi].
func niceTicks(lo, hi float64, maxTicks int) []Tick {
	step := niceStep(lo, hi, maxTicks)
	first := math.Ceil(lo/step - 1e-9)
	var ticks []Tick
	for i := 0; ; i++ {
		v := (first + float64(i)) * step
		if v > hi+step*1e-9 || i > 4*maxTicks {
			break
		}
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, Tick{Value: v, Label: formatNumber(v)})
	}
	return ticks
}

// valueAxis autoscales a numeric axis over the given data.
func valueAxis(vals ...[]float64) Axis {
	lo, hi, _ := finiteRange(vals...)
	lo, hi = expand(lo, hi, axisMargin)
	return Axis{Min: lo, Max: hi, Ticks: niceTicks(lo, hi, 8)}
}

// categoryAxis places one labelled tick per category at 0..n-1.
func categoryAxis(labels []string) Axis {
	n := len(labels)
	ax := Axis{Min: -0.5, Max: float64(n) - 0.5, Categorical: true}
	for i, l := range labels {
		ax.Ticks = append(ax.Ticks, Tick{Value: float64(i), Label: l})
	}
	return ax
}

// positions returns 0..n-1 as floats.
func positions(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// linspace returns n evenly spaced values over [lo,hi].
func linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	var out []float64
	if math.IsInf(hi-lo, 0) {
		out = floats.Span(make([]float64, n), lo/2, hi/2)
		floats.Scale(2, out)
	} else {
		out = floats.Span(make([]float64, n), lo, hi)
	}
	out[0], out[n-1] = lo, hi
	return out
}

// Quantile returns the p-quantile of sorted data using linear interpolation
// between closest ranks.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	i := int(math.Floor(h))
	if i >= n-1 {
		return sorted[n-1]
	}
	f := h - float64(i)
	if d := sorted[i+1] - sorted[i]; !math.IsInf(d, 0) {
		return sorted[i] + f*d
	}
	return sorted[i]*(1-f) + sorted[i+1]*f
}

// BoxStats summarizes one box of a box plot.
type BoxStats struct {
	Q1, Median, Q3 float64
	WhiskerLo      float64
	WhiskerHi      float64
	Fliers         []float64
}

// ComputeBoxStats uses 1.5 IQR whiskers drawn to the most extreme data
// point inside the fences.
func ComputeBoxStats(values []float64) BoxStats {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)
	if len(sorted) == 0 {
		nan := math.NaN()
		return BoxStats{Q1: nan, Median: nan, Q3: nan, WhiskerLo: nan, WhiskerHi: nan}
	}
	s := BoxStats{
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
	}
	iqr := s.Q3 - s.Q1
	loFence, hiFence := s.Q1-1.5*iqr, s.Q3+1.5*iqr
	s.WhiskerLo, s.WhiskerHi = s.Q1, s.Q3
	for _, v := range sorted {
		if v >= loFence {
			s.WhiskerLo = math.Min(v, s.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hiFence {
			s.WhiskerHi = math.Max(sorted[i], s.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < s.WhiskerLo || v > s.WhiskerHi {
			s.Fliers = append(s.Fliers, v)
		}
	}
	return s
}

// Histogram bins values into equal-width bins between their minimum and
// maximum. The last bin is closed on the right. With density set, counts
// are normalized so that the histogram integrates to one.
func Histogram(values []float64, bins int, density bool) (counts, edges []float64) {
	lo, hi, _ := finiteRange(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges = linspace(lo, hi, bins+1)
	counts = make([]float64, bins)
	width := (hi - lo) / float64(bins)
	if math.IsInf(width, 0) {
		width = hi/float64(bins) - lo/float64(bins)
	}
	n := 0.0
	for _, v := range values {
		if v < lo || v > hi || math.IsNaN(v) {
			continue
		}
		i := int(fraction(v, lo, hi) * float64(bins))
		i = max(0, min(i, bins-1))
		counts[i]++
		n++
	}
	if density && n > 0 {
		floats.Scale(1/n, counts)
		floats.Scale(1/width, counts)
	}
	return counts, edges
}
