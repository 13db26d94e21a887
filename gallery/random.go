package gallery

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws reproducible random data from an explicit seed.
type Sampler struct {
	src rand.Source
	rng *rand.Rand
}

// NewSampler returns a sampler seeded with seed. Equal seeds yield equal
// sequences.
func NewSampler(seed uint64) *Sampler {
	src := rand.NewSource(seed)
	return &Sampler{src: src, rng: rand.New(src)}
}

type drawer interface{ Rand() float64 }

// distributions maps a name to its generator. Parameters follow numpy's
// argument order; missing trailing parameters use the listed defaults.
var distributions = map[string]struct {
	defaults []float64
	build    func(p []float64, src rand.Source) drawer
}{
	"normal":      {[]float64{0, 1}, func(p []float64, src rand.Source) drawer { return distuv.Normal{Mu: p[0], Sigma: p[1], Src: src} }},
	"exponential": {[]float64{1}, func(p []float64, src rand.Source) drawer { return distuv.Exponential{Rate: 1 / p[0], Src: src} }},
	"poisson":     {[]float64{1}, func(p []float64, src rand.Source) drawer { return distuv.Poisson{Lambda: p[0], Src: src} }},
	"uniform":     {[]float64{0, 1}, func(p []float64, src rand.Source) drawer { return distuv.Uniform{Min: p[0], Max: p[1], Src: src} }},
	"chisquare":   {[]float64{1}, func(p []float64, src rand.Source) drawer { return distuv.ChiSquared{K: p[0], Src: src} }},
	"beta":        {[]float64{1, 1}, func(p []float64, src rand.Source) drawer { return distuv.Beta{Alpha: p[0], Beta: p[1], Src: src} }},
	"gamma":       {[]float64{1, 1}, func(p []float64, src rand.Source) drawer { return distuv.Gamma{Alpha: p[0], Beta: 1 / p[1], Src: src} }},
	"lognormal":   {[]float64{0, 1}, func(p []float64, src rand.Source) drawer { return distuv.LogNormal{Mu: p[0], Sigma: p[1], Src: src} }},
	"weibull":     {[]float64{1}, func(p []float64, src rand.Source) drawer { return distuv.Weibull{K: p[0], Lambda: 1, Src: src} }},
	"pareto":      {[]float64{1}, func(p []float64, src rand.Source) drawer { return lomax{distuv.Pareto{Xm: 1, Alpha: p[0], Src: src}} }},
}

// lomax shifts a Pareto(1, a) draw down by one, matching numpy's pareto.
type lomax struct{ distuv.Pareto }

func (l lomax) Rand() float64 { return l.Pareto.Rand() - 1 }

// KnownDistribution reports whether name is a supported distribution. The
// discrete "randint" generator is included.
func KnownDistribution(name string) bool {
	n := strings.ToLower(name)
	_, ok := distributions[n]
	return ok || n == "randint"
}

// Distributions lists the supported distribution names.
func Distributions() []string {
	names := []string{"randint"}
	for n := range distributions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Draw returns d.N samples, or n when d.N is not set.
func (s *Sampler) Draw(d Distribution, n int) ([]float64, error) {
	if d.N > 0 {
		n = d.N
	}
	name := strings.ToLower(d.Name)
	if name == "randint" {
		lo, hi := 0.0, 10.0
		if len(d.Params) > 0 {
			lo = d.Params[0]
		}
		if len(d.Params) > 1 {
			hi = d.Params[1]
		}
		if hi <= lo {
			return nil, fmt.Errorf("randint: high %v must exceed low %v", hi, lo)
		}
		return s.RandInt(int(lo), int(hi), n), nil
	}
	spec, ok := distributions[name]
	if !ok {
		return nil, fmt.Errorf("unknown distribution %q", d.Name)
	}
	params := append([]float64(nil), spec.defaults...)
	copy(params, d.Params)
	gen := spec.build(params, s.src)
	out := make([]float64, n)
	for i := range out {
		out[i] = gen.Rand()
	}
	return out, nil
}

// RandInt returns n integers in [lo, hi).
func (s *Sampler) RandInt(lo, hi, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(lo + s.rng.Intn(hi-lo))
	}
	return out
}

// Uniform returns n values in [lo, hi).
func (s *Sampler) Uniform(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*s.rng.Float64()
	}
	return out
}

// Normal returns n values from N(mu, sigma).
func (s *Sampler) Normal(mu, sigma float64, n int) []float64 {
	out, _ := s.Draw(Distribution{Name: "normal", Params: []float64{mu, sigma}}, n)
	return out
}
