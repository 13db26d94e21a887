package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_Deterministic(t *testing.T) {
	a, err := NewSampler(7).Draw(Distribution{Name: "normal", Params: []float64{0, 1}}, 20)
	require.NoError(t, err)
	b, err := NewSampler(7).Draw(Distribution{Name: "normal", Params: []float64{0, 1}}, 20)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSampler(8).Draw(Distribution{Name: "normal", Params: []float64{0, 1}}, 20)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSampler_Ranges(t *testing.T) {
	s := NewSampler(1)
	for _, v := range s.RandInt(1, 11, 500) {
		assert.GreaterOrEqual(t, v, 1.0)
		assert.Less(t, v, 11.0)
		assert.Equal(t, float64(int(v)), v)
	}
	for _, v := range s.Uniform(-1, 1, 500) {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}

	nonNegative := []Distribution{
		{Name: "exponential", Params: []float64{1}},
		{Name: "poisson", Params: []float64{3}},
		{Name: "chisquare", Params: []float64{3}},
		{Name: "gamma", Params: []float64{2, 2}},
		{Name: "lognormal"},
		{Name: "weibull", Params: []float64{1.5}},
		{Name: "pareto", Params: []float64{3}},
	}
	for _, d := range nonNegative {
		vals, err := s.Draw(d, 200)
		require.NoError(t, err, d.Name)
		require.Len(t, vals, 200)
		for _, v := range vals {
			assert.GreaterOrEqual(t, v, 0.0, d.Name)
		}
	}

	vals, err := s.Draw(Distribution{Name: "Beta", Params: []float64{2, 5}, N: 30}, 1000)
	require.NoError(t, err)
	assert.Len(t, vals, 30, "N overrides the requested count")
	for _, v := range vals {
		assert.True(t, v >= 0 && v <= 1)
	}
}

func TestSampler_Errors(t *testing.T) {
	s := NewSampler(1)
	_, err := s.Draw(Distribution{Name: "cauchy"}, 10)
	assert.Error(t, err)
	_, err = s.Draw(Distribution{Name: "randint", Params: []float64{5, 5}}, 10)
	assert.Error(t, err)

	assert.True(t, KnownDistribution("RandInt"))
	assert.False(t, KnownDistribution("cauchy"))
	assert.Contains(t, Distributions(), "weibull")
	assert.Contains(t, Distributions(), "randint")
}
