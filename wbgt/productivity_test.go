package wbgt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// At the sigmoid midpoint exactly half of the saturating 0.9 loss is
// reached.
func Test_loss_midpoints(t *testing.T) {
	cases := []struct {
		intensity Intensity
		alpha     float64
	}{
		{IntensityLow, 34.64},
		{IntensityMedium, 32.93},
		{IntensityHigh, 30.94},
	}
	for _, c := range cases {
		loss := productivity_loss(Scalar(c.alpha), c.intensity).Data()[0]
		assert.InDelta(t, 0.45, loss, 1e-9, "%s", c.intensity)
	}
}

func Test_loss_bounds_and_monotonicity(t *testing.T) {
	for _, intensity := range []Intensity{IntensityLow, IntensityMedium, IntensityHigh} {
		prev := -1.0
		for w := 0.0; w <= 45.0; w += 1.0 {
			loss := productivity_loss(Scalar(w), intensity).Data()[0]
			assert.GreaterOrEqual(t, loss, 0.0)
			assert.LessOrEqual(t, loss, 0.9)
			assert.GreaterOrEqual(t, loss, prev, "%s at %v", intensity, w)
			prev = loss
		}
	}
}

// Heavier work loses capacity at lower WBGT.
func Test_high_intensity_loses_first(t *testing.T) {
	w := Scalar(31.0)

	low := productivity_loss(w, IntensityLow).Data()[0]
	medium := productivity_loss(w, IntensityMedium).Data()[0]
	high := productivity_loss(w, IntensityHigh).Data()[0]

	assert.Greater(t, high, medium)
	assert.Greater(t, medium, low)
}

func Test_loss_handles_cold_and_missing(t *testing.T) {
	g := NewGrid([]int{3}, []float64{-5.0, 0.0, math.NaN()})

	loss := productivity_loss(g, IntensityHigh)

	assert.Equal(t, 0.0, loss.Data()[0])
	assert.Equal(t, 0.0, loss.Data()[1])
	assert.True(t, math.IsNaN(loss.Data()[2]))
}

func Test_annual_mean_loss_skips_missing_days(t *testing.T) {
	// three days over one cell, the middle day missing
	wbgt := NewGrid([]int{3, 1}, []float64{30.94, math.NaN(), 30.94})

	mean := AnnualMeanLoss(wbgt, IntensityHigh)

	assert.Equal(t, []int{1}, mean.Shape())
	assert.InDelta(t, 0.45, mean.Data()[0], 1e-9)
}
