package wbgt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_h_cylinder_positive_and_grows_with_wind(t *testing.T) {
	tk := Scalar(300.0)
	p := Scalar(1010.0)

	calm := h_cylinder_in_air(d_wick, l_wick, tk, p, Scalar(0.13)).Data()[0]
	breeze := h_cylinder_in_air(d_wick, l_wick, tk, p, Scalar(2.0)).Data()[0]

	assert.Greater(t, calm, 0.0)
	assert.Greater(t, breeze, calm)
}

// The wind floor makes zero and near-zero speeds equivalent to 0.13 m/s,
// so the coefficient never collapses to zero.
func Test_h_cylinder_wind_floor(t *testing.T) {
	tk := Scalar(300.0)
	p := Scalar(1010.0)

	at_zero := h_cylinder_in_air(d_wick, l_wick, tk, p, Scalar(0.0)).Data()[0]
	at_floor := h_cylinder_in_air(d_wick, l_wick, tk, p, Scalar(min_speed)).Data()[0]

	assert.InDelta(t, at_floor, at_zero, 1e-12)
	assert.False(t, math.IsNaN(at_zero))
	assert.False(t, math.IsInf(at_zero, 0))
}

func Test_h_sphere_positive_and_grows_with_wind(t *testing.T) {
	tk := Scalar(300.0)
	p := Scalar(1010.0)

	calm := h_sphere_in_air(d_globe, tk, p, Scalar(0.0)).Data()[0]
	breeze := h_sphere_in_air(d_globe, tk, p, Scalar(2.0)).Data()[0]

	assert.Greater(t, calm, 0.0)
	assert.Greater(t, breeze, calm)
}

func Test_h_sphere_wind_floor(t *testing.T) {
	tk := Scalar(300.0)
	p := Scalar(1010.0)

	at_zero := h_sphere_in_air(d_globe, tk, p, Scalar(0.0)).Data()[0]
	at_floor := h_sphere_in_air(d_globe, tk, p, Scalar(min_speed)).Data()[0]

	assert.InDelta(t, at_floor, at_zero, 1e-12)
}

// Order-of-magnitude check against hand-computed values for 2 m/s wind
// at 300 K and 1010 hPa.
func Test_h_reference_magnitudes(t *testing.T) {
	tk := Scalar(300.0)
	p := Scalar(1010.0)
	w := Scalar(2.0)

	h_wick := h_cylinder_in_air(d_wick, l_wick, tk, p, w).Data()[0]
	h_globe := h_sphere_in_air(d_globe, tk, p, w).Data()[0]

	assert.InDelta(t, 52.0, h_wick, 5.0)
	assert.InDelta(t, 23.0, h_globe, 3.0)
}
