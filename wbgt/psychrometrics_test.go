package wbgt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Saturation vapor pressure at 20 degree C is about 23.4 hPa.
func Test_esat_liquid(t *testing.T) {
	es := esat(Scalar(293.15), phase_liquid)

	assert.InDelta(t, 23.47, es.Data()[0], 0.05)
}

// Over ice at -10 degree C the saturation pressure is about 2.6 hPa and
// lies below the supercooled-liquid value.
func Test_esat_ice(t *testing.T) {
	tk := Scalar(263.15)
	ice := esat(tk, phase_ice).Data()[0]
	liquid := esat(tk, phase_liquid).Data()[0]

	assert.InDelta(t, 2.61, ice, 0.05)
	assert.Less(t, ice, liquid)
}

// dew_point inverts esat over the range the solver visits.
func Test_dew_point_inverts_esat(t *testing.T) {
	for _, tk := range []float64{253.15, 273.15, 293.15, 313.15} {
		e := esat(Scalar(tk), phase_liquid)
		back := dew_point(e, phase_liquid).Data()[0]
		assert.InDelta(t, tk, back, 0.05, "tk=%v", tk)
	}
}

func Test_frost_point_inverts_esat_ice(t *testing.T) {
	e := esat(Scalar(263.15), phase_ice)
	back := dew_point(e, phase_ice).Data()[0]

	assert.InDelta(t, 263.15, back, 0.05)
}

// Reference values for air at 300 K: viscosity ~1.85e-5 kg/(m s),
// conductivity ~0.025 W/(m K), vapor diffusivity ~2.6e-5 m2/s.
func Test_air_property_correlations(t *testing.T) {
	tk := Scalar(300.0)

	assert.InDelta(t, 1.844e-5, viscosity(tk).Data()[0], 2e-8)
	assert.InDelta(t, 0.0251, thermal_cond(tk).Data()[0], 2e-4)
	assert.InDelta(t, 2.63e-5, diffusivity(tk, Scalar(1013.25)).Data()[0], 5e-8)
}

// The latent heat fit is anchored at 313.15 K and decreases with
// temperature at -71100/30 J/(kg K).
func Test_evap(t *testing.T) {
	assert.InDelta(t, 2.4073e6, evap(Scalar(313.15)).Data()[0], 1.0)
	assert.InDelta(t, 2.4073e6-71100.0, evap(Scalar(283.15)).Data()[0], 1.0)
}

func Test_emis_atm(t *testing.T) {
	// 30 degree C at 50% humidity
	eps := emis_atm(Scalar(303.15), Scalar(0.5)).Data()[0]

	assert.InDelta(t, 0.8905, eps, 5e-4)
	assert.Greater(t, eps, 0.0)
	assert.Less(t, eps, 1.0)
}

// Drier air radiates less.
func Test_emis_atm_increases_with_humidity(t *testing.T) {
	tk := Scalar(303.15)
	dry := emis_atm(tk, Scalar(0.2)).Data()[0]
	humid := emis_atm(tk, Scalar(0.8)).Data()[0]

	assert.Less(t, dry, humid)
}

func Test_properties_propagate_nan(t *testing.T) {
	nan := Scalar(math.NaN())

	assert.True(t, math.IsNaN(esat(nan, phase_liquid).Data()[0]))
	assert.True(t, math.IsNaN(viscosity(nan).Data()[0]))
	assert.True(t, math.IsNaN(thermal_cond(nan).Data()[0]))
	assert.True(t, math.IsNaN(diffusivity(nan, Scalar(1010)).Data()[0]))
	assert.True(t, math.IsNaN(evap(nan).Data()[0]))
	assert.True(t, math.IsNaN(emis_atm(nan, Scalar(0.5)).Data()[0]))
}
