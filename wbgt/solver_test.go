package wbgt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Shared smooth conditions: 30 degree C, 50% humidity, light wind,
// strong sun at 30N 110E on day 200.
func scenario_input() OutdoorInput {
	return OutdoorInput{
		Tas:       Full([]int{1, 1, 1}, 303.15),
		Tasmax:    Full([]int{1, 1, 1}, 306.15),
		Hurs:      Full([]int{1, 1, 1}, 50.0),
		SfcWind:   Full([]int{1, 1, 1}, 2.0),
		Rsds:      Full([]int{1, 1, 1}, 800.0),
		Lat:       NewGrid([]int{1}, []float64{30.0}),
		Lon:       NewGrid([]int{1}, []float64{110.0}),
		DayOfYear: NewGrid([]int{1}, []float64{200.0}),
	}
}

// Fields uniform across the grid may come in at a lower rank than the
// coordinate axes; the solvers expand their seed to the common
// broadcast shape instead of tripping the residual gate.
func Test_lower_rank_fields_broadcast_across_grid(t *testing.T) {
	in := scenario_input()
	in.Lat = NewGrid([]int{2}, []float64{30.0, 31.0})
	in.Lon = NewGrid([]int{2}, []float64{110.0, 111.0})

	res := ComputeOutdoor(in)

	base := ComputeOutdoor(scenario_input()).WBGTmin.Data()[0]
	assert.Equal(t, []int{1, 2, 2}, res.WBGTmin.Shape())
	for _, v := range res.WBGTmin.Data() {
		assert.False(t, math.IsNaN(v))
		// near-identical conditions across the four cells
		assert.InDelta(t, base, v, 1.0)
	}
}

// The solved WBGT for a hot humid summer day must land in the plausible
// physical range; this is a sanity bound, not an exact regression.
func Test_scenario_wbgt_range(t *testing.T) {
	res := ComputeOutdoor(scenario_input())

	wbgt := res.WBGTmin.Data()[0]
	assert.GreaterOrEqual(t, wbgt, 24.0)
	assert.LessOrEqual(t, wbgt, 30.0)

	// the wet bulb sits below the dry bulb, the globe above the wet bulb
	assert.Less(t, res.Tnwb.Data()[0], 30.0)
	assert.Greater(t, res.Tg.Data()[0], res.Tnwb.Data()[0])

	// the max-field WBGT exceeds the mean-field WBGT
	assert.Greater(t, res.WBGTmax.Data()[0], res.WBGTmin.Data()[0])
}

// Identical inputs produce bit-identical outputs: the solvers hold no
// hidden state.
func Test_solver_determinism(t *testing.T) {
	a := ComputeOutdoor(scenario_input())
	b := ComputeOutdoor(scenario_input())

	assert.Equal(t, a.WBGTmin.Data(), b.WBGTmin.Data())
	assert.Equal(t, a.WBGTmax.Data(), b.WBGTmax.Data())
	assert.Equal(t, a.Tnwb.Data(), b.Tnwb.Data())
	assert.Equal(t, a.Tg.Data(), b.Tg.Data())
}

// Zero wind is floored internally; the solve must terminate within the
// iteration cap without NaN or Inf anywhere.
func Test_zero_wind_degenerate_case(t *testing.T) {
	in := scenario_input()
	in.SfcWind = Full([]int{1, 1, 1}, 0.0)

	res := ComputeOutdoor(in)

	for _, g := range []*Grid{res.WBGTmin, res.WBGTmax, res.WBGThalf, res.Tnwb, res.Tg} {
		for _, v := range g.Data() {
			assert.False(t, math.IsNaN(v))
			assert.False(t, math.IsInf(v, 0))
		}
	}
}

// Every reported temperature respects the -100 degree C divergence
// floor, even under hostile inputs.
func Test_output_floor(t *testing.T) {
	in := scenario_input()
	in.Hurs = Full([]int{1, 1, 1}, 100.0)
	in.SfcWind = Full([]int{1, 1, 1}, 0.0)
	in.Rsds = Full([]int{1, 1, 1}, 0.0)
	in.Tas = Full([]int{1, 1, 1}, 185.0)
	in.Tasmax = Full([]int{1, 1, 1}, 185.0)

	res := ComputeOutdoor(in)

	for _, g := range []*Grid{res.WBGTmin, res.WBGTmax, res.Tnwb, res.Tg} {
		for _, v := range g.Data() {
			if !math.IsNaN(v) {
				assert.GreaterOrEqual(t, v, min_out_celsius)
			}
		}
	}
}

// A missing cell stays missing in every output without disturbing its
// neighbors.
func Test_nan_cell_propagates_locally(t *testing.T) {
	in := OutdoorInput{
		Tas:       NewGrid([]int{1, 1, 2}, []float64{303.15, math.NaN()}),
		Tasmax:    NewGrid([]int{1, 1, 2}, []float64{306.15, math.NaN()}),
		Hurs:      Full([]int{1, 1, 2}, 50.0),
		SfcWind:   Full([]int{1, 1, 2}, 2.0),
		Rsds:      Full([]int{1, 1, 2}, 800.0),
		Lat:       NewGrid([]int{1}, []float64{30.0}),
		Lon:       NewGrid([]int{2}, []float64{110.0, 111.0}),
		DayOfYear: NewGrid([]int{1}, []float64{200.0}),
	}

	res := ComputeOutdoor(in)

	assert.False(t, math.IsNaN(res.WBGTmin.Data()[0]))
	assert.True(t, math.IsNaN(res.WBGTmin.Data()[1]))
	assert.True(t, math.IsNaN(res.Tnwb.Data()[1]))
	assert.True(t, math.IsNaN(res.Tg.Data()[1]))

	// a NaN residual blocks the early exit, so the cap is reached
	assert.False(t, res.Converged)
}

// Once past the first correction the damped iteration contracts: the
// global residual sequence never increases on smooth inputs.
func Test_residuals_nonincreasing(t *testing.T) {
	tair := Full([]int{2, 2}, 303.15)
	rh := Full([]int{2, 2}, 0.5)
	pair := Scalar(1010.0)
	speed := Full([]int{2, 2}, 2.0)
	doy := Full([]int{2, 2}, 200.0)
	lat := NewGrid([]int{2, 2}, []float64{20, 25, 30, 35})
	lon := Full([]int{2, 2}, 110.0)
	rad := Full([]int{2, 2}, 800.0)

	solar, cza, fdir := calc_solar_parameters(doy, lat, lon, rad)

	for _, solve := range []func() solve_result{
		func() solve_result {
			return solve_wet_bulb(tair, rh, pair, speed, solar, fdir, cza, default_solver_params())
		},
		func() solve_result {
			return solve_globe_temperature(tair, rh, pair, speed, solar, fdir, cza, default_solver_params())
		},
	} {
		res := solve()
		for k := 1; k+1 < len(res.residuals); k++ {
			assert.LessOrEqual(t, res.residuals[k+1], res.residuals[k]+1e-9,
				"residual rose between iterations %d and %d: %v", k, k+1, res.residuals)
		}
	}
}

// The globe solve on mild conditions passes the residual gate before the
// cap and reports it.
func Test_globe_converges_and_flags_it(t *testing.T) {
	tair := Full([]int{1}, 303.15)
	rh := Full([]int{1}, 0.5)
	pair := Scalar(1010.0)
	speed := Full([]int{1}, 2.0)
	solar := Full([]int{1}, 0.0)
	fdir := Full([]int{1}, 0.0)
	cza := Full([]int{1}, -0.1)

	res := solve_globe_temperature(tair, rh, pair, speed, solar, fdir, cza, default_solver_params())

	assert.True(t, res.converged)
	assert.LessOrEqual(t, res.iterations, default_solver_params().max_iter)
	// without sun the globe settles just below the air temperature
	assert.InDelta(t, 29.1, res.value.Data()[0], 0.5)
}

// The wet-bulb estimate is seeded at the dew point and must end between
// the dew point and the dry-bulb temperature for unsaturated air.
func Test_wet_bulb_between_dew_point_and_dry_bulb(t *testing.T) {
	tair := Full([]int{1}, 303.15)
	rh := Full([]int{1}, 0.5)
	pair := Scalar(1010.0)
	speed := Full([]int{1}, 2.0)
	solar := Full([]int{1}, 0.0)
	fdir := Full([]int{1}, 0.0)
	cza := Full([]int{1}, -0.1)

	res := solve_wet_bulb(tair, rh, pair, speed, solar, fdir, cza, default_solver_params())

	tdew_c := dew_point(rh.mul(esat(tair, phase_liquid)), phase_liquid).Data()[0] - 273.15
	tw := res.value.Data()[0]
	assert.Greater(t, tw, tdew_c-0.5)
	assert.Less(t, tw, 30.0)
}
