package wbgt

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

/*
Fixed-point solvers for the natural wet-bulb and black-globe
temperatures.

Both follow the same shape: seed an estimate, evaluate the energy balance
of the instrument over the whole grid at once, gate on the largest
absolute update anywhere in the grid, and under-relax the next estimate.
Reaching the iteration cap is not an error; the last damped estimate is
returned with converged = false so diagnostics can tell the cases apart.

The residual gate is a single scalar over the whole grid: one slow cell
keeps every cell iterating. This matches the reference model and keeps
its outputs reproducible; per-cell freezing would be cheaper but would
change results.
*/

/*
Result of one fixed-point solve.

    Fields:
        value: solved temperature field, degree C, floored at -100
        converged: whether the residual gate passed before the cap
        iterations: number of balance evaluations performed
        residuals: global max absolute update after each iteration, K
*/
type solve_result struct {
	value      *Grid
	converged  bool
	iterations int
	residuals  []float64
}

/*
Natural wet-bulb temperature of an evaporatively cooled wick.

    Args:
        tair: air temperature, K
        rh: relative humidity as a fraction [0, 1]
        pair: barometric pressure, hPa
        speed: wind speed, m/s
        solar: adjusted downward shortwave radiation, W/m2
        fdir: direct-beam fraction
        cza: zenith-angle cosine
        pa: solver tuning

    Returns:
        solve_result with the wet-bulb field in degree C

    Notes:
        The estimate is seeded with the ambient dew point. Each iteration
        evaluates the property correlations at the mean of the estimate
        and the air temperature (the boundary-layer reference), balances
        evaporative cooling scaled by (Pr/Sc)^0.56 against radiative and
        convective forcing, and under-relaxes the update.
*/
func solve_wet_bulb(tair, rh, pair, speed, solar, fdir, cza *Grid, pa solver_params) solve_result {
	const a = 0.56

	// surface temperature is taken equal to the air temperature
	tsfc := tair
	sza := apply(cza, math.Acos)
	tan_sza := apply(sza, math.Tan)

	eair := rh.mul(esat(tair, phase_liquid))
	ea := emis_atm(tair, rh)

	// sky + ground longwave source term, K^4
	rad_source := ea.mul(tair.pow(4)).add(tsfc.pow(4).scale(emis_sfc)).scale(0.5)

	// solar absorption geometry of the wick
	diffuse_fac := 1.0 + 0.25*d_wick/l_wick
	direct_fac := tan_sza.scale(1.0 / math.Pi).shift(0.25 * d_wick / l_wick)
	solar_geom := fdir.scale(-1.0).shift(1.0).scale(diffuse_fac).
		add(fdir.mul(direct_fac)).
		shift(alb_sfc)
	solar_term := solar.mul(solar_geom).scale(1.0 - alb_wick)

	// the balance evaluates at the common broadcast shape of every
	// input; the seed is expanded to it so the residual gate compares
	// equal shapes from the first iteration
	shape := common_shape(tair, rh, pair, speed, solar, fdir, cza)
	prev := dew_point(eair, phase_liquid).broadcast_to(shape)
	residuals := make([]float64, 0, pa.max_iter)

	for i := 0; i < pa.max_iter; i++ {
		tref := prev.add(tair).scale(0.5)
		h := h_cylinder_in_air(d_wick, l_wick, tref, pair, speed)

		// net radiative + solar forcing on the wick, W/m2
		fatm := rad_source.sub(prev.pow(4)).scale(stefanb * emis_wick).add(solar_term)

		ewick := esat(prev, phase_liquid)
		sc := zip_with3(tref, pair, diffusivity(tref, pair), func(t, p, d float64) float64 {
			density := p * 100.0 / (r_air * t)
			return viscosity1(t) / (density * d)
		})

		// evaporative cooling from the vapor-pressure deficit
		cooling := evap(tref).scale(1.0 / heat_ratio).
			mul(ewick.sub(eair).div(pair.sub(ewick))).
			mul(sc.pow(-a).scale(math.Pow(pr_air, a)))

		next := tair.sub(cooling).add(fatm.div(h))

		res := max_abs_diff(next, prev)
		residuals = append(residuals, res)
		if res < pa.convergence {
			return solve_result{
				value:      to_celsius_floored(next),
				converged:  true,
				iterations: i + 1,
				residuals:  residuals,
			}
		}
		prev = relax(prev, next, pa.relax)
	}

	return solve_result{
		value:      to_celsius_floored(prev),
		converged:  false,
		iterations: pa.max_iter,
		residuals:  residuals,
	}
}

/*
Equilibrium temperature of the black globe.

    Args:
        tair: air temperature, K
        rh: relative humidity as a fraction [0, 1]
        pair: barometric pressure, hPa
        speed: wind speed, m/s
        solar: adjusted downward shortwave radiation, W/m2
        fdir: direct-beam fraction
        cza: zenith-angle cosine
        pa: solver tuning

    Returns:
        solve_result with the globe field in degree C

    Notes:
        Seeded with the air temperature; there is no dew-point analog for
        a dry sphere. The balance equates the globe's fourth-power
        emission to absorbed longwave, convective exchange and solar
        load, and the update takes the real fourth root. A negative net
        balance (solver divergence) yields NaN, which the -100 degree C
        floor passes through as missing data.
*/
func solve_globe_temperature(tair, rh, pair, speed, solar, fdir, cza *Grid, pa solver_params) solve_result {
	tsfc := tair
	ea := emis_atm(tair, rh)

	rad_source := ea.mul(tair.pow(4)).add(tsfc.pow(4).scale(emis_sfc)).scale(0.5)

	// solar absorption geometry of the sphere
	solar_geom := zip_with(fdir, cza, func(f, c float64) float64 {
		return f*(1.0/(2.0*c)-1.0) + 1.0 + alb_sfc
	})
	solar_term := solar.mul(solar_geom).scale((1.0 - alb_globe) / (2.0 * stefanb * emis_globe))

	shape := common_shape(tair, rh, pair, speed, solar, fdir, cza)
	prev := tair.broadcast_to(shape)
	residuals := make([]float64, 0, pa.max_iter)

	for i := 0; i < pa.max_iter; i++ {
		tref := prev.add(tair).scale(0.5)
		h := h_sphere_in_air(d_globe, tref, pair, speed)

		balance := rad_source.
			sub(h.mul(prev.sub(tair)).scale(1.0 / (stefanb * emis_globe))).
			add(solar_term)
		next := balance.pow(0.25)

		res := max_abs_diff(next, prev)
		residuals = append(residuals, res)
		if res < pa.convergence {
			return solve_result{
				value:      to_celsius_floored(next),
				converged:  true,
				iterations: i + 1,
				residuals:  residuals,
			}
		}
		prev = relax(prev, next, pa.relax)
	}

	return solve_result{
		value:      to_celsius_floored(prev),
		converged:  false,
		iterations: pa.max_iter,
		residuals:  residuals,
	}
}

// Under-relaxed blend w*prev + (1-w)*next of two same-shaped grids.
func relax(prev, next *Grid, w float64) *Grid {
	out := make([]float64, len(prev.data))
	copy(out, prev.data)
	floats.Scale(w, out)
	floats.AddScaled(out, 1.0-w, next.data)
	return &Grid{shape: prev.shape, data: out}
}

// Kelvin to Celsius with the -100 degree C divergence floor.
// NaN cells stay NaN.
func to_celsius_floored(g *Grid) *Grid {
	return apply(g, func(v float64) float64 {
		return math.Max(v-273.15, min_out_celsius)
	})
}
