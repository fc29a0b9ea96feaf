package wbgt

import "math"

/*
Psychrometric property correlations.

Every function here is elementwise over grids, stateless and total over
finite inputs: the solvers call them once per iteration over the whole
grid, so they contain no per-element branching beyond what the correlation
itself requires. NaN inputs yield NaN outputs.
*/

// Phase of water against which saturation properties are evaluated.
type phase int

const (
	phase_liquid phase = iota
	phase_ice
)

/*
Saturation vapor pressure.

    Args:
        tk: air temperature, K
        ph: phase_liquid or phase_ice

    Returns:
        saturation vapor pressure, hPa

    Notes:
        Buck-type exponential fit with a 1.004 enhancement factor.
        The solver only evaluates the liquid branch; the ice branch is
        retained for frost-point callers.
*/
func esat(tk *Grid, ph phase) *Grid {
	if ph == phase_liquid {
		return apply(tk, func(t float64) float64 {
			y := (t - 273.15) / (t - 32.18)
			return 1.004 * 6.1121 * math.Exp(17.502*y)
		})
	}
	return apply(tk, func(t float64) float64 {
		y := (t - 273.15) / (t - 0.6)
		return 1.004 * 6.1115 * math.Exp(22.452*y)
	})
}

/*
Dew point (or frost point) temperature, the inverse of esat.

    Args:
        e: vapor pressure, hPa
        ph: phase_liquid or phase_ice

    Returns:
        dew point temperature, K

    Notes:
        Used to seed the natural wet-bulb iteration: the dew point is a
        physically grounded first guess, closer to the wet-bulb
        temperature than the ambient air temperature.
*/
func dew_point(e *Grid, ph phase) *Grid {
	if ph == phase_liquid {
		return apply(e, func(v float64) float64 {
			z := math.Log(v / (6.1121 * 1.004))
			return 273.15 + 240.97*z/(17.502-z)
		})
	}
	return apply(e, func(v float64) float64 {
		z := math.Log(v / (6.1115 * 1.004))
		return 273.15 + 272.55*z/(22.452-z)
	})
}

/*
Dynamic viscosity of air.

    Args:
        tair: air temperature, K

    Returns:
        dynamic viscosity, kg/(m s)

    Notes:
        Chapman-Enskog kinetic-theory correlation with a linearized
        collision integral.
*/
func viscosity(tair *Grid) *Grid {
	return apply(tair, viscosity1)
}

func viscosity1(t float64) float64 {
	const sigma = 3.617
	const eps_kappa = 97.0
	tr := t / eps_kappa
	omega := (tr-2.9)/0.4*(-0.034) + 1.048
	return 2.6693e-6 * math.Sqrt(m_air*t) / (sigma * sigma * omega)
}

/*
Thermal conductivity of air.

    Args:
        tair: air temperature, K

    Returns:
        thermal conductivity, W/(m K)

    Notes:
        Modified Eucken relation on top of the viscosity correlation.
*/
func thermal_cond(tair *Grid) *Grid {
	return apply(tair, thermal_cond1)
}

func thermal_cond1(t float64) float64 {
	return (cp_air + 1.25*r_air) * viscosity1(t)
}

/*
Diffusivity of water vapor in air.

    Args:
        tair: air temperature, K
        pair: barometric pressure, hPa

    Returns:
        diffusivity, m2/s

    Notes:
        Chapman-Enskog style critical-property correlation for the
        air/water pair.
*/
func diffusivity(tair, pair *Grid) *Grid {
	pcrit13 := math.Pow(36.4*218.0, 1.0/3.0)
	tcrit512 := math.Pow(132.0*647.3, 5.0/12.0)
	tcrit12 := math.Sqrt(132.0 * 647.3)
	mmix := math.Sqrt(1.0/m_air + 1.0/m_h2o)
	return zip_with(tair, pair, func(t, p float64) float64 {
		patm := p / 1013.25
		return 3.64e-4 * math.Pow(t/tcrit12, 2.334) * pcrit13 * tcrit512 * mmix / patm * 1e-4
	})
}

/*
Latent heat of vaporization of water.

    Args:
        tair: air temperature, K

    Returns:
        latent heat, J/kg

    Notes:
        Linear fit anchored at 313.15 K.
*/
func evap(tair *Grid) *Grid {
	return apply(tair, func(t float64) float64 {
		return (313.15-t)/30.0*(-71100.0) + 2.4073e6
	})
}

/*
Atmospheric emissivity under humid air.

    Args:
        tair: air temperature, K
        rh: relative humidity as a fraction [0, 1]

    Returns:
        atmospheric emissivity, dimensionless

    Notes:
        Power law in the ambient vapor pressure.
*/
func emis_atm(tair, rh *Grid) *Grid {
	e := rh.mul(esat(tair, phase_liquid))
	return apply(e, func(v float64) float64 {
		return 0.575 * math.Pow(v, 0.143)
	})
}
