package wbgt

import "math"

/*
Convective heat transfer coefficients from Nusselt-number correlations.

Wind speed is floored at min_speed before the Reynolds number is formed,
which keeps both coefficients strictly positive for physically valid
inputs without any post-hoc clamping.
*/

/*
Convective heat transfer coefficient of a cylinder in cross flow,
modelling the wetted wick.

    Args:
        diameter: cylinder diameter, m
        length: cylinder length, m (geometry carried for the caller;
            the correlation itself is per unit length)
        tair: reference air temperature, K
        pair: barometric pressure, hPa
        speed: wind speed, m/s

    Returns:
        heat transfer coefficient, W/(m2 K)

    Notes:
        Nu = b Re^(1-c) Pr^(1-a) with (a, b, c) = (0.56, 0.281, 0.4).
*/
func h_cylinder_in_air(diameter, length float64, tair, pair, speed *Grid) *Grid {
	_ = length
	const a = 0.56
	const b = 0.281
	const c = 0.4
	return zip_with3(tair, pair, speed, func(t, p, w float64) float64 {
		density := p * 100.0 / (r_air * t)
		re := math.Max(w, min_speed) * density * diameter / viscosity1(t)
		nu := b * math.Pow(re, 1.0-c) * math.Pow(pr_air, 1.0-a)
		return nu * thermal_cond1(t) / diameter
	})
}

/*
Convective heat transfer coefficient of a sphere, modelling the black
globe.

    Args:
        diameter: sphere diameter, m
        tair: reference air temperature, K
        pair: barometric pressure, hPa
        speed: wind speed, m/s

    Returns:
        heat transfer coefficient, W/(m2 K)

    Notes:
        Ranz-Marshall form Nu = 2 + 0.6 Re^(1/2) Pr^(1/3).
*/
func h_sphere_in_air(diameter float64, tair, pair, speed *Grid) *Grid {
	return zip_with3(tair, pair, speed, func(t, p, w float64) float64 {
		density := p * 100.0 / (r_air * t)
		re := math.Max(w, min_speed) * density * diameter / viscosity1(t)
		nu := 2.0 + 0.6*math.Sqrt(re)*math.Pow(pr_air, 1.0/3.0)
		return nu * thermal_cond1(t) / diameter
	})
}
