package wbgt

import "math"

/*
Input sanitation applied before the solver sees a batch.

The rules mirror the upstream dataset conventions: negative wind and
radiation are measurement noise around zero, temperatures outside the
climatological range [180, 330] K and humidity outside [0, 100] % are
sensor or regridding artifacts and become missing data. Infinities are
always converted to NaN first so they propagate as missing rather than
poisoning downstream arithmetic.
*/

// Wind speed: Inf to NaN, negatives floored at 0 m/s.
func sanitize_wind(g *Grid) *Grid {
	return apply(g, func(v float64) float64 {
		if math.IsInf(v, 0) {
			return math.NaN()
		}
		if v < 0.0 {
			return 0.0
		}
		return v
	})
}

// Shortwave radiation: Inf to NaN, negatives floored at 0 W/m2.
func sanitize_radiation(g *Grid) *Grid {
	return sanitize_wind(g)
}

// Air temperature in K: Inf to NaN, outside [180, 330] K to NaN.
func sanitize_temperature(g *Grid) *Grid {
	return apply(g, func(v float64) float64 {
		if math.IsInf(v, 0) || v < 180.0 || v > 330.0 {
			return math.NaN()
		}
		return v
	})
}

// Relative humidity in %: Inf and negatives to NaN, capped at 100.
func sanitize_humidity(g *Grid) *Grid {
	return apply(g, func(v float64) float64 {
		if math.IsInf(v, 0) || v < 0.0 {
			return math.NaN()
		}
		if v > 100.0 {
			return 100.0
		}
		return v
	})
}

// Sanitize every field of an outdoor batch in place of the originals.
func sanitize_outdoor_input(in outdoor_input) outdoor_input {
	in.tas = sanitize_temperature(in.tas)
	in.tasmax = sanitize_temperature(in.tasmax)
	in.hurs = sanitize_humidity(in.hurs)
	in.sfc_wind = sanitize_wind(in.sfc_wind)
	in.rsds = sanitize_radiation(in.rsds)
	return in
}
