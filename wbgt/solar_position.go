package wbgt

import "math"

/*
Solar geometry: declination, zenith angle and the split of measured
global radiation into direct and diffuse components.

All functions broadcast, so a [t, 1, 1] day-of-year grid combines with
[ny, nx] coordinate fields into [t, ny, nx] solar state.
*/

const deg_rad = math.Pi / 180.0
const rad_deg = 180.0 / math.Pi

// Sun-earth angle over the year, rad. Day of year counts 1/1 as 1.
func sun_earth_angle(day_of_year *Grid) *Grid {
	return apply(day_of_year, func(d float64) float64 {
		return 2.0 * math.Pi * (d - 1.0) / 365.0
	})
}

/*
Solar declination.

    Args:
        gamma: sun-earth angle, rad

    Returns:
        declination, rad

    Notes:
        Spencer's truncated Fourier series, 7 harmonic terms.
*/
func solar_declination(gamma *Grid) *Grid {
	return apply(gamma, func(g float64) float64 {
		return 0.006918 -
			0.399912*math.Cos(g) + 0.070257*math.Sin(g) -
			0.006758*math.Cos(2.0*g) + 0.000907*math.Sin(2.0*g) -
			0.002697*math.Cos(3.0*g) + 0.001480*math.Sin(3.0*g)
	})
}

/*
Equation of time.

    Args:
        gamma: sun-earth angle, rad

    Returns:
        difference between apparent and mean solar time, minutes
*/
func equation_of_time(gamma *Grid) *Grid {
	return apply(gamma, func(g float64) float64 {
		return 229.18 * (0.000075 +
			0.001868*math.Cos(g) - 0.032077*math.Sin(g) -
			0.014615*math.Cos(2.0*g) - 0.040849*math.Sin(2.0*g))
	})
}

/*
Cosine of the solar zenith angle.

    Args:
        day_of_year: day of year grid (1/1 = 1)
        lat: latitude, degree
        lon: longitude, degree
        hour: local standard hour of day (UTC based, time zone 0)

    Returns:
        zenith-angle cosine, clamped to [-1, 1]

    Notes:
        The hour angle includes the equation of time and the 4 min/degree
        longitude offset. Floating-point accumulation can push the raw
        cosine marginally outside its domain, so the result is clamped;
        anything further outside would be a contract violation upstream.
*/
func zenith_cosine(day_of_year, lat, lon *Grid, hour float64) *Grid {
	gamma := sun_earth_angle(day_of_year)
	decl := solar_declination(gamma)
	et := equation_of_time(gamma)

	// solar time offset, minutes
	time_offset := zip_with(et, lon, func(e, ln float64) float64 {
		return e + 4.0*ln
	})
	// hour angle, rad
	hour_angle := apply(time_offset, func(off float64) float64 {
		return (hour + off/60.0 - 12.0) * 15.0 * deg_rad
	})

	rad_lat := lat.scale(deg_rad)
	cza := zip_with3(rad_lat, decl, hour_angle, func(la, dc, ha float64) float64 {
		return math.Sin(la)*math.Sin(dc) + math.Cos(la)*math.Cos(dc)*math.Cos(ha)
	})
	return cza.clip(-1.0, 1.0)
}

/*
Direct/diffuse decomposition of measured global radiation.

    Args:
        solar: measured downward shortwave radiation, W/m2
        cza: zenith-angle cosine

    Returns:
        tuple
            (1) radiation adjusted for the top-of-atmosphere ceiling, W/m2
            (2) direct-beam fraction, [0, 0.9]

    Notes:
        The top-of-atmosphere flux is zeroed where cza < cza_min (sun at
        or below the horizon), and the normalized ratio is defined as 0
        there rather than dividing by zero. A normalized ratio of exactly
        0 forces the direct fraction to 0; the empirical exponential has a
        1/n term and is undefined at 0.
*/
func decompose_radiation(solar, cza *Grid) (*Grid, *Grid) {
	toasolar := apply(cza, func(c float64) float64 {
		if c < cza_min {
			return 0.0
		}
		return solar_const * math.Max(0.0, c)
	})
	normsolar := zip_with(solar, toasolar, func(s, toa float64) float64 {
		if toa <= 0.0 {
			return 0.0
		}
		return math.Min(s/toa, normsolar_max)
	})
	adjusted := normsolar.mul(toasolar)
	fdir := apply(normsolar, func(n float64) float64 {
		if !(n > 0.0) {
			return 0.0
		}
		f := math.Exp(3.0 - 1.34*n - 1.65/n)
		return math.Min(math.Max(f, 0.0), fdir_max)
	})
	return adjusted, fdir
}

/*
Full solar state for one batch: noon zenith cosine plus the direct/diffuse
split of the measured radiation.

    Args:
        day_of_year: day of year grid, reshaped by the caller to broadcast
            against the coordinate fields
        lat: latitude, degree
        lon: longitude, degree
        solar: measured downward shortwave radiation, W/m2

    Returns:
        tuple
            (1) adjusted radiation, W/m2
            (2) zenith-angle cosine
            (3) direct-beam fraction
*/
func calc_solar_parameters(day_of_year, lat, lon, solar *Grid) (*Grid, *Grid, *Grid) {
	cza := zenith_cosine(day_of_year, lat, lon, 12.0)
	adjusted, fdir := decompose_radiation(solar, cza)
	return adjusted, cza, fdir
}
