package wbgt

/*
Outdoor WBGT pipeline: solar geometry, both fixed-point solvers and the
standard linear blend.

The driver runs the pipeline once per temperature field that needs a WBGT
value (daily mean and daily max), sharing the humidity, wind, radiation
and solar state between runs.
*/

/*
Weighted blend of the three component temperatures into the WBGT index.

    Args:
        t_nwb: natural wet-bulb temperature, degree C
        t_g: globe temperature, degree C
        tair_k: air temperature, K

    Returns:
        WBGT, degree C

    Notes:
        WBGT = 0.7 Tnwb + 0.2 Tg + 0.1 Ta per the standard definition.
*/
func combine_wbgt(t_nwb, t_g, tair_k *Grid) *Grid {
	return t_nwb.scale(0.7).
		add(t_g.scale(0.2)).
		add(tair_k.shift(-273.15).scale(0.1))
}

/*
Outdoor WBGT for a single temperature field.

    Args:
        tair_k: air temperature, K
        rh_percent: relative humidity, % [0, 100]
        speed: wind speed, m/s
        radiation: measured downward shortwave radiation, W/m2
        day_of_year: day of year grid, broadcast-ready against lat/lon
        lat: latitude field, degree
        lon: longitude field, degree
        pair: barometric pressure, hPa (nil for the 1010 hPa default)
        pa: solver tuning

    Returns:
        tuple
            (1) WBGT, degree C
            (2) natural wet-bulb solve result
            (3) globe solve result
*/
func calc_wbgt(tair_k, rh_percent, speed, radiation, day_of_year, lat, lon, pair *Grid, pa solver_params) (*Grid, solve_result, solve_result) {
	if pair == nil {
		pair = Scalar(default_pressure)
	}

	solar, cza, fdir := calc_solar_parameters(day_of_year, lat, lon, radiation)

	rh := rh_percent.scale(1.0 / 100.0)
	nwb := solve_wet_bulb(tair_k, rh, pair, speed, solar, fdir, cza, pa)
	globe := solve_globe_temperature(tair_k, rh, pair, speed, solar, fdir, cza, pa)

	return combine_wbgt(nwb.value, globe.value, tair_k), nwb, globe
}

/*
Input fields of one outdoor batch. All fields must be broadcast-
compatible; Lat/Lon may be 1-D coordinate vectors and DayOfYear a 1-D
series, both of which the driver expands explicitly.
*/
type outdoor_input struct {
	tas         *Grid // daily mean air temperature, K
	tasmax      *Grid // daily max air temperature, K
	hurs        *Grid // relative humidity, %
	sfc_wind    *Grid // wind speed, m/s
	rsds        *Grid // downward shortwave radiation, W/m2
	lat         *Grid // latitude, degree
	lon         *Grid // longitude, degree
	day_of_year *Grid // day of year (1/1 = 1)
	pressure    *Grid // barometric pressure, hPa; nil defaults to 1010
}

// Output fields of one outdoor batch, all in degree C.
type outdoor_result struct {
	wbgt_min  *Grid // WBGT from the daily mean temperature
	wbgt_max  *Grid // WBGT from the daily max temperature
	wbgt_half *Grid // (min + max) / 2
	t_nwb     *Grid // natural wet-bulb temperature (mean field)
	t_g       *Grid // globe temperature (mean field)
	converged bool  // every solve passed its residual gate
}

/*
Run the full outdoor pipeline for one batch.

    Notes:
        1-D lat/lon vectors are expanded to 2-D coordinate fields and a
        1-D day-of-year series gains the [t, 1, 1] shape here, so the
        solvers themselves only ever see broadcast-ready grids.
*/
func calc_wbgt_outdoor(in outdoor_input, pa solver_params) outdoor_result {
	lat, lon := in.lat, in.lon
	if lat.Rank() == 1 && lon.Rank() == 1 {
		lon, lat = Meshgrid(lon, lat)
	}

	doy := in.day_of_year
	if doy.Rank() == 1 && lat.Rank() == 2 {
		doy = doy.Reshape(doy.Size(), 1, 1)
	}

	wbgt_min, nwb, globe := calc_wbgt(in.tas, in.hurs, in.sfc_wind, in.rsds, doy, lat, lon, in.pressure, pa)
	wbgt_max, nwb_max, globe_max := calc_wbgt(in.tasmax, in.hurs, in.sfc_wind, in.rsds, doy, lat, lon, in.pressure, pa)

	return outdoor_result{
		wbgt_min:  wbgt_min,
		wbgt_max:  wbgt_max,
		wbgt_half: wbgt_min.add(wbgt_max).scale(0.5),
		t_nwb:     nwb.value,
		t_g:       globe.value,
		converged: nwb.converged && globe.converged && nwb_max.converged && globe_max.converged,
	}
}
