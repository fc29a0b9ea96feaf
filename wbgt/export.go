package wbgt

/*
Exported calculation surface over the snake_case internals.

Collaborators (dataset readers, batch runners) construct grids, call one
of the Compute functions and persist the returned grids; nothing here
performs I/O.
*/

// Input fields of one outdoor batch. Lat/Lon may be 1-D coordinate
// vectors and DayOfYear a 1-D series; the pipeline expands them.
// A nil Pressure selects the 1010 hPa default.
type OutdoorInput struct {
	Tas       *Grid // daily mean air temperature, K
	Tasmax    *Grid // daily max air temperature, K
	Hurs      *Grid // relative humidity, %
	SfcWind   *Grid // wind speed, m/s
	Rsds      *Grid // downward shortwave radiation, W/m2
	Lat       *Grid // latitude, degree
	Lon       *Grid // longitude, degree
	DayOfYear *Grid // day of year (1/1 = 1)
	Pressure  *Grid // barometric pressure, hPa
}

// Outdoor WBGT fields, degree C.
type OutdoorResult struct {
	WBGTmin  *Grid // from the daily mean temperature
	WBGTmax  *Grid // from the daily max temperature
	WBGThalf *Grid // (min + max) / 2
	Tnwb     *Grid // natural wet-bulb temperature (mean field)
	Tg       *Grid // globe temperature (mean field)

	// Converged reports whether every fixed-point solve met its residual
	// tolerance before the iteration cap. A false value still carries a
	// usable best-effort result.
	Converged bool
}

/*
Compute outdoor WBGT for one batch, sanitizing the inputs first.

Shape mismatches between fields panic at the offending elementwise
operation: malformed input is a caller contract violation, not a
recoverable condition. Missing data (NaN) flows through to the outputs.
*/
func ComputeOutdoor(in OutdoorInput) OutdoorResult {
	res := calc_wbgt_outdoor(sanitize_outdoor_input(outdoor_input{
		tas:         in.Tas,
		tasmax:      in.Tasmax,
		hurs:        in.Hurs,
		sfc_wind:    in.SfcWind,
		rsds:        in.Rsds,
		lat:         in.Lat,
		lon:         in.Lon,
		day_of_year: in.DayOfYear,
		pressure:    in.Pressure,
	}), default_solver_params())
	return OutdoorResult{
		WBGTmin:   res.wbgt_min,
		WBGTmax:   res.wbgt_max,
		WBGThalf:  res.wbgt_half,
		Tnwb:      res.t_nwb,
		Tg:        res.t_g,
		Converged: res.converged,
	}
}

// Indoor WBGT fields, degree C.
type IndoorResult struct {
	WBGTmin  *Grid
	WBGTmax  *Grid
	WBGThalf *Grid
}

/*
Compute indoor WBGT from temperatures in degree C and relative humidity
in percent.
*/
func ComputeIndoor(tasC, tasmaxC, hurs *Grid) IndoorResult {
	wmin, wmax, whalf := calc_wbgt_indoor(tasC, tasmaxC, hurs)
	return IndoorResult{WBGTmin: wmin, WBGTmax: wmax, WBGThalf: whalf}
}

// Fraction of labor capacity lost at the given daily WBGT exposure.
func ProductivityLoss(wbgt *Grid, intensity Intensity) *Grid {
	return productivity_loss(wbgt, intensity)
}

// Time-mean capacity loss over the leading axis, ignoring missing days.
func AnnualMeanLoss(wbgt *Grid, intensity Intensity) *Grid {
	return annual_mean_loss(wbgt, intensity)
}
