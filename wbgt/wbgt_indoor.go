package wbgt

import "math"

/*
Indoor WBGT from the closed-form Stull wet-bulb approximation. No
radiation or wind enters indoors, so there is nothing to iterate.
*/

/*
Psychrometric wet-bulb temperature after Stull (2011).

    Args:
        t_c: air temperature, degree C
        rh_percent: relative humidity, % [0, 100]

    Returns:
        wet-bulb temperature, degree C
*/
func stull_wet_bulb(t_c, rh_percent *Grid) *Grid {
	return zip_with(t_c, rh_percent, func(t, rh float64) float64 {
		return t*math.Atan(0.151977*math.Sqrt(rh+8.313659)) +
			math.Atan(t+rh) -
			math.Atan(rh-1.676331) +
			0.00391838*math.Pow(rh, 1.5)*math.Atan(0.023101*rh) -
			4.686035
	})
}

/*
Indoor WBGT for the daily mean and max temperature fields.

    Args:
        tas_c: daily mean air temperature, degree C
        tasmax_c: daily max air temperature, degree C
        hurs: relative humidity, % [0, 100]

    Returns:
        tuple
            (1) WBGT from the mean field, degree C
            (2) WBGT from the max field, degree C
            (3) (min + max) / 2, degree C

    Notes:
        Indoor blend is 0.7 WBT + 0.3 Ta (no globe term).
*/
func calc_wbgt_indoor(tas_c, tasmax_c, hurs *Grid) (*Grid, *Grid, *Grid) {
	wbt_mean := stull_wet_bulb(tas_c, hurs)
	wbt_max := stull_wet_bulb(tasmax_c, hurs)

	wbgt_min := wbt_mean.scale(0.7).add(tas_c.scale(0.3))
	wbgt_max := wbt_max.scale(0.7).add(tasmax_c.scale(0.3))
	wbgt_half := wbgt_min.add(wbgt_max).scale(0.5)

	return wbgt_min, wbgt_max, wbgt_half
}
