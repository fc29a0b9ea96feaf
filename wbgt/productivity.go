package wbgt

import "math"

/*
Labor productivity loss as a function of WBGT, per work intensity.
The loss saturates at 90% capacity loss under extreme heat.
*/

// Physical work intensity class of the exposed labor.
type Intensity int

const (
	IntensityLow Intensity = iota
	IntensityMedium
	IntensityHigh
)

func (i Intensity) String() string {
	switch i {
	case IntensityLow:
		return "low"
	case IntensityMedium:
		return "medium"
	case IntensityHigh:
		return "high"
	default:
		panic("wbgt: unknown intensity")
	}
}

// Midpoint and steepness of the loss sigmoid per intensity class.
func (i Intensity) sigmoid_params() (alpha, beta float64) {
	switch i {
	case IntensityLow:
		return 34.64, 22.72
	case IntensityMedium:
		return 32.93, 17.81
	case IntensityHigh:
		return 30.94, 16.64
	default:
		panic("wbgt: unknown intensity")
	}
}

/*
Fraction of labor capacity lost at a given heat exposure.

    Args:
        wbgt: Wet Bulb Globe Temperature, degree C
        intensity: work intensity class

    Returns:
        capacity loss fraction, [0, 0.9]

    Notes:
        loss = 0.9 - 0.9 / (1 + (WBGT/alpha)^beta). Non-positive WBGT
        contributes no loss; the power term is only defined for positive
        bases.
*/
func productivity_loss(wbgt *Grid, intensity Intensity) *Grid {
	alpha, beta := intensity.sigmoid_params()
	return apply(wbgt, func(w float64) float64 {
		if math.IsNaN(w) {
			return math.NaN()
		}
		if w <= 0.0 {
			return 0.0
		}
		return 0.9 - 0.9/(1.0+math.Pow(w/alpha, beta))
	})
}

/*
Annual mean capacity loss over the leading time axis, ignoring missing
days. Cells missing at every step stay NaN.

    Args:
        wbgt: daily WBGT, degree C, [t, ...]
        intensity: work intensity class

    Returns:
        time-mean loss fraction over the remaining axes
*/
func annual_mean_loss(wbgt *Grid, intensity Intensity) *Grid {
	return nanmean_axis0(productivity_loss(wbgt, intensity))
}
