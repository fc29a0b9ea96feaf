package wbgt

// Physical constants of the Liljegren outdoor WBGT model.
const (
	// solar constant, W/m2
	solar_const = 1367.0
	// Stefan-Boltzmann constant, W/(m2 K4)
	stefanb = 5.6696e-8
	// specific heat of dry air at constant pressure, J/(kg K)
	cp_air = 1003.5
	// molecular weight of dry air, g/mol
	m_air = 28.97
	// molecular weight of water vapor, g/mol
	m_h2o = 18.015
	// universal gas constant, J/(kmol K)
	r_gas = 8314.34
	// gas constant of dry air, J/(kg K)
	r_air = r_gas / m_air
	// ratio of specific heat to latent transfer, Cp Ma / Mv
	heat_ratio = cp_air * m_air / m_h2o
	// Prandtl number of air
	pr_air = cp_air / (cp_air + 1.25*r_air)
)

// Geometry and radiative properties of the wick and the globe.
const (
	// emissivity of the wetted wick
	emis_wick = 0.95
	// albedo of the wetted wick
	alb_wick = 0.4
	// diameter of the wick, m
	d_wick = 0.007
	// length of the wick, m
	l_wick = 0.0254
	// emissivity of the black globe
	emis_globe = 0.95
	// albedo of the black globe
	alb_globe = 0.05
	// diameter of the globe, m
	d_globe = 0.0508
	// emissivity of the ground surface
	emis_sfc = 0.999
	// albedo of the ground surface
	alb_sfc = 0.45
)

// Bounds applied by the solar geometry and the solvers.
const (
	// zenith cosine below which the sun is treated as set
	cza_min = 0.00873
	// ceiling on radiation normalized by the top-of-atmosphere value
	normsolar_max = 0.85
	// ceiling on the direct-beam fraction
	fdir_max = 0.9
	// floor applied to wind speed before the Reynolds number, m/s
	min_speed = 0.13
	// floor on reported temperatures, degree C
	min_out_celsius = -100.0
	// default surface pressure when the caller supplies none, hPa
	default_pressure = 1010.0
)

/*
Tuning of the fixed-point solvers.

    Fields:
        convergence: residual tolerance on the global max update, K
        max_iter: iteration cap; reaching it is not an error
        relax: weight kept on the previous estimate when under-relaxing
*/
type solver_params struct {
	convergence float64
	max_iter    int
	relax       float64
}

// Solver tuning matching the reference model.
func default_solver_params() solver_params {
	return solver_params{
		convergence: 0.1,
		max_iter:    10,
		relax:       0.9,
	}
}
