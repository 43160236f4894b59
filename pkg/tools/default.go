package tools

// Default returns a registry holding every geomechanics tool.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(
		// stress
		define[verticalStressRequest]("geomech_vertical_stress", CategoryStress,
			"Overburden stress and gradient from bulk density, with an optional water column",
			`{"depth": 10000, "avg_density": 144}`, verticalStress),
		define[effectiveStressRequest]("geomech_effective_stress", CategoryStress,
			"Terzaghi/Biot effective stress for scalars or arrays",
			`{"total_stress": [9000, 10000], "pore_pressure": 4650, "biot_coefficient": 1}`, effectiveStress),
		define[horizontalStressRequest]("geomech_horizontal_stress", CategoryStress,
			"Minimum and maximum horizontal stress from uniaxial strain plus a tectonic factor",
			`{"vertical_stress": 10000, "pore_pressure": 4650, "poisson_ratio": 0.25, "tectonic_factor": 0.5}`, horizontalStress),
		define[stressPolygonRequest]("geomech_stress_polygon", CategoryStress,
			"Frictional limits on horizontal stresses for each faulting regime",
			`{"vertical_stress": 10000, "pore_pressure": 4650, "sigma_h_min": 7000, "sigma_h_max": 9000}`, stressPolygon),
		define[stressPathRequest]("geomech_stress_path", CategoryStress,
			"Horizontal stress change during depletion or injection",
			`{"initial_pore_pressure": 5000, "final_pore_pressure": 3000, "vertical_stress": 10000, "initial_sigma_h": 7000, "poisson_ratio": 0.25}`, stressPath),
		define[thermalStressRequest]("geomech_thermal_stress", CategoryStress,
			"Wall stress change from heating or cooling the borehole",
			`{"temperature_change": -50, "youngs_modulus": 2000000, "poisson_ratio": 0.25}`, thermalStress),

		// pore pressure
		define[eatonRequest]("geomech_pore_pressure_eaton", CategoryPorePressure,
			"Eaton pore pressure from sonic or resistivity logs",
			`{"depth": 10000, "observed_value": 120, "normal_value": 100, "overburden_psi": 10000}`, eaton),

		// rock properties
		define[elasticModuliRequest]("geomech_elastic_moduli_conversion", CategoryRock,
			"Complete isotropic moduli set from any two known moduli",
			`{"youngs_modulus": 2000000, "poisson_ratio": 0.25}`, elasticModuli),
		define[dynamicToStaticRequest]("geomech_dynamic_to_static_moduli", CategoryRock,
			"Static Young's modulus and Poisson's ratio from log-derived dynamic values",
			`{"dynamic_youngs": 3000000, "dynamic_poisson": 0.3}`, dynamicToStatic),
		define[poreCompressibilityRequest]("geomech_pore_compressibility", CategoryRock,
			"Pore volume compressibility from bulk and grain compressibility",
			`{"porosity": 0.2, "youngs_modulus": 500000, "poisson_ratio": 0.25}`, poreCompressibility),

		// strength
		define[mohrCoulombRequest]("geomech_rock_strength_mohr_coulomb", CategoryStrength,
			"Mohr-Coulomb strength at a confining stress",
			`{"cohesion": 500, "friction_angle": 30, "effective_stress_min": 2000}`, mohrCoulomb),
		define[shearCriteriaRequest]("geomech_shear_failure_criteria", CategoryStrength,
			"Compare a stress state against several shear failure criteria",
			`{"sigma_1": 8000, "sigma_2": 6000, "sigma_3": 3000, "ucs": 5000, "cohesion": 1000, "friction_angle": 30}`, shearCriteria),
		define[ucsFromLogsRequest]("geomech_ucs_from_logs", CategoryStrength,
			"Unconfined compressive strength from sonic, porosity or modulus logs",
			`{"sonic_dt": 80, "lithology": "sandstone", "correlation": "mcnally"}`, ucsFromLogs),

		// wellbore
		define[breakoutRequest]("geomech_breakout_width", CategoryWellbore,
			"Breakout width and critical mud weight for a vertical well",
			`{"sigma_h_max": 9000, "sigma_h_min": 7000, "pore_pressure": 4650, "mud_weight": 11, "wellbore_azimuth": 0, "ucs": 3000, "friction_angle": 30, "depth": 10000}`, breakoutWidth),
		define[collapseRequest]("geomech_critical_mud_weight_collapse", CategoryWellbore,
			"Minimum mud weight against shear collapse",
			`{"sigma_h_max": 9000, "sigma_h_min": 7000, "pore_pressure": 4650, "cohesion": 800, "friction_angle": 30, "wellbore_azimuth": 0, "depth": 10000}`, collapseMudWeight),
		define[deviatedWellRequest]("geomech_deviated_well_stress", CategoryWellbore,
			"Stress tensor and wall stresses for an inclined well",
			`{"sigma_v": 10000, "sigma_h_max": 9000, "sigma_h_min": 7000, "sigma_h_max_azimuth": 45, "well_azimuth": 90, "well_inclination": 30, "pore_pressure": 4650, "mud_weight": 10, "depth": 10000}`, deviatedWell),
		define[inversionRequest]("geomech_breakout_stress_inversion", CategoryWellbore,
			"Estimate maximum horizontal stress from an observed breakout width",
			`{"breakout_width": 60, "sigma_v": 10000, "pore_pressure": 4650, "mud_weight": 10, "ucs": 5000, "friction_angle": 30, "depth": 10000}`, breakoutInversion),

		// drilling stability
		define[fractureGradientRequest]("geomech_fracture_gradient", CategoryStability,
			"Fracture pressure and gradient by Eaton, Hubbert-Willis or Matthews-Kelly",
			`{"depth": 10000, "vertical_stress": 10000, "pore_pressure": 4650}`, fractureGradient),
		define[mudWindowRequest]("geomech_safe_mud_weight_window", CategoryStability,
			"Safe mud weight window between pore, collapse and fracture limits",
			`{"pore_pressure": 4680, "fracture_pressure": 7800, "depth": 10000}`, mudWindow),
		define[tensileRequest]("geomech_tensile_failure", CategoryStability,
			"Tensile fracture initiation, reopening and propagation pressures",
			`{"sigma_h_max": 9000, "sigma_h_min": 7000, "pore_pressure": 4650, "tensile_strength": 500, "depth": 10000}`, tensileFailure),
		define[breakdownRequest]("geomech_breakdown_pressure", CategoryStability,
			"Breakdown pressure bounds for impermeable and permeable rock",
			`{"sigma_h_max": 9000, "sigma_h_min": 7000, "pore_pressure": 4650, "tensile_strength": 500, "poroelastic_constant": 0.5}`, breakdownPressure),
		define[leakOffRequest]("geomech_leak_off_pressure", CategoryStability,
			"Minimum horizontal stress from a leak-off or integrity test",
			`{"leak_off_pressure": 1500, "mud_weight": 10, "test_depth": 5000, "pore_pressure": 2300}`, leakOff),

		// production
		define[compactionRequest]("geomech_reservoir_compaction", CategoryProduction,
			"Uniaxial reservoir compaction and surface subsidence from depletion",
			`{"pressure_drop": 2000, "reservoir_thickness": 100, "youngs_modulus": 1000000, "poisson_ratio": 0.25}`, compaction),
		define[fractureWidthRequest]("geomech_hydraulic_fracture_width", CategoryProduction,
			"PKN or KGD hydraulic fracture width",
			`{"net_pressure": 500, "fracture_height": 100, "fracture_half_length": 500, "youngs_modulus": 2000000, "poisson_ratio": 0.25}`, fractureWidth),
		define[sandProductionRequest]("geomech_sand_production", CategoryProduction,
			"Sanding onset drawdown and risk for a perforated completion",
			`{"sigma_h_max": 9000, "sigma_h_min": 7000, "pore_pressure": 4650, "ucs": 15000, "cohesion": 1000, "friction_angle": 30, "permeability": 100, "porosity": 0.2}`, sandProduction),
		define[drawdownRequest]("geomech_critical_drawdown", CategoryProduction,
			"Critical drawdown before shear failure of the wellbore wall",
			`{"sigma_h_max": 9000, "sigma_h_min": 7000, "reservoir_pressure": 4650, "ucs": 5000, "cohesion": 1000, "friction_angle": 30}`, criticalDrawdown),

		// faults
		define[faultRequest]("geomech_fault_stability", CategoryFault,
			"Slip and dilation tendency and critical pore pressure on a fault",
			`{"sigma_1": 10000, "sigma_3": 6000, "pore_pressure": 4650, "fault_strike": 45, "fault_dip": 60}`, faultStability),
	)
	return r
}
