package service

// EPS is the rate perturbation used for central-difference sensitivities.
const EPS = 1e-4

// Tenor unit multipliers, whole days per unit.
const (
	daysPerDay   = 1
	daysPerWeek  = 7
	daysPerMonth = 30
	daysPerYear  = 360
)
