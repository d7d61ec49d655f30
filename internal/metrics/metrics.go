package metrics

import "github.com/san-kum/boxsim/internal/sim"

// Defaults returns the metrics attached to every CLI run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewMinSeparation(),
		NewMeanSpeed(),
	}
}
