package services

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// FluidConditioner resolves fluid properties at an operating temperature and
// checks requests against the fluid's rated envelope
type FluidConditioner struct{}

// NewFluidConditioner creates a new fluid conditioner
func NewFluidConditioner() *FluidConditioner {
	return &FluidConditioner{}
}

// FluidState carries the properties of a fluid evaluated at one operating
// condition, ready for hydraulic calculations
type FluidState struct {
	Fluid                 *entities.Fluid
	TemperatureC          *float64
	DensityKgM3           float64
	KinematicViscosityM2S float64
	SpecificHeatJKgK      float64
}

// Resolve evaluates a fluid at the given operating temperature. A nil
// temperature uses the fluid's reference properties. A declared temperature
// must lie inside the fluid's rated range and above its freeze point.
func (fc *FluidConditioner) Resolve(fluid *entities.Fluid, temperatureC *float64) (*FluidState, error) {
	if fluid == nil {
		return nil, fmt.Errorf("fluid cannot be nil")
	}

	if temperatureC == nil {
		return &FluidState{
			Fluid:                 fluid,
			DensityKgM3:           fluid.DensityKgM3,
			KinematicViscosityM2S: fluid.KinematicViscosity(),
			SpecificHeatJKgK:      fluid.SpecificHeatJKgK,
		}, nil
	}

	t := *temperatureC
	if err := fc.CheckOperatingRange(fluid, t); err != nil {
		return nil, err
	}

	return &FluidState{
		Fluid:                 fluid,
		TemperatureC:          temperatureC,
		DensityKgM3:           fluid.DensityAt(t),
		KinematicViscosityM2S: fluid.KinematicViscosityAt(t),
		SpecificHeatJKgK:      fluid.SpecificHeatJKgK,
	}, nil
}

// CheckOperatingRange verifies that a temperature lies inside the fluid's
// rated range and clear of its freeze point
func (fc *FluidConditioner) CheckOperatingRange(fluid *entities.Fluid, temperatureC float64) error {
	if temperatureC < fluid.MinTempC || temperatureC > fluid.MaxTempC {
		return fmt.Errorf(
			"fluid %s is rated for %.1f°C to %.1f°C, got %.1f°C",
			fluid.Key, fluid.MinTempC, fluid.MaxTempC, temperatureC,
		)
	}
	if temperatureC <= fluid.FreezePointC {
		return fmt.Errorf(
			"fluid %s freezes at %.1f°C, cannot operate at %.1f°C",
			fluid.Key, fluid.FreezePointC, temperatureC,
		)
	}
	return nil
}
