package entities

import (
	"fmt"
	"sort"
)

// FluidKey represents a stable catalog identifier for a circulating fluid
type FluidKey string

// TemperatureCurve holds a small engineering interpolation table of a fluid
// property against temperature. Lookups interpolate linearly between points
// and extrapolate linearly beyond the table ends.
type TemperatureCurve struct {
	TempsC []float64
	Values []float64
}

// NewTemperatureCurve creates a validated TemperatureCurve
func NewTemperatureCurve(tempsC, values []float64) (*TemperatureCurve, error) {
	if len(tempsC) == 0 {
		return nil, fmt.Errorf("temperature curve cannot be empty")
	}
	if len(tempsC) != len(values) {
		return nil, fmt.Errorf(
			"temperature curve length mismatch: %d temperatures, %d values",
			len(tempsC), len(values),
		)
	}
	for i := 1; i < len(tempsC); i++ {
		if tempsC[i] <= tempsC[i-1] {
			return nil, fmt.Errorf(
				"temperature curve must be strictly increasing, got %.2f after %.2f",
				tempsC[i], tempsC[i-1],
			)
		}
	}

	return &TemperatureCurve{
		TempsC: tempsC,
		Values: values,
	}, nil
}

// At returns the interpolated property value at the given temperature
func (c *TemperatureCurve) At(tempC float64) float64 {
	n := len(c.TempsC)
	if n == 1 {
		return c.Values[0]
	}

	// Pick the bracketing segment; the end segments also serve extrapolation.
	i := sort.SearchFloat64s(c.TempsC, tempC)
	if i <= 0 {
		i = 1
	} else if i >= n {
		i = n - 1
	}

	t0, t1 := c.TempsC[i-1], c.TempsC[i]
	v0, v1 := c.Values[i-1], c.Values[i]
	return v0 + (v1-v0)*(tempC-t0)/(t1-t0)
}

// Fluid represents the thermophysical property set of a circulating fluid.
// Static reference values are always present; the optional curves refine
// density and viscosity when an operating temperature is known.
type Fluid struct {
	Key  FluidKey
	Name string

	// Static reference values (fallbacks)
	DensityKgM3         float64
	DynamicViscosityPaS float64
	SpecificHeatJKgK    float64
	ConductivityWMK     float64

	// Optional temperature-dependent models
	DensityCurve   *TemperatureCurve
	ViscosityCurve *TemperatureCurve

	// Brand info for commercial heat-transfer fluids
	Brand            string
	ProductLine      string
	ConcentrationPct float64

	FreezePointC float64
	MinTempC     float64
	MaxTempC     float64
}

// NewFluid creates a validated Fluid
func NewFluid(
	key FluidKey,
	name string,
	densityKgM3, dynamicViscosityPaS, specificHeatJKgK, conductivityWMK float64,
	freezePointC, minTempC, maxTempC float64,
) (*Fluid, error) {
	if string(key) == "" {
		return nil, fmt.Errorf("fluid key cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("fluid name cannot be empty")
	}
	if densityKgM3 <= 0 {
		return nil, fmt.Errorf("density must be positive, got %g", densityKgM3)
	}
	if dynamicViscosityPaS <= 0 {
		return nil, fmt.Errorf("dynamic viscosity must be positive, got %g", dynamicViscosityPaS)
	}
	if specificHeatJKgK <= 0 {
		return nil, fmt.Errorf("specific heat must be positive, got %g", specificHeatJKgK)
	}
	if conductivityWMK <= 0 {
		return nil, fmt.Errorf("thermal conductivity must be positive, got %g", conductivityWMK)
	}
	if maxTempC <= minTempC {
		return nil, fmt.Errorf(
			"operating range invalid: max %.1f°C must exceed min %.1f°C",
			maxTempC, minTempC,
		)
	}

	return &Fluid{
		Key:                 key,
		Name:                name,
		DensityKgM3:         densityKgM3,
		DynamicViscosityPaS: dynamicViscosityPaS,
		SpecificHeatJKgK:    specificHeatJKgK,
		ConductivityWMK:     conductivityWMK,
		FreezePointC:        freezePointC,
		MinTempC:            minTempC,
		MaxTempC:            maxTempC,
	}, nil
}

// DensityAt returns density [kg/m³] at the given temperature if a curve
// exists, otherwise the static reference value
func (f *Fluid) DensityAt(tempC float64) float64 {
	if f.DensityCurve != nil {
		return f.DensityCurve.At(tempC)
	}
	return f.DensityKgM3
}

// ViscosityAt returns dynamic viscosity [Pa·s] at the given temperature if a
// curve exists, otherwise the static reference value
func (f *Fluid) ViscosityAt(tempC float64) float64 {
	if f.ViscosityCurve != nil {
		return f.ViscosityCurve.At(tempC)
	}
	return f.DynamicViscosityPaS
}

// KinematicViscosity returns ν = μ/ρ [m²/s] from the static reference values
func (f *Fluid) KinematicViscosity() float64 {
	return f.DynamicViscosityPaS / f.DensityKgM3
}

// KinematicViscosityAt returns ν = μ/ρ [m²/s] at the given temperature
func (f *Fluid) KinematicViscosityAt(tempC float64) float64 {
	return f.ViscosityAt(tempC) / f.DensityAt(tempC)
}
