package emitters

import (
	"fmt"
	"math"
)

// Radiator correction law constants: panel outputs are catalogued at a
// 50 K mean water-to-room difference and scale as (ΔT/50)^1.3
const (
	RadiatorReferenceDeltaTK = 50.0
	RadiatorExponent         = 1.3
)

// RadiatorSizer sizes panel radiators via the standard correction law
type RadiatorSizer struct{}

// Verify interface compliance
var _ Sizer = (*RadiatorSizer)(nil)

// NewRadiatorSizer creates a radiator sizer
func NewRadiatorSizer() *RadiatorSizer {
	return &RadiatorSizer{}
}

// Size computes the equivalent ΔT50 catalog rating that meets the required
// output at the actual mean water ΔT
func (s *RadiatorSizer) Size(
	requiredOutputW, flowM3S, availablePressurePa, meanDeltaTK float64,
) (*Result, error) {
	if requiredOutputW <= 0 {
		return nil, fmt.Errorf("required output must be positive, got %g", requiredOutputW)
	}
	if meanDeltaTK <= 0 {
		return nil, fmt.Errorf("mean water ΔT must be positive, got %g", meanDeltaTK)
	}

	correction := math.Pow(meanDeltaTK/RadiatorReferenceDeltaTK, RadiatorExponent)
	equivalent := requiredOutputW / correction

	return &Result{
		EmitterType:         Radiator,
		RequiredOutputW:     requiredOutputW,
		DeliveredOutputW:    requiredOutputW,
		MeanDeltaTK:         meanDeltaTK,
		FlowM3S:             flowM3S,
		AvailablePressurePa: availablePressurePa,
		EquivalentOutputW:   equivalent,
		GeometryDescriptor:  "equivalent radiator sized at ΔT50",
		Note: fmt.Sprintf("equivalent output at ΔT50 = %.1f W (n=%.1f)",
			equivalent, RadiatorExponent),
	}, nil
}
