package emitters

import (
	"fmt"
	"math"
)

// Underfloor heating constants: loop outputs are catalogued at a 25 K mean
// water-to-room difference with a flatter correction exponent than panel
// radiators, and screeded floors emit about 80 W per active square metre
const (
	UFHReferenceDeltaTK = 25.0
	UFHExponent         = 1.1
	UFHFloorOutputWM2   = 80.0
)

// UFHSizer sizes underfloor heating loops by active floor area
type UFHSizer struct{}

// Verify interface compliance
var _ Sizer = (*UFHSizer)(nil)

// NewUFHSizer creates an underfloor heating sizer
func NewUFHSizer() *UFHSizer {
	return &UFHSizer{}
}

// Size computes the equivalent ΔT25 loop rating and the active floor area
// that meets the required output at the actual mean water ΔT
func (s *UFHSizer) Size(
	requiredOutputW, flowM3S, availablePressurePa, meanDeltaTK float64,
) (*Result, error) {
	if requiredOutputW <= 0 {
		return nil, fmt.Errorf("required output must be positive, got %g", requiredOutputW)
	}
	if meanDeltaTK <= 0 {
		return nil, fmt.Errorf("mean water ΔT must be positive, got %g", meanDeltaTK)
	}

	correction := math.Pow(meanDeltaTK/UFHReferenceDeltaTK, UFHExponent)
	equivalent := requiredOutputW / correction
	floorAreaM2 := equivalent / UFHFloorOutputWM2

	return &Result{
		EmitterType:         UnderfloorLoop,
		RequiredOutputW:     requiredOutputW,
		DeliveredOutputW:    requiredOutputW,
		MeanDeltaTK:         meanDeltaTK,
		FlowM3S:             flowM3S,
		AvailablePressurePa: availablePressurePa,
		EquivalentOutputW:   equivalent,
		GeometryDescriptor: fmt.Sprintf("%.1f m² active floor at %.0f W/m²",
			floorAreaM2, UFHFloorOutputWM2),
		Note: fmt.Sprintf("equivalent output at ΔT25 = %.1f W (n=%.1f)",
			equivalent, UFHExponent),
	}, nil
}
