package emitters

import "fmt"

// Fan coil constants: forced convection makes output near-linear in the
// mean water-to-room difference, referenced at 50 K like radiators
const (
	FanCoilReferenceDeltaTK = 50.0
)

// FanCoilSizer sizes fan coil units with a linear correction law
type FanCoilSizer struct{}

// Verify interface compliance
var _ Sizer = (*FanCoilSizer)(nil)

// NewFanCoilSizer creates a fan coil sizer
func NewFanCoilSizer() *FanCoilSizer {
	return &FanCoilSizer{}
}

// Size computes the equivalent ΔT50 unit rating that meets the required
// output at the actual mean water ΔT
func (s *FanCoilSizer) Size(
	requiredOutputW, flowM3S, availablePressurePa, meanDeltaTK float64,
) (*Result, error) {
	if requiredOutputW <= 0 {
		return nil, fmt.Errorf("required output must be positive, got %g", requiredOutputW)
	}
	if meanDeltaTK <= 0 {
		return nil, fmt.Errorf("mean water ΔT must be positive, got %g", meanDeltaTK)
	}

	equivalent := requiredOutputW * FanCoilReferenceDeltaTK / meanDeltaTK

	return &Result{
		EmitterType:         FanCoil,
		RequiredOutputW:     requiredOutputW,
		DeliveredOutputW:    requiredOutputW,
		MeanDeltaTK:         meanDeltaTK,
		FlowM3S:             flowM3S,
		AvailablePressurePa: availablePressurePa,
		EquivalentOutputW:   equivalent,
		GeometryDescriptor:  "equivalent fan coil duty at ΔT50",
		Note: fmt.Sprintf("equivalent output at ΔT50 = %.1f W (linear law)",
			equivalent),
	}, nil
}
