package sizing

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/application/services/shared"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
)

// DefaultMaxVelocityMS is the conventional residential velocity ceiling
// balancing noise against pipe cost.
const DefaultMaxVelocityMS = 1.5

// Rules carries the sizing constraints for one solve
type Rules struct {
	MaxVelocityMS float64
}

// DefaultRules returns the sizing rules used when the caller declares none
func DefaultRules() Rules {
	return Rules{MaxVelocityMS: DefaultMaxVelocityMS}
}

// Engine selects catalog pipe sizes against a velocity ceiling. Selection is
// minimal: the smallest cataloged size whose design velocity stays under the
// ceiling wins; if none qualifies the largest size is chosen and the result
// carries an over-velocity warning instead of failing the solve.
type Engine struct {
	hydraulics *services.HydraulicsCalculator
}

// NewEngine creates a new sizing engine
func NewEngine() *Engine {
	return &Engine{hydraulics: services.NewHydraulicsCalculator()}
}

// SizeLeg sizes one leg at its planned design flow
func (e *Engine) SizeLeg(
	leg *entities.CommittedLeg,
	flow shared.FlowRate,
	material *entities.PipeMaterial,
	fluid *services.FluidState,
	rules Rules,
) (*entities.SizedSegment, error) {
	if leg == nil {
		return nil, fmt.Errorf("leg cannot be nil")
	}
	if material == nil {
		return nil, fmt.Errorf("material cannot be nil")
	}
	if fluid == nil {
		return nil, fmt.Errorf("fluid state cannot be nil")
	}
	if rules.MaxVelocityMS <= 0 {
		return nil, fmt.Errorf("velocity ceiling must be positive, got %g", rules.MaxVelocityMS)
	}

	flowM3S := flow.M3S()
	if flowM3S < 0 {
		return nil, fmt.Errorf("leg %s: design flow cannot be negative, got %g", leg.ID, flowM3S)
	}

	size, velocity, fits := e.selectSize(material, flowM3S, rules.MaxVelocityMS)

	sized := &entities.SizedSegment{
		LegID:             leg.ID,
		Material:          material.Key,
		SizeName:          size.Name,
		InternalDiameterM: size.InternalDiameterM,
		DesignFlowM3S:     flowM3S,
		VelocityMS:        velocity,
	}

	if !fits {
		sized.Warnings = append(sized.Warnings, entities.NewWarning(
			entities.OverVelocity,
			"no %s size keeps velocity under %.2f m/s; largest size %s runs at %.2f m/s",
			material.Key, rules.MaxVelocityMS, size.Name, velocity,
		))
	}

	if flowM3S == 0 {
		sized.Warnings = append(sized.Warnings, entities.NewWarning(
			entities.NoFlow, "leg %s has no design flow", leg.ID,
		))
		return sized, nil
	}

	reynolds := e.hydraulics.ReynoldsNumber(velocity, size.InternalDiameterM, fluid.KinematicViscosityM2S)
	friction := e.hydraulics.FrictionFactor(reynolds, material.RoughnessM/size.InternalDiameterM)
	if !friction.Converged {
		sized.Warnings = append(sized.Warnings, entities.NewWarning(
			entities.NonConverged,
			"friction factor did not converge within %d iterations for leg %s", friction.Iterations, leg.ID,
		))
	}

	sized.ReynoldsNumber = reynolds
	sized.FrictionFactor = friction.Factor
	sized.PressureGradientPaM = e.hydraulics.DarcyWeisbach(
		friction.Factor, 1.0, size.InternalDiameterM, fluid.DensityKgM3, velocity,
	)

	return sized, nil
}

// selectSize walks the ascending size table and returns the first size whose
// velocity fits under the ceiling, or the largest size when none does
func (e *Engine) selectSize(
	material *entities.PipeMaterial,
	flowM3S, maxVelocityMS float64,
) (entities.PipeSize, float64, bool) {
	for _, size := range material.Sizes {
		velocity := e.hydraulics.Velocity(flowM3S, size.InternalDiameterM)
		if velocity <= maxVelocityMS {
			return size, velocity, true
		}
	}

	largest := material.LargestSize()
	return largest, e.hydraulics.Velocity(flowM3S, largest.InternalDiameterM), false
}
