package pressure

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/repositories"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
)

// LegLoss breaks one leg's total pressure loss into its friction and
// fitting shares
type LegLoss struct {
	LegID        entities.LegID `json:"leg_id"`
	FrictionPa   float64        `json:"friction_pa"`
	FittingsPa   float64        `json:"fittings_pa"`
	TotalPa      float64        `json:"total_pa"`
	PipeLengthM  float64        `json:"pipe_length_m"`
	FittingCount int            `json:"fitting_count"`
}

// Calculator computes per-leg pressure losses by walking leg segments.
// Straight runs lose pressure at the sized gradient; fittings lose
// K·½ρv² each at the leg's one design velocity.
type Calculator struct {
	fittings   repositories.FittingCatalog
	hydraulics *services.HydraulicsCalculator
}

// NewCalculator creates a new pressure calculator
func NewCalculator(fittings repositories.FittingCatalog) *Calculator {
	return &Calculator{
		fittings:   fittings,
		hydraulics: services.NewHydraulicsCalculator(),
	}
}

// LegPressureDrop computes the total loss across one sized leg
func (c *Calculator) LegPressureDrop(
	leg *entities.CommittedLeg,
	sized *entities.SizedSegment,
	fluid *services.FluidState,
) (*LegLoss, error) {
	if leg == nil {
		return nil, fmt.Errorf("leg cannot be nil")
	}
	if sized == nil {
		return nil, fmt.Errorf("leg %s: %w", leg.ID, ErrMissingSizing)
	}
	if fluid == nil {
		return nil, fmt.Errorf("fluid state cannot be nil")
	}

	loss := &LegLoss{LegID: leg.ID}

	for _, segment := range leg.Segments {
		switch segment.Kind {
		case entities.PipeSegment:
			loss.FrictionPa += sized.PressureGradientPaM * segment.LengthM
			loss.PipeLengthM += segment.LengthM

		case entities.FittingSegment:
			fitting, err := c.fittings.GetFitting(segment.Fitting)
			if err != nil {
				return nil, fmt.Errorf("leg %s: %w", leg.ID, err)
			}
			each := c.hydraulics.MinorLoss(fitting.KValue, fluid.DensityKgM3, sized.VelocityMS)
			loss.FittingsPa += each * float64(segment.Count)
			loss.FittingCount += segment.Count

		default:
			return nil, fmt.Errorf("leg %s: unknown segment kind %d", leg.ID, segment.Kind)
		}
	}

	loss.TotalPa = loss.FrictionPa + loss.FittingsPa
	return loss, nil
}
