package pump

import (
	"math"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// operatingPoint intersects the quadratic system curve fitted through the
// duty point with the selected pump curve at its chosen speed ratio. The
// system resists as ΔP = k·q², so in head form each linear curve segment
// h = a·q + b meets it where k·q² − a·q − b = 0. Returns nil when no
// segment crosses the parabola.
func (s *Selector) operatingPoint(
	curve *entities.PumpCurve,
	ratio float64,
	dutyFlowM3H, dutyDpPa float64,
) *entities.OperatingPoint {
	if dutyFlowM3H <= 0 || dutyDpPa <= 0 {
		return nil
	}

	kPaPerM3H2 := dutyDpPa / (dutyFlowM3H * dutyFlowM3H)
	kHead := kPaPerM3H2 / (s.config.DensityKgM3 * s.config.GravityMS2)
	if kHead <= 0 {
		return nil
	}

	for i := 0; i < len(curve.Points)-1; i++ {
		// Affinity-scaled segment endpoints
		q1 := curve.Points[i].FlowM3H * ratio
		h1 := curve.Points[i].HeadM * ratio * ratio
		q2 := curve.Points[i+1].FlowM3H * ratio
		h2 := curve.Points[i+1].HeadM * ratio * ratio

		a := (h2 - h1) / (q2 - q1)
		b := h1 - a*q1

		disc := a*a + 4.0*kHead*b
		if disc < 0 {
			continue
		}
		sqrtDisc := math.Sqrt(disc)

		for _, q := range [2]float64{
			(a + sqrtDisc) / (2.0 * kHead),
			(a - sqrtDisc) / (2.0 * kHead),
		} {
			if q >= q1 && q <= q2 && q > 0 {
				headM := a*q + b
				return &entities.OperatingPoint{
					FlowM3H: q,
					HeadM:   headM,
					HeadPa:  headM * s.config.DensityKgM3 * s.config.GravityMS2,
				}
			}
		}
	}
	return nil
}
