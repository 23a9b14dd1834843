package pump

import "github.com/iandogless-creator/hydronet/pkg/domain/entities"

// power evaluates the hydraulic/shaft/electrical split at the given flow
// and head. P_hyd = ρ·g·Q·H; the shaft absorbs P_hyd/η; a motor efficiency,
// when the curve declares one, splits electrical input from shaft power.
func (s *Selector) power(
	curve *entities.PumpCurve,
	ratio, flowM3H, headM float64,
) entities.PumpPower {
	efficiency := s.efficiencyAt(curve, flowM3H/ratio)

	flowM3S := flowM3H / 3600.0
	hydraulic := s.config.DensityKgM3 * s.config.GravityMS2 * flowM3S * headM
	shaft := hydraulic / efficiency

	electrical := shaft
	motorSupplied := false
	if curve.MotorEfficiency != nil {
		electrical = shaft / *curve.MotorEfficiency
		motorSupplied = true
	}

	return entities.PumpPower{
		Efficiency:    efficiency,
		HydraulicW:    hydraulic,
		ShaftW:        shaft,
		ElectricalW:   electrical,
		MotorSupplied: motorSupplied,
	}
}

// efficiencyAt interpolates along the curve's efficiency points at the
// full-speed equivalent flow. Affinity scaling moves a duty point along a
// parabola of near-constant efficiency, so the base-curve value carries
// over to reduced speeds. Flows outside the tabulated range fall back to
// the curve's nominal value, then to the configured default.
func (s *Selector) efficiencyAt(curve *entities.PumpCurve, flowM3H float64) float64 {
	points := curve.EfficiencyPoints
	if len(points) >= 2 &&
		flowM3H >= points[0].FlowM3H &&
		flowM3H <= points[len(points)-1].FlowM3H {
		for i := 0; i < len(points)-1; i++ {
			a, b := points[i], points[i+1]
			if flowM3H >= a.FlowM3H && flowM3H <= b.FlowM3H {
				t := (flowM3H - a.FlowM3H) / (b.FlowM3H - a.FlowM3H)
				return a.Efficiency + t*(b.Efficiency-a.Efficiency)
			}
		}
	}
	if curve.NominalEfficiency > 0 {
		return curve.NominalEfficiency
	}
	return s.config.DefaultEfficiency
}
