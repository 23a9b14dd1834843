package pump

import (
	"fmt"
	"sort"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
)

// speedSearchIterations bounds the bisection for the minimum speed ratio.
// The interval is at most [0, 1], so 48 halvings land well below any
// physically meaningful resolution.
const speedSearchIterations = 48

// Config holds pump selection parameters
type Config struct {
	// Safety factors applied to the raw duty point before matching
	SafetyFactorFlow float64
	SafetyFactorHead float64

	// Minimum head margin a curve must clear, as a fraction of the
	// required head. Zero accepts an exact match.
	MinHeadMarginFrac float64

	// Permit affinity-law speed reduction within each curve's declared
	// speed ratio range
	AllowVariableSpeed bool

	// Efficiency fallback for curves that carry neither efficiency points
	// nor a nominal value
	DefaultEfficiency float64

	// Fluid state for head and power conversions
	DensityKgM3 float64
	GravityMS2  float64
}

// DefaultConfig returns standard selection parameters: 5% flow and 10% head
// oversizing, exact-match margin, variable speed permitted, water density
func DefaultConfig() Config {
	return Config{
		SafetyFactorFlow:   1.05,
		SafetyFactorHead:   1.10,
		MinHeadMarginFrac:  0.0,
		AllowVariableSpeed: true,
		DefaultEfficiency:  0.45,
		DensityKgM3:        1000.0,
		GravityMS2:         services.StandardGravity,
	}
}

// Selector matches a duty point against catalog pump curves
type Selector struct {
	config Config
}

// NewSelector creates a pump selector with the given configuration
func NewSelector(config Config) *Selector {
	return &Selector{config: config}
}

// candidate is one qualifying curve with its evaluated duty delivery
type candidate struct {
	curve           *entities.PumpCurve
	speedRatio      float64
	deliveredHeadM  float64
	hydraulicPowerW float64
}

// Select matches the duty point (flow in m³/s, loss in Pa) against the
// given curves. Safety factors inflate the duty first; each curve is then
// checked at the duty flow, throttling down via the affinity laws when
// variable speed is allowed. Qualifying curves are ranked by hydraulic
// power, lowest first, with the pump key as the deterministic tie-break.
func (s *Selector) Select(
	requiredFlowM3S float64,
	requiredDpPa float64,
	pumps []*entities.PumpCurve,
) (*entities.PumpSelectionResult, error) {
	if requiredFlowM3S <= 0 {
		return nil, fmt.Errorf("required flow must be positive, got %g", requiredFlowM3S)
	}
	if requiredDpPa <= 0 {
		return nil, fmt.Errorf("required pressure loss must be positive, got %g", requiredDpPa)
	}
	if len(pumps) == 0 {
		return nil, fmt.Errorf("pump catalog is empty")
	}

	dutyFlowM3H := requiredFlowM3S * 3600.0 * s.config.SafetyFactorFlow
	dutyDpPa := requiredDpPa * s.config.SafetyFactorHead
	dutyHeadM := dutyDpPa / (s.config.DensityKgM3 * s.config.GravityMS2)
	targetHeadM := dutyHeadM * (1.0 + s.config.MinHeadMarginFrac)

	candidates := make([]candidate, 0, len(pumps))
	for _, curve := range pumps {
		if curve == nil {
			return nil, fmt.Errorf("pump curve cannot be nil")
		}
		ratio, delivered, ok := s.evaluate(curve, dutyFlowM3H, targetHeadM)
		if !ok {
			continue
		}
		flowM3S := dutyFlowM3H / 3600.0
		candidates = append(candidates, candidate{
			curve:           curve,
			speedRatio:      ratio,
			deliveredHeadM:  delivered,
			hydraulicPowerW: s.config.DensityKgM3 * s.config.GravityMS2 * flowM3S * delivered,
		})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf(
			"no pump delivers %.3f m³/h at %.3f m head: %w",
			dutyFlowM3H, targetHeadM, ErrUndersizedSystem,
		)
	}

	sort.Slice(candidates, func(i, j int) bool {
		// Primary sort: hydraulic power at the duty point
		if candidates[i].hydraulicPowerW != candidates[j].hydraulicPowerW {
			return candidates[i].hydraulicPowerW < candidates[j].hydraulicPowerW
		}
		// Tie-break: pump key, for a reproducible pick
		return candidates[i].curve.Key < candidates[j].curve.Key
	})

	best := candidates[0]

	operating := s.operatingPoint(best.curve, best.speedRatio, dutyFlowM3H, dutyDpPa)

	powerFlowM3H := dutyFlowM3H
	powerHeadM := best.deliveredHeadM
	if operating != nil {
		powerFlowM3H = operating.FlowM3H
		powerHeadM = operating.HeadM
	}
	power := s.power(best.curve, best.speedRatio, powerFlowM3H, powerHeadM)

	return &entities.PumpSelectionResult{
		PumpKey:         best.curve.Key,
		PumpName:        best.curve.Name,
		DutyFlowM3H:     dutyFlowM3H,
		RequiredHeadM:   dutyHeadM,
		DeliveredHeadM:  best.deliveredHeadM,
		HeadMarginM:     best.deliveredHeadM - dutyHeadM,
		SpeedRatio:      best.speedRatio,
		Power:           power,
		OperatingPoint:  operating,
		CurvePoints:     best.curve.Points,
		CandidatesTried: len(pumps),
		Note: fmt.Sprintf("lowest hydraulic power of %d qualifying curve(s)",
			len(candidates)),
	}, nil
}

// evaluate finds the speed ratio at which the curve meets the target head
// at the duty flow, or reports the curve ineligible
func (s *Selector) evaluate(
	curve *entities.PumpCurve,
	dutyFlowM3H, targetHeadM float64,
) (ratio, deliveredHeadM float64, ok bool) {
	full := curve.MaxSpeedRatio

	delivered, inRange := headAtSpeed(curve, dutyFlowM3H, full)
	if !inRange || delivered < targetHeadM {
		return 0, 0, false
	}

	if !s.config.AllowVariableSpeed {
		return full, delivered, true
	}

	// Affinity laws: at speed ratio n a base point (Q, H) moves to
	// (n·Q, n²·H), so delivered head at fixed duty flow rises
	// monotonically with n. Bisect for the least ratio that still
	// clears the target.
	lo := curve.MinSpeedRatio
	if maxFlow := curve.MaxFlowM3H(); maxFlow > 0 {
		if floor := dutyFlowM3H / maxFlow; floor > lo {
			lo = floor
		}
	}
	if lo >= full {
		return full, delivered, true
	}

	if low, inRange := headAtSpeed(curve, dutyFlowM3H, lo); inRange && low >= targetHeadM {
		return lo, low, true
	}

	hi := full
	hiHead := delivered
	for i := 0; i < speedSearchIterations; i++ {
		mid := (lo + hi) / 2.0
		head, inRange := headAtSpeed(curve, dutyFlowM3H, mid)
		if inRange && head >= targetHeadM {
			hi = mid
			hiHead = head
		} else {
			lo = mid
		}
	}
	return hi, hiHead, true
}

// headAtSpeed evaluates the curve at the given flow and speed ratio. The
// base curve describes full speed; at ratio n the head at flow q is
// n²·H(q/n), valid only while q/n stays inside the base curve's flow domain.
func headAtSpeed(curve *entities.PumpCurve, flowM3H, ratio float64) (float64, bool) {
	baseFlow := flowM3H / ratio
	head, ok := interpolateHead(curve.Points, baseFlow)
	if !ok {
		return 0, false
	}
	return ratio * ratio * head, true
}

// interpolateHead linearly interpolates head within the curve's flow
// domain; flows outside the declared points are not extrapolated
func interpolateHead(points []entities.CurvePoint, flowM3H float64) (float64, bool) {
	if len(points) < 2 {
		return 0, false
	}
	if flowM3H < points[0].FlowM3H || flowM3H > points[len(points)-1].FlowM3H {
		return 0, false
	}

	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		if flowM3H >= a.FlowM3H && flowM3H <= b.FlowM3H {
			t := (flowM3H - a.FlowM3H) / (b.FlowM3H - a.FlowM3H)
			return a.HeadM + t*(b.HeadM-a.HeadM), true
		}
	}
	return 0, false
}
