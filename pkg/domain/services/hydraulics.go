package services

import (
	"fmt"
	"math"
)

// StandardGravity is the standard acceleration of free fall in m/s².
const StandardGravity = 9.80665

// Friction factor iteration limits for the Colebrook-White fixed point.
const (
	frictionInitialGuess = 0.02
	frictionTolerance    = 1e-6
	frictionMaxIter      = 100
	laminarLimit         = 2000.0
)

// FrictionResult carries a Darcy friction factor together with how it was
// obtained
type FrictionResult struct {
	Factor     float64
	Iterations int
	Converged  bool
}

// HydraulicsCalculator computes friction factors and pressure losses for
// fully-developed pipe flow
type HydraulicsCalculator struct{}

// NewHydraulicsCalculator creates a new hydraulics calculator
func NewHydraulicsCalculator() *HydraulicsCalculator {
	return &HydraulicsCalculator{}
}

// ReynoldsNumber computes Re = v·D/ν for velocity in m/s, internal diameter
// in m and kinematic viscosity in m²/s
func (hc *HydraulicsCalculator) ReynoldsNumber(velocityMS, diameterM, kinematicViscosityM2S float64) float64 {
	if kinematicViscosityM2S <= 0 {
		return 0
	}
	return velocityMS * diameterM / kinematicViscosityM2S
}

// Velocity computes the mean flow velocity in m/s for a volumetric flow in
// m³/s through a circular section of the given internal diameter
func (hc *HydraulicsCalculator) Velocity(flowM3S, diameterM float64) float64 {
	area := math.Pi * diameterM * diameterM / 4.0
	if area <= 0 {
		return 0
	}
	return flowM3S / area
}

// FrictionFactor computes the Darcy friction factor for the given Reynolds
// number and relative roughness ε/D. Laminar flow uses 64/Re; turbulent flow
// iterates the Colebrook-White equation from a fixed initial guess until
// successive iterates differ by less than the tolerance. Zero Reynolds number
// means no flow and yields a zero factor.
func (hc *HydraulicsCalculator) FrictionFactor(reynolds, relativeRoughness float64) FrictionResult {
	if reynolds <= 0 {
		return FrictionResult{Factor: 0, Iterations: 0, Converged: true}
	}

	if reynolds < laminarLimit {
		return FrictionResult{Factor: 64.0 / reynolds, Iterations: 0, Converged: true}
	}

	f := frictionInitialGuess
	for i := 1; i <= frictionMaxIter; i++ {
		arg := relativeRoughness/3.7 + 2.51/(reynolds*math.Sqrt(f))
		next := math.Pow(-2.0*math.Log10(arg), -2.0)
		if math.Abs(next-f) < frictionTolerance {
			return FrictionResult{Factor: next, Iterations: i, Converged: true}
		}
		f = next
	}

	return FrictionResult{Factor: f, Iterations: frictionMaxIter, Converged: false}
}

// DarcyWeisbach computes the friction pressure drop in Pa over a straight
// pipe run: ΔP = f·(L/D)·½ρv²
func (hc *HydraulicsCalculator) DarcyWeisbach(frictionFactor, lengthM, diameterM, densityKgM3, velocityMS float64) float64 {
	if diameterM <= 0 {
		return 0
	}
	return frictionFactor * (lengthM / diameterM) * 0.5 * densityKgM3 * velocityMS * velocityMS
}

// MinorLoss computes the pressure drop in Pa across a fitting with loss
// coefficient K at the given velocity: ΔP = K·½ρv²
func (hc *HydraulicsCalculator) MinorLoss(kValue, densityKgM3, velocityMS float64) float64 {
	return kValue * 0.5 * densityKgM3 * velocityMS * velocityMS
}

// HeadFromPressure converts a pressure in Pa to metres of fluid column
func (hc *HydraulicsCalculator) HeadFromPressure(pressurePa, densityKgM3 float64) float64 {
	if densityKgM3 <= 0 {
		return 0
	}
	return pressurePa / (densityKgM3 * StandardGravity)
}

// PressureFromHead converts a head in metres of fluid column to Pa
func (hc *HydraulicsCalculator) PressureFromHead(headM, densityKgM3 float64) float64 {
	return headM * densityKgM3 * StandardGravity
}

// PipeFlowResult describes the hydraulic state of one straight pipe run at a
// fixed design flow
type PipeFlowResult struct {
	VelocityMS          float64
	ReynoldsNumber      float64
	FrictionFactor      float64
	PressureDropPa      float64
	PressureGradientPaM float64
	Converged           bool
}

// PipeFlow computes velocity, Reynolds number, friction factor and friction
// pressure drop for a straight run of pipe. Flow and geometry must be
// non-negative; a zero flow yields a zero-loss result.
func (hc *HydraulicsCalculator) PipeFlow(
	flowM3S, diameterM, lengthM, roughnessM, densityKgM3, kinematicViscosityM2S float64,
) (*PipeFlowResult, error) {
	if flowM3S < 0 {
		return nil, fmt.Errorf("flow cannot be negative, got %g", flowM3S)
	}
	if diameterM <= 0 {
		return nil, fmt.Errorf("internal diameter must be positive, got %g", diameterM)
	}
	if lengthM < 0 {
		return nil, fmt.Errorf("length cannot be negative, got %g", lengthM)
	}
	if densityKgM3 <= 0 {
		return nil, fmt.Errorf("density must be positive, got %g", densityKgM3)
	}
	if kinematicViscosityM2S <= 0 {
		return nil, fmt.Errorf("kinematic viscosity must be positive, got %g", kinematicViscosityM2S)
	}

	velocity := hc.Velocity(flowM3S, diameterM)
	reynolds := hc.ReynoldsNumber(velocity, diameterM, kinematicViscosityM2S)
	friction := hc.FrictionFactor(reynolds, roughnessM/diameterM)
	dropPa := hc.DarcyWeisbach(friction.Factor, lengthM, diameterM, densityKgM3, velocity)

	gradient := 0.0
	if lengthM > 0 {
		gradient = dropPa / lengthM
	} else {
		// Per-metre gradient for reporting even when the run length is zero
		gradient = hc.DarcyWeisbach(friction.Factor, 1.0, diameterM, densityKgM3, velocity)
	}

	return &PipeFlowResult{
		VelocityMS:          velocity,
		ReynoldsNumber:      reynolds,
		FrictionFactor:      friction.Factor,
		PressureDropPa:      dropPa,
		PressureGradientPaM: gradient,
		Converged:           friction.Converged,
	}, nil
}
