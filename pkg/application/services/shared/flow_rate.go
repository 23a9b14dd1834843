package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FlowRate is an exact volumetric flow ledger value. Flows derived per
// terminal are summed up the tree many times over a solve; carrying them as
// decimals keeps child sums exactly equal to their parent totals regardless
// of summation order, so flow-conservation checks never trip on float noise.
type FlowRate struct {
	m3s decimal.Decimal
}

// Unit conversion factors as exact decimals.
var (
	secondsPerHour = decimal.NewFromInt(3600)
	litresPerM3    = decimal.NewFromInt(1000)
)

// ZeroFlow is the additive identity for flow summation
var ZeroFlow = FlowRate{m3s: decimal.Zero}

// FlowFromM3S creates a FlowRate from a volumetric flow in m³/s
func FlowFromM3S(flow float64) FlowRate {
	return FlowRate{m3s: decimal.NewFromFloat(flow)}
}

// FlowFromM3H creates a FlowRate from a volumetric flow in m³/h
func FlowFromM3H(flow float64) FlowRate {
	return FlowRate{m3s: decimal.NewFromFloat(flow).Div(secondsPerHour)}
}

// FlowFromLS creates a FlowRate from a volumetric flow in L/s
func FlowFromLS(flow float64) FlowRate {
	return FlowRate{m3s: decimal.NewFromFloat(flow).Div(litresPerM3)}
}

// FlowFromMassFlow creates a FlowRate from a mass flow in kg/s at the given
// fluid density
func FlowFromMassFlow(massFlowKgS, densityKgM3 float64) (FlowRate, error) {
	if densityKgM3 <= 0 {
		return ZeroFlow, fmt.Errorf("density must be positive, got %g", densityKgM3)
	}
	q := decimal.NewFromFloat(massFlowKgS).Div(decimal.NewFromFloat(densityKgM3))
	return FlowRate{m3s: q}, nil
}

// Add returns the exact sum of two flow rates
func (f FlowRate) Add(other FlowRate) FlowRate {
	return FlowRate{m3s: f.m3s.Add(other.m3s)}
}

// IsZero reports whether the flow is exactly zero
func (f FlowRate) IsZero() bool {
	return f.m3s.IsZero()
}

// Equal reports whether two flow rates are exactly equal
func (f FlowRate) Equal(other FlowRate) bool {
	return f.m3s.Equal(other.m3s)
}

// Decimal returns the underlying exact value in m³/s
func (f FlowRate) Decimal() decimal.Decimal {
	return f.m3s
}

// M3S returns the flow in m³/s
func (f FlowRate) M3S() float64 {
	return f.m3s.InexactFloat64()
}

// M3H returns the flow in m³/h
func (f FlowRate) M3H() float64 {
	return f.m3s.Mul(secondsPerHour).InexactFloat64()
}

// LS returns the flow in L/s
func (f FlowRate) LS() float64 {
	return f.m3s.Mul(litresPerM3).InexactFloat64()
}

// MassFlowKgS returns the mass flow in kg/s at the given fluid density
func (f FlowRate) MassFlowKgS(densityKgM3 float64) float64 {
	return f.m3s.Mul(decimal.NewFromFloat(densityKgM3)).InexactFloat64()
}

// String renders the flow in m³/h, the conventional unit on pump datasheets
func (f FlowRate) String() string {
	return fmt.Sprintf("%s m3/h", f.m3s.Mul(secondsPerHour).StringFixed(4))
}

// MarshalJSON serializes the exact m³/s value as a decimal string
func (f FlowRate) MarshalJSON() ([]byte, error) {
	return f.m3s.MarshalJSON()
}

// UnmarshalJSON restores the exact m³/s value from a decimal string
func (f *FlowRate) UnmarshalJSON(data []byte) error {
	return f.m3s.UnmarshalJSON(data)
}
