package services

import (
	"math"
	"strings"
	"testing"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

func nominalWater(t *testing.T) *entities.Fluid {
	t.Helper()
	fluid, err := entities.NewFluid("WATER", "Pure Water (nominal)", 998.2, 1.002e-3, 4187, 0.598, 0.0, 0.0, 100.0)
	if err != nil {
		t.Fatalf("Expected water creation to succeed: %v", err)
	}

	curve, err := entities.NewTemperatureCurve(
		[]float64{0, 20, 40, 60, 80, 100},
		[]float64{1.79e-3, 1.00e-3, 0.65e-3, 0.47e-3, 0.36e-3, 0.28e-3},
	)
	if err != nil {
		t.Fatalf("Expected viscosity curve creation to succeed: %v", err)
	}
	fluid.ViscosityCurve = curve
	return fluid
}

func glycolMix(t *testing.T) *entities.Fluid {
	t.Helper()
	fluid, err := entities.NewFluid("PG_30", "Propylene Glycol 30%", 1030, 3.0e-3, 3800, 0.44, -15.0, -15.0, 100.0)
	if err != nil {
		t.Fatalf("Expected glycol creation to succeed: %v", err)
	}
	return fluid
}

func TestFluidConditioner_ResolveStatic(t *testing.T) {
	fc := NewFluidConditioner()

	state, err := fc.Resolve(nominalWater(t), nil)
	if err != nil {
		t.Fatalf("Expected static resolution to succeed: %v", err)
	}

	if state.DensityKgM3 != 998.2 {
		t.Errorf("Expected static density 998.2, got %g", state.DensityKgM3)
	}
	if math.Abs(state.KinematicViscosityM2S-1.004e-6) > 0.01e-6 {
		t.Errorf("Expected kinematic viscosity near 1.004e-6, got %g", state.KinematicViscosityM2S)
	}
	if state.SpecificHeatJKgK != 4187 {
		t.Errorf("Expected cp 4187, got %g", state.SpecificHeatJKgK)
	}
	if state.TemperatureC != nil {
		t.Error("Expected no temperature on static resolution")
	}
}

func TestFluidConditioner_ResolveAtTemperature(t *testing.T) {
	fc := NewFluidConditioner()

	temp := 60.0
	state, err := fc.Resolve(nominalWater(t), &temp)
	if err != nil {
		t.Fatalf("Expected resolution at 60°C to succeed: %v", err)
	}

	// Viscosity curve node at 60°C; density stays static without a curve
	expected := 0.47e-3 / 998.2
	if math.Abs(state.KinematicViscosityM2S-expected) > 1e-12 {
		t.Errorf("Expected kinematic viscosity %g, got %g", expected, state.KinematicViscosityM2S)
	}
	if state.DensityKgM3 != 998.2 {
		t.Errorf("Expected static density fallback, got %g", state.DensityKgM3)
	}
}

func TestFluidConditioner_OperatingRange(t *testing.T) {
	fc := NewFluidConditioner()

	hot := 120.0
	if _, err := fc.Resolve(nominalWater(t), &hot); err == nil {
		t.Error("Expected error above rated range")
	} else if !strings.Contains(err.Error(), "rated for") {
		t.Errorf("Expected rated-range error, got %q", err.Error())
	}

	cold := -5.0
	if _, err := fc.Resolve(nominalWater(t), &cold); err == nil {
		t.Error("Expected error below rated range")
	}
}

func TestFluidConditioner_FreezeProtection(t *testing.T) {
	fc := NewFluidConditioner()
	glycol := glycolMix(t)

	// At the freeze point itself the fluid is unusable
	atFreeze := -15.0
	if _, err := fc.Resolve(glycol, &atFreeze); err == nil {
		t.Error("Expected error at freeze point")
	} else if !strings.Contains(err.Error(), "freezes at") {
		t.Errorf("Expected freeze error, got %q", err.Error())
	}

	// Just above the freeze point is fine
	aboveFreeze := -14.0
	state, err := fc.Resolve(glycol, &aboveFreeze)
	if err != nil {
		t.Fatalf("Expected resolution above freeze point to succeed: %v", err)
	}
	if state.DensityKgM3 != 1030 {
		t.Errorf("Expected glycol density 1030, got %g", state.DensityKgM3)
	}
}

func TestFluidConditioner_NilFluid(t *testing.T) {
	fc := NewFluidConditioner()
	if _, err := fc.Resolve(nil, nil); err == nil {
		t.Error("Expected error for nil fluid")
	}
}
