package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/application/dto"
	"github.com/iandogless-creator/hydronet/pkg/application/services/emitters"
	"github.com/iandogless-creator/hydronet/pkg/application/services/flowplan"
	"github.com/iandogless-creator/hydronet/pkg/application/services/orchestration"
	"github.com/iandogless-creator/hydronet/pkg/application/services/pump"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/services"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/catalogs/memory"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/trace"
)

func main() {
	ctx := context.Background()

	flowTempC := 70.0
	returnTempC := 60.0
	roomTempC := 20.0

	// Resolve the working fluid at the operating temperature
	fluids := memory.DefaultFluidCatalog()
	water, err := fluids.GetFluid("WATER")
	if err != nil {
		fmt.Printf("❌ Fluid lookup failed: %v\n", err)
		return
	}

	conditioner := services.NewFluidConditioner()
	state, err := conditioner.Resolve(water, &flowTempC)
	if err != nil {
		fmt.Printf("❌ Fluid conditioning failed: %v\n", err)
		return
	}

	fmt.Println("🚀 Sizing a two-storey heating system...")
	fmt.Printf("Flow/return: %.0f/%.0f °C, rooms at %.0f °C\n\n", flowTempC, returnTempC, roomTempC)

	// Back-of-envelope whole-house flow before any pipework is committed
	estimate, err := flowplan.NewPlanner().QuickEstimate(8000, flowTempC, returnTempC, state)
	if err != nil {
		fmt.Printf("❌ Quick estimate failed: %v\n", err)
		return
	}
	fmt.Printf("💧 Whole-house estimate for 8 kW: %.4f L/s (%.3f m³/h)\n\n",
		estimate.FlowLS, estimate.FlowM3H)

	// Build the committed distribution tree
	legs, err := buildTwoStoreyNetwork()
	if err != nil {
		fmt.Printf("❌ Network construction failed: %v\n", err)
		return
	}

	// Solve: flows, pipe sizes, index path, pump selection
	recorder := trace.NewRecorder()
	solver := orchestration.NewSolver(
		memory.DefaultMaterialCatalog(),
		fluids,
		memory.DefaultFittingCatalog(),
		memory.DefaultPumpCatalog(),
	).WithTrace(recorder)

	config := orchestration.DefaultConfig()
	config.OperatingTempC = &flowTempC

	result, err := solver.Solve(ctx, legs, nil, config)
	if err != nil {
		if errors.Is(err, pump.ErrUndersizedSystem) && result != nil {
			fmt.Printf("⚠️  %v\n\n", err)
		} else {
			fmt.Printf("❌ Solve failed: %v\n", err)
			return
		}
	}

	fmt.Printf("📊 Solved: %s\n\n", result.Summary())

	fmt.Println("📏 Pipe sizes:")
	for _, sized := range result.SizedLegs {
		fmt.Printf("  %-8s %-8s %.2f m/s, %.0f Pa/m\n",
			sized.LegID, sized.SizeName, sized.VelocityMS, sized.PressureGradientPaM)
	}
	fmt.Println()

	if result.Index != nil {
		fmt.Printf("🧭 %s\n", result.Index.Summary())
		for _, target := range result.Index.Targets {
			marker := ""
			if target.IsIndex {
				marker = " (index)"
			}
			fmt.Printf("  %s: absorb %.0f Pa at the terminal valve%s\n",
				target.PathID, target.SurplusPa, marker)
		}
		fmt.Println()
	}

	if result.Pump != nil {
		fmt.Printf("🔄 Pump: %s\n", result.Pump.Summary())
		fmt.Printf("  Power: %.1f W shaft at η %.2f\n\n",
			result.Pump.Power.ShaftW, result.Pump.Power.Efficiency)
	}

	// Pick a catalog radiator for the lounge at these water temperatures
	sizeLoungeRadiator(result, flowTempC, returnTempC, roomTempC)

	fmt.Println("📋 Solve stages:")
	for _, event := range recorder.Events() {
		fmt.Printf("  %s\n", event)
	}
	fmt.Println()

	fmt.Println("✅ System design complete!")
}

// sizeLoungeRadiator converts the lounge heat demand into an equivalent
// ΔT50 catalog rating at the actual mean water-to-room ΔT
func sizeLoungeRadiator(result *dto.SolveResult, flowTempC, returnTempC, roomTempC float64) {
	var lounge *flowplan.TerminalFlow
	for i := range result.Terminals {
		if result.Terminals[i].RoomID == entities.RoomID("lounge") {
			lounge = &result.Terminals[i]
			break
		}
	}
	if lounge == nil || lounge.NoFlow {
		return
	}

	availablePa := 0.0
	if result.Index != nil {
		for _, target := range result.Index.Targets {
			if target.TerminalLegID == lounge.LegID {
				availablePa = target.TargetPa
				break
			}
		}
	}

	meanDeltaT := (flowTempC+returnTempC)/2 - roomTempC
	radiator, err := emitters.NewRadiatorSizer().Size(
		lounge.HeatDemandW, lounge.FlowM3S, availablePa, meanDeltaT)
	if err != nil {
		fmt.Printf("❌ Radiator sizing failed: %v\n", err)
		return
	}

	fmt.Printf("🔥 Lounge radiator for %.0f W at mean ΔT %.0f K:\n",
		radiator.RequiredOutputW, radiator.MeanDeltaTK)
	fmt.Printf("  Buy a %.0f W catalog radiator (rated at ΔT50)\n\n", radiator.EquivalentOutputW)
}

// buildTwoStoreyNetwork assembles the committed distribution tree: a
// boiler primary feeding one circuit per floor, four heated rooms in all
func buildTwoStoreyNetwork() ([]*entities.CommittedLeg, error) {
	boilerSegs, err := segmentRun(6, fittingRun{"GATE_VALVE", 2}, fittingRun{"CHECK_VALVE", 1})
	if err != nil {
		return nil, fmt.Errorf("boiler segments: %w", err)
	}
	boiler, err := entities.NewCommittedLeg(
		"boiler", "Boiler primary", "",
		[]entities.LegID{"ground", "first"}, nil, boilerSegs, "", nil)
	if err != nil {
		return nil, err
	}

	lounge, err := entities.NewTerminalRoom("lounge", "Lounge", 3200, nil)
	if err != nil {
		return nil, err
	}
	kitchen, err := entities.NewTerminalRoom("kitchen", "Kitchen", 2400, nil)
	if err != nil {
		return nil, err
	}
	groundSegs, err := segmentRun(9,
		fittingRun{"TEE_BRANCH", 1}, fittingRun{"ELBOW_90_STD", 4},
		fittingRun{"TRV", 1}, fittingRun{"LOCKSHIELD", 1})
	if err != nil {
		return nil, fmt.Errorf("ground segments: %w", err)
	}
	ground, err := entities.NewCommittedLeg(
		"ground", "Ground floor circuit", "boiler",
		nil, []entities.TerminalRoom{*lounge, *kitchen}, groundSegs, "", nil)
	if err != nil {
		return nil, err
	}

	bedroom, err := entities.NewTerminalRoom("bed1", "Main bedroom", 1800, nil)
	if err != nil {
		return nil, err
	}
	towelRailDeltaT := 15.0
	bathroom, err := entities.NewTerminalRoom("bath", "Bathroom towel rail", 600, &towelRailDeltaT)
	if err != nil {
		return nil, err
	}
	firstSegs, err := segmentRun(14,
		fittingRun{"TEE_BRANCH", 1}, fittingRun{"ELBOW_90_STD", 6},
		fittingRun{"TRV", 1}, fittingRun{"LOCKSHIELD", 1})
	if err != nil {
		return nil, fmt.Errorf("first floor segments: %w", err)
	}
	first, err := entities.NewCommittedLeg(
		"first", "First floor circuit", "boiler",
		nil, []entities.TerminalRoom{*bedroom, *bathroom}, firstSegs, "", nil)
	if err != nil {
		return nil, err
	}

	return []*entities.CommittedLeg{boiler, ground, first}, nil
}

type fittingRun struct {
	key   entities.FittingKey
	count int
}

// segmentRun builds a leg's segment list: one straight pipe run followed
// by its fittings
func segmentRun(pipeM float64, fittings ...fittingRun) ([]entities.Segment, error) {
	segments := make([]entities.Segment, 0, len(fittings)+1)

	pipe, err := entities.NewPipeRun(pipeM)
	if err != nil {
		return nil, err
	}
	segments = append(segments, *pipe)

	for _, fr := range fittings {
		fitting, err := entities.NewFittingRun(fr.key, fr.count)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *fitting)
	}

	return segments, nil
}
