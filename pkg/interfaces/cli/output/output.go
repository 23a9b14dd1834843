// Package output renders solve results as text, JSON, or CSV files.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iandogless-creator/hydronet/pkg/application/dto"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(result *dto.SolveResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "html":
		return generateHTMLOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.SolveResult, config Config) error {
	text := renderText(result)
	fmt.Print(text)

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "solve_results.txt")
		if err := os.WriteFile(filename, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write text file: %w", err)
		}

		if config.Verbose {
			fmt.Printf("💾 Results saved to: %s\n", filename)
		}

		if err := writePumpCurveSVG(result, config); err != nil {
			return err
		}
	}

	return nil
}

// writePumpCurveSVG saves the pump/system curve chart beside the other
// output files when the result carries a drawable pump selection
func writePumpCurveSVG(result *dto.SolveResult, config Config) error {
	chart := NewPumpCurveChart(result)
	if chart == nil {
		return nil
	}

	filename := filepath.Join(config.OutputDir, "pump_curve.svg")
	if err := os.WriteFile(filename, []byte(chart.GenerateSVG(result)), 0644); err != nil {
		return fmt.Errorf("failed to write pump curve SVG: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 Pump curve chart saved to: %s\n", filename)
	}

	return nil
}

func renderText(result *dto.SolveResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "💧 Hydronic Solve Results\n")
	fmt.Fprintf(&b, "=========================\n\n")

	totalHeatW := 0.0
	for _, terminal := range result.Terminals {
		totalHeatW += terminal.HeatDemandW
	}

	fmt.Fprintf(&b, "Run:         %s\n", result.RunID)
	fluidLine := fmt.Sprintf("%s (%s)", result.Fluid.Name, result.Fluid.Key)
	if result.Fluid.TemperatureC != nil {
		fluidLine += fmt.Sprintf(" at %.1f °C", *result.Fluid.TemperatureC)
	}
	fmt.Fprintf(&b, "Fluid:       %s\n", fluidLine)
	fmt.Fprintf(&b, "Design ΔT:   %.1f K\n", result.DesignDeltaTK)
	fmt.Fprintf(&b, "Heat Demand: %.2f kW over %d terminals\n", totalHeatW/1000, len(result.Terminals))
	fmt.Fprintf(&b, "Total Flow:  %.3f m³/h (%.4f L/s)\n", result.TotalFlowM3H, result.TotalFlowM3S*1000)
	fmt.Fprintf(&b, "Solve Time:  %v\n\n", result.SolveTime)

	if len(result.Terminals) > 0 {
		fmt.Fprintf(&b, "💧 Terminal Flows:\n")
		fmt.Fprintf(&b, "%-12s %-12s %-10s %-8s %-10s %-10s\n",
			"Room", "Leg", "Heat (W)", "ΔT (K)", "L/s", "m³/h")
		fmt.Fprintf(&b, "%-12s %-12s %-10s %-8s %-10s %-10s\n",
			"------------", "------------", "----------", "--------", "----------", "----------")

		for _, terminal := range result.Terminals {
			if terminal.NoFlow {
				fmt.Fprintf(&b, "%-12s %-12s %-10.0f %-8s %-10s %-10s\n",
					terminal.RoomID, terminal.LegID, terminal.HeatDemandW, "-", "no flow", "-")
				continue
			}
			fmt.Fprintf(&b, "%-12s %-12s %-10.0f %-8.1f %-10.4f %-10.3f\n",
				terminal.RoomID,
				terminal.LegID,
				terminal.HeatDemandW,
				terminal.DeltaTK,
				terminal.FlowM3S*1000,
				terminal.FlowM3H)
		}
		fmt.Fprintln(&b)
	}

	if len(result.SizedLegs) > 0 {
		fmt.Fprintf(&b, "📏 Sized Legs:\n")
		fmt.Fprintf(&b, "%-12s %-10s %-10s %-9s %-10s %-8s %-10s\n",
			"Leg", "Size", "Bore (mm)", "v (m/s)", "Re", "f", "Pa/m")
		fmt.Fprintf(&b, "%-12s %-10s %-10s %-9s %-10s %-8s %-10s\n",
			"------------", "----------", "----------", "---------", "----------", "--------", "----------")

		for _, sized := range result.SizedLegs {
			fmt.Fprintf(&b, "%-12s %-10s %-10.1f %-9.2f %-10.0f %-8.4f %-10.0f\n",
				sized.LegID,
				sized.SizeName,
				sized.InternalDiameterM*1000,
				sized.VelocityMS,
				sized.ReynoldsNumber,
				sized.FrictionFactor,
				sized.PressureGradientPaM)
		}
		fmt.Fprintln(&b)
	}

	if result.Index != nil {
		fmt.Fprintf(&b, "🧭 Index Path: %s\n", result.Index.Summary())
		fmt.Fprintf(&b, "%-14s %-12s %-12s %-14s %-8s\n",
			"Path", "Terminal", "Loss (Pa)", "Absorb (Pa)", "")
		fmt.Fprintf(&b, "%-14s %-12s %-12s %-14s %-8s\n",
			"--------------", "------------", "------------", "--------------", "")

		for _, target := range result.Index.Targets {
			marker := ""
			if target.IsIndex {
				marker = "(index)"
			}
			fmt.Fprintf(&b, "%-14s %-12s %-12.0f %-14.0f %-8s\n",
				target.PathID,
				target.TerminalLegID,
				target.PathPa,
				target.SurplusPa,
				marker)
		}
		fmt.Fprintln(&b)
	}

	if result.Pump != nil {
		pump := result.Pump
		fmt.Fprintf(&b, "🔄 Pump Selection:\n")
		fmt.Fprintf(&b, "  Pump:      %s (%s)\n", pump.PumpName, pump.PumpKey)
		fmt.Fprintf(&b, "  Duty:      %.3f m³/h at %.3f m head\n", pump.DutyFlowM3H, pump.RequiredHeadM)
		fmt.Fprintf(&b, "  Delivers:  %.3f m head (margin %.3f m) at %.0f%% speed\n",
			pump.DeliveredHeadM, pump.HeadMarginM, pump.SpeedRatio*100)
		fmt.Fprintf(&b, "  Power:     %.1f W hydraulic, %.1f W shaft (η %.2f)\n",
			pump.Power.HydraulicW, pump.Power.ShaftW, pump.Power.Efficiency)
		if pump.OperatingPoint != nil {
			fmt.Fprintf(&b, "  Curve:     settles at %.3f m³/h, %.3f m\n",
				pump.OperatingPoint.FlowM3H, pump.OperatingPoint.HeadM)
		}
		if pump.Note != "" {
			fmt.Fprintf(&b, "  Note:      %s\n", pump.Note)
		}
		fmt.Fprintln(&b)
	} else {
		fmt.Fprintf(&b, "🔄 Pump Selection: none\n\n")
	}

	if result.HasWarnings() {
		fmt.Fprintf(&b, "⚠️  Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "  [%s] %s\n", warning.Code, warning.Message)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.SolveResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
	} else {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "solve_results.json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write JSON file: %w", err)
		}

		if config.Verbose {
			fmt.Printf("💾 JSON results saved to: %s\n", filename)
		}
	}

	return nil
}

// generateCSVOutput creates one CSV file per report section
func generateCSVOutput(result *dto.SolveResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	flowsFile := filepath.Join(config.OutputDir, "terminal_flows.csv")
	if err := writeTerminalFlowsCSV(result, flowsFile); err != nil {
		return fmt.Errorf("failed to write terminal flows CSV: %w", err)
	}

	legsFile := filepath.Join(config.OutputDir, "sized_legs.csv")
	if err := writeSizedLegsCSV(result.SizedLegs, legsFile); err != nil {
		return fmt.Errorf("failed to write sized legs CSV: %w", err)
	}

	pathsFile := filepath.Join(config.OutputDir, "paths.csv")
	if err := writePathsCSV(result.Paths, pathsFile); err != nil {
		return fmt.Errorf("failed to write paths CSV: %w", err)
	}

	written := []string{flowsFile, legsFile, pathsFile}

	if result.Index != nil {
		targetsFile := filepath.Join(config.OutputDir, "balance_targets.csv")
		if err := writeBalanceTargetsCSV(result.Index.Targets, targetsFile); err != nil {
			return fmt.Errorf("failed to write balance targets CSV: %w", err)
		}
		written = append(written, targetsFile)
	}

	if result.Pump != nil {
		pumpFile := filepath.Join(config.OutputDir, "pump_selection.csv")
		if err := writePumpCSV(result.Pump, pumpFile); err != nil {
			return fmt.Errorf("failed to write pump selection CSV: %w", err)
		}
		written = append(written, pumpFile)
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to:\n")
		for _, filename := range written {
			fmt.Printf("  %s\n", filename)
		}
	}

	return writePumpCurveSVG(result, config)
}

func writeTerminalFlowsCSV(result *dto.SolveResult, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"room_id", "leg_id", "heat_demand_w", "delta_t_k", "mass_flow_kg_s", "flow_m3_s", "flow_m3_h", "no_flow", "note"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, terminal := range result.Terminals {
		record := []string{
			string(terminal.RoomID),
			string(terminal.LegID),
			ffloat(terminal.HeatDemandW),
			ffloat(terminal.DeltaTK),
			ffloat(terminal.MassFlowKgS),
			ffloat(terminal.FlowM3S),
			ffloat(terminal.FlowM3H),
			strconv.FormatBool(terminal.NoFlow),
			terminal.Note,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeSizedLegsCSV(sizedLegs []*entities.SizedSegment, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"leg_id", "material", "size_name", "internal_diameter_m", "design_flow_m3_s", "velocity_m_s", "reynolds_number", "friction_factor", "pressure_gradient_pa_m", "warnings"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, sized := range sizedLegs {
		codes := make([]string, len(sized.Warnings))
		for i, warning := range sized.Warnings {
			codes[i] = warning.Code.String()
		}

		record := []string{
			string(sized.LegID),
			string(sized.Material),
			sized.SizeName,
			ffloat(sized.InternalDiameterM),
			ffloat(sized.DesignFlowM3S),
			ffloat(sized.VelocityMS),
			ffloat(sized.ReynoldsNumber),
			ffloat(sized.FrictionFactor),
			ffloat(sized.PressureGradientPaM),
			strings.Join(codes, ";"),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writePathsCSV(paths []*entities.PathPressureDrop, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"path_id", "terminal_leg_id", "leg_count", "heat_demand_w", "total_pa", "total_head_m"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, path := range paths {
		record := []string{
			string(path.PathID),
			string(path.TerminalLegID),
			strconv.Itoa(len(path.LegIDs)),
			ffloat(path.HeatDemandW),
			ffloat(path.TotalPa),
			ffloat(path.TotalHeadM),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeBalanceTargetsCSV(targets []entities.BalanceTarget, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"path_id", "terminal_leg_id", "path_pa", "target_pa", "surplus_pa", "is_index"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, target := range targets {
		record := []string{
			string(target.PathID),
			string(target.TerminalLegID),
			ffloat(target.PathPa),
			ffloat(target.TargetPa),
			ffloat(target.SurplusPa),
			strconv.FormatBool(target.IsIndex),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writePumpCSV(pump *entities.PumpSelectionResult, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"pump_key", "pump_name", "duty_flow_m3_h", "required_head_m", "delivered_head_m", "head_margin_m", "speed_ratio", "efficiency", "hydraulic_w", "shaft_w", "electrical_w"}
	if err := writer.Write(header); err != nil {
		return err
	}

	record := []string{
		string(pump.PumpKey),
		pump.PumpName,
		ffloat(pump.DutyFlowM3H),
		ffloat(pump.RequiredHeadM),
		ffloat(pump.DeliveredHeadM),
		ffloat(pump.HeadMarginM),
		ffloat(pump.SpeedRatio),
		ffloat(pump.Power.Efficiency),
		ffloat(pump.Power.HydraulicW),
		ffloat(pump.Power.ShaftW),
		ffloat(pump.Power.ElectricalW),
	}
	return writer.Write(record)
}

// ffloat formats a float for CSV without losing precision
func ffloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
