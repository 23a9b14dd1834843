package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/iandogless-creator/hydronet/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLReport generates a self-contained HTML solve report
type HTMLReport struct{}

// NewHTMLReport creates a new HTML report generator
func NewHTMLReport() *HTMLReport {
	return &HTMLReport{}
}

// terminalRow is one display-ready terminal flow line
type terminalRow struct {
	Room   string
	Leg    string
	HeatW  string
	DeltaT string
	FlowLS string
	FlowM3 string
	NoFlow bool
	Note   string
}

// sizedRow is one display-ready sized leg line
type sizedRow struct {
	Leg      string
	Size     string
	BoreMM   string
	Velocity string
	Reynolds string
	Friction string
	Gradient string
	Warnings string
}

// targetRow is one display-ready balancing target line
type targetRow struct {
	Path     string
	Terminal string
	PathPa   string
	AbsorbPa string
	IsIndex  bool
}

// pumpCard is the display-ready pump selection block
type pumpCard struct {
	Name      string
	Key       string
	Duty      string
	Delivered string
	Speed     string
	Power     string
	Operating string
	Note      string
}

// reportData carries everything the report template renders
type reportData struct {
	RunID        string
	GeneratedAt  string
	SolveTime    string
	Fluid        string
	DeltaT       string
	HeatDemand   string
	TotalFlow    string
	Terminals    []terminalRow
	SizedLegs    []sizedRow
	IndexSummary string
	Targets      []targetRow
	Pump         *pumpCard
	Warnings     []string
	CurveSVG     template.HTML
}

// GenerateHTML renders the solve result into a standalone HTML document
func (hr *HTMLReport) GenerateHTML(result *dto.SolveResult) (string, error) {
	data := hr.buildReportData(result)

	tmpl, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}

	return buf.String(), nil
}

// buildReportData converts a solve result into display-ready strings
func (hr *HTMLReport) buildReportData(result *dto.SolveResult) *reportData {
	totalHeatW := 0.0
	for _, terminal := range result.Terminals {
		totalHeatW += terminal.HeatDemandW
	}

	fluidLine := fmt.Sprintf("%s (%s)", result.Fluid.Name, result.Fluid.Key)
	if result.Fluid.TemperatureC != nil {
		fluidLine += fmt.Sprintf(" at %.1f °C", *result.Fluid.TemperatureC)
	}

	data := &reportData{
		RunID:       result.RunID.String(),
		GeneratedAt: result.GeneratedAt.Format(time.RFC1123),
		SolveTime:   result.SolveTime.String(),
		Fluid:       fluidLine,
		DeltaT:      fmt.Sprintf("%.1f K", result.DesignDeltaTK),
		HeatDemand:  fmt.Sprintf("%.2f kW over %d terminals", totalHeatW/1000, len(result.Terminals)),
		TotalFlow:   fmt.Sprintf("%.3f m³/h (%.4f L/s)", result.TotalFlowM3H, result.TotalFlowM3S*1000),
	}

	for _, terminal := range result.Terminals {
		row := terminalRow{
			Room:   string(terminal.RoomID),
			Leg:    string(terminal.LegID),
			HeatW:  fmt.Sprintf("%.0f", terminal.HeatDemandW),
			NoFlow: terminal.NoFlow,
			Note:   terminal.Note,
		}
		if !terminal.NoFlow {
			row.DeltaT = fmt.Sprintf("%.1f", terminal.DeltaTK)
			row.FlowLS = fmt.Sprintf("%.4f", terminal.FlowM3S*1000)
			row.FlowM3 = fmt.Sprintf("%.3f", terminal.FlowM3H)
		}
		data.Terminals = append(data.Terminals, row)
	}

	for _, sized := range result.SizedLegs {
		codes := ""
		for i, warning := range sized.Warnings {
			if i > 0 {
				codes += ", "
			}
			codes += warning.Code.String()
		}
		data.SizedLegs = append(data.SizedLegs, sizedRow{
			Leg:      string(sized.LegID),
			Size:     sized.SizeName,
			BoreMM:   fmt.Sprintf("%.1f", sized.InternalDiameterM*1000),
			Velocity: fmt.Sprintf("%.2f", sized.VelocityMS),
			Reynolds: fmt.Sprintf("%.0f", sized.ReynoldsNumber),
			Friction: fmt.Sprintf("%.4f", sized.FrictionFactor),
			Gradient: fmt.Sprintf("%.0f", sized.PressureGradientPaM),
			Warnings: codes,
		})
	}

	if result.Index != nil {
		data.IndexSummary = result.Index.Summary()
		for _, target := range result.Index.Targets {
			data.Targets = append(data.Targets, targetRow{
				Path:     string(target.PathID),
				Terminal: string(target.TerminalLegID),
				PathPa:   fmt.Sprintf("%.0f", target.PathPa),
				AbsorbPa: fmt.Sprintf("%.0f", target.SurplusPa),
				IsIndex:  target.IsIndex,
			})
		}
	}

	if pump := result.Pump; pump != nil {
		card := &pumpCard{
			Name: pump.PumpName,
			Key:  string(pump.PumpKey),
			Duty: fmt.Sprintf("%.3f m³/h at %.3f m head", pump.DutyFlowM3H, pump.RequiredHeadM),
			Delivered: fmt.Sprintf("%.3f m head (margin %.3f m)",
				pump.DeliveredHeadM, pump.HeadMarginM),
			Speed: fmt.Sprintf("%.0f%%", pump.SpeedRatio*100),
			Power: fmt.Sprintf("%.1f W hydraulic, %.1f W shaft (η %.2f)",
				pump.Power.HydraulicW, pump.Power.ShaftW, pump.Power.Efficiency),
			Note: pump.Note,
		}
		if pump.OperatingPoint != nil {
			card.Operating = fmt.Sprintf("settles at %.3f m³/h, %.3f m",
				pump.OperatingPoint.FlowM3H, pump.OperatingPoint.HeadM)
		}
		data.Pump = card
	}

	for _, warning := range result.Warnings {
		data.Warnings = append(data.Warnings, fmt.Sprintf("[%s] %s", warning.Code, warning.Message))
	}

	if chart := NewPumpCurveChart(result); chart != nil {
		data.CurveSVG = template.HTML(chart.GenerateSVG(result))
	}

	return data
}

// generateHTMLOutput creates the HTML report, to stdout or a file
func generateHTMLOutput(result *dto.SolveResult, config Config) error {
	html, err := NewHTMLReport().GenerateHTML(result)
	if err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(html)
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "solve_report.html")
	if err := os.WriteFile(filename, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 HTML report saved to: %s\n", filename)
	}

	return nil
}
