package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/iandogless-creator/hydronet/pkg/application/dto"
	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// PumpCurveChart renders the selected pump's head-flow curve against the
// system resistance curve, marking the duty point and the settled
// operating point.
type PumpCurveChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int

	MaxFlowM3H float64
	MaxHeadM   float64
}

// NewPumpCurveChart creates a chart scaled to the selection result, or nil
// when the result carries no drawable pump curve
func NewPumpCurveChart(result *dto.SolveResult) *PumpCurveChart {
	pump := result.Pump
	if pump == nil || len(pump.CurvePoints) < 2 || pump.DutyFlowM3H <= 0 || pump.RequiredHeadM <= 0 {
		return nil
	}

	maxFlow := pump.CurvePoints[len(pump.CurvePoints)-1].FlowM3H
	if pump.DutyFlowM3H*1.2 > maxFlow {
		maxFlow = pump.DutyFlowM3H * 1.2
	}

	maxHead := pump.CurvePoints[0].HeadM
	if pump.RequiredHeadM > maxHead {
		maxHead = pump.RequiredHeadM
	}

	return &PumpCurveChart{
		Width:        800,
		Height:       500,
		MarginLeft:   70,
		MarginTop:    50,
		MarginRight:  40,
		MarginBottom: 60,
		MaxFlowM3H:   maxFlow * 1.05,
		MaxHeadM:     maxHead * 1.15,
	}
}

// GenerateSVG creates an SVG representation of the curve chart
func (pc *PumpCurveChart) GenerateSVG(result *dto.SolveResult) string {
	pump := result.Pump

	var svg strings.Builder

	// SVG header
	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, pc.Width, pc.Height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.axis-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.tick-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.axis-line { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.pump-curve { stroke: #1f77b4; stroke-width: 2; fill: none; }`)
	svg.WriteString(`.pump-curve-scaled { stroke: #1f77b4; stroke-width: 2; stroke-dasharray: 6 4; fill: none; }`)
	svg.WriteString(`.system-curve { stroke: #d62728; stroke-width: 2; fill: none; }`)
	svg.WriteString(`.point-label { font-family: Arial, sans-serif; font-size: 10px; fill: #333; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	// Background
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, pc.Width, pc.Height))

	// Title
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Pump Curve vs System Curve - %s</text>`,
		pc.Width/2, pump.PumpName))

	pc.drawGrid(&svg)
	pc.drawAxes(&svg)
	pc.drawSystemCurve(&svg, pump)
	pc.drawPumpCurve(&svg, pump)
	pc.drawMarkers(&svg, pump)

	svg.WriteString(`</svg>`)
	return svg.String()
}

// x maps a flow in m³/h to a horizontal pixel position
func (pc *PumpCurveChart) x(flowM3H float64) int {
	chartWidth := pc.Width - pc.MarginLeft - pc.MarginRight
	return pc.MarginLeft + int(flowM3H/pc.MaxFlowM3H*float64(chartWidth))
}

// y maps a head in metres to a vertical pixel position
func (pc *PumpCurveChart) y(headM float64) int {
	chartHeight := pc.Height - pc.MarginTop - pc.MarginBottom
	return pc.Height - pc.MarginBottom - int(headM/pc.MaxHeadM*float64(chartHeight))
}

// drawGrid draws the tick grid lines for both axes
func (pc *PumpCurveChart) drawGrid(svg *strings.Builder) {
	flowStep := niceStep(pc.MaxFlowM3H)
	for flow := flowStep; flow < pc.MaxFlowM3H; flow += flowStep {
		x := pc.x(flow)
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			x, pc.MarginTop, x, pc.Height-pc.MarginBottom))
	}

	headStep := niceStep(pc.MaxHeadM)
	for head := headStep; head < pc.MaxHeadM; head += headStep {
		y := pc.y(head)
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			pc.MarginLeft, y, pc.Width-pc.MarginRight, y))
	}
}

// drawAxes draws the axis lines, tick labels, and axis titles
func (pc *PumpCurveChart) drawAxes(svg *strings.Builder) {
	bottom := pc.Height - pc.MarginBottom

	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="axis-line"/>`,
		pc.MarginLeft, bottom, pc.Width-pc.MarginRight, bottom))
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="axis-line"/>`,
		pc.MarginLeft, pc.MarginTop, pc.MarginLeft, bottom))

	flowStep := niceStep(pc.MaxFlowM3H)
	for flow := 0.0; flow < pc.MaxFlowM3H; flow += flowStep {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="tick-label" text-anchor="middle">%s</text>`,
			pc.x(flow), bottom+15, trimFloat(flow)))
	}

	headStep := niceStep(pc.MaxHeadM)
	for head := 0.0; head < pc.MaxHeadM; head += headStep {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="tick-label" text-anchor="end">%s</text>`,
			pc.MarginLeft-6, pc.y(head)+3, trimFloat(head)))
	}

	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">Flow (m³/h)</text>`,
		pc.MarginLeft+(pc.Width-pc.MarginLeft-pc.MarginRight)/2, pc.Height-15))
	svg.WriteString(fmt.Sprintf(`<text x="18" y="%d" class="axis-label" transform="rotate(-90 18 %d)" text-anchor="middle">Head (m)</text>`,
		pc.MarginTop+(pc.Height-pc.MarginTop-pc.MarginBottom)/2,
		pc.MarginTop+(pc.Height-pc.MarginTop-pc.MarginBottom)/2))
}

// drawSystemCurve draws the quadratic system resistance through the duty
// point, clipped to the chart area
func (pc *PumpCurveChart) drawSystemCurve(svg *strings.Builder, pump *entities.PumpSelectionResult) {
	k := pump.RequiredHeadM / (pump.DutyFlowM3H * pump.DutyFlowM3H)

	const samples = 48
	var points []string
	for i := 0; i <= samples; i++ {
		flow := pc.MaxFlowM3H * float64(i) / samples
		head := k * flow * flow
		if head > pc.MaxHeadM {
			// Close the polyline exactly at the top of the chart
			edgeFlow := math.Sqrt(pc.MaxHeadM / k)
			points = append(points, fmt.Sprintf("%d,%d", pc.x(edgeFlow), pc.y(pc.MaxHeadM)))
			break
		}
		points = append(points, fmt.Sprintf("%d,%d", pc.x(flow), pc.y(head)))
	}

	svg.WriteString(fmt.Sprintf(`<polyline points="%s" class="system-curve"/>`, strings.Join(points, " ")))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="point-label" fill="#d62728">system</text>`,
		pc.Width-pc.MarginRight-50, pc.MarginTop+15))
}

// drawPumpCurve draws the full-speed curve, plus the affinity-scaled curve
// when the pump was selected at reduced speed
func (pc *PumpCurveChart) drawPumpCurve(svg *strings.Builder, pump *entities.PumpSelectionResult) {
	var points []string
	for _, p := range pump.CurvePoints {
		points = append(points, fmt.Sprintf("%d,%d", pc.x(p.FlowM3H), pc.y(p.HeadM)))
	}
	svg.WriteString(fmt.Sprintf(`<polyline points="%s" class="pump-curve"/>`, strings.Join(points, " ")))

	label := string(pump.PumpKey)
	first := pump.CurvePoints[0]
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="point-label" fill="#1f77b4">%s</text>`,
		pc.x(first.FlowM3H)+6, pc.y(first.HeadM)-6, label))

	if pump.SpeedRatio < 1 {
		// Affinity laws: flow scales with speed, head with speed squared
		ratio := pump.SpeedRatio
		var scaled []string
		for _, p := range pump.CurvePoints {
			scaled = append(scaled, fmt.Sprintf("%d,%d", pc.x(p.FlowM3H*ratio), pc.y(p.HeadM*ratio*ratio)))
		}
		svg.WriteString(fmt.Sprintf(`<polyline points="%s" class="pump-curve-scaled"/>`, strings.Join(scaled, " ")))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="point-label" fill="#1f77b4">%.0f%% speed</text>`,
			pc.x(pump.CurvePoints[0].FlowM3H*ratio)+6, pc.y(pump.CurvePoints[0].HeadM*ratio*ratio)+12, ratio*100))
	}
}

// drawMarkers marks the duty point and the settled operating point
func (pc *PumpCurveChart) drawMarkers(svg *strings.Builder, pump *entities.PumpSelectionResult) {
	dutyX := pc.x(pump.DutyFlowM3H)
	dutyY := pc.y(pump.RequiredHeadM)
	svg.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="4" fill="#d62728"/>`, dutyX, dutyY))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="point-label">duty %.2f m³/h, %.2f m</text>`,
		dutyX+8, dutyY+4, pump.DutyFlowM3H, pump.RequiredHeadM))

	if pump.OperatingPoint != nil {
		opX := pc.x(pump.OperatingPoint.FlowM3H)
		opY := pc.y(pump.OperatingPoint.HeadM)
		svg.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="4" fill="#1f77b4"/>`, opX, opY))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="point-label">operates %.2f m³/h, %.2f m</text>`,
			opX+8, opY-8, pump.OperatingPoint.FlowM3H, pump.OperatingPoint.HeadM))
	}
}

// niceStep picks a 1/2/5-series tick interval giving roughly five ticks
func niceStep(max float64) float64 {
	if max <= 0 {
		return 1
	}

	raw := max / 5
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	normalized := raw / magnitude

	switch {
	case normalized <= 1:
		return magnitude
	case normalized <= 2:
		return 2 * magnitude
	case normalized <= 5:
		return 5 * magnitude
	default:
		return 10 * magnitude
	}
}

// trimFloat formats an axis tick without trailing zeros
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
