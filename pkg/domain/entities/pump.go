package entities

import "fmt"

// PumpKey represents a stable catalog identifier for a pump
type PumpKey string

// CurvePoint represents one flow/head point on a pump performance curve
type CurvePoint struct {
	FlowM3H float64 `json:"flow_m3_h"`
	HeadM   float64 `json:"head_m"`
}

// EfficiencyPoint represents one flow/efficiency point along a pump curve
type EfficiencyPoint struct {
	FlowM3H    float64
	Efficiency float64
}

// PumpCurve represents one catalog pump's performance envelope. Points are
// ordered by strictly increasing flow with non-increasing head, so the first
// point carries the shutoff head, the curve's maximum.
type PumpCurve struct {
	Key    PumpKey
	Name   string
	Points []CurvePoint

	// Variable-speed envelope; MinSpeedRatio = MaxSpeedRatio = 1 for
	// fixed-speed pumps.
	MinSpeedRatio float64
	MaxSpeedRatio float64

	// Efficiency along the curve; nominal value is used when no points are
	// given.
	EfficiencyPoints  []EfficiencyPoint
	NominalEfficiency float64

	// Optional motor efficiency for the shaft/electrical power split; nil
	// means the nominal efficiency already covers pump plus motor.
	MotorEfficiency *float64
}

// NewPumpCurve creates a validated PumpCurve
func NewPumpCurve(
	key PumpKey,
	name string,
	points []CurvePoint,
	minSpeedRatio, maxSpeedRatio float64,
	efficiencyPoints []EfficiencyPoint,
	nominalEfficiency float64,
	motorEfficiency *float64,
) (*PumpCurve, error) {
	if string(key) == "" {
		return nil, fmt.Errorf("pump key cannot be empty")
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("pump %s: curve must have at least 2 points", key)
	}

	lastFlow := -1.0
	lastHead := points[0].HeadM
	for i, p := range points {
		if p.FlowM3H < 0 {
			return nil, fmt.Errorf("pump %s: curve flow cannot be negative", key)
		}
		if p.HeadM < 0 {
			return nil, fmt.Errorf("pump %s: curve head cannot be negative", key)
		}
		if p.FlowM3H <= lastFlow {
			return nil, fmt.Errorf("pump %s: curve points must be strictly increasing in flow", key)
		}
		if i > 0 && p.HeadM > lastHead {
			return nil, fmt.Errorf("pump %s: curve head must not increase with flow", key)
		}
		lastFlow = p.FlowM3H
		lastHead = p.HeadM
	}

	if minSpeedRatio <= 0 || minSpeedRatio > 1 {
		return nil, fmt.Errorf("pump %s: min speed ratio must be in (0, 1], got %g", key, minSpeedRatio)
	}
	if maxSpeedRatio < minSpeedRatio || maxSpeedRatio > 1 {
		return nil, fmt.Errorf(
			"pump %s: max speed ratio must be in [%g, 1], got %g",
			key, minSpeedRatio, maxSpeedRatio,
		)
	}

	if nominalEfficiency <= 0 || nominalEfficiency > 1 {
		return nil, fmt.Errorf("pump %s: nominal efficiency must be in (0, 1], got %g", key, nominalEfficiency)
	}
	if motorEfficiency != nil && (*motorEfficiency <= 0 || *motorEfficiency > 1) {
		return nil, fmt.Errorf("pump %s: motor efficiency must be in (0, 1], got %g", key, *motorEfficiency)
	}

	lastFlow = -1.0
	for _, e := range efficiencyPoints {
		if e.FlowM3H <= 0 {
			return nil, fmt.Errorf("pump %s: efficiency point flow must be positive", key)
		}
		if e.Efficiency <= 0 || e.Efficiency > 1 {
			return nil, fmt.Errorf("pump %s: efficiency must be in (0, 1], got %g", key, e.Efficiency)
		}
		if e.FlowM3H <= lastFlow {
			return nil, fmt.Errorf("pump %s: efficiency points must be strictly increasing in flow", key)
		}
		lastFlow = e.FlowM3H
	}

	return &PumpCurve{
		Key:               key,
		Name:              name,
		Points:            points,
		MinSpeedRatio:     minSpeedRatio,
		MaxSpeedRatio:     maxSpeedRatio,
		EfficiencyPoints:  efficiencyPoints,
		NominalEfficiency: nominalEfficiency,
		MotorEfficiency:   motorEfficiency,
	}, nil
}

// ShutoffHeadM returns the curve's head at its lowest flow point
func (c *PumpCurve) ShutoffHeadM() float64 {
	return c.Points[0].HeadM
}

// MaxFlowM3H returns the curve's largest flow point
func (c *PumpCurve) MaxFlowM3H() float64 {
	return c.Points[len(c.Points)-1].FlowM3H
}

// OperatingPoint represents the intersection of the system curve with a
// pump curve
type OperatingPoint struct {
	FlowM3H float64 `json:"flow_m3_h"`
	HeadM   float64 `json:"head_m"`
	HeadPa  float64 `json:"head_pa"`
}

// PumpPower represents the power split for a pump at a duty point.
// Electrical power equals shaft power unless a motor efficiency is supplied.
type PumpPower struct {
	Efficiency    float64 `json:"efficiency"`
	HydraulicW    float64 `json:"hydraulic_w"`
	ShaftW        float64 `json:"shaft_w"`
	ElectricalW   float64 `json:"electrical_w"`
	MotorSupplied bool    `json:"motor_supplied"`
}

// PumpSelectionResult represents the chosen pump for a duty point
type PumpSelectionResult struct {
	PumpKey         PumpKey         `json:"pump_key"`
	PumpName        string          `json:"pump_name"`
	DutyFlowM3H     float64         `json:"duty_flow_m3_h"`
	RequiredHeadM   float64         `json:"required_head_m"`
	DeliveredHeadM  float64         `json:"delivered_head_m"`
	HeadMarginM     float64         `json:"head_margin_m"`
	SpeedRatio      float64         `json:"speed_ratio"`
	Power           PumpPower       `json:"power"`
	OperatingPoint  *OperatingPoint `json:"operating_point,omitempty"`
	CurvePoints     []CurvePoint    `json:"curve_points,omitempty"`
	CandidatesTried int             `json:"candidates_tried"`
	Note            string          `json:"note,omitempty"`
}

// Summary returns a formatted one-line description of the selection
func (r *PumpSelectionResult) Summary() string {
	return fmt.Sprintf("%s at %.2f m³/h, %.2f m head (margin %.2f m, speed %.0f%%)",
		r.PumpKey, r.DutyFlowM3H, r.DeliveredHeadM, r.HeadMarginM, r.SpeedRatio*100)
}
