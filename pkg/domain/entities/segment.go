package entities

import "fmt"

// SegmentKind represents the kind of a leg segment
type SegmentKind int

const (
	PipeSegment SegmentKind = iota
	FittingSegment
)

// String method for SegmentKind enum
func (k SegmentKind) String() string {
	switch k {
	case PipeSegment:
		return "Pipe"
	case FittingSegment:
		return "Fitting"
	default:
		return "Unknown"
	}
}

// Segment represents one element of a leg's ordered geometry: either a
// straight pipe run or a local-loss fitting. Fittings have no independent
// diameter; they take the velocity of the leg they belong to.
type Segment struct {
	Kind    SegmentKind
	LengthM float64    // pipe runs only
	Fitting FittingKey // fittings only
	Count   int        // fittings only, number of identical fittings
}

// NewPipeRun creates a validated straight-pipe Segment
func NewPipeRun(lengthM float64) (*Segment, error) {
	if lengthM < 0 {
		return nil, fmt.Errorf("pipe length cannot be negative, got %g", lengthM)
	}

	return &Segment{
		Kind:    PipeSegment,
		LengthM: lengthM,
	}, nil
}

// NewFittingRun creates a validated fitting Segment covering count identical
// fittings of the given catalog type
func NewFittingRun(fitting FittingKey, count int) (*Segment, error) {
	if string(fitting) == "" {
		return nil, fmt.Errorf("fitting key cannot be empty")
	}
	if count <= 0 {
		return nil, fmt.Errorf("fitting count must be positive, got %d", count)
	}

	return &Segment{
		Kind:    FittingSegment,
		Fitting: fitting,
		Count:   count,
	}, nil
}

// SizedSegment is the sizing result for one leg: the chosen catalog size and
// the hydraulic state at the leg's design flow. One representative design
// velocity applies to every pipe and fitting in the leg.
type SizedSegment struct {
	LegID               LegID       `json:"leg_id"`
	Material            MaterialKey `json:"material"`
	SizeName            string      `json:"size_name"`
	InternalDiameterM   float64     `json:"internal_diameter_m"`
	DesignFlowM3S       float64     `json:"design_flow_m3_s"`
	VelocityMS          float64     `json:"velocity_m_s"`
	ReynoldsNumber      float64     `json:"reynolds_number"`
	FrictionFactor      float64     `json:"friction_factor"`
	PressureGradientPaM float64     `json:"pressure_gradient_pa_m"`
	Warnings            []Warning   `json:"warnings,omitempty"`
}

// HasWarning reports whether the sized leg carries a warning with the code
func (s *SizedSegment) HasWarning(code WarningCode) bool {
	for _, w := range s.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
