package emitters

// EmitterType represents the kind of terminal heat emitter
type EmitterType int

const (
	Radiator EmitterType = iota
	UnderfloorLoop
	FanCoil
)

// String method for EmitterType enum
func (t EmitterType) String() string {
	switch t {
	case Radiator:
		return "radiator"
	case UnderfloorLoop:
		return "ufh_loop"
	case FanCoil:
		return "fan_coil"
	default:
		return "unknown"
	}
}

// MarshalText makes emitter types serialize by name
func (t EmitterType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Result describes an emitter sized to satisfy a terminal heat demand.
// EquivalentOutputW is the catalog rating at the emitter family's reference
// ΔT that delivers the required output at the actual mean water ΔT.
type Result struct {
	EmitterType         EmitterType `json:"emitter_type"`
	RequiredOutputW     float64     `json:"required_output_w"`
	DeliveredOutputW    float64     `json:"delivered_output_w"`
	MeanDeltaTK         float64     `json:"mean_delta_t_k"`
	FlowM3S             float64     `json:"flow_m3_s"`
	AvailablePressurePa float64     `json:"available_pressure_pa"`
	EquivalentOutputW   float64     `json:"equivalent_output_w"`
	GeometryDescriptor  string      `json:"geometry_descriptor,omitempty"`
	Note                string      `json:"note,omitempty"`
}

// Sizer sizes one emitter against the hydronic state at its terminal: the
// heat to deliver, the design flow, the pressure available across the
// terminal, and the mean water-to-room temperature difference.
// Implementations form a closed set: radiator, underfloor loop, fan coil.
type Sizer interface {
	Size(requiredOutputW, flowM3S, availablePressurePa, meanDeltaTK float64) (*Result, error)
}
