package scenario

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteSample writes a small two-storey demonstration scenario to the
// given path. The file exercises every schema feature: branch and
// terminal legs, per-room ΔT overrides, fitting counts, and a declared
// pressure-drop path.
func WriteSample(filename string) error {
	data, err := json.MarshalIndent(sampleDocument(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sample scenario: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write sample scenario: %w", err)
	}
	return nil
}

func sampleDocument() *document {
	towelRailDeltaT := 15.0

	return &document{
		Name:          "two-storey-demo",
		Fluid:         "WATER",
		Material:      "COPPER_EN1057",
		DesignDeltaTK: 10,
		MaxVelocityMS: 1.5,
		Legs: []legSpec{
			{
				ID:       "boiler",
				Name:     "Boiler primary",
				Children: []string{"ground", "first"},
				Segments: []segmentSpec{
					{PipeM: 6},
					{Fitting: "GATE_VALVE", Count: 2},
					{Fitting: "CHECK_VALVE"},
				},
			},
			{
				ID:     "ground",
				Name:   "Ground floor circuit",
				Parent: "boiler",
				Rooms: []roomSpec{
					{ID: "lounge", Name: "Lounge", HeatW: 3200},
					{ID: "kitchen", Name: "Kitchen", HeatW: 2400},
				},
				Segments: []segmentSpec{
					{PipeM: 9},
					{Fitting: "TEE_BRANCH"},
					{Fitting: "ELBOW_90_STD", Count: 4},
					{Fitting: "TRV"},
					{Fitting: "LOCKSHIELD"},
				},
			},
			{
				ID:     "first",
				Name:   "First floor circuit",
				Parent: "boiler",
				Rooms: []roomSpec{
					{ID: "bed1", Name: "Main bedroom", HeatW: 1800},
					{ID: "bath", Name: "Bathroom towel rail", HeatW: 600, DeltaTK: &towelRailDeltaT},
				},
				Segments: []segmentSpec{
					{PipeM: 14},
					{Fitting: "TEE_BRANCH"},
					{Fitting: "ELBOW_90_STD", Count: 6},
					{Fitting: "TRV"},
					{Fitting: "LOCKSHIELD"},
				},
			},
		},
		Paths: []pathSpec{
			{ID: "to-first", Legs: []string{"boiler", "first"}},
		},
	}
}
