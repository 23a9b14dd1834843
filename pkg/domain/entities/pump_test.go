package entities

import "testing"

func circulatorPoints() []CurvePoint {
	return []CurvePoint{
		{FlowM3H: 0, HeadM: 6.0},
		{FlowM3H: 1.0, HeadM: 5.0},
		{FlowM3H: 2.0, HeadM: 3.8},
		{FlowM3H: 3.0, HeadM: 2.2},
	}
}

func TestNewPumpCurve(t *testing.T) {
	pump, err := NewPumpCurve("CIRC_6M", "Circulator 6m", circulatorPoints(), 0.5, 1.0, nil, 0.45, nil)
	if err != nil {
		t.Fatalf("Expected pump creation to succeed: %v", err)
	}

	if pump.ShutoffHeadM() != 6.0 {
		t.Errorf("Expected shutoff head 6.0 m, got %g", pump.ShutoffHeadM())
	}
	if pump.MaxFlowM3H() != 3.0 {
		t.Errorf("Expected max flow 3.0 m3/h, got %g", pump.MaxFlowM3H())
	}
}

func TestNewPumpCurve_Validation(t *testing.T) {
	tests := []struct {
		name          string
		key           PumpKey
		points        []CurvePoint
		minRatio      float64
		maxRatio      float64
		effPoints     []EfficiencyPoint
		efficiency    float64
		expectedError string
	}{
		{
			name:          "empty key",
			key:           "",
			points:        circulatorPoints(),
			minRatio:      0.5,
			maxRatio:      1.0,
			efficiency:    0.45,
			expectedError: "pump key cannot be empty",
		},
		{
			name:          "single point",
			key:           "CIRC_6M",
			points:        []CurvePoint{{FlowM3H: 0, HeadM: 6.0}},
			minRatio:      0.5,
			maxRatio:      1.0,
			efficiency:    0.45,
			expectedError: "pump CIRC_6M: curve must have at least 2 points",
		},
		{
			name: "negative head",
			key:  "CIRC_6M",
			points: []CurvePoint{
				{FlowM3H: 0, HeadM: 6.0},
				{FlowM3H: 1.0, HeadM: -0.5},
			},
			minRatio:      0.5,
			maxRatio:      1.0,
			efficiency:    0.45,
			expectedError: "pump CIRC_6M: curve head cannot be negative",
		},
		{
			name: "flow not increasing",
			key:  "CIRC_6M",
			points: []CurvePoint{
				{FlowM3H: 0, HeadM: 6.0},
				{FlowM3H: 1.0, HeadM: 5.0},
				{FlowM3H: 1.0, HeadM: 4.0},
			},
			minRatio:      0.5,
			maxRatio:      1.0,
			efficiency:    0.45,
			expectedError: "pump CIRC_6M: curve points must be strictly increasing in flow",
		},
		{
			name: "head increases with flow",
			key:  "CIRC_6M",
			points: []CurvePoint{
				{FlowM3H: 0, HeadM: 6.0},
				{FlowM3H: 1.0, HeadM: 6.5},
			},
			minRatio:      0.5,
			maxRatio:      1.0,
			efficiency:    0.45,
			expectedError: "pump CIRC_6M: curve head must not increase with flow",
		},
		{
			name:          "zero min speed ratio",
			key:           "CIRC_6M",
			points:        circulatorPoints(),
			minRatio:      0,
			maxRatio:      1.0,
			efficiency:    0.45,
			expectedError: "pump CIRC_6M: min speed ratio must be in (0, 1], got 0",
		},
		{
			name:          "max ratio below min",
			key:           "CIRC_6M",
			points:        circulatorPoints(),
			minRatio:      0.8,
			maxRatio:      0.5,
			efficiency:    0.45,
			expectedError: "pump CIRC_6M: max speed ratio must be in [0.8, 1], got 0.5",
		},
		{
			name:          "efficiency above one",
			key:           "CIRC_6M",
			points:        circulatorPoints(),
			minRatio:      0.5,
			maxRatio:      1.0,
			efficiency:    1.2,
			expectedError: "pump CIRC_6M: nominal efficiency must be in (0, 1], got 1.2",
		},
		{
			name:          "efficiency point out of range",
			key:           "CIRC_6M",
			points:        circulatorPoints(),
			minRatio:      0.5,
			maxRatio:      1.0,
			effPoints:     []EfficiencyPoint{{FlowM3H: 1.0, Efficiency: 1.5}},
			efficiency:    0.45,
			expectedError: "pump CIRC_6M: efficiency must be in (0, 1], got 1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPumpCurve(tt.key, "Circulator", tt.points, tt.minRatio, tt.maxRatio, tt.effPoints, tt.efficiency, nil)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if err.Error() != tt.expectedError {
				t.Errorf("Expected error %q, got %q", tt.expectedError, err.Error())
			}
		})
	}
}

func TestNewPumpCurve_MotorEfficiency(t *testing.T) {
	motor := 0.9
	pump, err := NewPumpCurve("CIRC_6M", "Circulator 6m", circulatorPoints(), 0.5, 1.0, nil, 0.45, &motor)
	if err != nil {
		t.Fatalf("Expected pump creation to succeed: %v", err)
	}
	if pump.MotorEfficiency == nil || *pump.MotorEfficiency != 0.9 {
		t.Error("Expected motor efficiency to be retained")
	}

	bad := 1.5
	if _, err := NewPumpCurve("CIRC_6M", "Circulator 6m", circulatorPoints(), 0.5, 1.0, nil, 0.45, &bad); err == nil {
		t.Error("Expected error for motor efficiency above 1")
	}
}
