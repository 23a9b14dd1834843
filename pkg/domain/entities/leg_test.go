package entities

import (
	"errors"
	"testing"
)

func TestNewCommittedLeg_ShapeRule(t *testing.T) {
	rooms := []TerminalRoom{{ID: "RM_LOUNGE", Name: "Lounge", HeatDemandW: 1800}}
	children := []LegID{"LEG_GF", "LEG_FF"}

	// A terminal leg owns rooms only
	terminal, err := NewCommittedLeg("LEG_LOUNGE", "Lounge drop", "LEG_GF", nil, rooms, nil, "", nil)
	if err != nil {
		t.Fatalf("Expected terminal leg creation to succeed: %v", err)
	}
	if !terminal.IsTerminal() || terminal.IsBranch() {
		t.Errorf("Expected terminal leg, got branch=%v terminal=%v", terminal.IsBranch(), terminal.IsTerminal())
	}

	// A branch leg owns children only
	branch, err := NewCommittedLeg("LEG_RISER", "Main riser", "", children, nil, nil, "", nil)
	if err != nil {
		t.Fatalf("Expected branch leg creation to succeed: %v", err)
	}
	if !branch.IsBranch() || branch.IsTerminal() {
		t.Errorf("Expected branch leg, got branch=%v terminal=%v", branch.IsBranch(), branch.IsTerminal())
	}
	if !branch.IsRoot() {
		t.Error("Expected leg without parent to be root")
	}

	// Both children and rooms must fail
	_, err = NewCommittedLeg("LEG_BAD", "Bad leg", "", children, rooms, nil, "", nil)
	if err == nil {
		t.Fatal("Expected error for leg with both children and rooms")
	}
	if !errors.Is(err, ErrLegShape) {
		t.Errorf("Expected ErrLegShape, got %v", err)
	}

	// Neither children nor rooms must fail
	_, err = NewCommittedLeg("LEG_EMPTY", "Empty leg", "", nil, nil, nil, "", nil)
	if err == nil {
		t.Fatal("Expected error for leg with neither children nor rooms")
	}
	if !errors.Is(err, ErrLegShape) {
		t.Errorf("Expected ErrLegShape, got %v", err)
	}
}

func TestNewCommittedLeg_Validation(t *testing.T) {
	rooms := []TerminalRoom{{ID: "RM_1", HeatDemandW: 900}}
	negative := -0.001

	testCases := []struct {
		name     string
		id       LegID
		parentID LegID
		children []LegID
		rooms    []TerminalRoom
		flow     *float64
	}{
		{"empty id", "", "", nil, rooms, nil},
		{"self parent", "LEG_A", "LEG_A", nil, rooms, nil},
		{"self child", "LEG_A", "", []LegID{"LEG_A"}, nil, nil},
		{"negative flow", "LEG_A", "", nil, rooms, &negative},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCommittedLeg(tc.id, "", tc.parentID, tc.children, tc.rooms, nil, "", tc.flow)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
		})
	}
}

func TestNewTerminalRoom_Validation(t *testing.T) {
	room, err := NewTerminalRoom("RM_KITCHEN", "Kitchen", 1500, nil)
	if err != nil {
		t.Fatalf("Expected valid room creation to succeed: %v", err)
	}
	if room.DeltaTOverrideK != nil {
		t.Error("Expected nil delta T override by default")
	}

	ufhDelta := 7.0
	ufhRoom, err := NewTerminalRoom("RM_HALL", "Hall UFH", 1200, &ufhDelta)
	if err != nil {
		t.Fatalf("Expected room with delta T override to succeed: %v", err)
	}
	if ufhRoom.DeltaTOverrideK == nil || *ufhRoom.DeltaTOverrideK != 7.0 {
		t.Errorf("Expected delta T override 7.0, got %v", ufhRoom.DeltaTOverrideK)
	}

	if _, err := NewTerminalRoom("", "No id", 1000, nil); err == nil {
		t.Error("Expected error for empty room id")
	}
	if _, err := NewTerminalRoom("RM_X", "Negative", -10, nil); err == nil {
		t.Error("Expected error for negative heat demand")
	}
	zeroDelta := 0.0
	if _, err := NewTerminalRoom("RM_X", "Zero dT", 1000, &zeroDelta); err == nil {
		t.Error("Expected error for zero delta T override")
	}
}

func TestCommittedLeg_Helpers(t *testing.T) {
	rooms := []TerminalRoom{
		{ID: "RM_1", HeatDemandW: 800},
		{ID: "RM_2", HeatDemandW: 1200},
	}
	segments := []Segment{
		{Kind: PipeSegment, LengthM: 6.5},
		{Kind: FittingSegment, Fitting: "ELBOW_90_STD", Count: 4},
		{Kind: PipeSegment, LengthM: 3.5},
	}

	leg, err := NewCommittedLeg("LEG_GF", "Ground floor", "LEG_ROOT", nil, rooms, segments, "COPPER_EN1057", nil)
	if err != nil {
		t.Fatalf("Expected leg creation to succeed: %v", err)
	}

	if got := leg.HeatDemandW(); got != 2000 {
		t.Errorf("Expected heat demand 2000 W, got %g", got)
	}
	if got := leg.TotalPipeLengthM(); got != 10.0 {
		t.Errorf("Expected total pipe length 10.0 m, got %g", got)
	}
}
