package services

import (
	"strings"
	"testing"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

func mustRoom(t *testing.T, id entities.RoomID, heatW float64) entities.TerminalRoom {
	t.Helper()
	room, err := entities.NewTerminalRoom(id, string(id), heatW, nil)
	if err != nil {
		t.Fatalf("Expected room %s creation to succeed: %v", id, err)
	}
	return *room
}

func mustBranchLeg(t *testing.T, id, parent entities.LegID, children []entities.LegID) *entities.CommittedLeg {
	t.Helper()
	leg, err := entities.NewCommittedLeg(id, string(id), parent, children, nil, nil, "", nil)
	if err != nil {
		t.Fatalf("Expected branch leg %s creation to succeed: %v", id, err)
	}
	return leg
}

func mustTerminalLeg(t *testing.T, id, parent entities.LegID, rooms []entities.TerminalRoom) *entities.CommittedLeg {
	t.Helper()
	leg, err := entities.NewCommittedLeg(id, string(id), parent, nil, rooms, nil, "", nil)
	if err != nil {
		t.Fatalf("Expected terminal leg %s creation to succeed: %v", id, err)
	}
	return leg
}

// twoBranchNetwork builds:
//
//	boiler ── riser ─┬─ rad-north
//	                 └─ rad-south
func twoBranchNetwork(t *testing.T) []*entities.CommittedLeg {
	t.Helper()
	return []*entities.CommittedLeg{
		mustBranchLeg(t, "boiler", "", []entities.LegID{"riser"}),
		mustBranchLeg(t, "riser", "boiler", []entities.LegID{"rad-north", "rad-south"}),
		mustTerminalLeg(t, "rad-north", "riser", []entities.TerminalRoom{mustRoom(t, "north", 1500)}),
		mustTerminalLeg(t, "rad-south", "riser", []entities.TerminalRoom{mustRoom(t, "south", 2000)}),
	}
}

func TestNewNetworkTopology(t *testing.T) {
	topo, err := NewNetworkTopology(twoBranchNetwork(t))
	if err != nil {
		t.Fatalf("Expected topology construction to succeed: %v", err)
	}

	if topo.RootID() != "boiler" {
		t.Errorf("Expected root boiler, got %s", topo.RootID())
	}
	if topo.Len() != 4 {
		t.Errorf("Expected 4 legs, got %d", topo.Len())
	}

	terminals := topo.TerminalLegs()
	if len(terminals) != 2 {
		t.Fatalf("Expected 2 terminal legs, got %d", len(terminals))
	}
	if terminals[0].ID != "rad-north" || terminals[1].ID != "rad-south" {
		t.Errorf("Expected terminals in declaration order, got %s, %s", terminals[0].ID, terminals[1].ID)
	}

	leg, err := topo.Leg("riser")
	if err != nil {
		t.Fatalf("Expected leg lookup to succeed: %v", err)
	}
	if leg.Name != "riser" {
		t.Errorf("Expected leg riser, got %s", leg.Name)
	}

	if _, err := topo.Leg("basement"); err == nil {
		t.Error("Expected error for unknown leg id")
	}
}

func TestNewNetworkTopology_Errors(t *testing.T) {
	tests := []struct {
		name     string
		legs     func(t *testing.T) []*entities.CommittedLeg
		expected string
	}{
		{
			name:     "empty network",
			legs:     func(t *testing.T) []*entities.CommittedLeg { return nil },
			expected: "at least one leg",
		},
		{
			name: "duplicate leg id",
			legs: func(t *testing.T) []*entities.CommittedLeg {
				return []*entities.CommittedLeg{
					mustBranchLeg(t, "boiler", "", []entities.LegID{"rad"}),
					mustTerminalLeg(t, "rad", "boiler", []entities.TerminalRoom{mustRoom(t, "r", 100)}),
					mustTerminalLeg(t, "rad", "boiler", []entities.TerminalRoom{mustRoom(t, "r2", 100)}),
				}
			},
			expected: "duplicate leg id rad",
		},
		{
			name: "unknown parent",
			legs: func(t *testing.T) []*entities.CommittedLeg {
				return []*entities.CommittedLeg{
					mustBranchLeg(t, "boiler", "", []entities.LegID{"rad"}),
					mustTerminalLeg(t, "rad", "ghost", []entities.TerminalRoom{mustRoom(t, "r", 100)}),
				}
			},
			expected: "unknown parent ghost",
		},
		{
			name: "unknown child",
			legs: func(t *testing.T) []*entities.CommittedLeg {
				return []*entities.CommittedLeg{
					mustBranchLeg(t, "boiler", "", []entities.LegID{"ghost"}),
				}
			},
			expected: "unknown child ghost",
		},
		{
			name: "multiple roots",
			legs: func(t *testing.T) []*entities.CommittedLeg {
				return []*entities.CommittedLeg{
					mustBranchLeg(t, "boiler", "", []entities.LegID{"rad"}),
					mustTerminalLeg(t, "rad", "boiler", []entities.TerminalRoom{mustRoom(t, "r", 100)}),
					mustTerminalLeg(t, "spare", "", []entities.TerminalRoom{mustRoom(t, "s", 100)}),
				}
			},
			expected: "2 root legs",
		},
		{
			name: "parent does not list child",
			legs: func(t *testing.T) []*entities.CommittedLeg {
				return []*entities.CommittedLeg{
					mustBranchLeg(t, "boiler", "", []entities.LegID{"rad"}),
					mustTerminalLeg(t, "rad", "boiler", []entities.TerminalRoom{mustRoom(t, "r", 100)}),
					mustTerminalLeg(t, "orphan", "boiler", []entities.TerminalRoom{mustRoom(t, "o", 100)}),
				}
			},
			expected: "does not list it as a child",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetworkTopology(tt.legs(t))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected error containing %q, got %q", tt.expected, err.Error())
			}
		})
	}
}

func TestNetworkTopology_PathToRoot(t *testing.T) {
	topo, err := NewNetworkTopology(twoBranchNetwork(t))
	if err != nil {
		t.Fatalf("Expected topology construction to succeed: %v", err)
	}

	chain, err := topo.PathToRoot("rad-south")
	if err != nil {
		t.Fatalf("Expected path to root to succeed: %v", err)
	}

	expected := []entities.LegID{"boiler", "riser", "rad-south"}
	if len(chain) != len(expected) {
		t.Fatalf("Expected chain of %d legs, got %d", len(expected), len(chain))
	}
	for i, id := range expected {
		if chain[i] != id {
			t.Errorf("Expected chain[%d] = %s, got %s", i, id, chain[i])
		}
	}
}

func TestNetworkTopology_EnumeratePaths(t *testing.T) {
	topo, err := NewNetworkTopology(twoBranchNetwork(t))
	if err != nil {
		t.Fatalf("Expected topology construction to succeed: %v", err)
	}

	paths, err := topo.EnumeratePaths()
	if err != nil {
		t.Fatalf("Expected path enumeration to succeed: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}

	if paths[0].ID != "rad-north" || paths[1].ID != "rad-south" {
		t.Errorf("Expected paths named after terminal legs, got %s, %s", paths[0].ID, paths[1].ID)
	}

	for _, path := range paths {
		if path.LegIDs[0] != "boiler" {
			t.Errorf("Expected path %s to start at boiler, got %s", path.ID, path.LegIDs[0])
		}
		if err := topo.ValidatePath(path); err != nil {
			t.Errorf("Expected enumerated path %s to validate: %v", path.ID, err)
		}
	}
}

func TestNetworkTopology_ValidatePath(t *testing.T) {
	topo, err := NewNetworkTopology(twoBranchNetwork(t))
	if err != nil {
		t.Fatalf("Expected topology construction to succeed: %v", err)
	}

	mustPath := func(id entities.PathID, legIDs ...entities.LegID) *entities.NetworkPath {
		path, err := entities.NewNetworkPath(id, legIDs)
		if err != nil {
			t.Fatalf("Expected path %s creation to succeed: %v", id, err)
		}
		return path
	}

	if err := topo.ValidatePath(mustPath("good", "boiler", "riser", "rad-north")); err != nil {
		t.Errorf("Expected declared path to validate: %v", err)
	}

	if err := topo.ValidatePath(mustPath("bad-start", "riser", "rad-north")); err == nil {
		t.Error("Expected error for path not starting at root")
	}
	if err := topo.ValidatePath(mustPath("bad-edge", "boiler", "rad-north")); err == nil {
		t.Error("Expected error for path skipping a leg")
	}
	if err := topo.ValidatePath(mustPath("bad-end", "boiler", "riser")); err == nil {
		t.Error("Expected error for path ending at a branch leg")
	}
	if err := topo.ValidatePath(mustPath("bad-leg", "boiler", "riser", "ghost")); err == nil {
		t.Error("Expected error for path referencing unknown leg")
	}
}

func TestTopologyValidator_ValidNetwork(t *testing.T) {
	validator := NewTopologyValidator()

	result := validator.ValidateNetwork(twoBranchNetwork(t))
	if !result.IsValid() {
		t.Errorf("Expected valid network, got errors: %v", result.Errors)
	}
	if result.HasCycles {
		t.Error("Expected no cycles in a tree")
	}
}

func TestTopologyValidator_ShapeViolations(t *testing.T) {
	validator := NewTopologyValidator()

	// Literals bypass the constructor's shape rule
	legs := []*entities.CommittedLeg{
		{ID: "boiler", Children: []entities.LegID{"mixed"}},
		{
			ID:       "mixed",
			ParentID: "boiler",
			Children: []entities.LegID{"rad"},
			Rooms:    []entities.TerminalRoom{{ID: "r", HeatDemandW: 100}},
		},
		{ID: "rad", ParentID: "mixed", Rooms: []entities.TerminalRoom{{ID: "r2", HeatDemandW: 100}}},
	}

	result := validator.ValidateNetwork(legs)
	if result.IsValid() {
		t.Fatal("Expected shape violation to be reported")
	}

	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "owns both child legs and rooms") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected both-children-and-rooms error, got %v", result.Errors)
	}
}

func TestTopologyValidator_DetectsCycles(t *testing.T) {
	validator := NewTopologyValidator()

	legs := []*entities.CommittedLeg{
		{ID: "a", ParentID: "c", Children: []entities.LegID{"b"}},
		{ID: "b", ParentID: "a", Children: []entities.LegID{"c"}},
		{ID: "c", ParentID: "b", Children: []entities.LegID{"a"}},
	}

	result := validator.ValidateNetwork(legs)
	if !result.HasCycles {
		t.Fatal("Expected cycle to be detected")
	}
	if len(result.CyclePaths) == 0 {
		t.Fatal("Expected at least one cycle path")
	}
	if result.IsValid() {
		t.Error("Expected cycle to produce a validation error")
	}
}

func TestTopologyValidator_FlowConservation(t *testing.T) {
	validator := NewTopologyValidator()

	declared := func(v float64) *float64 { return &v }

	legs := []*entities.CommittedLeg{
		{ID: "boiler", Children: []entities.LegID{"rad-a", "rad-b"}, DesignFlowM3S: declared(0.030)},
		{ID: "rad-a", ParentID: "boiler", Rooms: []entities.TerminalRoom{{ID: "a", HeatDemandW: 100}}, DesignFlowM3S: declared(0.010)},
		{ID: "rad-b", ParentID: "boiler", Rooms: []entities.TerminalRoom{{ID: "b", HeatDemandW: 100}}, DesignFlowM3S: declared(0.015)},
	}

	result := validator.ValidateNetwork(legs)
	if result.IsValid() {
		t.Fatal("Expected flow conservation violation to be reported")
	}

	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "children sum to") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected flow conservation error, got %v", result.Errors)
	}

	// Matching declarations pass
	legs[0].DesignFlowM3S = declared(0.025)
	result = validator.ValidateNetwork(legs)
	if !result.IsValid() {
		t.Errorf("Expected conserved flows to validate, got %v", result.Errors)
	}
}
