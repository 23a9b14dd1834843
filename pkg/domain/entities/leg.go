package entities

import (
	"errors"
	"fmt"
)

// ErrLegShape is returned when a leg owns both child legs and terminal
// rooms, or neither. Either shape corrupts bottom-up flow aggregation.
var ErrLegShape = errors.New("entities: leg must own either child legs or terminal rooms, never both")

// LegID represents a stable identifier for a committed leg
type LegID string

// RoomID represents a stable identifier for a terminal room
type RoomID string

// TerminalRoom represents a heated room served by a terminal leg. The
// optional ΔT override supports emitter circuits that run off the network
// design temperature drop (nil means use the network design ΔT).
type TerminalRoom struct {
	ID              RoomID
	Name            string
	HeatDemandW     float64
	DeltaTOverrideK *float64
}

// NewTerminalRoom creates a validated TerminalRoom
func NewTerminalRoom(id RoomID, name string, heatDemandW float64, deltaTOverrideK *float64) (*TerminalRoom, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("room id cannot be empty")
	}
	if heatDemandW < 0 {
		return nil, fmt.Errorf("heat demand cannot be negative, got %g", heatDemandW)
	}
	if deltaTOverrideK != nil && *deltaTOverrideK <= 0 {
		return nil, fmt.Errorf("delta T override must be positive, got %g", *deltaTOverrideK)
	}

	return &TerminalRoom{
		ID:              id,
		Name:            name,
		HeatDemandW:     heatDemandW,
		DeltaTOverrideK: deltaTOverrideK,
	}, nil
}

// CommittedLeg represents one branch of the distribution tree after the
// topology is committed. A leg owns either child legs or terminal rooms,
// never both. Parent/child relations are held as ids, not object references;
// the topology arena resolves them.
type CommittedLeg struct {
	ID       LegID
	Name     string
	ParentID LegID // empty at the root
	Children []LegID
	Rooms    []TerminalRoom
	Segments []Segment

	// Material override for this leg; empty means the network default.
	Material MaterialKey

	// Declared design flow from upstream [m³/s]; nil means the flow planner
	// derives it from terminal heat demand.
	DesignFlowM3S *float64
}

// NewCommittedLeg creates a validated CommittedLeg, enforcing the
// children-or-rooms shape rule at construction
func NewCommittedLeg(
	id LegID,
	name string,
	parentID LegID,
	children []LegID,
	rooms []TerminalRoom,
	segments []Segment,
	material MaterialKey,
	designFlowM3S *float64,
) (*CommittedLeg, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("leg id cannot be empty")
	}
	if id == parentID {
		return nil, fmt.Errorf("leg %s cannot be its own parent", id)
	}
	if len(children) > 0 && len(rooms) > 0 {
		return nil, fmt.Errorf("leg %s: %w", id, ErrLegShape)
	}
	if len(children) == 0 && len(rooms) == 0 {
		return nil, fmt.Errorf("leg %s: %w", id, ErrLegShape)
	}
	if designFlowM3S != nil && *designFlowM3S < 0 {
		return nil, fmt.Errorf("design flow cannot be negative, got %g", *designFlowM3S)
	}
	for _, child := range children {
		if child == id {
			return nil, fmt.Errorf("leg %s cannot list itself as a child", id)
		}
	}

	return &CommittedLeg{
		ID:            id,
		Name:          name,
		ParentID:      parentID,
		Children:      children,
		Rooms:         rooms,
		Segments:      segments,
		Material:      material,
		DesignFlowM3S: designFlowM3S,
	}, nil
}

// IsTerminal reports whether this leg serves terminal rooms
func (l *CommittedLeg) IsTerminal() bool {
	return len(l.Rooms) > 0
}

// IsBranch reports whether this leg feeds child legs
func (l *CommittedLeg) IsBranch() bool {
	return len(l.Children) > 0
}

// IsRoot reports whether this leg has no parent
func (l *CommittedLeg) IsRoot() bool {
	return l.ParentID == ""
}

// HeatDemandW returns the summed heat demand of this leg's rooms. Branch
// legs return 0; their demand is aggregated from descendants by the flow
// planner.
func (l *CommittedLeg) HeatDemandW() float64 {
	total := 0.0
	for _, room := range l.Rooms {
		total += room.HeatDemandW
	}
	return total
}

// TotalPipeLengthM returns the developed length of the leg's straight runs
func (l *CommittedLeg) TotalPipeLengthM() float64 {
	total := 0.0
	for _, seg := range l.Segments {
		if seg.Kind == PipeSegment {
			total += seg.LengthM
		}
	}
	return total
}
