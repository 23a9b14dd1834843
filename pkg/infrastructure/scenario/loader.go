// Package scenario loads heating network scenarios from JSON files.
//
// A scenario file describes the committed distribution tree (legs with
// their rooms and segments), optional declared pressure-drop paths, and
// the solve configuration (fluid, pipe material, design ΔT). The loader
// validates the document shape and builds domain entities through their
// constructors, so a loaded scenario carries the same guarantees as one
// assembled in code.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// Scenario is a fully built network description ready to hand to the
// solver: entities are constructed and validated, config values are
// passed through as declared (zero values mean "use the solver default").
type Scenario struct {
	Name           string
	FluidKey       entities.FluidKey
	MaterialKey    entities.MaterialKey
	DesignDeltaTK  float64
	MaxVelocityMS  float64
	OperatingTempC *float64

	Legs  []*entities.CommittedLeg
	Paths []*entities.NetworkPath
}

// document mirrors the JSON scenario schema. Types stay unexported; the
// loader is the only way in.
type document struct {
	Name           string     `json:"name"`
	Fluid          string     `json:"fluid,omitempty"`
	Material       string     `json:"material,omitempty"`
	DesignDeltaTK  float64    `json:"design_delta_t_k,omitempty"`
	MaxVelocityMS  float64    `json:"max_velocity_m_s,omitempty"`
	OperatingTempC *float64   `json:"operating_temp_c,omitempty"`
	Legs           []legSpec  `json:"legs"`
	Paths          []pathSpec `json:"paths,omitempty"`
}

type legSpec struct {
	ID            string        `json:"id"`
	Name          string        `json:"name,omitempty"`
	Parent        string        `json:"parent,omitempty"`
	Children      []string      `json:"children,omitempty"`
	Rooms         []roomSpec    `json:"rooms,omitempty"`
	Segments      []segmentSpec `json:"segments"`
	Material      string        `json:"material,omitempty"`
	DesignFlowM3S *float64      `json:"design_flow_m3_s,omitempty"`
}

type roomSpec struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	HeatW   float64  `json:"heat_w"`
	DeltaTK *float64 `json:"delta_t_k,omitempty"`
}

// segmentSpec is a tagged union: exactly one of pipe_m or fitting must be
// set. A fitting count of zero means one.
type segmentSpec struct {
	PipeM   float64 `json:"pipe_m,omitempty"`
	Fitting string  `json:"fitting,omitempty"`
	Count   int     `json:"count,omitempty"`
}

type pathSpec struct {
	ID   string   `json:"id"`
	Legs []string `json:"legs"`
}

// Loader handles loading scenario files
type Loader struct{}

// NewLoader creates a new scenario loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and builds a scenario from a JSON file
func (l *Loader) Load(filename string) (*Scenario, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	return l.build(&doc)
}

// build converts a parsed document into domain entities
func (l *Loader) build(doc *document) (*Scenario, error) {
	if len(doc.Legs) == 0 {
		return nil, fmt.Errorf("scenario declares no legs")
	}

	legs := make([]*entities.CommittedLeg, 0, len(doc.Legs))
	for i, spec := range doc.Legs {
		leg, err := buildLeg(spec)
		if err != nil {
			return nil, fmt.Errorf("leg %d (%s): %w", i+1, spec.ID, err)
		}
		legs = append(legs, leg)
	}

	paths := make([]*entities.NetworkPath, 0, len(doc.Paths))
	for i, spec := range doc.Paths {
		legIDs := make([]entities.LegID, len(spec.Legs))
		for j, id := range spec.Legs {
			legIDs[j] = entities.LegID(id)
		}
		path, err := entities.NewNetworkPath(entities.PathID(spec.ID), legIDs)
		if err != nil {
			return nil, fmt.Errorf("path %d (%s): %w", i+1, spec.ID, err)
		}
		paths = append(paths, path)
	}

	return &Scenario{
		Name:           doc.Name,
		FluidKey:       entities.FluidKey(doc.Fluid),
		MaterialKey:    entities.MaterialKey(doc.Material),
		DesignDeltaTK:  doc.DesignDeltaTK,
		MaxVelocityMS:  doc.MaxVelocityMS,
		OperatingTempC: doc.OperatingTempC,
		Legs:           legs,
		Paths:          paths,
	}, nil
}

func buildLeg(spec legSpec) (*entities.CommittedLeg, error) {
	rooms := make([]entities.TerminalRoom, 0, len(spec.Rooms))
	for i, rs := range spec.Rooms {
		room, err := entities.NewTerminalRoom(entities.RoomID(rs.ID), rs.Name, rs.HeatW, rs.DeltaTK)
		if err != nil {
			return nil, fmt.Errorf("room %d (%s): %w", i+1, rs.ID, err)
		}
		rooms = append(rooms, *room)
	}

	segments := make([]entities.Segment, 0, len(spec.Segments))
	for i, ss := range spec.Segments {
		segment, err := buildSegment(ss)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		segments = append(segments, *segment)
	}

	children := make([]entities.LegID, len(spec.Children))
	for i, id := range spec.Children {
		children[i] = entities.LegID(id)
	}

	return entities.NewCommittedLeg(
		entities.LegID(spec.ID),
		spec.Name,
		entities.LegID(spec.Parent),
		children,
		rooms,
		segments,
		entities.MaterialKey(spec.Material),
		spec.DesignFlowM3S,
	)
}

func buildSegment(spec segmentSpec) (*entities.Segment, error) {
	hasPipe := spec.PipeM != 0
	hasFitting := spec.Fitting != ""

	switch {
	case hasPipe && hasFitting:
		return nil, fmt.Errorf("segment declares both pipe_m and fitting")
	case hasPipe:
		return entities.NewPipeRun(spec.PipeM)
	case hasFitting:
		count := spec.Count
		if count == 0 {
			count = 1
		}
		return entities.NewFittingRun(entities.FittingKey(spec.Fitting), count)
	default:
		return nil, fmt.Errorf("segment declares neither pipe_m nor fitting")
	}
}
