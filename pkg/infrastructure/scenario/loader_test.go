package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/infrastructure/catalogs/memory"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scenario fixture: %v", err)
	}
	return path
}

func TestLoader_BuildsEntities(t *testing.T) {
	path := writeScenarioFile(t, `{
		"name": "flat",
		"fluid": "WATER",
		"material": "COPPER_EN1057",
		"design_delta_t_k": 10,
		"max_velocity_m_s": 1.2,
		"legs": [
			{
				"id": "main",
				"name": "Main run",
				"children": ["rad"],
				"segments": [
					{"pipe_m": 5.5},
					{"fitting": "GATE_VALVE", "count": 2}
				]
			},
			{
				"id": "rad",
				"parent": "main",
				"rooms": [
					{"id": "lounge", "name": "Lounge", "heat_w": 2500},
					{"id": "bath", "heat_w": 500, "delta_t_k": 15}
				],
				"segments": [
					{"pipe_m": 8},
					{"fitting": "TRV"}
				]
			}
		],
		"paths": [
			{"id": "to-rad", "legs": ["main", "rad"]}
		]
	}`)

	scn, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if scn.Name != "flat" {
		t.Errorf("expected name flat, got %s", scn.Name)
	}
	if scn.FluidKey != entities.FluidKey("WATER") {
		t.Errorf("expected fluid WATER, got %s", scn.FluidKey)
	}
	if scn.MaterialKey != entities.MaterialKey("COPPER_EN1057") {
		t.Errorf("expected material COPPER_EN1057, got %s", scn.MaterialKey)
	}
	if scn.DesignDeltaTK != 10 {
		t.Errorf("expected ΔT 10, got %g", scn.DesignDeltaTK)
	}
	if scn.MaxVelocityMS != 1.2 {
		t.Errorf("expected max velocity 1.2, got %g", scn.MaxVelocityMS)
	}
	if scn.OperatingTempC != nil {
		t.Errorf("expected no operating temperature, got %g", *scn.OperatingTempC)
	}

	if len(scn.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(scn.Legs))
	}

	main := scn.Legs[0]
	if !main.IsRoot() || !main.IsBranch() {
		t.Errorf("expected main to be a root branch leg")
	}
	if len(main.Children) != 1 || main.Children[0] != entities.LegID("rad") {
		t.Errorf("expected main to feed rad, got %v", main.Children)
	}
	if len(main.Segments) != 2 {
		t.Fatalf("expected 2 segments on main, got %d", len(main.Segments))
	}
	if main.Segments[0].Kind != entities.PipeSegment || main.Segments[0].LengthM != 5.5 {
		t.Errorf("unexpected first segment on main: %+v", main.Segments[0])
	}
	if main.Segments[1].Fitting != entities.FittingKey("GATE_VALVE") || main.Segments[1].Count != 2 {
		t.Errorf("unexpected second segment on main: %+v", main.Segments[1])
	}

	rad := scn.Legs[1]
	if rad.ParentID != entities.LegID("main") || !rad.IsTerminal() {
		t.Errorf("expected rad to be a terminal leg under main")
	}
	if len(rad.Rooms) != 2 {
		t.Fatalf("expected 2 rooms on rad, got %d", len(rad.Rooms))
	}
	if rad.Rooms[0].DeltaTOverrideK != nil {
		t.Errorf("lounge should use the network ΔT")
	}
	if rad.Rooms[1].DeltaTOverrideK == nil || *rad.Rooms[1].DeltaTOverrideK != 15 {
		t.Errorf("bath should carry a 15 K override, got %v", rad.Rooms[1].DeltaTOverrideK)
	}

	// An omitted fitting count means a single fitting.
	if rad.Segments[1].Count != 1 {
		t.Errorf("expected omitted count to default to 1, got %d", rad.Segments[1].Count)
	}

	if len(scn.Paths) != 1 {
		t.Fatalf("expected 1 declared path, got %d", len(scn.Paths))
	}
	if scn.Paths[0].ID != entities.PathID("to-rad") || len(scn.Paths[0].LegIDs) != 2 {
		t.Errorf("unexpected declared path: %+v", scn.Paths[0])
	}
}

func TestLoader_RejectsUnknownField(t *testing.T) {
	path := writeScenarioFile(t, `{
		"name": "typo",
		"legs": [
			{"id": "a", "rooms": [{"id": "r", "heat_w": 100}], "segments": [{"lenght_m": 5}]}
		]
	}`)

	_, err := NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
	if !strings.Contains(err.Error(), "unknown field") {
		t.Errorf("expected an unknown-field error, got: %v", err)
	}
}

func TestLoader_RejectsAmbiguousSegment(t *testing.T) {
	path := writeScenarioFile(t, `{
		"name": "ambiguous",
		"legs": [
			{"id": "a", "rooms": [{"id": "r", "heat_w": 100}], "segments": [{"pipe_m": 5, "fitting": "TRV"}]}
		]
	}`)

	_, err := NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected an error for a segment declaring both pipe and fitting")
	}
	if !strings.Contains(err.Error(), "leg 1 (a)") || !strings.Contains(err.Error(), "segment 1") {
		t.Errorf("expected the error to locate the segment, got: %v", err)
	}
}

func TestLoader_RejectsEmptySegment(t *testing.T) {
	path := writeScenarioFile(t, `{
		"name": "empty-segment",
		"legs": [
			{"id": "a", "rooms": [{"id": "r", "heat_w": 100}], "segments": [{}]}
		]
	}`)

	_, err := NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected an error for an empty segment")
	}
	if !strings.Contains(err.Error(), "neither pipe_m nor fitting") {
		t.Errorf("expected an empty-segment error, got: %v", err)
	}
}

func TestLoader_RejectsLegWithChildrenAndRooms(t *testing.T) {
	path := writeScenarioFile(t, `{
		"name": "bad-shape",
		"legs": [
			{"id": "a", "children": ["b"], "rooms": [{"id": "r", "heat_w": 100}], "segments": [{"pipe_m": 5}]},
			{"id": "b", "parent": "a", "rooms": [{"id": "s", "heat_w": 100}], "segments": [{"pipe_m": 5}]}
		]
	}`)

	_, err := NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected an error for a leg with both children and rooms")
	}
	if !strings.Contains(err.Error(), "leg 1 (a)") {
		t.Errorf("expected the error to name the leg, got: %v", err)
	}
}

func TestLoader_RejectsEmptyLegList(t *testing.T) {
	path := writeScenarioFile(t, `{"name": "hollow", "legs": []}`)

	_, err := NewLoader().Load(path)
	if err == nil || !strings.Contains(err.Error(), "no legs") {
		t.Errorf("expected a no-legs error, got: %v", err)
	}
}

func TestLoader_RejectsPathWithoutLegs(t *testing.T) {
	path := writeScenarioFile(t, `{
		"name": "bad-path",
		"legs": [
			{"id": "a", "rooms": [{"id": "r", "heat_w": 100}], "segments": [{"pipe_m": 5}]}
		],
		"paths": [
			{"id": "hollow", "legs": []}
		]
	}`)

	_, err := NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected an error for a path without legs")
	}
	if !strings.Contains(err.Error(), "path 1 (hollow)") {
		t.Errorf("expected the error to name the path, got: %v", err)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "failed to open scenario file") {
		t.Errorf("expected an open error, got: %v", err)
	}
}

// The shipped sample must stay loadable and must only reference fittings
// the default catalog actually carries.
func TestWriteSample_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.json")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}

	scn, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("failed to load the sample back: %v", err)
	}

	if len(scn.Legs) != 3 {
		t.Fatalf("expected 3 legs in the sample, got %d", len(scn.Legs))
	}
	if scn.Legs[0].ID != entities.LegID("boiler") || !scn.Legs[0].IsRoot() {
		t.Errorf("expected the sample to be rooted at boiler")
	}
	if len(scn.Paths) != 1 {
		t.Errorf("expected 1 declared path in the sample, got %d", len(scn.Paths))
	}

	fittings := memory.DefaultFittingCatalog()
	for _, leg := range scn.Legs {
		for _, segment := range leg.Segments {
			if segment.Kind != entities.FittingSegment {
				continue
			}
			if _, err := fittings.GetFitting(segment.Fitting); err != nil {
				t.Errorf("sample references unknown fitting %s: %v", segment.Fitting, err)
			}
		}
	}
}
