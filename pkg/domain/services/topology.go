package services

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// NetworkTopology indexes a committed-leg tree by leg id and answers
// structural queries against it. The tree is read-only after construction;
// solvers derive results from it without mutating it.
type NetworkTopology struct {
	legs   map[entities.LegID]*entities.CommittedLeg
	order  []entities.LegID
	rootID entities.LegID
}

// NewNetworkTopology builds a topology from committed legs, enforcing that
// ids are unique, every referenced leg exists, parent and child declarations
// agree, exactly one root exists, and every leg is reachable from it
func NewNetworkTopology(legs []*entities.CommittedLeg) (*NetworkTopology, error) {
	if len(legs) == 0 {
		return nil, fmt.Errorf("topology must contain at least one leg")
	}

	byID := make(map[entities.LegID]*entities.CommittedLeg, len(legs))
	order := make([]entities.LegID, 0, len(legs))
	for _, leg := range legs {
		if _, exists := byID[leg.ID]; exists {
			return nil, fmt.Errorf("duplicate leg id %s", leg.ID)
		}
		byID[leg.ID] = leg
		order = append(order, leg.ID)
	}

	var rootID entities.LegID
	rootCount := 0
	for _, id := range order {
		leg := byID[id]

		if leg.IsRoot() {
			rootID = leg.ID
			rootCount++
			continue
		}

		parent, exists := byID[leg.ParentID]
		if !exists {
			return nil, fmt.Errorf("leg %s references unknown parent %s", leg.ID, leg.ParentID)
		}
		if !containsLegID(parent.Children, leg.ID) {
			return nil, fmt.Errorf("leg %s names parent %s, but %s does not list it as a child", leg.ID, parent.ID, parent.ID)
		}
	}

	if rootCount == 0 {
		return nil, fmt.Errorf("topology has no root leg")
	}
	if rootCount > 1 {
		return nil, fmt.Errorf("topology has %d root legs, expected exactly 1", rootCount)
	}

	for _, id := range order {
		leg := byID[id]
		for _, childID := range leg.Children {
			child, exists := byID[childID]
			if !exists {
				return nil, fmt.Errorf("leg %s references unknown child %s", leg.ID, childID)
			}
			if child.ParentID != leg.ID {
				return nil, fmt.Errorf("leg %s lists child %s, but %s names parent %s", leg.ID, childID, childID, child.ParentID)
			}
		}
	}

	topo := &NetworkTopology{legs: byID, order: order, rootID: rootID}

	reachable := make(map[entities.LegID]bool, len(legs))
	if err := topo.walk(rootID, reachable); err != nil {
		return nil, err
	}
	for _, id := range order {
		if !reachable[id] {
			return nil, fmt.Errorf("leg %s is not reachable from root %s", id, rootID)
		}
	}

	return topo, nil
}

// walk visits the subtree under id, detecting revisits which would indicate
// a cycle
func (t *NetworkTopology) walk(id entities.LegID, visited map[entities.LegID]bool) error {
	if visited[id] {
		return fmt.Errorf("cycle detected at leg %s", id)
	}
	visited[id] = true
	for _, childID := range t.legs[id].Children {
		if err := t.walk(childID, visited); err != nil {
			return err
		}
	}
	return nil
}

// Leg looks up a committed leg by id
func (t *NetworkTopology) Leg(id entities.LegID) (*entities.CommittedLeg, error) {
	leg, exists := t.legs[id]
	if !exists {
		return nil, fmt.Errorf("unknown leg %s", id)
	}
	return leg, nil
}

// Root returns the topology's single root leg
func (t *NetworkTopology) Root() *entities.CommittedLeg {
	return t.legs[t.rootID]
}

// RootID returns the id of the topology's single root leg
func (t *NetworkTopology) RootID() entities.LegID {
	return t.rootID
}

// Legs returns all committed legs in their declaration order
func (t *NetworkTopology) Legs() []*entities.CommittedLeg {
	legs := make([]*entities.CommittedLeg, 0, len(t.order))
	for _, id := range t.order {
		legs = append(legs, t.legs[id])
	}
	return legs
}

// Len returns the number of legs in the topology
func (t *NetworkTopology) Len() int {
	return len(t.order)
}

// TerminalLegs returns the legs that own rooms, in declaration order
func (t *NetworkTopology) TerminalLegs() []*entities.CommittedLeg {
	terminals := make([]*entities.CommittedLeg, 0)
	for _, id := range t.order {
		if t.legs[id].IsTerminal() {
			terminals = append(terminals, t.legs[id])
		}
	}
	return terminals
}

// PathToRoot returns the leg id chain from the given leg up to the root,
// ordered root-first
func (t *NetworkTopology) PathToRoot(id entities.LegID) ([]entities.LegID, error) {
	leg, exists := t.legs[id]
	if !exists {
		return nil, fmt.Errorf("unknown leg %s", id)
	}

	chain := []entities.LegID{leg.ID}
	for !leg.IsRoot() {
		leg = t.legs[leg.ParentID]
		chain = append(chain, leg.ID)
	}

	// Reverse into root-first order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// EnumeratePaths derives one root-to-terminal path per terminal leg by
// depth-first descent, visiting children in their declared order. Each path
// takes its terminal leg's id as the path id.
func (t *NetworkTopology) EnumeratePaths() ([]*entities.NetworkPath, error) {
	paths := make([]*entities.NetworkPath, 0)

	var descend func(id entities.LegID, trail []entities.LegID) error
	descend = func(id entities.LegID, trail []entities.LegID) error {
		leg := t.legs[id]
		trail = append(trail, id)

		if leg.IsTerminal() {
			ids := make([]entities.LegID, len(trail))
			copy(ids, trail)
			path, err := entities.NewNetworkPath(entities.PathID(id), ids)
			if err != nil {
				return err
			}
			paths = append(paths, path)
			return nil
		}

		for _, childID := range leg.Children {
			if err := descend(childID, trail); err != nil {
				return err
			}
		}
		return nil
	}

	if err := descend(t.rootID, nil); err != nil {
		return nil, err
	}
	return paths, nil
}

// ValidatePath checks that a declared path is well-formed against this
// topology: it must start at the root, follow parent/child edges, and end at
// a terminal leg
func (t *NetworkTopology) ValidatePath(path *entities.NetworkPath) error {
	if path.LegIDs[0] != t.rootID {
		return fmt.Errorf("path %s must start at root %s, starts at %s", path.ID, t.rootID, path.LegIDs[0])
	}

	for i, id := range path.LegIDs {
		leg, exists := t.legs[id]
		if !exists {
			return fmt.Errorf("path %s references unknown leg %s", path.ID, id)
		}
		if i > 0 && leg.ParentID != path.LegIDs[i-1] {
			return fmt.Errorf("path %s: leg %s does not follow %s", path.ID, id, path.LegIDs[i-1])
		}
	}

	terminal := t.legs[path.TerminalLegID()]
	if !terminal.IsTerminal() {
		return fmt.Errorf("path %s ends at %s, which owns no rooms", path.ID, terminal.ID)
	}
	return nil
}

func containsLegID(ids []entities.LegID, id entities.LegID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
