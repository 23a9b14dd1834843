package services

import (
	"fmt"
	"math"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// Relative mismatch allowed between a branch leg's declared flow and the sum
// of its children's declared flows.
const flowConservationRelTol = 1e-6

// TopologyValidator provides validation for committed-leg tree integrity
type TopologyValidator struct{}

// NewTopologyValidator creates a new topology validator
func NewTopologyValidator() *TopologyValidator {
	return &TopologyValidator{}
}

// ValidationResult contains the results of topology validation
type ValidationResult struct {
	HasCycles  bool
	CyclePaths [][]entities.LegID
	Errors     []string
}

// IsValid reports whether validation found no problems
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateNetwork performs comprehensive validation on a set of committed
// legs, collecting every problem found rather than stopping at the first
func (v *TopologyValidator) ValidateNetwork(legs []*entities.CommittedLeg) *ValidationResult {
	result := &ValidationResult{
		CyclePaths: make([][]entities.LegID, 0),
		Errors:     make([]string, 0),
	}

	if len(legs) == 0 {
		result.Errors = append(result.Errors, "topology must contain at least one leg")
		return result
	}

	byID := make(map[entities.LegID]*entities.CommittedLeg, len(legs))
	for _, leg := range legs {
		if _, exists := byID[leg.ID]; exists {
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate leg id %s", leg.ID))
			continue
		}
		byID[leg.ID] = leg
	}

	v.checkShapes(legs, result)
	v.checkReferences(legs, byID, result)
	v.checkRoots(legs, result)
	v.checkFlowConservation(legs, byID, result)

	cycles := v.detectCycles(legs, byID)
	result.HasCycles = len(cycles) > 0
	result.CyclePaths = cycles
	for _, cycle := range cycles {
		result.Errors = append(result.Errors, fmt.Sprintf("leg cycle detected: %v", cycle))
	}

	return result
}

// checkShapes enforces that every leg owns child legs or terminal rooms but
// never both. Constructed legs already guarantee this; literals do not.
func (v *TopologyValidator) checkShapes(legs []*entities.CommittedLeg, result *ValidationResult) {
	for _, leg := range legs {
		hasChildren := len(leg.Children) > 0
		hasRooms := len(leg.Rooms) > 0
		if hasChildren && hasRooms {
			result.Errors = append(result.Errors, fmt.Sprintf("leg %s owns both child legs and rooms", leg.ID))
		}
		if !hasChildren && !hasRooms {
			result.Errors = append(result.Errors, fmt.Sprintf("leg %s owns neither child legs nor rooms", leg.ID))
		}
	}
}

// checkReferences verifies that parent and child declarations point at known
// legs and agree with each other
func (v *TopologyValidator) checkReferences(
	legs []*entities.CommittedLeg,
	byID map[entities.LegID]*entities.CommittedLeg,
	result *ValidationResult,
) {
	for _, leg := range legs {
		if !leg.IsRoot() {
			parent, exists := byID[leg.ParentID]
			if !exists {
				result.Errors = append(result.Errors, fmt.Sprintf("leg %s references unknown parent %s", leg.ID, leg.ParentID))
			} else if !containsLegID(parent.Children, leg.ID) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("leg %s names parent %s, but %s does not list it as a child", leg.ID, parent.ID, parent.ID))
			}
		}

		for _, childID := range leg.Children {
			child, exists := byID[childID]
			if !exists {
				result.Errors = append(result.Errors, fmt.Sprintf("leg %s references unknown child %s", leg.ID, childID))
			} else if child.ParentID != leg.ID {
				result.Errors = append(result.Errors,
					fmt.Sprintf("leg %s lists child %s, but %s names parent %s", leg.ID, childID, childID, child.ParentID))
			}
		}
	}
}

// checkRoots verifies that exactly one leg has no parent
func (v *TopologyValidator) checkRoots(legs []*entities.CommittedLeg, result *ValidationResult) {
	roots := make([]entities.LegID, 0, 1)
	for _, leg := range legs {
		if leg.IsRoot() {
			roots = append(roots, leg.ID)
		}
	}

	if len(roots) == 0 {
		result.Errors = append(result.Errors, "topology has no root leg")
	}
	if len(roots) > 1 {
		result.Errors = append(result.Errors, fmt.Sprintf("topology has %d root legs: %v", len(roots), roots))
	}
}

// checkFlowConservation compares a branch leg's declared design flow against
// the sum of its children's declared flows, when every flow involved is
// declared
func (v *TopologyValidator) checkFlowConservation(
	legs []*entities.CommittedLeg,
	byID map[entities.LegID]*entities.CommittedLeg,
	result *ValidationResult,
) {
	for _, leg := range legs {
		if leg.DesignFlowM3S == nil || !leg.IsBranch() {
			continue
		}

		sum := 0.0
		allDeclared := true
		for _, childID := range leg.Children {
			child, exists := byID[childID]
			if !exists || child.DesignFlowM3S == nil {
				allDeclared = false
				break
			}
			sum += *child.DesignFlowM3S
		}
		if !allDeclared {
			continue
		}

		declared := *leg.DesignFlowM3S
		if math.Abs(declared-sum) > flowConservationRelTol*math.Max(declared, sum) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("leg %s declares flow %g m3/s but its children sum to %g m3/s", leg.ID, declared, sum))
		}
	}
}

// detectCycles uses DFS with a recursion stack to find cycles in the
// parent/child structure
func (v *TopologyValidator) detectCycles(
	legs []*entities.CommittedLeg,
	byID map[entities.LegID]*entities.CommittedLeg,
) [][]entities.LegID {
	visited := make(map[entities.LegID]bool)
	recursionStack := make(map[entities.LegID]bool)
	cycles := make([][]entities.LegID, 0)

	for _, leg := range legs {
		if !visited[leg.ID] {
			path := make([]entities.LegID, 0)
			v.dfsDetectCycle(leg.ID, byID, visited, recursionStack, path, &cycles)
		}
	}

	return cycles
}

// dfsDetectCycle performs depth-first search to detect cycles
func (v *TopologyValidator) dfsDetectCycle(
	current entities.LegID,
	byID map[entities.LegID]*entities.CommittedLeg,
	visited map[entities.LegID]bool,
	recursionStack map[entities.LegID]bool,
	path []entities.LegID,
	cycles *[][]entities.LegID,
) {
	visited[current] = true
	recursionStack[current] = true
	path = append(path, current)

	leg, exists := byID[current]
	if exists {
		for _, childID := range leg.Children {
			if _, known := byID[childID]; !known {
				continue
			}
			if !visited[childID] {
				v.dfsDetectCycle(childID, byID, visited, recursionStack, path, cycles)
			} else if recursionStack[childID] {
				cycleStart := -1
				for i, id := range path {
					if id == childID {
						cycleStart = i
						break
					}
				}

				if cycleStart != -1 {
					cycle := make([]entities.LegID, 0)
					cycle = append(cycle, path[cycleStart:]...)
					cycle = append(cycle, childID)
					*cycles = append(*cycles, cycle)
				}
			}
		}
	}

	recursionStack[current] = false
}
