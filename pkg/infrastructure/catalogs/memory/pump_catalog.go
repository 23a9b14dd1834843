package memory

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/repositories"
)

// PumpCatalog provides in-memory pump curve storage
type PumpCatalog struct {
	pumps    []entities.PumpCurve
	pumpsMap map[entities.PumpKey]int
}

// NewPumpCatalog creates a new in-memory pump catalog
func NewPumpCatalog(expectedPumps int) *PumpCatalog {
	return &PumpCatalog{
		pumps:    make([]entities.PumpCurve, 0, expectedPumps),
		pumpsMap: make(map[entities.PumpKey]int, expectedPumps),
	}
}

// Verify interface compliance
var _ repositories.PumpCatalog = (*PumpCatalog)(nil)

// LoadPumps loads pump curves into the catalog
func (c *PumpCatalog) LoadPumps(pumps []*entities.PumpCurve) error {
	for _, pump := range pumps {
		c.AddPump(*pump)
	}
	return nil
}

// AddPump adds a pump curve to the catalog
func (c *PumpCatalog) AddPump(pump entities.PumpCurve) {
	c.pumpsMap[pump.Key] = len(c.pumps)
	c.pumps = append(c.pumps, pump)
}

// GetPump returns the pump curve for a catalog key
func (c *PumpCatalog) GetPump(key entities.PumpKey) (*entities.PumpCurve, error) {
	index, exists := c.pumpsMap[key]
	if !exists {
		return nil, fmt.Errorf("pump %s: %w", key, repositories.ErrNotFound)
	}
	return &c.pumps[index], nil
}

// GetAllPumps returns all pump curves
func (c *PumpCatalog) GetAllPumps() ([]*entities.PumpCurve, error) {
	var pumps []*entities.PumpCurve
	for i := range c.pumps {
		pumps = append(pumps, &c.pumps[i])
	}
	return pumps, nil
}

func mustPump(
	key entities.PumpKey,
	name string,
	points []entities.CurvePoint,
	efficiencyPoints []entities.EfficiencyPoint,
) entities.PumpCurve {
	pump, err := entities.NewPumpCurve(key, name, points, 0.5, 1.0,
		efficiencyPoints, 0.45, nil)
	if err != nil {
		panic(fmt.Sprintf("default pump %s: %v", key, err))
	}
	return *pump
}

// DefaultPumpCatalog returns a catalog preloaded with three variable-speed
// domestic circulators, named after their shutoff head. All three modulate
// between 50% and 100% speed; wet-rotor circulators of this class peak
// around 45% overall efficiency near mid-curve.
func DefaultPumpCatalog() *PumpCatalog {
	catalog := NewPumpCatalog(3)

	catalog.AddPump(mustPump("CIRC_4M", "Circulator 4m class",
		[]entities.CurvePoint{
			{FlowM3H: 0.0, HeadM: 4.0},
			{FlowM3H: 0.5, HeadM: 3.6},
			{FlowM3H: 1.0, HeadM: 3.0},
			{FlowM3H: 1.5, HeadM: 2.2},
			{FlowM3H: 2.0, HeadM: 1.2},
			{FlowM3H: 2.5, HeadM: 0.4},
		},
		[]entities.EfficiencyPoint{
			{FlowM3H: 0.5, Efficiency: 0.30},
			{FlowM3H: 1.0, Efficiency: 0.42},
			{FlowM3H: 1.5, Efficiency: 0.45},
			{FlowM3H: 2.0, Efficiency: 0.38},
		},
	))

	catalog.AddPump(mustPump("CIRC_6M", "Circulator 6m class",
		[]entities.CurvePoint{
			{FlowM3H: 0.0, HeadM: 6.0},
			{FlowM3H: 0.5, HeadM: 5.6},
			{FlowM3H: 1.0, HeadM: 5.0},
			{FlowM3H: 2.0, HeadM: 3.8},
			{FlowM3H: 3.0, HeadM: 2.2},
			{FlowM3H: 4.0, HeadM: 0.8},
		},
		[]entities.EfficiencyPoint{
			{FlowM3H: 0.5, Efficiency: 0.28},
			{FlowM3H: 1.5, Efficiency: 0.42},
			{FlowM3H: 2.5, Efficiency: 0.45},
			{FlowM3H: 3.5, Efficiency: 0.36},
		},
	))

	catalog.AddPump(mustPump("CIRC_8M", "Circulator 8m class",
		[]entities.CurvePoint{
			{FlowM3H: 0.0, HeadM: 8.0},
			{FlowM3H: 1.0, HeadM: 7.2},
			{FlowM3H: 2.0, HeadM: 6.0},
			{FlowM3H: 3.0, HeadM: 4.6},
			{FlowM3H: 4.0, HeadM: 3.0},
			{FlowM3H: 5.0, HeadM: 1.2},
		},
		[]entities.EfficiencyPoint{
			{FlowM3H: 1.0, Efficiency: 0.30},
			{FlowM3H: 2.0, Efficiency: 0.43},
			{FlowM3H: 3.0, Efficiency: 0.45},
			{FlowM3H: 4.0, Efficiency: 0.37},
		},
	))

	return catalog
}
