package memory

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/repositories"
)

// FittingCatalog provides in-memory fitting storage
type FittingCatalog struct {
	fittings    []entities.Fitting
	fittingsMap map[entities.FittingKey]int
}

// NewFittingCatalog creates a new in-memory fitting catalog
func NewFittingCatalog(expectedFittings int) *FittingCatalog {
	return &FittingCatalog{
		fittings:    make([]entities.Fitting, 0, expectedFittings),
		fittingsMap: make(map[entities.FittingKey]int, expectedFittings),
	}
}

// Verify interface compliance
var _ repositories.FittingCatalog = (*FittingCatalog)(nil)

// LoadFittings loads fittings into the catalog
func (c *FittingCatalog) LoadFittings(fittings []*entities.Fitting) error {
	for _, fitting := range fittings {
		c.AddFitting(*fitting)
	}
	return nil
}

// AddFitting adds a fitting to the catalog
func (c *FittingCatalog) AddFitting(fitting entities.Fitting) {
	c.fittingsMap[fitting.Key] = len(c.fittings)
	c.fittings = append(c.fittings, fitting)
}

// GetFitting returns the fitting for a catalog key
func (c *FittingCatalog) GetFitting(key entities.FittingKey) (*entities.Fitting, error) {
	index, exists := c.fittingsMap[key]
	if !exists {
		return nil, fmt.Errorf("fitting %s: %w", key, repositories.ErrNotFound)
	}
	return &c.fittings[index], nil
}

// GetAllFittings returns all fittings
func (c *FittingCatalog) GetAllFittings() ([]*entities.Fitting, error) {
	var fittings []*entities.Fitting
	for i := range c.fittings {
		fittings = append(fittings, &c.fittings[i])
	}
	return fittings, nil
}

// DefaultFittingCatalog returns a catalog preloaded with conservative
// loss coefficients for common hydronic fittings
func DefaultFittingCatalog() *FittingCatalog {
	type row struct {
		key         entities.FittingKey
		k           float64
		description string
		application string
	}

	rows := []row{
		{"ELBOW_90_STD", 0.9, "90° standard elbow", "General pipework"},
		{"ELBOW_90_LONG", 0.6, "90° long-radius elbow", "Low-noise or low-loss runs"},
		{"ELBOW_90_SWEPT", 0.2, "90° swept / formed bend", "Low-loss pipe routing"},
		{"TEE_THROUGH", 0.6, "Tee fitting, straight-through flow", ""},
		{"TEE_BRANCH", 1.8, "Tee fitting, branch flow", ""},
		{"GATE_VALVE", 0.15, "Fully open gate valve", ""},
		{"BALL_VALVE", 0.05, "Fully open ball valve", ""},
		{"CHECK_VALVE", 2.0, "Spring-loaded check valve", ""},
		{"TRV", 2.5, "Thermostatic radiator valve (open)", "Radiator inlet"},
		{"LOCKSHIELD", 1.5, "Lockshield valve (balanced)", "Radiator return"},
	}

	catalog := NewFittingCatalog(len(rows))
	for _, r := range rows {
		fitting, err := entities.NewFitting(r.key, r.k, r.description, r.application)
		if err != nil {
			panic(fmt.Sprintf("default fitting %s: %v", r.key, err))
		}
		catalog.AddFitting(*fitting)
	}
	return catalog
}
