package memory

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/repositories"
)

// FluidCatalog provides in-memory fluid storage
type FluidCatalog struct {
	fluids    []entities.Fluid
	fluidsMap map[entities.FluidKey]int
}

// NewFluidCatalog creates a new in-memory fluid catalog
func NewFluidCatalog(expectedFluids int) *FluidCatalog {
	return &FluidCatalog{
		fluids:    make([]entities.Fluid, 0, expectedFluids),
		fluidsMap: make(map[entities.FluidKey]int, expectedFluids),
	}
}

// Verify interface compliance
var _ repositories.FluidCatalog = (*FluidCatalog)(nil)

// LoadFluids loads fluids into the catalog
func (c *FluidCatalog) LoadFluids(fluids []*entities.Fluid) error {
	for _, fluid := range fluids {
		c.AddFluid(*fluid)
	}
	return nil
}

// AddFluid adds a fluid to the catalog
func (c *FluidCatalog) AddFluid(fluid entities.Fluid) {
	c.fluidsMap[fluid.Key] = len(c.fluids)
	c.fluids = append(c.fluids, fluid)
}

// GetFluid returns the fluid for a catalog key
func (c *FluidCatalog) GetFluid(key entities.FluidKey) (*entities.Fluid, error) {
	index, exists := c.fluidsMap[key]
	if !exists {
		return nil, fmt.Errorf("fluid %s: %w", key, repositories.ErrNotFound)
	}
	return &c.fluids[index], nil
}

// GetAllFluids returns all fluids
func (c *FluidCatalog) GetAllFluids() ([]*entities.Fluid, error) {
	var fluids []*entities.Fluid
	for i := range c.fluids {
		fluids = append(fluids, &c.fluids[i])
	}
	return fluids, nil
}

func mustCurve(tempsC, values []float64) *entities.TemperatureCurve {
	curve, err := entities.NewTemperatureCurve(tempsC, values)
	if err != nil {
		panic(fmt.Sprintf("default fluid curve: %v", err))
	}
	return curve
}

func mustFluid(
	key entities.FluidKey,
	name string,
	densityKgM3, viscosityPaS, specificHeatJKgK, conductivityWMK float64,
	freezePointC, maxTempC float64,
) *entities.Fluid {
	fluid, err := entities.NewFluid(
		key, name, densityKgM3, viscosityPaS, specificHeatJKgK, conductivityWMK,
		freezePointC, freezePointC, maxTempC,
	)
	if err != nil {
		panic(fmt.Sprintf("default fluid %s: %v", key, err))
	}
	return fluid
}

func mustGlycol(
	key entities.FluidKey,
	name, brand, productLine string,
	concentrationPct float64,
	densityKgM3, viscosityPaS, specificHeatJKgK, conductivityWMK float64,
	freezePointC, maxTempC float64,
) *entities.Fluid {
	fluid := mustFluid(key, name, densityKgM3, viscosityPaS, specificHeatJKgK, conductivityWMK,
		freezePointC, maxTempC)
	fluid.Brand = brand
	fluid.ProductLine = productLine
	fluid.ConcentrationPct = concentrationPct
	return fluid
}

// waterDensityCurve tabulates water density at 10°C intervals. The nodes
// follow the usual quartic fit of the IAPWS data, so interpolated values
// stay within ~0.3% across the liquid range.
func waterDensityCurve() *entities.TemperatureCurve {
	return mustCurve(
		[]float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		[]float64{999.84, 998.4109, 995.6323, 991.7676, 986.9843, 981.3538,
			974.8513, 967.3564, 958.6525, 948.4269, 936.2710},
	)
}

// waterViscosityCurve tabulates water dynamic viscosity [Pa·s]
func waterViscosityCurve() *entities.TemperatureCurve {
	return mustCurve(
		[]float64{0, 20, 40, 60, 80, 100},
		[]float64{1.79e-3, 1.00e-3, 0.65e-3, 0.47e-3, 0.36e-3, 0.28e-3},
	)
}

// DefaultFluidCatalog returns a catalog preloaded with water at reference
// conditions, generic propylene/ethylene glycol mixes and the common branded
// heat-transfer fluids. Static values are the design-condition references;
// water additionally carries temperature curves for both density and
// viscosity.
func DefaultFluidCatalog() *FluidCatalog {
	catalog := NewFluidCatalog(13)

	water := mustFluid("WATER", "Water (20°C reference)",
		998.2, 1.002e-3, 4187, 0.598, 0, 100)
	water.DensityCurve = waterDensityCurve()
	water.ViscosityCurve = waterViscosityCurve()
	catalog.AddFluid(*water)

	waterHot := mustFluid("WATER_60C", "Water (60°C reference)",
		983.2, 0.466e-3, 4182, 0.653, 0, 100)
	waterHot.DensityCurve = waterDensityCurve()
	waterHot.ViscosityCurve = waterViscosityCurve()
	catalog.AddFluid(*waterHot)

	catalog.AddFluid(*mustGlycol("PG_20", "Propylene glycol 20%",
		"Generic", "Propylene Glycol", 20,
		1015, 2.0e-3, 3900, 0.48, -10, 100))
	catalog.AddFluid(*mustGlycol("PG_30", "Propylene glycol 30%",
		"Generic", "Propylene Glycol", 30,
		1030, 3.0e-3, 3800, 0.44, -15, 100))
	catalog.AddFluid(*mustGlycol("PG_40", "Propylene glycol 40%",
		"Generic", "Propylene Glycol", 40,
		1047, 5.2e-3, 3650, 0.42, -23, 100))
	catalog.AddFluid(*mustGlycol("PG_50", "Propylene glycol 50%",
		"Generic", "Propylene Glycol", 50,
		1065, 8.0e-3, 3400, 0.40, -32, 100))

	catalog.AddFluid(*mustGlycol("EG_30", "Ethylene glycol 30%",
		"Generic", "Ethylene Glycol", 30,
		1050, 2.5e-3, 3400, 0.37, -12, 100))
	catalog.AddFluid(*mustGlycol("EG_40", "Ethylene glycol 40%",
		"Generic", "Ethylene Glycol", 40,
		1065, 3.8e-3, 3200, 0.36, -23, 100))

	catalog.AddFluid(*mustGlycol("FERNOX_ALPHI11_20", "Fernox Alphi-11 20%",
		"Fernox", "Alphi-11", 20,
		1025, 1.9e-3, 3900, 0.47, -10, 100))
	catalog.AddFluid(*mustGlycol("FERNOX_ALPHI11_30", "Fernox Alphi-11 30%",
		"Fernox", "Alphi-11", 30,
		1042, 3.0e-3, 3700, 0.43, -15, 100))
	catalog.AddFluid(*mustGlycol("SENTINEL_X500_30", "Sentinel X500 30%",
		"Sentinel", "X500", 30,
		1040, 3.2e-3, 3700, 0.44, -15, 100))
	catalog.AddFluid(*mustGlycol("GLYSAC_30", "Glysac HTF 30%",
		"Glysac", "HTF", 30,
		1035, 3.1e-3, 3800, 0.46, -14, 100))

	catalog.AddFluid(*mustGlycol("SOLAR_HTF", "Synthetic solar heat-transfer fluid",
		"SolarHTF", "Synthetic HTF", 100,
		1070, 12e-3, 2300, 0.10, -30, 300))

	return catalog
}
