package memory

import (
	"fmt"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
	"github.com/iandogless-creator/hydronet/pkg/domain/repositories"
)

// MaterialCatalog provides in-memory pipe material storage
type MaterialCatalog struct {
	materials    []entities.PipeMaterial
	materialsMap map[entities.MaterialKey]int
}

// NewMaterialCatalog creates a new in-memory material catalog
func NewMaterialCatalog(expectedMaterials int) *MaterialCatalog {
	return &MaterialCatalog{
		materials:    make([]entities.PipeMaterial, 0, expectedMaterials),
		materialsMap: make(map[entities.MaterialKey]int, expectedMaterials),
	}
}

// Verify interface compliance
var _ repositories.MaterialCatalog = (*MaterialCatalog)(nil)

// LoadMaterials loads materials into the catalog
func (c *MaterialCatalog) LoadMaterials(materials []*entities.PipeMaterial) error {
	for _, material := range materials {
		c.AddMaterial(*material)
	}
	return nil
}

// AddMaterial adds a material to the catalog
func (c *MaterialCatalog) AddMaterial(material entities.PipeMaterial) {
	c.materialsMap[material.Key] = len(c.materials)
	c.materials = append(c.materials, material)
}

// GetMaterial returns the material for a catalog key
func (c *MaterialCatalog) GetMaterial(key entities.MaterialKey) (*entities.PipeMaterial, error) {
	index, exists := c.materialsMap[key]
	if !exists {
		return nil, fmt.Errorf("material %s: %w", key, repositories.ErrNotFound)
	}
	return &c.materials[index], nil
}

// GetAllMaterials returns all materials
func (c *MaterialCatalog) GetAllMaterials() ([]*entities.PipeMaterial, error) {
	var materials []*entities.PipeMaterial
	for i := range c.materials {
		materials = append(materials, &c.materials[i])
	}
	return materials, nil
}

// sizeRow is a compact size-table entry; diameters in mm as printed in the
// trade catalogues, converted to metres at load
type sizeRow struct {
	name string
	odMM float64
	idMM float64
	bsp  string
}

func mustSizes(materialKey entities.MaterialKey, rows []sizeRow) []entities.PipeSize {
	sizes := make([]entities.PipeSize, 0, len(rows))
	for _, r := range rows {
		size, err := entities.NewPipeSize(r.name, r.odMM/1000.0, r.idMM/1000.0, r.bsp)
		if err != nil {
			panic(fmt.Sprintf("default size %s/%s: %v", materialKey, r.name, err))
		}
		sizes = append(sizes, *size)
	}
	return sizes
}

func mustMaterial(
	key entities.MaterialKey,
	name string,
	roughnessMM, conductivityWMK, densityKgM3, pressureRatingBar float64,
	notes string,
	rows []sizeRow,
) entities.PipeMaterial {
	material, err := entities.NewPipeMaterial(
		key, name, roughnessMM/1000.0, conductivityWMK, densityKgM3, pressureRatingBar,
		mustSizes(key, rows),
	)
	if err != nil {
		panic(fmt.Sprintf("default material %s: %v", key, err))
	}
	material.CompatibilityNotes = notes
	return *material
}

// DefaultMaterialCatalog returns a catalog preloaded with typical UK HVAC
// pipe ranges: copper (EN 1057), PEX multilayer, medium-grade carbon steel
// (EN 10255) and press-fit stainless
func DefaultMaterialCatalog() *MaterialCatalog {
	catalog := NewMaterialCatalog(5)

	catalog.AddMaterial(mustMaterial(
		"COPPER_EN1057", "Copper (EN 1057)", 0.0015, 385, 8900, 25,
		"Incompatible with galvanised steel in shared loop (risk of galvanic cell)",
		[]sizeRow{
			{"10x0.7", 10.0, 8.6, ""},
			{"12x0.7", 12.0, 10.6, ""},
			{"15x0.7", 15.0, 13.6, ""},
			{"22x0.9", 22.0, 20.2, ""},
			{"28x0.9", 28.0, 26.2, ""},
			{"35x1.0", 35.0, 33.0, ""},
			{"42x1.2", 42.0, 39.6, ""},
			{"54x1.2", 54.0, 51.6, ""},
		},
	))

	catalog.AddMaterial(mustMaterial(
		"PEX_MULTILAYER", "PEX multilayer (PEX-Al-PEX)", 0.007, 0.35, 950, 10,
		"Always use oxygen-barrier grade (EVOH)",
		[]sizeRow{
			{"16x2", 16.0, 12.0, ""},
			{"20x2", 20.0, 16.0, ""},
			{"26x3", 26.0, 20.0, ""},
			{"32x3", 32.0, 26.0, ""},
		},
	))

	catalog.AddMaterial(mustMaterial(
		"STEEL_MEDIUM", "Carbon steel, medium grade (EN 10255)", 0.045, 50, 7850, 16,
		"Requires inhibitor with aluminium circuits; can cause magnetite",
		[]sizeRow{
			{"1/2_m", 21.3, 18.3, "1/2"},
			{"3/4_m", 26.9, 23.7, "3/4"},
			{"1_m", 33.7, 30.5, "1"},
			{"1_1/4_m", 42.4, 39.2, "1-1/4"},
			{"1_1/2_m", 48.3, 45.1, "1-1/2"},
			{"2_m", 60.3, 56.1, "2"},
		},
	))

	catalog.AddMaterial(mustMaterial(
		"STAINLESS_A2_304", "Stainless A2 (304), press-fit", 0.015, 16, 8000, 16,
		"OK with copper; avoid chloride-rich environments",
		[]sizeRow{
			{"22x1", 22.0, 20.0, ""},
			{"28x1", 28.0, 26.0, ""},
		},
	))

	catalog.AddMaterial(mustMaterial(
		"STAINLESS_A4_316", "Stainless A4 (316), press-fit", 0.015, 14, 8000, 16,
		"Marine grade; safe with copper and aluminium",
		[]sizeRow{
			{"22x1", 22.0, 20.0, ""},
			{"28x1", 28.0, 26.0, ""},
		},
	))

	return catalog
}
