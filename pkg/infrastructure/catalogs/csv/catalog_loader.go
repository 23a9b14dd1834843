// Package csv loads pipe material and pump catalogs from CSV files,
// so a solve can run against manufacturer data instead of the built-in
// catalogs. One row describes one pipe size or one curve point; rows
// sharing a key are grouped into a single catalog entry in file order.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iandogless-creator/hydronet/pkg/domain/entities"
)

// Loader handles loading catalog data from CSV files
type Loader struct{}

// NewLoader creates a new catalog CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadMaterials loads pipe materials from a CSV file. Material-level
// columns repeat on every row; the first row of a material wins.
func (l *Loader) LoadMaterials(filename string) ([]*entities.PipeMaterial, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open materials file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read materials CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("materials CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"material", "name", "roughness_m", "conductivity_w_mk", "density_kg_m3", "pressure_rating_bar", "size_name", "outside_diameter_m", "internal_diameter_m", "bsp_nominal"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("materials CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	type materialGroup struct {
		name       string
		roughnessM float64
		condWMK    float64
		densKgM3   float64
		ratingBar  float64
		sizes      []entities.PipeSize
	}

	groups := make(map[entities.MaterialKey]*materialGroup)
	var order []entities.MaterialKey

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("materials CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		key := entities.MaterialKey(strings.TrimSpace(record[0]))
		group, exists := groups[key]
		if !exists {
			roughness, err := parseFloat(record[2], "roughness_m")
			if err != nil {
				return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
			}
			conductivity, err := parseFloat(record[3], "conductivity_w_mk")
			if err != nil {
				return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
			}
			density, err := parseFloat(record[4], "density_kg_m3")
			if err != nil {
				return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
			}
			rating, err := parseFloat(record[5], "pressure_rating_bar")
			if err != nil {
				return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
			}

			group = &materialGroup{
				name:       strings.TrimSpace(record[1]),
				roughnessM: roughness,
				condWMK:    conductivity,
				densKgM3:   density,
				ratingBar:  rating,
			}
			groups[key] = group
			order = append(order, key)
		}

		outside, err := parseFloat(record[7], "outside_diameter_m")
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}
		internal, err := parseFloat(record[8], "internal_diameter_m")
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}

		size, err := entities.NewPipeSize(strings.TrimSpace(record[6]), outside, internal, strings.TrimSpace(record[9]))
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}
		group.sizes = append(group.sizes, *size)
	}

	materials := make([]*entities.PipeMaterial, 0, len(order))
	for _, key := range order {
		group := groups[key]
		material, err := entities.NewPipeMaterial(
			key, group.name,
			group.roughnessM, group.condWMK, group.densKgM3, group.ratingBar,
			group.sizes,
		)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", key, err)
		}
		materials = append(materials, material)
	}

	return materials, nil
}

// LoadPumps loads pump curves from a CSV file. Pump-level columns repeat
// on every row; the first row of a pump wins. A non-empty efficiency
// column adds an efficiency point at that flow.
func (l *Loader) LoadPumps(filename string) ([]*entities.PumpCurve, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pumps file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read pumps CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("pumps CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"pump", "name", "min_speed_ratio", "max_speed_ratio", "nominal_efficiency", "motor_efficiency", "flow_m3_h", "head_m", "efficiency"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("pumps CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	type pumpGroup struct {
		name       string
		minRatio   float64
		maxRatio   float64
		nominalEff float64
		motorEff   *float64
		points     []entities.CurvePoint
		effPoints  []entities.EfficiencyPoint
	}

	groups := make(map[entities.PumpKey]*pumpGroup)
	var order []entities.PumpKey

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("pumps CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		key := entities.PumpKey(strings.TrimSpace(record[0]))
		group, exists := groups[key]
		if !exists {
			minRatio, err := parseFloat(record[2], "min_speed_ratio")
			if err != nil {
				return nil, fmt.Errorf("pumps CSV row %d: %w", i+2, err)
			}
			maxRatio, err := parseFloat(record[3], "max_speed_ratio")
			if err != nil {
				return nil, fmt.Errorf("pumps CSV row %d: %w", i+2, err)
			}
			nominalEff, err := parseFloat(record[4], "nominal_efficiency")
			if err != nil {
				return nil, fmt.Errorf("pumps CSV row %d: %w", i+2, err)
			}
			motorEff, err := parseOptionalFloat(record[5], "motor_efficiency")
			if err != nil {
				return nil, fmt.Errorf("pumps CSV row %d: %w", i+2, err)
			}

			group = &pumpGroup{
				name:       strings.TrimSpace(record[1]),
				minRatio:   minRatio,
				maxRatio:   maxRatio,
				nominalEff: nominalEff,
				motorEff:   motorEff,
			}
			groups[key] = group
			order = append(order, key)
		}

		flow, err := parseFloat(record[6], "flow_m3_h")
		if err != nil {
			return nil, fmt.Errorf("pumps CSV row %d: %w", i+2, err)
		}
		head, err := parseFloat(record[7], "head_m")
		if err != nil {
			return nil, fmt.Errorf("pumps CSV row %d: %w", i+2, err)
		}
		group.points = append(group.points, entities.CurvePoint{FlowM3H: flow, HeadM: head})

		efficiency, err := parseOptionalFloat(record[8], "efficiency")
		if err != nil {
			return nil, fmt.Errorf("pumps CSV row %d: %w", i+2, err)
		}
		if efficiency != nil {
			group.effPoints = append(group.effPoints, entities.EfficiencyPoint{
				FlowM3H:    flow,
				Efficiency: *efficiency,
			})
		}
	}

	pumps := make([]*entities.PumpCurve, 0, len(order))
	for _, key := range order {
		group := groups[key]
		pump, err := entities.NewPumpCurve(
			key, group.name,
			group.points,
			group.minRatio, group.maxRatio,
			group.effPoints, group.nominalEff,
			group.motorEff,
		)
		if err != nil {
			return nil, err
		}
		pumps = append(pumps, pump)
	}

	return pumps, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseFloat(value, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", field, value)
	}
	return v, nil
}

func parseOptionalFloat(value, field string) (*float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", field, value)
	}
	return &v, nil
}
