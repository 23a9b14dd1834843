package entities

import (
	"fmt"
	"sort"
)

// MaterialKey represents a stable catalog identifier for a pipe material
type MaterialKey string

// PipeSize represents one catalog size for a pipe material
type PipeSize struct {
	Name              string // e.g. "22x0.9", "1_m"
	OutsideDiameterM  float64
	InternalDiameterM float64
	WallThicknessM    float64
	BSPNominal        string // BSP designation for threaded steel, e.g. "3/4"
}

// NewPipeSize creates a validated PipeSize. Wall thickness is derived from
// the outside and internal diameters.
func NewPipeSize(name string, outsideDiameterM, internalDiameterM float64, bspNominal string) (*PipeSize, error) {
	if name == "" {
		return nil, fmt.Errorf("pipe size name cannot be empty")
	}
	if internalDiameterM <= 0 {
		return nil, fmt.Errorf("internal diameter must be positive, got %g", internalDiameterM)
	}
	if outsideDiameterM <= internalDiameterM {
		return nil, fmt.Errorf(
			"outside diameter %g must exceed internal diameter %g for size %s",
			outsideDiameterM, internalDiameterM, name,
		)
	}

	return &PipeSize{
		Name:              name,
		OutsideDiameterM:  outsideDiameterM,
		InternalDiameterM: internalDiameterM,
		WallThicknessM:    (outsideDiameterM - internalDiameterM) / 2.0,
		BSPNominal:        bspNominal,
	}, nil
}

// PipeMaterial represents a catalog pipe material with its ordered size table
type PipeMaterial struct {
	Key                MaterialKey
	Name               string
	RoughnessM         float64 // absolute roughness ε
	ConductivityWMK    float64
	DensityKgM3        float64
	PressureRatingBar  float64
	CompatibilityNotes string
	Sizes              []PipeSize // ascending internal diameter
}

// NewPipeMaterial creates a validated PipeMaterial. The size table is sorted
// by ascending internal diameter so sizing can scan smallest-first.
func NewPipeMaterial(
	key MaterialKey,
	name string,
	roughnessM, conductivityWMK, densityKgM3, pressureRatingBar float64,
	sizes []PipeSize,
) (*PipeMaterial, error) {
	if string(key) == "" {
		return nil, fmt.Errorf("material key cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("material name cannot be empty")
	}
	if roughnessM < 0 {
		return nil, fmt.Errorf("roughness cannot be negative, got %g", roughnessM)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("material %s must declare at least one pipe size", key)
	}

	ordered := make([]PipeSize, len(sizes))
	copy(ordered, sizes)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].InternalDiameterM < ordered[j].InternalDiameterM
	})

	seen := make(map[string]bool, len(ordered))
	for _, s := range ordered {
		if s.InternalDiameterM <= 0 {
			return nil, fmt.Errorf("size %s of material %s has non-positive internal diameter", s.Name, key)
		}
		if s.OutsideDiameterM <= s.InternalDiameterM {
			return nil, fmt.Errorf(
				"size %s of material %s has outside diameter %g not exceeding internal diameter %g",
				s.Name, key, s.OutsideDiameterM, s.InternalDiameterM,
			)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate size name %s for material %s", s.Name, key)
		}
		seen[s.Name] = true
	}

	return &PipeMaterial{
		Key:               key,
		Name:              name,
		RoughnessM:        roughnessM,
		ConductivityWMK:   conductivityWMK,
		DensityKgM3:       densityKgM3,
		PressureRatingBar: pressureRatingBar,
		Sizes:             ordered,
	}, nil
}

// SmallestSize returns the catalog size with the smallest internal diameter
func (m *PipeMaterial) SmallestSize() PipeSize {
	return m.Sizes[0]
}

// LargestSize returns the catalog size with the largest internal diameter
func (m *PipeMaterial) LargestSize() PipeSize {
	return m.Sizes[len(m.Sizes)-1]
}

// SizeByName returns the named catalog size
func (m *PipeMaterial) SizeByName(name string) (*PipeSize, error) {
	for i := range m.Sizes {
		if m.Sizes[i].Name == name {
			return &m.Sizes[i], nil
		}
	}
	return nil, fmt.Errorf("material %s has no size named %s", m.Key, name)
}
