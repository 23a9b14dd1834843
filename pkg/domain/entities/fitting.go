package entities

import "fmt"

// FittingKey represents a stable catalog identifier for a fitting type
type FittingKey string

// Fitting represents a discrete local-loss element (elbow, tee, valve)
// characterised by its dimensionless K-value
type Fitting struct {
	Key         FittingKey
	KValue      float64
	Description string
	Application string
}

// NewFitting creates a validated Fitting
func NewFitting(key FittingKey, kValue float64, description, application string) (*Fitting, error) {
	if string(key) == "" {
		return nil, fmt.Errorf("fitting key cannot be empty")
	}
	if kValue < 0 {
		return nil, fmt.Errorf("K-value cannot be negative, got %g", kValue)
	}
	if description == "" {
		return nil, fmt.Errorf("fitting description cannot be empty")
	}

	return &Fitting{
		Key:         key,
		KValue:      kValue,
		Description: description,
		Application: application,
	}, nil
}
