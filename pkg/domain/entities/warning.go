package entities

import "fmt"

// WarningCode classifies recoverable solve conditions that ride on result
// objects instead of aborting the run
type WarningCode int

const (
	OverVelocity WarningCode = iota
	NonConverged
	NoFlow
)

// String method for WarningCode enum
func (c WarningCode) String() string {
	switch c {
	case OverVelocity:
		return "OverVelocity"
	case NonConverged:
		return "NonConverged"
	case NoFlow:
		return "NoFlow"
	default:
		return "Unknown"
	}
}

// MarshalText makes warning codes serialize by name
func (c WarningCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Warning represents a recoverable condition attached to a result object
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// NewWarning creates a Warning with a formatted message
func NewWarning(code WarningCode, format string, args ...interface{}) Warning {
	return Warning{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
