package validity

import (
	"errors"
	"fmt"
)

// Config carries the one recognized scan option.
type Config struct {
	// ThresholdLength is the minimum edge length below which IH and HI
	// candidates are flagged.
	ThresholdLength float64 `yaml:"threshold_length" json:"threshold_length"`
}

// ConfigurationError reports a threshold that fails Condition 3. It is
// surfaced to the caller, never auto-corrected: choosing a smaller
// threshold is a modelling decision.
type ConfigurationError struct {
	Threshold float64
	MeanEdge  float64
	Message   string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("CONFIGURATION: %s (threshold=%g, mean edge length=%g)",
		e.Message, e.Threshold, e.MeanEdge)
}

// IsConfiguration reports whether err is a ConfigurationError.
// Uses errors.As to handle wrapped errors.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
