package loader

import "fmt"

// LoadError reports a failure while reading or validating a dataset or
// configuration file.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across loader entry points.
const (
	ErrCodeNotFound     = "L001" // File not found or unreadable
	ErrCodeDecodeFailed = "L002" // YAML decode failed
	ErrCodeSchema       = "L003" // Schema validation failed
	ErrCodeBuildFailed  = "L004" // Mesh construction failed
)
