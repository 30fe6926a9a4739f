package loader

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cellmesh/rnrmesh/internal/validity"
)

// LoadConfig reads a scan configuration file. The file is validated against
// the embedded CUE schema, so a missing or non-positive threshold is
// rejected before any scan runs.
func LoadConfig(path string) (validity.Config, error) {
	var cfg validity.Config

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}
	if err := validateSchema(raw, "#Config"); err != nil {
		return cfg, &LoadError{Code: ErrCodeSchema, Path: path, Message: err.Error()}
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: err.Error()}
	}
	return cfg, nil
}
