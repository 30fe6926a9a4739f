package cli

import (
	"errors"
	"fmt"

	"github.com/cellmesh/rnrmesh/internal/loader"
	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

// tissueFlags are the per-command flags shared by every command that loads
// a dataset.
type tissueFlags struct {
	ConfigPath string
	Threshold  float64
}

// loadTissue reads the dataset and resolves the scan configuration: the
// config file if given, overridden by an explicit --threshold.
func loadTissue(datasetPath string, flags tissueFlags) (*mesh.Mesh, *loader.Dataset, validity.Config, error) {
	var cfg validity.Config
	if flags.ConfigPath != "" {
		loaded, err := loader.LoadConfig(flags.ConfigPath)
		if err != nil {
			return nil, nil, cfg, err
		}
		cfg = loaded
	}
	if flags.Threshold > 0 {
		cfg.ThresholdLength = flags.Threshold
	}

	m, ds, err := loader.LoadDataset(datasetPath)
	if err != nil {
		return nil, nil, cfg, err
	}
	return m, ds, cfg, nil
}

// loadErrToExit converts a loader error to an ExitError after reporting it
// through the formatter.
func loadErrToExit(formatter *OutputFormatter, err error) error {
	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message, loadErr.Path)
		return NewExitError(ExitCommandError, loadErr.Error())
	}
	_ = formatter.Error("L000", err.Error(), nil)
	return WrapExitError(ExitCommandError, "load failed", err)
}

// datasetLabel prefers the dataset's own name, falling back to its path.
func datasetLabel(ds *loader.Dataset, path string) string {
	if ds != nil && ds.Name != "" {
		return ds.Name
	}
	return path
}

// handleList renders handles for text output.
func handleList[H fmt.Stringer](hs []H) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.String()
	}
	return out
}
