package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellmesh/rnrmesh/internal/validity"
)

// ScanResult lists rearrangement candidates at a threshold.
type ScanResult struct {
	Dataset   string   `json:"dataset"`
	Threshold float64  `json:"threshold"`
	IHEdges   []string `json:"ih_edges"`
	HIFaces   []string `json:"hi_faces"`
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	flags := tissueFlags{}
	cmd := &cobra.Command{
		Use:   "scan <dataset.yaml>",
		Short: "List IH and HI candidates below the threshold length",
		Long: `Scan a tissue for rearrangement candidates: half-edges short enough to
collapse (IH) and triangles short on every side (HI). The threshold must be
positive and below the tissue's mean edge length.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(rootOpts, flags, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&flags.ConfigPath, "config", "", "scan configuration file")
	cmd.Flags().Float64Var(&flags.Threshold, "threshold", 0, "threshold length (overrides config)")
	return cmd
}

func runScan(opts *RootOptions, flags tissueFlags, datasetPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, ds, cfg, err := loadTissue(datasetPath, flags)
	if err != nil {
		return loadErrToExit(formatter, err)
	}
	if err := validity.CheckThreshold(m, cfg); err != nil {
		var confErr *validity.ConfigurationError
		if errors.As(err, &confErr) {
			_ = formatter.Error("CONFIGURATION", confErr.Message, map[string]float64{
				"threshold":        confErr.Threshold,
				"mean_edge_length": confErr.MeanEdge,
			})
			return NewExitError(ExitCommandError, confErr.Error())
		}
		return WrapExitError(ExitCommandError, "threshold check failed", err)
	}

	cands, err := validity.FindRearrangements(m, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "scan failed", err)
	}

	result := ScanResult{
		Dataset:   datasetLabel(ds, datasetPath),
		Threshold: cfg.ThresholdLength,
		IHEdges:   handleList(cands.IHEdges),
		HIFaces:   handleList(cands.HIFaces),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "threshold %.6g: %d IH candidate(s), %d HI candidate(s)\n",
		result.Threshold, len(result.IHEdges), len(result.HIFaces))
	for _, e := range result.IHEdges {
		fmt.Fprintf(formatter.Writer, "  IH %s\n", e)
	}
	for _, f := range result.HIFaces {
		fmt.Fprintf(formatter.Writer, "  HI %s\n", f)
	}
	return nil
}
