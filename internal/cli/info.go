package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InfoResult summarizes a loaded tissue.
type InfoResult struct {
	Dataset        string    `json:"dataset"`
	Vertices       int       `json:"vertices"`
	HalfEdges      int       `json:"half_edges"`
	Faces          int       `json:"faces"`
	Cells          int       `json:"cells"`
	MeanEdgeLength float64   `json:"mean_edge_length"`
	CellVolumes    []float64 `json:"cell_volumes"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info <dataset.yaml>",
		Short:         "Summarize a tissue dataset",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInfo(opts *RootOptions, datasetPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, ds, _, err := loadTissue(datasetPath, tissueFlags{})
	if err != nil {
		return loadErrToExit(formatter, err)
	}

	result := InfoResult{
		Dataset:        datasetLabel(ds, datasetPath),
		Vertices:       m.NumVertices(),
		HalfEdges:      m.NumEdges(),
		Faces:          m.NumFaces(),
		Cells:          m.NumCells(),
		MeanEdgeLength: m.MeanEdgeLength(),
		CellVolumes:    m.CellVolumes(),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "dataset:          %s\n", result.Dataset)
	fmt.Fprintf(formatter.Writer, "vertices:         %d\n", result.Vertices)
	fmt.Fprintf(formatter.Writer, "half-edges:       %d\n", result.HalfEdges)
	fmt.Fprintf(formatter.Writer, "faces:            %d\n", result.Faces)
	fmt.Fprintf(formatter.Writer, "cells:            %d\n", result.Cells)
	fmt.Fprintf(formatter.Writer, "mean edge length: %.6g\n", result.MeanEdgeLength)
	for i, v := range result.CellVolumes {
		fmt.Fprintf(formatter.Writer, "cell %d volume:    %.6g\n", i, v)
	}
	return nil
}
