package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cellmesh/rnrmesh/internal/validity"
)

// ValidationResult lists the invalid elements of a tissue.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Vertices []string `json:"vertices,omitempty"`
	Edges    []string `json:"edges,omitempty"`
	Faces    []string `json:"faces,omitempty"`
	Cells    []string `json:"cells,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <dataset.yaml>",
		Short: "Check a tissue against the connectivity and geometry conditions",
		Long: `Validate a tissue dataset: closed face cycles, referenced vertices,
non-negative sub-volumes, positive cell volumes, and the edge-sharing
conditions between faces.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, datasetPath string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("loaded %s: %d vertices, %d half-edges, %d faces, %d cells",
		datasetLabel(ds, datasetPath), m.NumVertices(), m.NumEdges(), m.NumFaces(), m.NumCells())

	summary, err := validity.Invalid(m)
	if err != nil {
		return WrapExitError(ExitCommandError, "validity scan failed", err)
	}

	result := ValidationResult{Valid: true}
	for vh, bad := range summary.Vertices {
		if bad {
			result.Vertices = append(result.Vertices, vh.String())
		}
	}
	for eh, bad := range summary.Edges {
		if bad {
			result.Edges = append(result.Edges, eh.String())
		}
	}
	for fh, bad := range summary.Faces {
		if bad {
			result.Faces = append(result.Faces, fh.String())
		}
	}
	for ch, bad := range summary.Cells {
		if bad {
			result.Cells = append(result.Cells, ch.String())
		}
	}
	slices.Sort(result.Vertices)
	slices.Sort(result.Edges)
	slices.Sort(result.Faces)
	slices.Sort(result.Cells)
	result.Valid = len(result.Vertices) == 0 && len(result.Edges) == 0 &&
		len(result.Faces) == 0 && len(result.Cells) == 0

	if result.Valid {
		if formatter.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintln(formatter.Writer, "✓ tissue valid")
		return nil
	}

	if formatter.Format == "json" {
		_ = formatter.Success(result)
	} else {
		fmt.Fprintln(formatter.Writer, "✗ tissue invalid")
		for _, v := range result.Vertices {
			fmt.Fprintf(formatter.Writer, "  vertex %s\n", v)
		}
		for _, e := range result.Edges {
			fmt.Fprintf(formatter.Writer, "  halfedge %s\n", e)
		}
		for _, f := range result.Faces {
			fmt.Fprintf(formatter.Writer, "  face %s\n", f)
		}
		for _, c := range result.Cells {
			fmt.Fprintf(formatter.Writer, "  cell %s\n", c)
		}
	}
	n := len(result.Vertices) + len(result.Edges) + len(result.Faces) + len(result.Cells)
	return NewExitError(ExitFailure, fmt.Sprintf("tissue invalid: %d flagged element(s)", n))
}
