package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellmesh/rnrmesh/internal/journal"
	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/transition"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

// ApplyResult reports one applied transition.
type ApplyResult struct {
	RunID  string             `json:"run_id,omitempty"`
	Result *transition.Result `json:"result"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	flags := tissueFlags{}
	var edgeStr, faceStr, journalPath string
	cmd := &cobra.Command{
		Use:   "apply <dataset.yaml>",
		Short: "Apply one IH or HI transition to a tissue",
		Long: `Apply a single transition: --edge selects an IH collapse target,
--face an HI split target. The transition is transactional; a refused or
invariant-violating surgery leaves the tissue untouched. With --journal the
committed transition is appended to a run in the given journal database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(rootOpts, flags, edgeStr, faceStr, journalPath, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&flags.ConfigPath, "config", "", "scan configuration file")
	cmd.Flags().Float64Var(&flags.Threshold, "threshold", 0, "threshold length (overrides config)")
	cmd.Flags().StringVar(&edgeStr, "edge", "", "half-edge handle to collapse, e.g. e12@0")
	cmd.Flags().StringVar(&faceStr, "face", "", "triangle handle to split, e.g. f3@0")
	cmd.Flags().StringVar(&journalPath, "journal", "", "journal database to append the transition to")
	return cmd
}

func runApply(opts *RootOptions, flags tissueFlags, edgeStr, faceStr, journalPath, datasetPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if (edgeStr == "") == (faceStr == "") {
		return NewExitError(ExitCommandError, "exactly one of --edge or --face is required")
	}

	m, ds, cfg, err := loadTissue(datasetPath, flags)
	if err != nil {
		return loadErrToExit(formatter, err)
	}
	en := transition.New(m, cfg, transition.WithLogger(newLogger(opts)))

	var res *transition.Result
	if edgeStr != "" {
		var h mesh.EdgeHandle
		if err := h.UnmarshalText([]byte(edgeStr)); err != nil {
			return WrapExitError(ExitCommandError, "bad --edge", err)
		}
		res, err = en.IH(h)
	} else {
		var h mesh.FaceHandle
		if err := h.UnmarshalText([]byte(faceStr)); err != nil {
			return WrapExitError(ExitCommandError, "bad --face", err)
		}
		res, err = en.HI(h)
	}
	if err != nil {
		return applyErrToExit(formatter, err)
	}

	out := ApplyResult{Result: res}
	if journalPath != "" {
		j, err := journal.Open(journalPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "open journal", err)
		}
		defer j.Close()
		ctx := cmd.Context()
		runID, err := j.BeginRun(ctx, datasetLabel(ds, datasetPath), cfg.ThresholdLength)
		if err != nil {
			return WrapExitError(ExitCommandError, "begin run", err)
		}
		if _, err := j.Append(ctx, runID, 0, res); err != nil {
			return WrapExitError(ExitCommandError, "append event", err)
		}
		out.RunID = runID
	}

	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	fmt.Fprintf(formatter.Writer, "applied %s on %s\n", res.Kind, res.Target)
	fmt.Fprintf(formatter.Writer, "  new vertices:     %v\n", handleList(res.NewVertices))
	fmt.Fprintf(formatter.Writer, "  new edges:        %v\n", handleList(res.NewEdges))
	fmt.Fprintf(formatter.Writer, "  removed vertices: %v\n", handleList(res.RemovedVertices))
	fmt.Fprintf(formatter.Writer, "  removed edges:    %d\n", len(res.RemovedEdges))
	fmt.Fprintf(formatter.Writer, "  removed faces:    %v\n", handleList(res.RemovedFaces))
	if out.RunID != "" {
		fmt.Fprintf(formatter.Writer, "  journaled run:    %s\n", out.RunID)
	}
	return nil
}

// applyErrToExit maps engine errors to exit codes: refused or rolled-back
// transitions are failures, dangling handles and bad thresholds are command
// errors.
func applyErrToExit(formatter *OutputFormatter, err error) error {
	switch {
	case transition.IsDegenerate(err):
		_ = formatter.Error(string(transition.ErrCodeDegenerate), err.Error(), nil)
		return WrapExitError(ExitFailure, "transition refused", err)
	case transition.IsInvariantViolation(err):
		_ = formatter.Error(string(transition.ErrCodeInvariantViolation), err.Error(), nil)
		return WrapExitError(ExitFailure, "transition rolled back", err)
	case validity.IsConfiguration(err):
		_ = formatter.Error("CONFIGURATION", err.Error(), nil)
		return WrapExitError(ExitCommandError, "bad configuration", err)
	case mesh.IsDanglingReference(err):
		_ = formatter.Error("DANGLING_REFERENCE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "unknown target", err)
	default:
		_ = formatter.Error("E000", err.Error(), nil)
		return WrapExitError(ExitCommandError, "apply failed", err)
	}
}
