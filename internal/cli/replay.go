package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellmesh/rnrmesh/internal/journal"
	"github.com/cellmesh/rnrmesh/internal/transition"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

// ReplayResult reports a verified replay.
type ReplayResult struct {
	RunID   string   `json:"run_id"`
	Events  int      `json:"events"`
	Applied []string `json:"applied"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	var journalPath, runID string
	cmd := &cobra.Command{
		Use:   "replay <dataset.yaml>",
		Short: "Re-apply a journaled run and verify it reproduces its record",
		Long: `Replay rebuilds the tissue from the dataset, re-applies the run's
transitions in order and checks each result against the journaled record.
A divergence means the dataset is not the one the run was recorded against.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, journalPath, runID, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&journalPath, "journal", "", "journal database (required)")
	cmd.Flags().StringVar(&runID, "run", "", "run id to replay (default: latest)")
	_ = cmd.MarkFlagRequired("journal")
	return cmd
}

func runReplay(opts *RootOptions, journalPath, runID, datasetPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	j, err := journal.Open(journalPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer j.Close()

	ctx := cmd.Context()
	runs, err := j.Runs(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "list runs", err)
	}
	var run *journal.Run
	if runID == "" {
		if len(runs) == 0 {
			return NewExitError(ExitCommandError, "journal has no runs")
		}
		run = &runs[len(runs)-1]
	} else {
		for i := range runs {
			if runs[i].ID == runID {
				run = &runs[i]
				break
			}
		}
		if run == nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("run %s not found", runID))
		}
	}
	formatter.VerboseLog("replaying run %s (dataset %s, threshold %g)", run.ID, run.Dataset, run.Threshold)

	m, _, _, err := loadTissue(datasetPath, tissueFlags{})
	if err != nil {
		return loadErrToExit(formatter, err)
	}
	cfg := validity.Config{ThresholdLength: run.Threshold}
	en := transition.New(m, cfg, transition.WithLogger(newLogger(opts)))

	results, err := journal.Replay(ctx, j, run.ID, en)
	if err != nil {
		_ = formatter.Error("REPLAY_DIVERGED", err.Error(), nil)
		return WrapExitError(ExitFailure, "replay failed", err)
	}

	out := ReplayResult{RunID: run.ID, Events: len(results)}
	for _, res := range results {
		out.Applied = append(out.Applied, fmt.Sprintf("%s %s", res.Kind, res.Target))
	}
	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	fmt.Fprintf(formatter.Writer, "✓ replayed %d event(s) from run %s\n", out.Events, out.RunID)
	for _, a := range out.Applied {
		fmt.Fprintf(formatter.Writer, "  %s\n", a)
	}
	return nil
}
