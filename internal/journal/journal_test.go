package journal_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellmesh/rnrmesh/internal/journal"
	"github.com/cellmesh/rnrmesh/internal/testutil"
	"github.com/cellmesh/rnrmesh/internal/transition"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

func openJournal(t *testing.T, opts ...journal.Option) *journal.Journal {
	t.Helper()
	j, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(path, journal.WithTokenGenerator(journal.NewFixedGenerator("run-1")))
	require.NoError(t, err)
	_, err = j.BeginRun(context.Background(), "cube.yaml", 0.5)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = journal.Open(path)
	require.NoError(t, err)
	defer j.Close()
	runs, err := j.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "cube.yaml", runs[0].Dataset)
	assert.Equal(t, 0.5, runs[0].Threshold)
	assert.NotEmpty(t, runs[0].StartedAt)
}

func TestAppendEvents_RoundTrip(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t, journal.WithTokenGenerator(
		journal.NewFixedGenerator("run-1", "ev-1", "ev-2")))

	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 1.1},
		transition.WithSeedFactor(0.2))
	ihRes, err := en.IH(tp.Ridge)
	require.NoError(t, err)
	hiRes, err := en.HI(tp.InterfaceA)
	require.NoError(t, err)

	runID, err := j.BeginRun(ctx, "twinprisms.yaml", 1.1)
	require.NoError(t, err)
	require.Equal(t, "run-1", runID)

	// Out-of-order appends; Events returns sequence order.
	id2, err := j.Append(ctx, runID, 1, hiRes)
	require.NoError(t, err)
	id1, err := j.Append(ctx, runID, 0, ihRes)
	require.NoError(t, err)

	events, err := j.Events(ctx, runID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, id1, events[0].ID)
	assert.Equal(t, id2, events[1].ID)
	assert.Equal(t, 0, events[0].Seq)
	assert.Equal(t, transition.KindIH, events[0].Kind)
	assert.Equal(t, tp.Ridge.String(), events[0].Target)
	assert.Equal(t, ihRes, events[0].Result)
	assert.Equal(t, hiRes, events[1].Result)
}

func TestAppend_RejectsDuplicateSequence(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})
	res, err := en.IH(tp.Ridge)
	require.NoError(t, err)

	runID, err := j.BeginRun(ctx, "twinprisms.yaml", 0.7)
	require.NoError(t, err)
	_, err = j.Append(ctx, runID, 0, res)
	require.NoError(t, err)
	_, err = j.Append(ctx, runID, 0, res)
	assert.Error(t, err, "duplicate (run, seq) must be rejected")

	_, err = j.Append(ctx, "no-such-run", 0, res)
	assert.Error(t, err, "foreign key to runs is enforced")
}

func TestReplay_ReproducesRun(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	record := testutil.TwinPentagonPrisms(1)
	cfg := validity.Config{ThresholdLength: 1.1}
	rec := transition.New(record.M, cfg, transition.WithSeedFactor(0.2))
	ihRes, err := rec.IH(record.Ridge)
	require.NoError(t, err)
	hiRes, err := rec.HI(record.InterfaceA)
	require.NoError(t, err)

	runID, err := j.BeginRun(ctx, "twinprisms.yaml", cfg.ThresholdLength)
	require.NoError(t, err)
	_, err = j.Append(ctx, runID, 0, ihRes)
	require.NoError(t, err)
	_, err = j.Append(ctx, runID, 1, hiRes)
	require.NoError(t, err)

	// Handle allocation is deterministic, so a fresh copy of the same
	// starting tissue replays to the identical end state.
	fresh := testutil.TwinPentagonPrisms(1)
	results, err := journal.Replay(ctx, j, runID,
		transition.New(fresh.M, cfg, transition.WithSeedFactor(0.2)))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, ihRes, results[0])
	assert.Equal(t, hiRes, results[1])
	assert.Equal(t, record.M.Dump(), fresh.M.Dump())
}

func TestReplay_AbortsOnFailedTransition(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	record := testutil.TwinPentagonPrisms(1)
	en := transition.New(record.M, validity.Config{ThresholdLength: 0.7})
	res, err := en.IH(record.Ridge)
	require.NoError(t, err)

	runID, err := j.BeginRun(ctx, "twinprisms.yaml", 0.7)
	require.NoError(t, err)
	_, err = j.Append(ctx, runID, 0, res)
	require.NoError(t, err)
	// A second collapse of the same target cannot apply: the handle died
	// with the first one.
	_, err = j.Append(ctx, runID, 1, res)
	require.NoError(t, err)

	fresh := testutil.TwinPentagonPrisms(1)
	_, err = journal.Replay(ctx, j, runID,
		transition.New(fresh.M, validity.Config{ThresholdLength: 0.7}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replay seq 1")
}

func TestReplay_DetectsDivergence(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	record := testutil.TwinPentagonPrisms(1)
	en := transition.New(record.M, validity.Config{ThresholdLength: 0.7})
	res, err := en.IH(record.Ridge)
	require.NoError(t, err)

	tampered := *res
	tampered.RemovedEdges = tampered.RemovedEdges[:1]

	runID, err := j.BeginRun(ctx, "twinprisms.yaml", 0.7)
	require.NoError(t, err)
	_, err = j.Append(ctx, runID, 0, &tampered)
	require.NoError(t, err)

	fresh := testutil.TwinPentagonPrisms(1)
	_, err = journal.Replay(ctx, j, runID,
		transition.New(fresh.M, validity.Config{ThresholdLength: 0.7}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diverged from record")
}
