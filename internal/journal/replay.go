package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/transition"
)

// Replay re-applies a run's events, in order, through the engine. The engine
// must wrap the same starting mesh the run was recorded against; because
// handle allocation is deterministic, each replayed transition must
// reproduce the recorded result exactly, and any divergence aborts the
// replay with the offending sequence number.
func Replay(ctx context.Context, j *Journal, runID string, en *transition.Engine) ([]*transition.Result, error) {
	events, err := j.Events(ctx, runID)
	if err != nil {
		return nil, err
	}

	results := make([]*transition.Result, 0, len(events))
	for _, ev := range events {
		var res *transition.Result
		switch ev.Kind {
		case transition.KindIH:
			var h mesh.EdgeHandle
			if err := h.UnmarshalText([]byte(ev.Target)); err != nil {
				return nil, fmt.Errorf("replay seq %d: %w", ev.Seq, err)
			}
			res, err = en.IH(h)
		case transition.KindHI:
			var h mesh.FaceHandle
			if err := h.UnmarshalText([]byte(ev.Target)); err != nil {
				return nil, fmt.Errorf("replay seq %d: %w", ev.Seq, err)
			}
			res, err = en.HI(h)
		default:
			return nil, fmt.Errorf("replay seq %d: unknown transition kind %q", ev.Seq, ev.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("replay seq %d (%s %s): %w", ev.Seq, ev.Kind, ev.Target, err)
		}

		got, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("replay seq %d: marshal result: %w", ev.Seq, err)
		}
		want, err := json.Marshal(ev.Result)
		if err != nil {
			return nil, fmt.Errorf("replay seq %d: marshal recorded result: %w", ev.Seq, err)
		}
		if !bytes.Equal(got, want) {
			return nil, fmt.Errorf("replay seq %d (%s %s): result diverged from record", ev.Seq, ev.Kind, ev.Target)
		}
		results = append(results, res)
	}
	return results, nil
}
