package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cellmesh/rnrmesh/internal/transition"
)

// Run describes one journaled engine session.
type Run struct {
	ID        string
	Dataset   string
	Threshold float64
	StartedAt string
}

// Event is one committed transition.
type Event struct {
	ID     string
	RunID  string
	Seq    int
	Kind   transition.Kind
	Target string
	Result *transition.Result
}

// BeginRun opens a new run and returns its id.
func (j *Journal) BeginRun(ctx context.Context, dataset string, threshold float64) (string, error) {
	id := j.tokens.Generate()
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (id, dataset, threshold)
		VALUES (?, ?, ?)
	`, id, dataset, threshold)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// Append records a committed transition under the run. Duplicate (run, seq)
// pairs are rejected by the schema; the caller owns the sequence counter.
func (j *Journal) Append(ctx context.Context, runID string, seq int, res *transition.Result) (string, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("append event: marshal result: %w", err)
	}
	id := j.tokens.Generate()
	_, err = j.db.ExecContext(ctx, `
		INSERT INTO events (id, run_id, seq, kind, target, result)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, runID, seq, string(res.Kind), res.Target, string(payload))
	if err != nil {
		return "", fmt.Errorf("append event: %w", err)
	}
	return id, nil
}

// Events returns the run's events in sequence order.
func (j *Journal) Events(ctx context.Context, runID string) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, run_id, seq, kind, target, result
		FROM events
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var kind, payload string
		if err := rows.Scan(&ev.ID, &ev.RunID, &ev.Seq, &kind, &ev.Target, &payload); err != nil {
			return nil, fmt.Errorf("list events: scan: %w", err)
		}
		ev.Kind = transition.Kind(kind)
		var res transition.Result
		if err := json.Unmarshal([]byte(payload), &res); err != nil {
			return nil, fmt.Errorf("list events: decode result %s: %w", ev.ID, err)
		}
		ev.Result = &res
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Runs returns all runs, oldest first.
func (j *Journal) Runs(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, dataset, threshold, started_at
		FROM runs
		ORDER BY started_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Dataset, &r.Threshold, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
