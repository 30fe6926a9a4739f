// Package journal gives applied transitions a durable event log.
//
// Every committed transition is appended to a SQLite database as one event
// row: run id, sequence number, transition kind, target handle and the full
// serialized result. Because the engine is deterministic, replaying a run's
// events against the same starting mesh reproduces the same handles and the
// same results; Replay verifies this record by record.
package journal
