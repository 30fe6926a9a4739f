package transition

import (
	"log/slog"

	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

// DefaultSeedFactor scales the threshold length into the initial length of
// the edge an HI transition creates. Slightly above one, so the new edge is
// born just over the flag threshold and does not immediately re-trigger the
// candidate scan.
const DefaultSeedFactor = 1.05

// Engine applies IH and HI transitions to one owned mesh.
//
// The mesh is a single shared mutable structure; all engine calls must be
// serialized by the caller. Concurrent transitions on overlapping patches
// are unsafe by construction.
type Engine struct {
	mesh       *mesh.Mesh
	cfg        validity.Config
	log        *slog.Logger
	seedFactor float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards nothing but logs
// at the default slog level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithSeedFactor overrides the HI seed length factor.
func WithSeedFactor(f float64) Option {
	return func(e *Engine) { e.seedFactor = f }
}

// New creates an engine over m with the given scan configuration.
func New(m *mesh.Mesh, cfg validity.Config, opts ...Option) *Engine {
	e := &Engine{
		mesh:       m,
		cfg:        cfg,
		log:        slog.Default(),
		seedFactor: DefaultSeedFactor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mesh returns the engine's mesh.
func (e *Engine) Mesh() *mesh.Mesh { return e.mesh }

// Threshold returns the configured minimum edge length.
func (e *Engine) Threshold() float64 { return e.cfg.ThresholdLength }

// SetThreshold replaces the configured minimum edge length. Well-posedness
// against the current mesh is the caller's concern (Condition 3 via
// validity.CheckThreshold); the setter itself accepts any value.
func (e *Engine) SetThreshold(t float64) { e.cfg.ThresholdLength = t }

// Config returns the current scan configuration.
func (e *Engine) Config() validity.Config { return e.cfg }

// Scan runs the candidate scan against the current derived geometry.
func (e *Engine) Scan() (validity.Candidates, error) {
	return validity.FindRearrangements(e.mesh, e.cfg)
}
