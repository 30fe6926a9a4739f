package transition

import (
	"errors"
	"fmt"
	"strings"
)

// TransitionErrorCode categorizes transition failures. The four outcome
// kinds of the model stay distinguishable to the caller; none is retried
// automatically because a transition is deterministic given the same
// inputs.
type TransitionErrorCode string

const (
	// ErrCodeDegenerate indicates a refused target: an IH whose patch would
	// drop a face below three sides, an HI on a non-triangular face, or an
	// HI on a triangle that is not uniformly short. The mesh is unchanged.
	ErrCodeDegenerate TransitionErrorCode = "DEGENERATE_TRANSITION"

	// ErrCodeInvariantViolation indicates the post-surgery check found
	// I1-I5 broken; the engine rolled back to the pre-transition snapshot.
	ErrCodeInvariantViolation TransitionErrorCode = "INVARIANT_VIOLATION"
)

// TransitionError represents a refused or rolled-back transition.
type TransitionError struct {
	// Code identifies the error category.
	Code TransitionErrorCode

	// Message is a human-readable description.
	Message string

	// Target identifies the edge or face the transition was applied to.
	Target string

	// Violations lists the broken invariants for rollback errors.
	Violations []string
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("%s: %s (target=%s): %s",
			e.Code, e.Message, e.Target, strings.Join(e.Violations, "; "))
	}
	if e.Target != "" {
		return fmt.Sprintf("%s: %s (target=%s)", e.Code, e.Message, e.Target)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDegenerate reports whether the error is a refused degenerate target.
// Uses errors.As to handle wrapped errors.
func IsDegenerate(err error) bool {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Code == ErrCodeDegenerate
	}
	return false
}

// IsInvariantViolation reports whether the error is a rolled-back
// invariant violation. Uses errors.As to handle wrapped errors.
func IsInvariantViolation(err error) bool {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Code == ErrCodeInvariantViolation
	}
	return false
}

// newDegenerateError creates a refusal for target.
func newDegenerateError(target, message string) *TransitionError {
	return &TransitionError{
		Code:    ErrCodeDegenerate,
		Message: message,
		Target:  target,
	}
}

// newInvariantError creates a rollback error carrying the violation list.
func newInvariantError(target string, violations []string) *TransitionError {
	return &TransitionError{
		Code:       ErrCodeInvariantViolation,
		Message:    "post-transition invariant check failed, mesh rolled back",
		Target:     target,
		Violations: violations,
	}
}
