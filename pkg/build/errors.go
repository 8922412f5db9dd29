package build

import (
	"errors"
	"fmt"
)

// Build-structure errors. All of these are fatal and returned
// synchronously out of the build call that detected them; nothing is
// recovered through boundary chains.
var (
	// ErrTagMismatch reports a hydration node whose kind or tag does
	// not match the blueprint.
	ErrTagMismatch = errors.New("build: hydration tag mismatch")

	// ErrInsufficientNodes reports a hydration subtree with fewer
	// platform children than the blueprint expects.
	ErrInsufficientNodes = errors.New("build: insufficient nodes")

	// ErrExcessiveNodes reports a hydration subtree with more platform
	// children than the blueprint expects.
	ErrExcessiveNodes = errors.New("build: excessive nodes")

	// ErrDuplicateKey reports a key repeated within one list update.
	ErrDuplicateKey = errors.New("build: duplicate list key")

	// ErrDoubleObserve reports a second physical build of an observing
	// blueprint. Clone the blueprint to build it again.
	ErrDoubleObserve = errors.New("build: observing blueprint already built")

	// ErrLifecycle reports a lifecycle registration outside the owning
	// component's construction.
	ErrLifecycle = errors.New("build: lifecycle registration outside construction")

	// ErrNilBlueprint reports a nil blueprint handed to the builder.
	ErrNilBlueprint = errors.New("build: nil blueprint")
)

// asError normalizes a recovered panic value.
func asError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	default:
		return fmt.Errorf("panic: %v", v)
	}
}
