package fingering

import (
	"errors"
	"fmt"

	"violin-fingering/theory"
)

// ErrInvalidNote is returned when an event's pitch name cannot be parsed.
var ErrInvalidNote = theory.ErrInvalidNote

// ErrUnknownEventType is returned when an input event's type is neither
// "N" nor "R".
var ErrUnknownEventType = errors.New("unknown event type")

// ErrNoPlayableState is returned when a note's pitch admits no state
// satisfying the configured range bounds. Recoverable by widening
// MaxStopSemitones, MaxAnchor, or the shape catalogue.
var ErrNoPlayableState = errors.New("no playable state for pitch")

// ErrNoFeasiblePath is returned when the DP search terminates with an
// empty layer. Under the default configuration (no hard feasibility
// rejection) this can only happen if an earlier stage produced no
// candidates at all.
var ErrNoFeasiblePath = errors.New("no feasible fingering path")

func wrapUnknownEventType(value string, index int) error {
	return fmt.Errorf("%w: %q at event %d", ErrUnknownEventType, value, index)
}

func wrapNoPlayableState(pitchMIDI, index int) error {
	return fmt.Errorf("%w: midi=%d at note %d", ErrNoPlayableState, pitchMIDI, index)
}

// errBPMRequired flags a missing BPM in Params; bpm is required to
// convert beats to seconds for the long-rest shift discount.
var errBPMRequired = errors.New("fingering: bpm is required")
