// Package score loads a YAML score document into the event sequence the
// fingering solver consumes. It is the only file-format-aware layer in
// the repository; the solver itself never touches YAML.
package score

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"violin-fingering/fingering"
	"violin-fingering/theory"
)

// Piece carries the score's title, tempo and tuning choice.
type Piece struct {
	Title  string  `yaml:"title"`
	BPM    float64 `yaml:"bpm"`
	Tuning string  `yaml:"tuning,omitempty"`
}

// Config binds 1:1 onto fingering.Params: every knob a score may override
// is a pointer here so "absent" (nil) is distinguishable from "explicitly
// set to zero," and only set fields are applied over fingering.DefaultParams.
type Config struct {
	MaxStopSemitones *int `yaml:"max_stop_semitones,omitempty"`
	MaxAnchor        *int `yaml:"max_anchor,omitempty"`

	OpenStringNoteCost *float64 `yaml:"open_string_note_cost,omitempty"`

	AnchorLinearCost    *float64 `yaml:"anchor_linear_cost,omitempty"`
	AnchorQuadraticCost *float64 `yaml:"anchor_quadratic_cost,omitempty"`
	StopCostPerSemitone *float64 `yaml:"stop_cost_per_semitone,omitempty"`

	PreferredFingerBonus      *float64 `yaml:"preferred_finger_bonus,omitempty"`
	NonpreferredFingerPenalty *float64 `yaml:"nonpreferred_finger_penalty,omitempty"`

	AdjacentStringCrossCost *float64 `yaml:"adjacent_string_cross_cost,omitempty"`
	SkipStringCrossCost     *float64 `yaml:"skip_string_cross_cost,omitempty"`

	ShapeChangeCostPerSemitone        *float64 `yaml:"shape_change_cost_per_semitone,omitempty"`
	UsedFingerRetargetCostPerSemitone *float64 `yaml:"used_finger_retarget_cost_per_semitone,omitempty"`

	FingerChangeCost                             *float64 `yaml:"finger_change_cost,omitempty"`
	SameFingerRepeatPenalty                       *float64 `yaml:"same_finger_repeat_penalty,omitempty"`
	SameFingerRepeatCrossStringSamePlacePenalty *float64 `yaml:"same_finger_repeat_cross_string_same_place_penalty,omitempty"`

	UnsettledShiftPenalty *float64 `yaml:"unsettled_shift_penalty,omitempty"`
	SettledShiftBonus     *float64 `yaml:"settled_shift_bonus,omitempty"`

	ShiftEventCost       *float64 `yaml:"shift_event_cost,omitempty"`
	ShiftCostPerSemitone *float64 `yaml:"shift_cost_per_semitone,omitempty"`

	LongRestThresholdSec           *float64 `yaml:"long_rest_threshold_sec,omitempty"`
	LongRestShiftMultiplier        *float64 `yaml:"long_rest_shift_multiplier,omitempty"`
	MinShiftEventCostAfterLongRest *float64 `yaml:"min_shift_event_cost_after_long_rest,omitempty"`

	EnforceTimingFeasibility *bool `yaml:"enforce_timing_feasibility,omitempty"`
}

// Score is a parsed YAML score document.
type Score struct {
	Piece  Piece   `yaml:"piece"`
	Config Config  `yaml:"config,omitempty"`
	Events []Event `yaml:"events"`
}

// Event is one events-list entry. It unmarshals from either YAML form
// accepted by the solver's input schema: a tuple (`["N", 1, "C4"]`)
// or a record (`{type: N, beats: 1, note: C4}`).
type Event fingering.Event

// UnmarshalYAML tries the tuple form first, then the record form,
// mirroring parser.StringOrList's node-type-probing pattern.
func (e *Event) UnmarshalYAML(node *yaml.Node) error {
	var tuple []yaml.Node
	if err := node.Decode(&tuple); err == nil && len(tuple) > 0 {
		var typ string
		if err := tuple[0].Decode(&typ); err != nil {
			return fmt.Errorf("score: event type: %w", err)
		}
		e.Type = strings.ToUpper(typ)

		if len(tuple) > 1 {
			if err := tuple[1].Decode(&e.Beats); err != nil {
				return fmt.Errorf("score: event beats: %w", err)
			}
		}
		if e.Type == "N" {
			if len(tuple) < 3 {
				return fmt.Errorf("score: note event missing pitch name")
			}
			if err := tuple[2].Decode(&e.Note); err != nil {
				return fmt.Errorf("score: event note: %w", err)
			}
		}
		return nil
	}

	var rec eventRecord
	if err := node.Decode(&rec); err != nil {
		return fmt.Errorf("score: malformed event: %w", err)
	}
	e.Type = strings.ToUpper(rec.Type)
	e.Beats = rec.Beats
	e.Note = rec.Note
	return nil
}

// eventRecord is the record form of one events entry.
type eventRecord struct {
	Type  string  `yaml:"type"`
	Beats float64 `yaml:"beats"`
	Note  string  `yaml:"note,omitempty"`
}

// Load reads and parses a YAML score file.
func Load(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("score: reading %s: %w", path, err)
	}

	var s Score
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("score: parsing %s: %w", path, err)
	}
	if s.Piece.BPM == 0 {
		s.Piece.BPM = 80
	}
	return &s, nil
}

// FingeringEvents converts the score's events into the solver's input
// type.
func (s *Score) FingeringEvents() []fingering.Event {
	out := make([]fingering.Event, len(s.Events))
	for i, e := range s.Events {
		out[i] = fingering.Event(e)
	}
	return out
}

// Params builds fingering.Params for this score, applying BPM, tuning
// and any config overrides on top of fingering.DefaultParams.
func (s *Score) Params() fingering.Params {
	p := fingering.DefaultParams(s.Piece.BPM)
	p.Tuning = theory.GetTuning(s.Piece.Tuning)

	c := s.Config
	if c.MaxStopSemitones != nil {
		p.MaxStopSemitones = *c.MaxStopSemitones
	}
	if c.MaxAnchor != nil {
		p.MaxAnchor = *c.MaxAnchor
	}
	if c.OpenStringNoteCost != nil {
		p.OpenStringNoteCost = *c.OpenStringNoteCost
	}
	if c.AnchorLinearCost != nil {
		p.AnchorLinearCost = *c.AnchorLinearCost
	}
	if c.AnchorQuadraticCost != nil {
		p.AnchorQuadraticCost = *c.AnchorQuadraticCost
	}
	if c.StopCostPerSemitone != nil {
		p.StopCostPerSemitone = *c.StopCostPerSemitone
	}
	if c.PreferredFingerBonus != nil {
		p.PreferredFingerBonus = *c.PreferredFingerBonus
	}
	if c.NonpreferredFingerPenalty != nil {
		p.NonpreferredFingerPenalty = *c.NonpreferredFingerPenalty
	}
	if c.AdjacentStringCrossCost != nil {
		p.AdjacentStringCrossCost = *c.AdjacentStringCrossCost
	}
	if c.SkipStringCrossCost != nil {
		p.SkipStringCrossCost = *c.SkipStringCrossCost
	}
	if c.ShapeChangeCostPerSemitone != nil {
		p.ShapeChangeCostPerSemitone = *c.ShapeChangeCostPerSemitone
	}
	if c.UsedFingerRetargetCostPerSemitone != nil {
		p.UsedFingerRetargetCostPerSemitone = *c.UsedFingerRetargetCostPerSemitone
	}
	if c.FingerChangeCost != nil {
		p.FingerChangeCost = *c.FingerChangeCost
	}
	if c.SameFingerRepeatPenalty != nil {
		p.SameFingerRepeatPenalty = *c.SameFingerRepeatPenalty
	}
	if c.SameFingerRepeatCrossStringSamePlacePenalty != nil {
		p.SameFingerRepeatCrossStringSamePlacePenalty = *c.SameFingerRepeatCrossStringSamePlacePenalty
	}
	if c.UnsettledShiftPenalty != nil {
		p.UnsettledShiftPenalty = *c.UnsettledShiftPenalty
	}
	if c.SettledShiftBonus != nil {
		p.SettledShiftBonus = *c.SettledShiftBonus
	}
	if c.ShiftEventCost != nil {
		p.ShiftEventCost = *c.ShiftEventCost
	}
	if c.ShiftCostPerSemitone != nil {
		p.ShiftCostPerSemitone = *c.ShiftCostPerSemitone
	}
	if c.LongRestThresholdSec != nil {
		p.LongRestThresholdSec = *c.LongRestThresholdSec
	}
	if c.LongRestShiftMultiplier != nil {
		p.LongRestShiftMultiplier = *c.LongRestShiftMultiplier
	}
	if c.MinShiftEventCostAfterLongRest != nil {
		p.MinShiftEventCostAfterLongRest = *c.MinShiftEventCostAfterLongRest
	}
	if c.EnforceTimingFeasibility != nil {
		p.EnforceTimingFeasibility = *c.EnforceTimingFeasibility
	}
	return p
}
