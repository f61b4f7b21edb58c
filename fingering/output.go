package fingering

import "encoding/json"

// FingeringItem is one item of the flattened, render-ready output
// sequence: either a rest or a fully-assigned note.
type FingeringItem struct {
	Type string // "R" or "N"

	// Rest fields.
	DurationBeats float64

	// Note fields (Type == "N").
	Note                  string
	PitchMIDI             int
	String                string
	StringIndex           int
	Finger                int
	StopSemitones         int
	AnchorSemitones       int
	O2, O3, O4            int
	DeltaStopMinusAnchor  int
	SettledSinceLastShift bool
	LastO2Used            int
	LastO3Used            int
	LastO4Used            int
}

// restItemJSON and noteItemJSON are the two wire shapes a FingeringItem
// can take on: a rest carries only its duration, a note carries the full
// assigned fingering. MarshalJSON picks between them so a rest never
// serializes the zero-valued note fields alongside it.
type restItemJSON struct {
	Type          string  `json:"type"`
	DurationBeats float64 `json:"duration_beats"`
}

type noteItemJSON struct {
	Type                  string  `json:"type"`
	Note                  string  `json:"note"`
	PitchMIDI             int     `json:"pitch_midi"`
	DurationBeats         float64 `json:"duration_beats"`
	String                string  `json:"string"`
	StringIndex           int     `json:"string_index"`
	Finger                int     `json:"finger"`
	StopSemitones         int     `json:"stop_semitones"`
	AnchorSemitones       int     `json:"anchor_semitones"`
	O2                    int     `json:"o2"`
	O3                    int     `json:"o3"`
	O4                    int     `json:"o4"`
	DeltaStopMinusAnchor  int     `json:"delta_stop_minus_anchor"`
	SettledSinceLastShift bool    `json:"settled_since_last_shift"`
	LastO2Used            int     `json:"last_o2_used"`
	LastO3Used            int     `json:"last_o3_used"`
	LastO4Used            int     `json:"last_o4_used"`
}

// MarshalJSON emits the rest-only shape for Type == "R" and the full note
// shape otherwise.
func (f FingeringItem) MarshalJSON() ([]byte, error) {
	if f.Type == "R" {
		return json.Marshal(restItemJSON{Type: "R", DurationBeats: f.DurationBeats})
	}
	return json.Marshal(noteItemJSON{
		Type:                  f.Type,
		Note:                  f.Note,
		PitchMIDI:             f.PitchMIDI,
		DurationBeats:         f.DurationBeats,
		String:                f.String,
		StringIndex:           f.StringIndex,
		Finger:                f.Finger,
		StopSemitones:         f.StopSemitones,
		AnchorSemitones:       f.AnchorSemitones,
		O2:                    f.O2,
		O3:                    f.O3,
		O4:                    f.O4,
		DeltaStopMinusAnchor:  f.DeltaStopMinusAnchor,
		SettledSinceLastShift: f.SettledSinceLastShift,
		LastO2Used:            f.LastO2Used,
		LastO3Used:            f.LastO3Used,
		LastO4Used:            f.LastO4Used,
	})
}

// Output is the solver's top-level result.
type Output struct {
	TotalCost float64         `json:"total_cost"`
	Events    []FingeringItem `json:"events"`
}

// shapeOutput re-interleaves rests and assigned note states back into the
// flat, original event order.
func shapeOutput(p Params, events []Event, res *Result) Output {
	noteIdxByEventIdx := make(map[int]int, len(res.Notes))
	for i, n := range res.Notes {
		noteIdxByEventIdx[n.EventIndex] = i
	}

	items := make([]FingeringItem, 0, len(events))
	for evIdx, ev := range events {
		if ev.Type == "R" {
			items = append(items, FingeringItem{Type: "R", DurationBeats: ev.Beats})
			continue
		}

		noteIdx := noteIdxByEventIdx[evIdx]
		n := res.Notes[noteIdx]
		st := res.States[noteIdx]
		h := res.History[noteIdx]

		items = append(items, FingeringItem{
			Type:                  "N",
			Note:                  n.NoteName,
			PitchMIDI:             n.PitchMIDI,
			DurationBeats:         n.DurationBeats,
			String:                p.Tuning.StringName(st.StringIdx),
			StringIndex:           st.StringIdx,
			Finger:                st.Finger,
			StopSemitones:         st.Stop,
			AnchorSemitones:       st.Anchor,
			O2:                    st.Shape.O2,
			O3:                    st.Shape.O3,
			O4:                    st.Shape.O4,
			DeltaStopMinusAnchor:  st.Stop - st.Anchor,
			SettledSinceLastShift: h.Settled,
			LastO2Used:            h.LastO2,
			LastO3Used:            h.LastO3,
			LastO4Used:            h.LastO4,
		})
	}

	return Output{TotalCost: res.TotalCost, Events: items}
}

// Solve runs the full pipeline — normalize, enumerate, search, shape —
// over an input event sequence. BPM must be set on p (or
// via a value obtained from DefaultParams).
func Solve(p Params, events []Event) (Output, error) {
	if p.BPM <= 0 {
		return Output{}, errBPMRequired
	}
	p = p.normalized()

	notes, err := normalizeEvents(events)
	if err != nil {
		return Output{}, err
	}
	if len(notes) == 0 {
		return Output{TotalCost: 0, Events: shapeOutput(p, events, &Result{})}, nil
	}

	res, err := solveNotes(p, notes)
	if err != nil {
		return Output{}, err
	}

	return shapeOutput(p, events, res), nil
}
