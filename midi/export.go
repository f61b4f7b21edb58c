// Package midi renders a solved fingering into a Standard MIDI File, so
// the assigned fingering can be previewed as audio by any general MIDI
// player. It performs no chord voicing, drum, or bass synthesis — only
// the single melodic line the solver produced.
package midi

import (
	"fmt"
	"io"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"violin-fingering/fingering"
)

// ticksPerQuarter is a standard 480-tick quarter-note resolution.
const ticksPerQuarter = 480

// smfEvent is a MIDI message at an absolute tick, collected before being
// converted to the delta-time form smf.Track.Add expects.
type smfEvent struct {
	tick    uint32
	message gomidi.Message
}

// WriteSMF renders a solved Output as a one-track Standard MIDI File to
// w. Channel 0, program 40 (violin, General MIDI). Grounded on
// midi.GenerateFromTrack's tempo-meta-then-NoteOn/NoteOff pattern.
func WriteSMF(w io.Writer, out fingering.Output, bpm float64) error {
	if bpm <= 0 {
		return fmt.Errorf("midi: bpm must be positive")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var meta smf.Track
	meta.Add(0, smf.MetaTempo(bpm))
	meta.Close(0)
	s.Add(meta)

	var notes smf.Track
	notes.Add(0, gomidi.ProgramChange(0, 40))

	var events []smfEvent
	tick := uint32(0)
	for _, ev := range out.Events {
		beatTicks := uint32(ev.DurationBeats * ticksPerQuarter)
		if ev.Type == "N" {
			note := uint8(ev.PitchMIDI)
			velocity := uint8(80)
			events = append(events, smfEvent{tick, gomidi.NoteOn(0, note, velocity)})
			// Leave a short gap before NoteOff so consecutive same-pitch
			// notes are audibly distinct.
			off := tick + beatTicks
			if off > tick {
				off--
			}
			events = append(events, smfEvent{off, gomidi.NoteOff(0, note)})
		}
		tick += beatTicks
	}

	prevTick := uint32(0)
	for _, ev := range events {
		delta := ev.tick - prevTick
		notes.Add(delta, ev.message)
		prevTick = ev.tick
	}
	notes.Close(0)
	s.Add(notes)

	_, err := s.WriteTo(w)
	if err != nil {
		return fmt.Errorf("midi: writing SMF: %w", err)
	}
	return nil
}
