package fingering

import (
	"strings"

	"violin-fingering/theory"
)

// normalizeEvents merges each sounded note with the run of rests that
// follows it into a NoteRecord. Rests preceding the first note
// are not attached to any note — the caller's original event slice still
// carries them for the output shaper.
func normalizeEvents(events []Event) ([]NoteRecord, error) {
	var notes []NoteRecord

	i := 0
	for i < len(events) {
		ev := events[i]
		typ := strings.ToUpper(ev.Type)

		switch typ {
		case "N":
			midi, err := theory.NoteToMIDI(ev.Note)
			if err != nil {
				return nil, err
			}

			restAfter := 0.0
			j := i + 1
			for j < len(events) && strings.ToUpper(events[j].Type) == "R" {
				restAfter += events[j].Beats
				j++
			}

			notes = append(notes, NoteRecord{
				EventIndex:     i,
				NoteName:       ev.Note,
				PitchMIDI:      midi,
				DurationBeats:  ev.Beats,
				RestAfterBeats: restAfter,
				GapBeats:       ev.Beats + restAfter,
			})
			i = j

		case "R":
			i++

		default:
			return nil, wrapUnknownEventType(ev.Type, i)
		}
	}

	return notes, nil
}
