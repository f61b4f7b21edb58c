// Package theory handles pitch-name parsing and string-tuning data shared
// by the fingering solver, the score loader and the MIDI exporter.
package theory

import (
	"fmt"
	"strings"
)

// noteBase maps a natural-note letter to its semitone offset within an
// octave (C=0 .. B=11).
var noteBase = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// NoteToMIDI parses a pitch name such as "A4", "C#5", "Bb3" or "F♯3" into
// its MIDI note number. Octave numbering follows the usual convention
// where MIDI 60 is C4.
//
// Accepts letters A-G (case-insensitive), any number of sharp/flat
// accidentals (#, b, ♯, ♭, mixable and stackable for double accidentals),
// followed by a signed octave integer.
func NoteToMIDI(note string) (int, error) {
	s := strings.TrimSpace(note)
	s = strings.NewReplacer("♯", "#", "♭", "b").Replace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
	}

	letter := byte(strings.ToUpper(s[:1])[0])
	base, ok := noteBase[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
	}

	i := 1
	accidental := 0
	for i < len(s) && (s[i] == '#' || s[i] == 'b') {
		if s[i] == '#' {
			accidental++
		} else {
			accidental--
		}
		i++
	}

	if i >= len(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
	}
	octave, err := parseSignedInt(s[i:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
	}

	semitone := ((base+accidental)%12 + 12) % 12
	return 12*(octave+1) + semitone, nil
}

// parseSignedInt parses a (possibly signed) decimal integer without
// pulling in strconv's broader float/base handling, matching the narrow
// grammar of an octave suffix.
func parseSignedInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty octave")
	}
	neg := false
	i := 0
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		i++
	}
	if i >= len(s) {
		return 0, fmt.Errorf("empty octave")
	}
	n := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-digit octave %q", s)
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

// sharpNames are used to render a MIDI pitch class back to a display name.
var sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// MIDIToNoteName renders a MIDI note number back to a sharp-spelled pitch
// name, e.g. 69 -> "A4".
func MIDIToNoteName(midi int) string {
	pc := ((midi % 12) + 12) % 12
	octave := midi/12 - 1
	return fmt.Sprintf("%s%d", sharpNames[pc], octave)
}
