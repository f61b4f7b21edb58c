package theory

// StringTuning names one open string and its MIDI pitch.
type StringTuning struct {
	Name     string
	OpenMIDI int
}

// Tuning is an ordered set of open strings, low to high.
type Tuning struct {
	Name    string
	Strings []StringTuning
}

// OpenMIDI returns the open-string MIDI notes in string-index order.
func (t Tuning) OpenMIDI() []int {
	midis := make([]int, len(t.Strings))
	for i, s := range t.Strings {
		midis[i] = s.OpenMIDI
	}
	return midis
}

// StringName returns the display name of a string index, or "" if out of
// range.
func (t Tuning) StringName(idx int) string {
	if idx < 0 || idx >= len(t.Strings) {
		return ""
	}
	return t.Strings[idx].Name
}

// Standard is the ordinary violin tuning: G3, D4, A4, E5 (MIDI 55/62/69/76).
var Standard = Tuning{
	Name: "standard",
	Strings: []StringTuning{
		{Name: "G", OpenMIDI: 55},
		{Name: "D", OpenMIDI: 62},
		{Name: "A", OpenMIDI: 69},
		{Name: "E", OpenMIDI: 76},
	},
}

// Baroque is a low-pitched historical tuning, a whole tone below standard,
// offered as a second built-in option for the score config's tuning knob.
var Baroque = Tuning{
	Name: "baroque",
	Strings: []StringTuning{
		{Name: "F", OpenMIDI: 53},
		{Name: "C", OpenMIDI: 60},
		{Name: "G", OpenMIDI: 67},
		{Name: "D", OpenMIDI: 74},
	},
}

// Tunings is the catalogue of built-in tunings, keyed by name.
var Tunings = map[string]Tuning{
	Standard.Name: Standard,
	Baroque.Name:  Baroque,
}

// TuningNames lists built-in tuning names in a stable display order.
var TuningNames = []string{Standard.Name, Baroque.Name}

// GetTuning looks up a tuning by name, falling back to Standard for an
// unknown or empty name.
func GetTuning(name string) Tuning {
	if t, ok := Tunings[name]; ok {
		return t
	}
	return Standard
}
