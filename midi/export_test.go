package midi

import (
	"bytes"
	"testing"

	"violin-fingering/fingering"
)

func TestWriteSMFProducesBytes(t *testing.T) {
	out := fingering.Output{
		TotalCost: 0.1,
		Events: []fingering.FingeringItem{
			{Type: "N", PitchMIDI: 69, DurationBeats: 1},
			{Type: "R", DurationBeats: 0.5},
			{Type: "N", PitchMIDI: 71, DurationBeats: 1},
		},
	}

	var buf bytes.Buffer
	if err := WriteSMF(&buf, out, 80); err != nil {
		t.Fatalf("WriteSMF: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty SMF output")
	}
	// MThd is the Standard MIDI File header chunk ID.
	if !bytes.HasPrefix(buf.Bytes(), []byte("MThd")) {
		t.Fatalf("expected MThd header, got %x", buf.Bytes()[:4])
	}
}

func TestWriteSMFRejectsNonPositiveBPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSMF(&buf, fingering.Output{}, 0); err == nil {
		t.Fatalf("expected error for zero bpm")
	}
}
