package fingering

// shapesFor builds the hand-shape catalogue as the Cartesian product of
// the three configured offset tuples.
func shapesFor(p Params) []HandShape {
	shapes := make([]HandShape, 0, len(p.Finger2Offsets)*len(p.Finger3Offsets)*len(p.Finger4Offsets))
	for _, o2 := range p.Finger2Offsets {
		for _, o3 := range p.Finger3Offsets {
			for _, o4 := range p.Finger4Offsets {
				shapes = append(shapes, HandShape{O2: o2, O3: o3, O4: o4})
			}
		}
	}
	return shapes
}

// statesForPitch enumerates every playable state for a target MIDI pitch
// across all strings and shapes, deduplicated by (string, anchor, shape,
// finger).
func statesForPitch(p Params, shapes []HandShape, pitchMIDI int) []State {
	var states []State
	seen := make(map[stateKey]struct{})

	add := func(s State) {
		k := s.key()
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		states = append(states, s)
	}

	openMIDI := p.Tuning.OpenMIDI()
	for stringIdx, open := range openMIDI {
		stop := pitchMIDI - open
		if stop < 0 || stop > p.MaxStopSemitones {
			continue
		}

		if stop == 0 {
			// Open string: offered once per (shape, anchor) combination —
			// cost is anchor-independent, but later transitions need the
			// anchor's identity.
			for _, shape := range shapes {
				for anchor := 0; anchor <= p.MaxAnchor; anchor++ {
					add(State{
						StringIdx: stringIdx,
						Anchor:    anchor,
						Shape:     shape,
						Finger:    0,
						Stop:      stop,
						PitchMIDI: pitchMIDI,
					})
				}
			}
			continue
		}

		for _, shape := range shapes {
			// finger 1: anchor == stop
			if anchor := stop; anchor >= 1 && anchor <= p.MaxAnchor {
				add(State{StringIdx: stringIdx, Anchor: anchor, Shape: shape, Finger: 1, Stop: stop, PitchMIDI: pitchMIDI})
			}
			// fingers 2..4: anchor = stop - offset
			for finger := 2; finger <= 4; finger++ {
				anchor := stop - shape.offsetForFinger(finger)
				if anchor >= 1 && anchor <= p.MaxAnchor {
					add(State{StringIdx: stringIdx, Anchor: anchor, Shape: shape, Finger: finger, Stop: stop, PitchMIDI: pitchMIDI})
				}
			}
		}
	}

	return states
}
