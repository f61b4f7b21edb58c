package fingering

// layer holds one DP layer's live keys plus deterministic iteration
// order, predecessor links and accumulated cost. Keeping an explicit
// order slice beside the map means accumulation order (and therefore the
// sequence of floating-point additions) is insertion order, not Go's
// randomized map order — required for byte-identical total cost across
// runs.
type layer struct {
	order []dpKey
	cost  map[dpKey]float64
	prev  map[dpKey]*dpKey
}

func newLayer() *layer {
	return &layer{
		cost: make(map[dpKey]float64),
		prev: make(map[dpKey]*dpKey),
	}
}

// relax updates k's best cost if candidate improves on it, preserving the
// existing predecessor on ties (stable), and recording first-seen order.
func (l *layer) relax(k dpKey, candidate float64, from *dpKey) {
	best, seen := l.cost[k]
	if !seen {
		l.order = append(l.order, k)
		l.cost[k] = candidate
		l.prev[k] = from
		return
	}
	if candidate < best {
		l.cost[k] = candidate
		l.prev[k] = from
	}
}

// Result is the solver's output: the path of chosen states plus the
// total aggregate cost.
type Result struct {
	TotalCost float64
	Notes     []NoteRecord
	States    []State
	History   []historyBits
}

// historyBits carries the DP history fields attached to each assigned
// note in the output.
type historyBits struct {
	Settled                bool
	LastO2, LastO3, LastO4 int
}

// solveNotes runs the layered DP search over normalized note records
// and returns the minimum-cost path.
func solveNotes(p Params, notes []NoteRecord) (*Result, error) {
	shapes := shapesFor(p)
	secPerBeat := 60.0 / p.BPM

	statesPerNote := make([][]State, len(notes))
	for i, n := range notes {
		sts := statesForPitch(p, shapes, n.PitchMIDI)
		if len(sts) == 0 {
			return nil, wrapNoPlayableState(n.PitchMIDI, i)
		}
		statesPerNote[i] = sts
	}

	layers := make([]*layer, len(notes))

	// Layer 0 initialization.
	l0 := newLayer()
	for _, s := range statesPerNote[0] {
		settled := s.isAnchorNote()
		lastO2, lastO3, lastO4 := noLastOffset, noLastOffset, noLastOffset
		switch s.Finger {
		case 2:
			lastO2 = s.Shape.O2
		case 3:
			lastO3 = s.Shape.O3
		case 4:
			lastO4 = s.Shape.O4
		}
		k := dpKey{state: s, settled: settled, lastO2: lastO2, lastO3: lastO3, lastO4: lastO4}
		l0.relax(k, noteCost(p, s), nil)
	}
	layers[0] = l0

	// Relaxation over subsequent layers.
	for i := 1; i < len(notes); i++ {
		restAfterPrev := notes[i-1].RestAfterBeats
		cur := newLayer()
		prevLayer := layers[i-1]

		for _, prevK := range prevLayer.order {
			prevCost := prevLayer.cost[prevK]

			for _, curState := range statesPerNote[i] {
				settled, lo2, lo3, lo4 := historyUpdate(prevK, curState)

				tcost, feasible := transitionCost(p, secPerBeat, prevK, curState, restAfterPrev)
				if !feasible {
					continue
				}

				total := prevCost + tcost + noteCost(p, curState)
				curKey := dpKey{state: curState, settled: settled, lastO2: lo2, lastO3: lo3, lastO4: lo4}
				from := prevK
				cur.relax(curKey, total, &from)
			}
		}

		layers[i] = cur
	}

	last := layers[len(layers)-1]
	if len(last.order) == 0 {
		return nil, ErrNoFeasiblePath
	}

	var bestKey dpKey
	bestCost := 0.0
	first := true
	for _, k := range last.order {
		c := last.cost[k]
		if first || c < bestCost {
			bestKey, bestCost, first = k, c, false
		}
	}

	// Reconstruct path by walking predecessors backward.
	path := make([]dpKey, len(notes))
	k := bestKey
	for i := len(notes) - 1; i >= 0; i-- {
		path[i] = k
		prev := layers[i].prev[k]
		if prev == nil {
			break
		}
		k = *prev
	}

	states := make([]State, len(path))
	history := make([]historyBits, len(path))
	for i, pk := range path {
		states[i] = pk.state
		history[i] = historyBits{Settled: pk.settled, LastO2: pk.lastO2, LastO3: pk.lastO3, LastO4: pk.lastO4}
	}

	return &Result{
		TotalCost: bestCost,
		Notes:     notes,
		States:    states,
		History:   history,
	}, nil
}
