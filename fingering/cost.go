package fingering

import "math"

// noteCost is the per-note cost C_note(state), paid once the state is
// chosen.
func noteCost(p Params, s State) float64 {
	if s.Finger == 0 && s.Stop == 0 {
		return p.OpenStringNoteCost
	}

	a := float64(s.Anchor)
	cost := a*p.AnchorLinearCost + a*a*p.AnchorQuadraticCost
	cost += float64(s.Stop) * p.StopCostPerSemitone
	cost += p.FingerBaseCost[s.Finger]

	delta := s.Stop - s.Anchor
	if pref, ok := p.PreferredFingerByDelta[delta]; ok {
		if s.Finger == pref {
			cost += p.PreferredFingerBonus
		} else {
			cost += p.NonpreferredFingerPenalty
		}
	}

	return cost
}

// transitionCost is C_trans(prev_key, cur_state, rest_after_prev_beats),
// paid when moving between consecutive notes. next* are the
// already-computed history fields for cur (see historyUpdate) — passed
// in rather than recomputed so the caller's single pass over candidates
// stays authoritative about the next key.
func transitionCost(p Params, secPerBeat float64, prevKey dpKey, cur State, restAfterPrevBeats float64) (cost float64, feasible bool) {
	prev := prevKey.state

	anchorShift := abs(cur.Anchor - prev.Anchor)
	stringCross := abs(cur.StringIdx - prev.StringIdx)

	// --- feasibility hook, inert unless EnforceTimingFeasibility ---
	speed := p.ShiftSpeedSemitonesPerSec
	if prev.Finger == 0 && prev.Stop == 0 {
		speed *= p.OpenStringShiftSpeedMultiplier
	}
	if restAfterPrevBeats > 0 {
		speed *= p.RestShiftSpeedMultiplier
	}

	var crossTime float64
	if stringCross <= 1 {
		crossTime = float64(stringCross) * p.AdjacentStringCrossTimeSec
	} else {
		crossTime = p.AdjacentStringCrossTimeSec + float64(stringCross-1)*p.SkipStringCrossTimeSec
	}

	requiredSec := float64(anchorShift)/math.Max(speed, 1e-6) + crossTime
	if p.EnforceTimingFeasibility && requiredSec > defaultAvailSec+p.TimeSlackSec {
		return 0, false
	}

	restSec := restAfterPrevBeats * secPerBeat
	shiftMult := 1.0
	if restSec >= p.LongRestThresholdSec {
		shiftMult = p.LongRestShiftMultiplier
	}

	// 1. String crossing. Zero-cross (same string) is a no-op.
	switch {
	case stringCross == 0:
	case stringCross == 1:
		cost += p.AdjacentStringCrossCost
	default:
		cost += float64(stringCross-1) * p.SkipStringCrossCost
	}

	// 2. Shape change with anchor held.
	if cur.Anchor == prev.Anchor && cur.Shape != prev.Shape {
		dist := abs(cur.Shape.O2-prev.Shape.O2) + abs(cur.Shape.O3-prev.Shape.O3) + abs(cur.Shape.O4-prev.Shape.O4)
		cost += float64(dist) * p.ShapeChangeCostPerSemitone
	}

	// 3. Per-finger retarget.
	if cur.Anchor == prev.Anchor && cur.Finger >= 2 && cur.Finger <= 4 {
		curOffset := cur.Shape.offsetForFinger(cur.Finger)
		prevLast := prevKey.lastOffsetForFinger(cur.Finger)
		if prevLast != noLastOffset && prevLast != curOffset {
			cost += float64(abs(prevLast-curOffset)) * p.UsedFingerRetargetCostPerSemitone
		}
	}

	// 4. Finger change / repetition.
	switch {
	case prev.Finger != 0 && prev.Finger == cur.Finger && prev.PitchMIDI != cur.PitchMIDI:
		samePlaceCrossString := prev.StringIdx != cur.StringIdx &&
			prev.Anchor == cur.Anchor && prev.Shape == cur.Shape && prev.Stop == cur.Stop
		if samePlaceCrossString {
			cost += p.SameFingerRepeatCrossStringSamePlacePenalty
		} else {
			cost += p.SameFingerRepeatPenalty
		}
	case prev.Finger != cur.Finger && prev.Finger != 0 && cur.Finger != 0:
		cost += p.FingerChangeCost
	}

	// 5. Anchor shift.
	if anchorShift > 0 {
		if !prevKey.settled {
			cost += p.UnsettledShiftPenalty
		} else {
			cost += p.SettledShiftBonus
		}

		eventCost := p.ShiftEventCost * shiftMult
		if shiftMult < 1.0 {
			eventCost = math.Max(eventCost, p.MinShiftEventCostAfterLongRest)
		}
		cost += eventCost
		cost += float64(anchorShift) * p.ShiftCostPerSemitone * shiftMult
	}

	return cost, true
}

// lastOffsetForFinger returns the key's last-used offset for finger 2, 3
// or 4; callers only invoke this for those fingers.
func (k dpKey) lastOffsetForFinger(finger int) int {
	switch finger {
	case 2:
		return k.lastO2
	case 3:
		return k.lastO3
	case 4:
		return k.lastO4
	default:
		return noLastOffset
	}
}

// historyUpdate derives the next key's history bits from prevKey and the
// chosen cur state.
func historyUpdate(prevKey dpKey, cur State) (settled bool, lastO2, lastO3, lastO4 int) {
	anchorChanged := cur.Anchor != prevKey.state.Anchor

	if anchorChanged {
		settled = cur.isAnchorNote()
		lastO2, lastO3, lastO4 = noLastOffset, noLastOffset, noLastOffset
	} else {
		settled = prevKey.settled || cur.isAnchorNote()
		lastO2, lastO3, lastO4 = prevKey.lastO2, prevKey.lastO3, prevKey.lastO4
	}

	switch cur.Finger {
	case 2:
		lastO2 = cur.Shape.O2
	case 3:
		lastO3 = cur.Shape.O3
	case 4:
		lastO4 = cur.Shape.O4
	}

	return settled, lastO2, lastO3, lastO4
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
