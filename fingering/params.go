package fingering

import "violin-fingering/theory"

// Params is the solver's configuration surface: tuning bounds, the shape
// catalogue, the cost-model coefficients, and the timing-feasibility
// knobs.
type Params struct {
	// BPM converts beats to seconds for the long-rest shift discount.
	// Required; the zero value disables conversion and is treated as an
	// error by Solve.
	BPM float64

	// Tuning is the open-string layout. Zero value falls back to
	// theory.Standard.
	Tuning theory.Tuning

	MaxStopSemitones int
	MaxAnchor        int

	Finger2Offsets []int
	Finger3Offsets []int
	Finger4Offsets []int

	// --- Cost model ---

	OpenStringNoteCost float64

	AnchorLinearCost    float64
	AnchorQuadraticCost float64
	StopCostPerSemitone float64

	FingerBaseCost [5]float64

	PreferredFingerByDelta map[int]int
	PreferredFingerBonus   float64
	NonpreferredFingerPenalty float64

	AdjacentStringCrossCost float64
	SkipStringCrossCost     float64

	ShapeChangeCostPerSemitone float64

	UsedFingerRetargetCostPerSemitone float64

	FingerChangeCost                             float64
	SameFingerRepeatPenalty                       float64
	SameFingerRepeatCrossStringSamePlacePenalty float64

	UnsettledShiftPenalty float64
	SettledShiftBonus     float64

	ShiftEventCost        float64
	ShiftCostPerSemitone  float64

	LongRestThresholdSec               float64
	LongRestShiftMultiplier            float64
	MinShiftEventCostAfterLongRest float64

	// --- Feasibility hook (inert unless EnforceTimingFeasibility) ---

	ShiftSpeedSemitonesPerSec       float64
	AdjacentStringCrossTimeSec      float64
	SkipStringCrossTimeSec          float64
	TimeSlackSec                    float64
	OpenStringShiftSpeedMultiplier float64
	RestShiftSpeedMultiplier        float64

	// EnforceTimingFeasibility turns on the required_sec > avail_sec
	// rejection. Off by default, matching the original (inert) behavior;
	// the available-time budget used when on is a generous constant,
	// since no upstream tempo-tracking is modeled.
	EnforceTimingFeasibility bool
}

// defaultAvailSec is the constant feasibility-check time budget per note
// gap, used only when EnforceTimingFeasibility is on. It is not computed
// from the score; it is simply generous enough to never bind under
// default costs.
const defaultAvailSec = 100.0

// DefaultParams returns the default configuration for the given tempo.
func DefaultParams(bpm float64) Params {
	return Params{
		BPM:              bpm,
		Tuning:           theory.Standard,
		MaxStopSemitones: 29,
		MaxAnchor:        29,

		Finger2Offsets: []int{1, 2},
		Finger3Offsets: []int{3, 4},
		Finger4Offsets: []int{5, 6},

		OpenStringNoteCost: 0.1,

		AnchorLinearCost:    0,
		AnchorQuadraticCost: 0,
		StopCostPerSemitone: 0.01,

		FingerBaseCost: [5]float64{0, 0, 0.03, 0.06, 0.10},

		PreferredFingerByDelta: map[int]int{
			0: 1, 1: 2, 2: 2, 3: 3, 4: 3, 5: 4, 6: 4, 7: 4,
		},
		PreferredFingerBonus:     -0.20,
		NonpreferredFingerPenalty: 1.00,

		AdjacentStringCrossCost: 0.2,
		SkipStringCrossCost:     1.0,

		ShapeChangeCostPerSemitone: 0.2,

		UsedFingerRetargetCostPerSemitone: 0.12,

		FingerChangeCost:                             0.08,
		SameFingerRepeatPenalty:                       0.5,
		SameFingerRepeatCrossStringSamePlacePenalty: 0.1,

		UnsettledShiftPenalty: 0.35,
		SettledShiftBonus:     0.0,

		ShiftEventCost:       0.30,
		ShiftCostPerSemitone: 0.02,

		LongRestThresholdSec:           2.0,
		LongRestShiftMultiplier:        0.10,
		MinShiftEventCostAfterLongRest: 0.02,

		ShiftSpeedSemitonesPerSec:      0,
		AdjacentStringCrossTimeSec:     0,
		SkipStringCrossTimeSec:         0,
		TimeSlackSec:                   0,
		OpenStringShiftSpeedMultiplier: 1.7,
		RestShiftSpeedMultiplier:       1.4,

		EnforceTimingFeasibility: false,
	}
}

// normalized fills in zero-valued knobs that must never be empty (tuning,
// shape offsets) with their defaults, without touching explicit costs
// the caller set to legitimate zero.
func (p Params) normalized() Params {
	if len(p.Tuning.Strings) == 0 {
		p.Tuning = theory.Standard
	}
	if p.MaxStopSemitones == 0 {
		p.MaxStopSemitones = 29
	}
	if p.MaxAnchor == 0 {
		p.MaxAnchor = 29
	}
	if len(p.Finger2Offsets) == 0 {
		p.Finger2Offsets = []int{1, 2}
	}
	if len(p.Finger3Offsets) == 0 {
		p.Finger3Offsets = []int{3, 4}
	}
	if len(p.Finger4Offsets) == 0 {
		p.Finger4Offsets = []int{5, 6}
	}
	if p.PreferredFingerByDelta == nil {
		p.PreferredFingerByDelta = DefaultParams(p.BPM).PreferredFingerByDelta
	}
	return p
}
