package scoring

// Params collects the calibration constants of the scoring pipeline.
// The values are empirical product tuning, carried as configuration
// rather than re-derived: there is no documented statistical model
// behind them.
type Params struct {
	// Guillotine cutoff: scanning from GuillotineStartBand, the first
	// band whose raw ratio falls below FailureThreshold is dropped along
	// with every rarer band.
	GuillotineStartBand int
	FailureThreshold    float64

	// Volatility damping multiplies band ratios from DampingStartBand
	// upward when the sample is small.
	DampingStartBand int
	DampingSmallMax  int     // total questions at or below this get DampingSmall
	DampingMediumMax int     // ... and at or below this get DampingMedium
	DampingSmall     float64 // factor for very short tests
	DampingMedium    float64 // factor for medium tests

	// Learner-type thresholds.
	BeginnerBand1Min      float64 // band 1 ratio must exceed this
	BeginnerBand2Min      float64 // band 2 ratio must exceed this
	BalancedFoundationMin float64
	BalancedAdvancedMin   float64
	ImmersionBand5Min     float64
	ImmersionBand6Min     float64
	ImmersionBand7Min     float64
	ImmersionRatioMin     float64 // advanced/foundation ratio

	// Tag-profile sanity rules.
	UpperTagMinPredicted int // N3+ tags zeroed below this total estimate
	TagProficiencyScore  int // minimum N5/N4 score to unlock N3+
	TagMinSamples        int // minimum samples behind a trusted tag score
}

// DefaultParams returns the calibrated defaults.
func DefaultParams() Params {
	return Params{
		GuillotineStartBand: 3,
		FailureThreshold:    0.3,

		DampingStartBand: 4,
		DampingSmallMax:  100,
		DampingMediumMax: 200,
		DampingSmall:     0.6,
		DampingMedium:    0.85,

		BeginnerBand1Min:      0.5,
		BeginnerBand2Min:      0.4,
		BalancedFoundationMin: 0.85,
		BalancedAdvancedMin:   0.50,
		ImmersionBand5Min:     0.30,
		ImmersionBand6Min:     0.15,
		ImmersionBand7Min:     0.05,
		ImmersionRatioMin:     0.40,

		UpperTagMinPredicted: 3500,
		TagProficiencyScore:  60,
		TagMinSamples:        3,
	}
}

// dampingFactor returns the rare-band discount for a test of the given
// length. Short tests produce noisy per-band ratios; their rare-band
// extrapolation is trusted less.
func (p Params) dampingFactor(totalQuestions int) float64 {
	switch {
	case totalQuestions <= p.DampingSmallMax:
		return p.DampingSmall
	case totalQuestions <= p.DampingMediumMax:
		return p.DampingMedium
	default:
		return 1.0
	}
}
