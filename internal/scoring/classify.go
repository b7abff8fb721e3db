package scoring

// classify derives the learner type from raw, pre-cutoff ratios. The
// guillotine deliberately runs after this: a learner's profile shape is
// judged on what they actually answered, not on the trimmed estimate.
func classify(stats map[int]*bandStats, p Params) LearnerType {
	ratio := func(id int) float64 {
		if s, ok := stats[id]; ok {
			return s.raw
		}
		return 0
	}
	avg := func(from, to int) float64 {
		sum := 0.0
		n := 0
		for id := from; id <= to; id++ {
			sum += ratio(id)
			n++
		}
		return sum / float64(n)
	}

	if ratio(1) <= p.BeginnerBand1Min || ratio(2) <= p.BeginnerBand2Min {
		return LearnerBeginner
	}

	foundation := avg(1, 4)
	advanced := avg(5, 7)

	if foundation > p.BalancedFoundationMin && advanced > p.BalancedAdvancedMin {
		return LearnerBalanced
	}

	// Immersion learners show rare-band knowledge that outpaces their
	// foundation. Any one signal is enough.
	if ratio(6) > p.ImmersionBand6Min ||
		ratio(7) > p.ImmersionBand7Min ||
		ratio(5) > p.ImmersionBand5Min ||
		advanced/max(0.1, foundation) > p.ImmersionRatioMin {
		return LearnerImmersion
	}

	return LearnerAcademic
}
