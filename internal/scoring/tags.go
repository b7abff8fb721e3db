package scoring

import "strings"

var tagLevels = []string{"N5", "N4", "N3", "N2", "N1"}

// buildTagScores computes per-JLPT-level accuracy over tagged words in
// the history, then applies two sanity rules so a few lucky guesses on
// rare tagged words cannot spike the profile chart:
//
//  1. Upper levels (N3+) require a minimum total estimate.
//  2. Upper levels require demonstrated proficiency at N5 and N4.
func buildTagScores(in Input, totalPredicted int) []TagScore {
	counts := make(map[string]*TagScore, len(tagLevels))
	scores := make([]TagScore, 0, len(tagLevels))
	for _, lvl := range tagLevels {
		counts[lvl] = &TagScore{Level: lvl}
	}

	for _, a := range in.History {
		w, ok := in.Words[a.ID]
		if !ok || w.Tag == "" {
			continue
		}
		ts, ok := counts["N"+strings.TrimSpace(w.Tag)]
		if !ok {
			continue
		}
		ts.Total++
		if a.Known {
			ts.Known++
		}
	}

	for _, lvl := range tagLevels {
		ts := counts[lvl]
		ts.Score = percent(ts.Known, ts.Total)
		scores = append(scores, *ts)
	}

	p := in.Params
	n5, n4 := scores[0], scores[1]
	n5Proficient := n5.Score >= p.TagProficiencyScore && n5.Total >= p.TagMinSamples
	n4Proficient := n4.Score >= p.TagProficiencyScore && n4.Total >= p.TagMinSamples

	if totalPredicted <= p.UpperTagMinPredicted || !n5Proficient || !n4Proficient {
		for i := range scores {
			switch scores[i].Level {
			case "N3", "N2", "N1":
				scores[i].Score = 0
			}
		}
	}

	return scores
}
