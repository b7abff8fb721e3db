package scoring

import (
	"math"

	"github.com/philiaspace/kotoba/internal/bands"
	"github.com/philiaspace/kotoba/internal/levels"
	"github.com/philiaspace/kotoba/internal/vocab"
)

// bandStats is the per-band working state of the pipeline.
type bandStats struct {
	total   int
	known   int
	raw     float64 // known/total, 0 when untested
	final   float64 // after guillotine + damping
	dropped bool
}

// Score runs the full pipeline over a finished test's history.
func Score(in Input) Result {
	totalQuestions := len(in.History)

	stats := rawStats(in)
	learner := classify(stats, in.Params)
	applyGuillotine(stats, in.Table, in.Params)
	applyDamping(stats, in.Params, totalQuestions)

	details, totalPredicted := extrapolate(stats, in)
	radar := buildRadar(stats, in)
	tagScores := buildTagScores(in, totalPredicted)

	return Result{
		TotalPredicted:      totalPredicted,
		LearnerType:         learner,
		JLPTLevel:           in.Levels.JLPTFor(totalPredicted),
		CEFRLevel:           in.Levels.CEFRFor(totalPredicted),
		AgeEquivalent:       in.Levels.AgeFor(totalPredicted),
		LiteracyDescription: in.Levels.LiteracyFor(totalPredicted, literacyBank(learner)),
		Radar:               radar,
		TagScores:           tagScores,
		Details:             details,
		TotalQuestions:      totalQuestions,
	}
}

// rawStats folds the history into per-band counts and ratios.
// Untested bands carry ratio 0; nothing here can divide by zero.
func rawStats(in Input) map[int]*bandStats {
	stats := make(map[int]*bandStats, len(in.Table.Bands))
	for _, b := range in.Table.Bands {
		stats[b.ID] = &bandStats{}
	}

	for _, a := range in.History {
		s, ok := stats[a.BandID]
		if !ok {
			continue
		}
		s.total++
		if a.Known {
			s.known++
		}
	}

	for _, s := range stats {
		if s.total > 0 {
			s.raw = float64(s.known) / float64(s.total)
		}
		s.final = s.raw
	}
	return stats
}

// applyGuillotine drops every band at or past the first failure.
// Once foundational failure shows at some rarity, deeper claims of
// knowledge are statistically untrustworthy guesses.
func applyGuillotine(stats map[int]*bandStats, table bands.Table, p Params) {
	dropping := false
	for id := p.GuillotineStartBand; id <= table.MaxID(); id++ {
		s, ok := stats[id]
		if !ok {
			continue
		}
		if !dropping && s.raw < p.FailureThreshold {
			dropping = true
		}
		if dropping {
			s.dropped = true
			s.final = 0
			s.known = 0
		}
	}
}

// applyDamping discounts rare-band ratios on short tests.
func applyDamping(stats map[int]*bandStats, p Params, totalQuestions int) {
	factor := p.dampingFactor(totalQuestions)
	if factor == 1.0 {
		return
	}
	for id, s := range stats {
		if id >= p.DampingStartBand {
			s.final *= factor
		}
	}
}

// extrapolate projects each band's final ratio over its (possibly
// sparsity-discounted) rank range.
func extrapolate(stats map[int]*bandStats, in Input) ([]BandDetail, int) {
	details := make([]BandDetail, 0, len(in.Table.Bands))
	total := 0

	for _, b := range in.Table.Bands {
		s := stats[b.ID]

		effectiveSize := float64(b.Size())
		if in.Mode == ModeBatch {
			effectiveSize *= b.SparsityFactor
		}

		predicted := int(math.Round(s.final * effectiveSize))
		total += predicted

		details = append(details, BandDetail{
			BandID:          b.ID,
			TotalInBand:     s.total,
			KnownInBand:     s.known,
			PredictedInBand: predicted,
			Dropped:         s.dropped,
		})
	}

	return details, total
}

// buildRadar aggregates post-cutoff accuracy over band pairs, plus the
// compound-word axis.
func buildRadar(stats map[int]*bandStats, in Input) Radar {
	pair := func(a, b int) int {
		known, total := 0, 0
		if s, ok := stats[a]; ok {
			known += s.known
			total += s.total
		}
		if s, ok := stats[b]; ok {
			known += s.known
			total += s.total
		}
		return percent(known, total)
	}

	// Complexity: accuracy restricted to compound words. Items in
	// guillotined bands count as unknown, consistent with the band axes.
	compKnown, compTotal := 0, 0
	for _, a := range in.History {
		w, ok := in.Words[a.ID]
		if !ok || !vocab.IsCompound(w.Text) {
			continue
		}
		compTotal++
		if a.Known {
			if s, ok := stats[a.BandID]; ok && s.dropped {
				continue
			}
			compKnown++
		}
	}

	return Radar{
		Survival:   pair(1, 2),
		Formal:     pair(3, 4),
		Culture:    pair(5, 6),
		Literary:   pair(7, 8),
		Complexity: percent(compKnown, compTotal),
	}
}

func percent(known, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(known) / float64(total) * 100))
}

func literacyBank(lt LearnerType) levels.Bank {
	switch lt {
	case LearnerAcademic:
		return levels.BankAcademic
	case LearnerImmersion:
		return levels.BankImmersion
	default:
		return levels.BankDefault
	}
}
