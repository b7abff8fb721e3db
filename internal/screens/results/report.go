package results

import (
	"github.com/philiaspace/kotoba/internal/scoring"
)

// report is the narrative analysis shown under the numbers.
type report struct {
	Summary   string
	Practical string
	Advice    string
	Warning   string
}

// buildReport writes the level evaluation from the predicted total, plus
// a foundation warning when the most common words look shaky despite a
// decent total.
func buildReport(r scoring.Result) report {
	var rep report

	switch {
	case r.TotalPredicted < 1500:
		rep.Summary = "You are at the beginning stage. The main task right now is recognizing word shapes and the basic characters."
		rep.Practical = "Greetings and numbers are readable, but longer text is still out of reach."
		rep.Advice = "Master hiragana and katakana completely, then memorize the first hundred basic kanji."
	case r.TotalPredicted < 8000:
		rep.Summary = "You are at the intermediate level. No longer a beginner, but complex text does not read smoothly yet."
		rep.Practical = "Everyday messages are readable, but standard news articles still take real effort."
		rep.Advice = "Read extensively without a dictionary and build up your kanji compounds."
	default:
		rep.Summary = "Your literacy is strong. You qualify as an independent reader."
		rep.Practical = "Almost all entertainment media is open to you."
		rep.Advice = "Challenge yourself with technical material, literature, or newspaper editorials."
	}

	var band1Ratio float64
	for _, d := range r.Details {
		if d.BandID == 1 && d.TotalInBand > 0 {
			band1Ratio = float64(d.KnownInBand) / float64(d.TotalInBand)
		}
	}
	if band1Ratio < 0.7 && r.TotalPredicted > 3000 {
		rep.Warning = "Your total looks decent, but accuracy on the most common words is unstable. Gaps in foundational vocabulary undermine everything built on top of it, so do not neglect the basics."
	}

	return rep
}

// learnerLabel is the one-line description of the profile shape.
func learnerLabel(t scoring.LearnerType) string {
	switch t {
	case scoring.LearnerBalanced:
		return "Balanced learner: strong foundation with wide reach"
	case scoring.LearnerImmersion:
		return "Immersion learner: rare words out of proportion to the basics"
	case scoring.LearnerAcademic:
		return "Academic learner: solid foundation, thinner rare-word reach"
	default:
		return "Beginner: still building the foundation"
	}
}
