// Package scoring converts a sparse record of known/unknown answers into
// a calibrated vocabulary-size estimate, a competency profile and a
// learner-type classification. Scoring is a pure function of its input:
// same history, same result.
package scoring

import (
	"github.com/philiaspace/kotoba/internal/bands"
	"github.com/philiaspace/kotoba/internal/levels"
	"github.com/philiaspace/kotoba/internal/wordstore"
)

// Answer is one tested word: its rank, originating band, and whether the
// learner marked it known.
type Answer struct {
	ID     int
	BandID int
	Known  bool
}

// Mode selects which discounts apply. Batch tests allocate a fixed quota
// per band up front, so tiny per-band samples get the sparsity discount;
// streaming tests earn their way into rare bands and skip it.
type Mode int

const (
	ModeStreaming Mode = iota
	ModeBatch
)

// LearnerType classifies the shape of a learner's band profile.
type LearnerType string

const (
	// LearnerBeginner: the foundational bands themselves are shaky.
	LearnerBeginner LearnerType = "BEGINNER"

	// LearnerBalanced: strong foundation and solid rare-band reach.
	LearnerBalanced LearnerType = "BALANCED"

	// LearnerImmersion: rare-band knowledge out of proportion to the
	// foundation, typical of media-exposure learners.
	LearnerImmersion LearnerType = "IMMERSION"

	// LearnerAcademic: solid foundation with thin rare-band reach,
	// typical of curriculum-driven study.
	LearnerAcademic LearnerType = "ACADEMIC"
)

// BandDetail is one row of the per-band breakdown.
type BandDetail struct {
	BandID          int
	TotalInBand     int
	KnownInBand     int
	PredictedInBand int

	// Dropped marks bands zeroed by the guillotine cutoff.
	Dropped bool
}

// Radar holds the five competency axes as percentages (0-100).
type Radar struct {
	Survival   int // bands 1-2
	Formal     int // bands 3-4
	Culture    int // bands 5-6
	Literary   int // bands 7-8
	Complexity int // compound (multi-kanji) words only
}

// TagScore is the per-JLPT-tag accuracy row, kept for the tag profile
// chart. Level is "N5".."N1".
type TagScore struct {
	Level string
	Score int // percentage 0-100, after sanity rules
	Total int
	Known int
}

// Result is the immutable outcome of a finished test.
type Result struct {
	TotalPredicted      int
	LearnerType         LearnerType
	JLPTLevel           string
	CEFRLevel           string
	AgeEquivalent       string
	LiteracyDescription string
	Radar               Radar
	TagScores           []TagScore
	Details             []BandDetail
	TotalQuestions      int
}

// Input carries everything Score needs.
type Input struct {
	History []Answer

	// Words resolves ranks to text and tags for the complexity axis and
	// the tag profile. Missing entries are tolerated.
	Words map[int]wordstore.Word

	Table  bands.Table
	Levels levels.Tables
	Mode   Mode
	Params Params
}
