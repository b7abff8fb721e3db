// Package session owns the mutable state of one test run: the display
// queue, the prefetch buffer, the answer history and the exclusion set.
// It is pure state-machine logic; all I/O (sampling, scoring display)
// happens in the caller, which feeds results back in through the
// Accept* functions. A single State instance is owned by the UI update
// loop and must not be shared across goroutines.
package session

import (
	"github.com/google/uuid"

	"github.com/philiaspace/kotoba/internal/bands"
	"github.com/philiaspace/kotoba/internal/levels"
	"github.com/philiaspace/kotoba/internal/sampler"
	"github.com/philiaspace/kotoba/internal/scoring"
	"github.com/philiaspace/kotoba/internal/wordstore"
)

// Phase represents where the session is in its lifecycle. Transitions
// are one-directional except the retry loop back to PhaseWelcome.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseModeSelect
	PhaseLoading
	PhaseTest
	PhaseCalculating
	PhaseResults
)

// DisplaySize is the number of words shown on screen at once.
const DisplaySize = 10

// BufferSize is the target size of the streaming prefetch buffer.
const BufferSize = 10

// BatchSizes are the selectable fixed test lengths for batch mode.
var BatchSizes = []int{100, 200, 500}

// State tracks one test run. Zero slots in Display (ID == 0) are empty;
// a slot empties only in batch mode when the pre-built queue runs dry.
type State struct {
	// Phase is the current lifecycle phase.
	Phase Phase

	// Mode selects streaming or batch behavior once the test starts.
	Mode scoring.Mode

	// Epoch increments on every reset. Async results stamped with an
	// older epoch belong to an abandoned run and must be discarded.
	Epoch int

	// RunID uniquely identifies this run, for support reports. A new
	// one is issued on every reset.
	RunID string

	// Display is the fixed-slot queue currently on screen.
	Display []sampler.Item

	// Prefetch is the streaming-mode replacement buffer.
	Prefetch []sampler.Item

	// BatchQueue holds the not-yet-displayed remainder of a pre-built
	// batch test.
	BatchQueue []sampler.Item

	// Words caches every resolved word for this run.
	Words map[int]wordstore.Word

	// History is the append-only answer record handed to scoring.
	History []scoring.Answer

	// Excluded is the at-most-once reservation set shared with the
	// sampler. Updated synchronously when items are drawn.
	Excluded map[int]bool

	// Processed guards against duplicate answer events on the same item.
	Processed map[int]bool

	// ActiveBand is the band new streaming refills are drawn from.
	ActiveBand int

	// AnsweredInBand counts answers per band for advancement.
	AnsweredInBand map[int]int

	// RefreshCounts counts manual refreshes per band against the caps.
	RefreshCounts map[int]int

	// Loading is the single in-flight guard for initial load and manual
	// refresh. Background refills are not guarded by it.
	Loading bool

	// Result holds the final score once PhaseResults is reached.
	Result *scoring.Result

	// Table is the static band configuration for this run.
	Table bands.Table
}

// NewState creates a fresh session at the welcome phase.
func NewState(table bands.Table) *State {
	s := &State{Table: table}
	s.clear()
	return s
}

// Reset abandons the current run and returns to the welcome phase. The
// epoch bump makes any in-flight async result stale.
func (s *State) Reset() {
	s.Epoch++
	s.clear()
}

func (s *State) clear() {
	s.RunID = uuid.NewString()
	s.Phase = PhaseWelcome
	s.Mode = scoring.ModeStreaming
	s.Display = nil
	s.Prefetch = nil
	s.BatchQueue = nil
	s.Words = make(map[int]wordstore.Word)
	s.History = nil
	s.Excluded = make(map[int]bool)
	s.Processed = make(map[int]bool)
	s.ActiveBand = 1
	s.AnsweredInBand = make(map[int]int)
	s.RefreshCounts = make(map[int]int)
	s.Loading = false
	s.Result = nil
}

// KnownCount returns how many words were answered known so far.
func (s *State) KnownCount() int {
	n := 0
	for _, a := range s.History {
		if a.Known {
			n++
		}
	}
	return n
}

// Word returns the resolved word for a display item.
func (s *State) Word(id int) (wordstore.Word, bool) {
	w, ok := s.Words[id]
	return w, ok
}

// slotIndex finds the display slot holding the given item, -1 if none.
func (s *State) slotIndex(id int) int {
	if id == 0 {
		return -1
	}
	for i, it := range s.Display {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// activeSlots counts non-empty display slots.
func (s *State) activeSlots() int {
	n := 0
	for _, it := range s.Display {
		if it.ID != 0 {
			n++
		}
	}
	return n
}

// mergeWords folds a sampler result's words into the session cache.
func (s *State) mergeWords(words map[int]wordstore.Word) {
	for id, w := range words {
		s.Words[id] = w
	}
}

// Finish ends the test: every word still on screen is recorded as
// unknown, and the session moves to calculating. Idempotent.
func Finish(s *State) {
	if s.Phase == PhaseCalculating || s.Phase == PhaseResults {
		return
	}
	for i, it := range s.Display {
		if it.ID == 0 || s.Processed[it.ID] {
			continue
		}
		s.Processed[it.ID] = true
		s.History = append(s.History, scoring.Answer{ID: it.ID, BandID: it.BandID, Known: false})
		s.Display[i] = sampler.Item{}
	}
	s.Phase = PhaseCalculating
}

// Complete stores the computed result and shows it.
func Complete(s *State, r scoring.Result) {
	s.Result = &r
	s.Phase = PhaseResults
}

// ScoringInput assembles the scoring engine's input from session state.
func (s *State) ScoringInput(lv levels.Tables, p scoring.Params) scoring.Input {
	return scoring.Input{
		History: s.History,
		Words:   s.Words,
		Table:   s.Table,
		Levels:  lv,
		Mode:    s.Mode,
		Params:  p,
	}
}
