package session

import (
	"github.com/philiaspace/kotoba/internal/sampler"
	"github.com/philiaspace/kotoba/internal/scoring"
)

// AnswerOutcome tells the caller what follow-up an answer requires.
type AnswerOutcome struct {
	// Recorded is false when the event was a duplicate or hit an
	// unknown item and was silently dropped.
	Recorded bool

	// Finished is set when the answer ended the test.
	Finished bool

	// RefillBand, when non-zero, asks the caller to fetch one more item
	// for the prefetch buffer from that band in the background.
	RefillBand int
}

// StartLoading moves the session into the loading phase for the given
// mode. Returns false when a load is already in flight.
func StartLoading(s *State, mode scoring.Mode) bool {
	if s.Loading {
		return false
	}
	s.Mode = mode
	s.Phase = PhaseLoading
	s.Loading = true
	return true
}

// LoadFailed aborts a failed initial load back to the welcome screen.
// Stale epochs are ignored.
func LoadFailed(s *State, epoch int) {
	if epoch != s.Epoch {
		return
	}
	s.Reset()
}

// BeginStreaming seeds the display queue and prefetch buffer from the
// initial load and starts the test. Returns false (and aborts to
// welcome) when the pool could not fill the display queue.
func BeginStreaming(s *State, epoch int, res sampler.Result) bool {
	if epoch != s.Epoch || s.Phase != PhaseLoading {
		return false
	}
	s.Loading = false

	if len(res.Items) < DisplaySize {
		s.Reset()
		return false
	}

	s.mergeWords(res.Words)
	s.Display = append([]sampler.Item(nil), res.Items[:DisplaySize]...)
	s.Prefetch = append([]sampler.Item(nil), res.Items[DisplaySize:]...)
	s.ActiveBand = 1
	s.Phase = PhaseTest
	return true
}

// HandleAnswer records a "known" tap on a displayed word and advances
// the session. Duplicate events on the same item are ignored. In
// streaming mode the answered slot is refilled synchronously from the
// prefetch buffer; an empty buffer ends the test on the spot.
func HandleAnswer(s *State, itemID int) AnswerOutcome {
	if s.Phase != PhaseTest {
		return AnswerOutcome{}
	}
	if s.Mode == scoring.ModeBatch {
		return answerBatch(s, itemID)
	}
	return answerStreaming(s, itemID)
}

func answerStreaming(s *State, itemID int) AnswerOutcome {
	if s.Processed[itemID] {
		return AnswerOutcome{}
	}
	idx := s.slotIndex(itemID)
	if idx < 0 {
		return AnswerOutcome{}
	}

	item := s.Display[idx]
	s.Processed[itemID] = true
	s.History = append(s.History, scoring.Answer{ID: item.ID, BandID: item.BandID, Known: true})

	if len(s.Prefetch) == 0 {
		Finish(s)
		return AnswerOutcome{Recorded: true, Finished: true}
	}

	// Reserve the replacement before anything can await: the buffer pop
	// and the slot swap happen inside this event.
	next := s.Prefetch[0]
	s.Prefetch = s.Prefetch[1:]
	s.Display[idx] = next

	s.AnsweredInBand[s.ActiveBand]++
	if s.AnsweredInBand[s.ActiveBand] >= s.Table.AdvanceThreshold(s.ActiveBand) && s.ActiveBand < s.Table.MaxID() {
		s.ActiveBand++
	}

	return AnswerOutcome{Recorded: true, RefillBand: s.ActiveBand}
}

// AcceptRefill folds a background one-item refill into the prefetch
// buffer. Stale or post-test results are dropped; a failed refill is
// simply never delivered, leaving the buffer short.
func AcceptRefill(s *State, epoch int, res sampler.Result) bool {
	if epoch != s.Epoch || s.Phase != PhaseTest {
		return false
	}
	if len(res.Items) == 0 {
		return false
	}
	s.mergeWords(res.Words)
	s.Prefetch = append(s.Prefetch, res.Items...)
	return true
}

// RefreshOutcome tells the caller what a manual refresh requires.
type RefreshOutcome struct {
	// Started is false when a refresh was already in flight.
	Started bool

	// Finished is set when the refresh cap ended the test instead.
	Finished bool

	// FetchBand and Wanted describe the replacement batch to fetch when
	// the refresh proceeds.
	FetchBand int
	Wanted    int
}

// Refresh marks every word on screen as unknown and requests a fresh
// display+buffer batch from the active band. Hitting the per-band
// refresh cap ends the test instead.
func Refresh(s *State) RefreshOutcome {
	if s.Phase != PhaseTest || s.Loading {
		return RefreshOutcome{}
	}

	for _, it := range s.Display {
		if it.ID == 0 || s.Processed[it.ID] {
			continue
		}
		s.Processed[it.ID] = true
		s.History = append(s.History, scoring.Answer{ID: it.ID, BandID: it.BandID, Known: false})
	}

	s.RefreshCounts[s.ActiveBand]++
	if s.RefreshCounts[s.ActiveBand] >= s.Table.RefreshCap(s.ActiveBand) {
		Finish(s)
		return RefreshOutcome{Started: true, Finished: true}
	}

	s.Loading = true
	return RefreshOutcome{
		Started:   true,
		FetchBand: s.ActiveBand,
		Wanted:    DisplaySize + BufferSize,
	}
}

// AcceptReload installs the replacement batch after a manual refresh.
// A short batch means the pool is exhausted and the test ends.
func AcceptReload(s *State, epoch int, res sampler.Result) {
	if epoch != s.Epoch || s.Phase != PhaseTest {
		return
	}
	s.Loading = false

	if len(res.Items) < DisplaySize {
		Finish(s)
		return
	}

	s.mergeWords(res.Words)
	s.Display = append([]sampler.Item(nil), res.Items[:DisplaySize]...)
	s.Prefetch = append([]sampler.Item(nil), res.Items[DisplaySize:]...)
}

// ReloadFailed ends the test after a refresh could not be served; the
// history gathered so far still gets scored.
func ReloadFailed(s *State, epoch int) {
	if epoch != s.Epoch || s.Phase != PhaseTest {
		return
	}
	s.Loading = false
	Finish(s)
}
