package session

import (
	"math"

	"github.com/philiaspace/kotoba/internal/bands"
	"github.com/philiaspace/kotoba/internal/sampler"
	"github.com/philiaspace/kotoba/internal/scoring"
)

// BatchAllocation splits a fixed test size across bands by their
// configured ratios. Rounding drift is absorbed by the first band so
// the quotas always sum to total.
func BatchAllocation(table bands.Table, total int) map[int]int {
	alloc := make(map[int]int, len(table.Bands))
	sum := 0
	for _, b := range table.Bands {
		n := int(math.Round(b.Ratio * float64(total)))
		alloc[b.ID] = n
		sum += n
	}
	if len(table.Bands) > 0 {
		first := table.Bands[0].ID
		alloc[first] += total - sum
		if alloc[first] < 0 {
			alloc[first] = 0
		}
	}
	return alloc
}

// BeginBatch seeds the display slots from a pre-built queue and starts
// a fixed-length test. The queue is already band-allocated and
// compound-prioritized by the sampler. Returns false (and aborts to
// welcome) when the pool could not fill the display queue.
func BeginBatch(s *State, epoch int, res sampler.Result) bool {
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
	s.BatchQueue = append([]sampler.Item(nil), res.Items[DisplaySize:]...)
	s.Phase = PhaseTest
	return true
}

// answerBatch records a "known" tap and replaces the answered item in
// its fixed slot with the next pre-built item. When the queue is dry
// the slot empties; the test completes once every slot is empty.
func answerBatch(s *State, itemID int) AnswerOutcome {
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

	s.Display[idx] = popBatch(s)

	if s.activeSlots() == 0 {
		Finish(s)
		return AnswerOutcome{Recorded: true, Finished: true}
	}
	return AnswerOutcome{Recorded: true}
}

// SkipRemaining marks every word still on screen as unknown and
// replaces all slots at once from the pre-built queue. With the queue
// exhausted this completes the test.
func SkipRemaining(s *State) AnswerOutcome {
	if s.Phase != PhaseTest || s.Mode != scoring.ModeBatch {
		return AnswerOutcome{}
	}

	recorded := false
	for i, it := range s.Display {
		if it.ID == 0 || s.Processed[it.ID] {
			continue
		}
		s.Processed[it.ID] = true
		s.History = append(s.History, scoring.Answer{ID: it.ID, BandID: it.BandID, Known: false})
		s.Display[i] = popBatch(s)
		recorded = true
	}

	if s.activeSlots() == 0 {
		Finish(s)
		return AnswerOutcome{Recorded: recorded, Finished: true}
	}
	return AnswerOutcome{Recorded: recorded}
}

// popBatch takes the next unused pre-built item, or an empty item.
func popBatch(s *State) sampler.Item {
	if len(s.BatchQueue) == 0 {
		return sampler.Item{}
	}
	next := s.BatchQueue[0]
	s.BatchQueue = s.BatchQueue[1:]
	return next
}
