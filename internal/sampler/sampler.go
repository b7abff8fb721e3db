// Package sampler draws random test candidates from frequency bands,
// resolving them against the word store and filtering out untestable
// entries. It owns the at-most-once guarantee: accepted ranks join the
// exclusion set the moment they are accepted, before any further await.
package sampler

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/philiaspace/kotoba/internal/bands"
	"github.com/philiaspace/kotoba/internal/vocab"
	"github.com/philiaspace/kotoba/internal/wordstore"
)

// oversampleFactor targets this many candidates per needed item so the
// validity filter has room to prune.
const oversampleFactor = 3

// Item is one sampled candidate: a frequency rank and the band it was
// drawn from.
type Item struct {
	ID     int
	BandID int
}

// Result is a batch of accepted items plus their resolved words.
type Result struct {
	Items []Item
	Words map[int]wordstore.Word
}

// Sampler draws candidates for one session. Not safe for concurrent use;
// the session serializes sampling by design.
type Sampler struct {
	resolver wordstore.Resolver
	table    bands.Table
	dedup    *vocab.Deduper
}

// New creates a Sampler over the given resolver and band table.
func New(resolver wordstore.Resolver, table bands.Table) *Sampler {
	return &Sampler{
		resolver: resolver,
		table:    table,
		dedup:    vocab.NewDeduper(),
	}
}

// Sample draws up to wanted valid items, starting at startBand and
// advancing to rarer bands while short. Accepted ranks are added to
// excluded synchronously. The result is shuffled so callers cannot infer
// band from position.
//
// A short result (fewer than wanted) is not an error: it means the
// remaining pool is exhausted and the caller should wind the test down.
func (s *Sampler) Sample(ctx context.Context, startBand int, excluded map[int]bool, wanted int) (Result, error) {
	result := Result{Words: make(map[int]wordstore.Word)}

	for bandID := startBand; bandID <= s.table.MaxID() && len(result.Items) < wanted; bandID++ {
		band, ok := s.table.Get(bandID)
		if !ok {
			continue
		}

		needed := wanted - len(result.Items)
		candidates := drawCandidates(band, excluded, needed)
		if len(candidates) == 0 {
			continue
		}

		words, err := s.resolver.Resolve(ctx, candidates)
		if err != nil {
			return Result{}, err
		}

		accepted := s.accept(words, bandID, needed, excluded)
		for _, it := range accepted {
			result.Items = append(result.Items, it)
			result.Words[it.ID] = words[it.ID]
		}
	}

	rand.Shuffle(len(result.Items), func(i, j int) {
		result.Items[i], result.Items[j] = result.Items[j], result.Items[i]
	})

	return result, nil
}

// drawCandidates picks random unseen ranks from the band. The attempt
// budget is bounded so a nearly-exhausted band cannot loop forever.
func drawCandidates(band bands.Band, excluded map[int]bool, needed int) []int {
	target := needed * oversampleFactor
	maxAttempts := needed * 10
	if maxAttempts < 100 {
		maxAttempts = 100
	}

	drawn := make(map[int]bool, target)
	var candidates []int
	for attempts := 0; len(candidates) < target && attempts < maxAttempts; attempts++ {
		rank := band.MinRank + rand.IntN(band.Size())
		if excluded[rank] || drawn[rank] {
			continue
		}
		drawn[rank] = true
		candidates = append(candidates, rank)
	}
	return candidates
}

// accept filters resolved candidates and takes up to needed of them,
// compounds first. Accepted ranks are reserved in excluded immediately;
// rejected ranks stay available for future draws.
func (s *Sampler) accept(words map[int]wordstore.Word, bandID, needed int, excluded map[int]bool) []Item {
	var compounds, plain []int
	for id, w := range words {
		if !vocab.IsValid(w.Text) {
			continue
		}
		if vocab.IsCompound(w.Text) {
			compounds = append(compounds, id)
		} else {
			plain = append(plain, id)
		}
	}

	var accepted []Item
	take := func(ids []int) {
		for _, id := range ids {
			if len(accepted) >= needed {
				return
			}
			// Same spelling can back several ranks; show it once.
			if !s.dedup.Claim(words[id].Text) {
				continue
			}
			excluded[id] = true
			accepted = append(accepted, Item{ID: id, BandID: bandID})
		}
	}
	take(compounds)
	take(plain)

	return accepted
}

// SampleBatch draws a fixed-length test in one pass: each band
// contributes its quota from the allocation map. A band whose remaining
// pool cannot cover its quota contributes what it has; the overall
// result may be short. The result is shuffled across bands.
func (s *Sampler) SampleBatch(ctx context.Context, alloc map[int]int, excluded map[int]bool) (Result, error) {
	result := Result{Words: make(map[int]wordstore.Word)}

	for _, band := range s.table.Bands {
		quota := alloc[band.ID]
		for quota > 0 {
			candidates := drawCandidates(band, excluded, quota)
			if len(candidates) == 0 {
				break
			}

			words, err := s.resolver.Resolve(ctx, candidates)
			if err != nil {
				return Result{}, err
			}

			accepted := s.accept(words, band.ID, quota, excluded)
			if len(accepted) == 0 {
				break
			}
			for _, it := range accepted {
				result.Items = append(result.Items, it)
				result.Words[it.ID] = words[it.ID]
			}
			quota -= len(accepted)
		}
	}

	rand.Shuffle(len(result.Items), func(i, j int) {
		result.Items[i], result.Items[j] = result.Items[j], result.Items[i]
	})

	return result, nil
}

// SampleWithRetry runs Sample under the store's backoff policy, retrying
// the whole operation on transient lookup failures. The last error is
// surfaced after the attempt budget is spent.
func (s *Sampler) SampleWithRetry(ctx context.Context, startBand int, excluded map[int]bool, wanted int, cfg wordstore.RetryConfig) (Result, error) {
	return s.withRetry(ctx, cfg, func() (Result, error) {
		return s.Sample(ctx, startBand, excluded, wanted)
	})
}

// SampleBatchWithRetry runs SampleBatch under the store's backoff policy.
func (s *Sampler) SampleBatchWithRetry(ctx context.Context, alloc map[int]int, excluded map[int]bool, cfg wordstore.RetryConfig) (Result, error) {
	return s.withRetry(ctx, cfg, func() (Result, error) {
		return s.SampleBatch(ctx, alloc, excluded)
	})
}

func (s *Sampler) withRetry(ctx context.Context, cfg wordstore.RetryConfig, sample func() (Result, error)) (Result, error) {
	var lastErr error

	for attempt := range cfg.MaxAttempts {
		result, err := sample()
		if err == nil {
			return result, nil
		}
		lastErr = err

		var le *wordstore.LookupError
		if !errors.As(err, &le) {
			return Result{}, err
		}

		if cfg.OnAttempt != nil {
			cfg.OnAttempt(attempt+1, cfg.MaxAttempts)
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
		if wait > float64(cfg.MaxWait) {
			wait = float64(cfg.MaxWait)
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(time.Duration(wait)):
		}
	}

	return Result{}, lastErr
}
