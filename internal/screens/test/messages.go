package test

import (
	"time"

	"github.com/philiaspace/kotoba/internal/sampler"
	"github.com/philiaspace/kotoba/internal/scoring"
)

// Every async message is stamped with the session epoch it was started
// under; the session drops results from abandoned runs.

// loadedMsg carries the initial word batch for a new test run.
type loadedMsg struct {
	Epoch int
	Res   sampler.Result
	Err   error
}

// refillMsg carries a background prefetch top-up. A failed refill is
// never delivered; the buffer just stays short.
type refillMsg struct {
	Epoch int
	Res   sampler.Result
}

// reloadMsg carries the replacement batch after a manual refresh.
type reloadMsg struct {
	Epoch int
	Res   sampler.Result
	Err   error
}

// scoredMsg carries the computed result once the history is scored.
type scoredMsg struct {
	Epoch  int
	Result scoring.Result
}

// loadingTickMsg rotates the loading flavor text.
type loadingTickMsg time.Time
