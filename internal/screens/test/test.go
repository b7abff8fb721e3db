// Package test hosts the active test screen: it owns the session state
// machine and drives the sampler from bubbletea commands.
package test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/philiaspace/kotoba/internal/bands"
	"github.com/philiaspace/kotoba/internal/levels"
	"github.com/philiaspace/kotoba/internal/router"
	"github.com/philiaspace/kotoba/internal/sampler"
	"github.com/philiaspace/kotoba/internal/screen"
	"github.com/philiaspace/kotoba/internal/screens/results"
	"github.com/philiaspace/kotoba/internal/scoring"
	sess "github.com/philiaspace/kotoba/internal/session"
	"github.com/philiaspace/kotoba/internal/ui/components"
	"github.com/philiaspace/kotoba/internal/ui/layout"
	"github.com/philiaspace/kotoba/internal/wordstore"
)

const loadingMsgInterval = 1800 * time.Millisecond

var loadingMessages = []string{
	"Analyzing word frequencies...",
	"Preparing test questions...",
	"Calibrating difficulty...",
	"Almost there...",
}

// Deps bundles everything a test run needs. Restart produces a fresh
// mode-selection screen for the retry path.
type Deps struct {
	Resolver wordstore.Resolver
	Table    bands.Table
	Levels   levels.Tables
	Params   scoring.Params
	Retry    wordstore.RetryConfig
	Restart  func() screen.Screen
}

// TestScreen runs one vocabulary test from initial load to scoring.
type TestScreen struct {
	deps      Deps
	mode      scoring.Mode
	batchSize int

	state    *sess.State
	smp      *sampler.Sampler
	selected int

	spin       components.Spinner
	loadingIdx int
	errMsg     string

	// sampleMu serializes sampler access across command goroutines; the
	// sampler and the exclusion set are not safe for concurrent use.
	sampleMu sync.Mutex

	// slowAttempt is written by the retry callback goroutine and read by
	// the view.
	slowAttempt atomic.Int32
}

var _ screen.Screen = (*TestScreen)(nil)
var _ screen.KeyHintProvider = (*TestScreen)(nil)
var _ screen.KnownCountProvider = (*TestScreen)(nil)

// New creates a TestScreen for the given mode. batchSize is ignored in
// streaming mode.
func New(deps Deps, mode scoring.Mode, batchSize int) *TestScreen {
	return &TestScreen{
		deps:      deps,
		mode:      mode,
		batchSize: batchSize,
		state:     sess.NewState(deps.Table),
		smp:       sampler.New(deps.Resolver, deps.Table),
		spin:      components.NewSpinner(),
	}
}

func (s *TestScreen) Title() string {
	if s.mode == scoring.ModeBatch {
		switch s.batchSize {
		case 100:
			return "Quick Test"
		case 200:
			return "Standard Test"
		default:
			return "Deep Test"
		}
	}
	return "Adaptive Test"
}

func (s *TestScreen) KnownCount() int {
	if s.state.Phase == sess.PhaseTest {
		return s.state.KnownCount()
	}
	return -1
}

func (s *TestScreen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case sess.PhaseTest:
		hints := []layout.KeyHint{
			{Key: "←→↑↓", Description: "Select"},
			{Key: "Enter", Description: "I know this"},
		}
		if s.mode == scoring.ModeBatch {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Skip the rest"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "New words"})
		}
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Finish"})
		return hints
	case sess.PhaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return nil
}

func (s *TestScreen) Init() tea.Cmd {
	sess.StartLoading(s.state, s.mode)
	return tea.Batch(
		s.loadCmd(),
		s.spin.Init(),
		loadingTickCmd(),
	)
}

func (s *TestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return s.handleLoaded(msg)

	case refillMsg:
		sess.AcceptRefill(s.state, msg.Epoch, msg.Res)
		return s, nil

	case reloadMsg:
		return s.handleReload(msg)

	case scoredMsg:
		return s.handleScored(msg)

	case loadingTickMsg:
		if s.state.Loading {
			s.loadingIdx = (s.loadingIdx + 1) % len(loadingMessages)
			return s, loadingTickCmd()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.spin, cmd = s.spin.Update(msg)
	return s, cmd
}

func (s *TestScreen) handleLoaded(msg loadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		sess.LoadFailed(s.state, msg.Epoch)
		s.errMsg = "Could not reach the word store. Check your connection and try again."
		return s, nil
	}
	s.slowAttempt.Store(0)

	var ok bool
	if s.mode == scoring.ModeBatch {
		ok = sess.BeginBatch(s.state, msg.Epoch, msg.Res)
	} else {
		ok = sess.BeginStreaming(s.state, msg.Epoch, msg.Res)
	}
	if !ok && s.state.Phase == sess.PhaseWelcome {
		s.errMsg = "Not enough words available to start a test."
	}
	return s, nil
}

func (s *TestScreen) handleReload(msg reloadMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		sess.ReloadFailed(s.state, msg.Epoch)
		if s.state.Phase == sess.PhaseCalculating {
			return s, s.scoreCmd()
		}
		return s, nil
	}
	s.slowAttempt.Store(0)

	sess.AcceptReload(s.state, msg.Epoch, msg.Res)
	if s.state.Phase == sess.PhaseCalculating {
		// Short reload: the pool is exhausted.
		return s, s.scoreCmd()
	}
	s.selected = 0
	return s, nil
}

func (s *TestScreen) handleScored(msg scoredMsg) (screen.Screen, tea.Cmd) {
	if msg.Epoch != s.state.Epoch {
		return s, nil
	}
	sess.Complete(s.state, msg.Result)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: results.New(msg.Result, s.state.RunID, s.deps.Restart),
		}
	}
}

func (s *TestScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back to mode selection.
	if s.errMsg != "" {
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: s.deps.Restart()}
		}
	}

	switch s.state.Phase {
	case sess.PhaseLoading:
		if key == "esc" {
			s.state.Reset()
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: s.deps.Restart()}
			}
		}
		return s, nil

	case sess.PhaseTest:
		return s.handleTestKey(key)
	}

	return s, nil
}

func (s *TestScreen) handleTestKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "left", "h":
		s.moveSelection(-1)
	case "right", "l":
		s.moveSelection(1)
	case "up", "k":
		s.moveSelection(-gridCols)
	case "down", "j":
		s.moveSelection(gridCols)

	case "enter", "space", " ":
		return s.answerSlot(s.selected)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		s.selected = idx
		return s.answerSlot(idx)
	case "0":
		s.selected = sess.DisplaySize - 1
		return s.answerSlot(sess.DisplaySize - 1)

	case "r":
		if s.mode != scoring.ModeBatch {
			return s.refresh()
		}

	case "s":
		if s.mode == scoring.ModeBatch {
			out := sess.SkipRemaining(s.state)
			if out.Finished {
				return s, s.scoreCmd()
			}
			s.selected = 0
		}

	case "esc":
		sess.Finish(s.state)
		return s, s.scoreCmd()
	}

	return s, nil
}

func (s *TestScreen) moveSelection(delta int) {
	next := s.selected + delta
	if next >= 0 && next < sess.DisplaySize {
		s.selected = next
	}
}

// answerSlot marks the word in the given display slot as known.
func (s *TestScreen) answerSlot(idx int) (screen.Screen, tea.Cmd) {
	if idx < 0 || idx >= len(s.state.Display) {
		return s, nil
	}
	item := s.state.Display[idx]
	if item.ID == 0 {
		return s, nil
	}

	out := sess.HandleAnswer(s.state, item.ID)
	if out.Finished {
		return s, s.scoreCmd()
	}
	if out.RefillBand > 0 {
		return s, s.refillCmd(out.RefillBand)
	}
	return s, nil
}

func (s *TestScreen) refresh() (screen.Screen, tea.Cmd) {
	out := sess.Refresh(s.state)
	if !out.Started {
		return s, nil
	}
	if out.Finished {
		return s, s.scoreCmd()
	}
	return s, tea.Batch(
		s.reloadCmd(out.FetchBand, out.Wanted),
		loadingTickCmd(),
	)
}

// loadCmd fetches the initial word batch for this run.
func (s *TestScreen) loadCmd() tea.Cmd {
	epoch := s.state.Epoch
	excluded := s.state.Excluded
	cfg := s.retryCfg()

	if s.mode == scoring.ModeBatch {
		alloc := sess.BatchAllocation(s.deps.Table, s.batchSize)
		return func() tea.Msg {
			s.sampleMu.Lock()
			defer s.sampleMu.Unlock()
			res, err := s.smp.SampleBatchWithRetry(context.Background(), alloc, excluded, cfg)
			return loadedMsg{Epoch: epoch, Res: res, Err: err}
		}
	}

	wanted := sess.DisplaySize + sess.BufferSize
	return func() tea.Msg {
		s.sampleMu.Lock()
		defer s.sampleMu.Unlock()
		res, err := s.smp.SampleWithRetry(context.Background(), 1, excluded, wanted, cfg)
		return loadedMsg{Epoch: epoch, Res: res, Err: err}
	}
}

// refillCmd tops the prefetch buffer up by one item in the background.
func (s *TestScreen) refillCmd(band int) tea.Cmd {
	epoch := s.state.Epoch
	excluded := s.state.Excluded
	return func() tea.Msg {
		s.sampleMu.Lock()
		defer s.sampleMu.Unlock()
		res, err := s.smp.Sample(context.Background(), band, excluded, 1)
		if err != nil {
			// Non-fatal: the next empty-buffer answer ends the test.
			fmt.Fprintf(os.Stderr, "warning: background refill failed: %v\n", err)
			return nil
		}
		if len(res.Items) == 0 {
			return nil
		}
		return refillMsg{Epoch: epoch, Res: res}
	}
}

// reloadCmd fetches a full replacement batch after a manual refresh.
func (s *TestScreen) reloadCmd(band, wanted int) tea.Cmd {
	epoch := s.state.Epoch
	excluded := s.state.Excluded
	cfg := s.retryCfg()
	return func() tea.Msg {
		s.sampleMu.Lock()
		defer s.sampleMu.Unlock()
		res, err := s.smp.SampleWithRetry(context.Background(), band, excluded, wanted, cfg)
		return reloadMsg{Epoch: epoch, Res: res, Err: err}
	}
}

// scoreCmd computes the final result off the update loop.
func (s *TestScreen) scoreCmd() tea.Cmd {
	epoch := s.state.Epoch
	input := s.state.ScoringInput(s.deps.Levels, s.deps.Params)
	return func() tea.Msg {
		return scoredMsg{Epoch: epoch, Result: scoring.Score(input)}
	}
}

func (s *TestScreen) retryCfg() wordstore.RetryConfig {
	cfg := s.deps.Retry
	cfg.OnAttempt = func(attempt, max int) {
		s.slowAttempt.Store(int32(attempt))
	}
	return cfg
}

func loadingTickCmd() tea.Cmd {
	return tea.Tick(loadingMsgInterval, func(t time.Time) tea.Msg {
		return loadingTickMsg(t)
	})
}
