package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/philiaspace/kotoba/internal/router"
	"github.com/philiaspace/kotoba/internal/screen"
	"github.com/philiaspace/kotoba/internal/scoring"
)

func sampleResult() scoring.Result {
	return scoring.Result{
		TotalPredicted:      6200,
		LearnerType:         scoring.LearnerBalanced,
		JLPTLevel:           "N2",
		CEFRLevel:           "B2",
		AgeEquivalent:       "12-14",
		LiteracyDescription: "Comfortable with everyday prose",
		Radar:               scoring.Radar{Survival: 90, Formal: 70, Culture: 40, Literary: 10, Complexity: 65},
		TagScores: []scoring.TagScore{
			{Level: "N5", Score: 100, Total: 5, Known: 5},
			{Level: "N4", Score: 80, Total: 5, Known: 4},
		},
		Details: []scoring.BandDetail{
			{BandID: 1, TotalInBand: 30, KnownInBand: 28, PredictedInBand: 1400},
			{BandID: 2, TotalInBand: 30, KnownInBand: 20, PredictedInBand: 2000},
			{BandID: 3, TotalInBand: 10, KnownInBand: 2, PredictedInBand: 0, Dropped: true},
		},
		TotalQuestions: 70,
	}
}

func TestViewShowsHeadlineNumber(t *testing.T) {
	r := New(sampleResult(), "run-test", func() screen.Screen { return nil })
	view := r.renderContent(100)

	if !strings.Contains(view, "6,200") {
		t.Error("expected the formatted total in the view")
	}
	if !strings.Contains(view, "N2") {
		t.Error("expected the JLPT level in the view")
	}
	if !strings.Contains(view, "Comfortable with everyday prose") {
		t.Error("expected the literacy description in the view")
	}
}

func TestRetryKeyRestarts(t *testing.T) {
	called := 0
	r := New(sampleResult(), "run-test", func() screen.Screen {
		called++
		return nil
	})

	_, cmd := r.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command from the retry key")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if called != 1 {
		t.Errorf("restart factory called %d times, want 1", called)
	}
}

func TestScrollClamps(t *testing.T) {
	r := New(sampleResult(), "run-test", func() screen.Screen { return nil })

	r.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if r.scroll != 0 {
		t.Error("scroll must not go negative")
	}

	for range 500 {
		r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	view := r.View(100, 20)
	if got := len(strings.Split(view, "\n")); got > 20 {
		t.Errorf("view height = %d lines, want at most 20", got)
	}
	if r.scroll > 400 {
		t.Error("scroll should clamp to the content length")
	}
}

func TestReportThresholds(t *testing.T) {
	cases := []struct {
		name      string
		predicted int
		band1     [2]int // known, total
		wantWord  string
		warning   bool
	}{
		{"beginning stage", 900, [2]int{5, 10}, "beginning", false},
		{"intermediate", 5000, [2]int{9, 10}, "intermediate", false},
		{"independent reader", 12000, [2]int{10, 10}, "independent", false},
		{"shaky foundation", 5000, [2]int{6, 10}, "intermediate", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := scoring.Result{
				TotalPredicted: tc.predicted,
				Details: []scoring.BandDetail{
					{BandID: 1, KnownInBand: tc.band1[0], TotalInBand: tc.band1[1]},
				},
			}
			rep := buildReport(r)
			if !strings.Contains(rep.Summary, tc.wantWord) {
				t.Errorf("summary %q does not mention %q", rep.Summary, tc.wantWord)
			}
			if (rep.Warning != "") != tc.warning {
				t.Errorf("warning presence = %v, want %v", rep.Warning != "", tc.warning)
			}
		})
	}
}
