package scoring

import (
	"testing"

	"github.com/philiaspace/kotoba/internal/bands"
	"github.com/philiaspace/kotoba/internal/levels"
	"github.com/philiaspace/kotoba/internal/wordstore"
)

func singleBandTable() bands.Table {
	return bands.Table{
		Bands: []bands.Band{
			{ID: 1, MinRank: 1, MaxRank: 1000, Ratio: 1.0, SparsityFactor: 1.0},
		},
	}
}

func threeBandTable() bands.Table {
	return bands.Table{
		Bands: []bands.Band{
			{ID: 1, MinRank: 1, MaxRank: 1000, Ratio: 0.4, SparsityFactor: 1.0},
			{ID: 2, MinRank: 1001, MaxRank: 3000, Ratio: 0.3, SparsityFactor: 1.0},
			{ID: 3, MinRank: 3001, MaxRank: 8000, Ratio: 0.3, SparsityFactor: 0.9},
		},
	}
}

func answers(bandID, known, unknown int) []Answer {
	out := make([]Answer, 0, known+unknown)
	for i := 0; i < known; i++ {
		out = append(out, Answer{ID: bandID*10000 + i, BandID: bandID, Known: true})
	}
	for i := 0; i < unknown; i++ {
		out = append(out, Answer{ID: bandID*10000 + known + i, BandID: bandID, Known: false})
	}
	return out
}

func TestScore_SingleBandAllKnown(t *testing.T) {
	in := Input{
		History: answers(1, 10, 0),
		Table:   singleBandTable(),
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	}

	got := Score(in)
	if got.TotalPredicted != 1000 {
		t.Fatalf("TotalPredicted = %d, want 1000", got.TotalPredicted)
	}
	if got.TotalQuestions != 10 {
		t.Errorf("TotalQuestions = %d, want 10", got.TotalQuestions)
	}
	if len(got.Details) != 1 || got.Details[0].PredictedInBand != 1000 {
		t.Errorf("Details = %+v, want one band predicting 1000", got.Details)
	}
}

func TestScore_GuillotineZeroesRarerBands(t *testing.T) {
	history := append(answers(1, 10, 0), answers(2, 9, 1)...)
	history = append(history, answers(3, 1, 9)...) // 0.1 < failure threshold

	in := Input{
		History: history,
		Table:   threeBandTable(),
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	}

	got := Score(in)

	var band3 BandDetail
	for _, d := range got.Details {
		if d.BandID == 3 {
			band3 = d
		}
	}
	if !band3.Dropped {
		t.Error("band 3 should be dropped by the cutoff")
	}
	if band3.PredictedInBand != 0 || band3.KnownInBand != 0 {
		t.Errorf("band 3 predicted=%d known=%d, want both 0", band3.PredictedInBand, band3.KnownInBand)
	}

	wantTotal := got.Details[0].PredictedInBand + got.Details[1].PredictedInBand
	if got.TotalPredicted != wantTotal {
		t.Errorf("TotalPredicted = %d, want surviving bands only (%d)", got.TotalPredicted, wantTotal)
	}
}

func TestScore_GuillotineMonotonicity(t *testing.T) {
	// Band 3 fails, band 4 would score perfectly on its own. The
	// cutoff must still zero band 4.
	table := bands.Table{
		Bands: []bands.Band{
			{ID: 1, MinRank: 1, MaxRank: 1000, Ratio: 0.25, SparsityFactor: 1.0},
			{ID: 2, MinRank: 1001, MaxRank: 3000, Ratio: 0.25, SparsityFactor: 1.0},
			{ID: 3, MinRank: 3001, MaxRank: 8000, Ratio: 0.25, SparsityFactor: 0.9},
			{ID: 4, MinRank: 8001, MaxRank: 15000, Ratio: 0.25, SparsityFactor: 0.85},
		},
	}
	history := append(answers(1, 10, 0), answers(2, 10, 0)...)
	history = append(history, answers(3, 0, 10)...)
	history = append(history, answers(4, 10, 0)...)

	got := Score(Input{
		History: history,
		Table:   table,
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	})

	for _, d := range got.Details {
		if d.BandID >= 3 && d.PredictedInBand != 0 {
			t.Errorf("band %d predicted %d after cutoff, want 0", d.BandID, d.PredictedInBand)
		}
	}
}

func TestScore_UntestedBandIsZeroNotNaN(t *testing.T) {
	in := Input{
		History: answers(1, 5, 5), // bands 2 and 3 never tested
		Table:   threeBandTable(),
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	}

	got := Score(in)
	for _, d := range got.Details {
		if d.BandID == 1 {
			continue
		}
		if d.TotalInBand != 0 || d.PredictedInBand != 0 {
			t.Errorf("untested band %d: %+v, want zero contribution", d.BandID, d)
		}
	}
	if got.TotalPredicted != 500 {
		t.Errorf("TotalPredicted = %d, want 500 from band 1 alone", got.TotalPredicted)
	}
}

func TestScore_EmptyHistory(t *testing.T) {
	got := Score(Input{
		Table:  threeBandTable(),
		Levels: levels.Default(),
		Mode:   ModeStreaming,
		Params: DefaultParams(),
	})
	if got.TotalPredicted != 0 {
		t.Errorf("TotalPredicted = %d, want 0", got.TotalPredicted)
	}
	if got.LearnerType != LearnerBeginner {
		t.Errorf("LearnerType = %q, want beginner on empty history", got.LearnerType)
	}
}

func TestScore_DampingDiscountsRareBands(t *testing.T) {
	table := bands.Table{
		Bands: []bands.Band{
			{ID: 1, MinRank: 1, MaxRank: 1000, Ratio: 0.2, SparsityFactor: 1.0},
			{ID: 2, MinRank: 1001, MaxRank: 3000, Ratio: 0.2, SparsityFactor: 1.0},
			{ID: 3, MinRank: 3001, MaxRank: 8000, Ratio: 0.2, SparsityFactor: 0.9},
			{ID: 4, MinRank: 8001, MaxRank: 15000, Ratio: 0.4, SparsityFactor: 0.85},
		},
	}
	history := append(answers(1, 10, 0), answers(2, 10, 0)...)
	history = append(history, answers(3, 10, 0)...)
	history = append(history, answers(4, 10, 0)...) // 40 questions, short test

	got := Score(Input{
		History: history,
		Table:   table,
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	})

	// Band 4 size is 7000; a perfect ratio damped by 0.6 predicts 4200.
	var band4 BandDetail
	for _, d := range got.Details {
		if d.BandID == 4 {
			band4 = d
		}
	}
	if band4.PredictedInBand != 4200 {
		t.Errorf("band 4 predicted = %d, want 4200 (0.6 damping)", band4.PredictedInBand)
	}
	// Band 3 is below the damping start and stays undamped.
	for _, d := range got.Details {
		if d.BandID == 3 && d.PredictedInBand != 5000 {
			t.Errorf("band 3 predicted = %d, want 5000 undamped", d.PredictedInBand)
		}
	}
}

func TestScore_SparsityAppliesInBatchModeOnly(t *testing.T) {
	table := singleBandTable()
	table.Bands[0].SparsityFactor = 0.5
	history := answers(1, 10, 0)

	streaming := Score(Input{
		History: history, Table: table, Levels: levels.Default(),
		Mode: ModeStreaming, Params: DefaultParams(),
	})
	batch := Score(Input{
		History: history, Table: table, Levels: levels.Default(),
		Mode: ModeBatch, Params: DefaultParams(),
	})

	if streaming.TotalPredicted != 1000 {
		t.Errorf("streaming TotalPredicted = %d, want 1000", streaming.TotalPredicted)
	}
	if batch.TotalPredicted != 500 {
		t.Errorf("batch TotalPredicted = %d, want 500 with sparsity 0.5", batch.TotalPredicted)
	}
}

func TestScore_RadarComplexityUsesCompoundsOnly(t *testing.T) {
	words := map[int]wordstore.Word{
		1: {ID: 1, Text: "勉強"},   // compound, known
		2: {ID: 2, Text: "学校"},   // compound, unknown
		3: {ID: 3, Text: "たべる"},  // not a compound
		4: {ID: 4, Text: "消しゴム"}, // single leading kanji, not a compound
	}
	history := []Answer{
		{ID: 1, BandID: 1, Known: true},
		{ID: 2, BandID: 1, Known: false},
		{ID: 3, BandID: 1, Known: true},
		{ID: 4, BandID: 1, Known: true},
	}

	got := Score(Input{
		History: history,
		Words:   words,
		Table:   singleBandTable(),
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	})

	if got.Radar.Complexity != 50 {
		t.Errorf("Complexity = %d, want 50 (1 of 2 compounds known)", got.Radar.Complexity)
	}
	if got.Radar.Survival != 75 {
		t.Errorf("Survival = %d, want 75 (3 of 4 known)", got.Radar.Survival)
	}
}

func TestScore_LevelMapping(t *testing.T) {
	// 10/10 known over ranks 1..6000 predicts 6000, which sits exactly
	// on the N2 threshold.
	table := bands.Table{
		Bands: []bands.Band{
			{ID: 1, MinRank: 1, MaxRank: 6000, Ratio: 1.0, SparsityFactor: 1.0},
		},
	}
	got := Score(Input{
		History: answers(1, 10, 0),
		Table:   table,
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	})

	if got.JLPTLevel != "N2" {
		t.Errorf("JLPTLevel = %q, want N2 at 6000 words", got.JLPTLevel)
	}
	if got.CEFRLevel == "" || got.AgeEquivalent == "" || got.LiteracyDescription == "" {
		t.Errorf("level labels incomplete: %+v", got)
	}
}

func TestScore_TagProfileSanityRules(t *testing.T) {
	words := map[int]wordstore.Word{
		1: {ID: 1, Text: "水", Tag: "5"},
		2: {ID: 2, Text: "火", Tag: "5"},
		3: {ID: 3, Text: "木", Tag: "5"},
		4: {ID: 4, Text: "金", Tag: "4"},
		5: {ID: 5, Text: "土", Tag: "4"},
		6: {ID: 6, Text: "日", Tag: "4"},
		7: {ID: 7, Text: "憂鬱", Tag: "1"},
	}
	known := func(id int) Answer { return Answer{ID: id, BandID: 1, Known: true} }
	history := []Answer{
		known(1), known(2), known(3),
		known(4), known(5), known(6),
		known(7),
	}

	// Small estimate: N3+ must be zeroed even with a perfect N1 sample.
	small := Score(Input{
		History: history,
		Words:   words,
		Table:   singleBandTable(), // max 1000 predicted, under the floor
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	})
	for _, ts := range small.TagScores {
		switch ts.Level {
		case "N1":
			if ts.Score != 0 {
				t.Errorf("N1 score = %d, want 0 under the estimate floor", ts.Score)
			}
			if ts.Known != 1 || ts.Total != 1 {
				t.Errorf("N1 counts = %d/%d, raw counts must survive zeroing", ts.Known, ts.Total)
			}
		case "N5", "N4":
			if ts.Score != 100 {
				t.Errorf("%s score = %d, want 100", ts.Level, ts.Score)
			}
		}
	}

	// Large estimate with proficient N5/N4: upper levels keep their scores.
	big := bands.Table{
		Bands: []bands.Band{
			{ID: 1, MinRank: 1, MaxRank: 10000, Ratio: 1.0, SparsityFactor: 1.0},
		},
	}
	large := Score(Input{
		History: history,
		Words:   words,
		Table:   big,
		Levels:  levels.Default(),
		Mode:    ModeStreaming,
		Params:  DefaultParams(),
	})
	for _, ts := range large.TagScores {
		if ts.Level == "N1" && ts.Score != 100 {
			t.Errorf("N1 score = %d, want 100 once sanity rules pass", ts.Score)
		}
	}
}
