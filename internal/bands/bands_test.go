package bands

import "testing"

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
}

func TestDefault_PartitionContiguous(t *testing.T) {
	tbl := Default()
	for i := 1; i < len(tbl.Bands); i++ {
		prev := tbl.Bands[i-1]
		cur := tbl.Bands[i]
		if cur.MinRank != prev.MaxRank+1 {
			t.Errorf("band %d starts at %d, want %d", cur.ID, cur.MinRank, prev.MaxRank+1)
		}
	}
	if tbl.Bands[0].MinRank != 1 {
		t.Errorf("band 1 starts at %d, want 1", tbl.Bands[0].MinRank)
	}
	if tbl.Bands[len(tbl.Bands)-1].MaxRank != 70000 {
		t.Errorf("last band ends at %d, want 70000", tbl.Bands[len(tbl.Bands)-1].MaxRank)
	}
}

func TestValidate_RejectsGap(t *testing.T) {
	tbl := Table{
		Bands: []Band{
			{ID: 1, MinRank: 1, MaxRank: 1000, Ratio: 0.5, SparsityFactor: 1.0},
			{ID: 2, MinRank: 1002, MaxRank: 3000, Ratio: 0.5, SparsityFactor: 1.0},
		},
	}
	if err := tbl.Validate(); err == nil {
		t.Fatal("expected error for non-contiguous bands")
	}
}

func TestValidate_RejectsBadRatioSum(t *testing.T) {
	tbl := Table{
		Bands: []Band{
			{ID: 1, MinRank: 1, MaxRank: 1000, Ratio: 0.5, SparsityFactor: 1.0},
			{ID: 2, MinRank: 1001, MaxRank: 3000, Ratio: 0.4, SparsityFactor: 1.0},
		},
	}
	if err := tbl.Validate(); err == nil {
		t.Fatal("expected error for ratio sum != 1.0")
	}
}

func TestByRank(t *testing.T) {
	tbl := Default()
	cases := []struct {
		rank   int
		bandID int
	}{
		{1, 1},
		{1000, 1},
		{1001, 2},
		{8000, 3},
		{8001, 4},
		{70000, 8},
	}
	for _, c := range cases {
		b, ok := tbl.ByRank(c.rank)
		if !ok {
			t.Errorf("rank %d: no band found", c.rank)
			continue
		}
		if b.ID != c.bandID {
			t.Errorf("rank %d: got band %d, want %d", c.rank, b.ID, c.bandID)
		}
	}
	if _, ok := tbl.ByRank(70001); ok {
		t.Error("rank 70001 should not belong to any band")
	}
}

func TestAdvanceThreshold_ClampsBeyondTable(t *testing.T) {
	tbl := Default()
	if got := tbl.AdvanceThreshold(1); got != 30 {
		t.Errorf("band 1 threshold = %d, want 30", got)
	}
	if got := tbl.AdvanceThreshold(8); got != 68 {
		t.Errorf("band 8 threshold = %d, want 68", got)
	}
	if got := tbl.AdvanceThreshold(12); got != 68 {
		t.Errorf("band 12 threshold = %d, want 68 (clamped)", got)
	}
}

func TestRefreshCap_LooserAtLowBands(t *testing.T) {
	tbl := Default()
	if got := tbl.RefreshCap(1); got != 5 {
		t.Errorf("band 1 cap = %d, want 5", got)
	}
	if got := tbl.RefreshCap(8); got != 1 {
		t.Errorf("band 8 cap = %d, want 1", got)
	}
	if got := tbl.RefreshCap(9); got != 1 {
		t.Errorf("band 9 cap = %d, want 1 (clamped)", got)
	}
}
