// Package bands defines the frequency-band partition of the word rank
// space and the per-band tuning tables used by the sampler and the
// session manager.
package bands

import "fmt"

// Band is one contiguous slice of the frequency rank space, treated as a
// single difficulty tier.
type Band struct {
	// ID orders bands by increasing rarity, starting at 1.
	ID int `json:"id"`

	// MinRank and MaxRank bound the band (inclusive). Bands partition the
	// full rank space without gaps or overlaps.
	MinRank int `json:"minRank"`
	MaxRank int `json:"maxRank"`

	// Ratio is the fraction of a fixed-size batch test drawn from this
	// band. Ratios across the table sum to 1.0.
	Ratio float64 `json:"ratio"`

	// SparsityFactor discounts the band's effective population during
	// extrapolation. Rarer bands get stronger discounts: perfect accuracy
	// on a handful of samples should not claim the whole rank range.
	SparsityFactor float64 `json:"sparsityFactor"`
}

// Size returns the number of ranks in the band.
func (b Band) Size() int {
	return b.MaxRank - b.MinRank + 1
}

// Contains reports whether rank falls inside the band.
func (b Band) Contains(rank int) bool {
	return rank >= b.MinRank && rank <= b.MaxRank
}

// Table is an ordered list of bands plus the per-band progression knobs.
type Table struct {
	Bands []Band `json:"bands"`

	// AdvanceThresholds[i] is the number of answers in band i+1 that
	// advances streaming sampling to the next band. Thresholds grow with
	// rarity: returns diminish at rarer bands, so more evidence is asked
	// for before moving on.
	AdvanceThresholds []int `json:"advanceThresholds"`

	// RefreshCaps[i] is the number of manual refreshes allowed while band
	// i+1 is active; reaching the cap ends the test.
	RefreshCaps []int `json:"refreshCaps"`
}

// Default returns the built-in band table, derived from the BCCWJ
// frequency list (70,000 ranks across eight bands).
func Default() Table {
	return Table{
		Bands: []Band{
			{ID: 1, MinRank: 1, MaxRank: 1000, Ratio: 0.14, SparsityFactor: 1.0},
			{ID: 2, MinRank: 1001, MaxRank: 3000, Ratio: 0.14, SparsityFactor: 1.0},
			{ID: 3, MinRank: 3001, MaxRank: 8000, Ratio: 0.14, SparsityFactor: 0.9},
			{ID: 4, MinRank: 8001, MaxRank: 15000, Ratio: 0.14, SparsityFactor: 0.85},
			{ID: 5, MinRank: 15001, MaxRank: 25000, Ratio: 0.12, SparsityFactor: 0.75},
			{ID: 6, MinRank: 25001, MaxRank: 40000, Ratio: 0.12, SparsityFactor: 0.65},
			{ID: 7, MinRank: 40001, MaxRank: 55000, Ratio: 0.10, SparsityFactor: 0.55},
			{ID: 8, MinRank: 55001, MaxRank: 70000, Ratio: 0.10, SparsityFactor: 0.50},
		},
		AdvanceThresholds: []int{30, 30, 35, 43, 54, 68, 68, 68},
		RefreshCaps:       []int{5, 5, 5, 4, 3, 2, 2, 1},
	}
}

// Get returns the band with the given ID.
func (t Table) Get(id int) (Band, bool) {
	for _, b := range t.Bands {
		if b.ID == id {
			return b, true
		}
	}
	return Band{}, false
}

// ByRank returns the band containing the given rank.
func (t Table) ByRank(rank int) (Band, bool) {
	for _, b := range t.Bands {
		if b.Contains(rank) {
			return b, true
		}
	}
	return Band{}, false
}

// MaxID returns the highest band ID, or 0 for an empty table.
func (t Table) MaxID() int {
	if len(t.Bands) == 0 {
		return 0
	}
	return t.Bands[len(t.Bands)-1].ID
}

// AdvanceThreshold returns the answered-count threshold for the band.
// Bands beyond the configured list reuse the last entry.
func (t Table) AdvanceThreshold(bandID int) int {
	return clampLookup(t.AdvanceThresholds, bandID)
}

// RefreshCap returns the manual-refresh allowance for the band.
// Bands beyond the configured list reuse the last entry.
func (t Table) RefreshCap(bandID int) int {
	return clampLookup(t.RefreshCaps, bandID)
}

func clampLookup(vals []int, bandID int) int {
	if len(vals) == 0 {
		return 0
	}
	idx := bandID - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(vals) {
		idx = len(vals) - 1
	}
	return vals[idx]
}

// Validate checks the structural invariants of the table: IDs are
// sequential from 1, ranges are contiguous and non-overlapping, ratios
// sum to 1.0, and sparsity factors stay in (0, 1].
func (t Table) Validate() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("band table is empty")
	}

	ratioSum := 0.0
	for i, b := range t.Bands {
		if b.ID != i+1 {
			return fmt.Errorf("band at index %d has ID %d, want %d", i, b.ID, i+1)
		}
		if b.MinRank > b.MaxRank {
			return fmt.Errorf("band %d: minRank %d exceeds maxRank %d", b.ID, b.MinRank, b.MaxRank)
		}
		if i == 0 {
			if b.MinRank != 1 {
				return fmt.Errorf("band 1 must start at rank 1, got %d", b.MinRank)
			}
		} else if b.MinRank != t.Bands[i-1].MaxRank+1 {
			return fmt.Errorf("band %d: minRank %d is not contiguous with band %d maxRank %d",
				b.ID, b.MinRank, t.Bands[i-1].ID, t.Bands[i-1].MaxRank)
		}
		if b.Ratio < 0 || b.Ratio > 1 {
			return fmt.Errorf("band %d: ratio %g out of range", b.ID, b.Ratio)
		}
		if b.SparsityFactor <= 0 || b.SparsityFactor > 1 {
			return fmt.Errorf("band %d: sparsityFactor %g out of (0, 1]", b.ID, b.SparsityFactor)
		}
		ratioSum += b.Ratio
	}

	const tolerance = 1e-9
	if ratioSum < 1-tolerance || ratioSum > 1+tolerance {
		return fmt.Errorf("band ratios sum to %g, want 1.0", ratioSum)
	}

	for _, v := range t.AdvanceThresholds {
		if v <= 0 {
			return fmt.Errorf("advance threshold %d must be positive", v)
		}
	}
	for _, v := range t.RefreshCaps {
		if v <= 0 {
			return fmt.Errorf("refresh cap %d must be positive", v)
		}
	}

	return nil
}
