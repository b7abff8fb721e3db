package scoring

import "testing"

func statsFromRatios(ratios map[int]float64) map[int]*bandStats {
	stats := make(map[int]*bandStats, 8)
	for id := 1; id <= 8; id++ {
		stats[id] = &bandStats{raw: ratios[id]}
	}
	return stats
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		ratios map[int]float64
		want   LearnerType
	}{
		{
			name:   "shaky band one",
			ratios: map[int]float64{1: 0.4, 2: 0.9},
			want:   LearnerBeginner,
		},
		{
			name:   "shaky band two",
			ratios: map[int]float64{1: 0.9, 2: 0.3},
			want:   LearnerBeginner,
		},
		{
			name: "strong everywhere",
			ratios: map[int]float64{
				1: 1.0, 2: 0.95, 3: 0.9, 4: 0.85,
				5: 0.7, 6: 0.6, 7: 0.4,
			},
			want: LearnerBalanced,
		},
		{
			name: "rare band reach without foundation depth",
			ratios: map[int]float64{
				1: 0.8, 2: 0.7, 3: 0.5, 4: 0.3,
				5: 0.1, 6: 0.2, 7: 0.0,
			},
			want: LearnerImmersion,
		},
		{
			name: "curriculum profile",
			ratios: map[int]float64{
				1: 0.9, 2: 0.85, 3: 0.7, 4: 0.4,
				5: 0.05, 6: 0.0, 7: 0.0,
			},
			want: LearnerAcademic,
		},
		{
			name: "ratio signal alone triggers immersion",
			ratios: map[int]float64{
				1: 0.6, 2: 0.5, 3: 0.0, 4: 0.0,
				5: 0.25, 6: 0.1, 7: 0.02,
			},
			want: LearnerImmersion,
		},
	}

	p := DefaultParams()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(statsFromRatios(tt.ratios), p)
			if got != tt.want {
				t.Errorf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDampingFactor(t *testing.T) {
	p := DefaultParams()
	cases := []struct {
		questions int
		want      float64
	}{
		{10, 0.6},
		{100, 0.6},
		{101, 0.85},
		{200, 0.85},
		{201, 1.0},
		{500, 1.0},
	}
	for _, c := range cases {
		if got := p.dampingFactor(c.questions); got != c.want {
			t.Errorf("dampingFactor(%d) = %v, want %v", c.questions, got, c.want)
		}
	}
}
