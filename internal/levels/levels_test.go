package levels

import "testing"

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tables invalid: %v", err)
	}
}

func TestJLPTFor(t *testing.T) {
	tbl := Default()
	cases := []struct {
		score int
		want  string
	}{
		{0, "Below N5"},
		{799, "Below N5"},
		{800, "N5"},
		{1500, "N4"},
		{3499, "N4"},
		{3500, "N3"},
		{9999, "N2"},
		{10000, "N1"},
		{50000, "Beyond N1"},
	}
	for _, c := range cases {
		if got := tbl.JLPTFor(c.score); got != c.want {
			t.Errorf("JLPTFor(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestLiteracyFor_BankSelection(t *testing.T) {
	tbl := Default()
	def := tbl.LiteracyFor(4000, BankDefault)
	aca := tbl.LiteracyFor(4000, BankAcademic)
	imm := tbl.LiteracyFor(4000, BankImmersion)

	if def == "" || aca == "" || imm == "" {
		t.Fatal("empty literacy description")
	}
	if def == aca || def == imm || aca == imm {
		t.Error("banks should produce distinct descriptions at the same score")
	}
}

func TestLiteracyFor_UnknownBankFallsBack(t *testing.T) {
	tbl := Default()
	got := tbl.LiteracyFor(4000, Bank(99))
	want := tbl.LiteracyFor(4000, BankDefault)
	if got != want {
		t.Errorf("unknown bank = %q, want default bank %q", got, want)
	}
}

func TestValidate_RejectsUnorderedThresholds(t *testing.T) {
	tbl := Default()
	tbl.CEFR = []Entry{{0, "A1"}, {3000, "B1"}, {1500, "A2"}}
	if err := tbl.Validate(); err == nil {
		t.Fatal("expected error for unordered thresholds")
	}
}

func TestValidate_RequiresZeroStart(t *testing.T) {
	tbl := Default()
	tbl.Age = []Entry{{100, "too late"}}
	if err := tbl.Validate(); err == nil {
		t.Fatal("expected error for table not starting at 0")
	}
}
