// Package levels maps a predicted vocabulary size onto human-readable
// level labels: JLPT-equivalent, CEFR-equivalent, native-age-equivalent
// and a free-text literacy description.
//
// Each table is an ordered list of thresholds; lookup picks the entry
// with the highest threshold not exceeding the score. Thresholds are
// product calibration values, not derived from a statistical model.
package levels

// Entry pairs a minimum score with its label.
type Entry struct {
	Min   int    `json:"min"`
	Label string `json:"label"`
}

// Bank selects which literacy-description text bank applies.
// Learner types read differently at the same vocabulary size: an academic
// learner reads formal text above their conversational level, an
// immersion learner the reverse.
type Bank int

const (
	BankDefault Bank = iota
	BankAcademic
	BankImmersion
)

// Tables holds every label table. Loaded once at startup; read-only.
type Tables struct {
	JLPT     []Entry `json:"jlpt"`
	CEFR     []Entry `json:"cefr"`
	Age      []Entry `json:"age"`
	Literacy map[string][]Entry `json:"literacy"`
}

// Default returns the built-in label tables.
func Default() Tables {
	return Tables{
		JLPT: []Entry{
			{0, "Below N5"},
			{800, "N5"},
			{1500, "N4"},
			{3500, "N3"},
			{6000, "N2"},
			{10000, "N1"},
			{15000, "Beyond N1"},
		},
		CEFR: []Entry{
			{0, "Pre-A1"},
			{600, "A1"},
			{1500, "A2"},
			{3000, "B1"},
			{5000, "B2"},
			{8000, "C1"},
			{12000, "C2"},
		},
		Age: []Entry{
			{0, "3-5 Years (Preschool)"},
			{1500, "6-7 Years (Elementary 1-2)"},
			{3000, "8-10 Years (Elementary 3-4)"},
			{5000, "11-12 Years (Elementary 5-6)"},
			{8000, "13-15 Years (Junior High)"},
			{12000, "16-18 Years (Senior High)"},
			{20000, "Adult Native"},
			{30000, "Well-Read Adult Native"},
		},
		Literacy: map[string][]Entry{
			bankKey(BankDefault): {
				{0, "You recognize isolated symbols more than words. Kana and the first hundred kanji are the frontier."},
				{1500, "Everyday greetings and signage make sense; connected text is still slow going."},
				{3500, "Daily conversation in writing is readable, but standard news articles remain heavy."},
				{8000, "An independent reader. Most entertainment media is open to you."},
				{15000, "Strong literacy. Editorials and technical writing are within reach."},
				{25000, "Near-native reading range across registers."},
			},
			bankKey(BankAcademic): {
				{0, "Your study has just begun; classroom basics are still settling in."},
				{1500, "Textbook Japanese is comfortable; natural, casual text trips you up more than formal prose."},
				{3500, "You read structured material well; colloquial media is where the gaps show."},
				{8000, "Formal and academic registers are a strength; keep feeding the casual side."},
				{15000, "Scholarly reading range with a polished formal register."},
			},
			bankKey(BankImmersion): {
				{0, "You pick words up from exposure; the foundations are still patchy."},
				{1500, "Media vocabulary outpaces textbook vocabulary; watch for gaps in the basics."},
				{3500, "You handle rare words surprisingly well, with soft spots in common formal terms."},
				{8000, "A wide, exposure-built vocabulary. Formal registers will round it out."},
				{15000, "Deep immersion range; rare and literary words hold few surprises."},
			},
		},
	}
}

// JLPTFor returns the JLPT-equivalent label for the score.
func (t Tables) JLPTFor(score int) string {
	return lookup(t.JLPT, score)
}

// CEFRFor returns the CEFR-equivalent label for the score.
func (t Tables) CEFRFor(score int) string {
	return lookup(t.CEFR, score)
}

// AgeFor returns the native-age-equivalent label for the score.
func (t Tables) AgeFor(score int) string {
	return lookup(t.Age, score)
}

// LiteracyFor returns the literacy description for the score from the
// given bank, falling back to the default bank when the requested bank
// is missing.
func (t Tables) LiteracyFor(score int, bank Bank) string {
	entries, ok := t.Literacy[bankKey(bank)]
	if !ok || len(entries) == 0 {
		entries = t.Literacy[bankKey(BankDefault)]
	}
	return lookup(entries, score)
}

// lookup returns the label of the entry with the highest Min not
// exceeding score. Entries must be ordered by ascending Min.
func lookup(entries []Entry, score int) string {
	label := ""
	for _, e := range entries {
		if score >= e.Min {
			label = e.Label
		} else {
			break
		}
	}
	return label
}

func bankKey(b Bank) string {
	switch b {
	case BankAcademic:
		return "academic"
	case BankImmersion:
		return "immersion"
	default:
		return "default"
	}
}

// Validate checks that every table is non-empty, starts at 0 and is
// strictly ascending.
func (t Tables) Validate() error {
	if err := validateEntries("jlpt", t.JLPT); err != nil {
		return err
	}
	if err := validateEntries("cefr", t.CEFR); err != nil {
		return err
	}
	if err := validateEntries("age", t.Age); err != nil {
		return err
	}
	if len(t.Literacy) == 0 {
		return errEmpty("literacy")
	}
	if _, ok := t.Literacy[bankKey(BankDefault)]; !ok {
		return errMissingDefault
	}
	for name, entries := range t.Literacy {
		if err := validateEntries("literacy."+name, entries); err != nil {
			return err
		}
	}
	return nil
}
