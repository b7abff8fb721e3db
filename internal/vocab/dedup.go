package vocab

// Deduper tracks word spellings already used in a session. Different
// ranks can back the same surface form; a spelling must not be shown
// twice even then.
type Deduper struct {
	seen map[string]bool
}

// NewDeduper creates an empty Deduper.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]bool)}
}

// Claim records the spelling and reports whether it was fresh.
// A second Claim of the same spelling returns false.
func (d *Deduper) Claim(text string) bool {
	if d.seen[text] {
		return false
	}
	d.seen[text] = true
	return true
}

// Len returns the number of claimed spellings.
func (d *Deduper) Len() int {
	return len(d.seen)
}
