// Package wordstore resolves frequency ranks to word entries against the
// remote word database (a PostgREST-style endpoint over the BCCWJ
// frequency list, with a side table of JLPT proficiency tags).
package wordstore

import "context"

// Word is one entry of the frequency list. Immutable once fetched.
type Word struct {
	// ID is the frequency rank (1 = most frequent).
	ID int `json:"id"`

	// Text is the word's surface form.
	Text string `json:"word"`

	// Tag is the JLPT proficiency level ("1".."5") when known, empty
	// otherwise. Tag resolution is best-effort.
	Tag string `json:"tags,omitempty"`
}

// Resolver maps a set of frequency ranks to Word entries.
type Resolver interface {
	// Resolve fetches the given ranks. Ranks missing from the remote
	// table are absent from the result map; that alone is not an error.
	Resolve(ctx context.Context, ids []int) (map[int]Word, error)
}
