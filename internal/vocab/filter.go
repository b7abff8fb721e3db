// Package vocab filters the raw frequency list down to words worth
// testing. Corpus ranks include entries that measure counting rather
// than vocabulary (bare numerals, numeral+counter compounds, symbol
// noise) and those say nothing about a learner's word knowledge.
package vocab

import (
	"strings"
	"unicode"
)

// Characters whose presence marks a corpus artifact, not a word.
const rejectSymbols = ":：・％%"

// kanjiNumerals are the native numeral characters used by the
// numeral-only and numeral+counter rejections.
const kanjiNumerals = "一二三四五六七八九十百千万億兆〇"

// counterSuffixes are unit counters that, following a numeral run, form
// counting expressions (e.g. 六十二年度, 三日目) rather than vocabulary.
var counterSuffixes = []string{
	"年度", "日目", "時間",
	"分", "秒", "回", "番", "月", "日", "年", "人", "円", "階", "号",
}

// IsValid reports whether a word string is testable. Script mixes
// (katakana, hiragana, kanji, Latin) are all acceptable; only numeric
// and symbolic artifacts are rejected.
func IsValid(w string) bool {
	if w == "" {
		return false
	}

	if strings.ContainsAny(w, rejectSymbols) {
		return false
	}

	for _, r := range w {
		if isDigit(r) {
			return false
		}
	}

	if isNumeralCounter(w) {
		return false
	}

	// Pure numeral runs of two or more characters are counting, not
	// vocabulary. Single numerals (一, 十) stay in: they are real words.
	runes := []rune(w)
	if len(runes) >= 2 && allNumerals(runes) {
		return false
	}

	return true
}

// isDigit covers ASCII and full-width Arabic digits.
func isDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= '０' && r <= '９')
}

func isKanjiNumeral(r rune) bool {
	return strings.ContainsRune(kanjiNumerals, r)
}

func allNumerals(runes []rune) bool {
	for _, r := range runes {
		if !isKanjiNumeral(r) {
			return false
		}
	}
	return true
}

// isNumeralCounter matches a run of one or more kanji numerals followed
// by exactly one counter suffix.
func isNumeralCounter(w string) bool {
	for _, suffix := range counterSuffixes {
		rest, found := strings.CutSuffix(w, suffix)
		if !found || rest == "" {
			continue
		}
		if allNumerals([]rune(rest)) {
			return true
		}
	}
	return false
}

// IsCompound reports whether the word contains at least two consecutive
// ideographic (Han) characters. Such jukugo are used as a proxy for
// reading difficulty.
func IsCompound(w string) bool {
	run := 0
	for _, r := range w {
		if unicode.Is(unicode.Han, r) {
			run++
			if run >= 2 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
