package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxTokenRunes bounds the look-back used to classify the word in front of a
// period. Longer words are never treated as abbreviations.
const maxTokenRunes = 10

// defaultAbbreviations are lowercase and stored without their trailing period.
var defaultAbbreviations = []string{
	// Titles and names.
	"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "rev", "hon",
	"gen", "gov", "sgt", "capt", "col", "lt", "cmdr", "messrs",
	// Latin and editorial.
	"etc", "vs", "cf", "al", "ca", "approx", "ibid", "viz", "op", "cit", "misc",
	"ed", "eds", "vol", "vols", "fig", "figs", "p", "pp", "ch", "sec",
	// Organisations and addresses.
	"inc", "ltd", "co", "corp", "dept", "mt", "ave", "blvd", "rd",
	// Months.
	"jan", "feb", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	// Russian.
	"г", "гг", "др", "пр", "см", "стр", "ул", "им", "тыс", "млн", "млрд",
	"руб", "коп", "проф", "акад", "доц", "ст", "т", "напр", "рис", "табл", "гл",
}

var defaultAbbreviationSet = newAbbreviationSet(nil)

func newAbbreviationSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(defaultAbbreviations)+len(extra))
	for _, a := range defaultAbbreviations {
		set[a] = struct{}{}
	}
	for _, a := range extra {
		a = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(a), "."))
		if a != "" {
			set[a] = struct{}{}
		}
	}
	return set
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '…', '‼', '⁇', '⁈', '⁉':
		return true
	}
	return isCJKTerminal(r)
}

// isCJKTerminal marks full stops of scripts written without spaces between
// sentences; they close a sentence even when text follows immediately.
func isCJKTerminal(r rune) bool {
	switch r {
	case '。', '！', '？', '｡':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '»', '”', '’', '›', '」', '』', '）':
		return true
	}
	return false
}

func isOpener(r rune) bool {
	switch r {
	case '"', '\'', '(', '[', '{', '«', '“', '‘', '„', '‹', '「', '『', '（':
		return true
	}
	return false
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouyàáâãäåæèéêëìíîïòóôõöøùúûüýÿœаеёиоуыэюяії", unicode.ToLower(r))
}

// tokenBefore returns the word that ends at src[end], stripped of opening
// punctuation. src[:end] must be valid UTF-8.
func tokenBefore(src []byte, end int) string {
	start := end
	for n := 0; start > 0; n++ {
		r, size := utf8.DecodeLastRune(src[:start])
		if unicode.IsSpace(r) {
			break
		}
		if n >= maxTokenRunes {
			return ""
		}
		start -= size
	}
	tok := src[start:end]
	for len(tok) > 0 {
		r, size := utf8.DecodeRune(tok)
		if !isOpener(r) {
			break
		}
		tok = tok[size:]
	}
	return string(tok)
}

// isAbbreviation reports whether a period after tok belongs to the word
// rather than ending the sentence.
func isAbbreviation(set map[string]struct{}, tok string) bool {
	if tok == "" {
		return false
	}
	if _, ok := set[strings.ToLower(tok)]; ok {
		return true
	}
	if strings.ContainsRune(tok, '.') {
		return isDotted(tok)
	}
	runes := []rune(tok)
	if len(runes) == 1 {
		// Consonant initials only; "I." and "A." end sentences.
		return unicode.IsUpper(runes[0]) && !isVowel(runes[0])
	}
	return isConsonantCluster(runes)
}

// isDotted matches U.S, e.g, a.m and т.е: letter groups of one or two runes.
func isDotted(tok string) bool {
	for part := range strings.SplitSeq(tok, ".") {
		n := utf8.RuneCountInString(part)
		if n == 0 || n > 2 {
			return false
		}
		for _, r := range part {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return true
}

// isConsonantCluster matches short vowel-less words such as Mr, Ltd or Blvd.
// All-caps acronyms (TV, BBC) are ordinary words that may end a sentence.
func isConsonantCluster(runes []rune) bool {
	if len(runes) < 2 || len(runes) > 4 {
		return false
	}
	lower := false
	for _, r := range runes {
		if !unicode.In(r, unicode.Latin, unicode.Cyrillic) || isVowel(r) {
			return false
		}
		if unicode.IsLower(r) {
			lower = true
		}
	}
	return lower
}
