package tagger

import (
	"hash/fnv"
	"math/bits"
	"sort"
	"strings"
	"unicode"
)

// stopwords dropped during headline normalization.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"that": true, "this": true, "are": true, "was": true, "were": true,
	"has": true, "have": true, "had": true, "will": true, "would": true,
	"could": true, "after": true, "amid": true, "over": true, "under": true,
	"its": true, "their": true, "says": true, "said": true, "into": true,
	"about": true, "but": true, "not": true,
}

// Tokens normalizes headline text: digits and punctuation are stripped, the
// rest lowercased and split on whitespace, stopwords and tokens of length
// <= 2 dropped. The result holds unique tokens in first-seen order.
func Tokens(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, text)

	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 2 || stopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

// Fingerprint hashes the (ticker, sorted token set) pair with 64-bit FNV-1a.
func Fingerprint(ticker, text string) uint64 {
	tokens := Tokens(text)
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)

	h := fnv.New64a()
	h.Write([]byte(strings.ToUpper(strings.TrimSpace(ticker))))
	h.Write([]byte("|"))
	h.Write([]byte(strings.Join(sorted, " ")))
	return h.Sum64()
}

// Jaccard returns the token-set similarity of two token lists in [0,1].
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, tok := range a {
		set[tok] = true
	}
	intersection := 0
	union := len(set)
	for _, tok := range b {
		if set[tok] {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

// BitSimilarity returns 1 - popcount(a^b)/64, a cheap proxy for fingerprint
// closeness.
func BitSimilarity(a, b uint64) float64 {
	return 1 - float64(bits.OnesCount64(a^b))/64
}
