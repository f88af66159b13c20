// Package textutil splits conversational text into sentence units and word tokens.
package textutil

import (
	"sort"
	"strings"
	"unicode"
)

// Sentences splits text into sentence-like units on '.', '!' and '?'.
// Each unit keeps its run of terminal punctuation; blank units are dropped.
func Sentences(text string) []string {
	var units []string
	var current strings.Builder

	flush := func() {
		t := strings.TrimSpace(current.String())
		if t != "" && strings.TrimFunc(t, isTerminal) != "" {
			units = append(units, t)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if !isTerminal(r) {
			continue
		}
		// Keep "?!" and "..." together with the sentence they end.
		if i+1 < len(runes) && isTerminal(runes[i+1]) {
			continue
		}
		flush()
	}
	flush()

	return units
}

// TrimTerminal strips trailing terminal punctuation and surrounding space.
func TrimTerminal(s string) string {
	return strings.TrimSpace(strings.TrimRightFunc(strings.TrimSpace(s), isTerminal))
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isWordRune matches the \w class: letters, digits and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Words lowercases text and splits it on non-word boundaries.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

// Tokens returns the words of text whose length exceeds longerThan.
func Tokens(text string, longerThan int) []string {
	var out []string
	for _, w := range Words(text) {
		if len([]rune(w)) > longerThan {
			out = append(out, w)
		}
	}
	return out
}

// TokenSet returns Tokens as a set.
func TokenSet(text string, longerThan int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokens(text, longerThan) {
		set[t] = struct{}{}
	}
	return set
}

// WordCount is one entry of a word-frequency histogram.
type WordCount struct {
	Word  string
	Count int
	first int
}

// TopWords builds a frequency histogram over texts, ignoring words for which
// skip returns true, and returns the n most frequent. Ties keep first-seen order.
func TopWords(texts []string, n int, skip func(string) bool) []WordCount {
	index := map[string]int{}
	var counts []WordCount
	pos := 0
	for _, text := range texts {
		for _, w := range Words(text) {
			pos++
			if skip != nil && skip(w) {
				continue
			}
			if i, ok := index[w]; ok {
				counts[i].Count++
				continue
			}
			index[w] = len(counts)
			counts = append(counts, WordCount{Word: w, Count: 1, first: pos})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].first < counts[j].first
	})

	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
