// Package knowledge holds the chat assistant's knowledge base and the keyword
// matcher that picks a canned answer for free-text input.
package knowledge

import (
	"strings"
	"unicode/utf8"

	"adastra/internal/domain"
)

type phrase struct {
	text   string
	weight int
}

type entry struct {
	phrases []phrase
	answer  string
}

// Matcher scores input against a fixed knowledge base. It is immutable and
// safe for concurrent use.
type Matcher struct {
	entries  []entry
	fallback string
}

// NewMatcher builds a Matcher over a private copy of kb.
func NewMatcher(kb domain.KnowledgeBase) *Matcher {
	m := &Matcher{
		entries:  make([]entry, 0, len(kb.Entries)),
		fallback: kb.Fallback,
	}
	for _, e := range kb.Entries {
		ent := entry{answer: e.Answer, phrases: make([]phrase, 0, len(e.Keywords))}
		for _, kw := range e.Keywords {
			ent.phrases = append(ent.phrases, phrase{text: kw, weight: wordCount(kw)})
		}
		m.entries = append(m.entries, ent)
	}
	return m
}

// Match returns the answer of the highest scoring entry, or the fallback.
//
// A keyword phrase scores its word count when the lowercased input contains
// it as a plain substring, so "hi" also matches inside "this". Only a strictly
// greater score replaces the current best, so earlier entries win ties.
func (m *Matcher) Match(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	if utf8.RuneCountInString(lower) < 2 {
		return m.fallback
	}

	bestScore := 0
	bestAnswer := m.fallback
	for _, e := range m.entries {
		score := 0
		for _, p := range e.phrases {
			if strings.Contains(lower, p.text) {
				score += p.weight
			}
		}
		if score > bestScore {
			bestScore = score
			bestAnswer = e.answer
		}
	}
	return bestAnswer
}

// Fallback returns the default answer.
func (m *Matcher) Fallback() string {
	return m.fallback
}

// wordCount counts space separated pieces of a keyword phrase.
func wordCount(kw string) int {
	return strings.Count(kw, " ") + 1
}
