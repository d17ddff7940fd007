package domain

import (
	"errors"
	"fmt"
	"strings"
)

// KnowledgeEntry associates a set of lowercase keyword phrases with a canned answer.
type KnowledgeEntry struct {
	Keywords []string `yaml:"keywords" toml:"keywords" json:"keywords"`
	Answer   string   `yaml:"answer" toml:"answer" json:"answer"`
}

// KnowledgeBase is the static configuration behind the chat assistant.
// Entry order matters: the first entry reaching the top score wins ties.
type KnowledgeBase struct {
	Greeting     string           `yaml:"greeting" toml:"greeting" json:"greeting"`
	Fallback     string           `yaml:"fallback" toml:"fallback" json:"fallback"`
	QuickReplies []string         `yaml:"quick_replies" toml:"quick_replies" json:"quick_replies"`
	Entries      []KnowledgeEntry `yaml:"entries" toml:"entries" json:"entries"`
}

// Validate checks the invariants every entry must hold.
func (kb KnowledgeBase) Validate() error {
	if strings.TrimSpace(kb.Greeting) == "" {
		return errors.New("knowledge base: greeting is empty")
	}
	if strings.TrimSpace(kb.Fallback) == "" {
		return errors.New("knowledge base: fallback answer is empty")
	}
	for i, q := range kb.QuickReplies {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("knowledge base: quick reply %d is empty", i)
		}
	}
	for i, e := range kb.Entries {
		if len(e.Keywords) == 0 {
			return fmt.Errorf("knowledge base: entry %d has no keywords", i)
		}
		if strings.TrimSpace(e.Answer) == "" {
			return fmt.Errorf("knowledge base: entry %d has an empty answer", i)
		}
		for _, kw := range e.Keywords {
			if kw == "" || kw != strings.TrimSpace(kw) || kw != strings.ToLower(kw) {
				return fmt.Errorf("knowledge base: entry %d keyword %q must be non-empty, trimmed and lowercase", i, kw)
			}
		}
	}
	return nil
}

// Clone returns a deep copy so callers can't mutate shared slices.
func (kb KnowledgeBase) Clone() KnowledgeBase {
	out := KnowledgeBase{
		Greeting:     kb.Greeting,
		Fallback:     kb.Fallback,
		QuickReplies: append([]string(nil), kb.QuickReplies...),
		Entries:      make([]KnowledgeEntry, len(kb.Entries)),
	}
	for i, e := range kb.Entries {
		out.Entries[i] = KnowledgeEntry{
			Keywords: append([]string(nil), e.Keywords...),
			Answer:   e.Answer,
		}
	}
	return out
}
