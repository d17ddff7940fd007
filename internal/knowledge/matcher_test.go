package knowledge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"adastra/internal/domain"
)

func twoEntryKB() domain.KnowledgeBase {
	return domain.KnowledgeBase{
		Greeting: "Hello",
		Fallback: "Fallback answer",
		Entries: []domain.KnowledgeEntry{
			{Keywords: []string{"job", "apply"}, Answer: "Jobs answer"},
			{Keywords: []string{"contact", "phone"}, Answer: "Contact answer"},
		},
	}
}

func TestMatch_ShortInputReturnsFallback(t *testing.T) {
	m := NewMatcher(twoEntryKB())
	for _, in := range []string{"", "   ", "j", " J ", "é", "\t\n"} {
		require.Equal(t, "Fallback answer", m.Match(in), "input %q", in)
	}
}

func TestMatch_NoKeywordReturnsFallback(t *testing.T) {
	m := NewMatcher(twoEntryKB())
	require.Equal(t, "Fallback answer", m.Match("hi"))
	require.Equal(t, "Fallback answer", m.Match("what is the weather like"))
}

func TestMatch_SingleEntry(t *testing.T) {
	m := NewMatcher(twoEntryKB())
	require.Equal(t, "Jobs answer", m.Match("I want to apply for a job"))
	require.Equal(t, "Contact answer", m.Match("what is your PHONE number?"))
}

func TestMatch_LongerPhraseOutranksRegardlessOfOrder(t *testing.T) {
	kb := domain.KnowledgeBase{
		Fallback: "Fallback answer",
		Entries: []domain.KnowledgeEntry{
			{Keywords: []string{"talent"}, Answer: "B"},
			{Keywords: []string{"find talent"}, Answer: "A"},
		},
	}
	require.Equal(t, "A", NewMatcher(kb).Match("I need to find talent"))

	kb.Entries[0], kb.Entries[1] = kb.Entries[1], kb.Entries[0]
	require.Equal(t, "A", NewMatcher(kb).Match("I need to find talent"))
}

func TestMatch_TieGoesToFirstEntry(t *testing.T) {
	m := NewMatcher(twoEntryKB())
	require.Equal(t, "Jobs answer", m.Match("job contact"))
	require.Equal(t, "Jobs answer", m.Match("phone about the job"))
}

func TestMatch_CaseAndWhitespaceInsensitive(t *testing.T) {
	m := NewMatcher(twoEntryKB())
	require.Equal(t, "Jobs answer", m.Match("   JOB   "))
}

// Substring containment is deliberate: "hi" matches inside "this".
func TestMatch_SubstringContainment(t *testing.T) {
	m := NewMatcher(Default())
	want := Default().Entries[len(Default().Entries)-1].Answer
	require.Equal(t, want, m.Match("this"))
}

func TestMatch_IgnoresLaterMutationOfKnowledgeBase(t *testing.T) {
	kb := twoEntryKB()
	m := NewMatcher(kb)
	kb.Entries[0].Answer = "mutated"
	kb.Entries[0].Keywords[0] = "nothing"

	require.Equal(t, "Jobs answer", m.Match("job"))
}

func TestMatch_DefaultQuickReplies(t *testing.T) {
	kb := Default()
	m := NewMatcher(kb)

	require.Equal(t, kb.Entries[1].Answer, m.Match(kb.QuickReplies[0]))
	require.Equal(t, kb.Entries[4].Answer, m.Match(kb.QuickReplies[1]))
	require.Equal(t, kb.Entries[5].Answer, m.Match(kb.QuickReplies[2]))
	require.Equal(t, kb.Entries[0].Answer, m.Match(kb.QuickReplies[3]))
}

func TestDefault_IsValidAndIndependent(t *testing.T) {
	kb := Default()
	require.NoError(t, kb.Validate())
	require.Len(t, kb.Entries, 17)
	require.Len(t, kb.QuickReplies, 4)

	kb.Entries[0].Answer = "changed"
	require.NotEqual(t, "changed", Default().Entries[0].Answer)
}

func TestWordCount(t *testing.T) {
	require.Equal(t, 1, wordCount("job"))
	require.Equal(t, 2, wordCount("find job"))
	require.Equal(t, 3, wordCount("what do you"))
}
