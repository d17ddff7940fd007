package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"adastra/internal/chat"
	"adastra/internal/knowledge"
)

type noopTimer struct{ scheduled int }

func (n *noopTimer) schedule(time.Duration, func()) func() bool {
	n.scheduled++
	return func() bool { return true }
}

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	kb := knowledge.Default()
	m := knowledge.NewMatcher(kb)
	timers := &noopTimer{}
	s := NewStore(func() *chat.Conversation {
		return chat.New(m, kb.Greeting, kb.QuickReplies, chat.WithScheduler(timers.schedule))
	}, ttl)

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestStore_CreateGetDelete(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	id, conv := s.Create()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	got, ok := s.Get(id)
	require.True(t, ok)
	require.Same(t, conv, got)

	require.True(t, s.Delete(id))
	require.False(t, s.Delete(id))
	require.True(t, conv.Closed())

	_, ok = s.Get(id)
	require.False(t, ok)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	_, a := s.Create()
	_, b := s.Create()

	require.True(t, a.Submit("hello"))
	require.Len(t, a.History(), 2)
	require.Len(t, b.History(), 1)
	require.False(t, b.IsTyping())
}

func TestStore_SweepExpiresIdleSessions(t *testing.T) {
	s, clock := newTestStore(10 * time.Minute)
	idle, idleConv := s.Create()
	active, _ := s.Create()

	*clock = clock.Add(8 * time.Minute)
	_, ok := s.Get(active)
	require.True(t, ok)

	*clock = clock.Add(5 * time.Minute)
	require.Equal(t, 1, s.Sweep())

	_, ok = s.Get(idle)
	require.False(t, ok)
	require.True(t, idleConv.Closed())
	_, ok = s.Get(active)
	require.True(t, ok)
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s, clock := newTestStore(0)
	s.Create()
	*clock = clock.Add(24 * time.Hour)
	require.Zero(t, s.Sweep())
	require.Equal(t, 1, s.Len())
}

func TestStore_CloseTearsDownAll(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	_, a := s.Create()
	_, b := s.Create()
	require.True(t, a.Submit("job"))

	s.Close()
	require.Zero(t, s.Len())
	require.True(t, a.Closed())
	require.True(t, b.Closed())
	require.False(t, a.IsTyping())
}

func TestStore_RunStopsWithContext(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
