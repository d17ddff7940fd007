// Package chat implements the per-visitor conversation with the assistant:
// message history, the simulated typing delay and quick replies.
package chat

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"adastra/internal/domain"
)

const (
	DefaultMinDelay = 600 * time.Millisecond
	DefaultMaxDelay = 1200 * time.Millisecond
)

// Responder produces the bot's answer for a user message.
type Responder interface {
	Match(input string) string
}

// DelayFunc returns how long the bot "types" before replying.
type DelayFunc func() time.Duration

// ScheduleFunc runs f once after d and returns a function that cancels it.
// f must not be invoked synchronously from within the ScheduleFunc call.
type ScheduleFunc func(d time.Duration, f func()) (cancel func() bool)

// UniformDelay draws a delay uniformly from [min, max).
func UniformDelay(min, max time.Duration) DelayFunc {
	if max <= min {
		return func() time.Duration { return min }
	}
	span := int64(max - min)
	return func() time.Duration {
		return min + time.Duration(rand.Int64N(span))
	}
}

// AfterFunc schedules with a real timer.
func AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// State is a snapshot of a conversation, safe to hand to a renderer.
type State struct {
	History      []domain.Message `json:"history"`
	PendingInput string           `json:"pending_input"`
	IsTyping     bool             `json:"is_typing"`
	QuickReplies []string         `json:"quick_replies,omitempty"`
}

// Option configures a Conversation.
type Option func(*Conversation)

func WithDelay(d DelayFunc) Option {
	return func(c *Conversation) { c.delay = d }
}

func WithScheduler(s ScheduleFunc) Option {
	return func(c *Conversation) { c.schedule = s }
}

// WithOnReply registers a hook invoked, outside the lock, after each bot reply.
func WithOnReply(f func(domain.Message)) Option {
	return func(c *Conversation) { c.onReply = f }
}

// Conversation owns one session's message history. At most one reply is
// pending at a time: Submit is rejected while the bot is typing.
type Conversation struct {
	responder    Responder
	quickReplies []string
	delay        DelayFunc
	schedule     ScheduleFunc
	onReply      func(domain.Message)

	mu           sync.Mutex
	history      []domain.Message
	pendingInput string
	typing       bool
	closed       bool
	seq          uint64
	cancel       func() bool
	idle         chan struct{}
}

// New starts a conversation seeded with the greeting.
func New(responder Responder, greeting string, quickReplies []string, opts ...Option) *Conversation {
	idle := make(chan struct{})
	close(idle)

	c := &Conversation{
		responder:    responder,
		quickReplies: append([]string(nil), quickReplies...),
		delay:        UniformDelay(DefaultMinDelay, DefaultMaxDelay),
		schedule:     AfterFunc,
		history:      []domain.Message{{Role: domain.RoleBot, Text: greeting}},
		idle:         idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPendingInput records the text the visitor has typed but not sent.
func (c *Conversation) SetPendingInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.pendingInput = text
	}
}

// Submit sends a user message. It reports false, leaving the state untouched,
// when the text is blank, a reply is still pending or the conversation is closed.
func (c *Conversation) Submit(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitLocked(text)
}

// SubmitPending sends the pending input.
func (c *Conversation) SubmitPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitLocked(c.pendingInput)
}

// SelectQuickReply submits the i-th quick reply. Quick replies are only
// offered before the visitor's first message.
func (c *Conversation) SelectQuickReply(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	offered := c.quickRepliesLocked()
	if i < 0 || i >= len(offered) {
		return false
	}
	return c.submitLocked(offered[i])
}

func (c *Conversation) submitLocked(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || c.typing || c.closed {
		return false
	}

	c.history = append(c.history, domain.Message{Role: domain.RoleUser, Text: text})
	c.pendingInput = ""
	c.typing = true
	c.idle = make(chan struct{})
	c.seq++

	seq := c.seq
	c.cancel = c.schedule(c.delay(), func() { c.deliver(seq, text) })
	return true
}

func (c *Conversation) deliver(seq uint64, text string) {
	c.mu.Lock()
	if c.closed || !c.typing || seq != c.seq {
		c.mu.Unlock()
		return
	}
	reply := domain.Message{Role: domain.RoleBot, Text: c.responder.Match(text)}
	c.history = append(c.history, reply)
	c.typing = false
	c.cancel = nil
	close(c.idle)
	onReply := c.onReply
	c.mu.Unlock()

	if onReply != nil {
		onReply(reply)
	}
}

// QuickReplies returns the suggested prompts, or nil once the visitor has spoken.
func (c *Conversation) QuickReplies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.quickRepliesLocked()...)
}

func (c *Conversation) quickRepliesLocked() []string {
	if len(c.history) > 1 || c.closed {
		return nil
	}
	return c.quickReplies
}

// IsTyping reports whether a bot reply is pending.
func (c *Conversation) IsTyping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// History returns a copy of the messages so far.
func (c *Conversation) History() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.history...)
}

// State returns a snapshot of the conversation.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	var quick []string
	if q := c.quickRepliesLocked(); len(q) > 0 {
		quick = append(quick, q...)
	}
	return State{
		History:      append([]domain.Message(nil), c.history...),
		PendingInput: c.pendingInput,
		IsTyping:     c.typing,
		QuickReplies: quick,
	}
}

// WaitIdle blocks until no reply is pending, the conversation is closed or
// ctx is done.
func (c *Conversation) WaitIdle(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any pending reply. No message is appended after Close returns.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.typing {
		c.typing = false
		close(c.idle)
	}
}

// Closed reports whether Close has been called.
func (c *Conversation) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
