package service

import (
	"context"
	"errors"
	"log"

	"adastra/internal/chat"
	"adastra/internal/sessions"
)

var ErrSessionNotFound = errors.New("chat session not found")

// ChatService drives the website chat assistant's sessions.
type ChatService struct {
	store *sessions.Store
}

func NewChatService(store *sessions.Store) *ChatService {
	return &ChatService{store: store}
}

// Start opens a new session seeded with the greeting.
func (s *ChatService) Start() (string, chat.State) {
	id, conv := s.store.Create()
	log.Printf("CHAT: session %s started", id)
	return id, conv.State()
}

// Session returns the current state of a session.
func (s *ChatService) Session(id string) (chat.State, error) {
	conv, ok := s.store.Get(id)
	if !ok {
		return chat.State{}, ErrSessionNotFound
	}
	return conv.State(), nil
}

// Send submits a visitor message. accepted is false when the message was
// blank or a reply is still pending.
func (s *ChatService) Send(id, text string) (accepted bool, st chat.State, err error) {
	conv, ok := s.store.Get(id)
	if !ok {
		return false, chat.State{}, ErrSessionNotFound
	}
	accepted = conv.Submit(text)
	if accepted {
		log.Printf("CHAT: session %s message received: '%s'", id, text)
	}
	return accepted, conv.State(), nil
}

// SendQuickReply submits the i-th suggested prompt.
func (s *ChatService) SendQuickReply(id string, i int) (bool, chat.State, error) {
	conv, ok := s.store.Get(id)
	if !ok {
		return false, chat.State{}, ErrSessionNotFound
	}
	accepted := conv.SelectQuickReply(i)
	if accepted {
		log.Printf("CHAT: session %s quick reply %d selected", id, i)
	}
	return accepted, conv.State(), nil
}

// SetInput records the visitor's uncommitted text.
func (s *ChatService) SetInput(id, text string) (chat.State, error) {
	conv, ok := s.store.Get(id)
	if !ok {
		return chat.State{}, ErrSessionNotFound
	}
	conv.SetPendingInput(text)
	return conv.State(), nil
}

// Wait blocks until the session has no pending reply or ctx is done, then
// returns its state.
func (s *ChatService) Wait(ctx context.Context, id string) (chat.State, error) {
	conv, ok := s.store.Get(id)
	if !ok {
		return chat.State{}, ErrSessionNotFound
	}
	if err := conv.WaitIdle(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return chat.State{}, err
	}
	return conv.State(), nil
}

// End tears a session down, cancelling any pending reply.
func (s *ChatService) End(id string) error {
	if !s.store.Delete(id) {
		return ErrSessionNotFound
	}
	log.Printf("CHAT: session %s ended", id)
	return nil
}
