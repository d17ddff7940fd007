package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"adastra/internal/chat"
	"adastra/internal/database"
	"adastra/internal/knowledge"
	"adastra/internal/leads"
	"adastra/internal/service"
	"adastra/internal/sessions"
)

type manualTimers struct {
	mu  sync.Mutex
	fns []func()
}

func (m *manualTimers) schedule(_ time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fns = append(m.fns, f)
	return func() bool { return true }
}

func (m *manualTimers) fire() {
	m.mu.Lock()
	fns := m.fns
	m.fns = nil
	m.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

type testEnv struct {
	routes http.Handler
	timers *manualTimers
}

func newTestEnv(t *testing.T, withDB bool, opts Options) *testEnv {
	t.Helper()

	kb := knowledge.Default()
	m := knowledge.NewMatcher(kb)
	timers := &manualTimers{}
	store := sessions.NewStore(func() *chat.Conversation {
		return chat.New(m, kb.Greeting, kb.QuickReplies, chat.WithScheduler(timers.schedule))
	}, time.Hour)
	t.Cleanup(store.Close)

	var repo leads.Repository
	if withDB {
		db, err := database.Open(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		repo = leads.NewSQLRepository(db)
	}

	if opts.RateLimit == 0 {
		opts.RateLimit, opts.RateBurst = 1000, 1000
	}
	h := New(service.NewChatService(store), service.NewLeadService(repo, nil), opts)
	return &testEnv{routes: h.Routes(), timers: timers}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.routes.ServeHTTP(rec, req)
	return rec
}

type sessionBody struct {
	ID       string `json:"id"`
	Accepted *bool  `json:"accepted"`
	History  []struct {
		Role string `json:"role"`
		Text string `json:"text"`
	} `json:"history"`
	PendingInput string   `json:"pending_input"`
	IsTyping     bool     `json:"is_typing"`
	QuickReplies []string `json:"quick_replies"`
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) sessionBody {
	t.Helper()
	var body sessionBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t, false, Options{})

	rec := env.do(t, http.MethodGet, "/api/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Hello World"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/health", "")
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChatFlow(t *testing.T) {
	env := newTestEnv(t, false, Options{})

	rec := env.do(t, http.MethodPost, "/api/chat/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	s := decodeSession(t, rec)
	require.NotEmpty(t, s.ID)
	require.Len(t, s.History, 1)
	require.Equal(t, "bot", s.History[0].Role)
	require.Len(t, s.QuickReplies, 4)
	path := "/api/chat/sessions/" + s.ID

	rec = env.do(t, http.MethodPut, path+"/input", `{"text":"I want to"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "I want to", decodeSession(t, rec).PendingInput)

	rec = env.do(t, http.MethodPost, path+"/messages", `{"text":"I want to apply for a job"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	s = decodeSession(t, rec)
	require.True(t, *s.Accepted)
	require.True(t, s.IsTyping)
	require.Empty(t, s.PendingInput)
	require.Len(t, s.History, 2)
	require.Empty(t, s.QuickReplies)

	rec = env.do(t, http.MethodPost, path+"/messages", `{"text":"another"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, *decodeSession(t, rec).Accepted)

	env.timers.fire()

	rec = env.do(t, http.MethodGet, path+"?wait=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	s = decodeSession(t, rec)
	require.False(t, s.IsTyping)
	require.Len(t, s.History, 3)
	require.Contains(t, s.History[2].Text, "Find Jobs page")
}

func TestChatQuickReply(t *testing.T) {
	env := newTestEnv(t, false, Options{})
	s := decodeSession(t, env.do(t, http.MethodPost, "/api/chat/sessions", ""))
	path := "/api/chat/sessions/" + s.ID

	rec := env.do(t, http.MethodPost, path+"/messages", `{"quick_reply":1}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "Which industries do you serve?", decodeSession(t, rec).History[1].Text)

	env.timers.fire()
	rec = env.do(t, http.MethodPost, path+"/messages", `{"quick_reply":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, *decodeSession(t, rec).Accepted)
}

func TestChatEndSessionCancelsReply(t *testing.T) {
	env := newTestEnv(t, false, Options{})
	s := decodeSession(t, env.do(t, http.MethodPost, "/api/chat/sessions", ""))
	path := "/api/chat/sessions/" + s.ID

	require.Equal(t, http.StatusAccepted, env.do(t, http.MethodPost, path+"/messages", `{"text":"hello"}`).Code)
	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, path, "").Code)
	env.timers.fire()

	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, "").Code)
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, "").Code)
}

func TestChatBadRequests(t *testing.T) {
	env := newTestEnv(t, false, Options{})

	rec := env.do(t, http.MethodPost, "/api/chat/sessions/nope/messages", `{"text":"hi"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"detail":"Chat session not found"}`, rec.Body.String())

	s := decodeSession(t, env.do(t, http.MethodPost, "/api/chat/sessions", ""))
	rec = env.do(t, http.MethodPost, "/api/chat/sessions/"+s.ID+"/messages", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/chat/sessions/"+s.ID+"/messages", `{"text":"   "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeSession(t, rec).History, 1)
}

func TestNewsletter(t *testing.T) {
	env := newTestEnv(t, true, Options{})

	rec := env.do(t, http.MethodPost, "/api/newsletter", `{"email":"a@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"message":"Subscribed successfully"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/newsletter", `{"email":"a@example.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"detail":"This email is already subscribed."}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/newsletter", `{"email":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestForms(t *testing.T) {
	env := newTestEnv(t, true, Options{})

	tests := []struct {
		path string
		body string
		msg  string
	}{
		{"/api/contact", `{"full_name":"Ana","email":"ana@example.com","inquiry_type":"hiring"}`, "Contact form submitted successfully"},
		{"/api/cv", `{"full_name":"Ravi","email":"ravi@example.com","job_role":"CFO"}`, "CV submitted successfully"},
		{"/api/consultation", `{"full_name":"Meera","email":"m@example.com","preferred_date":"2026-11-02"}`, "Consultation request submitted successfully"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.True(t, body.Success)
			require.Equal(t, tt.msg, body.Message)

			rec = env.do(t, http.MethodPost, tt.path, `{"email":"x@example.com"}`)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			require.Contains(t, rec.Body.String(), "full_name")
		})
	}
}

func TestFormsWithoutStorage(t *testing.T) {
	env := newTestEnv(t, false, Options{})
	rec := env.do(t, http.MethodPost, "/api/contact", `{"full_name":"Ana","email":"ana@example.com"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"detail":"Lead storage not configured"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, false, Options{CORSOrigins: []string{"https://adastra.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://adastra.example")
	rec := httptest.NewRecorder()
	env.routes.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://adastra.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	env.routes.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	wild := newTestEnv(t, false, Options{CORSOrigins: []string{"*"}})
	rec = wild.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, false, Options{RateLimit: 0.001, RateBurst: 2})

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/chat/sessions", "").Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/chat/sessions", "").Code)
	rec := env.do(t, http.MethodPost, "/api/chat/sessions", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// reads are never throttled
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/health", "").Code)
}

func TestIPLimiter_PrunesIdleClients(t *testing.T) {
	l := newIPLimiter(1, 1)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	for i := 0; i < limiterPruneMin; i++ {
		l.allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	require.Len(t, l.limiters, limiterPruneMin)

	clock = clock.Add(limiterIdle + time.Second)
	require.True(t, l.allow("192.0.2.10"))
	require.Len(t, l.limiters, 1)
}
