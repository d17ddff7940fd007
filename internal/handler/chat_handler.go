package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"adastra/internal/chat"
	"adastra/internal/utils"
)

// maxWait bounds a long-poll on a session.
const maxWait = 5 * time.Second

type sessionResponse struct {
	ID       string `json:"id"`
	Accepted *bool  `json:"accepted,omitempty"`
	chat.State
}

type messageRequest struct {
	Text       string `json:"text"`
	QuickReply *int   `json:"quick_reply"`
}

type inputRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	id, st := h.chat.Start()
	utils.WriteJSON(w, http.StatusCreated, sessionResponse{ID: id, State: st})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		st  chat.State
		err error
	)
	if r.URL.Query().Get("wait") != "" {
		ctx, cancel := context.WithTimeout(r.Context(), maxWait)
		defer cancel()
		st, err = h.chat.Wait(ctx, id)
		if errors.Is(err, context.Canceled) {
			return
		}
	} else {
		st, err = h.chat.Session(id)
	}
	if err != nil {
		writeServiceError(w, err, "Failed to load chat session.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, sessionResponse{ID: id, State: st})
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req messageRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		accepted bool
		st       chat.State
		err      error
	)
	if req.QuickReply != nil {
		accepted, st, err = h.chat.SendQuickReply(id, *req.QuickReply)
	} else {
		accepted, st, err = h.chat.Send(id, req.Text)
	}
	if err != nil {
		writeServiceError(w, err, "Failed to send message.")
		return
	}

	status := http.StatusOK
	if accepted {
		status = http.StatusAccepted
	}
	utils.WriteJSON(w, status, sessionResponse{ID: id, Accepted: &accepted, State: st})
}

func (h *Handler) handleSetInput(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req inputRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := h.chat.SetInput(id, req.Text)
	if err != nil {
		writeServiceError(w, err, "Failed to update input.")
		return
	}
	utils.WriteJSON(w, http.StatusOK, sessionResponse{ID: id, State: st})
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.End(r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Failed to end chat session.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
