package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/mlde/checkout-api/internal/chat"
)

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string     `json:"message"`
	History []chatTurn `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat proxies one widget turn to the sales agent. Agent failures are
// not surfaced as errors; the widget gets the canned fallback with a
// 200 so the conversation keeps rendering.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if req.Message == "" {
		h.writeError(w, r, http.StatusUnprocessableEntity, "mensagem vazia")
		return
	}

	history := make([]chat.Turn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, chat.Turn{Role: t.Role, Content: t.Content})
	}

	reply, err := h.chat.Send(r.Context(), req.Message, history)
	if err != nil {
		zctx.From(r.Context()).Warn("chat agent", zap.Error(err))
		h.writeJSON(w, r, http.StatusOK, chatResponse{Response: chat.Fallback})
		return
	}
	h.writeJSON(w, r, http.StatusOK, chatResponse{Response: reply})
}
