package handler

import (
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"finhealth/internal/model"
	"finhealth/internal/service"
	"finhealth/internal/transport/rest/middleware"
)

// ChatHandler proxies the chat widget
type ChatHandler struct {
	chatSvc *service.ChatService
	authSvc *service.AuthService
	logger  *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService, authSvc *service.AuthService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, authSvc: authSvc, logger: logger}
}

// Ask handles POST /v1/chat. The conversation comes from the chat token;
// without one a new conversation is started and its token returned.
//
//	@Summary	Ask the finance assistant
//	@Tags		chat
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.ChatRequest	true	"message"
//	@Success	200		{object}	model.ChatReply
//	@Failure	401		{object}	map[string]string
//	@Router		/chat [post]
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chatID := middleware.GetChatID(r.Context())
	reply, err := h.chatSvc.Ask(r.Context(), chatID, req.ChatInput)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if chatID == "" {
		token, err := h.authSvc.GenerateChatToken(reply.SessionID)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		reply.Token = token
	}
	writeJSON(w, http.StatusOK, reply)
}

// History handles GET /v1/chat/history
//
//	@Summary	Chat history of the conversation in the token
//	@Tags		chat
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	401	{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/chat/history [get]
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	chatID := middleware.GetChatID(r.Context())

	turns, err := h.chatSvc.History(r.Context(), chatID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": chatID,
		"turns":     turns,
	})
}
