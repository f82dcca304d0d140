package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"finhealth/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	askTimeout     = 30 * time.Second
)

// ChatAsker answers one chat message
type ChatAsker interface {
	Ask(ctx context.Context, sessionID, input string) (*model.ChatReply, error)
}

// ChatTokens issues and checks the tokens that scope a chat conversation
type ChatTokens interface {
	GenerateChatToken(chatID string) (string, error)
	ValidateChatToken(token string) (*model.ChatClaims, error)
}

// Handler handles WebSocket connections
type Handler struct {
	hub      *Hub
	chat     ChatAsker
	tokens   ChatTokens
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler. An empty origins list or "*"
// accepts any origin.
func NewHandler(hub *Hub, chat ChatAsker, tokens ChatTokens, allowedOrigins []string, logger *zap.Logger) *Handler {
	return &Handler{
		hub:    hub,
		chat:   chat,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return len(allowed) == 0
	}
}

// ChatWS handles GET /v1/ws/chat?token=... A connection without a token
// starts a new conversation; the token for it is sent in the session message.
func (h *Handler) ChatWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	var sessionID string
	if token != "" {
		claims, err := h.tokens.ValidateChatToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}
		sessionID = claims.ChatID
	} else {
		sessionID = uuid.New().String()
		var err error
		if token, err = h.tokens.GenerateChatToken(sessionID); err != nil {
			h.logger.Error("issue chat token", zap.Error(err))
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade error", zap.Error(err))
		return
	}

	conn := NewConnection(sessionID)
	h.hub.Register(conn)
	h.hub.SendToSession(sessionID, MsgSession, map[string]string{"sessionId": sessionID, "token": token})

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

type inbound struct {
	ChatInput string `json:"chatInput"`
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			h.hub.SendToSession(conn.SessionID, MsgError, map[string]string{"error": "invalid message"})
			continue
		}

		h.hub.SendToSession(conn.SessionID, MsgTyping, nil)
		askCtx, askCancel := context.WithTimeout(ctx, askTimeout)
		reply, err := h.chat.Ask(askCtx, conn.SessionID, msg.ChatInput)
		askCancel()
		if err != nil {
			h.hub.SendToSession(conn.SessionID, MsgError, map[string]string{"error": err.Error()})
			continue
		}
		h.hub.SendToSession(conn.SessionID, MsgChatReply, reply)
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
