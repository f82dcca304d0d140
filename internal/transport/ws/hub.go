package ws

import (
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgSession   MessageType = "session"
	MsgTyping    MessageType = "typing"
	MsgChatReply MessageType = "chat_reply"
	MsgError     MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub fans chat messages out to every connection of a chat session, so
// several tabs of one visitor see the same conversation.
type Hub struct {
	// chat session -> connections
	conns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	stopOnce   sync.Once

	logger *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
}

// NewConnection creates a connection with a buffered send queue
func NewConnection(sessionID string) *Connection {
	return &Connection{SessionID: sessionID, Send: make(chan []byte, 64)}
}

// BroadcastMessage is a message addressed to one chat session
type BroadcastMessage struct {
	SessionID string
	Message   *Message
}

// NewHub creates a hub and starts its loop
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SessionID] == nil {
				h.conns[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.conns[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("chat connection registered", zap.String("sessionId", conn.SessionID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.SessionID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.SessionID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.logger.Error("encode ws message", zap.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for id, set := range h.conns {
				for conn := range set {
					close(conn.Send)
				}
				delete(h.conns, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister removes a connection and closes its send queue
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// SendToSession queues a message for every connection of a chat session
func (h *Hub) SendToSession(sessionID string, msgType MessageType, payload interface{}) {
	var data json.RawMessage
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			h.logger.Error("encode ws payload", zap.Error(err))
			return
		}
		data = encoded
	}
	select {
	case h.broadcast <- &BroadcastMessage{SessionID: sessionID, Message: &Message{Type: msgType, Payload: data}}:
	case <-h.done:
	}
}

// Connections returns how many sockets a chat session has open
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[sessionID])
}

// Stop ends the hub loop and closes every connection's send queue
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}
