package model

import "time"

// ChatRequest is the payload the chat webhook expects
type ChatRequest struct {
	ChatInput string `json:"chatInput"`
	SessionID string `json:"sessionId"`
}

// ChatReply is the best-effort interpretation of a webhook response
type ChatReply struct {
	SessionID   string   `json:"sessionId"`
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
	Fallback    bool     `json:"fallback"` // true when the webhook reply could not be used
	Token       string   `json:"token,omitempty"` // set on the first reply of a new conversation
}

// ChatTurn is one question/answer exchange kept in session history
type ChatTurn struct {
	Input  string    `json:"input"`
	Answer string    `json:"answer"`
	At     time.Time `json:"at"`
}
