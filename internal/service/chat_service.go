package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"finhealth/internal/cache"
	"finhealth/internal/config"
	"finhealth/internal/model"
)

const (
	fallbackAnswer  = "Sorry, I could not process that right now. Please try again."
	maxChatBodySize = 1 << 20
)

var ErrEmptyChatInput = errors.New("chat input is empty")

// ChatService proxies chat messages to the webhook collaborator
type ChatService struct {
	cfg     config.ChatConfig
	client  *http.Client
	parser  ReplyParser
	history cache.ChatCache
	logger  *zap.Logger
	now     func() time.Time
}

// NewChatService creates a chat service using the regex reply parser
func NewChatService(cfg config.ChatConfig, history cache.ChatCache, logger *zap.Logger) *ChatService {
	return &ChatService{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout()},
		parser:  RegexParser{},
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// SetParser swaps the reply parser
func (s *ChatService) SetParser(p ReplyParser) {
	s.parser = p
}

// Ask sends one message. Webhook failures produce a fallback reply rather
// than an error; only invalid input is reported as an error.
func (s *ChatService) Ask(ctx context.Context, sessionID, input string) (*model.ChatReply, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyChatInput
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	reply := s.ask(ctx, sessionID, input)
	s.record(ctx, sessionID, input, reply)
	return reply, nil
}

// History returns the stored exchanges for a chat session
func (s *ChatService) History(ctx context.Context, sessionID string) ([]model.ChatTurn, error) {
	if s.history == nil {
		return []model.ChatTurn{}, nil
	}
	return s.history.History(ctx, sessionID)
}

func (s *ChatService) ask(ctx context.Context, sessionID, input string) *model.ChatReply {
	if !s.cfg.IsEnabled() {
		return fallbackReply(sessionID)
	}

	body, err := s.callWebhook(ctx, &model.ChatRequest{ChatInput: input, SessionID: sessionID})
	if err != nil {
		s.logger.Warn("chat webhook failed", zap.String("sessionId", sessionID), zap.Error(err))
		return fallbackReply(sessionID)
	}

	answer, suggestions := s.parser.Parse(body)
	if answer == "" {
		s.logger.Debug("chat reply not understood", zap.String("sessionId", sessionID), zap.Int("bytes", len(body)))
		return fallbackReply(sessionID)
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return &model.ChatReply{SessionID: sessionID, Answer: answer, Suggestions: suggestions}
}

func (s *ChatService) callWebhook(ctx context.Context, payload *model.ChatRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxChatBodySize))
}

func (s *ChatService) record(ctx context.Context, sessionID, input string, reply *model.ChatReply) {
	if s.history == nil {
		return
	}
	turn := &model.ChatTurn{Input: input, Answer: reply.Answer, At: s.now().UTC()}
	if err := s.history.AppendTurn(ctx, sessionID, turn); err != nil {
		s.logger.Warn("store chat turn", zap.String("sessionId", sessionID), zap.Error(err))
	}
}

func fallbackReply(sessionID string) *model.ChatReply {
	return &model.ChatReply{
		SessionID:   sessionID,
		Answer:      fallbackAnswer,
		Suggestions: []string{},
		Fallback:    true,
	}
}
