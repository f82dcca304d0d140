package cache

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"finhealth/internal/model"
)

// ChatCache keeps a bounded history of chat exchanges per chat session
type ChatCache interface {
	AppendTurn(ctx context.Context, sessionID string, turn *model.ChatTurn) error
	History(ctx context.Context, sessionID string) ([]model.ChatTurn, error)
}

type chatCache struct {
	client   *redis.Client
	ttl      time.Duration
	maxTurns int64
}

// NewChatCache creates a chat history cache keeping the last 20 turns for a day
func NewChatCache(client *redis.Client) ChatCache {
	return &chatCache{
		client:   client,
		ttl:      24 * time.Hour,
		maxTurns: 20,
	}
}

func (c *chatCache) key(sessionID string) string {
	return fmt.Sprintf("chat:%s:history", sessionID)
}

func (c *chatCache) AppendTurn(ctx context.Context, sessionID string, turn *model.ChatTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	key := c.key(sessionID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, -c.maxTurns, -1)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	return err
}

// History returns turns oldest first; unknown sessions yield an empty slice
func (c *chatCache) History(ctx context.Context, sessionID string) ([]model.ChatTurn, error) {
	items, err := c.client.LRange(ctx, c.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	turns := make([]model.ChatTurn, 0, len(items))
	for _, item := range items {
		var turn model.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
