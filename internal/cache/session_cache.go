package cache

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"finhealth/internal/model"
)

const submitLockTTL = 60 * time.Second

// SessionCache stores in-progress assessment sessions
type SessionCache interface {
	Set(ctx context.Context, session *model.AssessmentSession) error
	Get(ctx context.Context, id string) (*model.AssessmentSession, error)
	Delete(ctx context.Context, id string) error

	// AcquireSubmitLock returns false if another submission holds the lock
	AcquireSubmitLock(ctx context.Context, id string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return "assessment:" + id
}

func (c *sessionCache) lockKey(id string) string {
	return fmt.Sprintf("assessment:%s:submit", id)
}

// Set writes the session and refreshes its TTL
func (c *sessionCache) Set(ctx context.Context, session *model.AssessmentSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.AssessmentSession, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.AssessmentSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.State.Answers == nil {
		session.State.Answers = model.AnswerStore{}
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id), c.lockKey(id)).Err()
}

func (c *sessionCache) AcquireSubmitLock(ctx context.Context, id string) (bool, error) {
	return c.client.SetNX(ctx, c.lockKey(id), time.Now().UTC().Format(time.RFC3339), submitLockTTL).Result()
}

func (c *sessionCache) ReleaseSubmitLock(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.lockKey(id)).Err()
}
