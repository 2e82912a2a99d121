package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ikigai-engine/internal/domain"
)

// ResultCache guarda el ClassificationResult congelado al completar una
// sesion para no reclasificar en cada lectura. Un miss no es error: el
// resultado siempre puede recomputarse.
type ResultCache interface {
	Set(sessionID string, result domain.ClassificationResult, ttl time.Duration) error
	Get(sessionID string) (domain.ClassificationResult, bool, error)
	Invalidate(sessionID string) error
}

type memoryResultCache struct {
	mu    sync.Mutex
	items map[string]memoryCacheItem
}

type memoryCacheItem struct {
	result    domain.ClassificationResult
	expiresAt time.Time
}

func NewMemoryResultCache() ResultCache {
	return &memoryResultCache{items: make(map[string]memoryCacheItem)}
}

func (c *memoryResultCache) Set(sessionID string, result domain.ClassificationResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sessionID == "" {
		return nil
	}
	c.items[sessionID] = memoryCacheItem{
		result:    result,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (c *memoryResultCache) Get(sessionID string) (domain.ClassificationResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[sessionID]
	if !ok {
		return domain.ClassificationResult{}, false, nil
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(c.items, sessionID)
		return domain.ClassificationResult{}, false, nil
	}
	return item.result, true, nil
}

func (c *memoryResultCache) Invalidate(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, sessionID)
	return nil
}

type redisResultCache struct {
	client *redis.Client
	prefix string
}

func NewRedisResultCache(client *redis.Client) ResultCache {
	if client == nil {
		return nil
	}
	return &redisResultCache{
		client: client,
		prefix: "assessment:result:",
	}
}

func (c *redisResultCache) Set(sessionID string, result domain.ClassificationResult, ttl time.Duration) error {
	if sessionID == "" {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+sessionID, payload, ttl).Err()
}

func (c *redisResultCache) Get(sessionID string) (domain.ClassificationResult, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	payload, err := c.client.Get(ctx, c.prefix+sessionID).Bytes()
	if err == redis.Nil {
		return domain.ClassificationResult{}, false, nil
	}
	if err != nil {
		return domain.ClassificationResult{}, false, err
	}
	var result domain.ClassificationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return domain.ClassificationResult{}, false, err
	}
	return result, true, nil
}

func (c *redisResultCache) Invalidate(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Del(ctx, c.prefix+sessionID).Err()
}
