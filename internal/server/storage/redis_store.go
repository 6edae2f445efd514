package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/hilo-trainer/internal/trainer"
)

const (
	// Redis key 前缀
	sessionKeyPrefix = "hilo:session:"
	onlineKey        = "hilo:online"
)

// SessionData 断线期间保留的训练会话
type SessionData struct {
	ClientID string           `json:"client_id"`
	Token    string           `json:"token"`
	Snapshot trainer.Snapshot `json:"snapshot"`
	SavedAt  int64            `json:"saved_at"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping checks that Redis is reachable.
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// --- 会话存储 ---

// SaveSession stores data under its reconnect token for ttl.
func (rs *RedisStore) SaveSession(ctx context.Context, data *SessionData, ttl time.Duration) error {
	if data == nil || data.Token == "" {
		return nil
	}
	if data.SavedAt == 0 {
		data.SavedAt = time.Now().Unix()
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}
	return rs.client.Set(ctx, sessionKeyPrefix+data.Token, jsonData, ttl).Err()
}

// LoadSession returns the session saved under token, or nil when it expired
// or never existed.
func (rs *RedisStore) LoadSession(ctx context.Context, token string) (*SessionData, error) {
	data, err := rs.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("反序列化会话失败: %w", err)
	}
	return &session, nil
}

// DeleteSession 删除会话
func (rs *RedisStore) DeleteSession(ctx context.Context, token string) error {
	return rs.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// --- 在线人数 ---

// IncrOnline 在线人数加一
func (rs *RedisStore) IncrOnline(ctx context.Context) (int64, error) {
	return rs.client.Incr(ctx, onlineKey).Result()
}

// DecrOnline 在线人数减一，不会低于零
func (rs *RedisStore) DecrOnline(ctx context.Context) (int64, error) {
	n, err := rs.client.Decr(ctx, onlineKey).Result()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, rs.client.Set(ctx, onlineKey, 0, 0).Err()
	}
	return n, nil
}

// Online 当前在线人数
func (rs *RedisStore) Online(ctx context.Context) (int64, error) {
	n, err := rs.client.Get(ctx, onlineKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// ResetOnline clears the counter left over from a previous server process.
func (rs *RedisStore) ResetOnline(ctx context.Context) error {
	return rs.client.Del(ctx, onlineKey).Err()
}
