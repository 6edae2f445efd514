package types

import (
	"context"
	"time"

	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/server/storage"
	"github.com/palemoky/hilo-trainer/internal/trainer"
)

// ClientInterface 定义连接接口（用于打破 server 与 handler 的循环依赖）
type ClientInterface interface {
	GetID() string
	GetToken() string
	Session() *trainer.Session
	// Bind attaches a session and its identity to the connection.
	Bind(id, token string, s *trainer.Session)
	SendMessage(msg *protocol.Message)
}

// SessionStore 会话快照与在线人数存储
type SessionStore interface {
	SaveSession(ctx context.Context, data *storage.SessionData, ttl time.Duration) error
	LoadSession(ctx context.Context, token string) (*storage.SessionData, error)
	DeleteSession(ctx context.Context, token string) error
	IncrOnline(ctx context.Context) (int64, error)
	DecrOnline(ctx context.Context) (int64, error)
	Online(ctx context.Context) (int64, error)
}
