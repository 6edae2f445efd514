//go:build !production

package testutil

import (
	"sync"

	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/trainer"
)

// SimpleClient 简单的客户端实现，记录收到的所有消息
type SimpleClient struct {
	ID    string
	Token string
	Sess  *trainer.Session

	mu       sync.Mutex
	messages []*protocol.Message
}

func (c *SimpleClient) GetID() string             { return c.ID }
func (c *SimpleClient) GetToken() string          { return c.Token }
func (c *SimpleClient) Session() *trainer.Session { return c.Sess }

func (c *SimpleClient) Bind(id, token string, s *trainer.Session) {
	c.ID, c.Token, c.Sess = id, token, s
}

func (c *SimpleClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns and clears the recorded messages.
func (c *SimpleClient) Messages() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.messages
	c.messages = nil
	return msgs
}

// Types 返回并清空已记录消息的类型序列
func (c *SimpleClient) Types() []protocol.MessageType {
	msgs := c.Messages()
	types := make([]protocol.MessageType, len(msgs))
	for i, m := range msgs {
		types[i] = m.Type
	}
	return types
}
