package server

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/hilo-trainer/internal/logger"
	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/protocol/codec"
	"github.com/palemoky/hilo-trainer/internal/trainer"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 4096

	// 连续超速次数超过该值时断开
	maxRateWarnings = 5
)

// Client 一个 WebSocket 连接及其训练会话
type Client struct {
	IP string

	server *Server
	conn   *websocket.Conn
	send   chan []byte
	connID string // 连接级 ID，重连后 ID 会变为旧会话的 ID

	mu      sync.RWMutex
	id      string
	token   string
	session *trainer.Session
	closed  bool
}

// NewClient 创建新客户端
func NewClient(s *Server, conn *websocket.Conn, connID string) *Client {
	return &Client{
		server: s,
		conn:   conn,
		connID: connID,
		send:   make(chan []byte, 256),
	}
}

func (c *Client) GetID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

func (c *Client) GetToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Session is only used from the read pump goroutine.
func (c *Client) Session() *trainer.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) Bind(id, token string, s *trainer.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id, c.token, c.session = id, token, s
}

// ReadPump 从 WebSocket 读取消息，请求按到达顺序逐个处理
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.server.disconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("读取错误: %v", err)
			}
			return
		}

		if !c.server.messageLimiter.AllowMessage(c.connID) {
			c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeRateLimit))
			if c.server.messageLimiter.WarningCount(c.connID) > maxRateWarnings {
				log.Printf("🚫 客户端 %s (IP: %s) 因多次超速被断开连接", c.GetID(), c.IP)
				return
			}
			continue
		}

		msg, err := codec.Decode(data)
		if err != nil {
			log.Printf("消息解析错误: %v", err)
			c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		c.server.handler.Handle(c, msg)
		codec.PutMessage(msg)
	}
}

// WritePump 向 WebSocket 写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息给客户端
func (c *Client) SendMessage(msg *protocol.Message) {
	data, err := codec.Encode(msg)
	codec.PutMessage(msg)
	if err != nil {
		log.Printf("消息编码错误: %v", err)
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		// 发送缓冲区已满，丢弃连接
		log.Printf("客户端 %s 发送缓冲区已满", c.id)
		go c.Close()
	}
}

// Close 关闭客户端连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
