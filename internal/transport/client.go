// Package transport is the websocket client used by the remote trainer
// backend. Requests are synchronous: Call sends one message and collects
// every signal up to the reply that ends it.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/hilo-trainer/internal/apperrors"
	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second

	// 最大重连次数
	maxReconnectAttempts = 5
	// 首次重连间隔，之后指数退避
	reconnectInterval = 500 * time.Millisecond
	maxBackoff        = 30 * time.Second
)

var (
	// ErrNotConnected is returned before Connect or after Close.
	ErrNotConnected = errors.New("transport: not connected")
	// ErrNotSent means the request never left the client. It is safe to retry.
	ErrNotSent = errors.New("transport: request not sent")
	// ErrConnectionLost means the connection dropped, or the call was
	// canceled, after the request was sent, so the server may or may not have
	// applied it.
	ErrConnectionLost = errors.New("transport: connection lost")
)

// Client WebSocket 客户端
type Client struct {
	ServerURL string

	// 延迟更新回调（毫秒）
	OnLatencyUpdate func(int64)

	mu       sync.RWMutex
	link     *link
	clientID string
	token    string
	closed   bool

	latency atomic.Int64
	callMu  sync.Mutex // 同一时间只有一个请求在等待应答
}

// NewClient 创建客户端
func NewClient(serverURL string) *Client {
	return &Client{ServerURL: serverURL}
}

// Connect dials the server and waits for the connected message.
func (c *Client) Connect(ctx context.Context) (*protocol.ConnectedPayload, error) {
	l, connected, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.link = l
	c.clientID = connected.ClientID
	c.token = connected.ReconnectToken
	c.closed = false
	c.mu.Unlock()
	return connected, nil
}

func (c *Client) dial(ctx context.Context) (*link, *protocol.ConnectedPayload, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.ServerURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", c.ServerURL, err)
	}

	l := newLink(conn)
	go l.readPump()
	go l.writePump()

	select {
	case msg := <-l.incoming:
		defer codec.PutMessage(msg)
		if msg.Type != protocol.MsgConnected {
			l.close()
			if err := ReplyError(msg); err != nil {
				return nil, nil, err
			}
			return nil, nil, fmt.Errorf("transport: expected %s, got %s", protocol.MsgConnected, msg.Type)
		}
		payload, err := codec.ParsePayload[protocol.ConnectedPayload](msg)
		if err != nil {
			l.close()
			return nil, nil, err
		}
		return l, payload, nil
	case <-l.done:
		return nil, nil, ErrConnectionLost
	case <-ctx.Done():
		l.close()
		return nil, nil, ctx.Err()
	}
}

// Call sends a request and returns its reply together with the signals the
// server emitted before it. Error replies are returned as messages; use
// ReplyError to turn them into errors.
func (c *Client) Call(ctx context.Context, msgType protocol.MessageType, payload any) (*protocol.Message, []*protocol.Message, error) {
	c.callMu.Lock()
	defer c.callMu.Unlock()

	c.mu.RLock()
	l, resumable := c.link, c.token != "" && !c.closed
	c.mu.RUnlock()
	if l == nil {
		if resumable {
			// 上一个请求取消时丢弃了连接
			return nil, nil, fmt.Errorf("%w: %w", ErrNotSent, ErrNotConnected)
		}
		return nil, nil, ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	msg, err := codec.NewMessage(msgType, payload)
	if err != nil {
		return nil, nil, err
	}
	data, err := codec.Encode(msg)
	codec.PutMessage(msg)
	if err != nil {
		return nil, nil, err
	}

	select {
	case <-l.done:
		return nil, nil, ErrNotSent
	default:
	}
	select {
	case l.send <- data:
	case <-l.done:
		return nil, nil, ErrNotSent
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}

	var signals []*protocol.Message
	for {
		select {
		case m := <-l.incoming:
			if m.Type.IsReply() {
				return m, signals, nil
			}
			signals = append(signals, m)
		case <-l.done:
			// 连接已断开，取出已经到达的消息
			for {
				select {
				case m := <-l.incoming:
					if m.Type.IsReply() {
						return m, signals, nil
					}
					signals = append(signals, m)
				default:
					return nil, signals, ErrConnectionLost
				}
			}
		case <-ctx.Done():
			// 应答仍会到达，留在连接上会被下一个请求误收。
			// 丢弃这条连接，由调用方按连接中断恢复会话
			c.dropLink(l)
			return nil, signals, fmt.Errorf("%w: %w", ErrConnectionLost, ctx.Err())
		}
	}
}

func (c *Client) dropLink(l *link) {
	c.mu.Lock()
	if c.link == l {
		c.link = nil
	}
	c.mu.Unlock()
	l.close()
}

// Ping measures the round trip to the server.
func (c *Client) Ping(ctx context.Context) (int64, error) {
	reply, _, err := c.Call(ctx, protocol.MsgPing, protocol.PingPayload{Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return 0, err
	}
	defer codec.PutMessage(reply)

	pong, err := codec.ParsePayload[protocol.PongPayload](reply)
	if err != nil {
		return 0, err
	}
	latency := time.Now().UnixMilli() - pong.ClientTimestamp
	c.latency.Store(latency)
	if c.OnLatencyUpdate != nil {
		c.OnLatencyUpdate(latency)
	}
	return latency, nil
}

// StartHeartbeat pings the server every interval until ctx is done.
func (c *Client) StartHeartbeat(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if c.IsConnected() {
					_, _ = c.Ping(ctx)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Reconnect dials again and resumes the session saved under the reconnect
// token, backing off between attempts.
func (c *Client) Reconnect(ctx context.Context) (*protocol.ReconnectedPayload, error) {
	c.mu.Lock()
	token, old := c.token, c.link
	c.link = nil
	c.mu.Unlock()

	if token == "" {
		return nil, errors.New("transport: no reconnect token")
	}
	if old != nil {
		old.close()
	}

	backoff := reconnectInterval
	var lastErr error
	for range maxReconnectAttempts {
		l, _, err := c.dial(ctx)
		if err == nil {
			c.mu.Lock()
			c.link = l
			c.mu.Unlock()

			payload, err := c.resume(ctx, token)
			if err == nil {
				return payload, nil
			}
			c.mu.Lock()
			c.link = nil
			c.mu.Unlock()
			l.close()

			var trainerErr *apperrors.TrainerError
			if errors.As(err, &trainerErr) {
				// 令牌失效，不再重试
				return nil, err
			}
			lastErr = err
		} else {
			lastErr = err
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff = min(backoff*2, maxBackoff)
	}
	return nil, fmt.Errorf("reconnect failed after %d attempts: %w", maxReconnectAttempts, lastErr)
}

func (c *Client) resume(ctx context.Context, token string) (*protocol.ReconnectedPayload, error) {
	reply, _, err := c.Call(ctx, protocol.MsgReconnect, protocol.ReconnectPayload{Token: token})
	if err != nil {
		return nil, err
	}
	defer codec.PutMessage(reply)
	if err := ReplyError(reply); err != nil {
		return nil, err
	}

	payload, err := codec.ParsePayload[protocol.ReconnectedPayload](reply)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.clientID = payload.ClientID
	c.mu.Unlock()
	return payload, nil
}

// Close 关闭连接
func (c *Client) Close() error {
	c.mu.Lock()
	l := c.link
	c.link = nil
	c.closed = true
	c.mu.Unlock()

	if l != nil {
		l.close()
	}
	return nil
}

// IsConnected reports whether the current connection is alive.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.link == nil || c.closed {
		return false
	}
	select {
	case <-c.link.done:
		return false
	default:
		return true
	}
}

func (c *Client) ClientID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientID
}

func (c *Client) ReconnectToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Latency 获取最近一次测得的延迟（毫秒）
func (c *Client) Latency() int64 {
	return c.latency.Load()
}

// ReplyError converts an error reply into the matching trainer error.
func ReplyError(msg *protocol.Message) error {
	if msg == nil || msg.Type != protocol.MsgError {
		return nil
	}
	payload, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return err
	}
	return apperrors.FromCode(payload.Code, payload.Message)
}
