package transport

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/hilo-trainer/internal/logger"
	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/protocol/codec"
)

// link 一条 WebSocket 连接及其读写协程
type link struct {
	conn     *websocket.Conn
	send     chan []byte
	incoming chan *protocol.Message
	done     chan struct{} // 读协程退出时关闭
	quit     chan struct{} // 主动关闭时关闭

	closeOnce sync.Once
}

func newLink(conn *websocket.Conn) *link {
	return &link{
		conn:     conn,
		send:     make(chan []byte, 16),
		incoming: make(chan *protocol.Message, 256),
		done:     make(chan struct{}),
		quit:     make(chan struct{}),
	}
}

func (l *link) close() {
	l.closeOnce.Do(func() { close(l.quit) })
}

// readPump 从服务器读取消息
func (l *link) readPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		close(l.done)
		_ = l.conn.Close()
	}()

	_ = l.conn.SetReadDeadline(time.Now().Add(pongWait))
	l.conn.SetPongHandler(func(string) error {
		_ = l.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.LogError("websocket read: %v", err)
			}
			return
		}

		msg, err := codec.Decode(data)
		if err != nil {
			log.Printf("消息解析错误: %v", err)
			continue
		}

		select {
		case l.incoming <- msg:
		case <-l.quit:
			return
		}
	}
}

// writePump 向服务器写入消息
func (l *link) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = l.conn.Close()
	}()

	for {
		select {
		case message := <-l.send:
			_ = l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := l.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := l.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-l.quit:
			_ = l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = l.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-l.done:
			return
		}
	}
}
