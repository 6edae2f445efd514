package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgReconnect MessageType = "reconnect" // 断线重连
	MsgPing      MessageType = "ping"      // 心跳 ping

	// 训练操作
	MsgStart   MessageType = "start"   // 开始教学/自动模式
	MsgAdvance MessageType = "advance" // 下一张牌
	MsgGuess   MessageType = "guess"   // 提交流水计数猜测
	MsgRestart MessageType = "restart" // 重新开始
	MsgQuit    MessageType = "quit"    // 退出
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected   MessageType = "connected"   // 连接成功
	MsgReconnected MessageType = "reconnected" // 重连成功
	MsgPong        MessageType = "pong"        // 心跳 pong

	// 会话信号
	MsgCardDealt     MessageType = "card_dealt"     // 发出一张牌
	MsgDeckExhausted MessageType = "deck_exhausted" // 牌已发完
	MsgGuessScored   MessageType = "guess_scored"   // 猜测结果
	MsgGoodbye       MessageType = "goodbye"        // 会话结束

	// 每个请求的最终应答
	MsgState MessageType = "state" // 会话状态

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// IsReply 判断消息是否为请求的最终应答
func (t MessageType) IsReply() bool {
	switch t {
	case MsgState, MsgError, MsgPong, MsgConnected, MsgReconnected:
		return true
	}
	return false
}
