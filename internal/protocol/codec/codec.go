// Package codec frames protocol messages for the websocket.
//
// A frame is a protobuf-encoded google.protobuf.Struct with two string
// fields: "type" and "payload", where payload carries the JSON body.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/hilo-trainer/internal/protocol"
)

const (
	fieldType    = "type"
	fieldPayload = "payload"
)

// ErrMissingType is returned for frames without a message type.
var ErrMissingType = errors.New("codec: frame has no message type")

// NewMessage 创建一个新消息
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := GetMessage()
	msg.Type = msgType

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			PutMessage(msg)
			return nil, fmt.Errorf("encode %s payload: %w", msgType, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 将消息编码为 Protobuf 字节
func Encode(m *protocol.Message) ([]byte, error) {
	env := GetEnvelope()
	defer PutEnvelope(env)

	env.Fields = map[string]*structpb.Value{
		fieldType: structpb.NewStringValue(string(m.Type)),
	}
	if len(m.Payload) > 0 {
		env.Fields[fieldPayload] = structpb.NewStringValue(string(m.Payload))
	}
	return proto.Marshal(env)
}

// Decode 从 Protobuf 字节解码消息
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func Decode(data []byte) (*protocol.Message, error) {
	env := GetEnvelope()
	defer PutEnvelope(env)

	if err := proto.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	msgType := env.GetFields()[fieldType].GetStringValue()
	if msgType == "" {
		return nil, ErrMissingType
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(msgType)
	if payload := env.GetFields()[fieldPayload].GetStringValue(); payload != "" {
		msg.Payload = json.RawMessage(payload)
	}
	return msg, nil
}

// ParsePayload 解析消息的 Payload 到指定类型
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

// NewErrorMessageWithText 创建带自定义文本的错误消息
func NewErrorMessageWithText(code int, text string) *protocol.Message {
	msg, _ := NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: text,
	})
	return msg
}
