package handler

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/protocol/codec"
	"github.com/palemoky/hilo-trainer/internal/protocol/convert"
	"github.com/palemoky/hilo-trainer/internal/server/storage"
	"github.com/palemoky/hilo-trainer/internal/types"
)

// Connect gives a new connection its identity and an idle session, then
// sends the connected message.
func (h *Handler) Connect(client types.ClientInterface) {
	client.Bind(uuid.NewString(), uuid.NewString(), h.newSession(client))

	var online int64
	if h.store != nil {
		ctx, cancel := storeContext()
		n, err := h.store.IncrOnline(ctx)
		cancel()
		if err != nil {
			log.Printf("更新在线人数失败: %v", err)
		}
		online = n
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		ClientID:       client.GetID(),
		ReconnectToken: client.GetToken(),
		Online:         online,
	}))
	log.Printf("✅ 训练者 %s 已连接", client.GetID())
}

// Disconnect keeps an unfinished session in the store so the client can
// resume it with its reconnect token.
func (h *Handler) Disconnect(client types.ClientInterface) {
	if h.store == nil {
		return
	}
	ctx, cancel := storeContext()
	defer cancel()

	if sess := client.Session(); sess != nil && !sess.Quitting() {
		data := &storage.SessionData{
			ClientID: client.GetID(),
			Token:    client.GetToken(),
			Snapshot: sess.Snapshot(),
		}
		if err := h.store.SaveSession(ctx, data, h.sessionTTL); err != nil {
			log.Printf("保存会话 %s 失败: %v", client.GetID(), err)
		}
	}
	if _, err := h.store.DecrOnline(ctx); err != nil {
		log.Printf("更新在线人数失败: %v", err)
	}
	log.Printf("❌ 训练者 %s 已断开", client.GetID())
}

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect 处理断线重连
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil || payload.Token == "" {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if h.store == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeTokenExpired))
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	data, err := h.store.LoadSession(ctx, payload.Token)
	if err != nil {
		log.Printf("加载会话失败: %v", err)
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
		return
	}
	if data == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeTokenExpired))
		return
	}

	sess := h.newSession(client)
	sess.Restore(data.Snapshot)
	client.Bind(data.ClientID, payload.Token, sess)

	// 快照已被接管，断开时会重新保存
	if err := h.store.DeleteSession(ctx, payload.Token); err != nil {
		log.Printf("删除会话快照失败: %v", err)
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgReconnected, protocol.ReconnectedPayload{
		ClientID: data.ClientID,
		State:    convert.StateToPayload(sess.State()),
	}))
	log.Printf("🔄 训练者 %s 重连成功", data.ClientID)
}
