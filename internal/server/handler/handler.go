package handler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/palemoky/hilo-trainer/internal/apperrors"
	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/protocol/codec"
	"github.com/palemoky/hilo-trainer/internal/protocol/convert"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/types"
)

const storeTimeout = 3 * time.Second

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Store      types.SessionStore // 可为 nil，此时不支持断线重连
	SessionTTL time.Duration
	NumDecks   int
	// NewRand returns the shuffle source for a new session. nil uses the
	// process-wide source.
	NewRand func() card.Shuffler
}

// Handler 消息处理器
type Handler struct {
	store      types.SessionStore
	sessionTTL time.Duration
	numDecks   int
	newRand    func() card.Shuffler
	handlers   map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		store:      deps.Store,
		sessionTTL: deps.SessionTTL,
		numDecks:   max(deps.NumDecks, 1),
		newRand:    deps.NewRand,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing:      h.handlePing,
		protocol.MsgReconnect: h.handleReconnect,

		// 训练操作
		protocol.MsgStart:   h.handleStart,
		protocol.MsgAdvance: func(c types.ClientInterface, _ *protocol.Message) { h.handleAdvance(c) },
		protocol.MsgGuess:   h.handleGuess,
		protocol.MsgRestart: func(c types.ClientInterface, _ *protocol.Message) { h.handleRestart(c) },
		protocol.MsgQuit:    func(c types.ClientInterface, _ *protocol.Message) { h.handleQuit(c) },
	}
}

// Handle 处理消息。每个请求以一条 state 或 error 结束
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (来自: %s, Payload长度=%d bytes)", msg.Type, client.GetID(), len(msg.Payload))
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// newSession 创建一个信号转发到 client 的会话
func (h *Handler) newSession(client types.ClientInterface) *trainer.Session {
	opts := []trainer.Option{trainer.WithListener(&signalForwarder{client: client})}
	if h.newRand != nil {
		opts = append(opts, trainer.WithRand(h.newRand()))
	}
	return trainer.NewSession(h.numDecks, opts...)
}

func (h *Handler) sendState(client types.ClientInterface) {
	st := client.Session().State()
	client.SendMessage(codec.MustNewMessage(protocol.MsgState, convert.StateToPayload(st)))
}

func (h *Handler) sendError(client types.ClientInterface, err error) {
	var trainerErr *apperrors.TrainerError
	if errors.As(err, &trainerErr) {
		client.SendMessage(codec.NewErrorMessage(trainerErr.Code))
		return
	}
	client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
