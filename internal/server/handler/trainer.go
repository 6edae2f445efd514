package handler

import (
	"log"

	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/protocol/codec"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/types"
)

// handleStart 开始教学或自动模式
func (h *Handler) handleStart(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.StartPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	mode, err := trainer.ParseMode(payload.Mode)
	if err != nil {
		h.sendError(client, err)
		return
	}

	if _, _, err := client.Session().Start(mode); err != nil {
		h.sendError(client, err)
		return
	}
	h.sendState(client)
}

// handleAdvance 发下一张牌
func (h *Handler) handleAdvance(client types.ClientInterface) {
	if _, _, err := client.Session().Advance(); err != nil {
		h.sendError(client, err)
		return
	}
	h.sendState(client)
}

// handleGuess 评分并发下一张牌
func (h *Handler) handleGuess(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.GuessPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if _, err := client.Session().SubmitGuess(payload.Guess); err != nil {
		h.sendError(client, err)
		return
	}
	h.sendState(client)
}

// handleRestart 回到模式选择
func (h *Handler) handleRestart(client types.ClientInterface) {
	client.Session().Restart()
	h.sendState(client)
}

// handleQuit 结束会话，断线后也不再保留
func (h *Handler) handleQuit(client types.ClientInterface) {
	client.Session().Quit()

	if h.store != nil {
		ctx, cancel := storeContext()
		if err := h.store.DeleteSession(ctx, client.GetToken()); err != nil {
			log.Printf("删除会话快照失败: %v", err)
		}
		cancel()
	}
	h.sendState(client)
}
