package handler

import (
	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/protocol/codec"
	"github.com/palemoky/hilo-trainer/internal/protocol/convert"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/types"
)

// signalForwarder 把会话信号转成发往客户端的消息
type signalForwarder struct {
	client types.ClientInterface
}

func (f *signalForwarder) OnCardDealt(ev trainer.CardDealt) {
	f.client.SendMessage(codec.MustNewMessage(protocol.MsgCardDealt, convert.CardDealtPayload(ev)))
}

func (f *signalForwarder) OnDeckExhausted() {
	f.client.SendMessage(codec.MustNewMessage(protocol.MsgDeckExhausted, nil))
}

func (f *signalForwarder) OnGuessScored(correct bool, tally trainer.Tally) {
	f.client.SendMessage(codec.MustNewMessage(protocol.MsgGuessScored, protocol.GuessScoredPayload{
		Correct: correct,
		Tally:   convert.TallyToInfo(tally),
	}))
}

func (f *signalForwarder) OnQuit() {
	f.client.SendMessage(codec.MustNewMessage(protocol.MsgGoodbye, nil))
}
