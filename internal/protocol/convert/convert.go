// Package convert maps trainer and card types to wire payloads and back.
package convert

import (
	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/trainer"
)

// CardToInfo 转换为协议牌信息
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{Suit: int(c.Suit), Rank: int(c.Rank), Key: c.Key()}
}

// InfoToCard 从协议牌信息还原
func InfoToCard(ci protocol.CardInfo) card.Card {
	return card.Card{Suit: card.Suit(ci.Suit), Rank: card.Rank(ci.Rank)}
}

func TallyToInfo(t trainer.Tally) protocol.TallyInfo {
	return protocol.TallyInfo{Correct: t.Correct, Incorrect: t.Incorrect}
}

func InfoToTally(ti protocol.TallyInfo) trainer.Tally {
	return trainer.Tally{Correct: ti.Correct, Incorrect: ti.Incorrect}
}

// StateToPayload builds the state reply. Hidden counts stay off the wire.
func StateToPayload(st trainer.State) protocol.StatePayload {
	p := protocol.StatePayload{
		Mode:       st.Mode.String(),
		NumDecks:   st.NumDecks,
		Remaining:  st.Remaining,
		CardsDealt: st.CardsDealt,
		Tally:      TallyToInfo(st.Tally),
		Exhausted:  st.Exhausted,
		Quit:       st.Quit,
	}
	if st.HasCard {
		ci := CardToInfo(st.Card)
		p.Card = &ci
	}
	if st.CountVisible {
		rc, tc := st.RunningCount, st.TrueCount
		p.RunningCount = &rc
		p.TrueCount = &tc
	}
	if st.Guessed {
		last := st.LastCorrect
		p.LastGuess = &last
	}
	return p
}

// PayloadToState is the inverse of StateToPayload.
func PayloadToState(p protocol.StatePayload) trainer.State {
	st := trainer.State{
		Mode:       ParseMode(p.Mode),
		NumDecks:   p.NumDecks,
		Remaining:  p.Remaining,
		CardsDealt: p.CardsDealt,
		Tally:      InfoToTally(p.Tally),
		Exhausted:  p.Exhausted,
		Quit:       p.Quit,
	}
	if p.Card != nil {
		st.Card = InfoToCard(*p.Card)
		st.HasCard = true
	}
	if p.RunningCount != nil {
		st.CountVisible = true
		st.RunningCount = *p.RunningCount
	}
	if p.TrueCount != nil {
		st.TrueCount = *p.TrueCount
	}
	if p.LastGuess != nil {
		st.Guessed = true
		st.LastCorrect = *p.LastGuess
	}
	return st
}

// ParseMode maps a mode name to a Mode. Unknown names are idle.
func ParseMode(name string) trainer.Mode {
	m, err := trainer.ParseMode(name)
	if err != nil {
		return trainer.ModeIdle
	}
	return m
}

// CardDealtPayload builds the card_dealt signal.
func CardDealtPayload(ev trainer.CardDealt) protocol.CardDealtPayload {
	p := protocol.CardDealtPayload{Card: CardToInfo(ev.Card)}
	if ev.CountVisible {
		rc := ev.RunningCount
		p.RunningCount = &rc
	}
	return p
}
