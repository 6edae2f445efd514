package trainer

import "github.com/palemoky/hilo-trainer/internal/card"

// Tally 教学模式的对错计数
type Tally struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Total 已评分的猜测次数
func (t Tally) Total() int {
	return t.Correct + t.Incorrect
}

// State is the read-only view a presentation layer renders from.
type State struct {
	Mode     Mode
	NumDecks int

	Card    card.Card
	HasCard bool

	// RunningCount is zero whenever CountVisible is false.
	RunningCount int
	CountVisible bool
	TrueCount    float64

	Remaining  int
	CardsDealt int

	Tally       Tally
	Guessed     bool // at least one guess scored since the mode started
	LastCorrect bool

	Exhausted bool
	Quit      bool
}

// Snapshot captures a whole session, including the order of the cards left.
type Snapshot struct {
	NumDecks     int         `json:"num_decks"`
	Mode         Mode        `json:"mode"`
	Deck         []card.Card `json:"deck"`
	Current      *card.Card  `json:"current,omitempty"`
	RunningCount int         `json:"running_count"`
	CardsDealt   int         `json:"cards_dealt"`
	Tally        Tally       `json:"tally"`
	Guessed      bool        `json:"guessed"`
	LastCorrect  bool        `json:"last_correct"`
	Exhausted    bool        `json:"exhausted"`
	Quit         bool        `json:"quit"`
}
