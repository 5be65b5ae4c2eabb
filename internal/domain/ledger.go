package domain

import "time"

const nobody = "Nobody"

type GlobalHighscore struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
}

func DefaultHighscore() GlobalHighscore {
	return GlobalHighscore{Name: nobody, Score: 0}
}

// BankLedger accumulates the house result. Positive profit means the house
// is ahead of the players.
type BankLedger struct {
	Profit int64 `json:"profit"`
}

type BankEventKind string

const (
	BankEventRound   BankEventKind = "round"
	BankEventFee     BankEventKind = "fee"
	BankEventBailout BankEventKind = "bailout"
)

// BankEvent is one journal line of a bank mutation.
type BankEvent struct {
	Ref    string        `json:"ref"`
	Kind   BankEventKind `json:"kind"`
	Player string        `json:"player"`
	Delta  int64         `json:"delta"`
	At     time.Time     `json:"at"`
}
