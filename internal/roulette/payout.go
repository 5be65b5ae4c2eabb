package roulette

import (
	"github.com/shopspring/decimal"

	"cli-roulette/internal/domain"
)

// PayoutTable holds the net win multiplier for each kind of bet.
type PayoutTable struct {
	Straight int64
	Dozen    int64
	Half     int64
	Parity   int64
	Color    int64
	// ZeroBonus is an extra fraction of the stake paid only on a winning
	// straight bet on 0. The bonus is floored to whole money.
	ZeroBonus decimal.Decimal
}

func DefaultPayoutTable() PayoutTable {
	return PayoutTable{
		Straight:  35,
		Dozen:     2,
		Half:      1,
		Parity:    1,
		Color:     1,
		ZeroBonus: decimal.RequireFromString("0.27"),
	}
}

func (t PayoutTable) Multiplier(kind Kind) int64 {
	switch kind {
	case KindNumber:
		return t.Straight
	case KindDozen:
		return t.Dozen
	case KindHalf:
		return t.Half
	case KindParity:
		return t.Parity
	case KindColor:
		return t.Color
	}
	return 0
}

// Resolution is the outcome of one bet. BankDelta is always -PayoutDelta.
type Resolution struct {
	Won         bool
	Multiplier  int64
	PayoutDelta int64
	BankDelta   int64
}

type Resolver struct {
	table PayoutTable
}

func NewResolver(table PayoutTable) *Resolver {
	return &Resolver{table: table}
}

func (r *Resolver) Resolve(bet Bet, result domain.RoundResult, amount int64) Resolution {
	if !Matches(bet, result) {
		return Resolution{PayoutDelta: -amount, BankDelta: amount}
	}

	multiplier := r.table.Multiplier(bet.Kind())
	delta := multiplier * amount
	if s, ok := bet.(Straight); ok && s.Number == 0 {
		delta += decimal.NewFromInt(amount).Mul(r.table.ZeroBonus).Floor().IntPart()
	}
	return Resolution{
		Won:         true,
		Multiplier:  multiplier,
		PayoutDelta: delta,
		BankDelta:   -delta,
	}
}

// Matches reports whether the bet wins on the given result. Unknown bet
// values never match.
func Matches(bet Bet, result domain.RoundResult) bool {
	n := result.Number
	switch b := bet.(type) {
	case Straight:
		return n == b.Number
	case ColorBet:
		return b.Color != domain.Green && result.Color == b.Color
	case ParityBet:
		if n == 0 {
			return false
		}
		switch b.Parity {
		case Even:
			return n%2 == 0
		case Odd:
			return n%2 == 1
		}
	case DozenBet:
		if _, ok := dozenLabels[b.Dozen]; !ok {
			return false
		}
		lo, hi := b.Dozen.Bounds()
		return n >= lo && n <= hi
	case HalfBet:
		if b.Half != Low && b.Half != High {
			return false
		}
		lo, hi := b.Half.Bounds()
		return n >= lo && n <= hi
	}
	return false
}
