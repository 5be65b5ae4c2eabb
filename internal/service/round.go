package service

import (
	"errors"

	"cli-roulette/internal/domain"
	"cli-roulette/internal/roulette"
)

var ErrInvalidWager = errors.New("wager must be positive and within the available money")

type Wager struct {
	Bet    roulette.Bet
	Amount int64
}

// PlayRound settles one wager against a drawn result and returns the next
// session state.
func PlayRound(s domain.Session, w Wager, result domain.RoundResult, resolver *roulette.Resolver) (domain.Session, roulette.Resolution, error) {
	if w.Bet == nil || w.Amount <= 0 || w.Amount > s.Money {
		return s, roulette.Resolution{}, ErrInvalidWager
	}

	res := resolver.Resolve(w.Bet, result, w.Amount)
	s.Bet = w.Amount
	s.Money += res.PayoutDelta
	s.Rounds++
	return s, res, nil
}
