package service

import (
	"github.com/shopspring/decimal"

	"cli-roulette/internal/config"
	"cli-roulette/internal/domain"
)

type EntryKind string

const (
	EntryFree    EntryKind = "free"
	EntryBailout EntryKind = "bailout"
	EntryFee     EntryKind = "fee"
)

// EntryDecision is what the house does to a balance before a session starts.
// BankDelta is positive when the house collects.
type EntryDecision struct {
	Kind      EntryKind
	Balance   int64
	BankDelta int64
}

var hundred = decimal.NewFromInt(100)

// EntryPolicy decides the bailout or fee for a player sitting down. Broke
// players are bailed out, returning players pay a fee that grows with the
// number of bailouts they took, and a first session is free.
func EntryPolicy(p domain.PlayerProfile, rules config.Rules) EntryDecision {
	if p.Balance == 0 {
		return EntryDecision{
			Kind:      EntryBailout,
			Balance:   rules.BailoutAmount,
			BankDelta: -rules.BailoutAmount,
		}
	}
	if p.GamesPlayed < 1 {
		return EntryDecision{Kind: EntryFree, Balance: p.Balance}
	}

	fee := Fee(p.Balance, p.TimesGotMoneyFromBank, rules.Fee)
	return EntryDecision{
		Kind:      EntryFee,
		Balance:   p.Balance - fee,
		BankDelta: fee,
	}
}

// Fee is floor(balance * rate) where the rate depends on the bailout count.
func Fee(balance, bailouts int64, policy config.FeePolicy) int64 {
	var rate decimal.Decimal
	if bailouts >= policy.CapAfterBailouts {
		rate = policy.CappedRate
	} else {
		percent := policy.BasePercent.Add(policy.PercentPerBailout.Mul(decimal.NewFromInt(bailouts)))
		rate = decimal.Max(decimal.Zero, percent.Div(hundred))
	}

	fee := decimal.NewFromInt(balance).Mul(rate).Floor().IntPart()
	if fee > balance {
		return balance
	}
	return fee
}
