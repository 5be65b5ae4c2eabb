package roulette

import (
	"fmt"
	"strconv"
	"strings"

	"cli-roulette/internal/domain"
)

type Kind string

const (
	KindNumber Kind = "number"
	KindParity Kind = "even/odd"
	KindColor  Kind = "color"
	KindDozen  Kind = "dozen"
	KindHalf   Kind = "high/low"
)

// Kinds is the order bet types are offered in.
var Kinds = []Kind{KindNumber, KindParity, KindColor, KindDozen, KindHalf}

// Bet is one of Straight, ColorBet, ParityBet, DozenBet or HalfBet.
type Bet interface {
	Kind() Kind
	String() string
	isBet()
}

type Straight struct {
	Number int
}

type ColorBet struct {
	Color domain.Color
}

type Parity string

const (
	Even Parity = "even"
	Odd  Parity = "odd"
)

type ParityBet struct {
	Parity Parity
}

// Dozen is 1, 2 or 3 for 1-12, 13-24 and 25-36.
type Dozen int

type DozenBet struct {
	Dozen Dozen
}

type Half string

const (
	Low  Half = "1-18"
	High Half = "19-36"
)

type HalfBet struct {
	Half Half
}

func (Straight) Kind() Kind  { return KindNumber }
func (ColorBet) Kind() Kind  { return KindColor }
func (ParityBet) Kind() Kind { return KindParity }
func (DozenBet) Kind() Kind  { return KindDozen }
func (HalfBet) Kind() Kind   { return KindHalf }

func (b Straight) String() string  { return strconv.Itoa(b.Number) }
func (b ColorBet) String() string  { return string(b.Color) }
func (b ParityBet) String() string { return string(b.Parity) }
func (b DozenBet) String() string  { return dozenLabels[b.Dozen] }
func (b HalfBet) String() string   { return string(b.Half) }

func (Straight) isBet()  {}
func (ColorBet) isBet()  {}
func (ParityBet) isBet() {}
func (DozenBet) isBet()  {}
func (HalfBet) isBet()   {}

var dozenLabels = map[Dozen]string{1: "1-12", 2: "13-24", 3: "25-36"}

// Bounds returns the inclusive number range covered by the dozen.
func (d Dozen) Bounds() (int, int) {
	lo := (int(d)-1)*12 + 1
	return lo, lo + 11
}

func (h Half) Bounds() (int, int) {
	if h == High {
		return 19, 36
	}
	return 1, 18
}

// ValidationError is a user-facing rejection of a bet or an amount.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func ParseKind(raw string) (Kind, error) {
	raw = strings.TrimSpace(raw)
	for _, k := range Kinds {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", invalid("Unknown bet type %q.", raw)
}

// Choices lists the closed set of values for a kind. The number kind is
// free input and has none.
func Choices(kind Kind) []string {
	switch kind {
	case KindParity:
		return []string{string(Even), string(Odd)}
	case KindColor:
		return []string{string(domain.Red), string(domain.Black)}
	case KindDozen:
		return []string{dozenLabels[1], dozenLabels[2], dozenLabels[3]}
	case KindHalf:
		return []string{string(Low), string(High)}
	}
	return nil
}

// Validate turns raw input for the given kind into a Bet.
func Validate(raw string, kind Kind) (Bet, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindNumber:
		n, err := ParseNumber(raw)
		if err != nil {
			return nil, err
		}
		return Straight{Number: int(n)}, nil
	case KindParity:
		switch Parity(raw) {
		case Even, Odd:
			return ParityBet{Parity: Parity(raw)}, nil
		}
	case KindColor:
		switch domain.Color(raw) {
		case domain.Red, domain.Black:
			return ColorBet{Color: domain.Color(raw)}, nil
		}
	case KindDozen:
		for d, label := range dozenLabels {
			if label == raw {
				return DozenBet{Dozen: d}, nil
			}
		}
	case KindHalf:
		switch Half(raw) {
		case Low, High:
			return HalfBet{Half: Half(raw)}, nil
		}
	default:
		return nil, invalid("Unknown bet type %q.", kind)
	}
	return nil, invalid("%q is not a valid %s bet.", raw, kind)
}

// ParseNumber accepts a straight-up target between 0 and 36.
func ParseNumber(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < MinNumber || n > MaxNumber {
		return 0, invalid("Please enter a valid number between %d and %d.", MinNumber, MaxNumber)
	}
	return n, nil
}

// AmountParser returns a parser that accepts a stake in (0, money].
func AmountParser(money int64) func(string) (int64, error) {
	return func(raw string) (int64, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || n <= 0 {
			return 0, invalid("Please enter a valid positive number.")
		}
		if n > money {
			return 0, invalid("You don't have enough money (%d$) to gamble. Try again!", money)
		}
		return n, nil
	}
}
