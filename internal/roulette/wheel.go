package roulette

import (
	"math/rand/v2"

	"cli-roulette/internal/domain"
)

const (
	MinNumber = 0
	MaxNumber = 36
	pockets   = MaxNumber + 1
)

// European single-zero layout.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

func ClassifyColor(n int) domain.Color {
	if n == 0 {
		return domain.Green
	}
	if redNumbers[n] {
		return domain.Red
	}
	return domain.Black
}

func NewRoundResult(n int) domain.RoundResult {
	return domain.RoundResult{Number: n, Color: ClassifyColor(n)}
}

type Drawer interface {
	Draw() domain.RoundResult
}

type Wheel struct {
	rng *rand.Rand
}

// NewWheel returns a wheel drawing from the runtime generator, or from a
// deterministic PCG stream when seed is non-zero.
func NewWheel(seed uint64) *Wheel {
	if seed == 0 {
		return &Wheel{}
	}
	return &Wheel{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (w *Wheel) Draw() domain.RoundResult {
	var n int
	if w.rng != nil {
		n = w.rng.IntN(pockets)
	} else {
		n = rand.IntN(pockets)
	}
	return NewRoundResult(n)
}
