package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"cli-roulette/internal/domain"
	"cli-roulette/internal/repository"
)

func newHighscoreService(t *testing.T) *HighscoreService {
	t.Helper()
	store, err := repository.NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return NewHighscoreService(repository.NewHighscoreRepo(store), zap.NewNop())
}

func TestProposeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newHighscoreService(t)

	updated, record, err := svc.Propose(ctx, "Alice", 150)
	if err != nil || !updated || record.Score != 150 {
		t.Fatalf("Propose() = %v, %+v, %v", updated, record, err)
	}

	for i := 0; i < 2; i++ {
		updated, record, err = svc.Propose(ctx, "Bob", 150)
		if err != nil {
			t.Fatal(err)
		}
		if updated || record != (domain.GlobalHighscore{Name: "Alice", Score: 150}) {
			t.Errorf("Propose(equal) #%d = %v, %+v", i, updated, record)
		}
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if current.Name != "Alice" {
		t.Errorf("Current() = %+v, want Alice", current)
	}
}

func TestScoreboardText(t *testing.T) {
	global := domain.GlobalHighscore{Name: "Alice", Score: 12500}

	if got := scoreboardText(global, 0); got != "The current global highscore is 12,500$ from Alice\nYou dont have a highscore right now" {
		t.Errorf("scoreboardText() = %q", got)
	}
	if got := scoreboardText(global, 300); got != "The current global highscore is 12,500$ from Alice\nYour highscore is 300$" {
		t.Errorf("scoreboardText() = %q", got)
	}
}
