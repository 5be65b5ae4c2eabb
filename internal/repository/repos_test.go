package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cli-roulette/internal/domain"
)

func TestHighscoreRepoDefault(t *testing.T) {
	backends(t, func(t *testing.T, store DocumentStore) {
		ctx := context.Background()
		repo := NewHighscoreRepo(store)

		hs, err := repo.LoadOrDefault(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if hs != domain.DefaultHighscore() {
			t.Errorf("LoadOrDefault() = %+v, want Nobody/0", hs)
		}

		// The default is persisted on first access.
		var stored domain.GlobalHighscore
		found, err := store.Load(ctx, KeyHighscore, &stored)
		if err != nil || !found {
			t.Fatalf("default not persisted: found=%v err=%v", found, err)
		}

		if err := repo.Save(ctx, domain.GlobalHighscore{Name: "Alice", Score: 135}); err != nil {
			t.Fatal(err)
		}
		hs, _ = repo.LoadOrDefault(ctx)
		if hs.Name != "Alice" || hs.Score != 135 {
			t.Errorf("after Save = %+v", hs)
		}
	})
}

func TestBankRepoEvents(t *testing.T) {
	backends(t, func(t *testing.T, store DocumentStore) {
		ctx := context.Background()
		repo := NewBankRepo(store)

		ledger, err := repo.LoadOrDefault(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if ledger.Profit != 0 {
			t.Errorf("default profit = %d, want 0", ledger.Profit)
		}

		at := time.UnixMilli(1_700_000_000_000).UTC()
		events := []domain.BankEvent{
			{Ref: "a", Kind: domain.BankEventFee, Player: "Alice", Delta: 1, At: at},
			{Ref: "b", Kind: domain.BankEventRound, Player: "Alice", Delta: 10, At: at},
		}
		for _, e := range events {
			if err := repo.AppendEvent(ctx, e); err != nil {
				t.Fatal(err)
			}
		}

		got, err := repo.Events(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Ref != "a" || got[1].Kind != domain.BankEventRound {
			t.Errorf("Events() = %+v", got)
		}
	})
}

func TestPlayerRepoLoadOrCreate(t *testing.T) {
	backends(t, func(t *testing.T, store DocumentStore) {
		ctx := context.Background()
		repo := NewPlayerRepo(store, 100)

		p, created, err := repo.LoadOrCreate(ctx, "Alice")
		if err != nil {
			t.Fatal(err)
		}
		if !created {
			t.Error("first LoadOrCreate() created = false")
		}
		want := domain.PlayerProfile{Name: "Alice", Balance: 100}
		if p.Name != want.Name || p.Balance != 100 || p.BanUntil != nil || p.GamesPlayed != 0 {
			t.Errorf("new profile = %+v", p)
		}

		p.Balance = 42
		p.GamesPlayed = 3
		if err := repo.Save(ctx, p); err != nil {
			t.Fatal(err)
		}

		again, created, err := repo.LoadOrCreate(ctx, "Alice")
		if err != nil {
			t.Fatal(err)
		}
		if created {
			t.Error("second LoadOrCreate() created = true")
		}
		if again.Balance != 42 || again.GamesPlayed != 3 {
			t.Errorf("reloaded profile = %+v", again)
		}
	})
}

func TestPlayerRepoEmptyName(t *testing.T) {
	repo := NewPlayerRepo(setupFileStore(t), 100)
	p, _, err := repo.LoadOrCreate(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Anonymous" {
		t.Errorf("Name = %q, want Anonymous", p.Name)
	}
}

func TestPlayerRepoRejectsCorruptProfile(t *testing.T) {
	backends(t, func(t *testing.T, store DocumentStore) {
		ctx := context.Background()
		bad := domain.PlayerProfile{Name: "Mallory", Balance: -5}
		if err := store.Save(ctx, PlayerKey("Mallory"), bad); err != nil {
			t.Fatal(err)
		}

		_, _, err := NewPlayerRepo(store, 100).LoadOrCreate(ctx, "Mallory")
		if !errors.Is(err, ErrStorage) {
			t.Errorf("LoadOrCreate() error = %v, want ErrStorage", err)
		}
	})
}

func TestResultsRepoAppend(t *testing.T) {
	backends(t, func(t *testing.T, store DocumentStore) {
		ctx := context.Background()
		repo := NewResultsRepo(store)

		first := []domain.RoundResult{{Number: 0, Color: domain.Green}}
		second := []domain.RoundResult{{Number: 1, Color: domain.Red}, {Number: 2, Color: domain.Black}}

		if err := repo.Append(ctx, first); err != nil {
			t.Fatal(err)
		}
		if err := repo.Append(ctx, nil); err != nil {
			t.Fatal(err)
		}
		if err := repo.Append(ctx, second); err != nil {
			t.Fatal(err)
		}

		all, err := repo.LoadAll(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 3 || all[0].Number != 0 || all[2].Color != domain.Black {
			t.Errorf("LoadAll() = %+v", all)
		}
	})
}

func TestPlayerRepoRejectsProfileUnderWrongKey(t *testing.T) {
	tests := []struct {
		name string
		doc  any
	}{
		{"empty document", struct{}{}},
		{"name differs from key", domain.PlayerProfile{Name: "Mallory", Balance: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backends(t, func(t *testing.T, store DocumentStore) {
				ctx := context.Background()
				if err := store.Save(ctx, PlayerKey("Bob"), tt.doc); err != nil {
					t.Fatal(err)
				}

				_, _, err := NewPlayerRepo(store, 100).LoadOrCreate(ctx, "Bob")
				if !errors.Is(err, ErrStorage) {
					t.Errorf("LoadOrCreate() error = %v, want ErrStorage", err)
				}
			})
		})
	}
}

func TestPlayerRepoEmptyAnonymousDocument(t *testing.T) {
	store := setupFileStore(t)
	ctx := context.Background()
	if err := store.Save(ctx, PlayerKey("Anonymous"), struct{}{}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewPlayerRepo(store, 100).LoadOrCreate(ctx, ""); !errors.Is(err, ErrStorage) {
		t.Errorf("LoadOrCreate() error = %v, want ErrStorage", err)
	}
}
