package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"cli-roulette/internal/domain"
	"cli-roulette/internal/repository"
)

func TestBankRecord(t *testing.T) {
	ctx := context.Background()
	store, err := repository.NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewBankRepo(store)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewBankService(repo, zap.NewNop(), func() time.Time { return at })

	steps := []struct {
		kind  domain.BankEventKind
		delta int64
	}{
		{domain.BankEventFee, 3},
		{domain.BankEventRound, 0},
		{domain.BankEventRound, -35},
		{domain.BankEventBailout, -100},
	}
	for _, s := range steps {
		if err := svc.Record(ctx, s.kind, "Lee", s.delta); err != nil {
			t.Fatalf("Record(%s, %d) error = %v", s.kind, s.delta, err)
		}
	}

	profit, err := svc.Profit(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if profit != -132 {
		t.Errorf("Profit() = %d, want -132", profit)
	}

	events, err := repo.Events(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3 (zero delta skipped)", len(events))
	}
	seen := map[string]bool{}
	for _, e := range events {
		if e.Ref == "" || seen[e.Ref] {
			t.Errorf("event ref %q missing or duplicated", e.Ref)
		}
		seen[e.Ref] = true
		if !e.At.Equal(at) || e.Player != "Lee" {
			t.Errorf("event = %+v", e)
		}
	}
}

func TestBankRecordFailedJournalKeepsProfit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := repository.NewFileStore(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	// A directory where the journal file should be makes every append fail.
	if err := os.Mkdir(filepath.Join(dir, repository.KeyBankEvents+".json"), 0755); err != nil {
		t.Fatal(err)
	}
	repo := repository.NewBankRepo(store)
	svc := NewBankService(repo, zap.NewNop(), time.Now)

	if err := svc.Record(ctx, domain.BankEventRound, "Lee", 25); !errors.Is(err, repository.ErrStorage) {
		t.Fatalf("Record() error = %v, want ErrStorage", err)
	}

	ledger, err := repo.LoadOrDefault(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Profit != 0 {
		t.Errorf("profit = %d, want 0 when the journal write fails", ledger.Profit)
	}
}
