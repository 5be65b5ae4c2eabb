package repository

import (
	"context"

	"cli-roulette/internal/domain"
)

type BankRepo struct {
	store DocumentStore
}

func NewBankRepo(store DocumentStore) *BankRepo {
	return &BankRepo{store: store}
}

func (r *BankRepo) LoadOrDefault(ctx context.Context) (domain.BankLedger, error) {
	return loadOrDefault(ctx, r.store, KeyBank, domain.BankLedger{})
}

func (r *BankRepo) Save(ctx context.Context, ledger domain.BankLedger) error {
	return r.store.Save(ctx, KeyBank, ledger)
}

func (r *BankRepo) AppendEvent(ctx context.Context, event domain.BankEvent) error {
	return appendDocs(ctx, r.store, KeyBankEvents, []domain.BankEvent{event})
}

func (r *BankRepo) Events(ctx context.Context) ([]domain.BankEvent, error) {
	var events []domain.BankEvent
	if _, err := r.store.Load(ctx, KeyBankEvents, &events); err != nil {
		return nil, err
	}
	return events, nil
}
