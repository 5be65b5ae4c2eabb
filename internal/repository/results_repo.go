package repository

import (
	"context"

	"cli-roulette/internal/domain"
)

type ResultsRepo struct {
	store DocumentStore
}

func NewResultsRepo(store DocumentStore) *ResultsRepo {
	return &ResultsRepo{store: store}
}

// Append merges results onto the stored log.
func (r *ResultsRepo) Append(ctx context.Context, results []domain.RoundResult) error {
	return appendDocs(ctx, r.store, KeyResults, results)
}

func (r *ResultsRepo) LoadAll(ctx context.Context) ([]domain.RoundResult, error) {
	var results []domain.RoundResult
	if _, err := r.store.Load(ctx, KeyResults, &results); err != nil {
		return nil, err
	}
	return results, nil
}
