package repository

import (
	"context"

	"cli-roulette/internal/domain"
)

type HighscoreRepo struct {
	store DocumentStore
}

func NewHighscoreRepo(store DocumentStore) *HighscoreRepo {
	return &HighscoreRepo{store: store}
}

func (r *HighscoreRepo) LoadOrDefault(ctx context.Context) (domain.GlobalHighscore, error) {
	return loadOrDefault(ctx, r.store, KeyHighscore, domain.DefaultHighscore())
}

func (r *HighscoreRepo) Save(ctx context.Context, hs domain.GlobalHighscore) error {
	return r.store.Save(ctx, KeyHighscore, hs)
}
