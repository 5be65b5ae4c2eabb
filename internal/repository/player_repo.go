package repository

import (
	"context"
	"errors"

	"cli-roulette/internal/domain"
)

var (
	errCorruptProfile = errors.New("profile has negative fields")
	errProfileKey     = errors.New("profile name does not match its key")
)

type PlayerRepo struct {
	store           DocumentStore
	startingBalance int64
}

func NewPlayerRepo(store DocumentStore, startingBalance int64) *PlayerRepo {
	return &PlayerRepo{store: store, startingBalance: startingBalance}
}

// LoadOrCreate returns the stored profile for name, creating and persisting a
// fresh one on first encounter.
func (r *PlayerRepo) LoadOrCreate(ctx context.Context, name string) (domain.PlayerProfile, bool, error) {
	const op = "repository.PlayerRepo.LoadOrCreate"

	if name == "" {
		name = anonymous
	}
	key := PlayerKey(name)

	var profile domain.PlayerProfile
	found, err := r.store.Load(ctx, key, &profile)
	if err != nil {
		return domain.PlayerProfile{}, false, err
	}
	if found {
		if profile.Name == "" || PlayerKey(profile.Name) != key {
			return domain.PlayerProfile{}, false, &StorageError{Op: op, Key: key, Err: errProfileKey}
		}
		if !validProfile(profile) {
			return domain.PlayerProfile{}, false, &StorageError{Op: op, Key: key, Err: errCorruptProfile}
		}
		return profile, false, nil
	}

	profile = domain.NewPlayerProfile(name, r.startingBalance)
	if err := r.store.Save(ctx, key, profile); err != nil {
		return domain.PlayerProfile{}, false, err
	}
	return profile, true, nil
}

func (r *PlayerRepo) Save(ctx context.Context, profile domain.PlayerProfile) error {
	return r.store.Save(ctx, PlayerKey(profile.Name), profile)
}

func validProfile(p domain.PlayerProfile) bool {
	return p.Highscore >= 0 && p.GamesPlayed >= 0 && p.Balance >= 0 && p.TimesGotMoneyFromBank >= 0
}
