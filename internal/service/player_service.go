package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cli-roulette/internal/config"
	"cli-roulette/internal/domain"
	"cli-roulette/internal/repository"
)

type PlayerService struct {
	players    *repository.PlayerRepo
	highscores *HighscoreService
	rules      config.Rules
	log        *zap.Logger
}

func NewPlayerService(players *repository.PlayerRepo, highscores *HighscoreService, rules config.Rules, log *zap.Logger) *PlayerService {
	return &PlayerService{players: players, highscores: highscores, rules: rules, log: log}
}

func (s *PlayerService) Begin(ctx context.Context, name string) (domain.PlayerProfile, error) {
	const op = "service.PlayerService.Begin"

	profile, created, err := s.players.LoadOrCreate(ctx, name)
	if err != nil {
		return domain.PlayerProfile{}, fmt.Errorf("%s: %w", op, err)
	}
	if created {
		s.log.Info("new player", zap.String("player", profile.Name))
	}
	return profile, nil
}

// ApplyEntryPolicy moves the profile balance through the entry policy. The
// caller books the returned bank delta.
func (s *PlayerService) ApplyEntryPolicy(profile *domain.PlayerProfile) EntryDecision {
	decision := EntryPolicy(*profile, s.rules)
	profile.Balance = decision.Balance
	if decision.Kind == EntryBailout {
		profile.TimesGotMoneyFromBank++
	}
	return decision
}

type EndResult struct {
	Banned           bool
	BanDuration      time.Duration
	HighscoreUpdated bool
	Highscore        domain.GlobalHighscore
}

// End folds the final money into the profile, persists it and offers the
// result to the global highscore.
func (s *PlayerService) End(ctx context.Context, profile *domain.PlayerProfile, finalMoney int64, now time.Time) (EndResult, error) {
	const op = "service.PlayerService.End"

	profile.GamesPlayed++
	if finalMoney > profile.Highscore {
		profile.Highscore = finalMoney
	}
	profile.Balance = max(finalMoney, 0)

	var res EndResult
	if finalMoney <= 0 {
		profile.BanFor(now, s.rules.BanDuration)
		res.Banned = true
		res.BanDuration = s.rules.BanDuration
	} else {
		profile.ClearBan()
	}

	if err := s.players.Save(ctx, *profile); err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}

	updated, record, err := s.highscores.Propose(ctx, profile.Name, finalMoney)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	res.HighscoreUpdated = updated
	res.Highscore = record
	return res, nil
}
