package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cli-roulette/internal/domain"
	"cli-roulette/internal/repository"
)

type HighscoreService struct {
	repo *repository.HighscoreRepo
	log  *zap.Logger
}

func NewHighscoreService(repo *repository.HighscoreRepo, log *zap.Logger) *HighscoreService {
	return &HighscoreService{repo: repo, log: log}
}

func (s *HighscoreService) Current(ctx context.Context) (domain.GlobalHighscore, error) {
	return s.repo.LoadOrDefault(ctx)
}

// Propose replaces the global highscore when score strictly beats it. It
// returns the record in effect afterwards.
func (s *HighscoreService) Propose(ctx context.Context, name string, score int64) (bool, domain.GlobalHighscore, error) {
	const op = "service.HighscoreService.Propose"

	current, err := s.repo.LoadOrDefault(ctx)
	if err != nil {
		return false, current, fmt.Errorf("%s: %w", op, err)
	}
	if score <= current.Score {
		return false, current, nil
	}

	next := domain.GlobalHighscore{Name: name, Score: score}
	if err := s.repo.Save(ctx, next); err != nil {
		return false, current, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("new global highscore", zap.String("player", name), zap.Int64("score", score))
	return true, next, nil
}

func scoreboardText(global domain.GlobalHighscore, personal int64) string {
	text := fmt.Sprintf("The current global highscore is %s$ from %s\n", formatMoney(global.Score), global.Name)
	if personal == 0 {
		return text + "You dont have a highscore right now"
	}
	return text + fmt.Sprintf("Your highscore is %s$", formatMoney(personal))
}

func highscoreText(updated bool, name string, record domain.GlobalHighscore) string {
	if updated {
		return fmt.Sprintf("🎉 New highscore by %s: %s$!", name, formatMoney(record.Score))
	}
	return fmt.Sprintf("No new global highscore. Current record: %s with %s$", record.Name, formatMoney(record.Score))
}
