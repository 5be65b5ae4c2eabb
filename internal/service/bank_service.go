package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cli-roulette/internal/domain"
	"cli-roulette/internal/repository"
)

type BankService struct {
	repo *repository.BankRepo
	log  *zap.Logger
	now  func() time.Time
}

func NewBankService(repo *repository.BankRepo, log *zap.Logger, now func() time.Time) *BankService {
	return &BankService{repo: repo, log: log, now: now}
}

// Record applies delta to the house profit and journals it. Zero deltas are
// ignored.
func (s *BankService) Record(ctx context.Context, kind domain.BankEventKind, player string, delta int64) error {
	const op = "service.BankService.Record"

	if delta == 0 {
		return nil
	}

	ledger, err := s.repo.LoadOrDefault(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	ledger.Profit += delta

	// Journal first: a profit change is never written without its event.
	event := domain.BankEvent{
		Ref:    uuid.NewString(),
		Kind:   kind,
		Player: player,
		Delta:  delta,
		At:     s.now().UTC(),
	}
	if err := s.repo.AppendEvent(ctx, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.Save(ctx, ledger); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("bank updated",
		zap.String("ref", event.Ref),
		zap.String("kind", string(kind)),
		zap.String("player", player),
		zap.Int64("delta", delta),
		zap.Int64("profit", ledger.Profit),
	)
	return nil
}

func (s *BankService) Profit(ctx context.Context) (int64, error) {
	ledger, err := s.repo.LoadOrDefault(ctx)
	if err != nil {
		return 0, err
	}
	return ledger.Profit, nil
}
