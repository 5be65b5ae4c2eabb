package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cli-roulette/internal/cache"
	"cli-roulette/internal/domain"
	"cli-roulette/internal/repository"
	"cli-roulette/internal/roulette"
)

const (
	defaultName    = "Anonymous"
	defaultAmount  = "10"
	answerAgain    = "yes"
	answerCheckout = "checkout"
	recentShown    = 5
)

const betExplanation = "Take your bet!\nYou can choose between betting on:\n" +
	"- a specific number (0-36)\n" +
	"- even or odd\n" +
	"- red or black\n" +
	"- a dozen (1-12, 13-24, 25-36)\n" +
	"- low or high (1-18, 19-36)"

var choiceQuestions = map[roulette.Kind]string{
	roulette.KindParity: "Do you bet on even or odd?",
	roulette.KindColor:  "Do you bet on red or black?",
	roulette.KindDozen:  "Which dozen do you bet on?",
	roulette.KindHalf:   "Do you bet on low (1-18) or high (19-36)?",
}

type Exit string

const (
	ExitBanned   Exit = "banned"
	ExitBroke    Exit = "broke"
	ExitCheckout Exit = "checkout"
)

// Report summarizes a finished session.
type Report struct {
	ID               string
	Player           string
	Exit             Exit
	Rounds           int
	FinalMoney       int64
	Entry            EntryDecision
	BanRemaining     time.Duration
	HighscoreUpdated bool
	Aborted          bool
}

type SessionService struct {
	players    *PlayerService
	bank       *BankService
	highscores *HighscoreService
	results    *repository.ResultsRepo
	resolver   *roulette.Resolver
	drawer     roulette.Drawer
	now        func() time.Time
	log        *zap.Logger
}

func NewSessionService(
	players *PlayerService,
	bank *BankService,
	highscores *HighscoreService,
	results *repository.ResultsRepo,
	resolver *roulette.Resolver,
	drawer roulette.Drawer,
	now func() time.Time,
	log *zap.Logger,
) *SessionService {
	return &SessionService{
		players:    players,
		bank:       bank,
		highscores: highscores,
		results:    results,
		resolver:   resolver,
		drawer:     drawer,
		now:        now,
		log:        log,
	}
}

// Run plays one session for one player from name prompt to checkout. Storage
// failures end the session with an error. An aborted prompt ends it as a
// checkout once a profile is loaded, and returns ErrAborted before that.
func (s *SessionService) Run(ctx context.Context, p Presenter) (Report, error) {
	report := Report{ID: uuid.NewString()}
	log := s.log.With(zap.String("session", report.ID))

	if err := p.Display(ctx, Message{Kind: KindBanner, Text: "CLI ROULETTE"}); err != nil {
		return report, err
	}
	if err := p.AnnounceDelay(ctx, DelayBanner); err != nil {
		return report, err
	}

	name, err := p.PromptText(ctx, "Enter your name:", defaultName)
	if err != nil {
		return report, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	profile, err := s.players.Begin(ctx, name)
	if err != nil {
		return report, err
	}
	report.Player = profile.Name
	log = log.With(zap.String("player", profile.Name))

	now := s.now()
	if profile.IsBanned(now) {
		report.Exit = ExitBanned
		report.BanRemaining = profile.BanRemaining(now)
		log.Info("banned player turned away", zap.Duration("remaining", report.BanRemaining))
		text := fmt.Sprintf("⛔ You are banned from playing for %d more seconds.\nCome back later!", ceilSeconds(report.BanRemaining))
		return report, p.Display(ctx, Message{Kind: KindDanger, Text: text})
	}

	decision := s.players.ApplyEntryPolicy(&profile)
	report.Entry = decision
	if err := s.bookEntry(ctx, profile.Name, decision); err != nil {
		return report, err
	}
	log.Info("session started", zap.String("entry", string(decision.Kind)), zap.Int64("balance", profile.Balance))

	session := domain.Session{Money: profile.Balance, Again: true}
	rounds := cache.NewRoundCache(cache.DefaultRecent)

	if err := s.announceEntry(ctx, p, decision); err != nil {
		if !isAbort(err) {
			return report, err
		}
		report.Aborted = true
		session.Again = false
	}

	for session.Again && session.Money > 0 {
		next, err := s.playRound(ctx, p, profile, session, rounds)
		session = next
		if err != nil {
			if !isAbort(err) {
				return report, err
			}
			report.Aborted = true
			log.Info("session aborted", zap.Error(err))
			break
		}
	}

	// Persisting must survive a cancelled prompt context.
	ctx = context.WithoutCancel(ctx)
	return s.finish(ctx, p, log, &profile, session, rounds, report)
}

func (s *SessionService) bookEntry(ctx context.Context, player string, decision EntryDecision) error {
	switch decision.Kind {
	case EntryBailout:
		return s.bank.Record(ctx, domain.BankEventBailout, player, decision.BankDelta)
	case EntryFee:
		return s.bank.Record(ctx, domain.BankEventFee, player, decision.BankDelta)
	}
	return nil
}

func (s *SessionService) announceEntry(ctx context.Context, p Presenter, decision EntryDecision) error {
	switch decision.Kind {
	case EntryBailout:
		text := fmt.Sprintf("You were broke, but the bank granted you %s$ 💰", formatMoney(-decision.BankDelta))
		return p.Display(ctx, Message{Kind: KindSuccess, Text: text})
	case EntryFee:
		if decision.BankDelta == 0 {
			return nil
		}
		text := fmt.Sprintf("You had to pay the bank %s$ back to play again", formatMoney(decision.BankDelta))
		return p.Display(ctx, Message{Kind: KindWarning, Text: text})
	}
	return nil
}

func (s *SessionService) playRound(ctx context.Context, p Presenter, profile domain.PlayerProfile, session domain.Session, rounds *cache.RoundCache) (domain.Session, error) {
	welcome := fmt.Sprintf("Welcome %s to the absolute fantastic Cli-Roulette ♠ experience!\nYour current money: %s$", profile.Name, formatMoney(session.Money))
	if err := p.Display(ctx, Message{Kind: KindInfo, Text: welcome}); err != nil {
		return session, err
	}

	global, err := s.highscores.Current(ctx)
	if err != nil {
		return session, err
	}
	if err := p.Display(ctx, Message{Kind: KindInfo, Text: scoreboardText(global, profile.Highscore)}); err != nil {
		return session, err
	}
	if recent := rounds.Recent(recentShown); len(recent) > 0 {
		if err := p.Display(ctx, Message{Kind: KindInfo, Text: recentText(recent)}); err != nil {
			return session, err
		}
	}

	amount, err := p.PromptNumber(ctx, "How much do you want to bet?", defaultAmount, roulette.AmountParser(session.Money))
	if err != nil {
		return session, err
	}
	if err := p.AnnounceDelay(ctx, DelayChecking); err != nil {
		return session, err
	}
	if err := p.Display(ctx, Message{Kind: KindSuccess, Text: "You have enough money to gamble"}); err != nil {
		return session, err
	}

	if session.Rounds == 0 {
		if err := p.Display(ctx, Message{Kind: KindInfo, Text: betExplanation}); err != nil {
			return session, err
		}
		if err := p.AnnounceDelay(ctx, DelayShort); err != nil {
			return session, err
		}
	}

	bet, err := s.askBet(ctx, p)
	if err != nil {
		return session, err
	}
	if err := p.Display(ctx, Message{Kind: KindSuccess, Text: "You bet on: " + bet.String()}); err != nil {
		return session, err
	}
	if err := p.AnnounceDelay(ctx, DelaySpin); err != nil {
		return session, err
	}

	result := s.drawer.Draw()
	next, res, err := PlayRound(session, Wager{Bet: bet, Amount: amount}, result, s.resolver)
	if err != nil {
		return session, err
	}
	rounds.Add(result)
	if err := s.bank.Record(ctx, domain.BankEventRound, profile.Name, res.BankDelta); err != nil {
		return session, err
	}
	s.log.Debug("round settled",
		zap.String("player", profile.Name),
		zap.String("bet", bet.String()),
		zap.Int64("amount", amount),
		zap.Int("number", result.Number),
		zap.Bool("won", res.Won),
		zap.Int64("delta", res.PayoutDelta),
	)

	if err := p.Display(ctx, Message{Kind: KindResult, Text: strconv.Itoa(result.Number), Color: result.Color}); err != nil {
		return next, err
	}
	if res.Won {
		text := fmt.Sprintf("YOU WON %s$", formatMoney(res.PayoutDelta))
		if err := p.Display(ctx, Message{Kind: KindWin, Text: text}); err != nil {
			return next, err
		}
	} else {
		if err := p.Display(ctx, Message{Kind: KindLose, Text: "LOSER"}); err != nil {
			return next, err
		}
	}
	if err := p.Display(ctx, Message{Kind: KindInfo, Text: fmt.Sprintf("You have now: %s$", formatMoney(next.Money))}); err != nil {
		return next, err
	}

	if next.Money <= 0 {
		next.Again = false
		return next, p.Display(ctx, Message{Kind: KindBanner, Text: "GAME OVER"})
	}

	answer, err := p.PromptChoice(ctx, "Do you want to play again or checkout?", []string{answerAgain, answerCheckout})
	if err != nil {
		next.Again = false
		return next, err
	}
	next.Again = answer == answerAgain
	return next, nil
}

func (s *SessionService) askBet(ctx context.Context, p Presenter) (roulette.Bet, error) {
	kinds := make([]string, len(roulette.Kinds))
	for i, k := range roulette.Kinds {
		kinds[i] = string(k)
	}

	for {
		raw, err := p.PromptChoice(ctx, "What type of bet do you want to place?", kinds)
		if err != nil {
			return nil, err
		}
		kind, err := roulette.ParseKind(raw)
		if err != nil {
			if err := s.reject(ctx, p, err); err != nil {
				return nil, err
			}
			continue
		}

		var value string
		if kind == roulette.KindNumber {
			n, err := p.PromptNumber(ctx, "Enter a number between 0 and 36:", "", roulette.ParseNumber)
			if err != nil {
				return nil, err
			}
			value = strconv.FormatInt(n, 10)
		} else {
			value, err = p.PromptChoice(ctx, choiceQuestions[kind], roulette.Choices(kind))
			if err != nil {
				return nil, err
			}
		}

		bet, err := roulette.Validate(value, kind)
		if err != nil {
			if err := s.reject(ctx, p, err); err != nil {
				return nil, err
			}
			continue
		}
		return bet, nil
	}
}

// reject shows a validation error to the player. Anything else is returned.
func (s *SessionService) reject(ctx context.Context, p Presenter, err error) error {
	var verr *roulette.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return p.Display(ctx, Message{Kind: KindWarning, Text: verr.Message})
}

func (s *SessionService) finish(
	ctx context.Context,
	p Presenter,
	log *zap.Logger,
	profile *domain.PlayerProfile,
	session domain.Session,
	rounds *cache.RoundCache,
	report Report,
) (Report, error) {
	report.Rounds = session.Rounds
	report.FinalMoney = session.Money
	report.Exit = ExitCheckout
	if session.Money <= 0 {
		report.Exit = ExitBroke
	}

	end, err := s.players.End(ctx, profile, session.Money, s.now())
	if err != nil {
		return report, err
	}
	report.HighscoreUpdated = end.HighscoreUpdated
	if err := s.results.Append(ctx, rounds.Drain()); err != nil {
		return report, fmt.Errorf("service.SessionService.finish: %w", err)
	}

	profit, err := s.bank.Profit(ctx)
	if err != nil {
		return report, fmt.Errorf("service.SessionService.finish: %w", err)
	}
	log.Info("session finished",
		zap.String("exit", string(report.Exit)),
		zap.Int("rounds", report.Rounds),
		zap.Int64("money", report.FinalMoney),
		zap.Int64("bank_profit", profit),
	)

	var msgs []Message
	if end.Banned {
		msgs = append(msgs, Message{
			Kind: KindDanger,
			Text: fmt.Sprintf("💸 You're broke! You've been banned for %s.", humanDuration(end.BanDuration)),
		})
	}
	kind := KindWarning
	if end.HighscoreUpdated {
		kind = KindSuccess
	}
	msgs = append(msgs,
		Message{Kind: kind, Text: highscoreText(end.HighscoreUpdated, profile.Name, end.Highscore)},
		Message{Kind: KindDanger, Text: fmt.Sprintf("Thanks for playing CLI ROULETTE! Final money: %s$", formatMoney(session.Money))},
	)
	for _, m := range msgs {
		if err := p.Display(ctx, m); err != nil {
			if isAbort(err) {
				break
			}
			return report, err
		}
	}
	return report, nil
}
