package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cli-roulette/internal/config"
	"cli-roulette/internal/domain"
	"cli-roulette/internal/repository"
	"cli-roulette/internal/roulette"
)

// scriptedPresenter answers prompts from a fixed list and records output.
// Running out of answers aborts like a closed terminal.
type scriptedPresenter struct {
	answers  []string
	messages []Message
	delays   []DelayKind
	prompts  []string
}

func (f *scriptedPresenter) next(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.answers) == 0 {
		return "", ErrAborted
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	return a, nil
}

func (f *scriptedPresenter) PromptText(_ context.Context, message, def string) (string, error) {
	a, err := f.next(message)
	if err != nil {
		return "", err
	}
	if a == "" {
		return def, nil
	}
	return a, nil
}

func (f *scriptedPresenter) PromptChoice(_ context.Context, message string, _ []string) (string, error) {
	return f.next(message)
}

func (f *scriptedPresenter) PromptNumber(_ context.Context, message, def string, parse func(string) (int64, error)) (int64, error) {
	for {
		a, err := f.next(message)
		if err != nil {
			return 0, err
		}
		if a == "" {
			a = def
		}
		n, err := parse(a)
		var verr *roulette.ValidationError
		if errors.As(err, &verr) {
			f.messages = append(f.messages, Message{Kind: KindWarning, Text: verr.Message})
			continue
		}
		return n, err
	}
}

func (f *scriptedPresenter) Display(_ context.Context, msg Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *scriptedPresenter) AnnounceDelay(_ context.Context, kind DelayKind) error {
	f.delays = append(f.delays, kind)
	return nil
}

func (f *scriptedPresenter) count(substr string) int {
	n := 0
	for _, m := range f.messages {
		if strings.Contains(m.Text, substr) {
			n++
		}
	}
	return n
}

type fixedDrawer struct {
	numbers []int
	i       int
}

func (d *fixedDrawer) Draw() domain.RoundResult {
	n := d.numbers[d.i%len(d.numbers)]
	d.i++
	return roulette.NewRoundResult(n)
}

type fixture struct {
	store   *repository.FileStore
	players *repository.PlayerRepo
	bank    *repository.BankRepo
	scores  *repository.HighscoreRepo
	results *repository.ResultsRepo
	session *SessionService
	drawer  *fixedDrawer
	logs    *observer.ObservedLogs
	now     time.Time
}

func newFixture(t *testing.T, draws ...int) *fixture {
	t.Helper()
	rules, err := config.LoadRules("")
	if err != nil {
		t.Fatal(err)
	}
	store, err := repository.NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		store:   store,
		players: repository.NewPlayerRepo(store, rules.StartingBalance),
		bank:    repository.NewBankRepo(store),
		scores:  repository.NewHighscoreRepo(store),
		results: repository.NewResultsRepo(store),
		drawer:  &fixedDrawer{numbers: draws},
		now:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	core, logs := observer.New(zap.InfoLevel)
	f.logs = logs
	log := zap.New(core)
	highscores := NewHighscoreService(f.scores, log)
	f.session = NewSessionService(
		NewPlayerService(f.players, highscores, rules, log),
		NewBankService(f.bank, log, clock),
		highscores,
		f.results,
		roulette.NewResolver(rules.Payouts),
		f.drawer,
		clock,
		log,
	)
	return f
}

func (f *fixture) profile(t *testing.T, name string) domain.PlayerProfile {
	t.Helper()
	var p domain.PlayerProfile
	found, err := f.store.Load(context.Background(), repository.PlayerKey(name), &p)
	if err != nil || !found {
		t.Fatalf("profile %s: found=%v err=%v", name, found, err)
	}
	return p
}

func (f *fixture) seed(t *testing.T, p domain.PlayerProfile) {
	t.Helper()
	if err := f.players.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) profit(t *testing.T) int64 {
	t.Helper()
	var ledger domain.BankLedger
	if _, err := f.store.Load(context.Background(), repository.KeyBank, &ledger); err != nil {
		t.Fatal(err)
	}
	return ledger.Profit
}
