package telegram

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"go.uber.org/zap"

	"cli-roulette/internal/domain"
	"cli-roulette/internal/roulette"
	"cli-roulette/internal/service"
)

const quitCommand = "/quit"

// Sender is the part of the Bot API the prompter needs.
type Sender interface {
	Send(chatID int64, text string, keyboard []string) error
	Typing(chatID int64) error
}

type BotSender struct {
	Bot *gotgbot.Bot
}

func (s BotSender) Send(chatID int64, text string, keyboard []string) error {
	opts := &gotgbot.SendMessageOpts{}
	if len(keyboard) > 0 {
		row := make([]gotgbot.KeyboardButton, len(keyboard))
		for i, k := range keyboard {
			row[i] = gotgbot.KeyboardButton{Text: k}
		}
		opts.ReplyMarkup = gotgbot.ReplyKeyboardMarkup{
			Keyboard:        [][]gotgbot.KeyboardButton{row},
			OneTimeKeyboard: true,
			ResizeKeyboard:  true,
		}
	} else {
		opts.ReplyMarkup = gotgbot.ReplyKeyboardRemove{RemoveKeyboard: true}
	}
	_, err := s.Bot.SendMessage(chatID, text, opts)
	return err
}

func (s BotSender) Typing(chatID int64) error {
	_, err := s.Bot.SendChatAction(chatID, "typing", nil)
	return err
}

// Prompter runs the game in a single Telegram chat. Replies arrive through
// Deliver, usually from the handler returned by handlers.GetReplyHandler.
type Prompter struct {
	sender Sender
	chatID int64
	pacing time.Duration
	log    *zap.Logger

	inbox     chan string
	closeOnce sync.Once
	done      chan struct{}
}

func NewPrompter(sender Sender, chatID int64, pacing time.Duration, log *zap.Logger) *Prompter {
	return &Prompter{
		sender: sender,
		chatID: chatID,
		pacing: pacing,
		log:    log,
		inbox:  make(chan string, 16),
		done:   make(chan struct{}),
	}
}

func (p *Prompter) ChatID() int64 {
	return p.chatID
}

// Deliver queues a reply from the chat. Replies after Close are dropped.
func (p *Prompter) Deliver(text string) {
	select {
	case <-p.done:
	case p.inbox <- text:
	default:
		p.log.Warn("reply dropped, inbox full", zap.Int64("chat_id", p.chatID))
	}
}

func (p *Prompter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

func (p *Prompter) wait(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", service.ErrAborted
	case text := <-p.inbox:
		text = strings.TrimSpace(text)
		if text == quitCommand {
			return "", service.ErrAborted
		}
		return text, nil
	}
}

func (p *Prompter) ask(message string, keyboard []string) error {
	if err := p.sender.Send(p.chatID, message, keyboard); err != nil {
		return fmt.Errorf("telegram.Prompter.ask: %w", err)
	}
	return nil
}

func (p *Prompter) PromptText(ctx context.Context, message, def string) (string, error) {
	var keyboard []string
	if def != "" {
		keyboard = []string{def}
	}
	if err := p.ask(message, keyboard); err != nil {
		return "", err
	}
	return p.wait(ctx)
}

func (p *Prompter) PromptChoice(ctx context.Context, message string, options []string) (string, error) {
	if err := p.ask(message, options); err != nil {
		return "", err
	}
	for {
		answer, err := p.wait(ctx)
		if err != nil {
			return "", err
		}
		if slices.Contains(options, answer) {
			return answer, nil
		}
		if err := p.ask("Please pick one of: "+strings.Join(options, ", "), options); err != nil {
			return "", err
		}
	}
}

func (p *Prompter) PromptNumber(ctx context.Context, message, def string, parse func(string) (int64, error)) (int64, error) {
	var keyboard []string
	if def != "" {
		keyboard = []string{def}
	}
	if err := p.ask(message, keyboard); err != nil {
		return 0, err
	}
	for {
		answer, err := p.wait(ctx)
		if err != nil {
			return 0, err
		}
		n, err := parse(answer)
		var verr *roulette.ValidationError
		if errors.As(err, &verr) {
			if err := p.ask(verr.Message, keyboard); err != nil {
				return 0, err
			}
			continue
		}
		return n, err
	}
}

func (p *Prompter) Display(ctx context.Context, msg service.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.ask(render(msg), nil)
}

func (p *Prompter) AnnounceDelay(ctx context.Context, _ service.DelayKind) error {
	if err := p.sender.Typing(p.chatID); err != nil {
		p.log.Debug("chat action failed", zap.Error(err))
	}
	if p.pacing <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.pacing)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var resultMarks = map[domain.Color]string{
	domain.Red:   "🔴",
	domain.Black: "⚫",
	domain.Green: "🟢",
}

func render(msg service.Message) string {
	switch msg.Kind {
	case service.KindBanner:
		return "🎰 " + msg.Text + " 🎰"
	case service.KindResult:
		return resultMarks[msg.Color] + " " + msg.Text + " " + string(msg.Color)
	case service.KindWin:
		return "🏆 " + msg.Text
	case service.KindLose:
		return "💀 " + msg.Text
	case service.KindWarning:
		return "⚠️ " + msg.Text
	}
	return msg.Text
}
