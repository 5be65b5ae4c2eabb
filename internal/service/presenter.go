package service

import (
	"context"
	"errors"

	"cli-roulette/internal/domain"
)

// ErrAborted is returned by a Presenter when the player closes the input or
// interrupts a prompt. The session treats it as a checkout.
var ErrAborted = errors.New("input aborted")

type MessageKind string

const (
	KindBanner  MessageKind = "banner"
	KindInfo    MessageKind = "info"
	KindSuccess MessageKind = "success"
	KindWarning MessageKind = "warning"
	KindDanger  MessageKind = "danger"
	KindResult  MessageKind = "result"
	KindWin     MessageKind = "win"
	KindLose    MessageKind = "lose"
)

type Message struct {
	Kind MessageKind
	Text string
	// Color is set for KindResult messages.
	Color domain.Color
}

type DelayKind string

const (
	DelayShort    DelayKind = "short"
	DelayChecking DelayKind = "checking"
	DelaySpin     DelayKind = "spin"
	DelayBanner   DelayKind = "banner"
)

// Presenter is everything the session needs from a front-end. PromptNumber
// keeps asking until parse accepts the input; parse failures carry the
// message to show.
type Presenter interface {
	PromptText(ctx context.Context, message, def string) (string, error)
	PromptChoice(ctx context.Context, message string, options []string) (string, error)
	PromptNumber(ctx context.Context, message, def string, parse func(string) (int64, error)) (int64, error)
	Display(ctx context.Context, msg Message) error
	AnnounceDelay(ctx context.Context, kind DelayKind) error
}

func isAbort(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled)
}
