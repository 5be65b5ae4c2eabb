package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"cli-roulette/internal/domain"
	"cli-roulette/internal/service"
)

var (
	bannerStyle  = color.New(color.FgHiCyan, color.Bold)
	infoStyle    = color.New(color.Bold)
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	dangerStyle  = color.New(color.FgRed, color.Bold)
	winStyle     = color.New(color.FgHiGreen, color.Bold)
	loseStyle    = color.New(color.FgHiRed, color.Bold)

	resultStyles = map[domain.Color]*color.Color{
		domain.Red:   color.New(color.BgRed, color.FgBlack, color.Bold),
		domain.Black: color.New(color.BgBlack, color.FgWhite, color.Bold),
		domain.Green: color.New(color.BgGreen, color.FgBlack, color.Bold),
	}
)

// Presenter drives the game on an interactive terminal.
type Presenter struct {
	in     io.ReadCloser
	out    io.Writer
	pacing time.Duration
}

func New(pacing time.Duration) *Presenter {
	return &Presenter{in: os.Stdin, out: os.Stdout, pacing: pacing}
}

func (p *Presenter) PromptText(ctx context.Context, message, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prompt := promptui.Prompt{
		Label:   message,
		Default: def,
		Stdin:   p.in,
	}
	answer, err := prompt.Run()
	if err != nil {
		return "", promptErr(err)
	}
	return answer, nil
}

func (p *Presenter) PromptChoice(ctx context.Context, message string, options []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sel := promptui.Select{
		Label: message,
		Items: options,
		Size:  len(options),
		Stdin: p.in,
	}
	_, answer, err := sel.Run()
	if err != nil {
		return "", promptErr(err)
	}
	return answer, nil
}

func (p *Presenter) PromptNumber(ctx context.Context, message, def string, parse func(string) (int64, error)) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prompt := promptui.Prompt{
		Label:   message,
		Default: def,
		Stdin:   p.in,
		Validate: func(raw string) error {
			_, err := parse(raw)
			return err
		},
	}
	raw, err := prompt.Run()
	if err != nil {
		return 0, promptErr(err)
	}
	return parse(raw)
}

func (p *Presenter) Display(ctx context.Context, msg service.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(p.out, render(msg))
	return err
}

func (p *Presenter) AnnounceDelay(ctx context.Context, kind service.DelayKind) error {
	switch kind {
	case service.DelayChecking:
		return p.spin(ctx, "Checking money...")
	case service.DelaySpin:
		if err := p.spin(ctx, "Spinning the ball...", "Ball is rolling...", "Almost there..."); err != nil {
			return err
		}
		_, err := successStyle.Fprintln(p.out, "✔ The result is in!")
		return err
	case service.DelayBanner:
		return sleep(ctx, p.pacing+p.pacing/3)
	}
	return sleep(ctx, p.pacing)
}

func (p *Presenter) spin(ctx context.Context, phases ...string) error {
	step := p.pacing / time.Duration(len(phases))
	for _, phase := range phases {
		fmt.Fprintf(p.out, "\r%s", phase)
		if err := sleep(ctx, step); err != nil {
			fmt.Fprintln(p.out)
			return err
		}
	}
	fmt.Fprintln(p.out)
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func render(msg service.Message) string {
	switch msg.Kind {
	case service.KindBanner:
		return "\n" + bannerStyle.Sprint(frame(msg.Text)) + "\n\n"
	case service.KindResult:
		style, ok := resultStyles[msg.Color]
		if !ok {
			style = infoStyle
		}
		return "\n    " + style.Sprintf("  %s  ", msg.Text) + "\n\n"
	case service.KindWin:
		return "\n" + winStyle.Sprint(frame(msg.Text)) + "\n"
	case service.KindLose:
		return "\n" + loseStyle.Sprint(frame(msg.Text)) + "\n"
	case service.KindSuccess:
		return successStyle.Sprint(msg.Text) + "\n"
	case service.KindWarning:
		return warningStyle.Sprint(msg.Text) + "\n"
	case service.KindDanger:
		return "\n" + dangerStyle.Sprint(msg.Text) + "\n"
	}
	return "\n" + infoStyle.Sprint(msg.Text) + "\n"
}

func frame(text string) string {
	bar := strings.Repeat("═", len([]rune(text))+4)
	return "╔" + bar + "╗\n║  " + text + "  ║\n╚" + bar + "╝"
}

func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return fmt.Errorf("%w: %v", service.ErrAborted, err)
	}
	return err
}
