package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cli-roulette/internal/domain"
)

func formatMoney(n int64) string {
	if n < 0 {
		return "-" + formatMoney(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ceilSeconds rounds d up to whole seconds.
func ceilSeconds(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	return secs
}

func humanDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		if m := int64(d / time.Minute); m != 1 {
			return fmt.Sprintf("%d minutes", m)
		}
		return "1 minute"
	}
	if s := ceilSeconds(d); s != 1 {
		return fmt.Sprintf("%d seconds", s)
	}
	return "1 second"
}

func recentText(results []domain.RoundResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("%d %s", r.Number, r.Color)
	}
	return "Recent results: " + strings.Join(parts, " | ")
}
