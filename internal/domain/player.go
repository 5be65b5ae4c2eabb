package domain

import "time"

// PlayerProfile is the persisted record of a single player.
type PlayerProfile struct {
	Name                  string `json:"name"`
	Highscore             int64  `json:"highscore"`
	GamesPlayed           int64  `json:"gamesPlayed"`
	BanUntil              *int64 `json:"banUntil"` // epoch millis, nil when not banned
	Balance               int64  `json:"balance"`
	TimesGotMoneyFromBank int64  `json:"timesGotMoneyFromBank"`
}

func NewPlayerProfile(name string, startingBalance int64) PlayerProfile {
	return PlayerProfile{
		Name:    name,
		Balance: startingBalance,
	}
}

func (p PlayerProfile) IsBanned(now time.Time) bool {
	return p.BanUntil != nil && now.UnixMilli() < *p.BanUntil
}

// BanRemaining returns the time left on the ban, zero when not banned.
func (p PlayerProfile) BanRemaining(now time.Time) time.Duration {
	if !p.IsBanned(now) {
		return 0
	}
	return time.Duration(*p.BanUntil-now.UnixMilli()) * time.Millisecond
}

func (p *PlayerProfile) BanFor(now time.Time, d time.Duration) {
	until := now.Add(d).UnixMilli()
	p.BanUntil = &until
}

func (p *PlayerProfile) ClearBan() {
	p.BanUntil = nil
}
