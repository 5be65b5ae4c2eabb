package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"cli-roulette/internal/roulette"
)

//go:embed rules.yaml
var defaultRules []byte

// FeePolicy is the entry fee charged to returning players. After
// CapAfterBailouts bailouts the fee is CappedRate of the balance, otherwise
// BasePercent + PercentPerBailout*bailouts percent of it.
type FeePolicy struct {
	CapAfterBailouts  int64
	CappedRate        decimal.Decimal
	BasePercent       decimal.Decimal
	PercentPerBailout decimal.Decimal
}

type Rules struct {
	Payouts         roulette.PayoutTable
	StartingBalance int64
	BailoutAmount   int64
	BanDuration     time.Duration
	Fee             FeePolicy
}

type rulesFile struct {
	Payouts struct {
		Straight int64 `yaml:"straight"`
		Dozen    int64 `yaml:"dozen"`
		Half     int64 `yaml:"half"`
		Parity   int64 `yaml:"parity"`
		Color    int64 `yaml:"color"`
	} `yaml:"payouts"`
	ZeroBonus       string `yaml:"zero_bonus"`
	StartingBalance int64  `yaml:"starting_balance"`
	BailoutAmount   int64  `yaml:"bailout_amount"`
	BanDuration     string `yaml:"ban_duration"`
	Fee             struct {
		CapAfterBailouts  int64  `yaml:"cap_after_bailouts"`
		CappedRate        string `yaml:"capped_rate"`
		BasePercent       string `yaml:"base_percent"`
		PercentPerBailout string `yaml:"percent_per_bailout"`
	} `yaml:"fee"`
}

// LoadRules parses the rules file at path, or the built-in rules when path is
// empty.
func LoadRules(path string) (Rules, error) {
	data := defaultRules
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Rules{}, fmt.Errorf("reading rules: %w", err)
		}
	}
	return ParseRules(data)
}

func ParseRules(data []byte) (Rules, error) {
	var raw rulesFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Rules{}, fmt.Errorf("parsing rules: %w", err)
	}

	zeroBonus, err := parseDecimal("zero_bonus", raw.ZeroBonus)
	if err != nil {
		return Rules{}, err
	}
	banDuration, err := time.ParseDuration(raw.BanDuration)
	if err != nil {
		return Rules{}, fmt.Errorf("ban_duration: %w", err)
	}
	cappedRate, err := parseDecimal("fee.capped_rate", raw.Fee.CappedRate)
	if err != nil {
		return Rules{}, err
	}
	basePercent, err := parseDecimal("fee.base_percent", raw.Fee.BasePercent)
	if err != nil {
		return Rules{}, err
	}
	perBailout, err := parseDecimal("fee.percent_per_bailout", raw.Fee.PercentPerBailout)
	if err != nil {
		return Rules{}, err
	}

	rules := Rules{
		Payouts: roulette.PayoutTable{
			Straight:  raw.Payouts.Straight,
			Dozen:     raw.Payouts.Dozen,
			Half:      raw.Payouts.Half,
			Parity:    raw.Payouts.Parity,
			Color:     raw.Payouts.Color,
			ZeroBonus: zeroBonus,
		},
		StartingBalance: raw.StartingBalance,
		BailoutAmount:   raw.BailoutAmount,
		BanDuration:     banDuration,
		Fee: FeePolicy{
			CapAfterBailouts:  raw.Fee.CapAfterBailouts,
			CappedRate:        cappedRate,
			BasePercent:       basePercent,
			PercentPerBailout: perBailout,
		},
	}
	if err := rules.validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func (r Rules) validate() error {
	p := r.Payouts
	if p.Straight <= 0 || p.Dozen <= 0 || p.Half <= 0 || p.Parity <= 0 || p.Color <= 0 {
		return fmt.Errorf("invalid rules: payout multipliers must be positive")
	}
	if p.ZeroBonus.IsNegative() {
		return fmt.Errorf("invalid rules: zero_bonus must not be negative")
	}
	if r.StartingBalance <= 0 || r.BailoutAmount <= 0 {
		return fmt.Errorf("invalid rules: starting_balance and bailout_amount must be positive")
	}
	if r.BanDuration < 0 {
		return fmt.Errorf("invalid rules: ban_duration must not be negative")
	}
	if r.Fee.CappedRate.IsNegative() || r.Fee.CappedRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("invalid rules: fee.capped_rate must be within [0, 1]")
	}
	return nil
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
