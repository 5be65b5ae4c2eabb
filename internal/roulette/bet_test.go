package roulette

import (
	"errors"
	"testing"

	"cli-roulette/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    Kind
		want    Bet
		wantErr bool
	}{
		{"zero", "0", KindNumber, Straight{Number: 0}, false},
		{"max number", "36", KindNumber, Straight{Number: 36}, false},
		{"padded number", " 17 ", KindNumber, Straight{Number: 17}, false},
		{"number too high", "37", KindNumber, nil, true},
		{"negative number", "-1", KindNumber, nil, true},
		{"not a number", "red", KindNumber, nil, true},
		{"red", "red", KindColor, ColorBet{Color: domain.Red}, false},
		{"black", "black", KindColor, ColorBet{Color: domain.Black}, false},
		{"green is not offered", "green", KindColor, nil, true},
		{"even", "even", KindParity, ParityBet{Parity: Even}, false},
		{"odd", "odd", KindParity, ParityBet{Parity: Odd}, false},
		{"bad parity", "both", KindParity, nil, true},
		{"first dozen", "1-12", KindDozen, DozenBet{Dozen: 1}, false},
		{"third dozen", "25-36", KindDozen, DozenBet{Dozen: 3}, false},
		{"bad dozen", "1-18", KindDozen, nil, true},
		{"low", "1-18", KindHalf, HalfBet{Half: Low}, false},
		{"high", "19-36", KindHalf, HalfBet{Half: High}, false},
		{"unknown kind", "1", Kind("corner"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw, tt.kind)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q, %s) error = %v, wantErr %v", tt.raw, tt.kind, err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("error %v is not a ValidationError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Validate(%q, %s) = %#v, want %#v", tt.raw, tt.kind, got, tt.want)
			}
		})
	}
}

func TestChoicesValidate(t *testing.T) {
	for _, kind := range Kinds {
		for _, choice := range Choices(kind) {
			bet, err := Validate(choice, kind)
			if err != nil {
				t.Errorf("Validate(%q, %s) error = %v", choice, kind, err)
				continue
			}
			if bet.Kind() != kind {
				t.Errorf("Validate(%q, %s).Kind() = %s", choice, kind, bet.Kind())
			}
			if bet.String() != choice {
				t.Errorf("Validate(%q, %s).String() = %q", choice, kind, bet.String())
			}
		}
	}
	if Choices(KindNumber) != nil {
		t.Error("number bets should have no closed choices")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("split"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestAmountParser(t *testing.T) {
	parse := AmountParser(50)
	tests := []struct {
		raw     string
		want    int64
		wantErr string
	}{
		{"10", 10, ""},
		{"50", 50, ""},
		{"51", 0, "You don't have enough money (50$) to gamble. Try again!"},
		{"0", 0, "Please enter a valid positive number."},
		{"-5", 0, "Please enter a valid positive number."},
		{"ten", 0, "Please enter a valid positive number."},
	}
	for _, tt := range tests {
		got, err := parse(tt.raw)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("parse(%q) error = %v, want %q", tt.raw, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parse(%q) = %d, %v, want %d", tt.raw, got, err, tt.want)
		}
	}
}

func TestDozenBounds(t *testing.T) {
	tests := []struct {
		d      Dozen
		lo, hi int
	}{
		{1, 1, 12},
		{2, 13, 24},
		{3, 25, 36},
	}
	for _, tt := range tests {
		lo, hi := tt.d.Bounds()
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("Dozen(%d).Bounds() = %d..%d, want %d..%d", tt.d, lo, hi, tt.lo, tt.hi)
		}
	}
}
