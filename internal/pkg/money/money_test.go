package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPositive(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "keeps cents", in: "12.34", want: "12.34"},
		{name: "rounds half up", in: "10.005", want: "10.01"},
		{name: "zero", in: "0", wantErr: ErrNotPositive},
		{name: "negative", in: "-5", wantErr: ErrNotPositive},
		{name: "rounds to zero", in: "0.004", wantErr: ErrNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Positive(decimal.RequireFromString(tt.in))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Positive() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && Format(got) != tt.want {
				t.Fatalf("Positive() = %s, want %s", Format(got), tt.want)
			}
		})
	}
}

func TestSumAndParse(t *testing.T) {
	if !Sum().IsZero() {
		t.Fatal("Sum() of nothing must be zero")
	}

	a, err := Parse(" 0.10 ")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	b, _ := Parse("0.20")

	if got := Format(Sum(a, b)); got != "0.30" {
		t.Fatalf("Sum() = %s, want 0.30", got)
	}

	if _, err := Parse("abc"); err == nil {
		t.Fatal("Parse() should reject non numeric input")
	}
}
