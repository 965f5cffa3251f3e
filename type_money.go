package tally

import (
	"fmt"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in minor currency units (cents).
//
// Amounts are parsed from decimal text and stored as integers to avoid
// floating accumulation error in storage; only the balance calculation uses
// fractional arithmetic, and it rounds back to a minor unit at the end.
type Money struct {
	cents int64
}

// Cents creates a Money from a raw minor-unit value.
func Cents(v int64) Money { return Money{cents: v} }

// ParseAmount parses a non-negative decimal string (e.g. "30.00") into a
// Money, rounding to the nearest minor unit.
func ParseAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: must input a valid decimal number, got %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: must be non-negative, got %q", ErrInvalidAmount, s)
	}
	return Money{cents: d.Shift(2).Round(0).IntPart()}, nil
}

// Cents returns the raw minor-unit value.
func (m Money) Cents() int64 { return m.cents }

// Decimal returns the amount in major units as an exact decimal.
func (m Money) Decimal() decimal.Decimal { return decimal.New(m.cents, -2) }

// String returns the major-unit decimal representation, e.g. "15.00".
func (m Money) String() string { return m.Decimal().StringFixed(2) }

// Display returns the amount formatted with a currency symbol for reports.
// The ledger is single-currency; the symbol is presentation only.
func (m Money) Display() string {
	return money.New(m.cents, money.EUR).Display()
}

// SignedString returns the string representation with an explicit sign.
// Zero is represented as "-".
func (m Money) SignedString() string {
	if m.cents == 0 {
		return "-"
	}
	if m.cents > 0 {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) IsZero() bool     { return m.cents == 0 }
func (m Money) IsNegative() bool { return m.cents < 0 }
func (m Money) IsPositive() bool { return m.cents > 0 }
func (m Money) Equal(n Money) bool { return m.cents == n.cents }

// binary operators.
func (m Money) Add(n Money) Money { return Money{cents: m.cents + n.cents} }
func (m Money) Sub(n Money) Money { return Money{cents: m.cents - n.cents} }
func (m Money) Neg() Money        { return Money{cents: -m.cents} }

// Share returns this amount divided among n parties, as an exact decimal in
// minor units. The remainder is not distributed; callers sum shares and round
// once at the end.
func (m Money) Share(n int) decimal.Decimal {
	return decimal.New(m.cents, 0).Div(decimal.NewFromInt(int64(n)))
}

// MarshalJSON encodes the amount as a bare integer of minor units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", m.cents)), nil
}

// UnmarshalJSON decodes a bare integer of minor units.
func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", string(b), err)
	}
	m.cents = v
	return nil
}
