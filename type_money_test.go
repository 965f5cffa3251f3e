package tally

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		in        string
		wantCents int64
		wantErr   error
	}{
		{in: "30.00", wantCents: 3000},
		{in: "15", wantCents: 1500},
		{in: "0", wantCents: 0},
		{in: "0.155", wantCents: 16}, // rounds to the nearest minor unit
		{in: "0.154", wantCents: 15},
		{in: "1234.5", wantCents: 123450},
		{in: "-1", wantErr: ErrInvalidAmount},
		{in: "ten", wantErr: ErrInvalidAmount},
		{in: "", wantErr: ErrInvalidAmount},
		{in: "1.2.3", wantErr: ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseAmount(%q) error = %v, want %v", tc.in, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) returned an unexpected error: %v", tc.in, err)
			}
			if got.Cents() != tc.wantCents {
				t.Errorf("ParseAmount(%q) = %d cents, want %d", tc.in, got.Cents(), tc.wantCents)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	testCases := []struct {
		cents      int64
		want       string
		wantSigned string
	}{
		{cents: 1500, want: "15.00", wantSigned: "+15.00"},
		{cents: -1500, want: "-15.00", wantSigned: "-15.00"},
		{cents: 0, want: "0.00", wantSigned: "-"},
		{cents: 5, want: "0.05", wantSigned: "+0.05"},
	}
	for _, tc := range testCases {
		m := Cents(tc.cents)
		if got := m.String(); got != tc.want {
			t.Errorf("Cents(%d).String() = %q, want %q", tc.cents, got, tc.want)
		}
		if got := m.SignedString(); got != tc.wantSigned {
			t.Errorf("Cents(%d).SignedString() = %q, want %q", tc.cents, got, tc.wantSigned)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a, b := Cents(1000), Cents(300)
	if got := a.Add(b); got.Cents() != 1300 {
		t.Errorf("Add = %d, want 1300", got.Cents())
	}
	if got := a.Sub(b); got.Cents() != 700 {
		t.Errorf("Sub = %d, want 700", got.Cents())
	}
	if got := b.Neg(); got.Cents() != -300 {
		t.Errorf("Neg = %d, want -300", got.Cents())
	}
}
