package tally

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// Balance returns the participant's net amount owed: positive means they owe
// money to the group, negative means the group owes them.
//
// balance = Σ share of each shared task − Σ cost of each paid task − Σ payments
//
// Shares divide each task's cost by its live participant count, so a later
// association changes every already-participating member's share. The sum is
// computed exactly and rounded to the nearest minor unit once.
func (l *Ledger) Balance(name string) (Money, error) {
	p, ok := l.participants[name]
	if !ok {
		return Money{}, fmt.Errorf("%w: %q has not yet been added", ErrUnknownParticipant, name)
	}
	if p.balance != nil {
		return *p.balance, nil
	}

	sum := decimal.Zero
	for task := range p.tasks {
		t := l.tasks[task]
		sum = sum.Add(t.cost.Share(len(t.participants)))
	}
	for task := range p.paid {
		sum = sum.Sub(decimal.New(l.tasks[task].cost.cents, 0))
	}
	for _, payment := range p.payments {
		sum = sum.Sub(decimal.New(payment.cents, 0))
	}

	b := Money{cents: sum.Round(0).IntPart()}
	p.balance = &b
	return b, nil
}

// Balances computes every participant's balance in name order. It is a pure
// query: calling it twice without an intervening mutation yields identical
// results.
func (l *Ledger) Balances() iter.Seq2[string, Money] {
	return func(yield func(string, Money) bool) {
		for p := range l.AllParticipants() {
			b, err := l.Balance(p.name)
			if err != nil {
				return
			}
			if !yield(p.name, b) {
				return
			}
		}
	}
}
