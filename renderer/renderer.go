// Package renderer formats ledger state as markdown reports for the terminal.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/tally"
)

// Balances renders every participant's name and net balance as a markdown
// table. A positive balance means the participant owes money to the group.
func Balances(l *tally.Ledger) string {
	var b strings.Builder
	b.WriteString("# Balances\n\n")
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Participant | Balance |")
		fmt.Fprintln(w, "|---|---:|")
		found := false
		for name, balance := range l.Balances() {
			fmt.Fprintf(w, "| %s | %s |\n", name, balance)
			found = true
		}
		return found
	})
	return b.String()
}

// Participant renders one participant's full detail: balance, shared tasks
// with their current per-share cost, paid tasks, and direct payments.
func Participant(l *tally.Ledger, name string) (string, error) {
	p := l.Participant(name)
	if p == nil {
		return "", fmt.Errorf("participant %q has not yet been added", name)
	}
	balance, err := l.Balance(name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	switch {
	case balance.IsPositive():
		fmt.Fprintf(&b, "%s owes **%s**\n\n", name, balance.Display())
	case balance.IsNegative():
		fmt.Fprintf(&b, "%s is owed **%s**\n\n", name, balance.Neg().Display())
	default:
		fmt.Fprintf(&b, "%s is settled up\n\n", name)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "## Shared tasks")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Task | Cost | Share |")
		fmt.Fprintln(w, "|---|---:|---:|")
		found := false
		for _, task := range p.Tasks() {
			t := l.Task(task)
			fmt.Fprintf(w, "| %s | %s | %s |\n", task, t.Cost(), t.Share())
			found = true
		}
		fmt.Fprintln(w)
		return found
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "## Paid tasks")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Task | Cost |")
		fmt.Fprintln(w, "|---|---:|")
		found := false
		for _, task := range p.PaidTasks() {
			fmt.Fprintf(w, "| %s | %s |\n", task, l.Task(task).Cost())
			found = true
		}
		fmt.Fprintln(w)
		return found
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "## Payments")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Amount |")
		fmt.Fprintln(w, "|---:|")
		found := false
		for _, payment := range p.Payments() {
			fmt.Fprintf(w, "| %s |\n", payment.SignedString())
			found = true
		}
		fmt.Fprintln(w)
		return found
	})

	return b.String(), nil
}

// Task renders one task's detail: owner, cost, current share and the
// participants sharing it.
func Task(l *tally.Ledger, name string) (string, error) {
	t := l.Task(name)
	if t == nil {
		return "", fmt.Errorf("task %q has not yet been added", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "- Owner: %s\n", t.Owner())
	fmt.Fprintf(&b, "- Cost: %s\n", t.Cost().Display())
	fmt.Fprintf(&b, "- Share: %s each\n", t.Share().Display())
	fmt.Fprintf(&b, "- Participants: %s\n", strings.Join(t.Participants(), ", "))
	return b.String(), nil
}

// Participants renders the full detail for every participant in name order.
func Participants(l *tally.Ledger) (string, error) {
	var b strings.Builder
	for p := range l.AllParticipants() {
		md, err := Participant(l, p.Name())
		if err != nil {
			return "", err
		}
		b.WriteString(md)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Tasks renders every task as one markdown table.
func Tasks(l *tally.Ledger) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Task | Owner | Cost | Share | Participants |")
		fmt.Fprintln(w, "|---|---|---:|---:|---|")
		found := false
		for t := range l.AllTasks() {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				t.Name(), t.Owner(), t.Cost(), t.Share(), strings.Join(t.Participants(), ", "))
			found = true
		}
		return found
	})
	return b.String()
}
