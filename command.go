package tally

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Verb identifies a command in the ledger's command language.
type Verb string

const (
	VerbAdd     Verb = "add"
	VerbPart    Verb = "part"
	VerbPay     Verb = "pay"
	VerbPayment Verb = "payment"
	VerbPrint   Verb = "print"
	VerbSave    Verb = "save"
	VerbLoad    Verb = "load"
	VerbRename  Verb = "rename"
	VerbRemove  Verb = "remove"
	VerbQuery   Verb = "query"
)

// Command is one parsed, pre-validated command. The concrete types form a
// closed set; callers dispatch with a type switch.
type Command interface {
	What() Verb
}

// Add creates one participant per name.
type Add struct{ Names []string }

// Part associates participants with a task's cost sharing. The reserved
// token "all" fans out over every task or every participant.
type Part struct {
	Task  string
	Names []string
}

// Pay records that a participant fronted the money for a task.
type Pay struct {
	Payer  string
	Task   string
	Amount Money
}

// Payment records a direct transfer between two participants.
type Payment struct {
	Payer  string
	Payee  string
	Amount Money
}

// Print is the read-only balance and detail report.
type Print struct {
	All   bool // -a: full detail for every participant
	Tasks bool // -t: detail for every task
	Names []string
}

// Save persists the ledger snapshot; an empty path targets the console.
type Save struct{ Path string }

// Load replaces the ledger with a persisted snapshot.
type Load struct{ Path string }

// Rename gives a participant or task a new name.
type Rename struct{ Old, New string }

// Remove deletes a participant or task; with a Task set it only detaches the
// participant from that task.
type Remove struct {
	Name string
	Task string
}

// Query evaluates a JSONPath expression against the snapshot document.
type Query struct{ Path string }

func (Add) What() Verb     { return VerbAdd }
func (Part) What() Verb    { return VerbPart }
func (Pay) What() Verb     { return VerbPay }
func (Payment) What() Verb { return VerbPayment }
func (Print) What() Verb   { return VerbPrint }
func (Save) What() Verb    { return VerbSave }
func (Load) What() Verb    { return VerbLoad }
func (Rename) What() Verb  { return VerbRename }
func (Remove) What() Verb  { return VerbRemove }
func (Query) What() Verb   { return VerbQuery }

// ParseCommand tokenizes one command line and returns the matching command
// value with all required arguments validated. It performs no mutation:
// a malformed command is rejected before anything is applied.
func ParseCommand(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrBadCommand)
	}
	verb, args := tokens[0], tokens[1:]

	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%w: %s: not enough arguments", ErrBadCommand, verb)
		}
		return nil
	}

	switch Verb(verb) {
	case VerbAdd:
		if err := need(1); err != nil {
			return nil, err
		}
		return Add{Names: args}, nil
	case VerbPart:
		if err := need(2); err != nil {
			return nil, err
		}
		return Part{Task: args[0], Names: args[1:]}, nil
	case VerbPay:
		if err := need(3); err != nil {
			return nil, err
		}
		amount, err := ParseAmount(args[2])
		if err != nil {
			return nil, err
		}
		return Pay{Payer: args[0], Task: args[1], Amount: amount}, nil
	case VerbPayment:
		if err := need(3); err != nil {
			return nil, err
		}
		amount, err := ParseAmount(args[2])
		if err != nil {
			return nil, err
		}
		return Payment{Payer: args[0], Payee: args[1], Amount: amount}, nil
	case VerbPrint:
		p := Print{}
		switch {
		case len(args) == 0:
		case args[0] == "-a":
			p.All = true
		case args[0] == "-t":
			p.Tasks = true
		default:
			p.Names = args
		}
		return p, nil
	case VerbSave:
		s := Save{}
		if len(args) > 0 {
			s.Path = args[0]
		}
		return s, nil
	case VerbLoad:
		if err := need(1); err != nil {
			return nil, err
		}
		return Load{Path: args[0]}, nil
	case VerbRename:
		if err := need(2); err != nil {
			return nil, err
		}
		return Rename{Old: args[0], New: args[1]}, nil
	case VerbRemove:
		if err := need(1); err != nil {
			return nil, err
		}
		r := Remove{Name: args[0]}
		if len(args) > 1 {
			r.Task = args[1]
		}
		return r, nil
	case VerbQuery:
		if err := need(1); err != nil {
			return nil, err
		}
		// JSONPath expressions may contain spaces in filters.
		return Query{Path: strings.Join(args, " ")}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
	}
}

// Apply executes a mutation command on the ledger. Bulk commands apply each
// valid item independently and aggregate the failures into one joined error,
// without rolling back the items already applied.
//
// Read-only and boundary commands (print, save, load, query) are dispatched
// by the caller, which owns the report rendering and the files.
func (l *Ledger) Apply(c Command) error {
	switch v := c.(type) {
	case Add:
		var errs error
		for _, name := range v.Names {
			errs = errors.Join(errs, l.AddParticipant(name))
		}
		return errs
	case Part:
		tasks := []string{v.Task}
		if v.Task == "all" {
			tasks = tasks[:0]
			for t := range l.AllTasks() {
				tasks = append(tasks, t.Name())
			}
		}
		names := v.Names
		if slices.Contains(names, "all") {
			// "all" expands to every existing participant; names listed
			// alongside it are kept so new participants are still created.
			names = names[:0:0]
			for p := range l.AllParticipants() {
				names = append(names, p.Name())
			}
			for _, name := range v.Names {
				if name != "all" && !slices.Contains(names, name) {
					names = append(names, name)
				}
			}
		}
		var errs error
		for _, task := range tasks {
			errs = errors.Join(errs, l.Associate(task, names...))
		}
		return errs
	case Pay:
		return l.EnsureTask(v.Task, v.Payer, v.Amount)
	case Payment:
		return l.RecordTransfer(v.Payer, v.Payee, v.Amount)
	case Rename:
		return l.Rename(v.Old, v.New)
	case Remove:
		if v.Task != "" {
			return l.Detach(v.Name, v.Task)
		}
		return l.Remove(v.Name)
	default:
		return fmt.Errorf("%w: %s does not mutate the ledger", ErrBadCommand, c.What())
	}
}
