package tally

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Reserved tokens that can never name a participant or a task: they have a
// special meaning in the command language ("all" fans out over every entity,
// "-a" is the print-everything flag).
var reservedNames = map[string]struct{}{
	"all": {},
	"-a":  {},
}

// AssociatePolicy decides what happens when a participant who already paid
// for a task is associated with it again.
type AssociatePolicy int

const (
	// SkipPaid silently ignores the association: the payer already shares the
	// task's cost, there is nothing to add.
	SkipPaid AssociatePolicy = iota
	// RejectPaid reports the association as an error instead.
	RejectPaid
)

func (p AssociatePolicy) String() string {
	switch p {
	case SkipPaid:
		return "skip"
	case RejectPaid:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseAssociatePolicy parses a string into an AssociatePolicy.
func ParseAssociatePolicy(s string) (AssociatePolicy, error) {
	switch s {
	case "skip":
		return SkipPaid, nil
	case "reject":
		return RejectPaid, nil
	default:
		return 0, fmt.Errorf("unknown associate policy: %q", s)
	}
}

// Participant is a named party in the ledger who may owe or be owed money.
//
// Relations to tasks are stored by name only: the ledger resolves names to
// records at the point of use, so the participant/task graph stays acyclic
// and serializable.
type Participant struct {
	name     string
	tasks    map[string]struct{} // tasks whose cost this participant shares
	paid     map[string]struct{} // tasks this participant fronted money for
	payments []Money             // direct transfers; positive = paid out
	balance  *Money              // cached net balance, nil when stale
}

// Name returns the participant's unique name.
func (p *Participant) Name() string { return p.name }

// Tasks returns the sorted names of tasks whose cost this participant shares.
func (p *Participant) Tasks() []string { return sortedKeys(p.tasks) }

// PaidTasks returns the sorted names of tasks this participant paid for.
func (p *Participant) PaidTasks() []string { return sortedKeys(p.paid) }

// Payments returns the ordered direct transfer amounts recorded for this
// participant. Positive amounts were paid out, negative amounts received.
func (p *Participant) Payments() []Money { return slices.Clone(p.payments) }

// Task is a shared expense with one paying owner and a set of cost-sharing
// participants. The owner is always one of the participants.
type Task struct {
	name         string
	owner        string
	participants map[string]struct{}
	cost         Money
}

func (t *Task) Name() string  { return t.name }
func (t *Task) Owner() string { return t.owner }
func (t *Task) Cost() Money   { return t.cost }

// Participants returns the sorted names of the parties sharing this task's cost.
func (t *Task) Participants() []string { return sortedKeys(t.participants) }

// Share returns the cost share currently allocated to each participant,
// rounded to the nearest minor unit. Shares always derive from the live
// participant count, so a later association changes every member's share.
func (t *Task) Share() Money {
	return Money{cents: t.cost.Share(len(t.participants)).Round(0).IntPart()}
}

// Ledger is the authoritative store of participants and tasks.
//
// Names are unique across the combined namespace: a name denotes a
// participant or a task, never both.
type Ledger struct {
	participants map[string]*Participant
	tasks        map[string]*Task
	policy       AssociatePolicy
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		participants: make(map[string]*Participant),
		tasks:        make(map[string]*Task),
	}
}

// SetAssociatePolicy selects the behavior of Associate for participants who
// already paid for the task. The default is SkipPaid.
func (l *Ledger) SetAssociatePolicy(p AssociatePolicy) { l.policy = p }

// Participant returns the participant with this name, or nil if unknown.
func (l *Ledger) Participant(name string) *Participant { return l.participants[name] }

// Task returns the task with this name, or nil if unknown.
func (l *Ledger) Task(name string) *Task { return l.tasks[name] }

// AllParticipants iterates over participants in name order.
func (l *Ledger) AllParticipants() iter.Seq[*Participant] {
	return func(yield func(*Participant) bool) {
		names := slices.Collect(maps.Keys(l.participants))
		slices.Sort(names)
		for _, name := range names {
			if !yield(l.participants[name]) {
				return
			}
		}
	}
}

// AllTasks iterates over tasks in name order.
func (l *Ledger) AllTasks() iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		names := slices.Collect(maps.Keys(l.tasks))
		slices.Sort(names)
		for _, name := range names {
			if !yield(l.tasks[name]) {
				return
			}
		}
	}
}

// checkFreeName verifies that a name is usable for a new entity: not empty,
// not reserved, and not already denoting a participant or a task.
func (l *Ledger) checkFreeName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrBadCommand)
	}
	if _, ok := reservedNames[name]; ok {
		return fmt.Errorf("%w: %q is a reserved word", ErrNameConflict, name)
	}
	if _, ok := l.participants[name]; ok {
		return fmt.Errorf("%w: participant %q was already added", ErrNameConflict, name)
	}
	if _, ok := l.tasks[name]; ok {
		return fmt.Errorf("%w: task %q was already added", ErrNameConflict, name)
	}
	return nil
}

// newParticipant creates and registers an empty participant. The name must
// have been checked before.
func (l *Ledger) newParticipant(name string) *Participant {
	p := &Participant{
		name:  name,
		tasks: make(map[string]struct{}),
		paid:  make(map[string]struct{}),
	}
	l.participants[name] = p
	return p
}

// AddParticipant creates a new empty participant.
func (l *Ledger) AddParticipant(name string) error {
	if err := l.checkFreeName(name); err != nil {
		return err
	}
	l.newParticipant(name)
	l.invalidate()
	return nil
}

// ensureParticipant returns the participant with this name, creating it if
// absent. It fails if the name denotes a task or a reserved word.
func (l *Ledger) ensureParticipant(name string) (*Participant, error) {
	if p, ok := l.participants[name]; ok {
		return p, nil
	}
	if err := l.checkFreeName(name); err != nil {
		return nil, err
	}
	return l.newParticipant(name), nil
}

// EnsureTask creates the task if absent, or updates its cost and owner.
//
// The owner participant is created if necessary, the task goes into the
// owner's paid and shared sets, and the owner into the task's participants.
// Re-assigning the owner migrates the paid/participated bookkeeping from the
// old owner to the new one.
func (l *Ledger) EnsureTask(name, owner string, cost Money) error {
	if cost.IsNegative() {
		return fmt.Errorf("%w: task cost must be non-negative, got %s", ErrInvalidAmount, cost)
	}
	t, exists := l.tasks[name]
	if !exists {
		if err := l.checkFreeName(name); err != nil {
			return err
		}
		// ensureParticipant(owner) runs after this check, so an owner reusing
		// the task's own name would slip into the combined namespace.
		if owner == name {
			return fmt.Errorf("%w: %q cannot name both the task and its payer", ErrNameConflict, name)
		}
	}

	p, err := l.ensureParticipant(owner)
	if err != nil {
		return err
	}

	if !exists {
		t = &Task{
			name:         name,
			owner:        owner,
			participants: map[string]struct{}{owner: {}},
			cost:         cost,
		}
		l.tasks[name] = t
	} else {
		t.cost = cost
		if t.owner != owner {
			// Migrate ownership: the old owner no longer pays for, nor
			// shares, this task.
			if old, ok := l.participants[t.owner]; ok {
				delete(old.paid, name)
				delete(old.tasks, name)
			}
			delete(t.participants, t.owner)
			t.owner = owner
			t.participants[owner] = struct{}{}
		}
	}

	p.paid[name] = struct{}{}
	p.tasks[name] = struct{}{}
	t.participants[owner] = struct{}{}
	l.invalidate()
	return nil
}

// Associate adds participants to a task's cost sharing. Unknown participant
// names are created on the fly. Each name is applied independently; errors
// are aggregated and the valid ones still take effect.
func (l *Ledger) Associate(task string, names ...string) error {
	t, ok := l.tasks[task]
	if !ok {
		return fmt.Errorf("%w: task %q has not yet been added", ErrUnknownTask, task)
	}
	var errs error
	for _, name := range names {
		p, err := l.ensureParticipant(name)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if _, paid := p.paid[task]; paid {
			// This participant fronted the money for the task: they already
			// share its cost.
			if l.policy == RejectPaid {
				errs = errors.Join(errs, fmt.Errorf("%w: %q already paid for task %q", ErrNameConflict, name, task))
			}
			continue
		}
		p.tasks[task] = struct{}{}
		t.participants[name] = struct{}{}
		p.balance = nil
	}
	l.invalidate()
	return errs
}

// RecordTransfer records a direct payment from payer to payee, outside of any
// task. Both participants must already exist.
func (l *Ledger) RecordTransfer(payer, payee string, amount Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: payment must be non-negative, got %s", ErrInvalidAmount, amount)
	}
	from, ok := l.participants[payer]
	if !ok {
		return fmt.Errorf("%w: %q has not yet been added", ErrUnknownParticipant, payer)
	}
	to, ok := l.participants[payee]
	if !ok {
		return fmt.Errorf("%w: %q has not yet been added", ErrUnknownParticipant, payee)
	}
	from.payments = append(from.payments, amount)
	to.payments = append(to.payments, amount.Neg())
	l.invalidate()
	return nil
}

// Rename gives a participant or a task a new name, rewriting every
// back-reference in the store.
func (l *Ledger) Rename(old, new string) error {
	if err := l.checkFreeName(new); err != nil {
		return err
	}
	if p, ok := l.participants[old]; ok {
		delete(l.participants, old)
		p.name = new
		l.participants[new] = p
		for task := range p.tasks {
			t := l.tasks[task]
			delete(t.participants, old)
			t.participants[new] = struct{}{}
		}
		for task := range p.paid {
			l.tasks[task].owner = new
		}
		l.invalidate()
		return nil
	}
	if t, ok := l.tasks[old]; ok {
		delete(l.tasks, old)
		t.name = new
		l.tasks[new] = t
		for name := range t.participants {
			p := l.participants[name]
			if _, ok := p.tasks[old]; ok {
				delete(p.tasks, old)
				p.tasks[new] = struct{}{}
			}
			if _, ok := p.paid[old]; ok {
				delete(p.paid, old)
				p.paid[new] = struct{}{}
			}
		}
		l.invalidate()
		return nil
	}
	return fmt.Errorf("%w: %q denotes neither a participant nor a task", ErrNotFound, old)
}

// RemoveParticipant deletes a participant. Tasks they merely shared are left
// intact (minus this participant); tasks they owned are removed entirely,
// cascading the detachment to every co-participant.
func (l *Ledger) RemoveParticipant(name string) error {
	p, ok := l.participants[name]
	if !ok {
		return fmt.Errorf("%w: participant %q has not yet been added", ErrUnknownParticipant, name)
	}
	for task := range p.tasks {
		if _, owned := p.paid[task]; owned {
			continue
		}
		delete(l.tasks[task].participants, name)
	}
	for task := range p.paid {
		if err := l.RemoveTask(task); err != nil {
			return err
		}
	}
	delete(l.participants, name)
	l.invalidate()
	return nil
}

// RemoveTask deletes a task and detaches it from every participant.
func (l *Ledger) RemoveTask(name string) error {
	t, ok := l.tasks[name]
	if !ok {
		return fmt.Errorf("%w: task %q has not yet been added", ErrUnknownTask, name)
	}
	for p := range t.participants {
		if part, ok := l.participants[p]; ok {
			delete(part.tasks, name)
			delete(part.paid, name)
		}
	}
	delete(l.tasks, name)
	l.invalidate()
	return nil
}

// Remove deletes the participant or task with this name, whichever exists.
func (l *Ledger) Remove(name string) error {
	if _, ok := l.participants[name]; ok {
		return l.RemoveParticipant(name)
	}
	if _, ok := l.tasks[name]; ok {
		return l.RemoveTask(name)
	}
	return fmt.Errorf("%w: %q denotes neither a participant nor a task", ErrNotFound, name)
}

// Detach removes a participant from one task's cost sharing without deleting
// either record. Detaching the task's owner is not possible: the owner always
// shares the cost.
func (l *Ledger) Detach(name, task string) error {
	p, ok := l.participants[name]
	if !ok {
		return fmt.Errorf("%w: participant %q has not yet been added", ErrUnknownParticipant, name)
	}
	t, ok := l.tasks[task]
	if !ok {
		return fmt.Errorf("%w: task %q has not yet been added", ErrUnknownTask, task)
	}
	if t.owner == name {
		return fmt.Errorf("%w: %q owns task %q, remove the task instead", ErrNameConflict, name, task)
	}
	delete(p.tasks, task)
	delete(t.participants, name)
	l.invalidate()
	return nil
}

// invalidate drops every cached balance. Task cost and membership changes
// have non-local effects, so invalidation is always conservative.
func (l *Ledger) invalidate() {
	for _, p := range l.participants {
		p.balance = nil
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
