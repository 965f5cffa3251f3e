package tally

import (
	"bytes"
	"errors"
	"slices"
	"testing"
)

func TestAddParticipant(t *testing.T) {
	l := NewLedger()
	if err := l.AddParticipant("Alice"); err != nil {
		t.Fatalf("AddParticipant(Alice) returned an unexpected error: %v", err)
	}
	if err := l.AddParticipant("Alice"); !errors.Is(err, ErrNameConflict) {
		t.Errorf("adding Alice twice: error = %v, want %v", err, ErrNameConflict)
	}
	if err := l.AddParticipant("all"); !errors.Is(err, ErrNameConflict) {
		t.Errorf("adding the reserved name: error = %v, want %v", err, ErrNameConflict)
	}
	if err := l.EnsureTask("Dinner", "Alice", Cents(3000)); err != nil {
		t.Fatalf("EnsureTask returned an unexpected error: %v", err)
	}
	if err := l.AddParticipant("Dinner"); !errors.Is(err, ErrNameConflict) {
		t.Errorf("participant shadowing a task name: error = %v, want %v", err, ErrNameConflict)
	}
}

func TestEnsureTask(t *testing.T) {
	l := NewLedger()

	// The task's owner is created on the fly and shares the cost.
	if err := l.EnsureTask("Dinner", "Alice", Cents(3000)); err != nil {
		t.Fatalf("EnsureTask returned an unexpected error: %v", err)
	}
	task := l.Task("Dinner")
	if task == nil {
		t.Fatal("Task(Dinner) = nil after EnsureTask")
	}
	if got := task.Owner(); got != "Alice" {
		t.Errorf("Owner() = %q, want Alice", got)
	}
	if got := task.Cost(); got.Cents() != 3000 {
		t.Errorf("Cost() = %s, want 30.00", got)
	}
	alice := l.Participant("Alice")
	if alice == nil {
		t.Fatal("paying for a task did not create the payer")
	}
	if got := alice.PaidTasks(); !slices.Equal(got, []string{"Dinner"}) {
		t.Errorf("PaidTasks() = %v, want [Dinner]", got)
	}
	if got := alice.Tasks(); !slices.Equal(got, []string{"Dinner"}) {
		t.Errorf("Tasks() = %v, want [Dinner]", got)
	}

	// Paying again replaces the cost.
	if err := l.EnsureTask("Dinner", "Alice", Cents(4500)); err != nil {
		t.Fatalf("re-pay returned an unexpected error: %v", err)
	}
	if got := l.Task("Dinner").Cost(); got.Cents() != 4500 {
		t.Errorf("Cost() after re-pay = %s, want 45.00", got)
	}

	// Paying by someone else migrates ownership.
	if err := l.EnsureTask("Dinner", "Bob", Cents(4500)); err != nil {
		t.Fatalf("owner migration returned an unexpected error: %v", err)
	}
	if got := l.Task("Dinner").Owner(); got != "Bob" {
		t.Errorf("Owner() after migration = %q, want Bob", got)
	}
	if got := l.Participant("Alice").PaidTasks(); len(got) != 0 {
		t.Errorf("old owner still pays for %v", got)
	}
	if got := l.Participant("Alice").Tasks(); len(got) != 0 {
		t.Errorf("old owner still shares %v", got)
	}

	if err := l.EnsureTask("Broken", "Bob", Cents(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative cost: error = %v, want %v", err, ErrInvalidAmount)
	}
}

func TestEnsureTaskOwnerNamedAfterTask(t *testing.T) {
	l := NewLedger()

	// One name can never denote both the paying participant and the task.
	if err := l.EnsureTask("Dinner", "Dinner", Cents(3000)); !errors.Is(err, ErrNameConflict) {
		t.Fatalf("EnsureTask(Dinner, Dinner) error = %v, want %v", err, ErrNameConflict)
	}
	if l.Participant("Dinner") != nil {
		t.Error("rejected task still created its owner")
	}
	if l.Task("Dinner") != nil {
		t.Error("rejected task was still created")
	}

	// The same name in owner position against an existing task is rejected too.
	mustPay(t, l, "Taxi", "Alice", 1000)
	if err := l.EnsureTask("Taxi", "Taxi", Cents(1000)); !errors.Is(err, ErrNameConflict) {
		t.Errorf("EnsureTask(Taxi, Taxi) error = %v, want %v", err, ErrNameConflict)
	}

	// The store stays snapshot-clean: what was applied round-trips.
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, l); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeSnapshot(&buf); err != nil {
		t.Errorf("snapshot does not round-trip: %v", err)
	}
}

func TestAssociate(t *testing.T) {
	l := NewLedger()
	mustPay(t, l, "Dinner", "Alice", 3000)

	if err := l.Associate("Dinner", "Bob", "Carol"); err != nil {
		t.Fatalf("Associate returned an unexpected error: %v", err)
	}
	want := []string{"Alice", "Bob", "Carol"}
	if got := l.Task("Dinner").Participants(); !slices.Equal(got, want) {
		t.Errorf("Participants() = %v, want %v", got, want)
	}

	if err := l.Associate("Lunch", "Bob"); !errors.Is(err, ErrUnknownTask) {
		t.Errorf("unknown task: error = %v, want %v", err, ErrUnknownTask)
	}

	// Associating the payer is a silent no-op under the default policy.
	if err := l.Associate("Dinner", "Alice"); err != nil {
		t.Errorf("associating the payer: error = %v, want nil", err)
	}
	l.SetAssociatePolicy(RejectPaid)
	if err := l.Associate("Dinner", "Alice"); !errors.Is(err, ErrNameConflict) {
		t.Errorf("associating the payer under RejectPaid: error = %v, want %v", err, ErrNameConflict)
	}
}

func TestAssociateAggregatesErrors(t *testing.T) {
	l := NewLedger()
	mustPay(t, l, "Dinner", "Alice", 3000)

	// The valid names still take effect even when one is rejected.
	err := l.Associate("Dinner", "Bob", "all", "Carol")
	if !errors.Is(err, ErrNameConflict) {
		t.Fatalf("error = %v, want %v", err, ErrNameConflict)
	}
	want := []string{"Alice", "Bob", "Carol"}
	if got := l.Task("Dinner").Participants(); !slices.Equal(got, want) {
		t.Errorf("Participants() = %v, want %v", got, want)
	}
}

func TestRecordTransfer(t *testing.T) {
	l := NewLedger()
	if err := l.AddParticipant("Alice"); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordTransfer("Alice", "Bob", Cents(500)); !errors.Is(err, ErrUnknownParticipant) {
		t.Errorf("unknown payee: error = %v, want %v", err, ErrUnknownParticipant)
	}
	if err := l.RecordTransfer("Bob", "Alice", Cents(500)); !errors.Is(err, ErrUnknownParticipant) {
		t.Errorf("unknown payer: error = %v, want %v", err, ErrUnknownParticipant)
	}
	if err := l.AddParticipant("Bob"); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordTransfer("Bob", "Alice", Cents(-500)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative transfer: error = %v, want %v", err, ErrInvalidAmount)
	}
	if err := l.RecordTransfer("Bob", "Alice", Cents(500)); err != nil {
		t.Fatalf("RecordTransfer returned an unexpected error: %v", err)
	}
	if got := l.Participant("Bob").Payments(); len(got) != 1 || got[0].Cents() != 500 {
		t.Errorf("payer payments = %v, want [5.00]", got)
	}
	if got := l.Participant("Alice").Payments(); len(got) != 1 || got[0].Cents() != -500 {
		t.Errorf("payee payments = %v, want [-5.00]", got)
	}
}

func TestRename(t *testing.T) {
	l := NewLedger()
	mustPay(t, l, "Dinner", "Alice", 3000)
	if err := l.Associate("Dinner", "Bob"); err != nil {
		t.Fatal(err)
	}

	// Renaming a participant rewrites the task's membership and ownership.
	if err := l.Rename("Alice", "Alicia"); err != nil {
		t.Fatalf("Rename returned an unexpected error: %v", err)
	}
	if l.Participant("Alice") != nil {
		t.Error("old participant name still resolves")
	}
	if got := l.Task("Dinner").Owner(); got != "Alicia" {
		t.Errorf("Owner() = %q, want Alicia", got)
	}
	want := []string{"Alicia", "Bob"}
	if got := l.Task("Dinner").Participants(); !slices.Equal(got, want) {
		t.Errorf("Participants() = %v, want %v", got, want)
	}

	// Renaming a task rewrites each participant's references.
	if err := l.Rename("Dinner", "Supper"); err != nil {
		t.Fatalf("Rename returned an unexpected error: %v", err)
	}
	if l.Task("Dinner") != nil {
		t.Error("old task name still resolves")
	}
	if got := l.Participant("Alicia").PaidTasks(); !slices.Equal(got, []string{"Supper"}) {
		t.Errorf("PaidTasks() = %v, want [Supper]", got)
	}
	if got := l.Participant("Bob").Tasks(); !slices.Equal(got, []string{"Supper"}) {
		t.Errorf("Tasks() = %v, want [Supper]", got)
	}

	if err := l.Rename("Ghost", "Anything"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown name: error = %v, want %v", err, ErrNotFound)
	}
	if err := l.Rename("Bob", "Alicia"); !errors.Is(err, ErrNameConflict) {
		t.Errorf("taken name: error = %v, want %v", err, ErrNameConflict)
	}
	if err := l.Rename("Bob", "all"); !errors.Is(err, ErrNameConflict) {
		t.Errorf("reserved name: error = %v, want %v", err, ErrNameConflict)
	}
}

func TestRemove(t *testing.T) {
	l := NewLedger()
	mustPay(t, l, "Dinner", "Alice", 3000)
	mustPay(t, l, "Taxi", "Bob", 1000)
	if err := l.Associate("Dinner", "Bob"); err != nil {
		t.Fatal(err)
	}
	if err := l.Associate("Taxi", "Alice"); err != nil {
		t.Fatal(err)
	}

	// Removing a task detaches it from every participant.
	if err := l.Remove("Taxi"); err != nil {
		t.Fatalf("Remove(Taxi) returned an unexpected error: %v", err)
	}
	if l.Task("Taxi") != nil {
		t.Error("removed task still resolves")
	}
	if got := l.Participant("Bob").PaidTasks(); len(got) != 0 {
		t.Errorf("Bob still pays for %v", got)
	}
	if got := l.Participant("Alice").Tasks(); !slices.Equal(got, []string{"Dinner"}) {
		t.Errorf("Alice's tasks = %v, want [Dinner]", got)
	}

	// Removing a participant removes the tasks they paid for, cascading to
	// every co-participant.
	if err := l.Remove("Alice"); err != nil {
		t.Fatalf("Remove(Alice) returned an unexpected error: %v", err)
	}
	if l.Participant("Alice") != nil {
		t.Error("removed participant still resolves")
	}
	if l.Task("Dinner") != nil {
		t.Error("task owned by the removed participant still resolves")
	}
	if got := l.Participant("Bob").Tasks(); len(got) != 0 {
		t.Errorf("Bob still shares %v", got)
	}

	if err := l.Remove("Ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown name: error = %v, want %v", err, ErrNotFound)
	}
}

func TestRemoveSharedOnlyParticipant(t *testing.T) {
	l := NewLedger()
	mustPay(t, l, "Dinner", "Alice", 3000)
	if err := l.Associate("Dinner", "Bob"); err != nil {
		t.Fatal(err)
	}
	// Bob never paid for anything, so the task survives him.
	if err := l.RemoveParticipant("Bob"); err != nil {
		t.Fatalf("RemoveParticipant returned an unexpected error: %v", err)
	}
	if l.Task("Dinner") == nil {
		t.Fatal("task removed alongside a mere co-participant")
	}
	if got := l.Task("Dinner").Participants(); !slices.Equal(got, []string{"Alice"}) {
		t.Errorf("Participants() = %v, want [Alice]", got)
	}
}

func TestDetach(t *testing.T) {
	l := NewLedger()
	mustPay(t, l, "Dinner", "Alice", 3000)
	if err := l.Associate("Dinner", "Bob"); err != nil {
		t.Fatal(err)
	}
	if err := l.Detach("Alice", "Dinner"); !errors.Is(err, ErrNameConflict) {
		t.Errorf("detaching the owner: error = %v, want %v", err, ErrNameConflict)
	}
	if err := l.Detach("Bob", "Dinner"); err != nil {
		t.Fatalf("Detach returned an unexpected error: %v", err)
	}
	if got := l.Task("Dinner").Participants(); !slices.Equal(got, []string{"Alice"}) {
		t.Errorf("Participants() = %v, want [Alice]", got)
	}
	if got := l.Participant("Bob").Tasks(); len(got) != 0 {
		t.Errorf("Bob still shares %v", got)
	}
}

func TestTaskShare(t *testing.T) {
	l := NewLedger()
	mustPay(t, l, "Dinner", "Alice", 10000)
	if err := l.Associate("Dinner", "Bob", "Carol"); err != nil {
		t.Fatal(err)
	}
	// 100.00 over three heads, rounded to the nearest cent.
	if got := l.Task("Dinner").Share(); got.Cents() != 3333 {
		t.Errorf("Share() = %s, want 33.33", got)
	}
}

// mustPay is a test helper wrapping EnsureTask.
func mustPay(t *testing.T, l *Ledger, task, owner string, cents int64) {
	t.Helper()
	if err := l.EnsureTask(task, owner, Cents(cents)); err != nil {
		t.Fatalf("EnsureTask(%s, %s) returned an unexpected error: %v", task, owner, err)
	}
}
