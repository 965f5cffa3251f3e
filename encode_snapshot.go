package tally

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// The live store keeps the participant/task relation as two name-keyed maps.
// The snapshot is the flat transport form of that relation: each task is
// represented once, owning a list of participant names, and each participant
// holds only the names of the tasks they are linked to. No record embeds
// another, so the document round-trips through a tree-shaped format.

type snapshotParticipant struct {
	Tasks     []string `json:"tasks"`
	PaidTasks []string `json:"paidTasks,omitempty"`
	Payments  []Money  `json:"paymentsMade,omitempty"`
}

type snapshotTask struct {
	Owner        string   `json:"owner"`
	Participants []string `json:"participants"`
	Cost         Money    `json:"cost"`
}

type snapshot struct {
	Participants map[string]snapshotParticipant `json:"participants"`
	Tasks        map[string]snapshotTask        `json:"tasks"`
}

// EncodeSnapshot writes the ledger as an indented JSON document with a
// canonical layout: participants before tasks, names in alphabetical order.
func EncodeSnapshot(w io.Writer, l *Ledger) error {
	doc := snapshot{
		Participants: make(map[string]snapshotParticipant, len(l.participants)),
		Tasks:        make(map[string]snapshotTask, len(l.tasks)),
	}
	for p := range l.AllParticipants() {
		doc.Participants[p.name] = snapshotParticipant{
			Tasks:     p.Tasks(),
			PaidTasks: p.PaidTasks(),
			Payments:  p.Payments(),
		}
	}
	for t := range l.AllTasks() {
		doc.Tasks[t.name] = snapshotTask{
			Owner:        t.owner,
			Participants: t.Participants(),
			Cost:         t.cost,
		}
	}

	// The object writer pins the collection order; within each collection
	// encoding/json already sorts map keys.
	var ow jsonObjectWriter
	ow.Append("participants", doc.Participants)
	ow.Append("tasks", doc.Tasks)
	raw, err := ow.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	indented.WriteByte('\n')
	_, err = w.Write(indented.Bytes())
	return err
}

// DecodeSnapshot reads a snapshot document and rebuilds the live ledger,
// re-establishing every invariant. A document that violates one fails with
// ErrCorruptSnapshot and no ledger is returned, so the caller's current
// store is never left partially overwritten.
func DecodeSnapshot(r io.Reader) (*Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	var doc snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	l := NewLedger()

	// First pass: create all records so cross-references can be checked.
	for name, sp := range doc.Participants {
		if err := l.checkFreeName(name); err != nil {
			return nil, fmt.Errorf("%w: participant %q: %v", ErrCorruptSnapshot, name, err)
		}
		p := l.newParticipant(name)
		p.payments = append(p.payments, sp.Payments...)
	}
	for name, st := range doc.Tasks {
		if err := l.checkFreeName(name); err != nil {
			return nil, fmt.Errorf("%w: task %q: %v", ErrCorruptSnapshot, name, err)
		}
		if st.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: task %q has negative cost %s", ErrCorruptSnapshot, name, st.Cost)
		}
		l.tasks[name] = &Task{
			name:         name,
			owner:        st.Owner,
			participants: make(map[string]struct{}, len(st.Participants)),
			cost:         st.Cost,
		}
	}

	// Second pass: re-attach names to records and verify both directions of
	// the relation.
	for name, st := range doc.Tasks {
		t := l.tasks[name]
		for _, pname := range st.Participants {
			p, ok := l.participants[pname]
			if !ok {
				return nil, fmt.Errorf("%w: task %q references unknown participant %q", ErrCorruptSnapshot, name, pname)
			}
			t.participants[pname] = struct{}{}
			p.tasks[name] = struct{}{}
		}
		if _, ok := t.participants[st.Owner]; !ok {
			return nil, fmt.Errorf("%w: task %q owner %q is not among its participants", ErrCorruptSnapshot, name, st.Owner)
		}
	}
	for name, sp := range doc.Participants {
		p := l.participants[name]
		for _, tname := range sp.Tasks {
			t, ok := l.tasks[tname]
			if !ok {
				return nil, fmt.Errorf("%w: participant %q references unknown task %q", ErrCorruptSnapshot, name, tname)
			}
			if _, ok := t.participants[name]; !ok {
				return nil, fmt.Errorf("%w: participant %q claims task %q but the task does not list them", ErrCorruptSnapshot, name, tname)
			}
		}
		for _, tname := range sp.PaidTasks {
			t, ok := l.tasks[tname]
			if !ok {
				return nil, fmt.Errorf("%w: participant %q paid for unknown task %q", ErrCorruptSnapshot, name, tname)
			}
			if t.owner != name {
				return nil, fmt.Errorf("%w: participant %q paid for task %q owned by %q", ErrCorruptSnapshot, name, tname, t.owner)
			}
			p.paid[tname] = struct{}{}
		}
	}

	return l, nil
}

// SaveSnapshot overwrites the file at path with the ledger's snapshot.
func SaveSnapshot(path string, l *Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create snapshot file %q: %w", path, err)
	}
	defer f.Close()
	if err := EncodeSnapshot(f, l); err != nil {
		return fmt.Errorf("could not write snapshot file %q: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads the snapshot file at path and rebuilds the ledger.
func LoadSnapshot(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open snapshot file %q: %w", path, err)
	}
	defer f.Close()
	l, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("could not load snapshot file %q: %w", path, err)
	}
	return l, nil
}
