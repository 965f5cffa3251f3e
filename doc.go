// Package tally provides the core engine for an interactive shared-expense
// ledger: a set of participants collectively incur costs ("tasks"), each
// task's cost is split evenly among its participants, and participants can
// settle up with direct payments.
//
// The core functionalities include:
//   - Entity Store: the authoritative name-keyed collections of participants
//     and tasks, with referential integrity enforced on every mutation.
//   - Ledger Operations: the mutation API (add, associate, pay, payment,
//     rename, remove) that keeps the store consistent.
//   - Balance Calculator: a pure pass over the store computing each
//     participant's net position from task shares, fronted costs and direct
//     payments.
//   - Command Parser: a small parser turning whitespace-tokenized command
//     lines into a closed set of command values.
//   - Snapshot Codec: encoding and decoding of the full ledger state to a
//     flat, cycle-free JSON document for save and load.
//
// This package serves as the foundational logic for the `tly` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package tally
