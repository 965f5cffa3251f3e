package tally

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against the ledger's snapshot
// document, e.g. "$.tasks.Dinner.cost" or "$.participants.Alice.tasks".
func (l *Ledger) Query(path string) (any, error) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, l); err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		return nil, fmt.Errorf("could not build snapshot document: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid query %q: %v", ErrBadCommand, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		jval = jlist[0]
	}
	return jval, nil
}
