// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/driverdoc

package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// OutcomeSuccess classifies an accepted registration.
const OutcomeSuccess = "success"

// Registrar registers one identifier.
type Registrar interface {
	Register(ctx context.Context, id string, product Product) error
}

// Outcome classifies registration result. Rejected records report the server
// message; other failures report error text.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}

	return err.Error()
}

// Process registers every identifier in order, writes one progress line per
// identifier and returns outcome tally. Failed registrations are reported and
// skipped; only context cancellation stops processing early.
func Process(ctx context.Context, registrar Registrar, ids []string, product Product, out io.Writer) (*Tally, error) {
	tally := NewTally()
	for index, id := range ids {
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		outcome := Outcome(registrar.Register(ctx, id, product))
		tally.Add(outcome)

		if _, err := fmt.Fprintf(out, "%s%% %s - %s\n", formatProgress(index, len(ids)), id, outcome); err != nil {
			return tally, fmt.Errorf("write progress: %w", err)
		}
	}

	return tally, nil
}

// formatProgress renders share of processed identifiers before current one,
// for example "05.0" or "42.5".
func formatProgress(index, total int) string {
	if total <= 0 {
		return "00.0"
	}

	return fmt.Sprintf("%04.1f", 100*float64(index)/float64(total))
}

// TallyEntry is one outcome with its occurrence count.
type TallyEntry struct {
	Outcome string
	Count   int
}

// Tally counts outcomes keeping first-seen order.
type Tally struct {
	order  []string
	counts map[string]int
}

// NewTally returns empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add counts one outcome.
func (t *Tally) Add(outcome string) {
	if _, ok := t.counts[outcome]; !ok {
		t.order = append(t.order, outcome)
	}

	t.counts[outcome]++
}

// Count returns number of occurrences of outcome.
func (t *Tally) Count(outcome string) int {
	return t.counts[outcome]
}

// Entries returns outcomes with counts in first-seen order.
func (t *Tally) Entries() []TallyEntry {
	entries := make([]TallyEntry, 0, len(t.order))
	for _, outcome := range t.order {
		entries = append(entries, TallyEntry{Outcome: outcome, Count: t.counts[outcome]})
	}

	return entries
}

// WriteTo writes statistics block.
func (t *Tally) WriteTo(w io.Writer) (int64, error) {
	var written int64

	n, err := fmt.Fprint(w, "\nStatistics:\n\n")
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, entry := range t.Entries() {
		n, err := fmt.Fprintf(w, "%s: %d\n", entry.Outcome, entry.Count)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}
