package table

import (
	"errors"
	"slices"
)

// Unbounded as capacity lets a Table grow without limit.
const Unbounded = 0

// ErrCapacityExceeded is returned by Add when the table is full.
var ErrCapacityExceeded = errors.New("table capacity exceeded")

// Table holds records of type T in insertion order.
type Table[T any] struct {
	rows     []T
	capacity int
}

// ReloadResult describes what Reload did with its input lines.
type ReloadResult struct {
	Loaded    int
	Skipped   int
	Truncated bool  // capacity was reached before the input was exhausted
	FirstErr  error // first decode error, nil if no line was skipped
}

// New creates an empty Table. A capacity <= 0 means Unbounded.
func New[T any](capacity int) *Table[T] {
	if capacity < 0 {
		capacity = Unbounded
	}

	return &Table[T]{capacity: capacity}
}

// Len returns the number of records.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// Cap returns the configured capacity, Unbounded if there is none.
func (t *Table[T]) Cap() int {
	return t.capacity
}

// Full reports whether another Add would fail.
func (t *Table[T]) Full() bool {
	return t.capacity != Unbounded && len(t.rows) >= t.capacity
}

// Add appends a record. A full table is left unchanged and ErrCapacityExceeded is returned.
func (t *Table[T]) Add(record T) error {
	if t.Full() {
		return ErrCapacityExceeded
	}

	t.rows = append(t.rows, record)

	return nil
}

// At returns the record at index i. It panics if i is out of range.
func (t *Table[T]) At(i int) T {
	return t.rows[i]
}

// Set replaces the record at index i. It panics if i is out of range.
func (t *Table[T]) Set(i int, record T) {
	t.rows[i] = record
}

// All returns a copy of all records in table order.
func (t *Table[T]) All() []T {
	return slices.Clone(t.rows)
}

// FindFirst scans in table order and returns the index of the first record for which match is true.
func (t *Table[T]) FindFirst(match func(T) bool) (int, bool) {
	for i, row := range t.rows {
		if match(row) {
			return i, true
		}
	}

	return -1, false
}

// FindAll returns all records for which match is true, in table order.
func (t *Table[T]) FindAll(match func(T) bool) []T {
	var found []T

	for _, row := range t.rows {
		if match(row) {
			found = append(found, row)
		}
	}

	return found
}

// SortStable sorts the records in place, keeping the relative order of equal records.
func (t *Table[T]) SortStable(cmp func(a, b T) int) {
	slices.SortStableFunc(t.rows, cmp)
}

// Reset removes all records.
func (t *Table[T]) Reset() {
	t.rows = nil
}

// Reload replaces the content of the table with the records decoded from lines.
// Lines that fail to decode are skipped. Loading stops silently once the table is full.
func (t *Table[T]) Reload(lines []string, decode func(string) (T, error)) ReloadResult {
	var result ReloadResult

	t.Reset()

	for _, line := range lines {
		if t.Full() {
			result.Truncated = true
			break
		}

		record, err := decode(line)
		if err != nil {
			if result.FirstErr == nil {
				result.FirstErr = err
			}
			result.Skipped++

			continue
		}

		t.rows = append(t.rows, record)
		result.Loaded++
	}

	return result
}
