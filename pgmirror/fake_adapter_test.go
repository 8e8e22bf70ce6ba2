package pgmirror_test

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/flatfile-library-go/pgmirror/internal/adapters"
)

var errFakeDB = errors.New("fake db error")

type fakeAdapter struct {
	queries      []string
	execs        []string
	rows         [][]string
	rowsErr      error
	queryErr     error
	execErr      error
	rowsAffected int64
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{rowsAffected: 1}
}

func (f *fakeAdapter) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.queries = append(f.queries, query)

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return &fakeRows{rows: f.rows, err: f.rowsErr, index: -1}, nil
}

func (f *fakeAdapter) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.execs = append(f.execs, query)

	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult{rowsAffected: f.rowsAffected}, nil
}

type fakeRows struct {
	rows   [][]string
	err    error
	index  int
	closed bool
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.index]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}

	for i, d := range dest {
		target, ok := d.(*string)
		if !ok {
			return errors.New("unsupported scan target")
		}
		*target = row[i]
	}

	return nil
}

func (r *fakeRows) Err() error {
	return r.err
}

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}
