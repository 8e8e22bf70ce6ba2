package pgmirror

import (
	"github.com/AntonStoeckl/flatfile-library-go/pgmirror/internal/adapters"
)

// NewMirrorWithAdapter builds a Mirror on an arbitrary adapter, for tests only.
func NewMirrorWithAdapter(db adapters.DBAdapter, options ...Option) (Mirror, error) {
	return newMirror(db, options...)
}
