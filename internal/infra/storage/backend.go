// Package storage holds the key-value backends behind the gallery store.
// Every key carries a revision so writers can detect that someone else
// wrote in between their read and their write.
package storage

import (
	"context"
	"errors"
)

// AnyRevision makes Put unconditional.
const AnyRevision int64 = -1

var (
	ErrConflict    = errors.New("storage: revision conflict")
	ErrUnavailable = errors.New("storage: backend unavailable")
)

// Record is the stored value of one key. An absent key has Revision 0 and a nil Value.
type Record struct {
	Value    []byte
	Revision int64
}

func (r Record) Exists() bool {
	return r.Revision > 0
}

type Backend interface {
	Get(ctx context.Context, key string) (Record, error)
	// Put stores value if the key's current revision equals expected
	// (0 meaning "absent"), or unconditionally with AnyRevision. It returns
	// the new revision.
	Put(ctx context.Context, key string, value []byte, expected int64) (int64, error)
}
