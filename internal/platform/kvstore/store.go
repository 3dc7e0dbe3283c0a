// Package kvstore provides the flat string-keyed collection store backing the
// clinic's three top-level collections (doctors, patients, receipts). Every
// value is an entire JSON-serialized collection; writes always replace the
// whole value. Backends: a file-per-key store for single-node deployments, a
// Postgres-backed store for shared deployments, and an in-memory store for
// tests.
package kvstore

import (
	"context"
	"errors"
)

// Well-known collection keys.
const (
	KeyDoctors  = "doctors"
	KeyPatients = "patients"
	KeyReceipts = "receipts"
)

var (
	// ErrKeyNotFound indicates the key has never been written. Callers load
	// an absent collection as empty; this is distinct from a corrupt value.
	ErrKeyNotFound = errors.New("kvstore: key not found")
)

// Store is the collection store contract. Get and Put operate on single keys;
// Update runs fn inside a critical section in which any number of keys may be
// read and staged for writing. All writes staged by fn become visible
// atomically when fn returns nil, and none of them when it returns an error.
//
// All mutations to a Store must go through a single Store instance per
// backing location: the store serializes writers, callers never coordinate
// among themselves.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close()
}

// Tx is the view handed to an Update callback. Get observes writes staged
// earlier in the same transaction.
type Tx interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}
