package storage

import (
	"context"
	"errors"
)

// Well-known record store keys. All application state lives under these
// keys as JSON documents, last writer wins.
const (
	KeyMenuItems = "menuItems"
	KeyCart      = "cart"
	KeySales     = "sales"
	KeyUPIID     = "upiId"
)

// ErrEmptyKey is returned when a value is stored or read under an empty key.
var ErrEmptyKey = errors.New("empty storage key")

// Store is the main interface for the record store: a flat mapping from
// string keys to JSON-serializable documents. There are no transactions and
// no locking across processes; a concurrent writer to the same backing file
// or table wins by being last.
type Store interface {
	// Get decodes the value under key into out. The second return is false
	// when the key has never been written.
	Get(ctx context.Context, key string, out any) (bool, error)
	// Put stores v under key, replacing any previous value.
	Put(ctx context.Context, key string, v any) error
}
