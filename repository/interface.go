package repository

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by Load when no snapshot has been saved yet
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore defines the contract for persisting the quoting session as a
// single keyed blob. Implementations must treat the blob as opaque.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
