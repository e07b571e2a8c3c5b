// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Checkpoint records how far an ingestion source has been loaded.
type Checkpoint struct {
	Source    string
	Offset    uint64 // Records of the source already stored
	UpdatedAt time.Time
}

func marshalCheckpoint(c *Checkpoint) []byte {
	updated := uint64(c.UpdatedAt.UnixMicro())
	bs := make([]byte, ord.String.Size(c.Source)+varint.Uint64.Size(c.Offset)+varint.Uint64.Size(updated))
	n := ord.String.Marshal(c.Source, bs)
	n += varint.Uint64.Marshal(c.Offset, bs[n:])
	varint.Uint64.Marshal(updated, bs[n:])
	return bs
}

func unmarshalCheckpoint(bs []byte) (*Checkpoint, error) {
	source, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCheckpoint, err)
	}
	offset, m, err := varint.Uint64.Unmarshal(bs[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCheckpoint, err)
	}
	updated, _, err := varint.Uint64.Unmarshal(bs[n+m:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCheckpoint, err)
	}
	return &Checkpoint{
		Source:    source,
		Offset:    offset,
		UpdatedAt: time.UnixMicro(int64(updated)).UTC(),
	}, nil
}

// CheckpointStore persists ingestion checkpoints in the mirror.
type CheckpointStore struct {
	backend *Backend
}

// NewCheckpointStore creates a new CheckpointStore.
func NewCheckpointStore(backend *Backend) *CheckpointStore {
	return &CheckpointStore{
		backend: backend,
	}
}

// SaveCheckpoint persists a checkpoint for a source.
func (s *CheckpointStore) SaveCheckpoint(ctx context.Context, checkpoint *Checkpoint) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		checkpoint.UpdatedAt = time.Now().UTC()
		if err := tx.Set(makeCheckpointKey(checkpoint.Source), marshalCheckpoint(checkpoint)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadCheckpoint retrieves the checkpoint for a source.
// Returns nil, nil if no checkpoint exists.
func (s *CheckpointStore) LoadCheckpoint(ctx context.Context, source string) (*Checkpoint, error) {
	var checkpoint *Checkpoint
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(source))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			checkpoint, unmarshalErr = unmarshalCheckpoint(val)
			return unmarshalErr
		})
	}, false)

	return checkpoint, err
}

// DeleteCheckpoint removes the checkpoint for a source.
func (s *CheckpointStore) DeleteCheckpoint(ctx context.Context, source string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeCheckpointKey(source)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
