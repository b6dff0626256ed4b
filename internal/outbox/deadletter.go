// SPDX-License-Identifier: MIT

package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const deadLetterPrefix = "dl:"

// DeadLetterStore persists exhausted messages in Badger. Entries are
// immutable; they leave the store only through retention expiry (Badger
// TTL) or are retained after an operator replay for audit.
type DeadLetterStore struct {
	db        *badger.DB
	retention time.Duration
}

// OpenDeadLetterStore opens (or creates) the store at path.
func OpenDeadLetterStore(path string, retention time.Duration) (*DeadLetterStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("dead letter store: %w", err)
	}
	return &DeadLetterStore{db: db, retention: retention}, nil
}

// OpenDeadLetterStoreInMemory opens an ephemeral store. Used by tests.
func OpenDeadLetterStoreInMemory(retention time.Duration) (*DeadLetterStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("dead letter store: %w", err)
	}
	return &DeadLetterStore{db: db, retention: retention}, nil
}

func (s *DeadLetterStore) Close() error { return s.db.Close() }

// Add stores entry under its id.
func (s *DeadLetterStore) Add(entry DeadLetterEntry) error {
	buf, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal dead letter: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(deadLetterPrefix+entry.ID), buf)
		if s.retention > 0 {
			e = e.WithTTL(s.retention)
		}
		return txn.SetEntry(e)
	})
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *DeadLetterStore) Get(id string) (DeadLetterEntry, error) {
	var out DeadLetterEntry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(deadLetterPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return DeadLetterEntry{}, ErrNotFound
	}
	if err != nil {
		return DeadLetterEntry{}, err
	}
	return out, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	Recipient string // empty matches all
	Limit     int    // 0 means no limit
}

// List returns matching entries, newest first.
func (s *DeadLetterStore) List(filter ListFilter) ([]DeadLetterEntry, error) {
	var out []DeadLetterEntry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(deadLetterPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var entry DeadLetterEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
			if filter.Recipient != "" && entry.Recipient != filter.Recipient {
				continue
			}
			out = append(out, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DeadLetteredAt.After(out[j].DeadLetteredAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
