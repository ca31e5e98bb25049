// Package store wraps a bbolt database holding the transaction and goal
// collections. Records are stored as JSON documents keyed by a per-bucket
// sequence id. All mutations run inside a single bbolt write transaction, so
// read-modify-write sequences cannot interleave between requests.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// Bucket names.
const (
	BucketTransactions = "transactions"
	BucketGoals        = "goals"
)

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// New creates a new Store instance and initializes buckets.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketTransactions, BucketGoals} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// nextID generates the next record id within an open write transaction.
func nextID(b *bolt.Bucket) (int64, error) {
	seq, err := b.NextSequence()
	if err != nil {
		return 0, err
	}
	return int64(seq), nil
}

// putRecord marshals value and stores it under key in bucket b.
func putRecord(b *bolt.Bucket, key int64, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return b.Put(itob(key), data)
}

// getRecord unmarshals the record under key into value, or ErrNotFound.
func getRecord(b *bolt.Bucket, key int64, value interface{}) error {
	data := b.Get(itob(key))
	if data == nil {
		return ErrNotFound
	}
	return json.Unmarshal(data, value)
}

// deleteRecord removes the record under key, or returns ErrNotFound when the
// key is absent so callers can surface a 404 without a prior read.
func deleteRecord(b *bolt.Bucket, key int64) error {
	if b.Get(itob(key)) == nil {
		return ErrNotFound
	}
	return b.Delete(itob(key))
}

// forEachRecord walks bucket b, passing each raw JSON value to fn.
func forEachRecord(b *bolt.Bucket, fn func(data []byte) error) error {
	return b.ForEach(func(k, v []byte) error {
		return fn(v)
	})
}

// itob converts an int64 to a byte slice for use as a bbolt key.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
