// Package state manages tarsnap-prune's persistent run history using BoltDB.
// All writes are transactional; reads use read-only transactions.
package state

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// Bucket names
var bucketRuns = []byte("runs")

// RunRecord is a single prune invocation: what was asked for and what
// happened to the archive set.
type RunRecord struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	KeepSpec  string    `json:"keep_spec"`
	Deleted   []string  `json:"deleted"`
	Remaining int       `json:"remaining"`
	DryRun    bool      `json:"dry_run"`
}

// DB wraps a BoltDB instance with typed accessor methods.
type DB struct {
	bolt *bbolt.DB
}

// Open opens (or creates) the state database at the given path.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state db %q: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRuns); err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketRuns, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	return &DB{bolt: db}, nil
}

// Close closes the underlying BoltDB file.
func (db *DB) Close() error {
	return db.bolt.Close()
}

// PutRun appends a run record to the history. Keys are time-prefixed so a
// reverse cursor walk yields newest-first order.
func (db *DB) PutRun(rec RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run %q: %w", rec.ID, err)
	}
	key := runKey(rec)
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put(key, data)
	})
}

// ListRuns returns run records newest-first. limit <= 0 means no limit.
func (db *DB) ListRuns(limit int) ([]RunRecord, error) {
	var recs []RunRecord
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		cur := tx.Bucket(bucketRuns).Cursor()
		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			if limit > 0 && len(recs) == limit {
				break
			}
			var rec RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal run %q: %w", k, err)
			}
			recs = append(recs, rec)
		}
		return nil
	})
	return recs, err
}

// runKeyTimeLayout is fixed-width (zero-padded fractional seconds, UTC) so
// keys compare bytewise in timestamp order; RFC3339Nano would drop trailing
// zeros and break the reverse-cursor ordering.
const runKeyTimeLayout = "2006-01-02T15:04:05.000000000"

func runKey(rec RunRecord) []byte {
	return []byte(rec.Time.UTC().Format(runKeyTimeLayout) + "/" + rec.ID)
}
