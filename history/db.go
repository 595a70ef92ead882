// Package history records a diagnostic-only log of activation transitions
// in a bbolt database: one bucket per game ID, one JSON-encoded entry per
// recorded transition, keyed by a generated UUID. It is never consulted by
// the activation state machine — Classify always recomputes from the
// filesystem — so a missing or corrupt history database degrades
// "mod-manager status" output, nothing else.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Action identifies which transition an Entry records.
type Action string

const (
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
	ActionWrap       Action = "wrap"
	ActionSetup      Action = "setup"
)

// Entry is one recorded activation transition.
type Entry struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Action    Action    `json:"action"`
	SetName   string    `json:"set_name"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DB wraps a bbolt database used as an append-mostly activation log.
type DB struct {
	db *bolt.DB
}

// Open opens or creates the bbolt database at path.
func Open(path string) (*DB, error) {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}
	return &DB{db: bdb}, nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

func bucketName(gameID string) []byte {
	return []byte("game:" + gameID)
}

// Record appends a new Entry for gameID, stamping it with a generated ID
// and timestamp if not already set.
func (db *DB) Record(gameID string, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.GameID = gameID

	data, err := json.Marshal(&e)
	if err != nil {
		return &EntryError{Op: "marshal", GameID: gameID, Err: err}
	}

	err = db.db.Update(func(tx *bolt.Tx) error {
		bucket, berr := tx.CreateBucketIfNotExists(bucketName(gameID))
		if berr != nil {
			return &DatabaseError{Op: "create bucket", Err: berr}
		}
		return bucket.Put([]byte(e.ID), data)
	})
	if err != nil {
		return &EntryError{Op: "record", GameID: gameID, Err: err}
	}
	return nil
}

// Recent returns up to limit entries for gameID, newest first. Entries are
// stored under random UUID keys, so this loads the full bucket and sorts
// by timestamp rather than relying on bbolt's key ordering.
func (db *DB) Recent(gameID string, limit int) ([]Entry, error) {
	var entries []Entry

	err := db.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName(gameID))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return &EntryError{Op: "unmarshal", GameID: gameID, Err: err}
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Timestamp.After(entries[j-1].Timestamp); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// AllGameIDs lists every game ID with at least one recorded entry.
func (db *DB) AllGameIDs() ([]string, error) {
	var ids []string
	err := db.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			if len(name) > len("game:") {
				ids = append(ids, string(name[len("game:"):]))
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list game buckets: %w", err)
	}
	return ids, nil
}
