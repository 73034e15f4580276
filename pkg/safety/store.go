package safety

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

const (
	faultBucket  = "safety"
	lastFaultKey = "last_fault"
)

// FaultRecord describes a supervisor trip. It survives a power cycle so
// the operator can see what went wrong after restarting the program.
type FaultRecord struct {
	Port v5.Port   `json:"port"`
	Kind string    `json:"kind"`
	Time time.Time `json:"time"`
}

// Store persists the most recent fault in a bolt database.
type Store struct {
	db *bolt.DB
}

func NewStore(db *bolt.DB) (*Store, error) {
	st := Store{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(faultBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fault bucket: %v", err)
	}
	return &st, nil
}

// RecordFault saves the fault as a json string in the database, replacing
// any earlier record.
func (s *Store) RecordFault(rec FaultRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(faultBucket))
		if err != nil {
			return err
		}

		value, _ := json.Marshal(rec)
		return b.Put([]byte(lastFaultKey), value)
	})
}

// LastFault retrieves the most recent fault. It returns an error when no
// fault has been recorded yet.
func (s *Store) LastFault() (FaultRecord, error) {
	var rec FaultRecord

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(faultBucket))
		if b == nil {
			return fmt.Errorf("bucket %s not found", faultBucket)
		}

		value := b.Get([]byte(lastFaultKey))
		if value == nil {
			return fmt.Errorf("no fault recorded")
		}

		return json.Unmarshal(value, &rec)
	})

	return rec, err
}
