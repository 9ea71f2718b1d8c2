package database

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const DocumentsBucket = "documents"

// OpenBolt opens (or creates) the bolt file at path and makes sure the
// documents bucket exists.
func OpenBolt(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(DocumentsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return db, nil
}
