package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var snapshotBucket = []byte("snapshots")

// SnapshotStore keeps the last good CMS response per URL on disk so pages
// can be served while the CMS is down.
type SnapshotStore struct {
	db  *bbolt.DB
	log *zap.Logger
}

// OpenSnapshotStore opens (or creates) the snapshot database.
func OpenSnapshotStore(path string, log *zap.Logger) (*SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Info("snapshot store ready", zap.String("path", path))
	return &SnapshotStore{db: db, log: log}, nil
}

// Save replaces the snapshot for key.
func (s *SnapshotStore) Save(key string, body []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put([]byte(key), body)
	})
}

// Load returns the snapshot for key. Read errors are logged and reported as
// a miss.
func (s *SnapshotStore) Load(key string) ([]byte, bool) {
	var body []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(snapshotBucket).Get([]byte(key))
		if v != nil {
			// v is only valid inside the transaction.
			body = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("snapshot read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return body, body != nil
}

// Keys lists every stored snapshot key.
func (s *SnapshotStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
