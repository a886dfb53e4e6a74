// Package tokenstore persists session token in a bbolt file.
package tokenstore

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketName = []byte("session")
	tokenKey   = []byte("token")
)

// Store keeps single token under fixed key.
type Store struct {
	db *bolt.DB
}

// Open opens or creates bbolt file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("can't open token store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("can't create session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns stored token or empty string when there is none.
func (s *Store) Load() (string, error) {
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(tokenKey); v != nil {
			token = string(v)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("can't load token: %w", err)
	}

	return token, nil
}

// Save replaces stored token.
func (s *Store) Save(token string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(tokenKey, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("can't save token: %w", err)
	}

	return nil
}

// Clear removes stored token.
func (s *Store) Clear() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete(tokenKey)
	})
	if err != nil {
		return fmt.Errorf("can't clear token: %w", err)
	}

	return nil
}

// Close closes the file.
func (s *Store) Close() error {
	return s.db.Close()
}
