// Package session persists user tokens obtained through login, one per server.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fivetwenty-io/remp-client/internal/constants"
)

const sessionBucket = "sessions"

// Session is a user token stored for a server.
type Session struct {
	Server    string    `json:"server"    yaml:"server"`
	Email     string    `json:"email"     yaml:"email"`
	Token     string    `json:"token"     yaml:"token"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Store is a bbolt-backed session store.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the session database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		err := os.MkdirAll(dir, constants.ConfigDirPerm)
		if err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
	}

	db, err := bolt.Open(path, constants.ConfigFilePerm, &bolt.Options{Timeout: constants.SessionDBOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))

		return err
	})
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("initializing session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("closing session database: %w", err)
	}

	return nil
}

// Save stores session under its server, replacing any previous one.
func (s *Store) Save(session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return constants.ErrSessionBucketGone
		}

		return bucket.Put([]byte(session.Server), data)
	})
}

// Get returns the session for server, or constants.ErrNotLoggedIn.
func (s *Store) Get(server string) (*Session, error) {
	var session *Session

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return constants.ErrSessionBucketGone
		}

		data := bucket.Get([]byte(server))
		if data == nil {
			return constants.ErrNotLoggedIn
		}

		session = &Session{}

		return json.Unmarshal(data, session)
	})
	if err != nil {
		return nil, fmt.Errorf("reading session for %s: %w", server, err)
	}

	return session, nil
}

// Delete removes the session for server. Deleting a missing session is not an error.
func (s *Store) Delete(server string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return constants.ErrSessionBucketGone
		}

		return bucket.Delete([]byte(server))
	})
}

// List returns all stored sessions ordered by server.
func (s *Store) List() ([]Session, error) {
	var sessions []Session

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return constants.ErrSessionBucketGone
		}

		return bucket.ForEach(func(key, value []byte) error {
			var session Session

			err := json.Unmarshal(value, &session)
			if err != nil {
				return fmt.Errorf("decoding session %s: %w", key, err)
			}

			sessions = append(sessions, session)

			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	return sessions, nil
}
