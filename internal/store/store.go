// Package store persists wallet records in a single bbolt file. Records
// carry the encrypted blob and public metadata only; plaintext secrets
// have no field to land in.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// schemaVersion tags every stored record so future format changes can be
// migrated. Records from a newer schema are rejected, not guessed at.
const schemaVersion = 1

var (
	walletsBucket = []byte("wallets")

	// ErrNotFound is returned when no wallet exists under the given id.
	ErrNotFound = errors.New("wallet not found")

	// ErrExists is returned when creating a wallet whose id is taken.
	ErrExists = errors.New("wallet already exists")

	// ErrUnsupportedVersion is returned for records written by a newer
	// schema than this binary understands.
	ErrUnsupportedVersion = errors.New("unsupported wallet record version")

	// ErrAddressExists is returned when an address for a chain would be
	// overwritten. Addresses are append-only per chain.
	ErrAddressExists = errors.New("address already recorded for chain")
)

// Wallet is the persisted record. Blob is the encoded encrypted payload;
// Addresses and Paths are keyed by chain name.
type Wallet struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Version   int               `json:"version"`
	Blob      string            `json:"blob"`
	QR        string            `json:"qr,omitempty"`
	Addresses map[string]string `json:"addresses"`
	Paths     map[string]string `json:"paths"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Store is a bbolt-backed wallet store. All writes run inside a single
// bolt transaction, so a failed write never leaves a partial record.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the store file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(walletsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init wallet store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a new wallet record all-or-nothing.
func (s *Store) Create(w *Wallet) error {
	if w.ID == "" {
		return errors.New("wallet id required")
	}
	w.Version = schemaVersion

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(walletsBucket)
		if b.Get([]byte(w.ID)) != nil {
			return fmt.Errorf("%w: %s", ErrExists, w.ID)
		}
		raw, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("failed to marshal wallet: %w", err)
		}
		return b.Put([]byte(w.ID), raw)
	})
}

// Get loads one wallet by id.
func (s *Store) Get(id string) (*Wallet, error) {
	var w *Wallet
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(walletsBucket).Get([]byte(id))
		if raw == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		var err error
		w, err = decode(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// List returns every stored wallet.
func (s *Store) List() ([]*Wallet, error) {
	var out []*Wallet
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(walletsBucket).ForEach(func(_, raw []byte) error {
			w, err := decode(raw)
			if err != nil {
				return err
			}
			out = append(out, w)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes blob and metadata atomically.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(walletsBucket)
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return b.Delete([]byte(id))
	})
}

// AddAddress records a derived address and its path for a chain.
// An already-recorded chain address is never overwritten.
func (s *Store) AddAddress(id, chain, address, path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(walletsBucket)
		raw := b.Get([]byte(id))
		if raw == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		w, err := decode(raw)
		if err != nil {
			return err
		}
		if _, ok := w.Addresses[chain]; ok {
			return fmt.Errorf("%w: %s", ErrAddressExists, chain)
		}
		if w.Addresses == nil {
			w.Addresses = make(map[string]string)
		}
		if w.Paths == nil {
			w.Paths = make(map[string]string)
		}
		w.Addresses[chain] = address
		w.Paths[chain] = path

		updated, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("failed to marshal wallet: %w", err)
		}
		return b.Put([]byte(id), updated)
	})
}

func decode(raw []byte) (*Wallet, error) {
	var w Wallet
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	if w.Version > schemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, w.Version)
	}
	return &w, nil
}
