// Package cache stores finished analysis responses keyed by a
// fingerprint of the source and the analysis settings. Identical
// requests are served from the store instead of re-running the
// pipeline and the LLM round trip.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrMiss is returned by Get when the fingerprint has no entry.
var ErrMiss = errors.New("cache: miss")

// Options configures the store.
type Options struct {
	// Path is the database directory. Ignored in memory mode.
	Path string

	// InMemory keeps everything in RAM. Used by tests and by
	// deployments that prefer a cold cache per process.
	InMemory bool

	// TTL bounds entry lifetime. Zero means entries never expire;
	// analysis of a fixed source is deterministic, so expiry only
	// matters when LLM judgments are cached alongside.
	TTL time.Duration
}

// Store is a fingerprint-to-response store backed by Badger.
type Store struct {
	db  *badger.DB
	ttl time.Duration
	log *slog.Logger
}

// badgerLogger adapts slog to Badger's logger interface.
type badgerLogger struct{ log *slog.Logger }

func (l badgerLogger) Errorf(f string, args ...interface{})   { l.log.Error(fmt.Sprintf(f, args...)) }
func (l badgerLogger) Warningf(f string, args ...interface{}) { l.log.Warn(fmt.Sprintf(f, args...)) }
func (l badgerLogger) Infof(f string, args ...interface{})    { l.log.Debug(fmt.Sprintf(f, args...)) }
func (l badgerLogger) Debugf(f string, args ...interface{})   { l.log.Debug(fmt.Sprintf(f, args...)) }

// Open opens or creates the store.
func Open(opts Options) (*Store, error) {
	if !opts.InMemory && opts.Path == "" {
		return nil, errors.New("cache: path required for persistent store")
	}
	log := slog.With("component", "cache")

	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts = badger.DefaultOptions(opts.Path)
	}
	bopts = bopts.WithLogger(badgerLogger{log: log})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	return &Store{db: db, ttl: opts.TTL, log: log}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint derives the cache key for a source text under a given
// settings snapshot. Any field that can change the response must be
// part of the snapshot string.
func Fingerprint(source, settings string) string {
	h := sha256.New()
	h.Write([]byte(settings))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the stored payload for a fingerprint, or ErrMiss.
func (s *Store) Get(fingerprint string) ([]byte, error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fingerprint))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get: %w", err)
	}
	return payload, nil
}

// Put stores a payload under a fingerprint, honoring the store TTL.
func (s *Store) Put(fingerprint string, payload []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(fingerprint), payload)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	s.log.Debug("cached response", "fingerprint", fingerprint[:12], "bytes", len(payload))
	return nil
}
