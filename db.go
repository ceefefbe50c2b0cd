package tst

import (
	"fmt"
	"os"

	"github.com/tstdb/tst/internal/arena"
)

// DB is a single in-process key-set store: an array-backed ternary
// search tree, optionally durable through an append-only log. A DB is
// not safe for concurrent use from multiple goroutines, and two DBs
// must never point at the same log file.
type DB struct {
	arena     *arena.Arena
	keyCount  uint32
	separator byte
	pool      *bufferPool

	store FileStore
	log   *logWriter // nil for a pure in-memory DB
	path  string
	lock  *advisoryLock
}

// New returns a pure in-memory DB with no backing log.
func New(opts ...Option) *DB {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &DB{
		arena:     arena.New(),
		separator: cfg.separator,
		pool:      newBufferPool(),
	}
}

// Open opens a DB backed by the given FileStore, replaying and
// repairing its log. A nil store is equivalent to New.
func Open(store FileStore, opts ...Option) (*DB, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	db := &DB{
		arena:     arena.New(),
		separator: cfg.separator,
		pool:      newBufferPool(),
		store:     store,
	}
	if store == nil {
		return db, nil
	}

	res, err := recoverLog(store, db)
	if err != nil {
		return nil, err
	}
	db.log = newLogWriter(store, res.offset)
	return db, nil
}

// OpenFile opens (creating if necessary) the database file at path,
// taking an advisory lock unless WithoutLock is given.
func OpenFile(path string, opts ...Option) (*DB, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var lock *advisoryLock
	if !cfg.noLock {
		l, err := acquireLock(path)
		if err != nil {
			return nil, err
		}
		lock = l
	}

	store, err := openOSFile(path)
	if err != nil {
		lock.release()
		return nil, fmt.Errorf("%w: %v", ErrCannotOpen, err)
	}

	db, err := Open(store, opts...)
	if err != nil {
		store.Close()
		lock.release()
		return nil, err
	}
	db.path = path
	db.lock = lock
	return db, nil
}

// Close flushes and releases the log, if any, and releases the advisory
// lock taken by OpenFile.
func (db *DB) Close() error {
	var err error
	if db.store != nil {
		err = db.store.Close()
	}
	if db.lock != nil {
		if lerr := db.lock.release(); lerr != nil && err == nil {
			err = lerr
		}
	}
	return err
}

// Contains reports whether key is live in the set.
func (db *DB) Contains(key []byte) bool {
	if len(key) == 0 {
		return false
	}
	return contains(db.arena, key)
}

// Put inserts key, returning whether the set changed. On a persistent
// DB, a true return implies the insertion is durable.
func (db *DB) Put(key []byte) bool {
	return db.apply(key, false)
}

// Remove tombstones key, returning whether the set changed. On a
// persistent DB, a true return implies the tombstone is durable.
func (db *DB) Remove(key []byte) bool {
	return db.apply(key, true)
}

func (db *DB) apply(key []byte, clear bool) bool {
	changed, delta := mutate(db.arena, key, clear)
	if !changed {
		return false
	}
	db.keyCount = uint32(int(db.keyCount) + delta)
	if db.log != nil {
		if err := db.log.append(key, clear); err != nil {
			// A log-write failure after open isn't recoverable;
			// invalidate further writes rather than report a
			// durability guarantee we can't keep.
			db.log = nil
		}
	}
	return true
}

// replayPut/replayRemove apply a record during recovery without
// appending to the log, since the log writer isn't attached until
// replay completes.
func (db *DB) replayPut(key []byte) {
	changed, delta := mutate(db.arena, key, false)
	if changed {
		db.keyCount = uint32(int(db.keyCount) + delta)
	}
}

func (db *DB) replayRemove(key []byte) {
	changed, delta := mutate(db.arena, key, true)
	if changed {
		db.keyCount = uint32(int(db.keyCount) + delta)
	}
}

// KeyCount returns the number of live keys.
func (db *DB) KeyCount() uint32 {
	return db.keyCount
}

// NodeCount returns the number of nodes in use, not counting the nil
// sentinel at index 0 but counting the root at index 1 (see DESIGN.md's
// Open Question log for why the root counts here).
func (db *DB) NodeCount() uint32 {
	return db.arena.Len() - 1
}

// State returns a [0,1] estimate of how balanced the tree currently is.
func (db *DB) State() float64 {
	return state(db.arena)
}

// Separator gets or sets the segment delimiter byte used by Search's
// segment projection (default '/'). Called with no bytes, it only
// returns the current value.
func (db *DB) Separator(set ...byte) byte {
	if len(set) > 0 {
		db.separator = set[0]
	}
	return db.separator
}

// Stats is a point-in-time snapshot of a DB's size and shape.
type Stats struct {
	NodeCount uint32
	KeyCount  uint32
	State     float64
	Capacity  uint32
}

// Stats returns a Stats snapshot in one call.
func (db *DB) Stats() Stats {
	return Stats{
		NodeCount: db.NodeCount(),
		KeyCount:  db.KeyCount(),
		State:     db.State(),
		Capacity:  db.arena.Cap(),
	}
}

// Clear empties the tree. In persistent mode it closes the log, deletes
// the file, and opens a fresh one with the header written. When the DB
// was opened against a caller-supplied FileStore with no
// filesystem path to delete and recreate, it truncates that same store
// in place instead, the same fallback Optimize uses (optimizeInPlace).
func (db *DB) Clear() error {
	db.arena.Reset()
	db.keyCount = 0
	if db.store == nil {
		return nil
	}

	if db.path != "" {
		if err := db.store.Close(); err != nil {
			return fmt.Errorf("clear: close log: %w", err)
		}
		if err := os.Remove(db.path); err != nil {
			return fmt.Errorf("clear: remove log: %w", err)
		}
		store, err := openOSFile(db.path)
		if err != nil {
			return fmt.Errorf("clear: reopen log: %w", err)
		}
		db.store = store
	} else if err := db.store.Truncate(0); err != nil {
		return err
	}

	w := newLogWriter(db.store, 0)
	if err := w.writeHeader(); err != nil {
		return err
	}
	db.log = w
	return nil
}
