package tst

import (
	"fmt"
	"math/rand"
	"os"
	"time"
)

// Optimize rebuilds the tree from scratch in randomized insertion order,
// which tends to produce a better-balanced tree than whatever order the
// keys happened to arrive in: it extracts all live keys, shuffles them
// with rng (or a time-seeded default if rng is nil, since acquiring
// entropy is left to the caller), clears the tree, and re-inserts in
// shuffled order. In persistent mode the log is rewritten around the
// rebuild: rotated through "<path>.tmp" for a DB opened with OpenFile,
// or truncated and rewritten in place for a caller-supplied FileStore.
// Neither rewrite is atomic.
func (db *DB) Optimize(rng *rand.Rand) error {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	keys := make([][]byte, 0, db.keyCount)
	walkAscending(db.arena, 1, make([]byte, maxKeyLen), 0, func(key []byte) {
		keys = append(keys, append([]byte{}, key...))
	})

	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	if db.store == nil {
		db.arena.Reset()
		db.keyCount = 0
		for _, k := range keys {
			db.replayPut(k)
		}
		return nil
	}

	if db.path == "" {
		return db.optimizeInPlace(keys)
	}
	return db.optimizeWithRotation(keys)
}

// optimizeInPlace handles a persistent DB opened against a caller-
// supplied FileStore with no filesystem path to rename around: it
// truncates and rewrites in place rather than rotating a sibling file.
func (db *DB) optimizeInPlace(keys [][]byte) error {
	db.arena.Reset()
	db.keyCount = 0
	if err := db.store.Truncate(0); err != nil {
		return err
	}
	w := newLogWriter(db.store, 0)
	if err := w.writeHeader(); err != nil {
		return err
	}
	db.log = w
	for _, k := range keys {
		db.apply(k, false)
	}
	return nil
}

// optimizeWithRotation rotates the log in four steps: rename the active
// file aside, clear and reopen fresh, re-insert every key (each appends
// a positive-length record), then delete the aside file. A crash
// between steps 1 and 4 leaves "<path>.tmp" behind, and a future Open
// does not look for it; see DESIGN.md's Open Question log.
func (db *DB) optimizeWithRotation(keys [][]byte) error {
	tmpPath := db.path + ".tmp"

	if err := db.store.Close(); err != nil {
		return fmt.Errorf("optimize: close current log: %w", err)
	}
	if err := os.Rename(db.path, tmpPath); err != nil {
		return fmt.Errorf("optimize: rename aside: %w", err)
	}

	store, err := openOSFile(db.path)
	if err != nil {
		return fmt.Errorf("optimize: open fresh log: %w", err)
	}
	db.store = store
	db.arena.Reset()
	db.keyCount = 0

	w := newLogWriter(store, 0)
	if err := w.writeHeader(); err != nil {
		return fmt.Errorf("optimize: write header: %w", err)
	}
	db.log = w

	for _, k := range keys {
		db.apply(k, false)
	}

	if err := os.Remove(tmpPath); err != nil {
		return fmt.Errorf("optimize: remove rotated-out log: %w", err)
	}
	return nil
}
