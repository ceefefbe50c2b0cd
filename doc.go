/*
Package tst provides an embeddable, in-process key-set store built on a
Ternary Search Tree (TST) whose nodes live in a single contiguous array
addressed by 32-bit indices. It supports membership tests, ordered
enumeration, wildcard pattern search, and optional crash-safe persistence
through a human-readable append-only log.

Values are not stored, only the existence of a key is recorded, so a DB
is a persistent ordered set of byte strings, not a key-value map.

Concurrency

A DB is single-threaded: every method runs to completion on the caller's
goroutine, with no internal task or I/O pump. A DB is not safe for
concurrent use from multiple goroutines without external synchronization,
and two DBs must never point at the same log file.

Persistence

Open backs a DB with any FileStore; OpenFile is a convenience wrapper
around an *os.File. With no FileStore, a DB is a pure in-memory set.
*/
package tst
