package tst

import "github.com/tstdb/tst/internal/arena"

// Sink receives a byte-view of a reconstructed key. The view is valid
// only for the duration of the call; a Sink that retains bytes must copy
// them. A Sink may call read-only methods on the same DB (Contains,
// Search) but must not mutate it, except by calling Remove on the exact
// key just emitted, which only flips a flag and cannot invalidate the
// arena reference the traversal is using.
type Sink func(key []byte)

const wildcard = '*'

// walkAscending performs an in-order ascending traversal over the
// equal-subtree rooted at r.
func walkAscending(a *arena.Arena, r uint32, buf []byte, l int, emit Sink) {
	if r == arena.Nil {
		return
	}
	node := a.At(r)
	walkAscending(a, node.Low, buf, l, emit)
	buf[l] = node.Splitchar
	if node.Flag {
		emit(buf[:l+1])
	}
	walkAscending(a, node.Equal, buf, l+1, emit)
	walkAscending(a, node.High, buf, l, emit)
}

// walkDescending is walkAscending in reverse: high before low, and a key
// ending at r is emitted after the longer keys it prefixes.
func walkDescending(a *arena.Arena, r uint32, buf []byte, l int, emit Sink) {
	if r == arena.Nil {
		return
	}
	node := a.At(r)
	walkDescending(a, node.High, buf, l, emit)
	buf[l] = node.Splitchar
	walkDescending(a, node.Equal, buf, l+1, emit)
	if node.Flag {
		emit(buf[:l+1])
	}
	walkDescending(a, node.Low, buf, l, emit)
}

// walkWildcard traverses the tree against pattern, where '*' matches any
// run of zero or more bytes at the position it occupies. Matches may be
// emitted more than once when multiple wildcard alignments match the
// same key; this is documented, not deduplicated.
func walkWildcard(a *arena.Arena, r uint32, pattern []byte, i int, buf []byte, l int, emit Sink) {
	if r == arena.Nil {
		return
	}
	node := a.At(r)
	c := pattern[i]
	d := int(c) - int(node.Splitchar)
	w := c == wildcard

	if d < 0 || w {
		walkWildcard(a, node.Low, pattern, i, buf, l, emit)
	}
	if d == 0 || w {
		buf[l] = node.Splitchar
		// A literal byte advances to pattern[i+1]; a '*' stays at i so it
		// can consume more. Every '*' from there on may also match zero
		// bytes, so the walk goes on from each index up to the first
		// non-'*' byte after them.
		j := i + 1
		if w {
			j = i
		}
		end := j
		for end < len(pattern) && pattern[end] == wildcard {
			end++
		}
		if end == len(pattern) && node.Flag {
			emit(buf[:l+1])
		}
		for ; j < len(pattern) && j <= end; j++ {
			walkWildcard(a, node.Equal, pattern, j, buf, l+1, emit)
		}
	}
	if d > 0 || w {
		walkWildcard(a, node.High, pattern, i, buf, l, emit)
	}
}
