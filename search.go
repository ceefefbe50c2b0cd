package tst

import "bytes"

// Keys emits every live key through sink in ascending byte-lexicographic
// order, or descending if desc is true.
func (db *DB) Keys(sink Sink, desc ...bool) {
	buf, release := db.pool.get()
	defer release()

	if len(desc) > 0 && desc[0] {
		walkDescending(db.arena, 1, buf, 0, sink)
		return
	}
	walkAscending(db.arena, 1, buf, 0, sink)
}

// Search emits keys matching pattern, where '*' (0x2A) matches any run
// of zero or more bytes in the position it occupies. With segment set,
// the matched sub-range delimited by the configured
// separator byte is emitted instead of the whole key; keys without that
// many segments are skipped. An empty pattern is a no-op.
func (db *DB) Search(pattern []byte, sink Sink, segment ...int) {
	if len(pattern) == 0 {
		return
	}

	emit := sink
	if len(segment) > 0 {
		emit = db.projectSegment(segment[0], sink)
	}

	buf, release := db.pool.get()
	defer release()
	// A leading '*' may also match zero bytes.
	for i := 0; i < len(pattern); i++ {
		walkWildcard(db.arena, 1, pattern, i, buf, 0, emit)
		if pattern[i] != wildcard {
			break
		}
	}
}

// projectSegment wraps sink so it receives only the requested 1-based
// segment of each matched key, delimited by the DB's separator byte,
// skipping keys that don't have that many segments. Empty runs, such as
// the one before a leading separator, are not counted as segments.
func (db *DB) projectSegment(segment int, sink Sink) Sink {
	sep := db.separator
	return func(key []byte) {
		n := 0
		for _, seg := range bytes.Split(key, []byte{sep}) {
			if len(seg) == 0 {
				continue
			}
			n++
			if n == segment {
				sink(seg)
				return
			}
		}
	}
}
