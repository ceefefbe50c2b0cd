package tst

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// openResult carries the log writer's starting offset out of recovery,
// so Open can hand it to a freshly constructed logWriter.
type openResult struct {
	offset int64
}

// recoverLog validates the header, replays records into db, and repairs
// a truncated tail. Replay calls db.replayPut/db.replayRemove (not the
// logging path) so replay never re-appends what it's replaying.
func recoverLog(store FileStore, db *DB) (openResult, error) {
	size, err := store.Seek(0, io.SeekEnd)
	if err != nil {
		return openResult{}, fmt.Errorf("%w: %v", ErrCannotOpen, err)
	}

	if size == 0 {
		w := newLogWriter(store, 0)
		if err := w.writeHeader(); err != nil {
			return openResult{}, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
		return openResult{offset: w.offset}, nil
	}

	hdr := make([]byte, len(header))
	hn, err := store.ReadAt(hdr, 0)
	if err != nil && err != io.EOF {
		return openResult{}, fmt.Errorf("%w: %v", ErrCannotOpen, err)
	}
	if string(hdr[:hn]) != header {
		return openResult{}, fmt.Errorf("%w: header %q", ErrNotADatabase, hdr[:hn])
	}

	rest := make([]byte, size-int64(len(header)))
	if len(rest) > 0 {
		if _, err := store.ReadAt(rest, int64(len(header))); err != nil && err != io.EOF {
			return openResult{}, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
	}

	cur := 0
	lineNo := 1
	var lastKey []byte

	for cur < len(rest) {
		// Skip the blank line a previous repair left in place of a
		// truncated record.
		for cur < len(rest) && (rest[cur] == ' ' || rest[cur] == '\n') {
			cur++
		}
		if cur == len(rest) {
			break
		}
		recStart := cur
		tabIdx := bytes.IndexByte(rest[cur:], '\t')
		if tabIdx < 0 {
			return repairOrCorrupt(store, db, rest, recStart, lineNo, lastKey)
		}
		lenBytes := rest[cur : cur+tabIdx]
		n, err := strconv.ParseInt(string(lenBytes), 10, 32)
		if err != nil {
			return repairOrCorrupt(store, db, rest, recStart, lineNo, lastKey)
		}
		abs := n
		tombstone := n < 0
		if tombstone {
			abs = -n
		}
		keyStart := cur + tabIdx + 1
		keyEnd := keyStart + int(abs)
		if keyEnd >= len(rest) || rest[keyEnd] != '\n' {
			return repairOrCorrupt(store, db, rest, recStart, lineNo, lastKey)
		}

		key := rest[keyStart:keyEnd]
		if tombstone {
			db.replayRemove(key)
		} else {
			db.replayPut(key)
		}
		lastKey = append([]byte{}, key...)
		cur = keyEnd + 1
		lineNo++
	}

	// Clean end: every record parsed fully. Make sure the file ends
	// with the record terminator's LF (a header-only file already
	// does, since header itself ends in "\n").
	end := int64(len(header)) + int64(len(rest))
	if len(rest) > 0 && rest[len(rest)-1] != '\n' {
		if _, err := store.WriteAt([]byte("\n"), end); err != nil {
			return openResult{}, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
		end++
		if err := store.Sync(); err != nil {
			return openResult{}, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
	}
	return openResult{offset: end}, nil
}

// repairRange bounds how much trailing garbage past a record's start is
// still considered "probably a crash mid-write of the last record"
// rather than real corruption: shorter than one maximum-length key past
// pos, with slack for the length/tab prefix.
const repairRange = maxKeyLen + 32

// repairOrCorrupt applies the repair policy at the record starting at
// rest[recStart:]: if the remaining bytes are short enough
// to plausibly be a crash mid-write of the final record, blank the tail
// and resume; otherwise report ErrCorrupt with a line number and a
// snippet of the last successfully read key.
func repairOrCorrupt(store FileStore, db *DB, rest []byte, recStart, lineNo int, lastKey []byte) (openResult, error) {
	remaining := len(rest) - recStart
	if remaining < repairRange {
		pos := int64(len(header)) + int64(recStart)
		end := int64(len(header)) + int64(len(rest))
		blank := make([]byte, end-pos+1)
		for i := range blank[:len(blank)-1] {
			blank[i] = ' '
		}
		blank[len(blank)-1] = '\n'
		if _, err := store.WriteAt(blank, pos); err != nil {
			return openResult{}, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
		if err := store.Sync(); err != nil {
			return openResult{}, fmt.Errorf("%w: %v", ErrCannotOpen, err)
		}
		return openResult{offset: end + 1}, nil
	}

	snippet := lastKey
	if len(snippet) > 40 {
		snippet = snippet[:40]
	}
	return openResult{}, fmt.Errorf("%w: at line %d near %q", ErrCorrupt, lineNo, snippet)
}
